package r3d

import (
	"log"
)

// Item is an argument of Add: either a *Node or a Group of items.
type Item interface {
	flatten(dst []*Node) []*Node
}

// Group is a nested list of nodes, flattened in order by Add.
type Group []Item

func (n *Node) flatten(dst []*Node) []*Node {
	if n == nil {
		return dst
	}
	return append(dst, n)
}

func (g Group) flatten(dst []*Node) []*Node {
	for _, item := range g {
		if item != nil {
			dst = item.flatten(dst)
		}
	}
	return dst
}

// Add appends the flattened items to the children of n. A node already
// attached elsewhere is detached from its previous parent first. Nodes
// that would make the tree cyclic are skipped.
func (n *Node) Add(items ...Item) *Node {
	for _, child := range Group(items).flatten(nil) {
		if child.isAncestorOf(n) {
			log.Printf("[r3d] not adding %q under %q: would create a cycle", child.ID, n.ID)
			continue
		}
		if child.parent != nil {
			child.parent.Remove(child)
		}
		child.parent = n
		n.children = append(n.children, child)
	}
	return n
}

// Remove detaches the first occurrence of child. Absent children are ignored.
func (n *Node) Remove(child *Node) *Node {
	for i, c := range n.children {
		if c != child {
			continue
		}
		copy(n.children[i:], n.children[i+1:])
		n.children[len(n.children)-1] = nil
		n.children = n.children[:len(n.children)-1]
		if child.parent == n {
			child.parent = nil
		}
		break
	}
	return n
}

// RemoveAll detaches every child without deleting it.
func (n *Node) RemoveAll() *Node {
	for _, c := range n.children {
		if c.parent == n {
			c.parent = nil
		}
	}
	n.children = nil
	return n
}

// Delete recursively deletes the subtree and releases the payload.
// Calling it again is a no-op.
func (n *Node) Delete() {
	for _, c := range n.children {
		c.Delete()
	}
	n.RemoveAll()
	if !n.deleted {
		if d, ok := n.Payload.(Deleter); ok {
			d.Delete()
		}
	}
	n.deleted = true
}

func (n *Node) Parent() *Node { return n.parent }

func (n *Node) Child(i int) *Node { return n.children[i] }

func (n *Node) NumChildren() int { return len(n.children) }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

func (n *Node) isAncestorOf(o *Node) bool {
	for p := o; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

package r3d

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// FindByID returns the first node in pre-order whose ID is id.
func (n *Node) FindByID(id string) *Node {
	var found *Node
	n.Walk(func(node *Node, _ TraverseContext) bool {
		if found != nil {
			return false
		}
		if node.ID == id {
			found = node
			return false
		}
		return true
	})
	return found
}

func (n *Node) FindByUID(uid uuid.UUID) *Node {
	var found *Node
	n.Walk(func(node *Node, _ TraverseContext) bool {
		if found != nil {
			return false
		}
		if node.uid == uid {
			found = node
			return false
		}
		return true
	})
	return found
}

// Path returns the slash separated IDs from below the root down to n.
// Unnamed nodes are written as #index within their parent.
func (n *Node) Path() string {
	var parts []string
	for p := n; p.parent != nil; p = p.parent {
		parts = append(parts, p.pathSegment())
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

// Get resolves a Path relative to n. ".." climbs to the parent.
func (n *Node) Get(path string) *Node {
	node := n
	for _, part := range strings.Split(path, "/") {
		if node == nil {
			return nil
		}
		switch part {
		case "", ".":
		case "..":
			node = node.parent
		default:
			node = node.childBySegment(part)
		}
	}
	return node
}

func (n *Node) pathSegment() string {
	if n.ID != "" {
		return n.ID
	}
	for i, c := range n.parent.children {
		if c == n {
			return "#" + strconv.Itoa(i)
		}
	}
	return ""
}

func (n *Node) childBySegment(part string) *Node {
	for _, c := range n.children {
		if c.ID == part {
			return c
		}
	}
	if strings.HasPrefix(part, "#") {
		if i, err := strconv.Atoi(part[1:]); err == nil && i >= 0 && i < len(n.children) {
			return n.children[i]
		}
	}
	return nil
}

// TreeString dumps the hierarchy with local positions, one node per line.
func (n *Node) TreeString() string {
	var sb strings.Builder
	n.Walk(func(node *Node, ctx TraverseContext) bool {
		name := node.ID
		if name == "" {
			name = "<" + node.uid.String()[:8] + ">"
		}
		if ctx.Depth == 0 {
			fmt.Fprintf(&sb, "+: %s\n", name)
		} else {
			sb.WriteString(strings.Repeat("    ", ctx.Depth))
			fmt.Fprintf(&sb, "\\-: %s : %v", name, node.Position)
			if !node.Display {
				sb.WriteString(" (hidden)")
			}
			if node.Payload != nil {
				fmt.Fprintf(&sb, " [%s]", node.Payload.DrawableName())
			}
			sb.WriteByte('\n')
		}
		return true
	})
	return sb.String()
}

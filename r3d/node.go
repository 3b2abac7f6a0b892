// Package r3d is a transform tree: nodes with local transforms composed
// into world matrices, for consumption by a renderer.
package r3d

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Drawable is the renderable payload of a model node.
// Nodes without a payload are pure groups.
type Drawable interface {
	DrawableName() string
}

// Deleter is implemented by payloads that hold resources which must be
// released together with their node.
type Deleter interface {
	Delete()
}

// Node is an element of the transform tree.
//
// Position, Rotation (euler angles in radians, applied X then Y then Z)
// and Scale are the stored local transform components. They only reach
// the local matrix through Update or SetMatrixComponents. WorldMatrix is
// written by CompileMatrices and is stale after any local change until
// the next compile pass.
type Node struct {
	ID      string
	Display bool

	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3

	WorldMatrix mgl32.Mat4

	Payload Drawable

	matrix *SharedMatrix
	// matrix was installed directly and not derived from components
	explicit bool

	parent   *Node
	children []*Node

	uid     uuid.UUID
	deleted bool
}

// Props is the construction and SetProps schema. Nil fields are left untouched.
type Props struct {
	ID       string
	Display  *bool
	Position *mgl32.Vec3
	Rotation *mgl32.Vec3
	Scale    *mgl32.Vec3
	Matrix   *mgl32.Mat4
	Children []Item
	Payload  Drawable
}

func NewNode(props ...Props) *Node {
	n := &Node{
		Display:     true,
		Scale:       mgl32.Vec3{1, 1, 1},
		WorldMatrix: mgl32.Ident4(),
		matrix:      NewSharedMatrix(mgl32.Ident4()),
		uid:         uuid.New(),
	}
	for _, p := range props {
		n.SetProps(p)
	}
	return n
}

// NewGroup creates a payload-less node holding children.
func NewGroup(id string, children ...Item) *Node {
	return NewNode(Props{ID: id, Children: children})
}

// NewModel creates a node carrying a drawable payload.
func NewModel(id string, payload Drawable) *Node {
	return NewNode(Props{ID: id, Payload: payload})
}

// SetProps merges props into the node. The local matrix is not recomputed
// from components, a supplied Matrix is installed as a private copy.
func (n *Node) SetProps(p Props) *Node {
	if p.ID != "" {
		n.ID = p.ID
	}
	if p.Display != nil {
		n.Display = *p.Display
	}
	if p.Position != nil {
		n.Position = *p.Position
	}
	if p.Rotation != nil {
		n.Rotation = *p.Rotation
	}
	if p.Scale != nil {
		n.Scale = *p.Scale
	}
	if p.Matrix != nil {
		n.SetMatrix(*p.Matrix)
	}
	if p.Payload != nil {
		n.Payload = p.Payload
	}
	if len(p.Children) != 0 {
		n.Add(p.Children...)
	}
	return n
}

// Props returns the property record of the node. It is built from the live
// attributes, so it never disagrees with them.
func (n *Node) Props() Props {
	display := n.Display
	position := n.Position
	rotation := n.Rotation
	scale := n.Scale

	p := Props{
		ID:       n.ID,
		Display:  &display,
		Position: &position,
		Rotation: &rotation,
		Scale:    &scale,
		Payload:  n.Payload,
	}
	if n.explicit {
		m := n.matrix.Get()
		p.Matrix = &m
	}
	if len(n.children) != 0 {
		p.Children = make([]Item, len(n.children))
		for i, c := range n.children {
			p.Children[i] = c
		}
	}
	return p
}

// UID is a process unique handle, unrelated to ID.
func (n *Node) UID() uuid.UUID { return n.uid }

// IsGroup reports whether the node carries no payload.
func (n *Node) IsGroup() bool { return n.Payload == nil }

func (n *Node) Deleted() bool { return n.deleted }

func Bool(b bool) *bool { return &b }

func Vec3(x, y, z float32) *mgl32.Vec3 { return &mgl32.Vec3{x, y, z} }

func Mat4(m mgl32.Mat4) *mgl32.Mat4 { return &m }

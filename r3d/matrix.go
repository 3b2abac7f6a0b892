package r3d

import (
	"github.com/go-gl/mathgl/mgl32"
)

// SharedMatrix is a local matrix storage that can be owned by several
// parties at once, typically a node and an animation driver.
type SharedMatrix struct {
	m mgl32.Mat4
}

func NewSharedMatrix(m mgl32.Mat4) *SharedMatrix {
	return &SharedMatrix{m: m}
}

func (h *SharedMatrix) Get() mgl32.Mat4 { return h.m }

func (h *SharedMatrix) Set(m mgl32.Mat4) { h.m = m }

// Mul4 post-multiplies the stored matrix by m in place.
func (h *SharedMatrix) Mul4(m mgl32.Mat4) { h.m = h.m.Mul4(m) }

// Components is the argument of SetMatrixComponents. Nil fields keep the
// stored value. NoUpdate records the components without recomputing the
// local matrix.
type Components struct {
	Position *mgl32.Vec3
	Rotation *mgl32.Vec3
	Scale    *mgl32.Vec3
	NoUpdate bool
}

// ComposeTRS returns translate(position) x rotateX x rotateY x rotateZ x scale(scale).
func ComposeTRS(position, rotation, scale mgl32.Vec3) mgl32.Mat4 {
	m := mgl32.Translate3D(position[0], position[1], position[2])
	m = m.Mul4(mgl32.HomogRotate3DX(rotation[0]))
	m = m.Mul4(mgl32.HomogRotate3DY(rotation[1]))
	m = m.Mul4(mgl32.HomogRotate3DZ(rotation[2]))
	return m.Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
}

// Matrix returns the current local matrix.
func (n *Node) Matrix() mgl32.Mat4 { return n.matrix.Get() }

// MatrixHandle returns the storage of the local matrix.
func (n *Node) MatrixHandle() *SharedMatrix { return n.matrix }

// SetMatrix installs a private copy of m as the local matrix.
func (n *Node) SetMatrix(m mgl32.Mat4) *Node {
	n.matrix = NewSharedMatrix(m)
	n.explicit = true
	return n
}

// ShareMatrix installs h itself as the local matrix storage. Later changes
// made through h are seen by the node, and recomputation from components
// writes back into h.
func (n *Node) ShareMatrix(h *SharedMatrix) *Node {
	if h == nil {
		h = NewSharedMatrix(mgl32.Ident4())
	}
	n.matrix = h
	n.explicit = true
	return n
}

func (n *Node) SetPosition(v mgl32.Vec3) *Node {
	n.Position = v
	return n
}

func (n *Node) SetRotation(v mgl32.Vec3) *Node {
	n.Rotation = v
	return n
}

func (n *Node) SetScale(v mgl32.Vec3) *Node {
	n.Scale = v
	return n
}

func (n *Node) SetMatrixComponents(c Components) *Node {
	if c.Position != nil {
		n.Position = *c.Position
	}
	if c.Rotation != nil {
		n.Rotation = *c.Rotation
	}
	if c.Scale != nil {
		n.Scale = *c.Scale
	}
	if !c.NoUpdate {
		n.updateMatrix()
	}
	return n
}

// Update is SetMatrixComponents with recomputation forced. Without
// arguments it refreshes the local matrix from the stored components.
func (n *Node) Update(cs ...Components) *Node {
	for _, c := range cs {
		c.NoUpdate = true
		n.SetMatrixComponents(c)
	}
	n.updateMatrix()
	return n
}

// ComposedFromComponents reports whether the local matrix is exactly what
// Update would compute from the stored components.
func (n *Node) ComposedFromComponents() bool {
	return n.matrix.Get() == ComposeTRS(n.Position, n.Rotation, n.Scale)
}

// SetTranslation moves the node without touching the rest of the local
// matrix. Nodes whose matrix was not composed from components keep their
// rotation and scale.
func (n *Node) SetTranslation(v mgl32.Vec3) *Node {
	n.Position = v
	if n.ComposedFromComponents() {
		return n.Update()
	}
	m := n.matrix.Get()
	m.SetCol(3, v.Vec4(1))
	n.matrix.Set(m)
	return n
}

func (n *Node) updateMatrix() {
	n.matrix.Set(ComposeTRS(n.Position, n.Rotation, n.Scale))
	n.explicit = false
}

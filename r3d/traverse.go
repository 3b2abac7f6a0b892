package r3d

import (
	"github.com/go-gl/mathgl/mgl32"
)

// TraverseContext is passed to visitors alongside each node.
type TraverseContext struct {
	// parent world matrix x node local matrix, computed during the walk
	WorldMatrix mgl32.Mat4
	Parent      *Node
	Depth       int
}

type Visitor func(n *Node, ctx TraverseContext)

// Traverse applies visitor to every node of the subtree in pre-order.
func (n *Node) Traverse(visitor Visitor) {
	n.TraverseFrom(visitor, mgl32.Ident4())
}

// TraverseFrom is Traverse with parentWorld as the world matrix above n.
func (n *Node) TraverseFrom(visitor Visitor, parentWorld mgl32.Mat4) {
	n.walk(func(node *Node, ctx TraverseContext) bool {
		visitor(node, ctx)
		return true
	}, parentWorld, nil, 0)
}

// Walk is a pre-order traversal where returning false from fn skips the
// children of the visited node.
func (n *Node) Walk(fn func(n *Node, ctx TraverseContext) bool) {
	n.walk(fn, mgl32.Ident4(), nil, 0)
}

func (n *Node) walk(fn func(*Node, TraverseContext) bool, parentWorld mgl32.Mat4, parent *Node, depth int) {
	ctx := TraverseContext{
		WorldMatrix: parentWorld.Mul4(n.matrix.Get()),
		Parent:      parent,
		Depth:       depth,
	}
	if !fn(n, ctx) {
		return
	}
	for _, c := range n.children {
		c.walk(fn, ctx.WorldMatrix, n, depth+1)
	}
}

// CompileMatrices recomputes WorldMatrix for the whole subtree, with the
// identity as the base above n.
func (n *Node) CompileMatrices() {
	n.CompileMatricesFrom(mgl32.Ident4())
}

func (n *Node) CompileMatricesFrom(base mgl32.Mat4) {
	n.WorldMatrix = base.Mul4(n.matrix.Get())
	for _, c := range n.children {
		c.CompileMatricesFrom(n.WorldMatrix)
	}
}

// Uniforms are the per node matrices a shader program consumes.
type Uniforms struct {
	World                 mgl32.Mat4
	WorldInverse          mgl32.Mat4
	WorldInverseTranspose mgl32.Mat4
}

// CoordinateUniforms combines view with the compiled world matrix.
func (n *Node) CoordinateUniforms(view mgl32.Mat4) Uniforms {
	world := view.Mul4(n.WorldMatrix)
	inv := world.Inv()
	return Uniforms{
		World:                 world,
		WorldInverse:          inv,
		WorldInverseTranspose: inv.Transpose(),
	}
}

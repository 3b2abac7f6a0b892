package r3d

import "github.com/go-gl/mathgl/mgl32"

// Bounder is implemented by payloads with a local axis aligned box.
type Bounder interface {
	LocalBounds() (min, max mgl32.Vec3)
}

// BBox is an axis aligned box stored as {min, max}.
type BBox [2]mgl32.Vec3

func (bbox *BBox) ExpandToPoint(pos mgl32.Vec3) {
	for i, coord := range pos {
		if coord < bbox[0][i] {
			bbox[0][i] = coord
		}
		if coord > bbox[1][i] {
			bbox[1][i] = coord
		}
	}
}

func (bbox BBox) Size() float32 {
	return bbox[1].Sub(bbox[0]).Len()
}

func (bbox BBox) Center() mgl32.Vec3 {
	return bbox[0].Add(bbox[1]).Mul(0.5)
}

// Bounds returns the world space box around every Bounder payload of the
// subtree. ok is false when there is none.
func (n *Node) Bounds() (bbox BBox, ok bool) {
	n.Traverse(func(node *Node, ctx TraverseContext) {
		b, isBounder := node.Payload.(Bounder)
		if !isBounder {
			return
		}
		min, max := b.LocalBounds()
		for i := 0; i < 8; i++ {
			corner := min
			if i&1 != 0 {
				corner[0] = max[0]
			}
			if i&2 != 0 {
				corner[1] = max[1]
			}
			if i&4 != 0 {
				corner[2] = max[2]
			}
			p := mgl32.TransformCoordinate(corner, ctx.WorldMatrix)
			if !ok {
				bbox = BBox{p, p}
				ok = true
			} else {
				bbox.ExpandToPoint(p)
			}
		}
	})
	return bbox, ok
}

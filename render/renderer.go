// Package render turns a compiled transform tree into an ordered queue of
// draw calls and hands them to a backend.
package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/mogaika/scenegraph_browser/r3d"
	"github.com/mogaika/scenegraph_browser/rendercontext"
)

// Call is one queued draw of a model node.
type Call struct {
	Node     *r3d.Node
	Payload  r3d.Drawable
	Model    mgl32.Mat4
	Uniforms r3d.Uniforms
}

// Backend issues the actual draws.
type Backend interface {
	Draw(projectView mgl32.Mat4, call Call) error
}

type BackendFunc func(projectView mgl32.Mat4, call Call) error

func (f BackendFunc) Draw(projectView mgl32.Mat4, call Call) error { return f(projectView, call) }

type Renderer struct {
	Camera     r3d.Camera
	Projection mgl32.Mat4
	// Payloads implementing rendercontext.TempDataHolder (r3d.Mesh does)
	// are marked used on every Collect; Flush ends the frame in Store.
	// nil means the package level store of rendercontext
	Store *rendercontext.Store

	frame frame
}

type frame struct {
	queue []Call
}

func NewRenderer(camera r3d.Camera) *Renderer {
	r := &Renderer{Camera: camera}
	r.SetPerspective(50, 1, 1.0, 10000.0)
	return r
}

func (r *Renderer) SetPerspective(fovDeg, aspect, near, far float32) {
	r.Projection = mgl32.Perspective(mgl32.DegToRad(fovDeg), aspect, near, far)
}

func (r *Renderer) view() mgl32.Mat4 {
	if r.Camera == nil {
		return mgl32.Ident4()
	}
	return r.Camera.GetViewMatrix()
}

func (r *Renderer) ProjectView() mgl32.Mat4 {
	return r.Projection.Mul4(r.view())
}

func (r *Renderer) AddCall(call Call) {
	r.frame.queue = append(r.frame.queue, call)
}

// Queue returns a copy of the calls waiting for Flush.
func (r *Renderer) Queue() []Call {
	return append([]Call(nil), r.frame.queue...)
}

func (r *Renderer) use(dh rendercontext.TempDataHolder) {
	if r.Store != nil {
		r.Store.Use(dh)
	} else {
		rendercontext.Use(dh)
	}
}

func (r *Renderer) swap() {
	if r.Store != nil {
		r.Store.Swap()
	} else {
		rendercontext.Swap()
	}
}

// Collect compiles the world matrices of root and queues a call for every
// model node. Hidden nodes are skipped together with their subtrees.
// Returns the number of queued calls.
func (r *Renderer) Collect(root *r3d.Node) int {
	root.CompileMatrices()
	view := r.view()

	added := 0
	root.Walk(func(n *r3d.Node, _ r3d.TraverseContext) bool {
		if !n.Display {
			return false
		}
		if n.Payload == nil {
			return true
		}
		if dh, ok := n.Payload.(rendercontext.TempDataHolder); ok {
			r.use(dh)
		}
		r.AddCall(Call{
			Node:     n,
			Payload:  n.Payload,
			Model:    n.WorldMatrix,
			Uniforms: n.CoordinateUniforms(view),
		})
		added++
		return true
	})
	return added
}

// Flush draws the queued calls in order and ends the frame. The first
// backend error stops the flush, the queue is dropped either way.
func (r *Renderer) Flush(b Backend) error {
	defer func() {
		r.frame.queue = r.frame.queue[:0]
	}()

	projectView := r.ProjectView()
	for _, call := range r.frame.queue {
		if err := b.Draw(projectView, call); err != nil {
			return errors.Wrapf(err, "draw %q (%s)", call.Node.ID, call.Payload.DrawableName())
		}
	}
	r.swap()
	return nil
}

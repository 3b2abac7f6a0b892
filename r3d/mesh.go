package r3d

import "github.com/go-gl/mathgl/mgl32"

// Mesh is a drawable referenced by name, with the local box of its
// geometry. The geometry itself belongs to the render backend.
type Mesh struct {
	Name string
	Min  mgl32.Vec3
	Max  mgl32.Vec3

	// RenderData is backend owned (uploaded buffers and the like). It is
	// dropped once the mesh goes a whole frame without being drawn.
	RenderData interface{}
}

func (m *Mesh) DrawableName() string { return m.Name }

func (m *Mesh) LocalBounds() (mgl32.Vec3, mgl32.Vec3) { return m.Min, m.Max }

func (m *Mesh) ClearTempRenderData() { m.RenderData = nil }

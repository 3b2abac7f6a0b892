package r3d_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mogaika/scenegraph_browser/r3d"
)

func TestNewNodeDefaults(t *testing.T) {
	n := r3d.NewNode()

	assert.True(t, n.Display)
	assert.True(t, n.IsGroup())
	assert.Equal(t, mgl32.Vec3{}, n.Position)
	assert.Equal(t, mgl32.Vec3{}, n.Rotation)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, n.Scale)
	assert.Equal(t, mgl32.Ident4(), n.Matrix())
	assert.Equal(t, mgl32.Ident4(), n.WorldMatrix)
	assert.Nil(t, n.Props().Matrix)
	assert.NotEqual(t, r3d.NewNode().UID(), n.UID())
}

func TestConstructionKeepsIdentityUntilUpdate(t *testing.T) {
	p := mgl32.Vec3{1, 2, 3}
	r := mgl32.Vec3{0.3, -0.2, 0.5}
	s := mgl32.Vec3{2, 3, 4}
	n := r3d.NewNode(r3d.Props{Position: &p, Rotation: &r, Scale: &s})

	assert.Equal(t, mgl32.Ident4(), n.Matrix())

	n.Update()
	expected := mgl32.Translate3D(1, 2, 3).
		Mul4(mgl32.HomogRotate3DX(0.3)).
		Mul4(mgl32.HomogRotate3DY(-0.2)).
		Mul4(mgl32.HomogRotate3DZ(0.5)).
		Mul4(mgl32.Scale3D(2, 3, 4))
	assertMat(t, expected, n.Matrix())

	// refresh is idempotent
	n.Update()
	assertMat(t, expected, n.Matrix())
}

var trsTests = []struct {
	name     string
	position mgl32.Vec3
	rotation mgl32.Vec3
	scale    mgl32.Vec3
	in       mgl32.Vec3
	out      mgl32.Vec3
}{
	{"identity", mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, mgl32.Vec3{1, 2, 3}, mgl32.Vec3{1, 2, 3}},
	{"translate", mgl32.Vec3{5, 0, -1}, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, mgl32.Vec3{1, 2, 3}, mgl32.Vec3{6, 2, 2}},
	{"scale before rotate before translate", mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, math.Pi / 2}, mgl32.Vec3{2, 2, 2}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{1, 2, 0}},
	{"y applied before x", mgl32.Vec3{}, mgl32.Vec3{math.Pi / 2, math.Pi / 2, 0}, mgl32.Vec3{1, 1, 1}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}},
}

func TestUpdateComposesTRS(t *testing.T) {
	for _, test := range trsTests {
		t.Run(test.name, func(t *testing.T) {
			n := r3d.NewNode().Update(r3d.Components{
				Position: &test.position,
				Rotation: &test.rotation,
				Scale:    &test.scale,
			})
			assertVec(t, test.out, mgl32.TransformCoordinate(test.in, n.Matrix()))
			assertMat(t, r3d.ComposeTRS(test.position, test.rotation, test.scale), n.Matrix())
		})
	}
}

func TestMatrixPropTakesPrecedence(t *testing.T) {
	m := mgl32.Scale3D(3, 3, 3)
	n := r3d.NewNode(r3d.Props{
		Matrix:   &m,
		Position: r3d.Vec3(10, 10, 10),
	})

	assert.Equal(t, m, n.Matrix())
	assert.Equal(t, mgl32.Vec3{10, 10, 10}, n.Position)
	require.NotNil(t, n.Props().Matrix)
	assert.Equal(t, m, *n.Props().Matrix)
}

func TestSetPropsMerges(t *testing.T) {
	n := r3d.NewNode(r3d.Props{ID: "a", Position: r3d.Vec3(1, 2, 3)})
	n.SetProps(r3d.Props{Display: r3d.Bool(false)})

	assert.Equal(t, "a", n.ID)
	assert.False(t, n.Display)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, n.Position)

	props := n.Props()
	assert.Equal(t, "a", props.ID)
	assert.False(t, *props.Display)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, *props.Position)

	n.SetPosition(mgl32.Vec3{4, 5, 6})
	assert.Equal(t, mgl32.Vec3{4, 5, 6}, *n.Props().Position)
}

func TestSetMatrixCopies(t *testing.T) {
	m := mgl32.Translate3D(1, 0, 0)
	n := r3d.NewNode().SetMatrix(m)
	m[12] = 100

	assert.Equal(t, mgl32.Translate3D(1, 0, 0), n.Matrix())
}

func TestShareMatrixAliases(t *testing.T) {
	h := r3d.NewSharedMatrix(mgl32.Translate3D(1, 0, 0))
	a := r3d.NewNode().ShareMatrix(h)
	b := r3d.NewNode().ShareMatrix(h)

	h.Set(mgl32.Translate3D(0, 7, 0))
	assert.Equal(t, mgl32.Translate3D(0, 7, 0), a.Matrix())
	assert.Equal(t, mgl32.Translate3D(0, 7, 0), b.Matrix())

	h.Mul4(mgl32.Scale3D(2, 2, 2))
	assertMat(t, mgl32.Translate3D(0, 7, 0).Mul4(mgl32.Scale3D(2, 2, 2)), a.Matrix())

	// recomputation writes into the shared storage
	a.Update(r3d.Components{Position: r3d.Vec3(0, 0, 3)})
	assertMat(t, mgl32.Translate3D(0, 0, 3), h.Get())
	assertMat(t, mgl32.Translate3D(0, 0, 3), b.Matrix())
}

func TestSetMatrixComponentsDeferred(t *testing.T) {
	n := r3d.NewNode()
	n.SetMatrixComponents(r3d.Components{Position: r3d.Vec3(1, 1, 1), NoUpdate: true})

	assert.Equal(t, mgl32.Vec3{1, 1, 1}, n.Position)
	assert.Equal(t, mgl32.Ident4(), n.Matrix())

	n.SetMatrixComponents(r3d.Components{Scale: r3d.Vec3(2, 2, 2)})
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, n.Position)
	assertMat(t, mgl32.Translate3D(1, 1, 1).Mul4(mgl32.Scale3D(2, 2, 2)), n.Matrix())
	assert.Nil(t, n.Props().Matrix)
}

func TestComposedFromComponents(t *testing.T) {
	n := r3d.NewNode()
	assert.True(t, n.ComposedFromComponents())

	n.SetPosition(mgl32.Vec3{7, 0, 0})
	assert.False(t, n.ComposedFromComponents())

	n.Update()
	assert.True(t, n.ComposedFromComponents())

	n.SetMatrix(mgl32.HomogRotate3DY(1))
	assert.False(t, n.ComposedFromComponents())
}

func TestSetTranslationKeepsExplicitRotation(t *testing.T) {
	rs := mgl32.HomogRotate3DY(math.Pi / 2).Mul4(mgl32.Scale3D(2, 2, 2))
	n := r3d.NewNode().SetMatrix(rs)

	n.SetTranslation(mgl32.Vec3{0, 3, 0})
	assertMat(t, mgl32.Translate3D(0, 3, 0).Mul4(rs), n.Matrix())
	assert.Equal(t, mgl32.Vec3{0, 3, 0}, n.Position)
	assert.NotNil(t, n.Props().Matrix)

	c := r3d.NewNode()
	c.Update(r3d.Components{Scale: r3d.Vec3(2, 2, 2)})
	c.SetTranslation(mgl32.Vec3{1, 0, 0})
	assertMat(t, mgl32.Translate3D(1, 0, 0).Mul4(mgl32.Scale3D(2, 2, 2)), c.Matrix())
	assert.True(t, c.ComposedFromComponents())
}

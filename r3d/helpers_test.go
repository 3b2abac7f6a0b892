package r3d_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/mogaika/scenegraph_browser/r3d"
)

const eps = 1e-5

type testMesh struct {
	name     string
	min, max mgl32.Vec3
	deleted  int
}

func (m *testMesh) DrawableName() string { return m.name }

func (m *testMesh) Delete() { m.deleted++ }

func (m *testMesh) LocalBounds() (mgl32.Vec3, mgl32.Vec3) { return m.min, m.max }

func closeTo(expected, actual []float32) bool {
	for i := range expected {
		if math.Abs(float64(expected[i]-actual[i])) > eps {
			return false
		}
	}
	return true
}

func assertMat(t *testing.T, expected, actual mgl32.Mat4) {
	t.Helper()
	assert.Truef(t, closeTo(expected[:], actual[:]), "expected\n%v\ngot\n%v", expected, actual)
}

func assertVec(t *testing.T, expected, actual mgl32.Vec3) {
	t.Helper()
	assert.Truef(t, closeTo(expected[:], actual[:]), "expected %v got %v", expected, actual)
}

func ids(nodes []*r3d.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

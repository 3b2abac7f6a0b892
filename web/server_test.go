package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mogaika/scenegraph_browser/scenefile"
)

const testScene = `
name: test
root:
  id: world
  scale: [2, 2, 2]
  children:
    - id: crate
      position: [1, 0, 0]
      mesh: {name: box}
`

func newTestServer(t *testing.T) (*Server, *scenefile.Scene) {
	scene, err := scenefile.Decode(strings.NewReader(testScene))
	require.NoError(t, err)
	return NewServer(scene), scene
}

func do(t *testing.T, s *Server, method, url, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, url, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestJsonScene(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(t, s, "GET", "/json/scene", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Name string    `json:"name"`
		Root *jsonNode `json:"root"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "test", resp.Name)
	require.Len(t, resp.Root.Children, 1)

	crate := resp.Root.Children[0]
	assert.Equal(t, "crate", crate.ID)
	assert.Equal(t, "crate", crate.Path)
	assert.Equal(t, "box", crate.Payload)
	assert.Equal(t, [16]float32(mgl32.Scale3D(2, 2, 2).Mul4(mgl32.Translate3D(1, 0, 0))), crate.WorldMatrix)
}

func TestNodeActions(t *testing.T) {
	s, scene := newTestServer(t)
	crate := scene.Root.FindByID("crate")
	uid := crate.UID().String()

	w := do(t, s, "POST", "/action/node/"+uid+"/display/off", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, crate.Display)

	w = do(t, s, "POST", "/action/node/"+uid+"/position", "[0, 3, 0]")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, mgl32.Scale3D(2, 2, 2).Mul4(mgl32.Translate3D(0, 3, 0)), crate.WorldMatrix)

	var jn jsonNode
	require.NoError(t, json.Unmarshal(do(t, s, "GET", "/json/node/"+uid, "").Body.Bytes(), &jn))
	assert.False(t, jn.Display)
	assert.Equal(t, [3]float32{0, 3, 0}, jn.Position)

	w = do(t, s, "POST", "/action/node/"+uid+"/position", "[0, 3]")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMoveKeepsImportedRotation(t *testing.T) {
	scene, err := scenefile.Decode(strings.NewReader(`
name: imported
root:
  id: world
  children:
    - id: turned
      matrix: [0,0,-2,0, 0,2,0,0, 2,0,0,0, 5,0,0,1]
`))
	require.NoError(t, err)
	s := NewServer(scene)
	turned := scene.Root.FindByID("turned")

	w := do(t, s, "POST", "/action/node/"+turned.UID().String()+"/position", "[0, 3, 0]")
	require.Equal(t, http.StatusOK, w.Code)

	expected := mgl32.Mat4{0, 0, -2, 0, 0, 2, 0, 0, 2, 0, 0, 0, 0, 3, 0, 1}
	assert.Equal(t, expected, turned.Matrix())
	assert.Equal(t, expected, turned.WorldMatrix)
	assert.Equal(t, mgl32.Vec3{0, 3, 0}, turned.Position)
}

func TestNodeLookupErrors(t *testing.T) {
	s, _ := newTestServer(t)

	assert.Equal(t, http.StatusBadRequest, do(t, s, "GET", "/json/node/not-a-uid", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, "GET", "/json/node/00000000-0000-0000-0000-000000000000", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, s, "GET", "/action/node/00000000-0000-0000-0000-000000000000/display/on", "").Code)
}

func TestDownloads(t *testing.T) {
	s, scene := newTestServer(t)

	w := do(t, s, "GET", "/yaml/scene", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "test.yaml")
	reloaded, err := scenefile.Decode(w.Body)
	require.NoError(t, err)
	assert.Equal(t, scene.Root.TreeString(), reloaded.Root.TreeString())

	w = do(t, s, "GET", "/gltf/scene", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "glTF", w.Body.String()[:4])

	w = do(t, s, "GET", "/dump/node/"+scene.Root.UID().String(), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "+: world")
}

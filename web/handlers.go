package web

import (
	"bytes"
	"net/http"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/mogaika/scenegraph_browser/r3d"
	"github.com/mogaika/scenegraph_browser/scenefile"
	"github.com/mogaika/scenegraph_browser/status"
	"github.com/mogaika/scenegraph_browser/utils"
	"github.com/mogaika/scenegraph_browser/utils/gltfutils"
	"github.com/mogaika/scenegraph_browser/webutils"
)

type jsonNode struct {
	UID         string      `json:"uid"`
	ID          string      `json:"id,omitempty"`
	Path        string      `json:"path"`
	Display     bool        `json:"display"`
	Payload     string      `json:"payload,omitempty"`
	Position    [3]float32  `json:"position"`
	Rotation    [3]float32  `json:"rotation"`
	Scale       [3]float32  `json:"scale"`
	Matrix      [16]float32 `json:"matrix"`
	WorldMatrix [16]float32 `json:"worldMatrix"`
	Children    []*jsonNode `json:"children,omitempty"`
}

func marshalNode(n *r3d.Node, recursive bool) *jsonNode {
	jn := &jsonNode{
		UID:         n.UID().String(),
		ID:          n.ID,
		Path:        n.Path(),
		Display:     n.Display,
		Position:    n.Position,
		Rotation:    n.Rotation,
		Scale:       n.Scale,
		Matrix:      n.Matrix(),
		WorldMatrix: n.WorldMatrix,
	}
	if n.Payload != nil {
		jn.Payload = n.Payload.DrawableName()
	}
	if recursive {
		for _, c := range n.Children() {
			jn.Children = append(jn.Children, marshalNode(c, true))
		}
	}
	return jn
}

func writeError(w http.ResponseWriter, err error, code int) {
	webutils.WriteErrorCode(w, err, code)
}

// lookup must be called with s.lock held.
func (s *Server) lookup(param string) (*r3d.Node, int, error) {
	uid, err := uuid.Parse(param)
	if err != nil {
		return nil, http.StatusBadRequest, errors.Wrapf(err, "Invalid node uid %q", param)
	}
	n := s.scene.Root.FindByUID(uid)
	if n == nil {
		return nil, http.StatusNotFound, errors.Errorf("Node %v not found", uid)
	}
	return n, http.StatusOK, nil
}

func (s *Server) HandlerJsonScene(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	defer s.lock.Unlock()

	webutils.WriteJson(w, struct {
		Name string    `json:"name"`
		Root *jsonNode `json:"root"`
	}{s.scene.Name, marshalNode(s.scene.Root, true)})
}

func (s *Server) HandlerJsonNode(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.withNode(w, r, func(n *r3d.Node) {
		webutils.WriteJson(w, marshalNode(n, false))
	})
}

func (s *Server) HandlerDumpNode(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.withNode(w, r, func(n *r3d.Node) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		webutils.WriteResult(w, []byte(n.TreeString()+"\n"+utils.SDump(n.Props())))
	})
}

func (s *Server) HandlerYamlScene(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	defer s.lock.Unlock()

	var buf bytes.Buffer
	if err := scenefile.Encode(&buf, s.scene); err != nil {
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteFile(w, &buf, s.fileName()+".yaml")
}

func (s *Server) HandlerGltfScene(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	defer s.lock.Unlock()

	doc := gltfutils.NewDocument()
	if _, err := gltfutils.ExportTree(doc, s.scene.Root); err != nil {
		webutils.WriteError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := gltfutils.ExportBinary(&buf, doc); err != nil {
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteFile(w, &buf, s.fileName()+".glb")
}

func (s *Server) HandlerActionDisplay(w http.ResponseWriter, r *http.Request) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.withNode(w, r, func(n *r3d.Node) {
		n.Display = mux.Vars(r)["state"] == "on"
		status.Info("node %q display %v", n.Path(), n.Display)
		webutils.WriteJson(w, marshalNode(n, false))
	})
}

func (s *Server) HandlerActionPosition(w http.ResponseWriter, r *http.Request) {
	var position []float32
	if err := webutils.ReadJson(r, &position); err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}
	if len(position) != 3 {
		writeError(w, errors.Errorf("Expected 3 coordinates, got %d", len(position)), http.StatusBadRequest)
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	s.withNode(w, r, func(n *r3d.Node) {
		n.SetTranslation(mgl32.Vec3{position[0], position[1], position[2]})
		s.scene.Root.CompileMatrices()
		status.Info("node %q moved to %v", n.Path(), n.Position)
		webutils.WriteJson(w, marshalNode(n, false))
	})
}

func (s *Server) fileName() string {
	if s.scene.Name == "" {
		return "scene"
	}
	return s.scene.Name
}

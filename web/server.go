package web

import (
	"log"
	"net/http"
	"os"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/mogaika/scenegraph_browser/r3d"
	"github.com/mogaika/scenegraph_browser/scenefile"
	"github.com/mogaika/scenegraph_browser/status"
)

// Server exposes one scene over http. The tree is single threaded, so every
// handler holds lock while touching it.
type Server struct {
	lock  sync.Mutex
	scene *scenefile.Scene

	router *mux.Router
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func NewServer(scene *scenefile.Scene) *Server {
	s := &Server{scene: scene}
	s.scene.Root.CompileMatrices()

	r := mux.NewRouter()
	r.HandleFunc("/json/scene", s.HandlerJsonScene).Methods("GET")
	r.HandleFunc("/json/node/{uid}", s.HandlerJsonNode).Methods("GET")
	r.HandleFunc("/dump/node/{uid}", s.HandlerDumpNode).Methods("GET")
	r.HandleFunc("/yaml/scene", s.HandlerYamlScene).Methods("GET")
	r.HandleFunc("/gltf/scene", s.HandlerGltfScene).Methods("GET")
	r.HandleFunc("/action/node/{uid}/display/{state:on|off}", s.HandlerActionDisplay).Methods("POST")
	r.HandleFunc("/action/node/{uid}/position", s.HandlerActionPosition).Methods("POST")
	r.HandleFunc("/ws/status", HandlerStatus)
	s.router = r

	return s
}

func (s *Server) Handler() http.Handler {
	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(s.router)
}

// withNode runs fn under the scene lock for the node addressed by {uid}.
func (s *Server) withNode(w http.ResponseWriter, r *http.Request, fn func(n *r3d.Node)) {
	n, code, err := s.lookup(mux.Vars(r)["uid"])
	if err != nil {
		writeError(w, err, code)
		return
	}
	fn(n)
}

func HandlerStatus(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[web] ws upgrade error: %v", err)
		return
	}
	status.NewClient(conn)
}

func StartServer(addr string, scene *scenefile.Scene) error {
	s := NewServer(scene)
	h := handlers.LoggingHandler(os.Stdout, s.Handler())

	log.Printf("[web] Starting server %v", addr)
	status.Info("serving scene %q", scene.Name)

	return http.ListenAndServe(addr, h)
}

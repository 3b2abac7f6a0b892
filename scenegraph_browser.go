package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mogaika/scenegraph_browser/config"
	"github.com/mogaika/scenegraph_browser/r3d"
	"github.com/mogaika/scenegraph_browser/scenefile"
	"github.com/mogaika/scenegraph_browser/utils"
	"github.com/mogaika/scenegraph_browser/utils/gltfutils"
	"github.com/mogaika/scenegraph_browser/web"
)

func loadScene(scenePath, gltfPath string) (*scenefile.Scene, error) {
	if scenePath != "" {
		return scenefile.Load(scenePath)
	}

	f, err := os.Open(gltfPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := gltfutils.Decode(f)
	if err != nil {
		return nil, err
	}
	roots, err := gltfutils.ImportScene(doc)
	if err != nil {
		return nil, err
	}
	root := r3d.NewGroup("")
	for _, n := range roots {
		root.Add(n)
	}
	name := strings.TrimSuffix(filepath.Base(gltfPath), filepath.Ext(gltfPath))
	return &scenefile.Scene{Name: name, Root: root}, nil
}

func main() {
	var addr, scenePath, gltfPath, mode string
	var dump bool
	flag.StringVar(&addr, "i", ":8000", "Address of server")
	flag.StringVar(&scenePath, "scene", "", "Path to yaml scene description")
	flag.StringVar(&gltfPath, "gltf", "", "Path to gltf/glb file to browse instead of -scene")
	flag.StringVar(&mode, "gltfmode", string(config.GetGLTFNodeMode()),
		"gltf node transform export mode: "+strings.Join(config.ListGLTFNodeModes(), ", "))
	flag.BoolVar(&dump, "dump", false, "Print the loaded tree before serving")
	flag.Parse()

	if scenePath == "" && gltfPath == "" {
		flag.PrintDefaults()
		return
	}

	if err := config.SetGLTFNodeMode(mode); err != nil {
		log.Fatal(err)
	}

	scene, err := loadScene(scenePath, gltfPath)
	if err != nil {
		log.Fatal(err)
	}

	if dump {
		log.Printf("scene %q:\n%s", scene.Name, scene.Root.TreeString())
		utils.LogDump(scenefile.Describe(scene.Root))
	}

	if err := web.StartServer(addr, scene); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mogaika/scenegraph_browser/config"
	"github.com/mogaika/scenegraph_browser/r3d"
	"github.com/mogaika/scenegraph_browser/render"
	"github.com/mogaika/scenegraph_browser/rendercontext"
	"github.com/mogaika/scenegraph_browser/scenefile"
	"github.com/mogaika/scenegraph_browser/utils"
	"github.com/mogaika/scenegraph_browser/utils/gltfutils"
)

// printBackend logs the frame instead of drawing it.
type printBackend struct{}

func (printBackend) Draw(_ mgl32.Mat4, call render.Call) error {
	log.Printf("draw %-24q %s at %v", call.Node.Path(), call.Payload.DrawableName(), call.Model.Col(3).Vec3())
	return nil
}

func main() {
	var in, out, mode string
	var dump, frame bool
	flag.StringVar(&in, "in", "", "Input yaml scene")
	flag.StringVar(&out, "out", "", "Output .glb file")
	flag.StringVar(&mode, "mode", string(config.GetGLTFNodeMode()),
		"node transform mode: "+strings.Join(config.ListGLTFNodeModes(), ", "))
	flag.BoolVar(&dump, "dump", false, "Dump the scene description")
	flag.BoolVar(&frame, "frame", false, "Print the draw calls of one frame")
	flag.Parse()

	if in == "" {
		flag.PrintDefaults()
		return
	}
	if err := config.SetGLTFNodeMode(mode); err != nil {
		log.Fatal(err)
	}

	scene, err := scenefile.Load(in)
	if err != nil {
		log.Fatal(err)
	}
	if dump {
		utils.Dump(scenefile.Describe(scene.Root))
	}

	if frame {
		camera := r3d.NewOrbitController(mgl32.Vec3{}, 10, 20, 45)
		if bbox, ok := scene.Root.Bounds(); ok {
			camera = r3d.NewOrbitControllerForBox(bbox, 20, 45)
		}
		ren := render.NewRenderer(camera)
		ren.Store = rendercontext.NewStore()
		ren.Collect(scene.Root)
		if err := ren.Flush(printBackend{}); err != nil {
			log.Fatal(err)
		}
	}

	if out == "" {
		return
	}

	doc := gltfutils.NewDocument()
	if _, err := gltfutils.ExportTree(doc, scene.Root); err != nil {
		log.Fatal(err)
	}

	f, err := os.Create(out)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	if err := gltfutils.ExportBinary(f, doc); err != nil {
		log.Fatal(err)
	}
	log.Printf("[sceneconv] %q -> %q", in, out)
}

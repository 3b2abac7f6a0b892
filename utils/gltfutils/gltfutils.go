// Package gltfutils converts transform trees to and from glTF documents.
package gltfutils

import (
	"encoding/json"
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"

	"github.com/mogaika/scenegraph_browser/config"
	"github.com/mogaika/scenegraph_browser/r3d"
	"github.com/mogaika/scenegraph_browser/utils"
)

func NewDocument() *gltf.Document {
	return gltf.NewDocument()
}

// node attributes glTF has no place for
type nodeExtras struct {
	Display *bool       `json:"display,omitempty"`
	Mesh    *meshExtras `json:"mesh,omitempty"`
}

type meshExtras struct {
	Name string     `json:"name"`
	Min  [3]float32 `json:"min"`
	Max  [3]float32 `json:"max"`
}

// ExportTree appends root and its subtree to doc in pre-order and lists
// root in the default scene. Nodes without ID get generated names.
func ExportTree(doc *gltf.Document, root *r3d.Node) (uint32, error) {
	mode := config.GetGLTFNodeMode()
	switch mode {
	case config.GLTFNodeMatrix, config.GLTFNodeTRS:
	default:
		return 0, errors.Errorf("Unsupported gltf node mode %q", mode)
	}

	var names utils.RandomNameGenerator
	root.Traverse(func(n *r3d.Node, _ r3d.TraverseContext) {
		if n.ID != "" {
			names.Reserve(n.ID)
		}
	})

	var export func(n *r3d.Node) uint32
	export = func(n *r3d.Node) uint32 {
		node := &gltf.Node{Name: n.ID}
		if node.Name == "" {
			node.Name = names.RandomName()
		}

		if mode == config.GLTFNodeMatrix || n.Props().Matrix != nil || !n.ComposedFromComponents() {
			node.Matrix = n.Matrix()
		} else {
			q := utils.EulerXYZToQuat(n.Rotation)
			node.Translation = n.Position
			node.Rotation = [4]float32{q.V[0], q.V[1], q.V[2], q.W}
			node.Scale = n.Scale
		}

		var extras nodeExtras
		if !n.Display {
			extras.Display = r3d.Bool(false)
		}
		if mesh, ok := n.Payload.(*r3d.Mesh); ok {
			extras.Mesh = &meshExtras{Name: mesh.Name, Min: mesh.Min, Max: mesh.Max}
		}
		if extras.Display != nil || extras.Mesh != nil {
			node.Extras = &extras
		}

		index := uint32(len(doc.Nodes))
		doc.Nodes = append(doc.Nodes, node)
		for _, c := range n.Children() {
			node.Children = append(node.Children, export(c))
		}
		return index
	}

	index := export(root)
	if len(doc.Scenes) == 0 {
		doc.Scenes = append(doc.Scenes, &gltf.Scene{Name: "Root Scene"})
		doc.Scene = gltf.Index(0)
	}
	scene := doc.Scenes[0]
	if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
		scene = doc.Scenes[*doc.Scene]
	}
	scene.Nodes = append(scene.Nodes, index)
	return index, nil
}

func ExportBinary(w io.Writer, doc *gltf.Document) error {
	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = true
	return errors.Wrap(encoder.Encode(doc), "Failed to encode gltf")
}

func Decode(r io.Reader) (*gltf.Document, error) {
	doc := &gltf.Document{}
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, errors.Wrapf(err, "Failed to read gltf")
	}
	return doc, nil
}

// ImportScene builds one tree per root node of the default scene.
// Without scenes every node that is nobody's child is a root.
func ImportScene(doc *gltf.Document) ([]*r3d.Node, error) {
	var roots []uint32
	if len(doc.Scenes) != 0 {
		scene := doc.Scenes[0]
		if doc.Scene != nil {
			if int(*doc.Scene) >= len(doc.Scenes) {
				return nil, errors.Errorf("Default scene %d out of range", *doc.Scene)
			}
			scene = doc.Scenes[*doc.Scene]
		}
		roots = scene.Nodes
	} else {
		isChild := make([]bool, len(doc.Nodes))
		for _, node := range doc.Nodes {
			for _, c := range node.Children {
				if int(c) < len(isChild) {
					isChild[c] = true
				}
			}
		}
		for i := range doc.Nodes {
			if !isChild[i] {
				roots = append(roots, uint32(i))
			}
		}
	}

	visited := make([]bool, len(doc.Nodes))
	var build func(index uint32) (*r3d.Node, error)
	build = func(index uint32) (*r3d.Node, error) {
		if int(index) >= len(doc.Nodes) {
			return nil, errors.Errorf("Node index %d out of range", index)
		}
		if visited[index] {
			return nil, errors.Errorf("Node %d referenced twice", index)
		}
		visited[index] = true

		gn := doc.Nodes[index]
		n := r3d.NewNode(r3d.Props{ID: gn.Name})
		if err := applyTransform(n, gn); err != nil {
			return nil, errors.Wrapf(err, "node %d %q", index, gn.Name)
		}
		if err := applyExtras(n, gn.Extras); err != nil {
			return nil, errors.Wrapf(err, "node %d %q extras", index, gn.Name)
		}

		for _, ci := range gn.Children {
			child, err := build(ci)
			if err != nil {
				return nil, err
			}
			n.Add(child)
		}
		return n, nil
	}

	nodes := make([]*r3d.Node, 0, len(roots))
	for _, ri := range roots {
		n, err := build(ri)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

var zeroMatrix [16]float32

func applyTransform(n *r3d.Node, gn *gltf.Node) error {
	if gn.Matrix != zeroMatrix && mgl32.Mat4(gn.Matrix) != mgl32.Ident4() {
		n.SetMatrix(mgl32.Mat4(gn.Matrix))
		return nil
	}

	position := mgl32.Vec3(gn.Translation)
	scale := mgl32.Vec3(gn.Scale)
	if scale == (mgl32.Vec3{}) {
		scale = mgl32.Vec3{1, 1, 1}
	}
	rotation := mgl32.Vec3{}
	if gn.Rotation != [4]float32{} {
		q := mgl32.Quat{W: gn.Rotation[3], V: mgl32.Vec3{gn.Rotation[0], gn.Rotation[1], gn.Rotation[2]}}
		if q.Len() == 0 {
			return errors.New("degenerate rotation")
		}
		rotation = utils.QuatToEulerXYZ(q)
	}

	n.Update(r3d.Components{Position: &position, Rotation: &rotation, Scale: &scale})
	return nil
}

func applyExtras(n *r3d.Node, raw interface{}) error {
	if raw == nil {
		return nil
	}
	// decoded documents carry plain maps, exported ones our own struct
	data, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	var extras nodeExtras
	if err := json.Unmarshal(data, &extras); err != nil {
		return err
	}
	if extras.Display != nil {
		n.Display = *extras.Display
	}
	if extras.Mesh != nil {
		n.Payload = &r3d.Mesh{Name: extras.Mesh.Name, Min: extras.Mesh.Min, Max: extras.Mesh.Max}
	}
	return nil
}

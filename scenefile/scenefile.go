// Package scenefile reads and writes transform trees as YAML documents.
//
//	name: demo
//	root:
//	  id: world
//	  children:
//	    - id: crate
//	      position: [1, 0, 0]
//	      rotation: [0, 90, 0]
//	      rotationDegrees: true
//	      mesh: {name: crate, min: [-1, -1, -1], max: [1, 1, 1]}
package scenefile

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mogaika/scenegraph_browser/r3d"
)

type Scene struct {
	Name string
	Root *r3d.Node
}

type document struct {
	Name string   `yaml:"name,omitempty"`
	Root NodeDesc `yaml:"root"`
}

type NodeDesc struct {
	ID      string `yaml:"id,omitempty"`
	Display *bool  `yaml:"display,omitempty"`

	Position        []float32 `yaml:"position,flow,omitempty"`
	Rotation        []float32 `yaml:"rotation,flow,omitempty"`
	RotationDegrees bool      `yaml:"rotationDegrees,omitempty"`
	Scale           []float32 `yaml:"scale,flow,omitempty"`
	// column major, overrides the components
	Matrix []float32 `yaml:"matrix,flow,omitempty"`

	Mesh     *MeshDesc  `yaml:"mesh,omitempty"`
	Children []NodeDesc `yaml:"children,omitempty"`
}

type MeshDesc struct {
	Name string    `yaml:"name"`
	Min  []float32 `yaml:"min,flow,omitempty"`
	Max  []float32 `yaml:"max,flow,omitempty"`
}

func Decode(r io.Reader) (*Scene, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "Failed to decode scene")
	}
	root, err := Build(doc.Root)
	if err != nil {
		return nil, err
	}
	return &Scene{Name: doc.Name, Root: root}, nil
}

func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open scene %q", path)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "scene %q", path)
	}
	return s, nil
}

func Encode(w io.Writer, s *Scene) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&document{Name: s.Name, Root: Describe(s.Root)}); err != nil {
		return errors.Wrap(err, "Failed to encode scene")
	}
	return errors.Wrap(enc.Close(), "Failed to flush scene")
}

func Save(path string, s *Scene) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "Failed to create %q", path)
	}
	if err := Encode(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Build creates the tree described by desc. Local matrices are computed
// from the components unless an explicit matrix is given.
func Build(desc NodeDesc) (*r3d.Node, error) {
	return build(desc, "/"+desc.ID)
}

func build(desc NodeDesc, path string) (*r3d.Node, error) {
	n := r3d.NewNode(r3d.Props{ID: desc.ID, Display: desc.Display})

	hasComponents := false
	for _, c := range []struct {
		name string
		in   []float32
		out  *mgl32.Vec3
	}{
		{"position", desc.Position, &n.Position},
		{"rotation", desc.Rotation, &n.Rotation},
		{"scale", desc.Scale, &n.Scale},
	} {
		if c.in == nil {
			continue
		}
		v, err := vec3(c.in)
		if err != nil {
			return nil, errors.Wrapf(err, "node %q %s", path, c.name)
		}
		*c.out = v
		hasComponents = true
	}
	if desc.RotationDegrees {
		for i := range n.Rotation {
			n.Rotation[i] = mgl32.DegToRad(n.Rotation[i])
		}
	}

	if desc.Matrix != nil {
		if len(desc.Matrix) != 16 {
			return nil, errors.Errorf("node %q matrix: expected 16 values, got %d", path, len(desc.Matrix))
		}
		var m mgl32.Mat4
		copy(m[:], desc.Matrix)
		n.SetMatrix(m)
	} else if hasComponents {
		n.Update()
	}

	if desc.Mesh != nil {
		mesh := &r3d.Mesh{Name: desc.Mesh.Name}
		if desc.Mesh.Min != nil || desc.Mesh.Max != nil {
			var err error
			if mesh.Min, err = vec3(desc.Mesh.Min); err != nil {
				return nil, errors.Wrapf(err, "node %q mesh min", path)
			}
			if mesh.Max, err = vec3(desc.Mesh.Max); err != nil {
				return nil, errors.Wrapf(err, "node %q mesh max", path)
			}
		}
		n.Payload = mesh
	}

	for i, cd := range desc.Children {
		name := cd.ID
		if name == "" {
			name = strconv.Itoa(i)
		}
		child, err := build(cd, strings.TrimSuffix(path, "/")+"/"+name)
		if err != nil {
			return nil, err
		}
		n.Add(child)
	}
	return n, nil
}

// Describe is the inverse of Build.
func Describe(n *r3d.Node) NodeDesc {
	desc := NodeDesc{ID: n.ID}
	if !n.Display {
		desc.Display = r3d.Bool(false)
	}

	props := n.Props()
	if *props.Position != (mgl32.Vec3{}) {
		desc.Position = props.Position[:]
	}
	if *props.Rotation != (mgl32.Vec3{}) {
		desc.Rotation = props.Rotation[:]
	}
	if *props.Scale != (mgl32.Vec3{1, 1, 1}) {
		desc.Scale = props.Scale[:]
	}
	if props.Matrix != nil || !n.ComposedFromComponents() {
		m := n.Matrix()
		desc.Matrix = m[:]
	}

	if mesh, ok := n.Payload.(*r3d.Mesh); ok {
		desc.Mesh = &MeshDesc{Name: mesh.Name}
		if mesh.Min != (mgl32.Vec3{}) || mesh.Max != (mgl32.Vec3{}) {
			desc.Mesh.Min = append([]float32(nil), mesh.Min[:]...)
			desc.Mesh.Max = append([]float32(nil), mesh.Max[:]...)
		}
	}

	for _, c := range n.Children() {
		desc.Children = append(desc.Children, Describe(c))
	}
	return desc
}

func vec3(in []float32) (mgl32.Vec3, error) {
	var v mgl32.Vec3
	if len(in) != 3 {
		return v, errors.Errorf("expected 3 values, got %d", len(in))
	}
	copy(v[:], in)
	return v, nil
}

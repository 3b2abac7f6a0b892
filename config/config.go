package config

import (
	"github.com/pkg/errors"
)

// GLTFNodeMode selects how local transforms are written to glTF nodes.
type GLTFNodeMode string

const (
	// always write the local matrix
	GLTFNodeMatrix GLTFNodeMode = "matrix"
	// write translation/rotation/scale for nodes driven by components,
	// matrix for nodes with an explicit one
	GLTFNodeTRS GLTFNodeMode = "trs"
)

var gltfNodeModes = []GLTFNodeMode{GLTFNodeTRS, GLTFNodeMatrix}

var currentGLTFNodeMode = GLTFNodeTRS

func SetGLTFNodeMode(name string) error {
	for _, mode := range gltfNodeModes {
		if string(mode) == name {
			currentGLTFNodeMode = mode
			return nil
		}
	}
	return errors.Errorf("Unknown gltf node mode %q", name)
}

func ListGLTFNodeModes() []string {
	list := make([]string, 0, len(gltfNodeModes))
	for _, mode := range gltfNodeModes {
		list = append(list, string(mode))
	}
	return list
}

func GetGLTFNodeMode() GLTFNodeMode {
	return currentGLTFNodeMode
}

package libscn

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slices"
)

// Library maps mesh names to meshes. It starts out with the primitives.
type Library struct {
	meshes map[string]*Mesh
}

var primitiveNames = []string{"cube", "sphere", "torus"}

func NewLibrary() *Library {
	lib := &Library{meshes: map[string]*Mesh{}}
	for _, name := range primitiveNames {
		mesh, _ := Primitive(name)
		lib.meshes[name] = mesh
	}
	return lib
}

// Add stores mesh under its name, replacing any mesh of the same name.
func (lib *Library) Add(mesh *Mesh) {
	lib.meshes[mesh.Name] = mesh
}

func (lib *Library) Get(name string) (*Mesh, bool) {
	mesh, ok := lib.meshes[name]
	return mesh, ok
}

// Names in sorted order.
func (lib *Library) Names() []string {
	names := make([]string, 0, len(lib.meshes))
	for name := range lib.meshes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// LoadDir adds every .obj and .geo file in dir. Files that fail to load are
// skipped and reported together in the returned error.
func (lib *Library) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("could not read mesh directory %q: %w", dir, err)
	}
	var errs []error
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".obj", ".geo":
		default:
			continue
		}
		mesh, err := LoadMesh(filepath.Join(dir, entry.Name()))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		lib.Add(mesh)
	}
	return errors.Join(errs...)
}

// Package resources loads named resource text by logical path.
package resources

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
)

// Logical paths of the bundled cost tables.
const (
	ProceduresPath    = "costs/procedures.csv"
	MedicationsPath   = "costs/medications.csv"
	EncountersPath    = "costs/encounters.csv"
	ImmunizationsPath = "costs/immunizations.csv"
)

//go:embed costs/*.csv
var bundled embed.FS

// Loader reads resource text by logical path.
type Loader interface {
	ReadResource(name string) (string, error)
}

// FSLoader reads resources from a file system.
type FSLoader struct {
	fsys fs.FS
}

// NewFSLoader creates a loader backed by fsys.
func NewFSLoader(fsys fs.FS) *FSLoader {
	return &FSLoader{
		fsys: fsys,
	}
}

// Bundled returns a loader over the resources compiled into the binary.
func Bundled() *FSLoader {
	return NewFSLoader(bundled)
}

// NewLoader returns a directory loader when dir is set, the bundled loader otherwise.
func NewLoader(dir string) (*FSLoader, error) {
	if dir == "" {
		return Bundled(), nil
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("resource directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("resource directory %s is not a directory", dir)
	}

	return NewFSLoader(os.DirFS(dir)), nil
}

// ReadResource returns the full text of the named resource.
func (l *FSLoader) ReadResource(name string) (string, error) {
	clean := path.Clean(name)
	if !fs.ValidPath(clean) {
		return "", fmt.Errorf("invalid resource path: %s", name)
	}

	data, err := fs.ReadFile(l.fsys, clean)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("resource %s not found: %w", name, err)
		}
		return "", fmt.Errorf("failed to read resource %s: %w", name, err)
	}

	return string(data), nil
}

package variants

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// overlayPattern is passed to os.CreateTemp, the "*" is replaced by a
// random string.
const overlayPattern = "variant_*.yaml"

// OverlayFile is a variant document written to a temporary file so that it
// can be handed to the build tool as an extra variant config.
type OverlayFile struct {
	path string
}

// NewOverlayFile writes doc to a new temporary file in dir (the default
// temporary directory if dir is empty). The file is closed when this
// returns; callers must call Cleanup once the file is no longer needed.
func NewOverlayFile(dir string, doc Document) (*OverlayFile, error) {
	tmpfile, err := os.CreateTemp(dir, overlayPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary variant file: %w", err)
	}
	f := &OverlayFile{path: tmpfile.Name()}

	enc := yaml.NewEncoder(tmpfile)
	if err := enc.Encode(doc); err != nil {
		tmpfile.Close()
		f.Cleanup()
		return nil, fmt.Errorf("failed to write temporary variant file: %w", err)
	}
	if err := enc.Close(); err != nil {
		tmpfile.Close()
		f.Cleanup()
		return nil, fmt.Errorf("failed to write temporary variant file: %w", err)
	}
	if err := tmpfile.Close(); err != nil {
		f.Cleanup()
		return nil, fmt.Errorf("failed to close temporary variant file: %w", err)
	}

	return f, nil
}

func (f *OverlayFile) Path() string {
	return f.path
}

// Cleanup removes the file. Removing an already removed file is not an
// error.
func (f *OverlayFile) Cleanup() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove temporary variant file: %w", err)
	}
	return nil
}

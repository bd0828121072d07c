// Package variants loads the variant matrix of a recipe and narrows it to a
// single MPI implementation.
package variants

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/mpi-recipes/build-variant/pkg/mpivariant"
)

// Filename is the name of the variant matrix inside a recipe directory.
const Filename = "variants.yaml"

var (
	ErrNotFound    = errors.New("variant file not found")
	ErrMissingAxis = fmt.Errorf("%q key not found", mpivariant.AxisKey)
)

// Document is a decoded variant matrix: each top-level key is a build axis.
type Document map[string]any

// Load reads and decodes Filename from the given recipe directory. The
// returned document is guaranteed to contain the MPI axis key.
func Load(dir fs.FS) (Document, error) {
	return loadFile(dir, Filename)
}

func loadFile(dir fs.FS, filepath string) (Document, error) {
	filepath = path.Clean(filepath)

	file, err := dir.Open(filepath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, filepath)
		}
		return nil, fmt.Errorf("cannot open variant file %s: %w", filepath, err)
	}
	defer file.Close()

	var doc Document
	if err := yaml.NewDecoder(file).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode variant file %s: %w", filepath, err)
	}

	if _, ok := doc[mpivariant.AxisKey]; !ok {
		return nil, fmt.Errorf("%w in %s", ErrMissingAxis, filepath)
	}

	return doc, nil
}

// Narrow returns a deep copy of the document that only builds for v: the
// MPI axis is replaced by the single value v, and the top-level override
// blocks of every other implementation are dropped. Keys nested deeper are
// left alone.
func (d Document) Narrow(v mpivariant.Variant) Document {
	narrowed := deepCopy(map[string]any(d)).(map[string]any)
	narrowed[mpivariant.AxisKey] = []any{v.String()}
	for _, other := range v.Others() {
		delete(narrowed, other.String())
	}
	return Document(narrowed)
}

func deepCopy(v any) any {
	switch v := v.(type) {
	case map[string]any:
		c := make(map[string]any, len(v))
		for k, val := range v {
			c[k] = deepCopy(val)
		}
		return c
	case map[any]any:
		c := make(map[any]any, len(v))
		for k, val := range v {
			c[k] = deepCopy(val)
		}
		return c
	case []any:
		c := make([]any, len(v))
		for i, val := range v {
			c[i] = deepCopy(val)
		}
		return c
	case []string:
		c := make([]string, len(v))
		copy(c, v)
		return c
	default:
		// scalars are immutable
		return v
	}
}

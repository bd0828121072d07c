// Package variantbuild builds a recipe for a single MPI variant: it narrows
// the variant matrix of the recipe, writes it to a temporary variant config
// and runs the build tool with it.
package variantbuild

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/mpi-recipes/build-variant/pkg/mpivariant"
	"github.com/mpi-recipes/build-variant/pkg/rattlerbuild"
	"github.com/mpi-recipes/build-variant/pkg/shutil"
	"github.com/mpi-recipes/build-variant/pkg/variants"
)

// DefaultBaseConfig is the variant config shared by all builds of a recipe,
// relative to the recipe directory.
const DefaultBaseConfig = "conda_build_config.yaml"

// Error is returned by Build and tells which build failed.
type Error struct {
	Package string
	Variant mpivariant.Variant
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%s): %s", e.Package, e.Variant, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

type Builder struct {
	Log logrus.FieldLogger

	// BuildTool is passed to rattlerbuild.Invocation.
	BuildTool string
	// BaseConfig is resolved relative to the recipe directory unless it
	// is absolute. DefaultBaseConfig if empty.
	BaseConfig string
	// TempDir holds the generated variant config, os.TempDir() if empty.
	TempDir string

	Stdout io.Writer
	Stderr io.Writer
}

func (b *Builder) baseConfig(recipeDir string) string {
	base := b.BaseConfig
	if base == "" {
		base = DefaultBaseConfig
	}
	if filepath.IsAbs(base) {
		return base
	}
	return filepath.Join(recipeDir, base)
}

// packageName is the base name of the recipe directory, "." and relative
// paths are resolved against the working directory first.
func packageName(recipeDir string) string {
	if abs, err := filepath.Abs(recipeDir); err == nil {
		recipeDir = abs
	}
	return filepath.Base(filepath.Clean(recipeDir))
}

// Build builds the recipe in recipeDir for the given MPI variant. The
// generated variant config is removed before Build returns.
func (b *Builder) Build(recipeDir string, v mpivariant.Variant) error {
	pkgName := packageName(recipeDir)
	wrap := func(err error) error {
		return &Error{Package: pkgName, Variant: v, Err: err}
	}
	log := b.Log.WithFields(logrus.Fields{
		"package": pkgName,
		"mpi":     v.String(),
	})

	log.Infof("Starting build for %q with MPI variant %s", pkgName, v)

	log.Infof("Reading base variants from %q", filepath.Join(recipeDir, variants.Filename))
	doc, err := variants.Load(os.DirFS(recipeDir))
	if err != nil {
		return wrap(err)
	}

	narrowed := doc.Narrow(v)
	log.Infof("Generated specific config for %s", v)

	overlay, err := variants.NewOverlayFile(b.TempDir, narrowed)
	if err != nil {
		return wrap(err)
	}
	log.Debugf("Temporary variant file created at: %s", overlay.Path())
	defer func() {
		if err := overlay.Cleanup(); err != nil {
			log.Warn(err)
			return
		}
		log.Debugf("Cleaned up temporary file: %s", overlay.Path())
	}()

	inv := &rattlerbuild.Invocation{
		Binary:        b.BuildTool,
		BaseConfig:    b.baseConfig(recipeDir),
		VariantConfig: overlay.Path(),
		Recipe:        recipeDir,
		Stdout:        b.Stdout,
		Stderr:        b.Stderr,
	}
	log.Infof("Executing command: %s", shutil.QuoteArgs(inv.Args()))
	if err := rattlerbuild.Run(inv); err != nil {
		return wrap(err)
	}

	log.Infof("Build successful for %s (%s)", pkgName, v)
	return nil
}

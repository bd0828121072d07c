// Package rattlerbuild runs rattler-build for a single recipe.
package rattlerbuild

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
)

// DefaultBinary is looked up in $PATH unless a different tool is
// configured.
const DefaultBinary = "rattler-build"

// SccacheEnv is added to the environment of every build.
const SccacheEnv = "USE_SCCACHE=1"

var ErrNotFound = errors.New("build tool not found")

// BuildError is returned when the build tool ran but did not succeed.
type BuildError struct {
	ExitCode int
}

func (e *BuildError) Error() string {
	if e.ExitCode < 0 {
		return "build tool was terminated"
	}
	return fmt.Sprintf("build tool exited with status %d", e.ExitCode)
}

// Invocation describes one "rattler-build build" run.
type Invocation struct {
	// Binary is the build tool, DefaultBinary if empty.
	Binary string
	// BaseConfig is the variant config shared by all builds of the recipe.
	BaseConfig string
	// VariantConfig is applied on top of BaseConfig.
	VariantConfig string
	// Recipe is the recipe directory.
	Recipe string

	// Stdout and Stderr default to the ones of the current process.
	Stdout io.Writer
	Stderr io.Writer
}

func (inv *Invocation) binary() string {
	if inv.Binary == "" {
		return DefaultBinary
	}
	return inv.Binary
}

// Args returns the full command line, starting with the binary.
func (inv *Invocation) Args() []string {
	return []string{
		inv.binary(),
		"build",
		"--experimental",
		"-m", inv.BaseConfig,
		"-m", inv.VariantConfig,
		"--no-build-id",
		"--recipe", inv.Recipe,
	}
}

// Env returns the environment of the build process.
func (inv *Invocation) Env() []string {
	return append(os.Environ(), SccacheEnv)
}

// Command returns the command for the invocation without starting it.
func (inv *Invocation) Command() *exec.Cmd {
	args := inv.Args()
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Env = inv.Env()
	cmd.Stdout = inv.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = inv.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	return cmd
}

// Run runs the build and waits for it to finish. A build tool that cannot
// be found yields ErrNotFound, a failing build a *BuildError.
func Run(inv *Invocation) error {
	cmd := inv.Command()
	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		return &BuildError{ExitCode: exitErr.ExitCode()}
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %q, is it installed and in your PATH?", ErrNotFound, inv.binary())
	default:
		return fmt.Errorf("error running %s: %w", inv.binary(), err)
	}
}

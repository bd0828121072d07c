package test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// only shell builtins are used so that the stub works with an empty $PATH
const buildToolStub = `#!/bin/sh
printf '%%s\n' "$@" > "$0.args"
printf 'USE_SCCACHE=%%s\n' "$USE_SCCACHE" > "$0.env"
if [ -n "$6" ] && [ -f "$6" ]; then
	while IFS= read -r line; do printf '%%s\n' "$line"; done < "$6" > "$0.overlay"
fi
echo "stub build tool output"
exit %d
`

// BuildTool is a fake build tool that records how it was called.
type BuildTool struct {
	// Path is the absolute path of the stub executable.
	Path string
}

// MockBuildTool writes a stub named name into a new temporary directory.
// The stub exits with exitCode. If inPath is set, $PATH is set to just the
// stub directory for the rest of the test.
func MockBuildTool(t *testing.T, name string, exitCode int, inPath bool) *BuildTool {
	t.Helper()

	dir := t.TempDir()
	stubPath := filepath.Join(dir, name)
	// #nosec G306
	if err := os.WriteFile(stubPath, []byte(fmt.Sprintf(buildToolStub, exitCode)), 0755); err != nil {
		t.Fatalf("cannot write build tool stub: %v", err)
	}
	if inPath {
		t.Setenv("PATH", dir)
	}
	return &BuildTool{Path: stubPath}
}

func (bt *BuildTool) readRecorded(t *testing.T, suffix string) string {
	t.Helper()

	data, err := os.ReadFile(bt.Path + suffix)
	if err != nil {
		t.Fatalf("cannot read recorded %s of build tool stub: %v", suffix, err)
	}
	return string(data)
}

// Called returns true if the stub was run.
func (bt *BuildTool) Called() bool {
	_, err := os.Stat(bt.Path + ".args")
	return err == nil
}

// Args returns the arguments (without argv[0]) of the last call.
func (bt *BuildTool) Args(t *testing.T) []string {
	return strings.Split(strings.TrimSuffix(bt.readRecorded(t, ".args"), "\n"), "\n")
}

// Env returns the USE_SCCACHE line as seen by the last call.
func (bt *BuildTool) Env(t *testing.T) string {
	return strings.TrimSpace(bt.readRecorded(t, ".env"))
}

// Overlay returns the content of the variant config passed as the second
// "-m" argument of the last call.
func (bt *BuildTool) Overlay(t *testing.T) string {
	return bt.readRecorded(t, ".overlay")
}

package buildopts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mpi-recipes/build-variant/pkg/buildopts"
)

func TestBuildOptsBool(t *testing.T) {
	for _, tc := range []struct {
		envStr   string
		expected bool
	}{
		{"", false},
		{"debug=0", false},
		{"debug=f", false},
		{"debug=false", false},
		{"debug=nope", false},
		{"debug=1", true},
		{"debug=true", true},
		{"debug", true},
		{"build-tool=/bin/true,debug", true},
		{"build-tool=/bin/true, debug", true},
		{",,debug,", true},
	} {
		t.Run(tc.envStr, func(t *testing.T) {
			t.Setenv("BUILD_VARIANT_OPTIONS", tc.envStr)

			assert.Equal(t, tc.expected, buildopts.Bool(buildopts.Debug))
		})
	}
}

func TestBuildOptsString(t *testing.T) {
	for _, tc := range []struct {
		envStr   string
		expected string
	}{
		{"", ""},
		{"debug", ""},
		{"unrelated=stropt", ""},
		{"build-tool=/opt/rb", "/opt/rb"},
		{"debug,build-tool=/opt/rb", "/opt/rb"},
		{"build-tool=rb=1", "rb=1"},
	} {
		t.Run(tc.envStr, func(t *testing.T) {
			t.Setenv("BUILD_VARIANT_OPTIONS", tc.envStr)

			assert.Equal(t, tc.expected, buildopts.String(buildopts.BuildTool))
		})
	}
}

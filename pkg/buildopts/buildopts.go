// Package buildopts reads tool options from the environment so CI jobs can
// tweak a build without changing the command line.
//
// BUILD_VARIANT_OPTIONS is a comma separated list of "key" or "key=value"
// entries, e.g. "debug,build-tool=/opt/rattler/bin/rattler-build".
package buildopts

import (
	"os"
	"strconv"
	"strings"
)

const envKEY = "BUILD_VARIANT_OPTIONS"

const (
	// BuildTool overrides the build tool binary.
	BuildTool = "build-tool"
	// Debug enables debug logging.
	Debug = "debug"
)

func options() map[string]string {
	optMap := map[string]string{}

	env := os.Getenv(envKEY)
	if env == "" {
		return optMap
	}

	for _, s := range strings.Split(env, ",") {
		l := strings.SplitN(strings.TrimSpace(s), "=", 2)
		switch len(l) {
		case 1:
			if l[0] != "" {
				optMap[l[0]] = "true"
			}
		case 2:
			optMap[l[0]] = l[1]
		}
	}

	return optMap
}

// Bool returns true if there is a boolean option with the given
// option name
func Bool(option string) bool {
	b, err := strconv.ParseBool(options()[option])
	if err != nil {
		// not much we can do for invalid inputs, just assume false
		return false
	}
	return b
}

func String(option string) string {
	return options()[option]
}

// Package shutil has helpers for rendering command lines for humans.
package shutil

import (
	"regexp"
	"strings"
)

var unsafeChar = regexp.MustCompile(`[^\w@%+=:,./-]`)

// Quote returns a shell-escaped version of s, suitable for copy/pasting
// into a POSIX shell.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	if !unsafeChar.MatchString(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

// QuoteArgs quotes every element of args and joins them with spaces.
func QuoteArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		quoted[i] = Quote(arg)
	}
	return strings.Join(quoted, " ")
}

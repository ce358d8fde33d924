// Package applescript runs AppleScript snippets via osascript.
package applescript

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes an AppleScript and returns its stdout. Implemented by
// Osascript for real use and by fakes in tests.
type Runner interface {
	Run(ctx context.Context, script string) (string, error)
}

// Osascript runs scripts through the osascript binary.
type Osascript struct{}

func (Osascript) Run(ctx context.Context, script string) (string, error) {
	cmd := exec.CommandContext(ctx, "osascript", "-e", script)
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("osascript failed: %w", err)
	}
	return string(out), nil
}

// Escape escapes backslash and double-quote so a string can be embedded
// in an AppleScript string literal.
func Escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}

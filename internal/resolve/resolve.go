// Package resolve decides what happens to a shortened path that is still too
// long for the player.
//
// A Resolver receives the candidate (relative, slash-separated) and the
// exclusive length ceiling and returns a replacement that fits, or an error
// marked services.ErrSkipped or services.ErrAborted.
package resolve

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/mattn/go-isatty"

	"m8org/internal/services"
	"m8org/internal/textutil"
)

// Policies accepted by ForPolicy.
const (
	PolicyPrompt   = "prompt"
	PolicyTruncate = "truncate"
	PolicySkip     = "skip"
)

// Resolver shortens an overlong output path.
type Resolver interface {
	Resolve(ctx context.Context, candidate string, limit int) (string, error)
}

// ForPolicy returns the resolver for a configured policy. The prompt policy
// degrades to skip when interactive is false.
func ForPolicy(policy string, in io.Reader, out io.Writer, interactive bool) (Resolver, error) {
	switch strings.ToLower(strings.TrimSpace(policy)) {
	case PolicyPrompt, "":
		if !interactive {
			return Skip{}, nil
		}
		return NewPrompt(in, out), nil
	case PolicyTruncate:
		return Truncate{}, nil
	case PolicySkip:
		return Skip{}, nil
	default:
		return nil, services.Wrap(services.ErrConfiguration, "resolve", "policy",
			fmt.Sprintf("unknown overlong policy %q", policy), nil)
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Skip leaves overlong files unconverted.
type Skip struct{}

// Resolve always reports the file as skipped.
func (Skip) Resolve(_ context.Context, candidate string, limit int) (string, error) {
	return "", services.Wrap(services.ErrSkipped, "resolve", "skip",
		fmt.Sprintf("%s is %d characters, limit is below %d", candidate, textutil.Length(candidate), limit), nil)
}

// CleanReplacement normalizes an operator-supplied path: backslashes become
// slashes, each segment is sanitized, and the result must stay relative to
// the destination root.
func CleanReplacement(value string) (string, error) {
	value = strings.TrimSpace(strings.ReplaceAll(value, "\\", "/"))
	if value == "" {
		return "", fmt.Errorf("empty path")
	}
	if strings.HasPrefix(value, "/") {
		return "", fmt.Errorf("%q is absolute; enter a path relative to the destination", value)
	}
	raw := strings.Split(value, "/")
	segments := make([]string, 0, len(raw))
	for _, segment := range raw {
		if segment == ".." {
			return "", fmt.Errorf("%q leaves the destination directory", value)
		}
		segment = textutil.SanitizeSegment(segment)
		if segment == "" || segment == "." {
			continue
		}
		segments = append(segments, segment)
	}
	if len(segments) == 0 {
		return "", fmt.Errorf("%q has no usable path segments", value)
	}
	return path.Join(segments...), nil
}

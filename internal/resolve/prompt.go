package resolve

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"m8org/internal/services"
	"m8org/internal/textutil"
)

// Prompt asks the operator for a replacement until one fits.
type Prompt struct {
	scanner *bufio.Scanner
	writer  io.Writer
}

// NewPrompt creates a Prompt reading replacements from reader. The same
// reader is used for every file in a run.
func NewPrompt(reader io.Reader, writer io.Writer) *Prompt {
	return &Prompt{
		scanner: bufio.NewScanner(reader),
		writer:  writer,
	}
}

// Resolve shows the current candidate and reads a new one. Blank lines and
// rejected paths repeat the question; end of input aborts the run.
func (p *Prompt) Resolve(ctx context.Context, candidate string, limit int) (string, error) {
	current := candidate
	for textutil.Length(current) >= limit {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		fmt.Fprintf(p.writer, "Output %s is longer than %d characters. Edit?\n", current, limit)
		fmt.Fprint(p.writer, "> ")

		if !p.scanner.Scan() {
			if err := p.scanner.Err(); err != nil {
				return "", services.Wrap(services.ErrAborted, "resolve", "prompt", "read input", err)
			}
			return "", services.Wrap(services.ErrAborted, "resolve", "prompt", "end of input", nil)
		}
		line := strings.TrimSpace(p.scanner.Text())
		if line == "" {
			continue
		}
		cleaned, err := CleanReplacement(line)
		if err != nil {
			fmt.Fprintf(p.writer, "Rejected: %v\n", err)
			continue
		}
		current = cleaned
	}
	return current, nil
}

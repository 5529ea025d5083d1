package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrExternalTool  = errors.New("external tool error")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrTimeout       = errors.New("timeout")
	ErrTransient     = errors.New("transient failure")
	// ErrSkipped marks a file that was deliberately left unconverted.
	ErrSkipped = errors.New("skipped")
	// ErrAborted marks a run the operator ended early.
	ErrAborted = errors.New("aborted")
)

// Entry outcomes recorded in run history.
const (
	StatusConverted = "converted"
	StatusPlanned   = "planned"
	StatusExists    = "exists"
	StatusSkipped   = "skipped"
	StatusAborted   = "aborted"
	StatusFailed    = "failed"
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later status classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// FailureStatus maps a per-file error to the history status the organizer
// should persist for it.
func FailureStatus(err error) string {
	switch {
	case errors.Is(err, ErrSkipped):
		return StatusSkipped
	case errors.Is(err, ErrAborted):
		return StatusAborted
	default:
		return StatusFailed
	}
}

// IsFatal reports whether err should end the whole run instead of just the
// current file.
func IsFatal(err error) bool {
	return errors.Is(err, ErrAborted) || errors.Is(err, ErrConfiguration) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}

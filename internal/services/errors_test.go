package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"m8org/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "convert", "ffmpeg", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"convert", "ffmpeg", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected placeholder detail, got %q", err.Error())
	}
}

func TestFailureStatusMapping(t *testing.T) {
	skipped := services.Wrap(services.ErrSkipped, "resolve", "", "path too long", nil)
	if status := services.FailureStatus(skipped); status != services.StatusSkipped {
		t.Fatalf("expected skipped, got %s", status)
	}

	aborted := services.Wrap(services.ErrAborted, "resolve", "prompt", "end of input", nil)
	if status := services.FailureStatus(aborted); status != services.StatusAborted {
		t.Fatalf("expected aborted, got %s", status)
	}

	toolErr := services.Wrap(services.ErrExternalTool, "convert", "ffmpeg", "exit 1", errors.New("io"))
	if status := services.FailureStatus(toolErr); status != services.StatusFailed {
		t.Fatalf("expected failed for tool error, got %s", status)
	}

	if status := services.FailureStatus(nil); status != services.StatusFailed {
		t.Fatalf("expected failed for nil error, got %s", status)
	}
}

func TestIsFatal(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{services.Wrap(services.ErrAborted, "resolve", "", "end of input", nil), true},
		{fmt.Errorf("convert: %w", context.Canceled), true},
		{services.Wrap(services.ErrExternalTool, "convert", "", "", nil), false},
		{services.Wrap(services.ErrSkipped, "resolve", "", "", nil), false},
	}
	for _, tc := range cases {
		if got := services.IsFatal(tc.err); got != tc.want {
			t.Fatalf("IsFatal(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

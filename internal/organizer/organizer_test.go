package organizer_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"m8org/internal/config"
	"m8org/internal/convert"
	"m8org/internal/history"
	"m8org/internal/logging"
	"m8org/internal/organizer"
	"m8org/internal/resolve"
	"m8org/internal/services"
	"m8org/internal/testsupport"
)

type harness struct {
	cfg   *config.Config
	store *history.Store
	out   *bytes.Buffer
	org   *organizer.Organizer
}

func newHarness(t *testing.T, cfg *config.Config, in io.Reader) *harness {
	t.Helper()
	if in == nil {
		in = strings.NewReader("")
	}
	store := testsupport.MustOpenHistory(t, cfg)
	conv, err := convert.NewFFmpeg(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("NewFFmpeg: %v", err)
	}
	out := &bytes.Buffer{}
	res, err := resolve.ForPolicy(cfg.Limits.OverlongPolicy, in, out, true)
	if err != nil {
		t.Fatalf("ForPolicy: %v", err)
	}
	return &harness{
		cfg:   cfg,
		store: store,
		out:   out,
		org:   organizer.New(cfg, store, conv, res, out, logging.NewNop()),
	}
}

func TestRunShortensAndConvertsWorkedExample(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	testsupport.WriteSamples(t, cfg, "Drum Loops/Kick-Drum (1).wav", "Drum Loops/Snare Drums.wav", "Drum Loops/readme.txt")
	h := newHarness(t, cfg, nil)

	summary, err := h.org.Run(context.Background(), organizer.Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Attempted != 2 || summary.Converted != 2 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	wantOutputs := []string{"drum/kick_drum_1.wav", "snare_drums.wav"}
	for i, want := range wantOutputs {
		if got := summary.Results[i].Short; got != want {
			t.Fatalf("result %d short = %q, want %q", i, got, want)
		}
		if _, err := os.Stat(filepath.Join(cfg.Paths.DestDir, filepath.FromSlash(want))); err != nil {
			t.Fatalf("expected converted file %s: %v", want, err)
		}
	}

	report := h.out.String()
	wantReport := "Input Drum Loops/Kick-Drum (1).wav\nOutput drum/kick_drum_1.wav\n" +
		"Input Drum Loops/Snare Drums.wav\nOutput snare_drums.wav\n" +
		"2 files processed\n"
	if report != wantReport {
		t.Fatalf("unexpected report:\n%s\nwant:\n%s", report, wantReport)
	}

	run, err := h.store.GetRun(context.Background(), summary.RunID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if !run.Finished() || run.Counts != summary.Counts() {
		t.Fatalf("unexpected history run: %+v", run)
	}
	entries, err := h.store.Entries(context.Background(), summary.RunID)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 2 || entries[0].SourcePath != "Drum Loops/Kick-Drum (1).wav" || entries[0].Status != services.StatusConverted {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestRunStartsEachRunWithFreshWords(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries(), testsupport.WithConfig(func(c *config.Config) {
		c.Convert.SkipExisting = false
	}))
	testsupport.WriteSamples(t, cfg, "Drum Loops/Kick.wav")
	h := newHarness(t, cfg, nil)

	for i := 0; i < 2; i++ {
		summary, err := h.org.Run(context.Background(), organizer.Options{})
		if err != nil {
			t.Fatalf("Run %d: %v", i, err)
		}
		if got := summary.Results[0].Short; got != "drum/kick.wav" {
			t.Fatalf("run %d short = %q; words leaked between runs", i, got)
		}
	}
}

func TestRunSkipsExistingDestination(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	testsupport.WriteSamples(t, cfg, "Drum Loops/Kick-Drum (1).wav")
	testsupport.WriteFile(t, filepath.Join(cfg.Paths.DestDir, "drum", "kick_drum_1.wav"), 8)
	h := newHarness(t, cfg, nil)

	summary, err := h.org.Run(context.Background(), organizer.Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Skipped != 1 || summary.Converted != 0 || summary.Results[0].Status != services.StatusExists {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	data, err := os.ReadFile(filepath.Join(cfg.Paths.DestDir, "drum", "kick_drum_1.wav"))
	if err != nil {
		t.Fatalf("read existing: %v", err)
	}
	if string(data) == "RIFF" {
		t.Fatal("existing destination was overwritten")
	}
}

func TestDryRunConvertsNothing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteSamples(t, cfg, "Bass/Sub One.flac", "Bass/Sub Two.flac")
	store := testsupport.MustOpenHistory(t, cfg)
	org := organizer.New(cfg, store, nil, resolve.Skip{}, nil, nil)

	summary, err := org.Run(context.Background(), organizer.Options{DryRun: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Planned != 2 || summary.Converted != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Results[0].Short != "bass/sub_one.wav" || summary.Results[1].Short != "sub_two.wav" {
		t.Fatalf("unexpected plan: %+v", summary.Results)
	}
	if _, err := os.Stat(cfg.Paths.DestDir); !os.IsNotExist(err) {
		t.Fatalf("dry run touched destination: %v", err)
	}
	run, err := store.GetRun(context.Background(), summary.RunID)
	if err != nil || !run.DryRun {
		t.Fatalf("expected dry run recorded, got %+v %v", run, err)
	}
}

func TestRunContinuesAfterConversionFailure(t *testing.T) {
	script := `#!/bin/sh
case "$*" in
*bad*) echo "Invalid data found when processing input" >&2; exit 1;;
esac
for last; do :; done
printf 'RIFF' > "$last"
`
	cfg := testsupport.NewConfig(t, testsupport.WithStubScript("ffmpeg", script))
	testsupport.WriteSamples(t, cfg, "Kit/bad.wav", "Kit/good.wav")
	h := newHarness(t, cfg, nil)

	summary, err := h.org.Run(context.Background(), organizer.Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Attempted != 2 || summary.Failed != 1 || summary.Converted != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	failed := summary.Results[0]
	if failed.Status != services.StatusFailed || !errors.Is(failed.Err, services.ErrExternalTool) {
		t.Fatalf("unexpected failed result: %+v", failed)
	}
	entries, err := h.store.Entries(context.Background(), summary.RunID)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if !strings.Contains(entries[0].Message, "Invalid data found") {
		t.Fatalf("expected failure detail in history, got %q", entries[0].Message)
	}
}

func TestOverlongPolicies(t *testing.T) {
	shortLimits := func(c *config.Config) { c.Limits.MaxOutputLength = 16 }

	t.Run("skip", func(t *testing.T) {
		cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries(), testsupport.WithConfig(shortLimits))
		testsupport.WriteSamples(t, cfg, "Percussion/Snare Roll Long.wav", "Zeta/z.wav")
		h := newHarness(t, cfg, nil)

		summary, err := h.org.Run(context.Background(), organizer.Options{})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if summary.Overlong != 1 || summary.Skipped != 1 || summary.Converted != 1 {
			t.Fatalf("unexpected summary: %+v", summary)
		}
		if summary.Results[0].Status != services.StatusSkipped {
			t.Fatalf("expected skipped status, got %+v", summary.Results[0])
		}
		if strings.Contains(h.out.String(), "Output percussion") {
			t.Fatalf("skipped file should not report an output: %q", h.out.String())
		}
	})

	t.Run("truncate", func(t *testing.T) {
		cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries(), testsupport.WithConfig(shortLimits), testsupport.WithPolicy("truncate"))
		testsupport.WriteSamples(t, cfg, "Percussion/Snare Roll Long.wav")
		h := newHarness(t, cfg, nil)

		summary, err := h.org.Run(context.Background(), organizer.Options{})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if summary.Overlong != 1 || summary.Converted != 1 {
			t.Fatalf("unexpected summary: %+v", summary)
		}
		if got := summary.Results[0].Short; got != "percussio/s.wav" {
			t.Fatalf("unexpected truncated path %q", got)
		}
	})

	t.Run("prompt", func(t *testing.T) {
		cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries(), testsupport.WithConfig(shortLimits), testsupport.WithPolicy("prompt"))
		testsupport.WriteSamples(t, cfg, "Percussion/Snare Roll Long.wav")
		h := newHarness(t, cfg, strings.NewReader("perc/roll.wav\n"))

		summary, err := h.org.Run(context.Background(), organizer.Options{})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if got := summary.Results[0].Short; got != "perc/roll.wav" {
			t.Fatalf("unexpected edited path %q", got)
		}
		if !strings.Contains(h.out.String(), "Output percussion/snare_roll_long.wav is longer than 16 characters. Edit?") {
			t.Fatalf("expected prompt in report: %q", h.out.String())
		}
		if _, err := os.Stat(filepath.Join(cfg.Paths.DestDir, "perc", "roll.wav")); err != nil {
			t.Fatalf("expected edited destination: %v", err)
		}
	})

	t.Run("prompt end of input aborts", func(t *testing.T) {
		cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries(), testsupport.WithConfig(shortLimits), testsupport.WithPolicy("prompt"))
		testsupport.WriteSamples(t, cfg, "Percussion/Snare Roll Long.wav", "Zeta/z.wav")
		h := newHarness(t, cfg, nil)

		summary, err := h.org.Run(context.Background(), organizer.Options{})
		if !errors.Is(err, services.ErrAborted) {
			t.Fatalf("expected ErrAborted, got %v", err)
		}
		if summary.Attempted != 1 || summary.Results[0].Status != services.StatusAborted {
			t.Fatalf("unexpected summary: %+v", summary)
		}
		run, err := h.store.GetRun(context.Background(), summary.RunID)
		if err != nil || !run.Finished() {
			t.Fatalf("expected aborted run to be finished in history: %+v %v", run, err)
		}
	})
}

func TestRunRefusesConcurrentRun(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	h := newHarness(t, cfg, nil)

	lock := flock.New(cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil || !ok {
		t.Fatalf("TryLock: %v %v", ok, err)
	}
	defer lock.Unlock()

	if _, err := h.org.Run(context.Background(), organizer.Options{}); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error while locked, got %v", err)
	}
}

func TestRunHonoursCancellation(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	testsupport.WriteSamples(t, cfg, "Kit/a.wav", "Kit/b.wav")
	conv, err := convert.NewFFmpeg(cfg, nil)
	if err != nil {
		t.Fatalf("NewFFmpeg: %v", err)
	}
	org := organizer.New(cfg, nil, conv, resolve.Skip{}, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	summary, err := org.Run(ctx, organizer.Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if summary.Attempted != 0 {
		t.Fatalf("expected no files attempted, got %d", summary.Attempted)
	}
	if summary.RunID == "" {
		t.Fatal("expected run id without history store")
	}
}

func TestRunRequiresSourceDirectory(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Paths.SourceDir = filepath.Join(testsupport.BaseDir(cfg), "missing")
	org := organizer.New(cfg, nil, nil, nil, nil, nil)
	if _, err := org.Run(context.Background(), organizer.Options{DryRun: true}); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

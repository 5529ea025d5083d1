package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"m8org/internal/testsupport"
)

func TestShortenSharesWordsAcrossArguments(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"shorten", "Drum Loops/Kick-Drum (1).wav", "Drum Loops/Snare Drums.wav"}, env.configPath)
	if err != nil {
		t.Fatalf("shorten: %v", err)
	}
	requireContains(t, out, "Drum Loops/Kick-Drum (1).wav -> drum/kick_drum_1.wav\n")
	requireContains(t, out, "Drum Loops/Snare Drums.wav -> snare_drums.wav\n")
}

func TestShortenRequiresArgument(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"shorten"}, env.configPath); err == nil {
		t.Fatal("expected error without arguments")
	}
}

func TestDepsReportsAvailability(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubbedBinaries())

	out, _, err := runCLI(t, []string{"deps"}, env.configPath)
	if err != nil {
		t.Fatalf("deps: %v", err)
	}
	requireContains(t, out, "FFmpeg")
	requireContains(t, out, "FFprobe")
	requireNotContains(t, out, "missing")

	t.Setenv("PATH", t.TempDir())
	out, _, err = runCLI(t, []string{"deps"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "1 required tool(s) missing") {
		t.Fatalf("expected missing ffmpeg error, got %v", err)
	}
	requireContains(t, out, "missing (optional)")
}

func TestHistoryWithoutRuns(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No runs recorded")

	if _, _, err := runCLI(t, []string{"history", "deadbeef"}, env.configPath); err == nil {
		t.Fatal("expected unknown run error")
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Config path: "+env.configPath)
	requireContains(t, out, "Configuration valid")
	if _, err := os.Stat(env.cfg.Paths.DestDir); err != nil {
		t.Fatalf("validate should create the destination: %v", err)
	}

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected init to refuse overwriting")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigInitSkipsBrokenConfig(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.WriteFile(env.configPath, []byte("[paths]\nbogus = 1\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, err := runCLI(t, []string{"config", "validate"}, env.configPath); err == nil {
		t.Fatal("expected unknown key to fail validation")
	}

	target := filepath.Join(t.TempDir(), "fresh.toml")
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, env.configPath); err != nil {
		t.Fatalf("config init with broken config: %v", err)
	}
}

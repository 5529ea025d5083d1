package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"m8org/internal/config"
)

// FFmpegStub writes a tiny placeholder to its last argument, the output path.
const FFmpegStub = `#!/bin/sh
for last; do :; done
printf 'RIFF' > "$last"
`

// FFprobeStub reports a single 16-bit PCM stream for any input.
const FFprobeStub = `#!/bin/sh
cat <<'JSON'
{"streams":[{"index":0,"codec_name":"pcm_s16le","codec_type":"audio","sample_fmt":"s16","sample_rate":"44100","channels":2,"bits_per_sample":16}],"format":{"nb_streams":1,"format_name":"wav"}}
JSON
`

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The source directory exists; destination and state directories do not.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.SourceDir = filepath.Join(base, "source")
	cfgVal.Paths.DestDir = filepath.Join(base, "dest")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Limits.OverlongPolicy = "skip"
	if err := os.MkdirAll(cfgVal.Paths.SourceDir, 0o755); err != nil {
		t.Fatalf("mkdir source dir: %v", err)
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithPolicy overrides the overlong policy on the test config.
func WithPolicy(policy string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Limits.OverlongPolicy = policy
	}
}

// WithConfig applies an arbitrary mutation to the test config.
func WithConfig(mutate func(*config.Config)) ConfigOption {
	return func(b *configBuilder) {
		mutate(b.cfg)
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, ffmpeg and ffprobe are stubbed.
// ffmpeg and ffprobe stubs behave like the real tools on success; any other
// name exits 0.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"ffmpeg", "ffprobe"}
		}
		scripts := make(map[string]string, len(names))
		for _, name := range names {
			switch name {
			case "ffmpeg":
				scripts[name] = FFmpegStub
			case "ffprobe":
				scripts[name] = FFprobeStub
			default:
				scripts[name] = "#!/bin/sh\nexit 0\n"
			}
		}
		installStubs(b, scripts)
	}
}

// WithStubScript installs a stub executable with a custom body and prepends
// it to PATH.
func WithStubScript(name, script string) ConfigOption {
	return func(b *configBuilder) {
		installStubs(b, map[string]string{name: script})
	}
}

func installStubs(b *configBuilder, scripts map[string]string) {
	binDir := filepath.Join(b.baseDir, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		b.t.Fatalf("mkdir bin dir: %v", err)
	}
	for name, script := range scripts {
		target := filepath.Join(binDir, name)
		if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
			b.t.Fatalf("write stub %s: %v", name, err)
		}
	}

	oldPath := os.Getenv("PATH")
	if filepath.SplitList(oldPath)[0] == binDir {
		return
	}
	b.t.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath)
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}

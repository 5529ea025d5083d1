package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the source library, the output tree and local state.
type Paths struct {
	SourceDir string `toml:"source_dir"`
	DestDir   string `toml:"dest_dir"`
	StateDir  string `toml:"state_dir"`
}

// Files restricts which source files are picked up.
type Files struct {
	// Extensions are matched case-insensitively without the leading dot.
	Extensions []string `toml:"extensions"`
}

// Naming contains the rules used to build shortened names.
type Naming struct {
	SplitPunctuation   string   `toml:"split_punctuation"`
	FillPunctuation    string   `toml:"fill_punctuation"`
	StrikeWords        []string `toml:"strike_words"`
	JoinSep            string   `toml:"join_sep"`
	WordFormat         string   `toml:"word_format"`
	DupesEliminatePath bool     `toml:"dupes_eliminate_path"`
	TargetExtension    string   `toml:"target_extension"`
}

// Limits contains the length ceilings, counted in characters.
type Limits struct {
	MaxFileLength   int `toml:"max_file_length"`
	MaxDirLength    int `toml:"max_dir_length"`
	MaxOutputLength int `toml:"max_output_length"`
	// OverlongPolicy decides what happens when a shortened path still
	// reaches MaxOutputLength: prompt, truncate or skip.
	OverlongPolicy string `toml:"overlong_policy"`
}

// Convert contains ffmpeg settings.
type Convert struct {
	FFmpegPath     string `toml:"ffmpeg_path"`
	FFprobePath    string `toml:"ffprobe_path"`
	BitDepth       int    `toml:"bit_depth"`
	SampleRate     int    `toml:"sample_rate"`
	SkipExisting   bool   `toml:"skip_existing"`
	Verify         bool   `toml:"verify"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for m8org.
//
// Configuration sections by subsystem:
//   - Paths: source library, destination tree and state directory
//   - Files: extensions picked up from the source tree
//   - Naming: punctuation, strike words, case and separator rules
//   - Limits: file, folder and whole-path ceilings plus the overlong policy
//   - Convert: ffmpeg/ffprobe binaries and the PCM target
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Files   Files   `toml:"files"`
	Naming  Naming  `toml:"naming"`
	Limits  Limits  `toml:"limits"`
	Convert Convert `toml:"convert"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/m8org/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("m8org.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state and destination directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.DestDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// CheckSource verifies that the source directory exists and is a directory.
func (c *Config) CheckSource() error {
	info, err := os.Stat(c.Paths.SourceDir)
	if err != nil {
		return fmt.Errorf("paths.source_dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("paths.source_dir: %s is not a directory", c.Paths.SourceDir)
	}
	return nil
}

// LogPath returns the log file inside the state directory.
func (c *Config) LogPath() string {
	return filepath.Join(c.Paths.StateDir, "m8org.log")
}

// HistoryPath returns the run history database inside the state directory.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.Paths.StateDir, "history.db")
}

// LockPath returns the run lock file inside the state directory.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "m8org.lock")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

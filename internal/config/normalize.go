package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeFiles()
	c.normalizeNaming()
	c.normalizeLimits()
	c.normalizeConvert()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.SourceDir) == "" {
		if value, ok := os.LookupEnv(envSourceDir); ok {
			c.Paths.SourceDir = strings.TrimSpace(value)
		}
	}
	if strings.TrimSpace(c.Paths.DestDir) == "" {
		if value, ok := os.LookupEnv(envDestDir); ok {
			c.Paths.DestDir = strings.TrimSpace(value)
		}
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}

	var err error
	if c.Paths.SourceDir, err = expandPath(strings.TrimSpace(c.Paths.SourceDir)); err != nil {
		return fmt.Errorf("paths.source_dir: %w", err)
	}
	if c.Paths.DestDir, err = expandPath(strings.TrimSpace(c.Paths.DestDir)); err != nil {
		return fmt.Errorf("paths.dest_dir: %w", err)
	}
	if c.Paths.StateDir, err = expandPath(strings.TrimSpace(c.Paths.StateDir)); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeFiles() {
	exts := make([]string, 0, len(c.Files.Extensions))
	seen := make(map[string]struct{}, len(c.Files.Extensions))
	for _, ext := range c.Files.Extensions {
		normalized := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		exts = append(exts, normalized)
	}
	c.Files.Extensions = exts
}

func (c *Config) normalizeNaming() {
	words := make([]string, 0, len(c.Naming.StrikeWords))
	for _, word := range c.Naming.StrikeWords {
		normalized := strings.ToLower(strings.TrimSpace(word))
		if normalized == "" {
			continue
		}
		words = append(words, normalized)
	}
	c.Naming.StrikeWords = words

	c.Naming.WordFormat = strings.ToLower(strings.TrimSpace(c.Naming.WordFormat))
	if c.Naming.WordFormat == "" {
		c.Naming.WordFormat = "none"
	}

	ext := strings.ToLower(strings.TrimSpace(c.Naming.TargetExtension))
	if ext == "" {
		ext = defaultTargetExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	c.Naming.TargetExtension = ext
}

func (c *Config) normalizeLimits() {
	c.Limits.OverlongPolicy = strings.ToLower(strings.TrimSpace(c.Limits.OverlongPolicy))
	if c.Limits.OverlongPolicy == "" {
		c.Limits.OverlongPolicy = defaultOverlongPolicy
	}
}

func (c *Config) normalizeConvert() {
	c.Convert.FFmpegPath = strings.TrimSpace(c.Convert.FFmpegPath)
	if c.Convert.FFmpegPath == "" {
		c.Convert.FFmpegPath = defaultFFmpegPath
	}
	c.Convert.FFprobePath = strings.TrimSpace(c.Convert.FFprobePath)
	if c.Convert.FFprobePath == "" {
		c.Convert.FFprobePath = defaultFFprobePath
	}
	if c.Convert.TimeoutSeconds < 0 {
		c.Convert.TimeoutSeconds = 0
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

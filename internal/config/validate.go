package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateNaming(); err != nil {
		return err
	}
	if err := c.validateLimits(); err != nil {
		return err
	}
	if err := c.validateConvert(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.SourceDir == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/m8org/config.toml"
		}
		return fmt.Errorf("paths.source_dir is required. Set %s or edit %s (create with 'm8org config init')", envSourceDir, defaultPath)
	}
	if c.Paths.DestDir == "" {
		return fmt.Errorf("paths.dest_dir is required. Set %s or edit the config file", envDestDir)
	}
	if c.Paths.SourceDir == c.Paths.DestDir {
		return errors.New("paths.dest_dir must differ from paths.source_dir")
	}
	if rel, err := filepath.Rel(c.Paths.SourceDir, c.Paths.DestDir); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return errors.New("paths.dest_dir must not be inside paths.source_dir")
	}
	return nil
}

func (c *Config) validateNaming() error {
	if err := validatePunctuation("naming.split_punctuation", c.Naming.SplitPunctuation); err != nil {
		return err
	}
	if err := validatePunctuation("naming.fill_punctuation", c.Naming.FillPunctuation); err != nil {
		return err
	}
	for _, r := range c.Naming.FillPunctuation {
		if strings.ContainsRune(c.Naming.SplitPunctuation, r) {
			return fmt.Errorf("naming: %q is in both split_punctuation and fill_punctuation", r)
		}
	}
	if strings.Contains(c.Naming.JoinSep, "/") {
		return errors.New("naming.join_sep must not contain a path separator")
	}
	switch c.Naming.WordFormat {
	case "none", "lower", "upper", "title":
	default:
		return fmt.Errorf("naming.word_format must be one of none, lower, upper, title (got %q)", c.Naming.WordFormat)
	}
	ext := c.Naming.TargetExtension
	if len(ext) < 2 || strings.ContainsAny(ext[1:], "./\\ ") {
		return fmt.Errorf("naming.target_extension %q must look like \".wav\"", ext)
	}
	return nil
}

func validatePunctuation(key, set string) error {
	for _, r := range set {
		if r == '/' || r == '\\' {
			return fmt.Errorf("%s must not contain path separators", key)
		}
		if unicode.IsSpace(r) {
			return fmt.Errorf("%s must not contain whitespace", key)
		}
	}
	return nil
}

func (c *Config) validateLimits() error {
	if err := ensurePositiveMap(map[string]int{
		"limits.max_file_length":   c.Limits.MaxFileLength,
		"limits.max_dir_length":    c.Limits.MaxDirLength,
		"limits.max_output_length": c.Limits.MaxOutputLength,
	}); err != nil {
		return err
	}
	if c.Limits.MaxFileLength <= utf8.RuneCountInString(c.Naming.TargetExtension) {
		return fmt.Errorf("limits.max_file_length must leave room for the %q extension", c.Naming.TargetExtension)
	}
	if c.Limits.MaxOutputLength <= c.Limits.MaxFileLength {
		return errors.New("limits.max_output_length must be greater than limits.max_file_length")
	}
	switch c.Limits.OverlongPolicy {
	case "prompt", "truncate", "skip":
	default:
		return fmt.Errorf("limits.overlong_policy must be one of prompt, truncate, skip (got %q)", c.Limits.OverlongPolicy)
	}
	return nil
}

func (c *Config) validateConvert() error {
	switch c.Convert.BitDepth {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("convert.bit_depth must be 8, 16, 24 or 32 (got %d)", c.Convert.BitDepth)
	}
	if c.Convert.SampleRate < 0 {
		return errors.New("convert.sample_rate must be >= 0")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}

// Package config loads, normalizes, and validates m8org configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks for the
// source and destination directories. Every setting is mandatory once
// defaults are applied, and a configuration error halts the CLI before any
// file is touched.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, lower-cased extensions, and clear validation errors.
package config

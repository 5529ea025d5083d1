// Package library enumerates the sample files under a source tree.
package library

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// Enumerate walks root in lexical order and returns the absolute paths of
// files whose extension is in extensions. Extensions are compared
// case-insensitively without the leading dot; an empty list accepts every
// file. Entries whose name starts with "." are skipped, directories included.
func Enumerate(root string, extensions []string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve source root: %w", err)
	}

	allowed := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			allowed[ext] = struct{}{}
		}
	}

	var files []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path != absRoot && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if len(allowed) > 0 {
			ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(d.Name()), "."))
			if _, ok := allowed[ext]; !ok {
				return nil
			}
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", absRoot, err)
	}
	return files, nil
}

// Relative returns path relative to root using forward slashes. A path that
// is not under root is returned unchanged.
func Relative(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return filepath.ToSlash(rel)
}

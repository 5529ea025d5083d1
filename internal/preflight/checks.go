package preflight

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// Access selects what CheckDirectoryAccess requires of a directory.
type Access int

const (
	// Readable requires list and read permission.
	Readable Access = 1 << iota
	// Writable additionally requires write permission.
	Writable
	// AllowMissing accepts a directory that does not exist yet when its
	// nearest existing ancestor is writable.
	AllowMissing
)

func (a Access) mode() uint32 {
	mode := uint32(unix.R_OK | unix.X_OK)
	if a&Writable != 0 {
		mode |= unix.W_OK
	}
	return mode
}

func (a Access) label() string {
	if a&Writable != 0 {
		return "read/write ok"
	}
	return "read ok"
}

// CheckDirectoryAccess verifies that path is a directory with the requested
// permissions.
func CheckDirectoryAccess(name, path string, access Access) Result {
	if path == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if access&AllowMissing != 0 {
				return checkCreatable(name, path)
			}
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, access.mode()); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, access.label())}
}

func checkCreatable(name, path string) Result {
	parent := filepath.Dir(path)
	for {
		info, err := os.Stat(parent)
		if err == nil {
			if !info.IsDir() {
				return Result{Name: name, Detail: fmt.Sprintf("%s (error: %s is not a directory)", path, parent)}
			}
			break
		}
		next := filepath.Dir(parent)
		if next == parent {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: no existing parent)", path)}
		}
		parent = next
	}
	if err := unix.Access(parent, unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: cannot create under %s: %v)", path, parent, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
}

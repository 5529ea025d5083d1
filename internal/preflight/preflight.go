package preflight

import (
	"m8org/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll checks the source, destination, and state directories. The source
// must exist and be readable; the other two may be missing as long as they
// can be created later.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	return []Result{
		CheckDirectoryAccess("Source directory", cfg.Paths.SourceDir, Readable),
		CheckDirectoryAccess("Destination directory", cfg.Paths.DestDir, Writable|AllowMissing),
		CheckDirectoryAccess("State directory", cfg.Paths.StateDir, Writable|AllowMissing),
	}
}

// Failed filters results down to the checks that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}

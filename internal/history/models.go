package history

import "time"

// Counts aggregates per-run outcomes.
type Counts struct {
	Attempted int
	Converted int
	Planned   int
	Skipped   int
	Failed    int
	Overlong  int
}

// Run is one organizer invocation.
type Run struct {
	ID         string
	SourceDir  string
	DestDir    string
	DryRun     bool
	StartedAt  time.Time
	FinishedAt time.Time
	Counts     Counts
}

// Finished reports whether FinishRun was recorded for the run.
func (r Run) Finished() bool {
	return !r.FinishedAt.IsZero()
}

// Entry records what happened to one source file.
type Entry struct {
	ID         int64
	RunID      string
	SourcePath string
	ShortPath  string
	DestPath   string
	Status     string
	Overlong   bool
	Message    string
	CreatedAt  time.Time
}

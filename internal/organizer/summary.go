package organizer

import (
	"m8org/internal/history"
	"m8org/internal/services"
)

// Result describes what happened to one source file.
type Result struct {
	Source   string
	Relative string
	// Short is the output path relative to the destination root. For a
	// skipped overlong file it is the unresolved candidate.
	Short    string
	Dest     string
	Status   string
	Overlong bool
	Err      error
}

// Summary aggregates a run.
type Summary struct {
	RunID     string
	DryRun    bool
	Attempted int
	Converted int
	Planned   int
	Skipped   int
	Failed    int
	Overlong  int
	Results   []Result
}

func (s *Summary) add(result Result) {
	s.Attempted++
	if result.Overlong {
		s.Overlong++
	}
	switch result.Status {
	case services.StatusConverted:
		s.Converted++
	case services.StatusPlanned:
		s.Planned++
	case services.StatusExists, services.StatusSkipped:
		s.Skipped++
	case services.StatusFailed:
		s.Failed++
	}
	s.Results = append(s.Results, result)
}

// Counts converts the summary into history counters.
func (s Summary) Counts() history.Counts {
	return history.Counts{
		Attempted: s.Attempted,
		Converted: s.Converted,
		Planned:   s.Planned,
		Skipped:   s.Skipped,
		Failed:    s.Failed,
		Overlong:  s.Overlong,
	}
}

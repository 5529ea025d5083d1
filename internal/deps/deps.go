package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement names an external binary m8org shells out to.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status is the result of looking a Requirement up on PATH.
type Status struct {
	Requirement
	// Path is the resolved executable when Available.
	Path      string
	Available bool
	Detail    string
}

// CheckBinaries resolves every requirement with exec.LookPath.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		req.Command = strings.TrimSpace(req.Command)
		req.Description = strings.TrimSpace(req.Description)
		status := Status{Requirement: req}
		switch path, err := exec.LookPath(req.Command); {
		case req.Command == "":
			status.Detail = "command not configured"
		case err != nil:
			status.Detail = fmt.Sprintf("binary %q not found", req.Command)
		default:
			status.Available = true
			status.Path = path
		}
		results = append(results, status)
	}
	return results
}

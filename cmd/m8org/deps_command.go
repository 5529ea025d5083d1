package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"m8org/internal/deps"
	"m8org/internal/preflight"
	"m8org/internal/textutil"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check external tools and directory access",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Requirements(cfg))
			rows := make([][]string, 0, len(statuses))
			missing := 0
			for _, status := range statuses {
				state := "ok"
				if !status.Available {
					state = textutil.Ternary(status.Optional, "missing (optional)", "missing")
					if !status.Optional {
						missing++
					}
				}
				rows = append(rows, []string{status.Name, textutil.Ternary(status.Available, status.Path, status.Command), yesNo(!status.Optional), state, status.Description})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Tool", "Command", "Required", "Status", "Purpose"},
				rows,
				nil,
			))

			checks := preflight.RunAll(cfg)
			pathRows := make([][]string, 0, len(checks))
			for _, check := range checks {
				pathRows = append(pathRows, []string{check.Name, textutil.Ternary(check.Passed, "ok", "failed"), check.Detail})
			}
			fmt.Fprintln(out, renderTable([]string{"Path", "Status", "Detail"}, pathRows, nil))

			if missing > 0 {
				return fmt.Errorf("%d required tool(s) missing", missing)
			}
			if failed := preflight.Failed(checks); len(failed) > 0 {
				return fmt.Errorf("%d directory check(s) failed", len(failed))
			}
			return nil
		},
	}
}

package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"m8org/internal/config"
	"m8org/internal/convert"
	"m8org/internal/deps"
	"m8org/internal/organizer"
	"m8org/internal/preflight"
	"m8org/internal/resolve"
	"m8org/internal/services"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var policy string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Shorten and convert every sample under the source directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applyPolicyFlag(cfg, policy); err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			var converter convert.Converter
			if !dryRun {
				if err := checkPreflight(cfg); err != nil {
					return err
				}
				if err := cfg.EnsureDirectories(); err != nil {
					return fmt.Errorf("ensure directories: %w", err)
				}
				converter, err = buildConverter(cfg, logger)
				if err != nil {
					return err
				}
			}

			resolver, err := resolve.ForPolicy(cfg.Limits.OverlongPolicy, cmd.InOrStdin(), cmd.OutOrStdout(), stdinInteractive(cmd))
			if err != nil {
				return err
			}

			store, err := ctx.openHistory()
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			org := organizer.New(cfg, store, converter, resolver, cmd.OutOrStdout(), logger)
			summary, runErr := org.Run(cmd.Context(), organizer.Options{DryRun: dryRun})
			if summary.RunID != "" {
				printSummary(cmd.OutOrStdout(), summary)
			}
			if runErr != nil {
				return runErr
			}
			if summary.Failed > 0 {
				return fmt.Errorf("%d of %d files failed; see m8org history %s", summary.Failed, summary.Attempted, shortID(summary.RunID))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Report the planned output paths without converting")
	cmd.Flags().StringVar(&policy, "policy", "", "Override limits.overlong_policy (prompt, truncate, skip)")
	return cmd
}

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var policy string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the output path every sample would receive",
		Long: "Plan runs the shortener over the source directory without converting or " +
			"recording history. Overlong paths are truncated under the truncate policy " +
			"and otherwise reported as overlong.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applyPolicyFlag(cfg, policy); err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			resolver, err := resolve.ForPolicy(cfg.Limits.OverlongPolicy, nil, io.Discard, false)
			if err != nil {
				return err
			}

			org := organizer.New(cfg, nil, nil, resolver, io.Discard, logger)
			summary, err := org.Run(cmd.Context(), organizer.Options{DryRun: true})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(summary.Results) == 0 {
				fmt.Fprintf(out, "No samples found under %s\n", cfg.Paths.SourceDir)
				return nil
			}
			fmt.Fprint(out, renderPlan(summary.Results))
			fmt.Fprintf(out, "%d files, %d overlong, limit %d characters\n",
				summary.Attempted, summary.Overlong, cfg.Limits.MaxOutputLength)
			return nil
		},
	}

	cmd.Flags().StringVar(&policy, "policy", "", "Override limits.overlong_policy (truncate or skip)")
	return cmd
}

func renderPlan(results []organizer.Result) string {
	rows := make([][]string, 0, len(results))
	for _, result := range results {
		status := result.Status
		if result.Overlong && status == services.StatusSkipped {
			status = "overlong"
		}
		rows = append(rows, []string{
			result.Relative,
			result.Short,
			strconv.Itoa(utf8.RuneCountInString(result.Short)),
			status,
		})
	}
	return renderTable(
		[]string{"Source", "Output", "Len", "Status"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
	) + "\n"
}

func applyPolicyFlag(cfg *config.Config, policy string) error {
	policy = strings.ToLower(strings.TrimSpace(policy))
	if policy == "" {
		return nil
	}
	switch policy {
	case resolve.PolicyPrompt, resolve.PolicyTruncate, resolve.PolicySkip:
		cfg.Limits.OverlongPolicy = policy
		return nil
	default:
		return fmt.Errorf("invalid --policy %q (want prompt, truncate, or skip)", policy)
	}
}

func checkPreflight(cfg *config.Config) error {
	failed := preflight.Failed(preflight.RunAll(cfg))
	if len(failed) == 0 {
		return nil
	}
	details := make([]string, 0, len(failed))
	for _, r := range failed {
		details = append(details, r.Name+": "+r.Detail)
	}
	return services.Wrap(services.ErrConfiguration, "preflight", "check directories", strings.Join(details, "; "), nil)
}

func buildConverter(cfg *config.Config, logger *slog.Logger) (convert.Converter, error) {
	ffmpeg, err := deps.ResolveFFmpeg(cfg)
	if err != nil {
		return nil, err
	}
	conv, err := convert.NewFFmpeg(cfg, logger)
	if err != nil {
		return nil, err
	}
	conv.Binary = ffmpeg
	if cfg.Convert.Verify {
		ffprobePath, err := deps.ResolveFFprobe(cfg)
		if err != nil {
			return nil, err
		}
		conv.FFprobe = ffprobePath
	}
	return conv, nil
}

func printSummary(out io.Writer, summary organizer.Summary) {
	if summary.DryRun {
		fmt.Fprintf(out, "Run %s (dry run): %d planned, %d skipped, %d overlong\n",
			shortID(summary.RunID), summary.Planned, summary.Skipped, summary.Overlong)
		return
	}
	fmt.Fprintf(out, "Run %s: %d converted, %d skipped, %d failed, %d overlong\n",
		shortID(summary.RunID), summary.Converted, summary.Skipped, summary.Failed, summary.Overlong)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"m8org/internal/shortener"
)

func newShortenCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "shorten <path>...",
		Short: "Print the shortened form of one or more relative paths",
		Long: "Shorten applies the configured naming rules to each argument in order. " +
			"Words are deduplicated across the arguments exactly as they would be " +
			"within a single run.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			short, err := shortener.NewFromConfig(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, arg := range args {
				result := short.Shorten(filepath.ToSlash(arg))
				if short.Overlong(result) {
					fmt.Fprintf(out, "%s -> %s (overlong, limit %d)\n", arg, result, short.MaxOutputLength())
					continue
				}
				fmt.Fprintf(out, "%s -> %s\n", arg, result)
			}
			return nil
		},
	}
}

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"speechset/internal/report"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [manifest]",
		Short: "Summarize a manifest per split",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := cfg.Output.Manifest
			if len(args) == 1 {
				path = args[0]
			}

			file, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open manifest: %w", err)
			}
			defer file.Close()

			stats, err := report.Aggregate(file)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(stats) == 0 {
				fmt.Fprintf(out, "%s is empty\n", path)
				return nil
			}

			caser := cases.Title(language.English)
			rows := make([][]string, 0, len(stats))
			var clips int
			var totalMS float64
			for _, s := range stats {
				rows = append(rows, []string{
					caser.String(s.Split),
					strconv.Itoa(s.Clips),
					strconv.Itoa(s.Speakers),
					humanDurationMS(s.TotalDurationMS),
					fmt.Sprintf("%.2f", s.MeanRating),
				})
				clips += s.Clips
				totalMS += s.TotalDurationMS
			}

			fmt.Fprintln(out, renderTable(
				[]string{"Split", "Clips", "Speakers", "Duration", "Mean MOS"},
				rows, 1, 2, 3, 4))
			fmt.Fprintf(out, "%d clips, %s total\n", clips, humanDurationMS(totalMS))
			return nil
		},
	}
}

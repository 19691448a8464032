package main

import (
	"fmt"
	"os"

	"github.com/dhowden/tag"
	"github.com/spf13/cobra"

	"speechset/internal/media/duration"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <audio-file>",
		Short: "Show duration and container tags for one audio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := args[0]
			if !duration.Supported(path) {
				return fmt.Errorf("%s is not a supported audio file", path)
			}

			logger, err := ctx.newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			probe := duration.NewProbe(cfg.Probe.FFprobeBinary, logger)
			durationMS, err := probe.DurationMS(cmd.Context(), path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "File:        %s\n", path)
			fmt.Fprintf(out, "Duration:    %.1f ms (%s)\n", durationMS, humanDurationMS(durationMS))

			file, err := os.Open(path)
			if err != nil {
				return err
			}
			defer file.Close()

			meta, err := tag.ReadFrom(file)
			if err != nil {
				// Plenty of dataset audio carries no tags at all.
				fmt.Fprintln(out, "Tags:        none")
				return nil
			}
			fmt.Fprintf(out, "Format:      %s\n", meta.FileType())
			if title := meta.Title(); title != "" {
				fmt.Fprintf(out, "Title:       %s\n", title)
			}
			if artist := meta.Artist(); artist != "" {
				fmt.Fprintf(out, "Artist:      %s\n", artist)
			}
			if album := meta.Album(); album != "" {
				fmt.Fprintf(out, "Album:       %s\n", album)
			}
			return nil
		},
	}
}

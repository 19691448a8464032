package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"speechset/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check availability of external binaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Requirements(cfg.Probe.FFprobeBinary))
			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				detail := status.Description
				if !status.Available && status.Detail != "" {
					detail = status.Detail
				}
				rows = append(rows, []string{
					status.Name,
					yesNo(status.Available),
					yesNo(status.Optional),
					detail,
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Binary", "Available", "Optional", "Notes"}, rows))
			return nil
		},
	}
}

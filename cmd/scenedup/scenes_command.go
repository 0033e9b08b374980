package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"scenedup/internal/catalog"
	"scenedup/internal/config"
)

func newScenesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scenes <name>",
		Short: "List the recorded scenes of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				entry, err := store.FileByName(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				scenes, err := store.ScenesByFile(cmd.Context(), entry.ID)
				if err != nil {
					return err
				}
				if len(scenes) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "no scenes recorded for %q\n", entry.Name)
					return nil
				}

				rows := make([][]string, 0, len(scenes))
				for _, sc := range scenes {
					rows = append(rows, []string{
						fmt.Sprintf("%08X", sc.ID.Hash),
						strconv.FormatUint(uint64(sc.ID.DurationMs), 10),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Hash", "Duration (ms)"},
					rows,
					[]columnAlignment{alignLeft, alignRight},
				))
				return nil
			})
		},
	}
}

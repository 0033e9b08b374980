package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"scenedup/internal/catalog"
	"scenedup/internal/config"
	"scenedup/internal/similarity"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <name>",
		Short: "Find files sharing scenes with the named file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				if limit == 0 {
					limit = cfg.Analysis.SearchLimit
				}
				entry, err := store.FileByName(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				matches, err := similarity.FindDuplicates(cmd.Context(), store, entry.ID, limit)
				if err != nil {
					return err
				}
				if len(matches) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "no duplicated videos")
					return nil
				}

				rows := make([][]string, 0, len(matches))
				for _, match := range matches {
					rows = append(rows, []string{strconv.Itoa(match.SharedScenes), match.Name})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Shared Scenes", "File"},
					rows,
					[]columnAlignment{alignRight, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of results (default from config)")

	return cmd
}

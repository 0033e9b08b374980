package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scenedup/internal/catalog"
	"scenedup/internal/config"
	"scenedup/internal/similarity"
)

func newTopCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Report file pairs ranked by total shared scene duration",
		Long: `Top seeds the relation graph with the most duration-significant scene
identities repeated across files and reports every file pair sharing any of
them, ranked by total shared duration. The limit bounds the number of seed
scenes, not the number of reported pairs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				if limit == 0 {
					limit = cfg.Analysis.TopLimit
				}
				relations, err := similarity.TopRelations(cmd.Context(), store, limit)
				if err != nil {
					return err
				}
				if len(relations) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "no related videos")
					return nil
				}

				rows := make([][]string, 0, len(relations))
				for _, rel := range relations {
					rows = append(rows, []string{
						fmt.Sprintf("%.1f", float64(rel.SharedMs)/1000.0),
						rel.NameA,
						rel.NameB,
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Matched Seconds", "File A", "File B"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Number of seed scenes to consider (default from config)")

	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scenedup/internal/catalog"
	"scenedup/internal/config"
)

func newInitCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the scene database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				// Opening applies the schema; nothing else to do.
				fmt.Fprintf(cmd.OutOrStdout(), "Database ready at %s\n", store.Path())
				return nil
			})
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scenedup/internal/catalog"
	"scenedup/internal/config"
)

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Remove a file and all its scenes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				entry, err := store.FileByName(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if err := store.DeleteFile(cmd.Context(), entry.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %q\n", entry.Name)
				return nil
			})
		},
	}
}

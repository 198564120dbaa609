package main

import (
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var (
		limit  int
		offset int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the catalog",
		Long:  "Lists pokemon ordered by catalog number, one page at a time.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, limit, offset)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum number of pokemon to display (default from config)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of pokemon to skip")

	return cmd
}

func runList(cmd *cobra.Command, limit, offset int) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(deps *Deps) error {
		result, err := deps.CatalogHandler.HandleList(ctx, limit, offset)
		if err != nil {
			return err
		}
		return printPokemonList(cmd.OutOrStdout(), result)
	})
}

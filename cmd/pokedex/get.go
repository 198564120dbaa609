package main

import (
	"github.com/spf13/cobra"
)

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <query>",
		Short: "Look up a pokemon",
		Long: `Looks up a pokemon by catalog number, ID or name.

A numeric query is tried as a catalog number first. Any query that does not
match by number or ID is tried as a name.

Examples:
  pokedex get 25
  pokedex get pikachu
  pokedex get 0b7f2c1e-7d5e-4b8a-9f0e-3c2d1a6b5e4f`,
		Args: cobra.ExactArgs(1),
		RunE: runGet,
	}
}

func runGet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(deps *Deps) error {
		p, err := deps.CatalogHandler.HandleGet(ctx, args[0])
		if err != nil {
			return err
		}
		return printPokemon(cmd.OutOrStdout(), p)
	})
}

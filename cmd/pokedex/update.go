package main

import (
	"github.com/spf13/cobra"

	"github.com/ersonp/pokedex-core/internal/domain/entities"
)

type updateFlags struct {
	no   int
	name string
}

func newUpdateCmd() *cobra.Command {
	var flags updateFlags

	cmd := &cobra.Command{
		Use:   "update <query>",
		Short: "Change a pokemon's number or name",
		Long: `Resolves the query like 'get' and applies the given changes.

Examples:
  pokedex update pikachu --name raichu
  pokedex update 25 --no 26`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd, args[0], flags)
		},
	}

	cmd.Flags().IntVar(&flags.no, "no", 0, "New catalog number")
	cmd.Flags().StringVar(&flags.name, "name", "", "New name")

	return cmd
}

func runUpdate(cmd *cobra.Command, query string, flags updateFlags) error {
	var patch entities.PokemonPatch
	if cmd.Flags().Changed("no") {
		patch.No = &flags.no
	}
	if cmd.Flags().Changed("name") {
		patch.Name = &flags.name
	}

	ctx := cmd.Context()
	return withDeps(ctx, func(deps *Deps) error {
		p, err := deps.CatalogHandler.HandleUpdate(ctx, query, patch)
		if err != nil {
			return err
		}
		return printPokemon(cmd.OutOrStdout(), p)
	})
}

package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ersonp/pokedex-core/internal/domain/entities"
)

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <no> <name>",
		Short: "Add a pokemon to the catalog",
		Long: `Adds a pokemon with the given catalog number and name.

Names are stored trimmed and lowercase. Both the number and the name must be
unique in the catalog.

Examples:
  pokedex create 25 pikachu
  pokedex create 10001 "Deoxys Attack"`,
		Args: cobra.ExactArgs(2),
		RunE: runCreate,
	}
}

func runCreate(cmd *cobra.Command, args []string) error {
	no, err := parseNo(args[0])
	if err != nil {
		return err
	}

	return withDeps(cmd.Context(), func(deps *Deps) error {
		p, err := deps.CatalogHandler.HandleCreate(cmd.Context(), entities.PokemonDraft{No: no, Name: args[1]})
		if err != nil {
			return err
		}
		return printPokemon(cmd.OutOrStdout(), p)
	})
}

func parseNo(s string) (int, error) {
	no, err := strconv.Atoi(s)
	if err != nil {
		return 0, entities.BadRequest("no must be an integer, got %q", s)
	}
	return no, nil
}

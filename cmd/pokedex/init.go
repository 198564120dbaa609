package main

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/ersonp/pokedex-core/internal/application/handlers"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new pokedex",
		Long:  "Creates a .pokedex directory with default configuration and an empty catalog database.",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	basePath, err := projectDir()
	if err != nil {
		return err
	}

	result, err := handlers.NewInitHandler(openCatalog).Handle(cmd.Context(), basePath)
	if err != nil {
		return errors.Wrap(err, "initializing pokedex")
	}

	out := cmd.OutOrStdout()
	printInfo(out, "Created %s", result.ConfigPath)
	printInfo(out, "Catalog database: %s", result.DatabasePath)
	printSuccess(out, "Pokedex initialized. Run 'pokedex seed' to load the catalog.")
	return nil
}

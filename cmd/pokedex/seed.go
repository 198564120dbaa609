package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ersonp/pokedex-core/internal/application/handlers"
)

type seedFlags struct {
	file   string
	limit  int
	force  bool
	dryRun bool
}

func newSeedCmd() *cobra.Command {
	var flags seedFlags

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the catalog with the feed listing",
		Long: `Deletes every pokemon in the catalog, then loads one page of the feed.

If loading fails after the catalog was emptied, the catalog stays empty until
seed is run again.

Examples:
  pokedex seed
  pokedex seed --limit 151 --force
  pokedex seed --file listing.json
  pokedex seed --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.file, "file", "", "Read the listing from a saved JSON or CSV listing instead of the feed URL")
	cmd.Flags().IntVarP(&flags.limit, "limit", "l", 0, "Number of entries to request (default from config)")
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Skip confirmation prompt")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Fetch and validate the listing without changing the catalog")

	return cmd
}

func runSeed(cmd *cobra.Command, flags seedFlags) error {
	ctx := cmd.Context()
	opts := depsOptions{feedFile: flags.file, seedLimit: flags.limit}

	return withDepsOptions(ctx, opts, func(deps *Deps) error {
		out := cmd.OutOrStdout()

		if !flags.force && !flags.dryRun {
			prompt := "Replace the catalog with the feed listing?"
			if count, err := deps.CatalogHandler.HandleCount(ctx); err == nil && count > 0 {
				prompt = fmt.Sprintf("Delete all %d pokemon and reload from the feed?", count)
			}
			if !confirmAction(cmd.InOrStdin(), out, prompt) {
				fmt.Fprintln(out, "Cancelled.")
				return nil
			}
		}

		result, err := deps.SeedHandler.Handle(ctx, handlers.SeedOptions{DryRun: flags.dryRun})
		if err != nil {
			return err
		}

		if globalOutput == OutputJSON {
			return formatJSON(out, result)
		}
		if result.DryRun {
			printInfo(out, "Dry run: %d pokemon would be seeded", result.Inserted)
			return nil
		}
		printSuccess(out, "Seeded %d pokemon (%d removed) in %s", result.Inserted, result.Purged, result.Duration.Round(time.Millisecond))
		return nil
	})
}

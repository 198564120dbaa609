// Package main provides the entry point for the pokedex CLI application.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/ersonp/pokedex-core/internal/domain/entities"
)

var (
	version      = "0.1.0-dev"
	globalDir    string
	globalOutput string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		printError(os.Stderr, err)
		cancel()
		os.Exit(exitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pokedex",
		Short:         "A Pokemon catalog backed by SQLite and seeded from PokeAPI",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return validateOutput(globalOutput)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&globalDir, "dir", "C", "", "Project directory (default: current directory)")
	rootCmd.PersistentFlags().StringVarP(&globalOutput, "output", "o", OutputTable, "Output format (table, json)")

	rootCmd.AddCommand(
		newInitCmd(),
		newCreateCmd(),
		newListCmd(),
		newGetCmd(),
		newUpdateCmd(),
		newDeleteCmd(),
		newSeedCmd(),
	)

	return rootCmd
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	return rootCmd.ExecuteContext(ctx)
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v\n", err)
	if hint := errors.FlattenHints(err); hint != "" {
		fmt.Fprintf(w, "hint: %s\n", hint)
	}
}

// exitCode maps the error taxonomy onto process exit codes.
func exitCode(err error) int {
	var e *entities.Error
	if !errors.As(err, &e) {
		return ExitFailure
	}
	switch e.Kind {
	case entities.KindBadRequest:
		return ExitBadRequest
	case entities.KindNotFound:
		return ExitNotFound
	case entities.KindConflict:
		return ExitConflict
	default:
		return ExitFailure
	}
}

package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a pokemon by ID",
		Long:  "Deletes the pokemon with exactly the given ID. Numbers and names are not resolved.",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id := args[0]

	return withDeps(ctx, func(deps *Deps) error {
		if err := deps.CatalogHandler.HandleDelete(ctx, id); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if globalOutput == OutputJSON {
			return formatJSON(out, map[string]string{"deleted": id})
		}
		printSuccess(out, "Deleted pokemon: %s", id)
		return nil
	})
}

func confirmAction(in io.Reader, out io.Writer, prompt string) bool {
	reader := bufio.NewReader(in)
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	response, _ := reader.ReadString('\n') // Error ignored: EOF/error treated as "no"
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

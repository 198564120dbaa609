package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"

	"github.com/ersonp/pokedex-core/internal/application/handlers"
	"github.com/ersonp/pokedex-core/internal/domain/entities"
)

func validateOutput(format string) error {
	if !slices.Contains(validOutputs, format) {
		return errors.Newf("invalid output format %q, valid formats: %v", format, validOutputs)
	}
	return nil
}

func formatJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func pokemonTable(list []*entities.Pokemon) (string, error) {
	data := pterm.TableData{{"NO", "NAME", "ID", "CREATED"}}
	for _, p := range list {
		data = append(data, []string{
			strconv.Itoa(p.No),
			p.Name,
			p.ID,
			p.CreatedAt.Format(time.DateTime),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

func printPokemon(w io.Writer, p *entities.Pokemon) error {
	if globalOutput == OutputJSON {
		return formatJSON(w, p)
	}
	table, err := pokemonTable([]*entities.Pokemon{p})
	if err != nil {
		return errors.Wrap(err, "rendering table")
	}
	fmt.Fprintln(w, table)
	return nil
}

func printPokemonList(w io.Writer, result *handlers.PokemonListResult) error {
	if globalOutput == OutputJSON {
		return formatJSON(w, result)
	}

	if len(result.Pokemon) == 0 {
		fmt.Fprintln(w, "No pokemon found.")
		return nil
	}

	table, err := pokemonTable(result.Pokemon)
	if err != nil {
		return errors.Wrap(err, "rendering table")
	}
	fmt.Fprintf(w, "Showing %d-%d of %d pokemon:\n\n",
		result.Offset+1, result.Offset+len(result.Pokemon), result.Total)
	fmt.Fprintln(w, table)
	return nil
}

func printSuccess(w io.Writer, format string, args ...any) {
	pterm.Success.WithWriter(w).Printfln(format, args...)
}

func printInfo(w io.Writer, format string, args ...any) {
	pterm.Info.WithWriter(w).Printfln(format, args...)
}

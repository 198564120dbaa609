package feed

import (
	"encoding/csv"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/ersonp/pokedex-core/internal/domain/entities"
)

// DecodeCSVListing reads a listing saved as CSV with a header row.
// Expected columns: name, url. Other columns are ignored.
func DecodeCSVListing(r io.Reader) (*Listing, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	colIndex, err := readHeader(reader)
	if err != nil {
		return nil, err
	}

	listing := &Listing{Results: []entities.FeedEntry{}}
	lineNum := 1 // Header is line 1
	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "parsing listing: line %d", lineNum)
		}

		listing.Results = append(listing.Results, entities.FeedEntry{
			Name: getColumn(record, colIndex, "name"),
			URL:  getColumn(record, colIndex, "url"),
		})
	}
	listing.Count = len(listing.Results)

	return listing, nil
}

// readHeader reads and validates the CSV header row.
func readHeader(reader *csv.Reader) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "parsing listing: reading CSV header")
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[col] = i
	}

	for _, col := range []string{"name", "url"} {
		if _, ok := colIndex[col]; !ok {
			return nil, errors.Newf("parsing listing: missing required column: %s", col)
		}
	}

	return colIndex, nil
}

// getColumn safely retrieves a column value from a record.
func getColumn(record []string, colIndex map[string]int, col string) string {
	if idx, ok := colIndex[col]; ok && idx < len(record) {
		return record[idx]
	}
	return ""
}

package feed

import (
	"io"
	"path/filepath"
	"strings"
)

// Decoder reads a listing from a saved document.
type Decoder func(r io.Reader) (*Listing, error)

// ForFormat returns the decoder for the given format.
// Supported formats: "json", "csv".
func ForFormat(format string) Decoder {
	switch strings.ToLower(format) {
	case "json":
		return DecodeListing
	case "csv":
		return DecodeCSVListing
	default:
		return nil
	}
}

// ForFile returns the decoder matching the file extension.
func ForFile(filename string) Decoder {
	return ForFormat(strings.TrimPrefix(filepath.Ext(filename), "."))
}

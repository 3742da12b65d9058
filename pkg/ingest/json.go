package ingest

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONExporter writes WebPages out as a JSON array, adapted from the
// teacher's pkg/impex.JSONExporter (which walked a generic
// document.Document's field map); here the shape is fixed to WebPage's
// three fields so there is no per-value type dance to do.
type JSONExporter struct {
	Pretty bool
}

// NewJSONExporter returns a JSONExporter. pretty enables indentation.
func NewJSONExporter(pretty bool) *JSONExporter {
	return &JSONExporter{Pretty: pretty}
}

// Export writes pages to w as a JSON array.
func (e *JSONExporter) Export(w io.Writer, pages []WebPage) error {
	encoder := json.NewEncoder(w)
	if e.Pretty {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(pages); err != nil {
		return fmt.Errorf("ingest: encoding JSON: %w", err)
	}
	return nil
}

// JSONImporter reads a JSON array of WebPages.
type JSONImporter struct{}

// NewJSONImporter returns a JSONImporter.
func NewJSONImporter() *JSONImporter {
	return &JSONImporter{}
}

// Import reads r as a JSON array and returns the decoded WebPages.
func (i *JSONImporter) Import(r io.Reader) ([]WebPage, error) {
	var pages []WebPage
	if err := json.NewDecoder(r).Decode(&pages); err != nil {
		return nil, fmt.Errorf("ingest: decoding JSON: %w", err)
	}
	return pages, nil
}

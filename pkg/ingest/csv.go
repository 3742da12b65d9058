package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
)

// csvFields is the fixed column order CSVExporter/CSVImporter use - the
// teacher's pkg/impex.CSVExporter auto-detects and sorts a document's
// field set at export time because a generic Document has no fixed
// schema; a WebPage does, so the column order is just declared.
var csvFields = []string{"url", "title", "excerpt"}

// CSVExporter writes WebPages out as CSV with a header row, adapted from
// the teacher's pkg/impex.CSVExporter.
type CSVExporter struct{}

// NewCSVExporter returns a CSVExporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Export writes pages to w as CSV (header row then one row per page).
func (e *CSVExporter) Export(w io.Writer, pages []WebPage) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(csvFields); err != nil {
		return fmt.Errorf("ingest: writing CSV header: %w", err)
	}
	for _, page := range pages {
		row := []string{page.URL, page.Title, page.Excerpt}
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("ingest: writing CSV row: %w", err)
		}
	}
	return nil
}

// CSVImporter reads WebPages from a CSV file whose header row names
// (some permutation of) "url", "title", "excerpt"; missing columns are
// left zero-valued.
type CSVImporter struct{}

// NewCSVImporter returns a CSVImporter.
func NewCSVImporter() *CSVImporter {
	return &CSVImporter{}
}

// Import reads r as CSV and returns one WebPage per data row.
func (i *CSVImporter) Import(r io.Reader) ([]WebPage, error) {
	csvReader := csv.NewReader(r)

	headers, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("ingest: reading CSV header: %w", err)
	}
	columns := make(map[string]int, len(headers))
	for idx, header := range headers {
		columns[header] = idx
	}

	var pages []WebPage
	rowNum := 1
	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ingest: reading CSV row %d: %w", rowNum, err)
		}
		pages = append(pages, WebPage{
			URL:     field(row, columns, "url"),
			Title:   field(row, columns, "title"),
			Excerpt: field(row, columns, "excerpt"),
		})
		rowNum++
	}
	return pages, nil
}

func field(row []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

package ingest

import (
	"bytes"
	"testing"
)

func TestCSVExportImportRoundTrip(t *testing.T) {
	pages := []WebPage{
		{URL: "http://a.example/", Title: "A", Excerpt: "about a"},
		{URL: "http://b.example/", Title: "B", Excerpt: "about b"},
	}

	var buf bytes.Buffer
	if err := NewCSVExporter().Export(&buf, pages); err != nil {
		t.Fatalf("Export: %v", err)
	}

	got, err := NewCSVImporter().Import(&buf)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(got) != 2 || got[0] != pages[0] || got[1] != pages[1] {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, pages)
	}
}

func TestCSVImporterReordersHeaderColumns(t *testing.T) {
	input := "title,url,excerpt\nHello,http://x.example/,hello excerpt\n"
	got, err := NewCSVImporter().Import(bytes.NewReader([]byte(input)))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	want := WebPage{URL: "http://x.example/", Title: "Hello", Excerpt: "hello excerpt"}
	if len(got) != 1 || got[0] != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestCSVImporterMissingHeader(t *testing.T) {
	_, err := NewCSVImporter().Import(bytes.NewReader(nil))
	if err == nil {
		t.Fatal("expected error for empty input")
	}
}

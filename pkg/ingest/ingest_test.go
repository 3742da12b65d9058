package ingest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.txt")
	content := "Artificial Intelligence\nA field of computer science concerned with building AI systems.\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	page, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if page.URL != "file://"+path {
		t.Errorf("expected URL %q, got %q", "file://"+path, page.URL)
	}
	if page.Title != "Artificial Intelligence" {
		t.Errorf("expected title %q, got %q", "Artificial Intelligence", page.Title)
	}
	if page.Excerpt != "A field of computer science concerned with building AI systems." {
		t.Errorf("unexpected excerpt: %q", page.Excerpt)
	}
}

func TestLoadFileSingleLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.txt")
	if err := os.WriteFile(path, []byte("just one line"), 0o644); err != nil {
		t.Fatal(err)
	}

	page, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if page.Title != "just one line" || page.Excerpt != "just one line" {
		t.Errorf("expected title and excerpt to both equal the only line, got title=%q excerpt=%q", page.Title, page.Excerpt)
	}
}

func TestLoadFileEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	page, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if page.Title != "empty.txt" {
		t.Errorf("expected title to fall back to filename, got %q", page.Title)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("/nonexistent/path/does/not/exist.txt")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	for i, content := range []string{
		"Cats\nAll about cats.\n",
		"Dogs\nAll about dogs.\n",
	} {
		name := filepath.Join(dir, string(rune('a'+i))+".txt")
		if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	// Non-matching file should be skipped.
	if err := os.WriteFile(filepath.Join(dir, "notes.md"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	pages, err := LoadDir(dir, ".txt")
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
}

func TestLoadDirMissing(t *testing.T) {
	_, err := LoadDir("/nonexistent/dir", ".txt")
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}

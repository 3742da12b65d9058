// Package ingest turns host-supplied input - a file on disk, a directory of
// files, an HTTP request body - into the (resource, text) pair
// pkg/engine.Engine.Insert expects. spec.md §6 places file ingestion
// squarely at the host boundary, alongside configuration loading; this
// package is that boundary's one concrete resource shape, grounded on
// spec.md §8 Scenario F ("structured resources ... webpage records").
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WebPage is the structured resource from spec.md §8 Scenario F: only
// Excerpt is indexed (handed to Engine.Insert as the text); URL and Title
// ride along unindexed and come back verbatim when the engine returns a
// matching resource from Search.
type WebPage struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
}

// LoadFile reads path and builds a WebPage from it: URL is a "file://" URI
// for path, Title is the first line of the file (or the base filename if
// the file is empty), and Excerpt is the remaining content - or the whole
// file if it is a single line. This mirrors the teacher's impex importers
// in spirit (turn on-disk content into an in-memory record) without any of
// their JSON/CSV framing, since a webpage excerpt is plain text.
func LoadFile(path string) (WebPage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return WebPage{}, fmt.Errorf("ingest: reading %q: %w", path, err)
	}

	title, excerpt := splitTitle(string(data))
	if title == "" {
		title = filepath.Base(path)
	}

	return WebPage{
		URL:     "file://" + path,
		Title:   title,
		Excerpt: excerpt,
	}, nil
}

// LoadDir walks dir non-recursively for files matching suffix (e.g. ".txt")
// and loads each one with LoadFile, returning them in directory-read order.
// A single failed file aborts the whole walk - partial ingestion of a
// directory is not a supported outcome, matching spec.md's "engine surfaces
// nothing; all recoverable errors live at the host boundary" posture by
// keeping the host's own ingestion step all-or-nothing too.
func LoadDir(dir, suffix string) ([]WebPage, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("ingest: reading directory %q: %w", dir, err)
	}

	pages := make([]WebPage, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		page, err := LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// splitTitle takes the first non-blank line of text as the title and
// returns the remainder (or the whole text, if it has no second line) as
// the excerpt.
func splitTitle(text string) (title, excerpt string) {
	trimmed := strings.TrimLeft(text, "\n\r\t ")
	newline := strings.IndexByte(trimmed, '\n')
	if newline == -1 {
		return strings.TrimSpace(trimmed), strings.TrimSpace(trimmed)
	}
	return strings.TrimSpace(trimmed[:newline]), strings.TrimSpace(trimmed[newline+1:])
}

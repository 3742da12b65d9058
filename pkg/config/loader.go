package config

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/mnohosten/searchidx/pkg/normalizer"
)

// LoadStopwordsFile loads a stop-word list supplied either as a plain
// newline-delimited UTF-8 text file (.txt) or gzip-compressed (.txt.gz) -
// spec.md §6's "supplied either as an in-memory list or loaded from a
// newline-delimited UTF-8 text file" contract, extended to transparently
// accept a compressed corpus asset the way the teacher's pkg/compression
// wraps reads with a gzip-compatible stream.
func LoadStopwordsFile(path string) (*normalizer.Stopwords, error) {
	if path == "" {
		return nil, ErrNoStopwordsFile
	}

	r, err := openConfigFile(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return normalizer.LoadStopwordsReader(r)
}

// LoadReplacementsFile loads a literal-replacement list supplied as a plain
// or gzip-compressed newline-delimited text file, one "key=value" pair per
// line, blank lines and lines without "=" skipped.
func LoadReplacementsFile(path string) (*normalizer.Replacer, error) {
	r, err := openConfigFile(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	pairs := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		pairs[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return normalizer.NewReplacer(pairs), nil
}

// openConfigFile opens path for reading, transparently gunzipping it when
// the name ends in ".gz". Any other extension besides ".txt"/".txt.gz" is
// rejected with ErrUnsupportedConfigFormat.
func openConfigFile(path string) (io.ReadCloser, error) {
	if !strings.HasSuffix(path, ".txt") && !strings.HasSuffix(path, ".txt.gz") {
		return nil, ErrUnsupportedConfigFormat
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}

	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return gzipReadCloser{gz: gz, f: f}, nil
}

// gzipReadCloser closes both the gzip stream and the underlying file.
type gzipReadCloser struct {
	gz *gzip.Reader
	f  *os.File
}

func (g gzipReadCloser) Read(p []byte) (int, error) { return g.gz.Read(p) }

func (g gzipReadCloser) Close() error {
	gzErr := g.gz.Close()
	fErr := g.f.Close()
	if gzErr != nil {
		return gzErr
	}
	return fErr
}

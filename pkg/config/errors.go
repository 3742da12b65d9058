package config

import "errors"

var (
	// ErrUnsupportedConfigFormat is returned by LoadStopwordsFile/LoadReplacementsFile
	// for a path whose extension is neither .txt nor .txt.gz.
	ErrUnsupportedConfigFormat = errors.New("config: unsupported file format, expected .txt or .txt.gz")

	// ErrNoStopwordsFile is returned when a host asks to load stopwords but
	// no path was configured.
	ErrNoStopwordsFile = errors.New("config: no stopwords file configured")
)

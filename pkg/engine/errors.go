package engine

import "errors"

var (
	// ErrEmptyDocument is returned by host-facing callers that want an
	// explicit error rather than Insert's silent skip when text
	// normalizes to zero surviving tokens.
	ErrEmptyDocument = errors.New("engine: document has no surviving tokens after normalization")

	// ErrUnknownDocID is returned when a caller references a DocID the
	// engine has never assigned.
	ErrUnknownDocID = errors.New("engine: unknown document id")
)

package dsl

import "fmt"

// ErrKind classifies a ParseError. Every kind is a deterministic syntax
// failure over static text; none of them is retryable.
type ErrKind string

const (
	MalformedComment     ErrKind = "malformed_comment"
	MalformedRow         ErrKind = "malformed_row"
	UnrecognizedType     ErrKind = "unrecognized_type"
	UnknownTier          ErrKind = "unknown_tier"
	UnsupportedConstruct ErrKind = "unsupported_construct"
)

// ParseError carries the expected format template and the exact offending
// substring. Row- and type-level failures propagate through ParseTable
// unwrapped, so the caller always sees the original error.
type ParseError struct {
	Kind   ErrKind
	Format string
	Input  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse table row (%s): expected format %q, got %q", e.Kind, e.Format, e.Input)
}

func parseErr(kind ErrKind, format, input string) *ParseError {
	return &ParseError{Kind: kind, Format: format, Input: input}
}

// UnsupportedDialectError is raised only at render time, when a Table is
// asked to emit a declaration in a dialect the serializer does not know.
type UnsupportedDialectError struct {
	Lang string
}

func (e *UnsupportedDialectError) Error() string {
	return fmt.Sprintf("unsupported dialect %q", e.Lang)
}

// ResolutionError signals that a dependency target is unknown to the
// registry. It is never produced by the pure parse or render paths.
type ResolutionError struct {
	Table string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("could not resolve dependent table %q", e.Table)
}

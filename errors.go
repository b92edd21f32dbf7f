package director

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the chunk container and key-table lookups.
var (
	// ErrMissingSection is returned when a section id is not present in the
	// container.
	ErrMissingSection = errors.New("director: missing section")

	// ErrRefcountUnderflow marks a reference dropped with refcount already
	// zero. It is never surfaced to callers: the arena's Release treats a
	// drop against a zero refcount as a no-op.
	ErrRefcountUnderflow = errors.New("director: refcount underflow")
)

// MalformedFileError indicates that a container could not be parsed because
// a required structural field lies past end-of-data or the file is too
// short to hold its framing. An unrecognized signature is reported as an
// InvalidMagicError instead.
type MalformedFileError struct {
	Err error
	Pos int64
}

func (e *MalformedFileError) Error() string {
	msg := "director: malformed file"
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Pos > 0 {
		msg += fmt.Sprintf(" (at byte %d)", e.Pos)
	}
	return msg
}

func (e *MalformedFileError) Unwrap() error { return e.Err }

// InvalidMagicError means a header signature did not match what the
// decoder expected; this always aborts the decoder for that chunk.
type InvalidMagicError struct {
	Want, Got string
}

func (e *InvalidMagicError) Error() string {
	return fmt.Sprintf("director: invalid magic: want %q, got %q", e.Want, e.Got)
}

// TypeMismatchError means a section was found but its FOURCC did not match
// what the caller expected.
type TypeMismatchError struct {
	Section SectionID
	Want    FOURCC
	Got     FOURCC
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("director: section %d: expected FOURCC %q, got %q", e.Section, e.Want, e.Got)
}

// ChildParseFailedError wraps the failure to parse a member's sub-chunk.
// The child stays in the member's ordered child list with nil Data; the
// member itself remains valid. This error is never returned from CastLoader — it is
// recorded as a Diagnostic instead (see cast.go's Diagnostics field).
type ChildParseFailedError struct {
	Section SectionID
	Err     error
}

func (e *ChildParseFailedError) Error() string {
	return fmt.Sprintf("director: child section %d: %s", e.Section, e.Err)
}

func (e *ChildParseFailedError) Unwrap() error { return e.Err }

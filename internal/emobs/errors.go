// Package emobs implements the reverse-engineered EMObs binary reader: a
// byte cursor, TLC scanner, typed field reader, recursive-descent record
// parser, row projector, and three read-only diagnostic renderings (TLC
// listing, TLC hierarchy, hex dump).
package emobs

import (
	"errors"
	"fmt"
)

// ErrNoMoreRecords terminates the top-level record loop; it is the normal
// end-of-scan condition, not a failure.
var ErrNoMoreRecords = errors.New("emobs: no more records")

// IOError wraps a file open/read failure. Fatal for the current file.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string { return fmt.Sprintf("emobs: io %s: %v", e.Path, e.Err) }
func (e *IOError) Unwrap() error { return e.Err }

// OutOfBoundsError reports an attempt to read past the buffer. Fatal for the
// current file.
type OutOfBoundsError struct {
	Offset int
	Length int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("emobs: out of bounds at offset %d (buffer length %d)", e.Offset, e.Length)
}

// UnexpectedTagError reports a TLC mismatch against the expected literal.
// The current record is dropped and parsing of the file stops.
type UnexpectedTagError struct {
	Expected string
	Found    string
	Offset   int
}

func (e *UnexpectedTagError) Error() string {
	return fmt.Sprintf("emobs: expected tag %q, found %q at offset %d", e.Expected, e.Found, e.Offset)
}

// UnsupportedVersionError reports a version byte outside the set a record
// type accepts. Same handling as UnexpectedTagError.
type UnsupportedVersionError struct {
	Tag     string
	Version byte
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("emobs: unsupported version %d for tag %q", e.Version, e.Tag)
}

// MalformedError reports a structurally invalid field: a MAT without its
// literal prefix, a wstring length outside the accepted range, and the like.
type MalformedError struct {
	Context string
}

func (e *MalformedError) Error() string { return "emobs: malformed: " + e.Context }

// TruncatedError reports running off the end of the buffer mid-record.
type TruncatedError struct {
	Context string
	Offset  int
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("emobs: truncated at offset %d: %s", e.Offset, e.Context)
}

// SuspiciousValueError describes a non-fatal diagnostic: a PDL sentinel
// other than 2, a FRA camera index outside {0,1}, an unparseable count.
// It is never returned from a parse function; it is only ever formatted and
// handed to a Sink.
type SuspiciousValueError struct {
	Context string
}

func (e *SuspiciousValueError) Error() string { return "emobs: suspicious value: " + e.Context }

// Sink is the line-oriented diagnostic sink the core writes non-fatal
// warnings to (spec: SuspiciousValue and version-drift reports). The core
// only depends on this interface; internal/diagsink provides the concrete
// implementation used by cmd/emobsread.
type Sink interface {
	Warn(context string, args ...any)
}

// NoopSink discards every diagnostic. Useful in tests and in diagnostic
// passes that run ahead of a configured sink.
type NoopSink struct{}

// Warn implements Sink by doing nothing.
func (NoopSink) Warn(string, ...any) {}

func asTruncated(context string, offset int, err error) error {
	var oob *OutOfBoundsError
	if errors.As(err, &oob) {
		return &TruncatedError{Context: context, Offset: offset}
	}
	return err
}

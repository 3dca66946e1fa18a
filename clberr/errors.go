// Package clberr defines the typed error taxonomy shared across the CLB
// toolchain, grounded on the teacher's encoder.EncodingError /
// parser.ParseError pattern: small structs that implement error, carry
// enough context to print a useful message, and support errors.As for
// callers that want to branch on the specific failure kind.
package clberr

import "fmt"

// ArityExceeded reports a Boolean expression referencing more than four
// distinct signals.
type ArityExceeded struct {
	Count   int
	Signals []string
}

func (e *ArityExceeded) Error() string {
	return fmt.Sprintf("expression references %d distinct signals (max 4): %v", e.Count, e.Signals)
}

func NewArityExceeded(signals []string) *ArityExceeded {
	return &ArityExceeded{Count: len(signals), Signals: signals}
}

// PortCollision reports two distinct signals both requiring the same LUT
// input port letter.
type PortCollision struct {
	Port    byte
	First   string
	Second  string
}

func (e *PortCollision) Error() string {
	return fmt.Sprintf("port %c used twice (%s & %s)", e.Port, e.First, e.Second)
}

func NewPortCollision(port byte, first, second string) *PortCollision {
	return &PortCollision{Port: port, First: first, Second: second}
}

// TypeMisuse reports a symbolic expression coerced to a truth value, or a
// non-signal/non-expression argument passed where AutoBLE expects one.
type TypeMisuse struct {
	Message string
}

func (e *TypeMisuse) Error() string { return "type misuse: " + e.Message }

func NewTypeMisuse(msg string) *TypeMisuse { return &TypeMisuse{Message: msg} }

// Misconfig is a warning, not a fatal error: the hardware accepts it, but
// it is worth flagging. See package diag for the suppressible sink this
// routes through; Misconfig implements error only so it composes with the
// rest of the taxonomy in tests and logs.
type Misconfig struct {
	Message string
}

func (e *Misconfig) Error() string { return "misconfig: " + e.Message }

func NewMisconfig(format string, args ...any) *Misconfig {
	return &Misconfig{Message: fmt.Sprintf(format, args...)}
}

// UnknownEncoding reports a decoded field's raw integer falling outside its
// destination enumeration.
type UnknownEncoding struct {
	Field string
	Value int
}

func (e *UnknownEncoding) Error() string {
	return fmt.Sprintf("field %s: value %d is not a known encoding", e.Field, e.Value)
}

func NewUnknownEncoding(field string, value int) *UnknownEncoding {
	return &UnknownEncoding{Field: field, Value: value}
}

// ValueDoesNotFit reports an integer that cannot be packed into its bit
// allotment.
type ValueDoesNotFit struct {
	Field string
	Value int
	Bits  int
}

func (e *ValueDoesNotFit) Error() string {
	return fmt.Sprintf("field %s: value %d does not fit in %d bits", e.Field, e.Value, e.Bits)
}

func NewValueDoesNotFit(field string, value, bits int) *ValueDoesNotFit {
	return &ValueDoesNotFit{Field: field, Value: value, Bits: bits}
}

// IndexOutOfRange reports a bit index outside the 0..1631 buffer range.
type IndexOutOfRange struct {
	Index int
	Limit int
}

func (e *IndexOutOfRange) Error() string {
	return fmt.Sprintf("bit index %d out of range 0..%d", e.Index, e.Limit-1)
}

func NewIndexOutOfRange(index, limit int) *IndexOutOfRange {
	return &IndexOutOfRange{Index: index, Limit: limit}
}

// ParseError reports a malformed FASM line, naming the original line
// verbatim.
type ParseError struct {
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s (line: %q)", e.Reason, e.Line)
}

func NewParseError(line, reason string) *ParseError {
	return &ParseError{Line: line, Reason: reason}
}

// LengthMismatch reports a JSON bitstream document that does not decode to
// exactly 1632 bits.
type LengthMismatch struct {
	Got  int
	Want int
}

func (e *LengthMismatch) Error() string {
	return fmt.Sprintf("bitstream length is %d, expected %d", e.Got, e.Want)
}

func NewLengthMismatch(got, want int) *LengthMismatch {
	return &LengthMismatch{Got: got, Want: want}
}

// IOFailure wraps an underlying file read/write error with the path that
// failed.
type IOFailure struct {
	Path string
	Err  error
}

func (e *IOFailure) Error() string { return fmt.Sprintf("io failure on %s: %v", e.Path, e.Err) }
func (e *IOFailure) Unwrap() error { return e.Err }

func NewIOFailure(path string, err error) *IOFailure {
	return &IOFailure{Path: path, Err: err}
}

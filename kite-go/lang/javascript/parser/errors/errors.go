// Package errors defines error reason codes and extracts the reason
// associated with an error returned by the javascript parser.
package errors

import (
	"fmt"

	"github.com/kiteco/esparse/kite-go/lang/javascript/scanner"
	pkgerrors "github.com/pkg/errors"
)

// Reason identifies the reason why an error is returned by a call
// to parse. A Reason code is also a valid error value.
type Reason int

// List of error result reasons.
const (
	// Unknown error reason.
	Unknown Reason = iota
	// Syntax error in the input: a lexical, grammar or strict mode error.
	Syntax
	// TooManyLines in input, a partial result is also returned.
	TooManyLines
	// InvalidEncoding is when the input to parse has invalid utf-8 encoding.
	InvalidEncoding
	// Internal is a bug in the parser, such as a node built with an
	// operator outside of its closed set.
	Internal
)

var reasonString = map[Reason]string{
	Unknown:         "unknown",
	Syntax:          "syntax error",
	TooManyLines:    "too many lines",
	InvalidEncoding: "invalid encoding",
	Internal:        "internal error",
}

// String representation of a Reason.
func (r Reason) String() string {
	if s, ok := reasonString[r]; ok {
		return s
	}
	return fmt.Sprintf("invalid reason (%d)", r)
}

// Error returns the string representation of the Reason
// as error message.
func (r Reason) Error() string {
	return r.String()
}

// Reason returns itself as the error Reason.
func (r Reason) Reason() Reason {
	return r
}

// ErrorReason classifies an error returned by the parser after unwrapping it
// to its root cause. A *scanner.Error is a Syntax error. Lists of errors, such
// as scanner.ErrorList, report the first known reason of their elements.
func ErrorReason(err error) Reason {
	switch e := pkgerrors.Cause(err).(type) {
	case nil:
		return Unknown
	case *scanner.Error:
		return Syntax
	case interface{ Reason() Reason }:
		return e.Reason()
	case interface{ WrappedErrors() []error }:
		for _, w := range e.WrappedErrors() {
			if r := ErrorReason(w); r != Unknown {
				return r
			}
		}
	}
	return Unknown
}

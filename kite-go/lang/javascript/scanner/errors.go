package scanner

import (
	"fmt"
	"sort"
)

// Error is a lexical, syntax or strict mode error located in the source text.
type Error struct {
	// Message is the rendered error, e.g "Line 1: Unexpected number".
	Message string
	// Description is the message without the line prefix.
	Description string
	// Index is the byte offset of the error.
	Index int
	// LineNumber is 1 based.
	LineNumber int
	// Column is 1 based.
	Column int
	// Source is the text of the offending line.
	Source string
}

// NewError builds an Error at the given offset of the source.
func NewError(lines *LineTable, offset int, description string) *Error {
	pos := lines.Position(offset)
	return &Error{
		Message:     fmt.Sprintf("Line %d: %s", pos.Line, description),
		Description: description,
		Index:       offset,
		LineNumber:  pos.Line,
		Column:      pos.Column + 1,
		Source:      lines.LineText(pos.Line),
	}
}

// Error implements error.
func (e *Error) Error() string {
	return e.Message
}

// ErrorList is a list of *Errors.
// The zero value for an ErrorList is an empty ErrorList ready to use.
type ErrorList []*Error

// Add adds an Error to an ErrorList.
func (p *ErrorList) Add(e *Error) {
	*p = append(*p, e)
}

// Len implements sort.Interface.
func (p ErrorList) Len() int { return len(p) }

// Swap implements sort.Interface.
func (p ErrorList) Swap(i, j int) { p[i], p[j] = p[j], p[i] }

// Less implements sort.Interface.
func (p ErrorList) Less(i, j int) bool { return p[i].Index < p[j].Index }

// Sort sorts an ErrorList by source offset, keeping the order of errors at the same offset.
func (p ErrorList) Sort() {
	sort.Stable(p)
}

// Error implements error.
func (p ErrorList) Error() string {
	switch len(p) {
	case 0:
		return "no errors"
	case 1:
		return p[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", p[0], len(p)-1)
}

// Err returns an error equivalent to this error list.
// If the list is empty, Err returns nil.
func (p ErrorList) Err() error {
	if len(p) == 0 {
		return nil
	}
	return p
}

// WrappedErrors returns the errors of the list.
func (p ErrorList) WrappedErrors() []error {
	errs := make([]error, 0, len(p))
	for _, e := range p {
		errs = append(errs, e)
	}
	return errs
}

// ScanError is the error recorded for an illegal word: the position at which
// scanning failed and a description.
type ScanError struct {
	Offset int
	Msg    string
}

// Error implements error.
func (e ScanError) Error() string {
	return fmt.Sprintf("%d: %s", e.Offset, e.Msg)
}

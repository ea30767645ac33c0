package ast

import "fmt"

// Position is a line/column pair; Line is 1 based and Column is 0 based.
type Position struct {
	Line   int
	Column int
}

// String representation of the position, e.g 3:14.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Valid returns true for positions that could have been produced by a scan.
func (p Position) Valid() bool {
	return p.Line > 0 && p.Column >= 0
}

// Range is a span of byte offsets, End is exclusive.
type Range struct {
	Start int
	End   int
}

// NewRange returns the range [start, end); it panics with an InvariantError
// if start is negative or end precedes start.
func NewRange(start, end int) Range {
	if start < 0 || end < start {
		panic(InvariantError(fmt.Sprintf("invalid range %d...%d", start, end)))
	}
	return Range{Start: start, End: end}
}

// IsEmpty returns true if the range contains no bytes.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Len returns the number of bytes in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Contains returns true if the offset lies within the range.
func (r Range) Contains(offset int) bool {
	return r.Start <= offset && offset < r.End
}

// String representation of the range, e.g 0...4.
func (r Range) String() string {
	return fmt.Sprintf("%d...%d", r.Start, r.End)
}

// Location of a node or token in the source text. Source is an optional
// label (typically the file name) supplied by the caller.
type Location struct {
	Start  Position
	End    Position
	Source string
}

// String representation of the location, e.g 1:0...1:4.
func (l Location) String() string {
	return l.Start.String() + "..." + l.End.String()
}

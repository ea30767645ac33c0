package scanner

import (
	"sort"
	"unicode/utf8"

	"github.com/kiteco/esparse/kite-go/lang/javascript/ast"
)

// LineTable maps byte offsets to line/column positions. Lines are
// terminated by \n, \r, \r\n, U+2028 or U+2029. Columns count characters,
// not bytes.
type LineTable struct {
	src    []byte
	starts []int
}

// NewLineTable indexes the line starts of src.
func NewLineTable(src []byte) *LineTable {
	starts := []int{0}
	for i := 0; i < len(src); {
		r, w := rune(src[i]), 1
		if r >= utf8.RuneSelf {
			r, w = utf8.DecodeRune(src[i:])
		}
		switch r {
		case '\r':
			if i+1 < len(src) && src[i+1] == '\n' {
				w = 2
			}
			starts = append(starts, i+w)
		case '\n', '\u2028', '\u2029':
			starts = append(starts, i+w)
		}
		i += w
	}
	return &LineTable{src: src, starts: starts}
}

// Lines returns the number of lines.
func (t *LineTable) Lines() int {
	return len(t.starts)
}

// LineStart returns the offset of the first byte of a 1 based line.
func (t *LineTable) LineStart(line int) int {
	return t.starts[line-1]
}

// Position of a byte offset; offsets past the end map to the end of the source.
func (t *LineTable) Position(offset int) ast.Position {
	if offset > len(t.src) {
		offset = len(t.src)
	}
	if offset < 0 {
		offset = 0
	}
	line := sort.Search(len(t.starts), func(i int) bool { return t.starts[i] > offset })
	start := t.starts[line-1]
	return ast.Position{
		Line:   line,
		Column: utf8.RuneCount(t.src[start:offset]),
	}
}

// Location of a byte range.
func (t *LineTable) Location(r ast.Range, source string) *ast.Location {
	return &ast.Location{
		Start:  t.Position(r.Start),
		End:    t.Position(r.End),
		Source: source,
	}
}

// LineText returns the text of a 1 based line without its terminator.
func (t *LineTable) LineText(line int) string {
	if line < 1 || line > len(t.starts) {
		return ""
	}
	start := t.starts[line-1]
	end := len(t.src)
	if line < len(t.starts) {
		end = t.starts[line]
	}
	for end > start {
		r, w := utf8.DecodeLastRune(t.src[start:end])
		if !isLineTerminator(r) {
			break
		}
		end -= w
	}
	return string(t.src[start:end])
}

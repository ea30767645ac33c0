package estree

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// jsonWriter streams JSON values in the order they are written. Members of
// an object keep their insertion order. The first write error is kept and
// every later call is a no-op.
type jsonWriter struct {
	w      *bufio.Writer
	indent string
	counts []int // items written at each open level, counts[0] is the root
	name   string
	named  bool
	err    error
}

func newJSONWriter(w io.Writer, indent string) *jsonWriter {
	return &jsonWriter{
		w:      bufio.NewWriter(w),
		indent: indent,
		counts: []int{0},
	}
}

func (j *jsonWriter) write(s string) {
	if j.err != nil {
		return
	}
	_, j.err = j.w.WriteString(s)
}

func (j *jsonWriter) depth() int {
	return len(j.counts) - 1
}

func (j *jsonWriter) newline(depth int) {
	if j.indent == "" {
		return
	}
	j.write("\n")
	j.write(strings.Repeat(j.indent, depth))
}

// prefix writes the separator, the indentation and the pending member name
// that precede a value.
func (j *jsonWriter) prefix() {
	top := len(j.counts) - 1
	if j.counts[top] > 0 {
		j.write(",")
	}
	if j.depth() > 0 {
		j.newline(j.depth())
	}
	if j.named {
		j.write(quote(j.name))
		if j.indent == "" {
			j.write(":")
		} else {
			j.write(": ")
		}
		j.name, j.named = "", false
	}
	j.counts[top]++
}

func (j *jsonWriter) member(name string) {
	j.name, j.named = name, true
}

func (j *jsonWriter) begin(open string) {
	j.prefix()
	j.write(open)
	j.counts = append(j.counts, 0)
}

func (j *jsonWriter) end(close string) {
	n := j.counts[len(j.counts)-1]
	j.counts = j.counts[:len(j.counts)-1]
	if n > 0 {
		j.newline(j.depth())
	}
	j.write(close)
}

func (j *jsonWriter) beginObject() { j.begin("{") }
func (j *jsonWriter) endObject()   { j.end("}") }
func (j *jsonWriter) beginArray()  { j.begin("[") }
func (j *jsonWriter) endArray()    { j.end("]") }

func (j *jsonWriter) null() {
	j.prefix()
	j.write("null")
}

func (j *jsonWriter) boolean(b bool) {
	j.prefix()
	j.write(strconv.FormatBool(b))
}

func (j *jsonWriter) int(i int) {
	j.prefix()
	j.write(strconv.Itoa(i))
}

// number writes a number already rendered as JSON text.
func (j *jsonWriter) number(s string) {
	j.prefix()
	j.write(s)
}

func (j *jsonWriter) string(s string) {
	j.prefix()
	j.write(quote(s))
}

func (j *jsonWriter) flush() error {
	if j.err != nil {
		return j.err
	}
	return j.w.Flush()
}

const hex = "0123456789abcdef"

// quote renders s as a JSON string. Only the quote, the backslash and the
// control characters are escaped.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(s[i:])
			if r == utf8.RuneError && size == 1 {
				b.WriteString(`\ufffd`)
			} else {
				b.WriteString(s[i : i+size])
			}
			i += size
			continue
		}
		switch c {
		case '\\', '"':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\b':
			b.WriteString(`\b`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if c < ' ' {
				b.WriteString(`\u00`)
				b.WriteByte(hex[c>>4])
				b.WriteByte(hex[c&0xf])
			} else {
				b.WriteByte(c)
			}
		}
		i++
	}
	b.WriteByte('"')
	return b.String()
}

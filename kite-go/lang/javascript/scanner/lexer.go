package scanner

// Count counts the number of words, without allocating space for them.
// It counts EOF, so the output might be one greater than what you expect.
// NOTE: the lexer expects `buf` to be UTF8 encoded
func Count(buf []byte, opts Options) (int, error) {
	var count int

	lexer := NewStreamLexer(buf, opts)
	for w := lexer.Next(); ; w = lexer.Next() {
		count++
		if w.Token == EOF {
			break
		}
	}
	return count, lexer.Err()
}

// Lex converts a byte array to an array of lexical elements. Comments and
// line terminators are kept, and the last word is always EOF.
// NOTE: the lexer expects `buf` to be UTF8 encoded
func Lex(buf []byte, opts Options) ([]Word, error) {
	opts.ScanComments = true
	opts.ScanNewLines = true

	// preallocate word slice
	count, _ := Count(buf, opts)
	words := make([]Word, 0, count)

	s := NewScanner(buf, opts)
	for len(words) == 0 || words[len(words)-1].Token != EOF {
		words = append(words, s.Scan())
	}
	return words, errorList(buf, s.Errs).Err()
}

func errorList(src []byte, errs []ScanError) ErrorList {
	if len(errs) == 0 {
		return nil
	}
	lines := NewLineTable(src)
	var list ErrorList
	for _, e := range errs {
		list.Add(NewError(lines, e.Offset, e.Msg))
	}
	return list
}

// StreamLexer extracts the significant words of a source, collecting
// comments on the side when the options ask for them.
type StreamLexer struct {
	scanner  *Scanner
	src      []byte
	comments []Word
}

// NewStreamLexer constructs a lexer that will return words from the provided source
// NOTE: the lexer expects `src` to be UTF8 encoded
func NewStreamLexer(src []byte, opts Options) *StreamLexer {
	opts.ScanNewLines = false
	return &StreamLexer{
		scanner: NewScanner(src, opts),
		src:     src,
	}
}

// Next gets the next significant word.
func (l *StreamLexer) Next() *Word {
	for {
		w := l.scanner.Scan()
		if w.Token == Comment {
			l.comments = append(l.comments, w)
			continue
		}
		return &w
	}
}

// RescanRegExp scans w, which must be the word most recently returned by
// Next, again as a regular expression literal.
func (l *StreamLexer) RescanRegExp(w *Word) *Word {
	r := l.scanner.Rescan(*w, true)
	return &r
}

// RescanDivision scans w, which must be the word most recently returned by
// Next, again as a division operator.
func (l *StreamLexer) RescanDivision(w *Word) *Word {
	r := l.scanner.Rescan(*w, false)
	return &r
}

// Comments returns the comments seen so far in source order.
func (l *StreamLexer) Comments() []Word {
	return l.comments
}

// Err returns the lexical errors seen so far, or nil.
func (l *StreamLexer) Err() error {
	return errorList(l.src, l.scanner.Errs).Err()
}

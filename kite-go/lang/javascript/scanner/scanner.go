package scanner

import (
	"fmt"
	"go/token"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/kiteco/esparse/kite-go/lang/javascript/ast"
)

// Options represents configuration for the scanner
type Options struct {
	ScanComments   bool // ScanComments emits Comment words instead of skipping comments
	ScanNewLines   bool // ScanNewLines emits NewLine words instead of skipping line terminators
	ValidateRegExp bool // ValidateRegExp compiles regular expression literals and rejects invalid ones
}

// DefaultOptions is an Options object with default values.
var DefaultOptions = Options{
	ValidateRegExp: true,
}

// Problem describes why a word is Illegal.
type Problem int

// List of problems.
const (
	NoProblem Problem = iota
	// IllegalCharacter covers every malformed token other than regular expressions:
	// unknown characters, unterminated strings and comments, bad escapes and numbers.
	IllegalCharacter
	// UnterminatedRegExp is a regular expression literal without its closing slash.
	UnterminatedRegExp
	// InvalidRegExp is a regular expression literal with invalid flags or pattern.
	InvalidRegExp
)

var problems = [...]string{
	NoProblem:          "no problem",
	IllegalCharacter:   "illegal token",
	UnterminatedRegExp: "unterminated regular expression",
	InvalidRegExp:      "invalid regular expression",
}

// String representation of a Problem.
func (p Problem) String() string {
	if p >= 0 && int(p) < len(problems) {
		return problems[p]
	}
	return fmt.Sprintf("Problem(%d)", int(p))
}

// A Scanner holds the scanner's internal state while processing
// a given text.
type Scanner struct {
	// immutable state
	src  []byte  // source
	opts Options // scanner options

	// scanning state
	ch       rune   // current character
	offset   int    // character offset
	rdOffset int    // reading offset (position after current character)
	prevTok  Token  // previous significant token, Illegal before the first
	lastPrev Token  // prevTok as it was before the previous significant token
	braces   []bool // for each open brace, whether it opened a block
	closed   bool   // whether the last closed brace closed a block
	newline  bool   // a line terminator was seen since the previous significant token

	// public state - ok to modify
	Errs []ScanError // errors encountered
}

// Word represents a token together with its position and literal content
type Word struct {
	Token Token
	Begin token.Pos // byte offset, inclusive
	End   token.Pos // byte offset, exclusive
	// Literal is the source text of the word.
	Literal string
	// Value is the decoded name of an identifier, the cooked value of a
	// string, the pattern of a regular expression or the text of a comment.
	Value string
	// Number is the value of a numeric literal.
	Number float64
	// NewlineBefore is set when a line terminator appears between the
	// previous significant word and this one.
	NewlineBefore bool
	// Octal is set for legacy octal numbers and strings with octal escapes.
	Octal bool
	// Problem is set for Illegal words; End is then the offset at which scanning failed.
	Problem Problem
}

// String gets a string representation of a lexical symbol
func (w Word) String() string {
	switch {
	case w.Token.IsLiteral():
		s := w.Token.String()
		if len(w.Literal) > 50 || strings.ContainsAny(w.Literal, "\r\n") {
			return s + fmt.Sprintf("[%d chars]", len(w.Literal))
		}
		return s + "[" + w.Literal + "]"
	case w.Token.IsOperator(), w.Token.IsKeyword():
		return `"` + w.Token.String() + `"`
	case w.Token == Illegal:
		return w.Token.String() + "[" + w.Literal + "]"
	default:
		return w.Token.String()
	}
}

// Valid checks if the Word is valid; it is intended for use in testing
func (w Word) Valid() bool {
	if w.Begin > w.End {
		return false
	}
	if (w.Token == Illegal) != (w.Problem != NoProblem) {
		return false
	}
	switch {
	case w.Token == EOF:
		return w.Literal == ""
	case w.Token.IsOperator(), w.Token.IsKeyword():
		return w.Literal == w.Token.String()
	}
	return true
}

// Range of the word.
func (w Word) Range() ast.Range {
	return ast.Range{Start: int(w.Begin), End: int(w.End)}
}

// RegExpParts splits a regular expression word into pattern and flags.
func (w Word) RegExpParts() (pattern, flags string) {
	i := strings.LastIndexByte(w.Literal, '/')
	if w.Token != RegExp || i <= 0 {
		return "", ""
	}
	return w.Literal[1:i], w.Literal[i+1:]
}

// CommentType returns whether a Comment word is a line or a block comment.
func (w Word) CommentType() ast.CommentType {
	if strings.HasPrefix(w.Literal, "/*") {
		return ast.BlockComment
	}
	return ast.LineComment
}

// NewScanner creates a scanner to tokenize the text src by setting the
// scanner at the beginning of src.
// NOTE: the scanner expects `src` to be UTF8 encoded
func NewScanner(src []byte, opts Options) *Scanner {
	s := &Scanner{
		src:     src,
		opts:    opts,
		ch:      ' ',
		prevTok: Illegal,
		closed:  true,
	}
	s.next()
	return s
}

// Read the next Unicode char into s.ch.
// s.ch < 0 means end-of-file.
func (s *Scanner) next() {
	if s.rdOffset < len(s.src) {
		s.offset = s.rdOffset
		r, w := rune(s.src[s.rdOffset]), 1
		if r >= utf8.RuneSelf {
			r, w = utf8.DecodeRune(s.src[s.rdOffset:])
			if r == utf8.RuneError && w == 1 {
				s.error(s.offset, "illegal utf-8 encoding")
			}
		}
		s.rdOffset += w
		s.ch = r
	} else {
		s.offset = len(s.src)
		s.ch = -1 // eof
	}
}

func (s *Scanner) peek() rune {
	if s.rdOffset < len(s.src) {
		r := rune(s.src[s.rdOffset])
		if r >= utf8.RuneSelf {
			r, _ = utf8.DecodeRune(s.src[s.rdOffset:])
		}
		return r
	}
	return -1
}

// reset moves the scanner back to offs.
func (s *Scanner) reset(offs int) {
	s.rdOffset = offs
	s.next()
}

func (s *Scanner) error(offs int, msg string) {
	s.Errs = append(s.Errs, ScanError{Offset: offs, Msg: msg})
}

// illegal turns w into an Illegal word ending at the current offset.
func (s *Scanner) illegal(w *Word, p Problem) {
	w.Token = Illegal
	w.Problem = p
	s.error(s.offset, p.String())
}

func isLineTerminator(ch rune) bool {
	return ch == '\n' || ch == '\r' || ch == '\u2028' || ch == '\u2029'
}

func isWhitespace(ch rune) bool {
	switch ch {
	case ' ', '\t', '\v', '\f', '\u00a0', '\ufeff':
		return true
	}
	return ch >= utf8.RuneSelf && unicode.Is(unicode.Zs, ch)
}

// IsIdentifierStart returns true for characters that may start an identifier.
func IsIdentifierStart(ch rune) bool {
	return ch == '$' || ch == '_' ||
		'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' ||
		ch >= utf8.RuneSelf && (unicode.IsLetter(ch) || unicode.Is(unicode.Nl, ch))
}

// IsIdentifierPart returns true for characters that may continue an identifier.
func IsIdentifierPart(ch rune) bool {
	return IsIdentifierStart(ch) || isDecimalDigit(ch) ||
		ch == '\u200c' || ch == '\u200d' ||
		ch >= utf8.RuneSelf && unicode.In(ch, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc)
}

func isDecimalDigit(ch rune) bool { return '0' <= ch && ch <= '9' }
func isOctalDigit(ch rune) bool   { return '0' <= ch && ch <= '7' }

func digitVal(ch rune) int {
	switch {
	case '0' <= ch && ch <= '9':
		return int(ch - '0')
	case 'a' <= ch && ch <= 'f':
		return int(ch - 'a' + 10)
	case 'A' <= ch && ch <= 'F':
		return int(ch - 'A' + 10)
	}
	return 16 // larger than any legal digit val
}

// skipWhitespace skips blanks and, unless they are emitted as words, line terminators.
func (s *Scanner) skipWhitespace() {
	for {
		switch {
		case isWhitespace(s.ch):
			s.next()
		case isLineTerminator(s.ch) && !s.opts.ScanNewLines:
			s.newline = true
			s.next()
		default:
			return
		}
	}
}

func (s *Scanner) scanLineComment(w *Word) {
	// initial '//' is current char and peek
	w.Token = Comment
	s.next()
	s.next()
	begin := s.offset
	for s.ch >= 0 && !isLineTerminator(s.ch) {
		s.next()
	}
	w.Value = string(s.src[begin:s.offset])
}

// scanBlockComment marks an unterminated comment as Illegal.
func (s *Scanner) scanBlockComment(w *Word) {
	// initial '/*' is current char and peek
	w.Token = Comment
	s.next()
	s.next()
	begin := s.offset
	for {
		switch {
		case s.ch < 0:
			s.illegal(w, IllegalCharacter)
			return
		case s.ch == '*' && s.peek() == '/':
			w.Value = string(s.src[begin:s.offset])
			s.next()
			s.next()
			return
		case isLineTerminator(s.ch):
			s.newline = true
		}
		s.next()
	}
}

// scanHexDigits reads the n hex digits of a \x or \u escape; the 'x' or 'u' is the current char.
func (s *Scanner) scanHexDigits(n int) (rune, bool) {
	var x rune
	for i := 0; i < n; i++ {
		s.next()
		d := digitVal(s.ch)
		if d >= 16 {
			return 0, false
		}
		x = x*16 + rune(d)
	}
	s.next()
	return x, true
}

func (s *Scanner) scanIdentifier(w *Word) {
	var name strings.Builder
	var escaped bool
	for first := true; ; first = false {
		var ch rune
		switch {
		case s.ch == '\\':
			s.next()
			if s.ch != 'u' {
				s.illegal(w, IllegalCharacter)
				return
			}
			r, ok := s.scanHexDigits(4)
			if !ok || (first && !IsIdentifierStart(r)) || (!first && !IsIdentifierPart(r)) {
				s.illegal(w, IllegalCharacter)
				return
			}
			escaped = true
			name.WriteRune(r)
			continue
		case first && IsIdentifierStart(s.ch), !first && IsIdentifierPart(s.ch):
			ch = s.ch
		default:
			w.Value = name.String()
			w.Token = Ident
			if !escaped {
				w.Token = Lookup(w.Value)
			}
			return
		}
		name.WriteRune(ch)
		s.next()
	}
}

func (s *Scanner) scanDigits(base int) float64 {
	var v float64
	for digitVal(s.ch) < base {
		v = v*float64(base) + float64(digitVal(s.ch))
		s.next()
	}
	return v
}

func (s *Scanner) scanNumber(w *Word) {
	begin := s.offset

	if s.ch == '0' {
		s.next()
		switch {
		case s.ch == 'x' || s.ch == 'X':
			s.next()
			if digitVal(s.ch) >= 16 {
				s.illegal(w, IllegalCharacter)
				return
			}
			w.Number = s.scanDigits(16)
			w.Token = Numeric
			s.checkNumberEnd(w)
			return
		case isOctalDigit(s.ch):
			w.Number = s.scanDigits(8)
			w.Octal = true
			w.Token = Numeric
			s.checkNumberEnd(w)
			return
		case isDecimalDigit(s.ch):
			// 08 and 09 are neither octal nor decimal
			s.illegal(w, IllegalCharacter)
			return
		}
	}

	for isDecimalDigit(s.ch) {
		s.next()
	}
	if s.ch == '.' {
		s.next()
		for isDecimalDigit(s.ch) {
			s.next()
		}
	}
	if s.ch == 'e' || s.ch == 'E' {
		s.next()
		if s.ch == '+' || s.ch == '-' {
			s.next()
		}
		if !isDecimalDigit(s.ch) {
			s.illegal(w, IllegalCharacter)
			return
		}
		for isDecimalDigit(s.ch) {
			s.next()
		}
	}

	// ParseFloat reports out of range values as +Inf, which is what we want
	w.Number, _ = strconv.ParseFloat(string(s.src[begin:s.offset]), 64)
	w.Token = Numeric
	s.checkNumberEnd(w)
}

// a numeric literal may not be immediately followed by an identifier or digit
func (s *Scanner) checkNumberEnd(w *Word) {
	if IsIdentifierStart(s.ch) || isDecimalDigit(s.ch) || s.ch == '\\' {
		s.illegal(w, IllegalCharacter)
	}
}

// cooker accumulates the cooked value of a string, pairing surrogate halves
// produced by \u escapes.
type cooker struct {
	strings.Builder
	high rune
}

func (c *cooker) flush() {
	if c.high != 0 {
		c.WriteRune(utf8.RuneError)
		c.high = 0
	}
}

func (c *cooker) char(r rune) {
	c.flush()
	c.WriteRune(r)
}

func (c *cooker) unit(r rune) {
	switch {
	case 0xd800 <= r && r < 0xdc00:
		c.flush()
		c.high = r
	case 0xdc00 <= r && r < 0xe000 && c.high != 0:
		c.WriteRune(utf16.DecodeRune(c.high, r))
		c.high = 0
	default:
		c.char(r)
	}
}

func (s *Scanner) scanString(w *Word) {
	// opening quote is the current char
	quote := s.ch
	s.next()

	var val cooker
	for {
		switch ch := s.ch; {
		case ch < 0 || isLineTerminator(ch):
			s.illegal(w, IllegalCharacter)
			return
		case ch == quote:
			s.next()
			val.flush()
			w.Value = val.String()
			w.Token = String
			return
		case ch == '\\':
			s.next()
			if !s.scanEscape(w, &val) {
				s.illegal(w, IllegalCharacter)
				return
			}
		default:
			val.char(ch)
			s.next()
		}
	}
}

// scanEscape decodes the escape sequence following a backslash.
func (s *Scanner) scanEscape(w *Word, val *cooker) bool {
	ch := s.ch
	switch ch {
	case 'n':
		val.char('\n')
	case 'r':
		val.char('\r')
	case 't':
		val.char('\t')
	case 'b':
		val.char('\b')
	case 'f':
		val.char('\f')
	case 'v':
		val.char('\v')
	case 'u', 'x':
		n := 4
		if ch == 'x' {
			n = 2
		}
		r, ok := s.scanHexDigits(n)
		if !ok {
			return false
		}
		val.unit(r)
		return true
	case '\r':
		// line continuation, \r\n counts as a single terminator
		s.next()
		if s.ch == '\n' {
			s.next()
		}
		return true
	case '\n', '\u2028', '\u2029':
		s.next()
		return true
	case -1:
		return false
	default:
		if isOctalDigit(ch) {
			s.scanOctalEscape(w, val)
			return true
		}
		val.char(ch)
	}
	s.next()
	return true
}

// \0 not followed by a digit is the null character, every other octal
// escape is a legacy form that strict mode code rejects
func (s *Scanner) scanOctalEscape(w *Word, val *cooker) {
	first := s.ch
	s.next()
	if first == '0' && !isDecimalDigit(s.ch) {
		val.char(0)
		return
	}
	w.Octal = true
	code := first - '0'
	limit := 2
	if first <= '3' {
		limit = 3
	}
	for i := 1; i < limit && isOctalDigit(s.ch); i++ {
		code = code*8 + (s.ch - '0')
		s.next()
	}
	val.char(code)
}

func (s *Scanner) scanRegExp(w *Word) {
	// opening slash is the current char
	begin := s.offset
	s.next()

	var inClass bool
	for {
		ch := s.ch
		if ch < 0 || isLineTerminator(ch) {
			s.illegal(w, UnterminatedRegExp)
			return
		}
		s.next()
		switch {
		case ch == '\\':
			if s.ch < 0 || isLineTerminator(s.ch) {
				s.illegal(w, UnterminatedRegExp)
				return
			}
			s.next()
		case inClass:
			inClass = ch != ']'
		case ch == '[':
			inClass = true
		case ch == '/':
			pattern := string(s.src[begin+1 : s.offset-1])
			flagsBegin := s.offset
			for IsIdentifierPart(s.ch) {
				s.next()
			}
			flags := string(s.src[flagsBegin:s.offset])
			if s.ch == '\\' || !validFlags(flags) {
				s.illegal(w, InvalidRegExp)
				return
			}
			if s.opts.ValidateRegExp {
				if err := validateRegExp(pattern, flags); err != nil {
					s.illegal(w, InvalidRegExp)
					return
				}
			}
			w.Value = pattern
			w.Token = RegExp
			return
		}
	}
}

func (s *Scanner) switch2(tok0, tok1 Token) Token {
	if s.ch == '=' {
		s.next()
		return tok1
	}
	return tok0
}

func (s *Scanner) switch3(tok0, tok1 Token, ch2 rune, tok2 Token) Token {
	if s.ch == '=' {
		s.next()
		return tok1
	}
	if s.ch == ch2 {
		s.next()
		return tok2
	}
	return tok0
}

func (s *Scanner) switch4(tok0, tok1 Token, ch2 rune, tok2, tok3 Token) Token {
	if s.ch == '=' {
		s.next()
		return tok1
	}
	if s.ch == ch2 {
		s.next()
		if s.ch == '=' {
			s.next()
			return tok3
		}
		return tok2
	}
	return tok0
}

func (s *Scanner) scanPunctuator(w *Word) {
	ch := s.ch
	s.next() // always make progress
	switch ch {
	case '{':
		w.Token = Lbrace
	case '}':
		w.Token = Rbrace
	case '(':
		w.Token = Lparen
	case ')':
		w.Token = Rparen
	case '[':
		w.Token = Lbrack
	case ']':
		w.Token = Rbrack
	case '.':
		w.Token = Period
	case ';':
		w.Token = Semicolon
	case ',':
		w.Token = Comma
	case '~':
		w.Token = BitNot
	case '?':
		w.Token = Question
	case ':':
		w.Token = Colon
	case '+':
		w.Token = s.switch3(Add, AddAssign, '+', Inc)
	case '-':
		w.Token = s.switch3(Sub, SubAssign, '-', Dec)
	case '*':
		w.Token = s.switch2(Mul, MulAssign)
	case '/':
		w.Token = s.switch2(Quo, QuoAssign)
	case '%':
		w.Token = s.switch2(Rem, RemAssign)
	case '^':
		w.Token = s.switch2(Xor, XorAssign)
	case '&':
		w.Token = s.switch3(And, AndAssign, '&', LogicAnd)
	case '|':
		w.Token = s.switch3(Or, OrAssign, '|', LogicOr)
	case '<':
		w.Token = s.switch4(Lss, Leq, '<', Shl, ShlAssign)
	case '>':
		w.Token = s.switch4(Gtr, Geq, '>', Shr, ShrAssign)
		if w.Token == Shr && s.ch == '>' {
			s.next()
			w.Token = s.switch2(UShr, UShrAssign)
		}
	case '=':
		w.Token = s.switch2(Assign, Eql)
		if w.Token == Eql && s.ch == '=' {
			s.next()
			w.Token = StrictEql
		}
	case '!':
		w.Token = s.switch2(Not, Neq)
		if w.Token == Neq && s.ch == '=' {
			s.next()
			w.Token = StrictNeq
		}
	default:
		// report the unknown character at its own position
		w.Token = Illegal
		w.Problem = IllegalCharacter
		s.error(int(w.Begin), fmt.Sprintf("illegal character %#U", ch))
		w.Literal = string(ch)
		w.End = w.Begin
	}
}

// slashIsDivision lists the tokens after which a slash is a division
// operator. After any other token it starts a regular expression literal.
var slashIsDivision = map[Token]bool{
	Ident:   true,
	Numeric: true,
	String:  true,
	RegExp:  true,
	Rparen:  true,
	Rbrack:  true,
	This:    true,
	Null:    true,
	True:    true,
	False:   true,
	Inc:     true,
	Dec:     true,
}

// opensBlock lists the tokens after which a left brace opens a block rather
// than an object literal.
var opensBlock = map[Token]bool{
	Illegal:   true, // start of input
	Semicolon: true,
	Lbrace:    true,
	Rbrace:    true,
	Rparen:    true,
	Else:      true,
	Do:        true,
	Try:       true,
	Finally:   true,
}

// regexAllowed reports whether a slash at the current position starts a
// regular expression literal. A right brace is followed by a division only
// when it closed an object literal.
func (s *Scanner) regexAllowed() bool {
	if s.prevTok == Rbrace {
		return s.closed
	}
	return !slashIsDivision[s.prevTok]
}

// Scan returns the next word. Whitespace is skipped, and so are comments and
// line terminators unless the options request them. Errors are recorded in
// s.Errs and reported as Illegal words.
func (s *Scanner) Scan() Word {
	for {
		s.skipWhitespace()

		begin := s.offset
		w := Word{Begin: token.Pos(begin)}

		switch ch := s.ch; {
		case ch < 0:
			w.Token = EOF
		case isLineTerminator(ch):
			// only reached when new lines are emitted
			s.next()
			if ch == '\r' && s.ch == '\n' {
				s.next()
			}
			s.newline = true
			w.Token = NewLine
		case IsIdentifierStart(ch) || ch == '\\':
			s.scanIdentifier(&w)
		case isDecimalDigit(ch) || ch == '.' && isDecimalDigit(s.peek()):
			s.scanNumber(&w)
		case ch == '"' || ch == '\'':
			s.scanString(&w)
		case ch == '/' && (s.peek() == '/' || s.peek() == '*'):
			if s.peek() == '/' {
				s.scanLineComment(&w)
			} else {
				s.scanBlockComment(&w)
			}
			if w.Problem == NoProblem && !s.opts.ScanComments {
				continue
			}
		case ch == '/' && s.regexAllowed():
			s.scanRegExp(&w)
		default:
			s.scanPunctuator(&w)
		}

		if w.Token != Illegal || w.Problem != IllegalCharacter || w.End != w.Begin || w.Literal == "" {
			w.End = token.Pos(s.offset)
			w.Literal = string(s.src[begin:s.offset])
		}
		s.emit(&w)
		return w
	}
}

func (s *Scanner) emit(w *Word) {
	switch w.Token {
	case Comment, NewLine:
		return
	case Lbrace:
		s.braces = append(s.braces, opensBlock[s.prevTok])
	case Rbrace:
		s.closed = true
		if n := len(s.braces); n > 0 {
			s.closed = s.braces[n-1]
			s.braces = s.braces[:n-1]
		}
	}
	w.NewlineBefore = s.newline
	s.newline = false
	s.lastPrev = s.prevTok
	s.prevTok = w.Token
}

// Rescan scans the word w again, starting at its first byte, as a regular
// expression literal (regexp true) or as a division operator (regexp false).
// It must only be called for the word most recently returned by Scan.
func (s *Scanner) Rescan(w Word, regexp bool) Word {
	s.reset(int(w.Begin))
	s.prevTok = s.lastPrev
	for len(s.Errs) > 0 && s.Errs[len(s.Errs)-1].Offset >= int(w.Begin) {
		s.Errs = s.Errs[:len(s.Errs)-1]
	}
	s.newline = w.NewlineBefore

	r := Word{Begin: w.Begin}
	if regexp {
		s.scanRegExp(&r)
	} else {
		s.scanPunctuator(&r)
	}
	r.End = token.Pos(s.offset)
	r.Literal = string(s.src[r.Begin:r.End])
	s.emit(&r)
	return r
}

// Offset returns the offset of the next character to be scanned.
func (s *Scanner) Offset() int {
	return s.offset
}

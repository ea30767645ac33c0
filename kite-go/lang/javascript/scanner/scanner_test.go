package scanner

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string, opts Options) []Word {
	s := NewScanner([]byte(src), opts)
	var words []Word
	for {
		w := s.Scan()
		assert.True(t, w.Valid(), "invalid word %v in %q", w, src)
		words = append(words, w)
		if w.Token == EOF {
			return words
		}
		require.True(t, len(words) < 1000, "scanner does not make progress on %q", src)
	}
}

func tokensOf(words []Word) []Token {
	var toks []Token
	for _, w := range words {
		toks = append(toks, w.Token)
	}
	return toks
}

func scanOne(t *testing.T, src string) Word {
	words := scanAll(t, src, DefaultOptions)
	require.True(t, len(words) >= 1)
	return words[0]
}

func TestScanner_Punctuators(t *testing.T) {
	src := `{ } ( ) [ ] . ; , < > <= >= == != === !== + - * % ++ -- << >> >>> & | ^ ! ~ && || ? : = += -= *= %= <<= >>= >>>= &= |= ^=`
	expected := []Token{
		Lbrace, Rbrace, Lparen, Rparen, Lbrack, Rbrack, Period, Semicolon, Comma,
		Lss, Gtr, Leq, Geq, Eql, Neq, StrictEql, StrictNeq, Add, Sub, Mul, Rem, Inc, Dec,
		Shl, Shr, UShr, And, Or, Xor, Not, BitNot, LogicAnd, LogicOr, Question, Colon,
		Assign, AddAssign, SubAssign, MulAssign, RemAssign, ShlAssign, ShrAssign, UShrAssign,
		AndAssign, OrAssign, XorAssign, EOF,
	}
	assert.Equal(t, expected, tokensOf(scanAll(t, src, DefaultOptions)))
}

func TestScanner_Keywords(t *testing.T) {
	words := scanAll(t, "var x = null; if (true) yield; class let", DefaultOptions)
	expected := []Token{Var, Ident, Assign, Null, Semicolon, If, Lparen, True, Rparen, Ident, Semicolon, Class, Ident, EOF}
	assert.Equal(t, expected, tokensOf(words))
	assert.Equal(t, "yield", words[9].Value)
}

func TestScanner_Identifiers(t *testing.T) {
	tests := []struct {
		src  string
		name string
	}{
		{"foo", "foo"},
		{"$_a1", "$_a1"},
		{`\u0061bc`, "abc"},
		{`a\u0062`, "ab"},
		{"été", "été"},
	}
	for _, test := range tests {
		w := scanOne(t, test.src)
		assert.Equal(t, Ident, w.Token, test.src)
		assert.Equal(t, test.name, w.Value, test.src)
		assert.Equal(t, test.src, w.Literal)
	}

	// an escaped keyword is an identifier
	assert.Equal(t, Ident, scanOne(t, `\u0076ar`).Token)

	for _, src := range []string{`\x61`, `\u00`, `1a`} {
		assert.Equal(t, Illegal, scanOne(t, src).Token, src)
	}
}

func TestScanner_Numbers(t *testing.T) {
	tests := []struct {
		src   string
		value float64
		octal bool
	}{
		{"0", 0, false},
		{"42", 42, false},
		{"3.14", 3.14, false},
		{".5", 0.5, false},
		{"5.", 5, false},
		{"1e3", 1000, false},
		{"1E-2", 0.01, false},
		{"2.5e+1", 25, false},
		{"0x1F", 31, false},
		{"0XfF", 255, false},
		{"017", 15, true},
		{"00", 0, true},
	}
	for _, test := range tests {
		w := scanOne(t, test.src)
		assert.Equal(t, Numeric, w.Token, test.src)
		assert.Equal(t, test.value, w.Number, test.src)
		assert.Equal(t, test.octal, w.Octal, test.src)
		assert.Equal(t, test.src, w.Literal)
	}

	assert.True(t, math.IsInf(scanOne(t, "1e400").Number, 1))

	for _, src := range []string{"08", "09", "0x", "1e", "1e+", "3in", "0x1g", "017a"} {
		w := scanOne(t, src)
		assert.Equal(t, Illegal, w.Token, src)
		assert.Equal(t, IllegalCharacter, w.Problem, src)
	}
}

func TestScanner_Strings(t *testing.T) {
	tests := []struct {
		src   string
		value string
		octal bool
	}{
		{`"abc"`, "abc", false},
		{`'it"s'`, `it"s`, false},
		{`"a\nb\tc"`, "a\nb\tc", false},
		{`"\b\f\v\r"`, "\b\f\v\r", false},
		{`"\x41B"`, "AB", false},
		{`"\q\'\""`, `q'"`, false},
		{`"\0"`, "\x00", false},
		{`"\0a"`, "\x00a", false},
		{`"\01"`, "\x01", true},
		{`"\101"`, "A", true},
		{`"\377"`, "ÿ", true},
		{`"\400"`, " 0", true},
		{`"\8"`, "8", false},
		{"\"a\\\nb\"", "ab", false},
		{"\"a\\\r\nb\"", "ab", false},
		{`"😀"`, "\U0001F600", false},
		{`"\ud83dx"`, "\ufffdx", false},
	}
	for _, test := range tests {
		w := scanOne(t, test.src)
		assert.Equal(t, String, w.Token, test.src)
		assert.Equal(t, test.value, w.Value, test.src)
		assert.Equal(t, test.octal, w.Octal, test.src)
	}

	for _, src := range []string{`"abc`, "'a\nb'", `"\x4"`, `"\u12"`, `"\`} {
		w := scanOne(t, src)
		assert.Equal(t, Illegal, w.Token, src)
		assert.Equal(t, IllegalCharacter, w.Problem, src)
	}
}

func TestScanner_UnknownCharacter(t *testing.T) {
	words := scanAll(t, "a @ b", DefaultOptions)
	assert.Equal(t, []Token{Ident, Illegal, Ident, EOF}, tokensOf(words))
	assert.Equal(t, "@", words[1].Literal)
	assert.Equal(t, words[1].Begin, words[1].End)
	assert.Equal(t, 2, int(words[1].Begin))
}

func TestScanner_Comments(t *testing.T) {
	src := "a // line\n/* block */ b"
	words := scanAll(t, src, Options{ScanComments: true})
	require.Equal(t, []Token{Ident, Comment, Comment, Ident, EOF}, tokensOf(words))
	assert.Equal(t, " line", words[1].Value)
	assert.Equal(t, " block ", words[2].Value)
	assert.Equal(t, "/* block */", words[2].Literal)

	words = scanAll(t, src, DefaultOptions)
	require.Equal(t, []Token{Ident, Ident, EOF}, tokensOf(words))
	assert.True(t, words[1].NewlineBefore)

	// a multi-line block comment counts as a line terminator
	words = scanAll(t, "a /*\n*/ b /* */ c", DefaultOptions)
	assert.True(t, words[1].NewlineBefore)
	assert.False(t, words[2].NewlineBefore)

	words = scanAll(t, "a /**/ b", DefaultOptions)
	assert.Equal(t, []Token{Ident, Ident, EOF}, tokensOf(words))

	words = scanAll(t, "a /**/ b", Options{ScanComments: true})
	require.Equal(t, []Token{Ident, Comment, Ident, EOF}, tokensOf(words))
	assert.Equal(t, NoProblem, words[1].Problem)
	assert.Equal(t, "", words[1].Value)

	words = scanAll(t, "a /* unterminated", DefaultOptions)
	assert.Equal(t, []Token{Ident, Illegal, EOF}, tokensOf(words))
	assert.Equal(t, IllegalCharacter, words[1].Problem)
}

func TestScanner_NewLines(t *testing.T) {
	words := scanAll(t, "a\r\nb\rc\u2028d", Options{ScanNewLines: true})
	assert.Equal(t, []Token{Ident, NewLine, Ident, NewLine, Ident, NewLine, Ident, EOF}, tokensOf(words))
	assert.Equal(t, "\r\n", words[1].Literal)
	assert.True(t, words[2].NewlineBefore)
	assert.False(t, words[0].NewlineBefore)
}

func TestScanner_RegExp(t *testing.T) {
	tests := []struct {
		src      string
		expected []Token
	}{
		{"/ab+c/g", []Token{RegExp, EOF}},
		{"x = /[/]/", []Token{Ident, Assign, RegExp, EOF}},
		{"a / b / c", []Token{Ident, Quo, Ident, Quo, Ident, EOF}},
		{"(a) / 2", []Token{Lparen, Ident, Rparen, Quo, Numeric, EOF}},
		{"a[0] / 2", []Token{Ident, Lbrack, Numeric, Rbrack, Quo, Numeric, EOF}},
		{"x++ / 2", []Token{Ident, Inc, Quo, Numeric, EOF}},
		{"this / 2", []Token{This, Quo, Numeric, EOF}},
		{"return /x/", []Token{Return, RegExp, EOF}},
		{"typeof /x/", []Token{TypeOf, RegExp, EOF}},
		{"a /= 2", []Token{Ident, QuoAssign, Numeric, EOF}},
		{"{} /x/", []Token{Lbrace, Rbrace, RegExp, EOF}},
		{"x = {} / 2", []Token{Ident, Assign, Lbrace, Rbrace, Quo, Numeric, EOF}},
		{"if (a) {} /x/", []Token{If, Lparen, Ident, Rparen, Lbrace, Rbrace, RegExp, EOF}},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, tokensOf(scanAll(t, test.src, DefaultOptions)), test.src)
	}

	w := scanOne(t, `/a\/b[/\]]c/gim`)
	require.Equal(t, RegExp, w.Token)
	pattern, flags := w.RegExpParts()
	assert.Equal(t, `a\/b[/\]]c`, pattern)
	assert.Equal(t, `a\/b[/\]]c`, w.Value)
	assert.Equal(t, "gim", flags)
}

func TestScanner_InvalidRegExp(t *testing.T) {
	tests := []struct {
		src     string
		problem Problem
	}{
		{"/abc", UnterminatedRegExp},
		{"/a\nb/", UnterminatedRegExp},
		{`/a\`, UnterminatedRegExp},
		{"/a/x", InvalidRegExp},
		{"/a/gg", InvalidRegExp},
		{"/(/", InvalidRegExp},
		{"/a{2,1}/", InvalidRegExp},
	}
	for _, test := range tests {
		w := scanOne(t, test.src)
		assert.Equal(t, Illegal, w.Token, test.src)
		assert.Equal(t, test.problem, w.Problem, test.src)
	}

	// unchecked patterns are accepted
	w := scanAll(t, "/(/", Options{})[0]
	assert.Equal(t, RegExp, w.Token)
}

func TestScanner_Rescan(t *testing.T) {
	s := NewScanner([]byte("a /b/g"), DefaultOptions)
	assert.Equal(t, Ident, s.Scan().Token)
	w := s.Scan()
	require.Equal(t, Quo, w.Token)

	r := s.Rescan(w, true)
	assert.Equal(t, RegExp, r.Token)
	assert.Equal(t, "/b/g", r.Literal)
	assert.Equal(t, EOF, s.Scan().Token)

	s = NewScanner([]byte("/2/ 1"), DefaultOptions)
	w = s.Scan()
	require.Equal(t, RegExp, w.Token)
	r = s.Rescan(w, false)
	assert.Equal(t, Quo, r.Token)
	assert.Equal(t, Numeric, s.Scan().Token)
	assert.Equal(t, Quo, s.Scan().Token)
}

func TestScanner_ByteOrderMark(t *testing.T) {
	words := scanAll(t, "\ufeffa", DefaultOptions)
	require.Equal(t, []Token{Ident, EOF}, tokensOf(words))
	assert.Equal(t, 3, int(words[0].Begin))
}

func TestLineTable(t *testing.T) {
	src := []byte("ab\ncd\r\nef\rg\u2028h")
	lines := NewLineTable(src)
	assert.Equal(t, 5, lines.Lines())
	assert.Equal(t, "cd", lines.LineText(2))
	assert.Equal(t, "ef", lines.LineText(3))
	assert.Equal(t, "h", lines.LineText(5))

	pos := lines.Position(4)
	assert.Equal(t, 2, pos.Line)
	assert.Equal(t, 1, pos.Column)

	pos = lines.Position(len(src))
	assert.Equal(t, 5, pos.Line)
	assert.Equal(t, 1, pos.Column)

	e := NewError(lines, 4, "Unexpected token ILLEGAL")
	assert.Equal(t, "Line 2: Unexpected token ILLEGAL", e.Error())
	assert.Equal(t, 2, e.Column)
	assert.Equal(t, "cd", e.Source)
}

package parser

import (
	"fmt"
	"go/token"
	"os"
	"strings"

	"github.com/kiteco/esparse/kite-go/lang/javascript/ast"
	"github.com/kiteco/esparse/kite-go/lang/javascript/scanner"
	"github.com/pkg/errors"
)

const (
	maxRecoverCount = 10
)

var (
	errMaxRecover = errors.New("max num recoveries")
	errWrongToken = errors.New("unexpected token")
)

// state is the grammar context that statements and functions save and
// restore: it is copied on entry to a function body and on error recovery.
type state struct {
	strict         bool
	inFunctionBody bool
	inIteration    bool
	inSwitch       bool
	// labels maps the enclosing label names to whether they label a loop.
	// The map is replaced, never mutated, when a label is added.
	labels map[string]bool
	scope  *ast.Scope
}

// A parser processes a token stream into a syntax tree
type parser struct {
	src   []byte
	lines *scanner.LineTable
	lexer *scanner.StreamLexer
	word  *scanner.Word
	opts  Options

	state   state
	allowIn bool
	// labels of the labeled statements whose body is being parsed,
	// marked as loop labels if the body turns out to be a loop
	pending []string

	tokens []ast.Token

	// for error recovery
	recoverCount int
	recoverPos   token.Pos

	// Tracing
	indent int

	prevWord *scanner.Word

	errs scanner.ErrorList
}

// newParser constructs a parser that reads the words of src
func newParser(src []byte, opts Options) *parser {
	if opts.TraceWriter == nil {
		opts.TraceWriter = os.Stdout
	}
	lexer := scanner.NewStreamLexer(src, scanner.Options{
		ScanComments:   opts.Comment,
		ValidateRegExp: opts.ValidateRegExp,
	})
	p := &parser{
		src:     src,
		lines:   scanner.NewLineTable(src),
		lexer:   lexer,
		opts:    opts,
		allowIn: true,
		state: state{
			labels: map[string]bool{},
			scope:  &ast.Scope{},
		},
	}
	p.next()
	return p
}

func (p *parser) printTrace(a ...interface{}) {
	p.printTraceSymbol("  ", a...)
}

func (p *parser) printTraceSymbol(symbol string, a ...interface{}) {
	const dots = ". . . . . . . . . . . . . . . . . . . . . . . . . . . . . . . . "
	fmt.Fprintf(p.opts.TraceWriter, "%s%9d: ", symbol, p.word.Begin)
	i := 2 * p.indent
	for i > len(dots) {
		fmt.Fprint(p.opts.TraceWriter, dots)
		i -= len(dots)
	}
	fmt.Fprint(p.opts.TraceWriter, dots[:i])
	fmt.Fprintln(p.opts.TraceWriter, a...)
}

func trace(p *parser, msg string) *parser {
	p.printTrace(msg, "(")
	p.indent++
	if p.opts.MaxDepth > 0 && p.indent > p.opts.MaxDepth {
		panic("maximum depth exceeded")
	}
	return p
}

// Usage pattern: defer un(trace(p, "..."))
func un(p *parser) {
	p.indent--
	p.printTrace(")")
}

// recoverStmt recovers from an error in parsing the statement that started
// at begin. It restores the saved context and skips to the next statement.
// Nested is set for statement lists closed by a brace.
func (p *parser) recoverStmt(ex interface{}, begin token.Pos, saved state, vars, funcs int, nested bool) {
	if ex != errWrongToken || !p.opts.Tolerant {
		panic(ex)
	}

	p.state = saved
	p.state.scope.VariableDeclarations = p.state.scope.VariableDeclarations[:vars]
	p.state.scope.FunctionDeclarations = p.state.scope.FunctionDeclarations[:funcs]
	p.allowIn = true
	p.pending = nil

	p.syncStmt(begin, nested)
}

func (p *parser) recoverParse(err *error) {
	if ex := recover(); ex != nil {
		switch ex {
		case errMaxRecover, errWrongToken:
		default:
			panic(ex)
		}
	}
	if len(p.errs) > 0 {
		*err = p.errs
	}
}

// next moves the lexer forward to the next significant word
func (p *parser) next() {
	// Because of one-token look-ahead, print the previous token
	// when tracing as it provides a more readable output.
	if p.opts.Trace && p.word != nil {
		s := p.word.Token.String()
		switch {
		case p.word.Token.IsLiteral():
			if len(p.word.Literal) > 50 || strings.Contains(p.word.Literal, "\n") {
				p.printTraceSymbol(" -", s, fmt.Sprintf("<%d chars not shown>", len(p.word.Literal)))
			} else {
				p.printTraceSymbol(" -", s, p.word.Literal)
			}
		case p.word.Token.IsOperator(), p.word.Token.IsKeyword():
			p.printTraceSymbol(" -", "\""+s+"\"")
		default:
			p.printTraceSymbol(" -", s)
		}
	}
	if p.opts.Tokens && p.word != nil && p.word.Token != scanner.EOF && p.word.Token != scanner.Illegal {
		r := p.word.Range()
		p.tokens = append(p.tokens, ast.Token{
			Type:  p.word.Token.Category(),
			Value: p.word.Literal,
			Range: r,
			Loc:   p.location(r),
		})
	}
	p.prevWord = p.word
	p.word = p.lexer.Next()
}

// rescanRegExp turns the current slash or slash-assign word into a regular
// expression literal, for a slash found where an operand is expected.
func (p *parser) rescanRegExp() {
	p.word = p.lexer.RescanRegExp(p.word)
}

// reinterpretDivision turns the current word back into a division operator
// when the scanner read a regular expression where an operator is expected,
// as in "function(){} / 2".
func (p *parser) reinterpretDivision() {
	w := p.word
	switch {
	case w.Token == scanner.RegExp:
	case w.Token == scanner.Illegal && strings.HasPrefix(w.Literal, "/") &&
		(w.Problem == scanner.UnterminatedRegExp || w.Problem == scanner.InvalidRegExp):
	default:
		return
	}
	p.word = p.lexer.RescanDivision(w)
}

// location of a range, nil unless locations are requested.
func (p *parser) location(r ast.Range) *ast.Location {
	if !p.opts.Loc {
		return nil
	}
	return p.lines.Location(r, p.opts.Source)
}

// base returns the node envelope for a production that started with the
// word begin and ended with the previous word.
func (p *parser) base(begin *scanner.Word) ast.Base {
	start, end := int(begin.Begin), int(begin.Begin)
	if p.prevWord != nil && int(p.prevWord.End) > start {
		end = int(p.prevWord.End)
	}
	r := ast.NewRange(start, end)
	return ast.Base{Range: r, Loc: p.location(r)}
}

// record adds an error located at offs to the list
func (p *parser) record(offs token.Pos, format string, args ...interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	if p.opts.Trace {
		p.printTraceSymbol("**", "ERROR:", msg)
	}
	p.errs.Add(scanner.NewError(p.lines, int(offs), msg))
}

// error adds an error to the list and unwinds to the enclosing statement
// (tolerant mode) or out of the parse.
func (p *parser) error(offs token.Pos, format string, args ...interface{}) {
	p.record(offs, format, args...)
	panic(errWrongToken)
}

// tolerate adds an error that does not desynchronize the grammar, parsing
// goes on in tolerant mode.
func (p *parser) tolerate(offs token.Pos, format string, args ...interface{}) {
	p.record(offs, format, args...)
	if !p.opts.Tolerant {
		panic(errWrongToken)
	}
}

// unexpected reports w as an unexpected word, choosing the message from its kind.
func (p *parser) unexpected(w *scanner.Word) {
	switch {
	case w.Token == scanner.EOF:
		p.error(w.Begin, UnexpectedEOS)
	case w.Token == scanner.Numeric:
		p.error(w.Begin, UnexpectedNumber)
	case w.Token == scanner.String:
		p.error(w.Begin, UnexpectedString)
	case w.Token == scanner.Ident:
		if p.state.strict && scanner.IsStrictReserved(w.Value) {
			p.error(w.Begin, StrictReservedWord)
		}
		p.error(w.Begin, UnexpectedIdentifier)
	case w.Token == scanner.Illegal:
		switch w.Problem {
		case scanner.UnterminatedRegExp:
			p.error(w.End, UnterminatedRegExp)
		case scanner.InvalidRegExp:
			p.error(w.End, InvalidRegExp)
		default:
			p.error(w.End, UnexpectedToken, "ILLEGAL")
		}
	case w.Token.IsFutureReserved():
		p.error(w.Begin, UnexpectedReserved)
	default:
		p.error(w.Begin, UnexpectedToken, w.Literal)
	}
}

// expect raises an error if the current word is not tok,
// this method always removes a word from the stream or panics.
func (p *parser) expect(tok scanner.Token) *scanner.Word {
	word := p.word
	if word.Token != tok {
		p.unexpected(word)
	}
	p.next()
	return word
}

// at return true if the next word is one of the specified tokens. Does not consume
// any words
func (p *parser) at(toks ...scanner.Token) bool {
	for _, tok := range toks {
		if p.word.Token == tok {
			return true
		}
	}
	return false
}

// consume a word if it matches one of a list, otherwise do not consume anything and return nil
func (p *parser) take(toks ...scanner.Token) *scanner.Word {
	cur := p.word
	if p.at(toks...) {
		p.next()
		return cur
	}
	return nil
}

// consume a word if it matches one of a list, otherwise do not consume anything and return false
func (p *parser) has(toks ...scanner.Token) bool {
	return p.take(toks...) != nil
}

// consumeSemicolon ends a statement: an explicit semicolon, or one inserted
// before a closing brace, the end of input or a word on a new line.
func (p *parser) consumeSemicolon() {
	if p.has(scanner.Semicolon) {
		return
	}
	if p.word.NewlineBefore || p.at(scanner.Rbrace, scanner.EOF) {
		return
	}
	p.unexpected(p.word)
}

// syncStmt advances to the next statement.
// Used for synchronization after an error in the statement that started at begin.
func (p *parser) syncStmt(begin token.Pos, nested bool) {
	if p.opts.Trace {
		defer un(trace(p, "<syncstmt>"))
	}

	// check how many recoveries we have made with no progress
	if p.word.Begin == p.recoverPos {
		if p.recoverCount >= maxRecoverCount {
			panic(errMaxRecover)
		}
		p.recoverCount++
	} else {
		p.recoverCount = 0
		p.recoverPos = p.word.Begin
	}

	for {
		progress := p.word.Begin > begin
		switch p.word.Token {
		case scanner.EOF:
			return
		case scanner.Semicolon:
			p.next()
			return
		case scanner.Rbrace:
			if nested {
				return
			}
		case scanner.Var, scanner.If, scanner.For, scanner.While, scanner.Do,
			scanner.Return, scanner.Break, scanner.Continue, scanner.Function,
			scanner.Switch, scanner.Case, scanner.Default, scanner.Throw,
			scanner.Try, scanner.With, scanner.Debugger:
			if progress {
				return
			}
		default:
			if progress && p.word.NewlineBefore {
				return
			}
		}
		p.next()
	}
}

// withLabel returns the label set extended with name.
func withLabel(labels map[string]bool, name string) map[string]bool {
	m := make(map[string]bool, len(labels)+1)
	for k, v := range labels {
		m[k] = v
	}
	m[name] = false
	return m
}

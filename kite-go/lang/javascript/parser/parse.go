package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/kiteco/esparse/kite-go/lang/javascript/ast"
	perrors "github.com/kiteco/esparse/kite-go/lang/javascript/parser/errors"
	"github.com/kiteco/esparse/kite-go/lang/javascript/parser/internal/parsing"
	"github.com/kiteco/esparse/kite-go/lang/javascript/scanner"
	"github.com/pkg/errors"
)

// Error is a syntax error located in the source.
type Error = scanner.Error

// ErrorList is a list of syntax errors in the order they were found.
type ErrorList = scanner.ErrorList

// internalError reports a tree built against the invariants of the ast package.
type internalError struct {
	cause ast.InvariantError
}

func (e internalError) Error() string {
	return e.cause.Error()
}

func (e internalError) Reason() perrors.Reason {
	return perrors.Internal
}

// multiError is returned when a partial parse also has syntax errors.
type multiError []error

func (m multiError) Error() string {
	msgs := make([]string, 0, len(m))
	for _, err := range m {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// WrappedErrors returns the errors in the order they were added.
func (m multiError) WrappedErrors() []error {
	return m
}

// recoverInternal turns an invariant violation into an error.
func recoverInternal(err *error) {
	if ex := recover(); ex != nil {
		ie, ok := ex.(ast.InvariantError)
		if !ok {
			panic(ex)
		}
		*err = errors.WithStack(internalError{cause: ie})
	}
}

func (p *parser) program() (prog *ast.ProgramNode, err error) {
	defer recoverInternal(&err)
	defer p.recoverParse(&err)

	prog = p.parseProgram()
	if p.opts.Comment {
		prog.Comments = []ast.Comment{}
		for _, w := range p.lexer.Comments() {
			r := w.Range()
			prog.Comments = append(prog.Comments, ast.Comment{
				Type:  w.CommentType(),
				Value: w.Value,
				Range: r,
				Loc:   p.location(r),
			})
		}
	}
	if p.opts.Tokens {
		prog.Tokens = p.tokens
		if prog.Tokens == nil {
			prog.Tokens = []ast.Token{}
		}
	}
	return prog, nil
}

func parse(src []byte, opts Options) (*ast.ProgramNode, error) {
	src, trimmed := parsing.TrimMaxLines(src, opts.MaxLines)

	p := newParser(src, opts)
	prog, err := p.program()
	if err != nil {
		if _, ok := err.(ErrorList); ok {
			switch {
			case prog == nil && opts.Tolerant:
				err = p.errs
			case prog == nil:
				err = p.errs[0]
			default:
				prog.Errors = p.errs.WrappedErrors()
				err = nil
			}
		}
	}

	if trimmed {
		if err == nil {
			err = perrors.TooManyLines
		} else {
			err = multiError{perrors.TooManyLines, err}
		}
	}
	return prog, err
}

// Parse translates a javascript source text to a syntax tree.
//
// Without the Tolerant option the first error aborts the parse and is
// returned as an *Error. With it, the errors that parsing could recover from
// are in the Errors field of the program and the error is nil, unless
// parsing gave up because it made no progress, in which case the ErrorList
// is returned. If the input was truncated to MaxLines, the partial program
// is returned with an error of reason TooManyLines.
//
// Unless NoCache is set, a cached result may be returned: the same program
// is then shared by every caller that parsed the same source with the same
// options, and it must not be modified. Use NoCache to get a private tree.
func Parse(src []byte, opts Options) (*ast.ProgramNode, error) {
	if !utf8.Valid(src) {
		return nil, perrors.InvalidEncoding
	}
	if opts.NoCache || opts.Trace {
		return parse(src, opts)
	}

	// check for cached parse
	if entry, ok := getCachedParse(src, opts); ok {
		return entry.prog, entry.err
	}

	prog, err := parse(src, opts)
	cacheParse(src, opts, prog, err)
	return prog, err
}

// ParseExpression parses src as a single expression, in non-strict code
// outside of any function. The whole input must be consumed.
func ParseExpression(src []byte, opts Options) (expr ast.Expression, err error) {
	if !utf8.Valid(src) {
		return nil, perrors.InvalidEncoding
	}

	p := newParser(src, opts)
	func() {
		defer recoverInternal(&err)
		defer p.recoverParse(&err)

		e := p.parseExpression()
		if !p.at(scanner.EOF) {
			p.unexpected(p.word)
		}
		expr = e
	}()

	if _, ok := err.(ErrorList); ok {
		if expr == nil || !opts.Tolerant {
			return nil, p.errs[0]
		}
		return expr, p.errs
	}
	return expr, err
}

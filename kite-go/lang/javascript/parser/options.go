package parser

import (
	"fmt"
	"io"
)

// Options represents configuration for parsing
type Options struct {
	Comment  bool // Comment collects comments into Program.Comments
	Tokens   bool // Tokens collects the significant tokens into Program.Tokens
	Tolerant bool // Tolerant records recoverable errors in Program.Errors instead of failing

	Loc    bool   // Loc attaches line/column locations to nodes, comments and tokens
	Source string // Source is copied into every Location, typically the file name

	// LegacyOctal accepts legacy octal numbers such as 012 in non-strict code.
	// When false they are rejected like any other illegal token.
	LegacyOctal bool
	// ValidateRegExp compiles regular expression literals and rejects invalid ones.
	ValidateRegExp bool
	// MaxLines truncates the input to that many lines, 0 means no limit.
	MaxLines uint64

	Trace       bool      // Trace determines whether the parse tree is printed to TraceWriter
	TraceWriter io.Writer // TraceWriter receives tracing output, defaults to os.Stdout
	MaxDepth    int       // MaxDepth is a threshold on the parse tree depth (only has effect if Trace=true)

	// NoCache bypasses the parse cache.
	NoCache bool
}

// DefaultOptions is an Options object with default values.
var DefaultOptions = Options{
	LegacyOctal:    true,
	ValidateRegExp: true,
}

// fingerprint identifies the options that change the result of a parse.
func (o Options) fingerprint() string {
	return fmt.Sprintf("%t%t%t%t%q%t%t%d", o.Comment, o.Tokens, o.Tolerant, o.Loc, o.Source, o.LegacyOctal, o.ValidateRegExp, o.MaxLines)
}

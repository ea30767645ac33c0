package scanner

import (
	"strconv"

	"github.com/kiteco/esparse/kite-go/lang/javascript/ast"
)

// Token is the set of lexical tokens of ECMAScript 5.
type Token int

// List of tokens.
const (
	// Special tokens
	Illegal Token = iota
	EOF
	Comment
	NewLine

	literalBeg
	Ident
	Numeric
	String
	RegExp
	literalEnd

	operatorBeg
	Lbrace     // {
	Rbrace     // }
	Lparen     // (
	Rparen     // )
	Lbrack     // [
	Rbrack     // ]
	Period     // .
	Semicolon  // ;
	Comma      // ,
	Lss        // <
	Gtr        // >
	Leq        // <=
	Geq        // >=
	Eql        // ==
	Neq        // !=
	StrictEql  // ===
	StrictNeq  // !==
	Add        // +
	Sub        // -
	Mul        // *
	Quo        // /
	Rem        // %
	Inc        // ++
	Dec        // --
	Shl        // <<
	Shr        // >>
	UShr       // >>>
	And        // &
	Or         // |
	Xor        // ^
	Not        // !
	BitNot     // ~
	LogicAnd   // &&
	LogicOr    // ||
	Question   // ?
	Colon      // :
	Assign     // =
	AddAssign  // +=
	SubAssign  // -=
	MulAssign  // *=
	QuoAssign  // /=
	RemAssign  // %=
	ShlAssign  // <<=
	ShrAssign  // >>=
	UShrAssign // >>>=
	AndAssign  // &=
	OrAssign   // |=
	XorAssign  // ^=
	operatorEnd

	keywordBeg
	Break
	Case
	Catch
	Continue
	Debugger
	Default
	Delete
	Do
	Else
	Finally
	For
	Function
	If
	In
	InstanceOf
	New
	Return
	Switch
	This
	Throw
	Try
	TypeOf
	Var
	Void
	While
	With

	Null
	True
	False

	// future reserved words, never valid as identifiers
	Class
	Const
	Enum
	Export
	Extends
	Import
	Super
	keywordEnd
)

var tokens = [...]string{
	Illegal: "ILLEGAL",
	EOF:     "EOF",
	Comment: "COMMENT",
	NewLine: "NEWLINE",

	Ident:   "IDENT",
	Numeric: "NUMERIC",
	String:  "STRING",
	RegExp:  "REGEXP",

	Lbrace:     "{",
	Rbrace:     "}",
	Lparen:     "(",
	Rparen:     ")",
	Lbrack:     "[",
	Rbrack:     "]",
	Period:     ".",
	Semicolon:  ";",
	Comma:      ",",
	Lss:        "<",
	Gtr:        ">",
	Leq:        "<=",
	Geq:        ">=",
	Eql:        "==",
	Neq:        "!=",
	StrictEql:  "===",
	StrictNeq:  "!==",
	Add:        "+",
	Sub:        "-",
	Mul:        "*",
	Quo:        "/",
	Rem:        "%",
	Inc:        "++",
	Dec:        "--",
	Shl:        "<<",
	Shr:        ">>",
	UShr:       ">>>",
	And:        "&",
	Or:         "|",
	Xor:        "^",
	Not:        "!",
	BitNot:     "~",
	LogicAnd:   "&&",
	LogicOr:    "||",
	Question:   "?",
	Colon:      ":",
	Assign:     "=",
	AddAssign:  "+=",
	SubAssign:  "-=",
	MulAssign:  "*=",
	QuoAssign:  "/=",
	RemAssign:  "%=",
	ShlAssign:  "<<=",
	ShrAssign:  ">>=",
	UShrAssign: ">>>=",
	AndAssign:  "&=",
	OrAssign:   "|=",
	XorAssign:  "^=",

	Break:      "break",
	Case:       "case",
	Catch:      "catch",
	Continue:   "continue",
	Debugger:   "debugger",
	Default:    "default",
	Delete:     "delete",
	Do:         "do",
	Else:       "else",
	Finally:    "finally",
	For:        "for",
	Function:   "function",
	If:         "if",
	In:         "in",
	InstanceOf: "instanceof",
	New:        "new",
	Return:     "return",
	Switch:     "switch",
	This:       "this",
	Throw:      "throw",
	Try:        "try",
	TypeOf:     "typeof",
	Var:        "var",
	Void:       "void",
	While:      "while",
	With:       "with",

	Null:  "null",
	True:  "true",
	False: "false",

	Class:   "class",
	Const:   "const",
	Enum:    "enum",
	Export:  "export",
	Extends: "extends",
	Import:  "import",
	Super:   "super",
}

// String returns the string corresponding to the token tok.
// For operators and keywords, the string is the actual token
// character sequence (e.g., for the token Add, the string is
// "+"). For all other tokens the string corresponds to the token
// constant name (e.g. for the token Ident, the string is "IDENT").
func (tok Token) String() string {
	s := ""
	if 0 <= tok && tok < Token(len(tokens)) {
		s = tokens[tok]
	}
	if s == "" {
		s = "token(" + strconv.Itoa(int(tok)) + ")"
	}
	return s
}

// IsLiteral returns true for tokens corresponding to identifiers
// and basic type literals; it returns false otherwise.
func (tok Token) IsLiteral() bool { return literalBeg < tok && tok < literalEnd }

// IsOperator returns true for tokens corresponding to punctuators;
// it returns false otherwise.
func (tok Token) IsOperator() bool { return operatorBeg < tok && tok < operatorEnd }

// IsKeyword returns true for tokens corresponding to reserved words
// (including null, true, false and the future reserved words);
// it returns false otherwise.
func (tok Token) IsKeyword() bool { return keywordBeg < tok && tok < keywordEnd }

// IsFutureReserved returns true for the words reserved for later editions.
func (tok Token) IsFutureReserved() bool { return Class <= tok && tok <= Super }

// IsAssign returns true for = and the compound assignment operators.
func (tok Token) IsAssign() bool {
	switch tok {
	case Assign, AddAssign, SubAssign, MulAssign, QuoAssign, RemAssign,
		ShlAssign, ShrAssign, UShrAssign, AndAssign, OrAssign, XorAssign:
		return true
	}
	return false
}

// IsIdentifierName returns true for tokens that may be used as a property
// name after a dot or as an object literal key: identifiers and all reserved words.
func (tok Token) IsIdentifierName() bool {
	return tok == Ident || tok.IsKeyword()
}

// Precedence returns the binary operator precedence of tok, or 0 if tok is
// not a binary operator. The in operator is only a binary operator when
// allowIn is set.
func (tok Token) Precedence(allowIn bool) int {
	switch tok {
	case LogicOr:
		return 1
	case LogicAnd:
		return 2
	case Or:
		return 3
	case Xor:
		return 4
	case And:
		return 5
	case Eql, Neq, StrictEql, StrictNeq:
		return 6
	case Lss, Gtr, Leq, Geq, InstanceOf:
		return 7
	case In:
		if allowIn {
			return 7
		}
	case Shl, Shr, UShr:
		return 8
	case Add, Sub:
		return 9
	case Mul, Quo, Rem:
		return 11
	}
	return 0
}

// Category classifies the token the way collected tokens are reported.
func (tok Token) Category() ast.TokenType {
	switch {
	case tok == Null:
		return ast.NullToken
	case tok == True || tok == False:
		return ast.BooleanToken
	case tok.IsKeyword():
		return ast.KeywordToken
	case tok == Ident:
		return ast.IdentifierToken
	case tok == Numeric:
		return ast.NumericToken
	case tok == String:
		return ast.StringToken
	case tok == RegExp:
		return ast.RegularExpressionToken
	default:
		return ast.PunctuatorToken
	}
}

var keywords map[string]Token

func init() {
	keywords = make(map[string]Token)
	for i := keywordBeg + 1; i < keywordEnd; i++ {
		keywords[tokens[i]] = i
	}
}

// Lookup maps an identifier to its keyword token or Ident (if not a keyword).
func Lookup(ident string) Token {
	if tok, isKeyword := keywords[ident]; isKeyword {
		return tok
	}
	return Ident
}

// IsStrictReserved returns true for the words that are only reserved in strict mode code.
func IsStrictReserved(name string) bool {
	switch name {
	case "implements", "interface", "let", "package", "private",
		"protected", "public", "static", "yield":
		return true
	}
	return false
}

// IsRestricted returns true for the names that strict mode code may not bind or assign.
func IsRestricted(name string) bool {
	return name == "eval" || name == "arguments"
}

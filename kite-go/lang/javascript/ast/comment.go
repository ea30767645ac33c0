package ast

// CommentType is either Line or Block.
type CommentType string

const (
	// LineComment is a // comment.
	LineComment CommentType = "Line"
	// BlockComment is a /* */ comment.
	BlockComment CommentType = "Block"
)

// Comment collected during a parse. Value excludes the comment delimiters.
type Comment struct {
	Type  CommentType
	Value string
	Range Range
	Loc   *Location
}

// TokenType classifies a collected token.
type TokenType string

// List of token types.
const (
	BooleanToken           TokenType = "Boolean"
	IdentifierToken        TokenType = "Identifier"
	KeywordToken           TokenType = "Keyword"
	NullToken              TokenType = "Null"
	NumericToken           TokenType = "Numeric"
	PunctuatorToken        TokenType = "Punctuator"
	StringToken            TokenType = "String"
	RegularExpressionToken TokenType = "RegularExpression"
)

// Token collected during a parse. Value is the source text of the token.
type Token struct {
	Type  TokenType
	Value string
	Range Range
	Loc   *Location
}

// Package parser implements a parser for ECMAScript 5 source text. It
// produces the tree of package ast, with the node shapes and error messages
// of Esprima so that the output can be compared with other engines.
//
// The parser is a hand-written recursive descent parser over the words of a
// scanner.StreamLexer with a single word of look-ahead. Binary operators are
// parsed by precedence climbing. Regular expression literals are recognized
// by the scanner from the previous word and corrected by the parser, which
// knows whether an operand or an operator is expected.
//
// Known deviations:
//
// - Array literals with elisions such as [1,,2] are rejected.
// - Escaped reserved words such as \u0076ar are accepted as identifiers.
// - Positions are byte offsets into the UTF-8 source, not UTF-16 indexes.
// - Errors are reported in the order they are found, which is not always
//   source order: a function name is only checked once the body has shown
//   whether the function is strict.
package parser

package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

func literalString(n *LiteralNode) string {
	switch v := n.Value.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return FormatNumber(v)
	case string:
		return strconv.Quote(v)
	case *RegExp:
		return "/" + v.Pattern + "/" + v.Flags
	default:
		return n.Raw
	}
}

// String returns a short textual representation of a node
func String(n Node) string {
	if IsNil(n) {
		return "Nil"
	}
	out := string(n.Type())
	switch n := n.(type) {
	case *IdentifierNode:
		out += "[" + n.Name + "]"
	case *LiteralNode:
		out += "[" + literalString(n) + "]"
	case *UnaryExpressionNode:
		out += "[" + n.Operator.String() + "]"
	case *UpdateExpressionNode:
		if n.Prefix {
			out += "[" + n.Operator.String() + "x]"
		} else {
			out += "[x" + n.Operator.String() + "]"
		}
	case *BinaryExpressionNode:
		out += "[" + n.Operator.String() + "]"
	case *LogicalExpressionNode:
		out += "[" + n.Operator.String() + "]"
	case *AssignmentExpressionNode:
		out += "[" + n.Operator.String() + "]"
	case *MemberExpressionNode:
		if n.Computed {
			out += "[computed]"
		}
	case *PropertyNode:
		out += "[" + n.Kind.String() + "]"
	case *ProgramNode:
		if n.Strict {
			out += "[strict]"
		}
	case *FunctionDeclarationNode:
		if n.Strict {
			out += "[strict]"
		}
	case *FunctionExpressionNode:
		if n.Strict {
			out += "[strict]"
		}
	}
	return out
}

type prettyPrinter struct {
	depth     int
	indent    string
	positions bool
	w         io.Writer
}

func (p *prettyPrinter) Visit(n Node) Visitor {
	if n == nil {
		p.depth--
		return p
	}
	prefix := strings.Repeat(p.indent, p.depth)
	var pos string
	if p.positions {
		pos = fmt.Sprintf("[%s]", n.Span())
	}
	fmt.Fprintln(p.w, prefix+String(n)+pos)
	p.depth++
	return p
}

// Print the AST to the provided writer with the specified indent.
func Print(root Node, w io.Writer, indent string) {
	Walk(&prettyPrinter{w: w, indent: indent}, root)
}

// PrintPositions prints the AST to the provided writer with
// the specified indent and node ranges.
func PrintPositions(root Node, w io.Writer, indent string) {
	Walk(&prettyPrinter{w: w, indent: indent, positions: true}, root)
}

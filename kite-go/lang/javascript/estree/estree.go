// Package estree encodes javascript syntax trees as JSON, in the shape
// produced by Esprima: every node is an object whose first member is its
// type, followed by its fields, then optionally its range and location.
package estree

import (
	"bytes"
	"io"
	"math"
	"strings"

	"github.com/kiteco/esparse/kite-go/lang/javascript/ast"
	"github.com/kiteco/esparse/kite-go/lang/javascript/scanner"
	"github.com/pkg/errors"
)

// Options for the encoder.
type Options struct {
	// Range adds a "range": [start, end] member to every node, comment and token.
	Range bool
	// Indent pretty prints the output using Indent for each level,
	// the output is compact when empty.
	Indent string
}

// Encode writes the JSON encoding of node to w. Locations are written for
// the nodes that have one, which is the case when the parse requested them.
func Encode(w io.Writer, node ast.Node, opts Options) error {
	e := &encoder{
		jw:   newJSONWriter(w, opts.Indent),
		opts: opts,
	}
	e.node(node)
	if err := e.jw.flush(); err != nil {
		return errors.Wrap(err, "error writing json")
	}
	return nil
}

// Marshal returns the JSON encoding of node.
func Marshal(node ast.Node, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, node, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type encoder struct {
	jw   *jsonWriter
	opts Options
}

// -- Members

func (e *encoder) str(name, value string) {
	e.jw.member(name)
	e.jw.string(value)
}

func (e *encoder) boolean(name string, value bool) {
	e.jw.member(name)
	e.jw.boolean(value)
}

func (e *encoder) child(name string, n ast.Node) {
	e.jw.member(name)
	e.node(n)
}

func (e *encoder) ident(name string, id *ast.IdentifierNode) {
	e.jw.member(name)
	if id == nil {
		e.jw.null()
		return
	}
	e.node(id)
}

func (e *encoder) statements(name string, ss []ast.Statement) {
	e.jw.member(name)
	e.jw.beginArray()
	for _, s := range ss {
		e.node(s)
	}
	e.jw.endArray()
}

func (e *encoder) expressions(name string, es []ast.Expression) {
	e.jw.member(name)
	e.jw.beginArray()
	for _, x := range es {
		e.node(x)
	}
	e.jw.endArray()
}

func (e *encoder) idents(name string, ids []*ast.IdentifierNode) {
	e.jw.member(name)
	e.jw.beginArray()
	for _, id := range ids {
		e.node(id)
	}
	e.jw.endArray()
}

func (e *encoder) handlers(name string, cs []*ast.CatchClauseNode) {
	e.jw.member(name)
	e.jw.beginArray()
	for _, c := range cs {
		e.node(c)
	}
	e.jw.endArray()
}

func (e *encoder) span(r ast.Range, loc *ast.Location) {
	if e.opts.Range {
		e.jw.member("range")
		e.jw.beginArray()
		e.jw.int(r.Start)
		e.jw.int(r.End)
		e.jw.endArray()
	}
	if loc != nil {
		e.jw.member("loc")
		e.location(loc)
	}
}

func (e *encoder) location(loc *ast.Location) {
	e.jw.beginObject()
	e.jw.member("start")
	e.position(loc.Start)
	e.jw.member("end")
	e.position(loc.End)
	if loc.Source != "" {
		e.str("source", loc.Source)
	}
	e.jw.endObject()
}

func (e *encoder) position(pos ast.Position) {
	e.jw.beginObject()
	e.jw.member("line")
	e.jw.int(pos.Line)
	e.jw.member("column")
	e.jw.int(pos.Column)
	e.jw.endObject()
}

// -- Nodes

func (e *encoder) node(n ast.Node) {
	if ast.IsNil(n) {
		e.jw.null()
		return
	}

	e.jw.beginObject()
	e.str("type", string(n.Type()))

	switch n := n.(type) {
	case *ast.ProgramNode:
		e.statements("body", n.Body)
		e.program(n)

	case *ast.BlockStatementNode:
		e.statements("body", n.Body)
	case *ast.EmptyStatementNode, *ast.DebuggerStatementNode, *ast.ThisExpressionNode:
	case *ast.ExpressionStatementNode:
		e.child("expression", n.Expression)
	case *ast.IfStatementNode:
		e.child("test", n.Test)
		e.child("consequent", n.Consequent)
		e.child("alternate", n.Alternate)
	case *ast.LabeledStatementNode:
		e.ident("label", n.Label)
		e.child("body", n.Body)
	case *ast.BreakStatementNode:
		e.ident("label", n.Label)
	case *ast.ContinueStatementNode:
		e.ident("label", n.Label)
	case *ast.WithStatementNode:
		e.child("object", n.Object)
		e.child("body", n.Body)
	case *ast.SwitchStatementNode:
		e.child("discriminant", n.Discriminant)
		e.jw.member("cases")
		e.jw.beginArray()
		for _, c := range n.Cases {
			e.node(c)
		}
		e.jw.endArray()
	case *ast.ReturnStatementNode:
		e.child("argument", n.Argument)
	case *ast.ThrowStatementNode:
		e.child("argument", n.Argument)
	case *ast.TryStatementNode:
		e.child("block", n.Block)
		e.handlers("guardedHandlers", n.GuardedHandlers)
		e.handlers("handlers", n.Handlers)
		if n.Finalizer == nil {
			e.jw.member("finalizer")
			e.jw.null()
		} else {
			e.child("finalizer", n.Finalizer)
		}
	case *ast.WhileStatementNode:
		e.child("test", n.Test)
		e.child("body", n.Body)
	case *ast.DoWhileStatementNode:
		e.child("body", n.Body)
		e.child("test", n.Test)
	case *ast.ForStatementNode:
		e.child("init", n.Init)
		e.child("test", n.Test)
		e.child("update", n.Update)
		e.child("body", n.Body)
	case *ast.ForInStatementNode:
		e.child("left", n.Left)
		e.child("right", n.Right)
		e.child("body", n.Body)
		e.boolean("each", n.Each)
	case *ast.FunctionDeclarationNode:
		e.function(&n.Function)
	case *ast.FunctionExpressionNode:
		e.function(&n.Function)
	case *ast.VariableDeclarationNode:
		e.jw.member("declarations")
		e.jw.beginArray()
		for _, d := range n.Declarations {
			e.node(d)
		}
		e.jw.endArray()
		e.str("kind", n.Kind)

	case *ast.IdentifierNode:
		e.str("name", n.Name)
	case *ast.LiteralNode:
		e.jw.member("value")
		e.literal(n)
		e.str("raw", n.Raw)
	case *ast.ArrayExpressionNode:
		e.expressions("elements", n.Elements)
	case *ast.ObjectExpressionNode:
		e.jw.member("properties")
		e.jw.beginArray()
		for _, p := range n.Properties {
			e.node(p)
		}
		e.jw.endArray()
	case *ast.SequenceExpressionNode:
		e.expressions("expressions", n.Expressions)
	case *ast.UnaryExpressionNode:
		e.str("operator", n.Operator.String())
		e.child("argument", n.Argument)
		e.boolean("prefix", n.Prefix)
	case *ast.UpdateExpressionNode:
		e.str("operator", n.Operator.String())
		e.child("argument", n.Argument)
		e.boolean("prefix", n.Prefix)
	case *ast.BinaryExpressionNode:
		e.str("operator", n.Operator.String())
		e.child("left", n.Left)
		e.child("right", n.Right)
	case *ast.LogicalExpressionNode:
		e.str("operator", n.Operator.String())
		e.child("left", n.Left)
		e.child("right", n.Right)
	case *ast.AssignmentExpressionNode:
		e.str("operator", n.Operator.String())
		e.child("left", n.Left)
		e.child("right", n.Right)
	case *ast.ConditionalExpressionNode:
		e.child("test", n.Test)
		e.child("consequent", n.Consequent)
		e.child("alternate", n.Alternate)
	case *ast.NewExpressionNode:
		e.child("callee", n.Callee)
		e.expressions("arguments", n.Arguments)
	case *ast.CallExpressionNode:
		e.child("callee", n.Callee)
		e.expressions("arguments", n.Arguments)
	case *ast.MemberExpressionNode:
		e.boolean("computed", n.Computed)
		e.child("object", n.Object)
		e.child("property", n.Property)

	case *ast.PropertyNode:
		e.child("key", n.Key)
		e.child("value", n.Value)
		e.str("kind", n.Kind.String())
	case *ast.SwitchCaseNode:
		e.child("test", n.Test)
		e.statements("consequent", n.Consequent)
	case *ast.CatchClauseNode:
		e.ident("param", n.Param)
		e.child("body", n.Body)
	case *ast.VariableDeclaratorNode:
		e.ident("id", n.ID)
		e.child("init", n.Init)
	}

	e.span(n.Span(), n.Location())
	e.jw.endObject()
}

func (e *encoder) function(f *ast.Function) {
	e.ident("id", f.ID)
	e.idents("params", f.Params)
	e.expressions("defaults", f.Defaults)
	e.child("body", f.Body)
	e.ident("rest", f.Rest)
	e.boolean("generator", f.Generator)
	e.boolean("expression", f.Expression)
}

func (e *encoder) literal(n *ast.LiteralNode) {
	switch v := n.Value.(type) {
	case nil:
		e.jw.null()
	case bool:
		e.jw.boolean(v)
	case float64:
		// JSON has no representation for the non-finite numbers
		if math.IsInf(v, 0) || math.IsNaN(v) {
			e.jw.null()
			return
		}
		e.jw.number(ast.FormatNumber(v))
	case string:
		e.jw.string(v)
	case *ast.RegExp:
		e.jw.string(RegExpString(v))
	default:
		e.jw.string(n.Raw)
	}
}

// RegExpString renders a regular expression the way RegExp.prototype.toString
// does, with the g, i and m flags in that order.
func RegExpString(re *ast.RegExp) string {
	flags := re.Flags
	if len(flags) > 1 {
		var b strings.Builder
		for _, f := range "gim" {
			if strings.ContainsRune(re.Flags, f) {
				b.WriteRune(f)
			}
		}
		flags = b.String()
	}
	return "/" + re.Pattern + "/" + flags
}

// -- Program extras

func (e *encoder) program(n *ast.ProgramNode) {
	if n.Comments != nil {
		e.jw.member("comments")
		e.jw.beginArray()
		for _, c := range n.Comments {
			e.jw.beginObject()
			e.str("type", string(c.Type))
			e.str("value", c.Value)
			e.span(c.Range, c.Loc)
			e.jw.endObject()
		}
		e.jw.endArray()
	}

	if n.Tokens != nil {
		e.jw.member("tokens")
		e.jw.beginArray()
		for _, t := range n.Tokens {
			e.jw.beginObject()
			e.str("type", string(t.Type))
			e.str("value", t.Value)
			e.span(t.Range, t.Loc)
			e.jw.endObject()
		}
		e.jw.endArray()
	}

	if n.Errors != nil {
		e.jw.member("errors")
		e.jw.beginArray()
		for _, err := range n.Errors {
			e.syntaxError(err)
		}
		e.jw.endArray()
	}
}

func (e *encoder) syntaxError(err error) {
	e.jw.beginObject()
	if se, ok := errors.Cause(err).(*scanner.Error); ok {
		e.jw.member("index")
		e.jw.int(se.Index)
		e.jw.member("lineNumber")
		e.jw.int(se.LineNumber)
		e.jw.member("column")
		e.jw.int(se.Column)
		e.str("message", se.Message)
		e.str("description", se.Description)
	} else {
		e.str("message", err.Error())
	}
	e.jw.endObject()
}

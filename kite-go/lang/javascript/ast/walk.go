package ast

// A Visitor's Visit method is invoked for each node encountered by Walk.
// If the result visitor w is not nil, Walk visits each of the children
// of node with the visitor w, followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(n Node) (w Visitor)
}

func walkStatements(v Visitor, ss []Statement) {
	for _, s := range ss {
		Walk(v, s)
	}
}

func walkExpressions(v Visitor, es []Expression) {
	for _, e := range es {
		Walk(v, e)
	}
}

func walkIdent(v Visitor, id *IdentifierNode) {
	if id != nil {
		Walk(v, id)
	}
}

func walkFunction(v Visitor, f *Function) {
	walkIdent(v, f.ID)
	for _, p := range f.Params {
		Walk(v, p)
	}
	walkExpressions(v, f.Defaults)
	walkIdent(v, f.Rest)
	if !IsNil(f.Body) {
		Walk(v, f.Body)
	}
}

// Walk traverses an AST in depth-first order: It starts by calling
// v.Visit(node); node must not be nil. Optional children that are absent
// are skipped.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *ProgramNode:
		walkStatements(v, n.Body)

	case *BlockStatementNode:
		walkStatements(v, n.Body)

	case *EmptyStatementNode, *DebuggerStatementNode, *ThisExpressionNode,
		*IdentifierNode, *LiteralNode:
		// leaves

	case *ExpressionStatementNode:
		Walk(v, n.Expression)

	case *IfStatementNode:
		Walk(v, n.Test)
		Walk(v, n.Consequent)
		if n.Alternate != nil {
			Walk(v, n.Alternate)
		}

	case *LabeledStatementNode:
		Walk(v, n.Label)
		Walk(v, n.Body)

	case *BreakStatementNode:
		walkIdent(v, n.Label)

	case *ContinueStatementNode:
		walkIdent(v, n.Label)

	case *WithStatementNode:
		Walk(v, n.Object)
		Walk(v, n.Body)

	case *SwitchStatementNode:
		Walk(v, n.Discriminant)
		for _, c := range n.Cases {
			Walk(v, c)
		}

	case *SwitchCaseNode:
		if n.Test != nil {
			Walk(v, n.Test)
		}
		walkStatements(v, n.Consequent)

	case *ReturnStatementNode:
		if n.Argument != nil {
			Walk(v, n.Argument)
		}

	case *ThrowStatementNode:
		Walk(v, n.Argument)

	case *TryStatementNode:
		Walk(v, n.Block)
		for _, h := range n.GuardedHandlers {
			Walk(v, h)
		}
		for _, h := range n.Handlers {
			Walk(v, h)
		}
		if n.Finalizer != nil {
			Walk(v, n.Finalizer)
		}

	case *CatchClauseNode:
		Walk(v, n.Param)
		Walk(v, n.Body)

	case *WhileStatementNode:
		Walk(v, n.Test)
		Walk(v, n.Body)

	case *DoWhileStatementNode:
		Walk(v, n.Body)
		Walk(v, n.Test)

	case *ForStatementNode:
		if n.Init != nil {
			Walk(v, n.Init)
		}
		if n.Test != nil {
			Walk(v, n.Test)
		}
		if n.Update != nil {
			Walk(v, n.Update)
		}
		Walk(v, n.Body)

	case *ForInStatementNode:
		Walk(v, n.Left)
		Walk(v, n.Right)
		Walk(v, n.Body)

	case *FunctionDeclarationNode:
		walkFunction(v, &n.Function)

	case *FunctionExpressionNode:
		walkFunction(v, &n.Function)

	case *VariableDeclarationNode:
		for _, d := range n.Declarations {
			Walk(v, d)
		}

	case *VariableDeclaratorNode:
		Walk(v, n.ID)
		if n.Init != nil {
			Walk(v, n.Init)
		}

	case *ArrayExpressionNode:
		walkExpressions(v, n.Elements)

	case *ObjectExpressionNode:
		for _, p := range n.Properties {
			Walk(v, p)
		}

	case *PropertyNode:
		Walk(v, n.Key)
		Walk(v, n.Value)

	case *SequenceExpressionNode:
		walkExpressions(v, n.Expressions)

	case *UnaryExpressionNode:
		Walk(v, n.Argument)

	case *UpdateExpressionNode:
		Walk(v, n.Argument)

	case *BinaryExpressionNode:
		Walk(v, n.Left)
		Walk(v, n.Right)

	case *LogicalExpressionNode:
		Walk(v, n.Left)
		Walk(v, n.Right)

	case *AssignmentExpressionNode:
		Walk(v, n.Left)
		Walk(v, n.Right)

	case *ConditionalExpressionNode:
		Walk(v, n.Test)
		Walk(v, n.Consequent)
		Walk(v, n.Alternate)

	case *NewExpressionNode:
		Walk(v, n.Callee)
		walkExpressions(v, n.Arguments)

	case *CallExpressionNode:
		Walk(v, n.Callee)
		walkExpressions(v, n.Arguments)

	case *MemberExpressionNode:
		Walk(v, n.Object)
		Walk(v, n.Property)

	default:
		panic(invariantf("Walk: unexpected node type %T", n))
	}

	v.Visit(nil)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect traverses an AST in depth-first order: It starts by calling
// f(node); node must not be nil. If f returns true, Inspect invokes f
// recursively for each of the non-nil children of node, followed by a
// call of f(nil).
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

// CountNodes counts the number of nodes in an AST
func CountNodes(node Node) int {
	var count int
	Inspect(node, func(n Node) bool {
		if n != nil {
			count++
		}
		return true
	})
	return count
}

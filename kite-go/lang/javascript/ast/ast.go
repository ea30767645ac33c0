package ast

import (
	"fmt"
	"reflect"
)

// Type of an ast node.
type Type string

const (
	// Program is the root of every parse.
	Program Type = "Program"

	// -- Statements

	// BlockStatement represents a braced list of statements.
	BlockStatement Type = "BlockStatement"
	// EmptyStatement represents a lone semicolon.
	EmptyStatement Type = "EmptyStatement"
	// ExpressionStatement represents an expression used as a statement.
	ExpressionStatement Type = "ExpressionStatement"
	// IfStatement represents an if statement.
	IfStatement Type = "IfStatement"
	// LabeledStatement represents a statement prefixed with a label.
	LabeledStatement Type = "LabeledStatement"
	// BreakStatement represents a break statement.
	BreakStatement Type = "BreakStatement"
	// ContinueStatement represents a continue statement.
	ContinueStatement Type = "ContinueStatement"
	// WithStatement represents a with statement.
	WithStatement Type = "WithStatement"
	// SwitchStatement represents a switch statement.
	SwitchStatement Type = "SwitchStatement"
	// ReturnStatement represents a return statement.
	ReturnStatement Type = "ReturnStatement"
	// ThrowStatement represents a throw statement.
	ThrowStatement Type = "ThrowStatement"
	// TryStatement represents a try statement.
	TryStatement Type = "TryStatement"
	// WhileStatement represents a while statement.
	WhileStatement Type = "WhileStatement"
	// DoWhileStatement represents a do-while statement.
	DoWhileStatement Type = "DoWhileStatement"
	// ForStatement represents a for statement.
	ForStatement Type = "ForStatement"
	// ForInStatement represents a for-in statement.
	ForInStatement Type = "ForInStatement"
	// DebuggerStatement represents a debugger statement.
	DebuggerStatement Type = "DebuggerStatement"
	// FunctionDeclaration represents a function declaration.
	FunctionDeclaration Type = "FunctionDeclaration"
	// VariableDeclaration represents a var statement.
	VariableDeclaration Type = "VariableDeclaration"

	// -- Expressions

	// Identifier represents an identifier.
	Identifier Type = "Identifier"
	// Literal represents a null, boolean, numeric, string or regular expression literal.
	Literal Type = "Literal"
	// ThisExpression represents the this keyword.
	ThisExpression Type = "ThisExpression"
	// ArrayExpression represents an array literal.
	ArrayExpression Type = "ArrayExpression"
	// ObjectExpression represents an object literal.
	ObjectExpression Type = "ObjectExpression"
	// FunctionExpression represents a function expression.
	FunctionExpression Type = "FunctionExpression"
	// SequenceExpression represents comma separated expressions.
	SequenceExpression Type = "SequenceExpression"
	// UnaryExpression represents a prefix operator other than ++ and --.
	UnaryExpression Type = "UnaryExpression"
	// BinaryExpression represents a non-logical binary operator.
	BinaryExpression Type = "BinaryExpression"
	// AssignmentExpression represents an assignment.
	AssignmentExpression Type = "AssignmentExpression"
	// UpdateExpression represents a prefix or postfix ++ or --.
	UpdateExpression Type = "UpdateExpression"
	// LogicalExpression represents && and ||.
	LogicalExpression Type = "LogicalExpression"
	// ConditionalExpression represents the ternary operator.
	ConditionalExpression Type = "ConditionalExpression"
	// NewExpression represents a constructor call.
	NewExpression Type = "NewExpression"
	// CallExpression represents a call.
	CallExpression Type = "CallExpression"
	// MemberExpression represents a property access, e.g a.b or a[b].
	MemberExpression Type = "MemberExpression"

	// -- Other nodes

	// Property represents a property of an object literal.
	Property Type = "Property"
	// SwitchCase represents a case or default clause.
	SwitchCase Type = "SwitchCase"
	// CatchClause represents the catch block of a try statement.
	CatchClause Type = "CatchClause"
	// VariableDeclarator represents one name of a var statement.
	VariableDeclarator Type = "VariableDeclarator"
)

// Node in a javascript AST. The set of implementations is closed: only
// the node types of this package satisfy it.
type Node interface {
	Type() Type
	Span() Range
	Location() *Location
	node()
}

// Expression is a node that yields a value.
type Expression interface {
	Node
	expr()
}

// Statement is a node that performs an action or declares.
type Statement interface {
	Node
	stmt()
}

// PropertyKey is an expression that can name an object property,
// i.e an Identifier or a Literal.
type PropertyKey interface {
	Expression
	propertyKey()
}

// Base is the envelope shared by all nodes.
type Base struct {
	// Range is the byte span of the node, end exclusive.
	Range Range
	// Loc is only set when location tracking is requested.
	Loc *Location
}

// Span returns the byte range of the node.
func (b Base) Span() Range { return b.Range }

// Location returns the line/column location of the node, it is nil when
// locations were not requested.
func (b Base) Location() *Location { return b.Loc }

func (Base) node() {}

// Scope accumulates the declarations made directly in a program or function body,
// not including declarations nested in deeper functions.
type Scope struct {
	VariableDeclarations []*VariableDeclarationNode
	FunctionDeclarations []*FunctionDeclarationNode
}

// DeclareVariables appends a var statement to the scope.
func (s *Scope) DeclareVariables(decl *VariableDeclarationNode) {
	s.VariableDeclarations = append(s.VariableDeclarations, decl)
}

// DeclareFunction appends a function declaration to the scope.
func (s *Scope) DeclareFunction(decl *FunctionDeclarationNode) {
	s.FunctionDeclarations = append(s.FunctionDeclarations, decl)
}

// VariableNames returns the names of all hoisted variables, in declaration order.
func (s *Scope) VariableNames() []string {
	var names []string
	for _, decl := range s.VariableDeclarations {
		for _, d := range decl.Declarations {
			names = append(names, d.ID.Name)
		}
	}
	return names
}

// FunctionNames returns the names of all hoisted functions, in declaration order.
func (s *Scope) FunctionNames() []string {
	var names []string
	for _, decl := range s.FunctionDeclarations {
		names = append(names, decl.ID.Name)
	}
	return names
}

// -- Root

// ProgramNode is the root of the tree.
type ProgramNode struct {
	Base
	Scope
	Body   []Statement
	Strict bool

	// Comments is only populated when requested.
	Comments []Comment
	// Tokens is only populated when requested.
	Tokens []Token
	// Errors holds the errors recovered from in tolerant mode.
	Errors []error
}

// -- Statements

// BlockStatementNode is a braced statement list.
type BlockStatementNode struct {
	Base
	Body []Statement
}

// EmptyStatementNode is a lone semicolon.
type EmptyStatementNode struct {
	Base
}

// ExpressionStatementNode wraps an expression used as a statement.
type ExpressionStatementNode struct {
	Base
	Expression Expression
}

// IfStatementNode is an if statement, Alternate is nil without an else branch.
type IfStatementNode struct {
	Base
	Test       Expression
	Consequent Statement
	Alternate  Statement
}

// LabeledStatementNode is a labeled statement.
type LabeledStatementNode struct {
	Base
	Label *IdentifierNode
	Body  Statement
}

// BreakStatementNode is a break statement with an optional label.
type BreakStatementNode struct {
	Base
	Label *IdentifierNode
}

// ContinueStatementNode is a continue statement with an optional label.
type ContinueStatementNode struct {
	Base
	Label *IdentifierNode
}

// WithStatementNode is a with statement.
type WithStatementNode struct {
	Base
	Object Expression
	Body   Statement
}

// SwitchStatementNode is a switch statement.
type SwitchStatementNode struct {
	Base
	Discriminant Expression
	Cases        []*SwitchCaseNode
}

// ReturnStatementNode is a return statement with an optional argument.
type ReturnStatementNode struct {
	Base
	Argument Expression
}

// ThrowStatementNode is a throw statement.
type ThrowStatementNode struct {
	Base
	Argument Expression
}

// TryStatementNode is a try statement. GuardedHandlers is always empty and
// Handlers holds at most one clause.
type TryStatementNode struct {
	Base
	Block           *BlockStatementNode
	GuardedHandlers []*CatchClauseNode
	Handlers        []*CatchClauseNode
	Finalizer       *BlockStatementNode
}

// WhileStatementNode is a while loop.
type WhileStatementNode struct {
	Base
	Test Expression
	Body Statement
}

// DoWhileStatementNode is a do-while loop.
type DoWhileStatementNode struct {
	Base
	Body Statement
	Test Expression
}

// ForStatementNode is a classic for loop. Init is either nil, a
// *VariableDeclarationNode or an Expression.
type ForStatementNode struct {
	Base
	Init   Node
	Test   Expression
	Update Expression
	Body   Statement
}

// ForInStatementNode is a for-in loop. Left is either a *VariableDeclarationNode
// with a single declarator or an Expression.
type ForInStatementNode struct {
	Base
	Left  Node
	Right Expression
	Body  Statement
	Each  bool
}

// DebuggerStatementNode is a debugger statement.
type DebuggerStatementNode struct {
	Base
}

// Function holds what function declarations and expressions have in common.
type Function struct {
	Scope
	ID     *IdentifierNode
	Params []*IdentifierNode
	// Body is a *BlockStatementNode, or an Expression when Expression is set.
	Body   Node
	Strict bool

	// Defaults, Rest, Generator and Expression are placeholders for later
	// editions of the language and are never populated by the parser.
	Defaults   []Expression
	Rest       *IdentifierNode
	Generator  bool
	Expression bool
}

// FunctionDeclarationNode is a function declaration, ID is always set.
type FunctionDeclarationNode struct {
	Base
	Function
}

// VariableDeclarationNode is a var statement.
type VariableDeclarationNode struct {
	Base
	Declarations []*VariableDeclaratorNode
	Kind         string
}

// -- Expressions

// IdentifierNode is a name.
type IdentifierNode struct {
	Base
	Name string
}

// RegExp is the value of a regular expression literal.
type RegExp struct {
	Pattern string
	Flags   string
}

// LiteralNode holds a coerced value (nil, bool, float64, string or *RegExp)
// together with its source text.
type LiteralNode struct {
	Base
	Value interface{}
	Raw   string
}

// ThisExpressionNode is the this keyword.
type ThisExpressionNode struct {
	Base
}

// ArrayExpressionNode is an array literal.
type ArrayExpressionNode struct {
	Base
	Elements []Expression
}

// ObjectExpressionNode is an object literal.
type ObjectExpressionNode struct {
	Base
	Properties []*PropertyNode
}

// FunctionExpressionNode is a function expression, ID may be nil.
type FunctionExpressionNode struct {
	Base
	Function
}

// SequenceExpressionNode is a comma separated list of expressions.
type SequenceExpressionNode struct {
	Base
	Expressions []Expression
}

// UnaryExpressionNode is a prefix operator, Prefix is always true.
type UnaryExpressionNode struct {
	Base
	Operator UnaryOperator
	Prefix   bool
	Argument Expression
}

// BinaryExpressionNode is a non-logical binary operation.
type BinaryExpressionNode struct {
	Base
	Operator BinaryOperator
	Left     Expression
	Right    Expression
}

// AssignmentExpressionNode is a simple or compound assignment.
type AssignmentExpressionNode struct {
	Base
	Operator AssignmentOperator
	Left     Expression
	Right    Expression
}

// UpdateExpressionNode is ++ or --, in prefix or postfix position.
type UpdateExpressionNode struct {
	Base
	Operator UnaryOperator
	Argument Expression
	Prefix   bool
}

// LogicalExpressionNode is && or ||.
type LogicalExpressionNode struct {
	Base
	Operator LogicalOperator
	Left     Expression
	Right    Expression
}

// ConditionalExpressionNode is test ? consequent : alternate.
type ConditionalExpressionNode struct {
	Base
	Test       Expression
	Consequent Expression
	Alternate  Expression
}

// NewExpressionNode is a constructor call, Arguments is empty when the
// parentheses were omitted.
type NewExpressionNode struct {
	Base
	Callee    Expression
	Arguments []Expression
}

// CallExpressionNode is a call.
type CallExpressionNode struct {
	Base
	Callee    Expression
	Arguments []Expression
}

// MemberExpressionNode is a.b (Computed false) or a[b] (Computed true).
type MemberExpressionNode struct {
	Base
	Object   Expression
	Property Expression
	Computed bool
}

// -- Other nodes

// PropertyNode is a property of an object literal. The value of a getter or
// setter is a *FunctionExpressionNode.
type PropertyNode struct {
	Base
	Key   PropertyKey
	Value Expression
	Kind  PropertyKind
}

// SwitchCaseNode is a case clause, Test is nil for the default clause.
type SwitchCaseNode struct {
	Base
	Test       Expression
	Consequent []Statement
}

// CatchClauseNode is the catch block of a try statement.
type CatchClauseNode struct {
	Base
	Param *IdentifierNode
	Body  *BlockStatementNode
}

// VariableDeclaratorNode is a single name of a var statement, Init may be nil.
type VariableDeclaratorNode struct {
	Base
	ID   *IdentifierNode
	Init Expression
}

// -- Type discriminants

func (*ProgramNode) Type() Type               { return Program }
func (*BlockStatementNode) Type() Type        { return BlockStatement }
func (*EmptyStatementNode) Type() Type        { return EmptyStatement }
func (*ExpressionStatementNode) Type() Type   { return ExpressionStatement }
func (*IfStatementNode) Type() Type           { return IfStatement }
func (*LabeledStatementNode) Type() Type      { return LabeledStatement }
func (*BreakStatementNode) Type() Type        { return BreakStatement }
func (*ContinueStatementNode) Type() Type     { return ContinueStatement }
func (*WithStatementNode) Type() Type         { return WithStatement }
func (*SwitchStatementNode) Type() Type       { return SwitchStatement }
func (*ReturnStatementNode) Type() Type       { return ReturnStatement }
func (*ThrowStatementNode) Type() Type        { return ThrowStatement }
func (*TryStatementNode) Type() Type          { return TryStatement }
func (*WhileStatementNode) Type() Type        { return WhileStatement }
func (*DoWhileStatementNode) Type() Type      { return DoWhileStatement }
func (*ForStatementNode) Type() Type          { return ForStatement }
func (*ForInStatementNode) Type() Type        { return ForInStatement }
func (*DebuggerStatementNode) Type() Type     { return DebuggerStatement }
func (*FunctionDeclarationNode) Type() Type   { return FunctionDeclaration }
func (*VariableDeclarationNode) Type() Type   { return VariableDeclaration }
func (*IdentifierNode) Type() Type            { return Identifier }
func (*LiteralNode) Type() Type               { return Literal }
func (*ThisExpressionNode) Type() Type        { return ThisExpression }
func (*ArrayExpressionNode) Type() Type       { return ArrayExpression }
func (*ObjectExpressionNode) Type() Type      { return ObjectExpression }
func (*FunctionExpressionNode) Type() Type    { return FunctionExpression }
func (*SequenceExpressionNode) Type() Type    { return SequenceExpression }
func (*UnaryExpressionNode) Type() Type       { return UnaryExpression }
func (*BinaryExpressionNode) Type() Type      { return BinaryExpression }
func (*AssignmentExpressionNode) Type() Type  { return AssignmentExpression }
func (*UpdateExpressionNode) Type() Type      { return UpdateExpression }
func (*LogicalExpressionNode) Type() Type     { return LogicalExpression }
func (*ConditionalExpressionNode) Type() Type { return ConditionalExpression }
func (*NewExpressionNode) Type() Type         { return NewExpression }
func (*CallExpressionNode) Type() Type        { return CallExpression }
func (*MemberExpressionNode) Type() Type      { return MemberExpression }
func (*PropertyNode) Type() Type              { return Property }
func (*SwitchCaseNode) Type() Type            { return SwitchCase }
func (*CatchClauseNode) Type() Type           { return CatchClause }
func (*VariableDeclaratorNode) Type() Type    { return VariableDeclarator }

// -- Category markers

func (*BlockStatementNode) stmt()      {}
func (*EmptyStatementNode) stmt()      {}
func (*ExpressionStatementNode) stmt() {}
func (*IfStatementNode) stmt()         {}
func (*LabeledStatementNode) stmt()    {}
func (*BreakStatementNode) stmt()      {}
func (*ContinueStatementNode) stmt()   {}
func (*WithStatementNode) stmt()       {}
func (*SwitchStatementNode) stmt()     {}
func (*ReturnStatementNode) stmt()     {}
func (*ThrowStatementNode) stmt()      {}
func (*TryStatementNode) stmt()        {}
func (*WhileStatementNode) stmt()      {}
func (*DoWhileStatementNode) stmt()    {}
func (*ForStatementNode) stmt()        {}
func (*ForInStatementNode) stmt()      {}
func (*DebuggerStatementNode) stmt()   {}
func (*FunctionDeclarationNode) stmt() {}
func (*VariableDeclarationNode) stmt() {}

func (*IdentifierNode) expr()            {}
func (*LiteralNode) expr()               {}
func (*ThisExpressionNode) expr()        {}
func (*ArrayExpressionNode) expr()       {}
func (*ObjectExpressionNode) expr()      {}
func (*FunctionExpressionNode) expr()    {}
func (*SequenceExpressionNode) expr()    {}
func (*UnaryExpressionNode) expr()       {}
func (*BinaryExpressionNode) expr()      {}
func (*AssignmentExpressionNode) expr()  {}
func (*UpdateExpressionNode) expr()      {}
func (*LogicalExpressionNode) expr()     {}
func (*ConditionalExpressionNode) expr() {}
func (*NewExpressionNode) expr()         {}
func (*CallExpressionNode) expr()        {}
func (*MemberExpressionNode) expr()      {}

func (*IdentifierNode) propertyKey() {}
func (*LiteralNode) propertyKey()    {}

// IsNil returns true if the node is nil or a typed nil pointer.
func IsNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// IsStatement returns true if the provided node is a statement.
func IsStatement(n Node) bool {
	_, ok := n.(Statement)
	return ok && !IsNil(n)
}

// IsExpression returns true if the provided node is an expression.
func IsExpression(n Node) bool {
	_, ok := n.(Expression)
	return ok && !IsNil(n)
}

// IsIteration returns true for the loop statements.
func IsIteration(n Node) bool {
	switch n.(type) {
	case *WhileStatementNode, *DoWhileStatementNode, *ForStatementNode, *ForInStatementNode:
		return true
	}
	return false
}

// IsLeftHandSide returns true if the expression can be assigned to.
func IsLeftHandSide(e Expression) bool {
	switch e.(type) {
	case *IdentifierNode, *MemberExpressionNode:
		return true
	}
	return false
}

// NameFor a FunctionDeclaration, FunctionExpression or VariableDeclarator,
// it returns nil for other nodes and for anonymous functions.
func NameFor(n Node) *IdentifierNode {
	switch n := n.(type) {
	case *FunctionDeclarationNode:
		return n.ID
	case *FunctionExpressionNode:
		return n.ID
	case *VariableDeclaratorNode:
		return n.ID
	default:
		return nil
	}
}

// PropertyName returns the name under which a property key is stored, as
// used for duplicate detection: the name of an identifier, the value of a
// string literal, or the canonical form of a numeric literal.
func PropertyName(key PropertyKey) string {
	switch key := key.(type) {
	case *IdentifierNode:
		return key.Name
	case *LiteralNode:
		switch v := key.Value.(type) {
		case string:
			return v
		case float64:
			return FormatNumber(v)
		case nil:
			return "null"
		default:
			return fmt.Sprint(v)
		}
	}
	return ""
}

package ast

// The constructors below are the only way the parser builds nodes. Each one
// checks that required children are present and that operators belong to
// their closed set, panicking with an InvariantError otherwise, so that no
// partially initialized node escapes.

func required(kind Type, field string, n Node) {
	if IsNil(n) {
		panic(invariantf("%s: missing %s", kind, field))
	}
}

func requiredAll(kind Type, field string, ns ...Node) {
	for _, n := range ns {
		required(kind, field, n)
	}
}

func expressions(es []Expression) []Node {
	ns := make([]Node, 0, len(es))
	for _, e := range es {
		ns = append(ns, e)
	}
	return ns
}

func statements(ss []Statement) []Node {
	ns := make([]Node, 0, len(ss))
	for _, s := range ss {
		ns = append(ns, s)
	}
	return ns
}

// NewProgram builds the root node.
func NewProgram(b Base, body []Statement, strict bool, scope Scope) *ProgramNode {
	requiredAll(Program, "statement", statements(body)...)
	return &ProgramNode{Base: b, Scope: scope, Body: body, Strict: strict}
}

// NewBlock builds a BlockStatement.
func NewBlock(b Base, body []Statement) *BlockStatementNode {
	requiredAll(BlockStatement, "statement", statements(body)...)
	return &BlockStatementNode{Base: b, Body: body}
}

// NewEmpty builds an EmptyStatement.
func NewEmpty(b Base) *EmptyStatementNode {
	return &EmptyStatementNode{Base: b}
}

// NewExpressionStatement builds an ExpressionStatement.
func NewExpressionStatement(b Base, e Expression) *ExpressionStatementNode {
	required(ExpressionStatement, "expression", e)
	return &ExpressionStatementNode{Base: b, Expression: e}
}

// NewIf builds an IfStatement, alternate may be nil.
func NewIf(b Base, test Expression, consequent, alternate Statement) *IfStatementNode {
	required(IfStatement, "test", test)
	required(IfStatement, "consequent", consequent)
	if IsNil(alternate) {
		alternate = nil
	}
	return &IfStatementNode{Base: b, Test: test, Consequent: consequent, Alternate: alternate}
}

// NewLabeled builds a LabeledStatement.
func NewLabeled(b Base, label *IdentifierNode, body Statement) *LabeledStatementNode {
	required(LabeledStatement, "label", label)
	required(LabeledStatement, "body", body)
	return &LabeledStatementNode{Base: b, Label: label, Body: body}
}

// NewBreak builds a BreakStatement, label may be nil.
func NewBreak(b Base, label *IdentifierNode) *BreakStatementNode {
	return &BreakStatementNode{Base: b, Label: label}
}

// NewContinue builds a ContinueStatement, label may be nil.
func NewContinue(b Base, label *IdentifierNode) *ContinueStatementNode {
	return &ContinueStatementNode{Base: b, Label: label}
}

// NewWith builds a WithStatement.
func NewWith(b Base, object Expression, body Statement) *WithStatementNode {
	required(WithStatement, "object", object)
	required(WithStatement, "body", body)
	return &WithStatementNode{Base: b, Object: object, Body: body}
}

// NewSwitch builds a SwitchStatement; at most one of the cases may be a default clause.
func NewSwitch(b Base, discriminant Expression, cases []*SwitchCaseNode) *SwitchStatementNode {
	required(SwitchStatement, "discriminant", discriminant)
	var defaults int
	for _, c := range cases {
		required(SwitchStatement, "case", c)
		if c.Test == nil {
			defaults++
		}
	}
	if defaults > 1 {
		panic(invariantf("%s: %d default clauses", SwitchStatement, defaults))
	}
	return &SwitchStatementNode{Base: b, Discriminant: discriminant, Cases: cases}
}

// NewSwitchCase builds a SwitchCase, test is nil for the default clause.
func NewSwitchCase(b Base, test Expression, consequent []Statement) *SwitchCaseNode {
	requiredAll(SwitchCase, "statement", statements(consequent)...)
	if IsNil(test) {
		test = nil
	}
	return &SwitchCaseNode{Base: b, Test: test, Consequent: consequent}
}

// NewReturn builds a ReturnStatement, argument may be nil.
func NewReturn(b Base, argument Expression) *ReturnStatementNode {
	if IsNil(argument) {
		argument = nil
	}
	return &ReturnStatementNode{Base: b, Argument: argument}
}

// NewThrow builds a ThrowStatement.
func NewThrow(b Base, argument Expression) *ThrowStatementNode {
	required(ThrowStatement, "argument", argument)
	return &ThrowStatementNode{Base: b, Argument: argument}
}

// NewTry builds a TryStatement, handler or finalizer may be nil but not both.
func NewTry(b Base, block *BlockStatementNode, handler *CatchClauseNode, finalizer *BlockStatementNode) *TryStatementNode {
	required(TryStatement, "block", block)
	if handler == nil && finalizer == nil {
		panic(invariantf("%s: missing handler and finalizer", TryStatement))
	}
	handlers := []*CatchClauseNode{}
	if handler != nil {
		handlers = append(handlers, handler)
	}
	return &TryStatementNode{
		Base:            b,
		Block:           block,
		GuardedHandlers: []*CatchClauseNode{},
		Handlers:        handlers,
		Finalizer:       finalizer,
	}
}

// NewCatchClause builds a CatchClause.
func NewCatchClause(b Base, param *IdentifierNode, body *BlockStatementNode) *CatchClauseNode {
	required(CatchClause, "param", param)
	required(CatchClause, "body", body)
	return &CatchClauseNode{Base: b, Param: param, Body: body}
}

// NewWhile builds a WhileStatement.
func NewWhile(b Base, test Expression, body Statement) *WhileStatementNode {
	required(WhileStatement, "test", test)
	required(WhileStatement, "body", body)
	return &WhileStatementNode{Base: b, Test: test, Body: body}
}

// NewDoWhile builds a DoWhileStatement.
func NewDoWhile(b Base, body Statement, test Expression) *DoWhileStatementNode {
	required(DoWhileStatement, "body", body)
	required(DoWhileStatement, "test", test)
	return &DoWhileStatementNode{Base: b, Body: body, Test: test}
}

// NewFor builds a ForStatement; init, test and update may be nil.
func NewFor(b Base, init Node, test, update Expression, body Statement) *ForStatementNode {
	required(ForStatement, "body", body)
	switch init.(type) {
	case nil, *VariableDeclarationNode, Expression:
	default:
		panic(invariantf("%s: invalid init %s", ForStatement, init.Type()))
	}
	if IsNil(init) {
		init = nil
	}
	if IsNil(test) {
		test = nil
	}
	if IsNil(update) {
		update = nil
	}
	return &ForStatementNode{Base: b, Init: init, Test: test, Update: update, Body: body}
}

// NewForIn builds a ForInStatement.
func NewForIn(b Base, left Node, right Expression, body Statement) *ForInStatementNode {
	required(ForInStatement, "left", left)
	required(ForInStatement, "right", right)
	required(ForInStatement, "body", body)
	switch left := left.(type) {
	case *VariableDeclarationNode:
		if len(left.Declarations) != 1 {
			panic(invariantf("%s: %d declarators", ForInStatement, len(left.Declarations)))
		}
	case Expression:
	default:
		panic(invariantf("%s: invalid left %s", ForInStatement, left.Type()))
	}
	return &ForInStatementNode{Base: b, Left: left, Right: right, Body: body}
}

// NewDebugger builds a DebuggerStatement.
func NewDebugger(b Base) *DebuggerStatementNode {
	return &DebuggerStatementNode{Base: b}
}

func newFunction(kind Type, id *IdentifierNode, params []*IdentifierNode, body *BlockStatementNode, strict bool, scope Scope) Function {
	required(kind, "body", body)
	for _, param := range params {
		required(kind, "param", param)
	}
	if params == nil {
		params = []*IdentifierNode{}
	}
	return Function{
		Scope:    scope,
		ID:       id,
		Params:   params,
		Body:     body,
		Strict:   strict,
		Defaults: []Expression{},
	}
}

// NewFunctionDeclaration builds a FunctionDeclaration.
func NewFunctionDeclaration(b Base, id *IdentifierNode, params []*IdentifierNode, body *BlockStatementNode, strict bool, scope Scope) *FunctionDeclarationNode {
	required(FunctionDeclaration, "id", id)
	return &FunctionDeclarationNode{
		Base:     b,
		Function: newFunction(FunctionDeclaration, id, params, body, strict, scope),
	}
}

// NewFunctionExpression builds a FunctionExpression, id may be nil.
func NewFunctionExpression(b Base, id *IdentifierNode, params []*IdentifierNode, body *BlockStatementNode, strict bool, scope Scope) *FunctionExpressionNode {
	return &FunctionExpressionNode{
		Base:     b,
		Function: newFunction(FunctionExpression, id, params, body, strict, scope),
	}
}

// NewVariableDeclaration builds a var statement with at least one declarator.
func NewVariableDeclaration(b Base, declarations []*VariableDeclaratorNode) *VariableDeclarationNode {
	if len(declarations) == 0 {
		panic(invariantf("%s: no declarators", VariableDeclaration))
	}
	for _, d := range declarations {
		required(VariableDeclaration, "declarator", d)
	}
	return &VariableDeclarationNode{Base: b, Declarations: declarations, Kind: "var"}
}

// NewVariableDeclarator builds a VariableDeclarator, init may be nil.
func NewVariableDeclarator(b Base, id *IdentifierNode, init Expression) *VariableDeclaratorNode {
	required(VariableDeclarator, "id", id)
	if IsNil(init) {
		init = nil
	}
	return &VariableDeclaratorNode{Base: b, ID: id, Init: init}
}

// NewIdentifier builds an Identifier.
func NewIdentifier(b Base, name string) *IdentifierNode {
	if name == "" {
		panic(invariantf("%s: empty name", Identifier))
	}
	return &IdentifierNode{Base: b, Name: name}
}

// NewLiteral builds a Literal. The value must be nil, a bool, a float64, a
// string or a *RegExp.
func NewLiteral(b Base, value interface{}, raw string) *LiteralNode {
	switch v := value.(type) {
	case nil, bool, float64, string:
	case *RegExp:
		if v == nil {
			panic(invariantf("%s: nil regular expression", Literal))
		}
	default:
		panic(invariantf("%s: invalid value of type %T", Literal, value))
	}
	return &LiteralNode{Base: b, Value: value, Raw: raw}
}

// NewThis builds a ThisExpression.
func NewThis(b Base) *ThisExpressionNode {
	return &ThisExpressionNode{Base: b}
}

// NewArray builds an ArrayExpression.
func NewArray(b Base, elements []Expression) *ArrayExpressionNode {
	requiredAll(ArrayExpression, "element", expressions(elements)...)
	if elements == nil {
		elements = []Expression{}
	}
	return &ArrayExpressionNode{Base: b, Elements: elements}
}

// NewObject builds an ObjectExpression.
func NewObject(b Base, properties []*PropertyNode) *ObjectExpressionNode {
	for _, p := range properties {
		required(ObjectExpression, "property", p)
	}
	if properties == nil {
		properties = []*PropertyNode{}
	}
	return &ObjectExpressionNode{Base: b, Properties: properties}
}

// NewProperty builds a Property; kind is init, get or set.
func NewProperty(b Base, kind string, key PropertyKey, value Expression) *PropertyNode {
	k, err := ParsePropertyKind(kind)
	if err != nil {
		panic(err)
	}
	required(Property, "key", key)
	required(Property, "value", value)
	if k != PropertyInit {
		if _, ok := value.(*FunctionExpressionNode); !ok {
			panic(invariantf("%s: %s accessor value is %s", Property, k, value.Type()))
		}
	}
	return &PropertyNode{Base: b, Key: key, Value: value, Kind: k}
}

// NewSequence builds a SequenceExpression of at least two expressions.
func NewSequence(b Base, es []Expression) *SequenceExpressionNode {
	if len(es) < 2 {
		panic(invariantf("%s: %d expressions", SequenceExpression, len(es)))
	}
	requiredAll(SequenceExpression, "expression", expressions(es)...)
	return &SequenceExpressionNode{Base: b, Expressions: es}
}

// NewUnary builds a prefix operation. The update operators ++ and -- yield a
// prefix UpdateExpression, the others a UnaryExpression.
func NewUnary(b Base, op string, argument Expression) Expression {
	u, err := ParseUnaryOperator(op)
	if err != nil {
		panic(err)
	}
	required(UnaryExpression, "argument", argument)
	if u.IsUpdate() {
		return &UpdateExpressionNode{Base: b, Operator: u, Argument: argument, Prefix: true}
	}
	return &UnaryExpressionNode{Base: b, Operator: u, Prefix: true, Argument: argument}
}

// NewPostfix builds a postfix UpdateExpression, op must be ++ or --.
func NewPostfix(b Base, op string, argument Expression) *UpdateExpressionNode {
	u, err := ParseUnaryOperator(op)
	if err != nil {
		panic(err)
	}
	if !u.IsUpdate() {
		panic(invariantf("%s: invalid postfix operator %q", UpdateExpression, op))
	}
	required(UpdateExpression, "argument", argument)
	return &UpdateExpressionNode{Base: b, Operator: u, Argument: argument}
}

// NewBinary builds a binary operation. The operators && and || yield a
// LogicalExpression, the others a BinaryExpression.
func NewBinary(b Base, op string, left, right Expression) Expression {
	required(BinaryExpression, "left", left)
	required(BinaryExpression, "right", right)
	if l, err := ParseLogicalOperator(op); err == nil {
		return &LogicalExpressionNode{Base: b, Operator: l, Left: left, Right: right}
	}
	bin, err := ParseBinaryOperator(op)
	if err != nil {
		panic(err)
	}
	return &BinaryExpressionNode{Base: b, Operator: bin, Left: left, Right: right}
}

// NewAssignment builds an AssignmentExpression.
func NewAssignment(b Base, op string, left, right Expression) *AssignmentExpressionNode {
	a, err := ParseAssignmentOperator(op)
	if err != nil {
		panic(err)
	}
	required(AssignmentExpression, "left", left)
	required(AssignmentExpression, "right", right)
	return &AssignmentExpressionNode{Base: b, Operator: a, Left: left, Right: right}
}

// NewConditional builds a ConditionalExpression.
func NewConditional(b Base, test, consequent, alternate Expression) *ConditionalExpressionNode {
	required(ConditionalExpression, "test", test)
	required(ConditionalExpression, "consequent", consequent)
	required(ConditionalExpression, "alternate", alternate)
	return &ConditionalExpressionNode{Base: b, Test: test, Consequent: consequent, Alternate: alternate}
}

// NewNew builds a NewExpression.
func NewNew(b Base, callee Expression, args []Expression) *NewExpressionNode {
	required(NewExpression, "callee", callee)
	requiredAll(NewExpression, "argument", expressions(args)...)
	if args == nil {
		args = []Expression{}
	}
	return &NewExpressionNode{Base: b, Callee: callee, Arguments: args}
}

// NewCall builds a CallExpression.
func NewCall(b Base, callee Expression, args []Expression) *CallExpressionNode {
	required(CallExpression, "callee", callee)
	requiredAll(CallExpression, "argument", expressions(args)...)
	if args == nil {
		args = []Expression{}
	}
	return &CallExpressionNode{Base: b, Callee: callee, Arguments: args}
}

// NewMember builds a MemberExpression; the accessor is '.' or '['.
func NewMember(b Base, accessor rune, object, property Expression) *MemberExpressionNode {
	required(MemberExpression, "object", object)
	required(MemberExpression, "property", property)
	var computed bool
	switch accessor {
	case '.':
		if _, ok := property.(*IdentifierNode); !ok {
			panic(invariantf("%s: non-computed property is %s", MemberExpression, property.Type()))
		}
	case '[':
		computed = true
	default:
		panic(invariantf("%s: invalid accessor %q", MemberExpression, accessor))
	}
	return &MemberExpressionNode{Base: b, Object: object, Property: property, Computed: computed}
}

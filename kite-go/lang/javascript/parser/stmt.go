package parser

import (
	"github.com/kiteco/esparse/kite-go/lang/javascript/ast"
	"github.com/kiteco/esparse/kite-go/lang/javascript/scanner"
)

// parseStatementItem parses one element of a statement list. In tolerant
// mode an error in the statement is recorded, the parser skips to the next
// statement and nil is returned.
func (p *parser) parseStatementItem(nested bool) (stmt ast.Statement) {
	begin := p.word.Begin
	saved := p.state
	vars := len(p.state.scope.VariableDeclarations)
	funcs := len(p.state.scope.FunctionDeclarations)
	defer func() {
		if ex := recover(); ex != nil {
			p.recoverStmt(ex, begin, saved, vars, funcs, nested)
			stmt = nil
		}
	}()

	return p.parseStatement()
}

// parseStatementList parses statements up to a closing brace or the end of input.
func (p *parser) parseStatementList(body []ast.Statement, stop ...scanner.Token) []ast.Statement {
	stop = append(stop, scanner.Rbrace, scanner.EOF)
	for !p.at(stop...) {
		if stmt := p.parseStatementItem(true); stmt != nil {
			body = append(body, stmt)
		}
	}
	return body
}

// parseDirectivePrologue parses the string literal statements that start a
// program or function body. A "use strict" directive switches to strict mode.
func (p *parser) parseDirectivePrologue(nested bool) []ast.Statement {
	if p.opts.Trace {
		defer un(trace(p, "DirectivePrologue"))
	}

	var body []ast.Statement
	var firstOctal *scanner.Word
	for p.at(scanner.String) {
		w := p.word
		stmt := p.parseStatementItem(nested)
		if stmt == nil {
			break
		}
		body = append(body, stmt)

		es, ok := stmt.(*ast.ExpressionStatementNode)
		if !ok {
			break
		}
		if lit, ok := es.Expression.(*ast.LiteralNode); !ok || lit.Span() != w.Range() {
			break
		}

		if w.Literal[1:len(w.Literal)-1] == "use strict" {
			p.state.strict = true
			if firstOctal != nil {
				p.tolerate(firstOctal.Begin, StrictOctalLiteral)
			}
		} else if firstOctal == nil && w.Octal {
			firstOctal = w
		}
	}
	return body
}

// Parse a statement
func (p *parser) parseStatement() ast.Statement {
	if p.opts.Trace {
		defer un(trace(p, "Statement"))
	}

	pending := p.pending
	p.pending = nil

	switch p.word.Token {
	case scanner.EOF:
		p.unexpected(p.word)
	case scanner.Semicolon:
		w := p.word
		p.next()
		return ast.NewEmpty(p.base(w))
	case scanner.Lbrace:
		return p.parseBlock()
	case scanner.Var:
		return p.parseVariableStmt()
	case scanner.If:
		return p.parseIfStmt()
	case scanner.Do:
		return p.parseDoWhileStmt(pending)
	case scanner.While:
		return p.parseWhileStmt(pending)
	case scanner.For:
		return p.parseForStmt(pending)
	case scanner.Continue:
		return p.parseContinueStmt()
	case scanner.Break:
		return p.parseBreakStmt()
	case scanner.Return:
		return p.parseReturnStmt()
	case scanner.With:
		return p.parseWithStmt()
	case scanner.Switch:
		return p.parseSwitchStmt()
	case scanner.Throw:
		return p.parseThrowStmt()
	case scanner.Try:
		return p.parseTryStmt()
	case scanner.Debugger:
		w := p.word
		p.next()
		p.consumeSemicolon()
		return ast.NewDebugger(p.base(w))
	case scanner.Function:
		return p.parseFunctionDeclaration()
	}
	return p.parseExpressionOrLabeledStmt(pending)
}

// Parse an expression statement, or a labeled statement if the expression
// is a lone identifier followed by a colon.
func (p *parser) parseExpressionOrLabeledStmt(pending []string) ast.Statement {
	if p.opts.Trace {
		defer un(trace(p, "ExpressionStmt"))
	}

	begin := p.word
	expr := p.parseExpression()

	if id, ok := expr.(*ast.IdentifierNode); ok && begin.Token == scanner.Ident && p.at(scanner.Colon) {
		p.next()
		if _, dup := p.state.labels[id.Name]; dup {
			p.error(begin.Begin, Redeclaration, "Label", id.Name)
		}

		outer := p.state.labels
		p.state.labels = withLabel(outer, id.Name)
		p.pending = append(pending, id.Name)
		body := p.parseStatement()
		p.state.labels = outer
		return ast.NewLabeled(p.base(begin), id, body)
	}

	p.consumeSemicolon()
	return ast.NewExpressionStatement(p.base(begin), expr)
}

// Parse a block statement
func (p *parser) parseBlock() *ast.BlockStatementNode {
	if p.opts.Trace {
		defer un(trace(p, "Block"))
	}

	begin := p.expect(scanner.Lbrace)
	body := p.parseStatementList(nil)
	p.expect(scanner.Rbrace)
	return ast.NewBlock(p.base(begin), body)
}

// Parse a single name of a var statement with its optional initializer
func (p *parser) parseVariableDeclarator() *ast.VariableDeclaratorNode {
	if p.opts.Trace {
		defer un(trace(p, "VariableDeclarator"))
	}

	begin := p.word
	id := p.parseIdentifier()
	if p.state.strict && scanner.IsRestricted(id.Name) {
		p.tolerate(begin.Begin, StrictVarName)
	}

	var init ast.Expression
	if p.has(scanner.Assign) {
		init = p.parseAssignmentExpr()
	}
	return ast.NewVariableDeclarator(p.base(begin), id, init)
}

func (p *parser) parseVariableDeclarators() []*ast.VariableDeclaratorNode {
	decls := []*ast.VariableDeclaratorNode{p.parseVariableDeclarator()}
	for p.has(scanner.Comma) {
		decls = append(decls, p.parseVariableDeclarator())
	}
	return decls
}

// Parse a var statement, its declarations are hoisted to the enclosing scope
func (p *parser) parseVariableStmt() *ast.VariableDeclarationNode {
	if p.opts.Trace {
		defer un(trace(p, "VariableStmt"))
	}

	begin := p.expect(scanner.Var)
	decls := p.parseVariableDeclarators()
	p.consumeSemicolon()

	decl := ast.NewVariableDeclaration(p.base(begin), decls)
	p.state.scope.DeclareVariables(decl)
	return decl
}

// Parse an if statement
func (p *parser) parseIfStmt() *ast.IfStatementNode {
	if p.opts.Trace {
		defer un(trace(p, "IfStmt"))
	}

	begin := p.expect(scanner.If)
	p.expect(scanner.Lparen)
	test := p.parseExpression()
	p.expect(scanner.Rparen)

	consequent := p.parseStatement()
	var alternate ast.Statement
	if p.has(scanner.Else) {
		alternate = p.parseStatement()
	}
	return ast.NewIf(p.base(begin), test, consequent, alternate)
}

// parseLoopBody parses the body of an iteration statement. The labels of
// the loop become valid continue targets.
func (p *parser) parseLoopBody(labels []string) ast.Statement {
	for _, name := range labels {
		p.state.labels[name] = true
	}

	outer := p.state.inIteration
	p.state.inIteration = true
	body := p.parseStatement()
	p.state.inIteration = outer
	return body
}

// Parse a do-while statement, the final semicolon is optional
func (p *parser) parseDoWhileStmt(labels []string) *ast.DoWhileStatementNode {
	if p.opts.Trace {
		defer un(trace(p, "DoWhileStmt"))
	}

	begin := p.expect(scanner.Do)
	body := p.parseLoopBody(labels)
	p.expect(scanner.While)
	p.expect(scanner.Lparen)
	test := p.parseExpression()
	p.expect(scanner.Rparen)
	p.has(scanner.Semicolon)
	return ast.NewDoWhile(p.base(begin), body, test)
}

// Parse a while statement
func (p *parser) parseWhileStmt(labels []string) *ast.WhileStatementNode {
	if p.opts.Trace {
		defer un(trace(p, "WhileStmt"))
	}

	begin := p.expect(scanner.While)
	p.expect(scanner.Lparen)
	test := p.parseExpression()
	p.expect(scanner.Rparen)
	body := p.parseLoopBody(labels)
	return ast.NewWhile(p.base(begin), test, body)
}

// Parse a for or for-in statement. The in operator is disabled in the
// initializer so that it can introduce the for-in form.
func (p *parser) parseForStmt(labels []string) ast.Statement {
	if p.opts.Trace {
		defer un(trace(p, "ForStmt"))
	}

	begin := p.expect(scanner.For)
	p.expect(scanner.Lparen)

	var init, left ast.Node
	if !p.at(scanner.Semicolon) {
		prev := p.setAllowIn(false)
		if p.at(scanner.Var) {
			vbegin := p.expect(scanner.Var)
			decls := p.parseVariableDeclarators()
			decl := ast.NewVariableDeclaration(p.base(vbegin), decls)
			p.state.scope.DeclareVariables(decl)
			p.setAllowIn(prev)

			init = decl
			if len(decls) == 1 && p.at(scanner.In) {
				left = decl
			}
		} else {
			expr := p.parseExpression()
			p.setAllowIn(prev)

			init = expr
			if p.at(scanner.In) {
				if !ast.IsLeftHandSide(expr) {
					p.error(p.word.Begin, InvalidLHSInForIn)
				}
				left = expr
			}
		}
	}

	if left != nil {
		p.expect(scanner.In)
		right := p.parseExpression()
		p.expect(scanner.Rparen)
		body := p.parseLoopBody(labels)
		return ast.NewForIn(p.base(begin), left, right, body)
	}

	var test, update ast.Expression
	p.expect(scanner.Semicolon)
	if !p.at(scanner.Semicolon) {
		test = p.parseExpression()
	}
	p.expect(scanner.Semicolon)
	if !p.at(scanner.Rparen) {
		update = p.parseExpression()
	}
	p.expect(scanner.Rparen)
	body := p.parseLoopBody(labels)
	return ast.NewFor(p.base(begin), init, test, update, body)
}

// parseJumpLabel parses the optional label of a break or continue, it must
// be on the same line as the keyword and name an enclosing label.
func (p *parser) parseJumpLabel() (*ast.IdentifierNode, bool) {
	if !p.at(scanner.Ident) || p.word.NewlineBefore {
		return nil, false
	}

	w := p.word
	label := p.parseIdentifier()
	iteration, ok := p.state.labels[label.Name]
	if !ok {
		p.error(w.Begin, UnknownLabel, label.Name)
	}
	return label, iteration
}

// Parse a continue statement
func (p *parser) parseContinueStmt() *ast.ContinueStatementNode {
	if p.opts.Trace {
		defer un(trace(p, "ContinueStmt"))
	}

	begin := p.expect(scanner.Continue)
	label, iteration := p.parseJumpLabel()
	if label != nil && !iteration {
		p.error(begin.Begin, IllegalContinue)
	}
	p.consumeSemicolon()
	if label == nil && !p.state.inIteration {
		p.error(begin.Begin, IllegalContinue)
	}
	return ast.NewContinue(p.base(begin), label)
}

// Parse a break statement
func (p *parser) parseBreakStmt() *ast.BreakStatementNode {
	if p.opts.Trace {
		defer un(trace(p, "BreakStmt"))
	}

	begin := p.expect(scanner.Break)
	label, _ := p.parseJumpLabel()
	p.consumeSemicolon()
	if label == nil && !p.state.inIteration && !p.state.inSwitch {
		p.error(begin.Begin, IllegalBreak)
	}
	return ast.NewBreak(p.base(begin), label)
}

// Parse a return statement; a line break after the keyword ends the statement
func (p *parser) parseReturnStmt() *ast.ReturnStatementNode {
	if p.opts.Trace {
		defer un(trace(p, "ReturnStmt"))
	}

	begin := p.expect(scanner.Return)
	if !p.state.inFunctionBody {
		p.tolerate(begin.Begin, IllegalReturn)
	}

	var arg ast.Expression
	if !p.at(scanner.Semicolon, scanner.Rbrace, scanner.EOF) && !p.word.NewlineBefore {
		arg = p.parseExpression()
	}
	p.consumeSemicolon()
	return ast.NewReturn(p.base(begin), arg)
}

// Parse a with statement
func (p *parser) parseWithStmt() *ast.WithStatementNode {
	if p.opts.Trace {
		defer un(trace(p, "WithStmt"))
	}

	begin := p.expect(scanner.With)
	if p.state.strict {
		p.tolerate(begin.Begin, StrictModeWith)
	}
	p.expect(scanner.Lparen)
	object := p.parseExpression()
	p.expect(scanner.Rparen)
	body := p.parseStatement()
	return ast.NewWith(p.base(begin), object, body)
}

// Parse a case or default clause
func (p *parser) parseSwitchCase() *ast.SwitchCaseNode {
	if p.opts.Trace {
		defer un(trace(p, "SwitchCase"))
	}

	begin := p.word
	var test ast.Expression
	if !p.has(scanner.Default) {
		p.expect(scanner.Case)
		test = p.parseExpression()
	}
	p.expect(scanner.Colon)

	consequent := p.parseStatementList(nil, scanner.Case, scanner.Default)
	return ast.NewSwitchCase(p.base(begin), test, consequent)
}

// Parse a switch statement, it may have a single default clause
func (p *parser) parseSwitchStmt() *ast.SwitchStatementNode {
	if p.opts.Trace {
		defer un(trace(p, "SwitchStmt"))
	}

	begin := p.expect(scanner.Switch)
	p.expect(scanner.Lparen)
	discriminant := p.parseExpression()
	p.expect(scanner.Rparen)
	p.expect(scanner.Lbrace)

	outer := p.state.inSwitch
	p.state.inSwitch = true

	var cases []*ast.SwitchCaseNode
	var sawDefault bool
	for !p.at(scanner.Rbrace) {
		w := p.word
		c := p.parseSwitchCase()
		if c.Test == nil {
			if sawDefault {
				p.error(w.Begin, MultipleDefaultsInSwitch)
			}
			sawDefault = true
		}
		cases = append(cases, c)
	}

	p.state.inSwitch = outer
	p.expect(scanner.Rbrace)
	return ast.NewSwitch(p.base(begin), discriminant, cases)
}

// Parse a throw statement, its argument must start on the same line
func (p *parser) parseThrowStmt() *ast.ThrowStatementNode {
	if p.opts.Trace {
		defer un(trace(p, "ThrowStmt"))
	}

	begin := p.expect(scanner.Throw)
	if p.word.NewlineBefore {
		p.error(p.prevWord.End, NewlineAfterThrow)
	}
	arg := p.parseExpression()
	p.consumeSemicolon()
	return ast.NewThrow(p.base(begin), arg)
}

// Parse a catch clause
func (p *parser) parseCatchClause() *ast.CatchClauseNode {
	if p.opts.Trace {
		defer un(trace(p, "CatchClause"))
	}

	begin := p.expect(scanner.Catch)
	p.expect(scanner.Lparen)
	if p.at(scanner.Rparen) {
		p.unexpected(p.word)
	}

	w := p.word
	param := p.parseIdentifier()
	if p.state.strict && scanner.IsRestricted(param.Name) {
		p.tolerate(w.Begin, StrictCatchVariable)
	}
	p.expect(scanner.Rparen)
	body := p.parseBlock()
	return ast.NewCatchClause(p.base(begin), param, body)
}

// Parse a try statement with a catch clause, a finally block or both
func (p *parser) parseTryStmt() *ast.TryStatementNode {
	if p.opts.Trace {
		defer un(trace(p, "TryStmt"))
	}

	begin := p.expect(scanner.Try)
	block := p.parseBlock()

	var handler *ast.CatchClauseNode
	if p.at(scanner.Catch) {
		handler = p.parseCatchClause()
	}
	var finalizer *ast.BlockStatementNode
	if p.has(scanner.Finally) {
		finalizer = p.parseBlock()
	}
	if handler == nil && finalizer == nil {
		p.error(p.word.Begin, NoCatchOrFinally)
	}
	return ast.NewTry(p.base(begin), block, handler, finalizer)
}

// restriction is a name that is only an error once the function turns out
// to be strict, which is not known before its body is parsed.
type restriction struct {
	word *scanner.Word
	msg  string
}

// function holds the parts of a function declaration or expression
type function struct {
	id     *ast.IdentifierNode
	params []*ast.IdentifierNode
	body   *ast.BlockStatementNode
	strict bool
	scope  ast.Scope
}

// checkFunctionName validates the name of a function. In sloppy mode code
// the check is deferred until the strictness of the body is known.
func (p *parser) checkFunctionName(w *scanner.Word, first *restriction) {
	switch {
	case p.state.strict:
		if scanner.IsRestricted(w.Value) {
			p.tolerate(w.Begin, StrictFunctionName)
		}
	case scanner.IsRestricted(w.Value):
		*first = restriction{w, StrictFunctionName}
	case scanner.IsStrictReserved(w.Value):
		*first = restriction{w, StrictReservedWord}
	}
}

// Parse a formal parameter list
func (p *parser) parseParams(first, stricted *restriction) []*ast.IdentifierNode {
	if p.opts.Trace {
		defer un(trace(p, "Params"))
	}

	p.expect(scanner.Lparen)
	var params []*ast.IdentifierNode
	seen := make(map[string]bool)
	for !p.at(scanner.Rparen) {
		w := p.word
		param := p.parseIdentifier()

		switch {
		case p.state.strict:
			if scanner.IsRestricted(param.Name) {
				*stricted = restriction{w, StrictParamName}
			}
			if seen[param.Name] {
				*stricted = restriction{w, StrictParamDupe}
			}
		case first.word != nil:
		case scanner.IsRestricted(param.Name):
			*first = restriction{w, StrictParamName}
		case scanner.IsStrictReserved(param.Name):
			*first = restriction{w, StrictReservedWord}
		case seen[param.Name]:
			*first = restriction{w, StrictParamDupe}
		}
		seen[param.Name] = true
		params = append(params, param)

		if p.at(scanner.Rparen) {
			break
		}
		p.expect(scanner.Comma)
	}
	p.expect(scanner.Rparen)
	return params
}

// parseFunctionBody parses the braced body of a function in a fresh
// context. It leaves the parser in that context so that the caller can
// check the strictness of the body before restoring its own.
func (p *parser) parseFunctionBody() (*ast.BlockStatementNode, ast.Scope) {
	if p.opts.Trace {
		defer un(trace(p, "FunctionBody"))
	}
	defer p.setAllowIn(p.setAllowIn(true))

	p.state = state{
		strict:         p.state.strict,
		inFunctionBody: true,
		labels:         map[string]bool{},
		scope:          &ast.Scope{},
	}

	begin := p.expect(scanner.Lbrace)
	body := p.parseDirectivePrologue(true)
	body = p.parseStatementList(body)
	p.expect(scanner.Rbrace)
	return ast.NewBlock(p.base(begin), body), *p.state.scope
}

// parseFunction parses what follows the function keyword, the name is
// optional for function expressions.
func (p *parser) parseFunction(named bool) function {
	var fn function
	var first, stricted restriction

	if named || !p.at(scanner.Lparen) {
		w := p.word
		fn.id = p.parseIdentifier()
		p.checkFunctionName(w, &first)
	}
	fn.params = p.parseParams(&first, &stricted)

	saved := p.state
	fn.body, fn.scope = p.parseFunctionBody()
	fn.strict = p.state.strict
	if fn.strict && first.word != nil {
		p.error(first.word.Begin, first.msg)
	}
	if fn.strict && stricted.word != nil {
		p.tolerate(stricted.word.Begin, stricted.msg)
	}
	p.state = saved
	return fn
}

// Parse a function declaration, it is hoisted to the enclosing scope
func (p *parser) parseFunctionDeclaration() *ast.FunctionDeclarationNode {
	if p.opts.Trace {
		defer un(trace(p, "FunctionDeclaration"))
	}

	begin := p.expect(scanner.Function)
	fn := p.parseFunction(true)
	decl := ast.NewFunctionDeclaration(p.base(begin), fn.id, fn.params, fn.body, fn.strict, fn.scope)
	p.state.scope.DeclareFunction(decl)
	return decl
}

// Parse a function expression, the name is optional
func (p *parser) parseFunctionExpr() *ast.FunctionExpressionNode {
	if p.opts.Trace {
		defer un(trace(p, "FunctionExpr"))
	}

	begin := p.expect(scanner.Function)
	fn := p.parseFunction(false)
	return ast.NewFunctionExpression(p.base(begin), fn.id, fn.params, fn.body, fn.strict, fn.scope)
}

// Parse a complete source text
func (p *parser) parseProgram() *ast.ProgramNode {
	if p.opts.Trace {
		defer un(trace(p, "Program"))
	}

	begin := p.word
	body := p.parseDirectivePrologue(false)
	for !p.at(scanner.EOF) {
		if stmt := p.parseStatementItem(false); stmt != nil {
			body = append(body, stmt)
		}
	}
	return ast.NewProgram(p.base(begin), body, p.state.strict, *p.state.scope)
}

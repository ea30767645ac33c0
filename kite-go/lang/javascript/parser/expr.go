package parser

import (
	"github.com/kiteco/esparse/kite-go/lang/javascript/ast"
	"github.com/kiteco/esparse/kite-go/lang/javascript/scanner"
)

// setAllowIn sets whether the in operator is a binary operator and returns
// the previous setting. Usage pattern: defer p.setAllowIn(p.setAllowIn(true))
func (p *parser) setAllowIn(allow bool) bool {
	prev := p.allowIn
	p.allowIn = allow
	return prev
}

func isRestricted(e ast.Expression) bool {
	id, ok := e.(*ast.IdentifierNode)
	return ok && scanner.IsRestricted(id.Name)
}

// Parse an identifier in a binding or reference position
func (p *parser) parseIdentifier() *ast.IdentifierNode {
	if p.opts.Trace {
		defer un(trace(p, "Identifier"))
	}

	w := p.word
	if w.Token != scanner.Ident || (p.state.strict && scanner.IsStrictReserved(w.Value)) {
		p.unexpected(w)
	}
	p.next()
	return ast.NewIdentifier(p.base(w), w.Value)
}

// Parse the name after a dot, any identifier name including reserved words
func (p *parser) parseNonComputedProperty() *ast.IdentifierNode {
	if p.opts.Trace {
		defer un(trace(p, "NonComputedProperty"))
	}

	w := p.word
	if !w.Token.IsIdentifierName() {
		p.unexpected(w)
	}
	p.next()
	return ast.NewIdentifier(p.base(w), w.Value)
}

// Parse a numeric or string literal
func (p *parser) parseLiteral() *ast.LiteralNode {
	if p.opts.Trace {
		defer un(trace(p, "Literal"))
	}

	w := p.word
	if w.Octal {
		if w.Token == scanner.Numeric && !p.opts.LegacyOctal {
			p.error(w.Begin, UnexpectedToken, "ILLEGAL")
		}
		if p.state.strict {
			p.tolerate(w.Begin, StrictOctalLiteral)
		}
	}
	p.next()

	var value interface{}
	switch w.Token {
	case scanner.Numeric:
		value = w.Number
	case scanner.String:
		value = w.Value
	case scanner.RegExp:
		pattern, flags := w.RegExpParts()
		value = &ast.RegExp{Pattern: pattern, Flags: flags}
	case scanner.True:
		value = true
	case scanner.False:
		value = false
	}
	return ast.NewLiteral(p.base(w), value, w.Literal)
}

// Parse an array literal; elisions are not supported, a trailing comma is
func (p *parser) parseArrayInitialiser() *ast.ArrayExpressionNode {
	if p.opts.Trace {
		defer un(trace(p, "ArrayInitialiser"))
	}
	defer p.setAllowIn(p.setAllowIn(true))

	begin := p.expect(scanner.Lbrack)
	var elements []ast.Expression
	for !p.at(scanner.Rbrack) {
		if p.at(scanner.Comma) {
			p.unexpected(p.word)
		}
		elements = append(elements, p.parseAssignmentExpr())
		if !p.at(scanner.Rbrack) {
			p.expect(scanner.Comma)
		}
	}
	p.expect(scanner.Rbrack)
	return ast.NewArray(p.base(begin), elements)
}

// Parse the body of a getter or setter, the function starts at the opening
// parenthesis of its parameters
func (p *parser) parsePropertyFunction(begin *scanner.Word, params []*ast.IdentifierNode, first *scanner.Word) *ast.FunctionExpressionNode {
	if p.opts.Trace {
		defer un(trace(p, "PropertyFunction"))
	}

	saved := p.state
	body, scope := p.parseFunctionBody()
	if first != nil && p.state.strict && scanner.IsRestricted(params[0].Name) {
		p.tolerate(first.Begin, StrictParamName)
	}
	strict := p.state.strict
	p.state = saved
	return ast.NewFunctionExpression(p.base(begin), nil, params, body, strict, scope)
}

// Parse the key of an object literal property
func (p *parser) parseObjectPropertyKey() ast.PropertyKey {
	if p.opts.Trace {
		defer un(trace(p, "ObjectPropertyKey"))
	}

	w := p.word
	switch {
	case w.Token == scanner.String || w.Token == scanner.Numeric:
		return p.parseLiteral()
	case w.Token.IsIdentifierName():
		p.next()
		return ast.NewIdentifier(p.base(w), w.Value)
	}
	p.unexpected(w)
	return nil
}

// Parse an object literal property: a data property or a get/set accessor
func (p *parser) parseObjectProperty() *ast.PropertyNode {
	if p.opts.Trace {
		defer un(trace(p, "ObjectProperty"))
	}

	begin := p.word
	key := p.parseObjectPropertyKey()
	if begin.Token == scanner.Ident && !p.at(scanner.Colon) {
		switch begin.Value {
		case "get":
			key = p.parseObjectPropertyKey()
			lparen := p.expect(scanner.Lparen)
			p.expect(scanner.Rparen)
			value := p.parsePropertyFunction(lparen, nil, nil)
			return ast.NewProperty(p.base(begin), "get", key, value)
		case "set":
			key = p.parseObjectPropertyKey()
			lparen := p.expect(scanner.Lparen)
			var params []*ast.IdentifierNode
			var first *scanner.Word
			if p.at(scanner.Ident) {
				first = p.word
				params = append(params, p.parseIdentifier())
				p.expect(scanner.Rparen)
			} else {
				w := p.word
				p.expect(scanner.Rparen)
				p.tolerate(w.Begin, UnexpectedToken, w.Literal)
			}
			value := p.parsePropertyFunction(lparen, params, first)
			return ast.NewProperty(p.base(begin), "set", key, value)
		}
	}

	p.expect(scanner.Colon)
	value := p.parseAssignmentExpr()
	return ast.NewProperty(p.base(begin), "init", key, value)
}

const (
	dataProperty = 1 << iota
	getProperty
	setProperty
)

var propertyKinds = map[ast.PropertyKind]int{
	ast.PropertyInit: dataProperty,
	ast.PropertyGet:  getProperty,
	ast.PropertySet:  setProperty,
}

// Parse an object literal, checking for conflicting property definitions
func (p *parser) parseObjectInitialiser() *ast.ObjectExpressionNode {
	if p.opts.Trace {
		defer un(trace(p, "ObjectInitialiser"))
	}
	defer p.setAllowIn(p.setAllowIn(true))

	begin := p.expect(scanner.Lbrace)
	var properties []*ast.PropertyNode
	seen := make(map[string]int)
	for !p.at(scanner.Rbrace) {
		prop := p.parseObjectProperty()
		name := ast.PropertyName(prop.Key)
		kind := propertyKinds[prop.Kind]
		offs := p.prevWord.End

		if prev, ok := seen[name]; ok {
			switch {
			case prev == dataProperty && kind == dataProperty:
				if p.state.strict {
					p.tolerate(offs, StrictDuplicateProperty)
				}
			case prev == dataProperty || kind == dataProperty:
				p.tolerate(offs, AccessorDataProperty)
			case prev&kind != 0:
				p.tolerate(offs, AccessorGetSet)
			}
			seen[name] = prev | kind
		} else {
			seen[name] = kind
		}

		properties = append(properties, prop)
		if !p.at(scanner.Rbrace) {
			p.expect(scanner.Comma)
		}
	}
	p.expect(scanner.Rbrace)
	return ast.NewObject(p.base(begin), properties)
}

// Parse a parenthesized expression, the parentheses are not part of the node
func (p *parser) parseGroupExpr() ast.Expression {
	if p.opts.Trace {
		defer un(trace(p, "GroupExpr"))
	}
	defer p.setAllowIn(p.setAllowIn(true))

	p.expect(scanner.Lparen)
	expr := p.parseExpression()
	p.expect(scanner.Rparen)
	return expr
}

// Parse a primary expression
func (p *parser) parsePrimaryExpr() ast.Expression {
	if p.opts.Trace {
		defer un(trace(p, "PrimaryExpr"))
	}

	if p.at(scanner.Quo, scanner.QuoAssign) {
		p.rescanRegExp()
	}

	w := p.word
	switch w.Token {
	case scanner.Ident:
		return p.parseIdentifier()
	case scanner.Numeric, scanner.String, scanner.RegExp, scanner.True, scanner.False:
		return p.parseLiteral()
	case scanner.Null:
		p.next()
		return ast.NewLiteral(p.base(w), nil, w.Literal)
	case scanner.This:
		p.next()
		return ast.NewThis(p.base(w))
	case scanner.Function:
		return p.parseFunctionExpr()
	case scanner.Lbrack:
		return p.parseArrayInitialiser()
	case scanner.Lbrace:
		return p.parseObjectInitialiser()
	case scanner.Lparen:
		return p.parseGroupExpr()
	}
	p.unexpected(w)
	return nil
}

// Parse a parenthesized argument list
func (p *parser) parseArguments() []ast.Expression {
	if p.opts.Trace {
		defer un(trace(p, "Arguments"))
	}
	defer p.setAllowIn(p.setAllowIn(true))

	p.expect(scanner.Lparen)
	var args []ast.Expression
	if !p.at(scanner.Rparen) {
		for {
			args = append(args, p.parseAssignmentExpr())
			if !p.has(scanner.Comma) {
				break
			}
		}
	}
	p.expect(scanner.Rparen)
	return args
}

// Parse a computed member access after its object
func (p *parser) parseIndexExprAfterValue(begin *scanner.Word, object ast.Expression) *ast.MemberExpressionNode {
	if p.opts.Trace {
		defer un(trace(p, "IndexExpr"))
	}
	defer p.setAllowIn(p.setAllowIn(true))

	p.expect(scanner.Lbrack)
	property := p.parseExpression()
	p.expect(scanner.Rbrack)
	return ast.NewMember(p.base(begin), '[', object, property)
}

// Parse a dotted member access after its object
func (p *parser) parseAttributeExprAfterValue(begin *scanner.Word, object ast.Expression) *ast.MemberExpressionNode {
	if p.opts.Trace {
		defer un(trace(p, "AttributeExpr"))
	}

	p.expect(scanner.Period)
	property := p.parseNonComputedProperty()
	return ast.NewMember(p.base(begin), '.', object, property)
}

// Parse new with its callee and optional arguments
func (p *parser) parseNewExpr() *ast.NewExpressionNode {
	if p.opts.Trace {
		defer un(trace(p, "NewExpr"))
	}

	begin := p.expect(scanner.New)
	callee := p.parseLeftHandSideExpr(false)
	var args []ast.Expression
	if p.at(scanner.Lparen) {
		args = p.parseArguments()
	}
	return ast.NewNew(p.base(begin), callee, args)
}

// Parse a member expression, followed by calls if allowCall is set. Without
// calls it is the callee of a new expression, so that "new a.b()" applies
// new to a.b.
func (p *parser) parseLeftHandSideExpr(allowCall bool) ast.Expression {
	if p.opts.Trace {
		defer un(trace(p, "LeftHandSideExpr"))
	}

	begin := p.word
	var expr ast.Expression
	if p.at(scanner.New) {
		expr = p.parseNewExpr()
	} else {
		expr = p.parsePrimaryExpr()
	}

	for {
		switch {
		case p.at(scanner.Period):
			expr = p.parseAttributeExprAfterValue(begin, expr)
		case p.at(scanner.Lbrack):
			expr = p.parseIndexExprAfterValue(begin, expr)
		case allowCall && p.at(scanner.Lparen):
			args := p.parseArguments()
			expr = ast.NewCall(p.base(begin), expr, args)
		default:
			return expr
		}
	}
}

// Parse a left-hand side expression with an optional postfix ++ or --
func (p *parser) parsePostfixExpr() ast.Expression {
	if p.opts.Trace {
		defer un(trace(p, "PostfixExpr"))
	}

	begin := p.word
	expr := p.parseLeftHandSideExpr(true)
	p.reinterpretDivision()

	if p.at(scanner.Inc, scanner.Dec) && !p.word.NewlineBefore {
		if p.state.strict && isRestricted(expr) {
			p.tolerate(p.word.Begin, StrictLHSPostfix)
		}
		if !ast.IsLeftHandSide(expr) {
			p.tolerate(p.prevWord.End, InvalidLHSInAssignment)
		}
		op := p.word
		p.next()
		expr = ast.NewPostfix(p.base(begin), op.Literal, expr)
		p.reinterpretDivision()
	}
	return expr
}

// Parse a prefix operation
func (p *parser) parseUnaryExpr() ast.Expression {
	if p.opts.Trace {
		defer un(trace(p, "UnaryExpr"))
	}

	op := p.word
	switch op.Token {
	case scanner.Inc, scanner.Dec:
		p.next()
		arg := p.parseUnaryExpr()
		if p.state.strict && isRestricted(arg) {
			p.tolerate(op.Begin, StrictLHSPrefix)
		}
		if !ast.IsLeftHandSide(arg) {
			p.tolerate(p.prevWord.End, InvalidLHSInAssignment)
		}
		return ast.NewUnary(p.base(op), op.Literal, arg)

	case scanner.Add, scanner.Sub, scanner.BitNot, scanner.Not,
		scanner.Delete, scanner.Void, scanner.TypeOf:
		p.next()
		arg := p.parseUnaryExpr()
		if op.Token == scanner.Delete && p.state.strict {
			if _, ok := arg.(*ast.IdentifierNode); ok {
				p.tolerate(op.Begin, StrictDelete)
			}
		}
		return ast.NewUnary(p.base(op), op.Literal, arg)
	}
	return p.parsePostfixExpr()
}

// Parse binary operations by precedence climbing; operators of equal
// precedence associate to the left.
func (p *parser) parseBinaryExpr(minPrec int) ast.Expression {
	if p.opts.Trace {
		defer un(trace(p, "BinaryExpr"))
	}

	begin := p.word
	left := p.parseUnaryExpr()
	for {
		prec := p.word.Token.Precedence(p.allowIn)
		if prec == 0 || prec < minPrec {
			return left
		}
		op := p.word
		p.next()
		right := p.parseBinaryExpr(prec + 1)
		left = ast.NewBinary(p.base(begin), op.Literal, left, right)
	}
}

// Parse a conditional expression
func (p *parser) parseConditionalExpr() ast.Expression {
	if p.opts.Trace {
		defer un(trace(p, "ConditionalExpr"))
	}

	begin := p.word
	expr := p.parseBinaryExpr(1)
	if !p.has(scanner.Question) {
		return expr
	}

	prev := p.setAllowIn(true)
	consequent := p.parseAssignmentExpr()
	p.setAllowIn(prev)

	p.expect(scanner.Colon)
	alternate := p.parseAssignmentExpr()
	return ast.NewConditional(p.base(begin), expr, consequent, alternate)
}

// Parse an assignment, or a conditional expression
func (p *parser) parseAssignmentExpr() ast.Expression {
	if p.opts.Trace {
		defer un(trace(p, "AssignmentExpr"))
	}

	begin := p.word
	expr := p.parseConditionalExpr()
	if !p.word.Token.IsAssign() {
		return expr
	}

	if !ast.IsLeftHandSide(expr) {
		p.tolerate(p.prevWord.End, InvalidLHSInAssignment)
	}
	if p.state.strict && isRestricted(expr) {
		p.tolerate(begin.Begin, StrictLHSAssignment)
	}

	op := p.word
	p.next()
	right := p.parseAssignmentExpr()
	return ast.NewAssignment(p.base(begin), op.Literal, expr, right)
}

// Parse an expression, a sequence if it contains top level commas
func (p *parser) parseExpression() ast.Expression {
	if p.opts.Trace {
		defer un(trace(p, "Expression"))
	}

	begin := p.word
	expr := p.parseAssignmentExpr()
	if !p.at(scanner.Comma) {
		return expr
	}

	exprs := []ast.Expression{expr}
	for p.has(scanner.Comma) {
		exprs = append(exprs, p.parseAssignmentExpr())
	}
	return ast.NewSequence(p.base(begin), exprs)
}

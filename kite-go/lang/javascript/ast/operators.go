package ast

import "fmt"

// InvariantError is raised (as a panic) when the tree is built with
// arguments no parser should ever produce, e.g an unknown operator symbol.
// It signals a bug rather than malformed input.
type InvariantError string

// Error implements error.
func (e InvariantError) Error() string {
	return "ast invariant violated: " + string(e)
}

func invariantf(format string, args ...interface{}) InvariantError {
	return InvariantError(fmt.Sprintf(format, args...))
}

// BinaryOperator is the operator of a BinaryExpression.
type BinaryOperator int

// List of binary operators.
const (
	Plus BinaryOperator = iota
	Minus
	Times
	Divide
	Modulo
	Equal
	NotEqual
	Greater
	GreaterOrEqual
	Less
	LessOrEqual
	StrictlyEqual
	StrictlyNotEqual
	BitwiseAnd
	BitwiseOr
	BitwiseXOr
	LeftShift
	RightShift
	UnsignedRightShift
	InstanceOf
	In
)

var binaryOperators = [...]string{
	Plus:               "+",
	Minus:              "-",
	Times:              "*",
	Divide:             "/",
	Modulo:             "%",
	Equal:              "==",
	NotEqual:           "!=",
	Greater:            ">",
	GreaterOrEqual:     ">=",
	Less:               "<",
	LessOrEqual:        "<=",
	StrictlyEqual:      "===",
	StrictlyNotEqual:   "!==",
	BitwiseAnd:         "&",
	BitwiseOr:          "|",
	BitwiseXOr:         "^",
	LeftShift:          "<<",
	RightShift:         ">>",
	UnsignedRightShift: ">>>",
	InstanceOf:         "instanceof",
	In:                 "in",
}

// String returns the source text of the operator.
func (op BinaryOperator) String() string {
	if op >= 0 && int(op) < len(binaryOperators) {
		return binaryOperators[op]
	}
	return fmt.Sprintf("BinaryOperator(%d)", int(op))
}

// LogicalOperator is the operator of a LogicalExpression.
type LogicalOperator int

// List of logical operators.
const (
	LogicalAnd LogicalOperator = iota
	LogicalOr
)

var logicalOperators = [...]string{
	LogicalAnd: "&&",
	LogicalOr:  "||",
}

// String returns the source text of the operator.
func (op LogicalOperator) String() string {
	if op >= 0 && int(op) < len(logicalOperators) {
		return logicalOperators[op]
	}
	return fmt.Sprintf("LogicalOperator(%d)", int(op))
}

// AssignmentOperator is the operator of an AssignmentExpression.
type AssignmentOperator int

// List of assignment operators.
const (
	Assign AssignmentOperator = iota
	PlusAssign
	MinusAssign
	TimesAssign
	DivideAssign
	ModuloAssign
	BitwiseAndAssign
	BitwiseOrAssign
	BitwiseXOrAssign
	LeftShiftAssign
	RightShiftAssign
	UnsignedRightShiftAssign
)

var assignmentOperators = [...]string{
	Assign:                   "=",
	PlusAssign:               "+=",
	MinusAssign:              "-=",
	TimesAssign:              "*=",
	DivideAssign:             "/=",
	ModuloAssign:             "%=",
	BitwiseAndAssign:         "&=",
	BitwiseOrAssign:          "|=",
	BitwiseXOrAssign:         "^=",
	LeftShiftAssign:          "<<=",
	RightShiftAssign:         ">>=",
	UnsignedRightShiftAssign: ">>>=",
}

// String returns the source text of the operator.
func (op AssignmentOperator) String() string {
	if op >= 0 && int(op) < len(assignmentOperators) {
		return assignmentOperators[op]
	}
	return fmt.Sprintf("AssignmentOperator(%d)", int(op))
}

// UnaryOperator is the operator of a UnaryExpression or an UpdateExpression.
type UnaryOperator int

// List of unary operators.
const (
	UnaryPlus UnaryOperator = iota
	UnaryMinus
	BitwiseNot
	LogicalNot
	Delete
	Void
	TypeOf
	Increment
	Decrement
)

var unaryOperators = [...]string{
	UnaryPlus:  "+",
	UnaryMinus: "-",
	BitwiseNot: "~",
	LogicalNot: "!",
	Delete:     "delete",
	Void:       "void",
	TypeOf:     "typeof",
	Increment:  "++",
	Decrement:  "--",
}

// String returns the source text of the operator.
func (op UnaryOperator) String() string {
	if op >= 0 && int(op) < len(unaryOperators) {
		return unaryOperators[op]
	}
	return fmt.Sprintf("UnaryOperator(%d)", int(op))
}

// IsUpdate returns true for ++ and --.
func (op UnaryOperator) IsUpdate() bool {
	return op == Increment || op == Decrement
}

// PropertyKind distinguishes data properties from accessors.
type PropertyKind int

// List of property kinds.
const (
	PropertyInit PropertyKind = iota
	PropertyGet
	PropertySet
)

var propertyKinds = [...]string{
	PropertyInit: "init",
	PropertyGet:  "get",
	PropertySet:  "set",
}

// String returns init, get or set.
func (k PropertyKind) String() string {
	if k >= 0 && int(k) < len(propertyKinds) {
		return propertyKinds[k]
	}
	return fmt.Sprintf("PropertyKind(%d)", int(k))
}

var (
	binaryBySymbol     = make(map[string]BinaryOperator, len(binaryOperators))
	logicalBySymbol    = make(map[string]LogicalOperator, len(logicalOperators))
	assignmentBySymbol = make(map[string]AssignmentOperator, len(assignmentOperators))
	unaryBySymbol      = make(map[string]UnaryOperator, len(unaryOperators))
	kindBySymbol       = make(map[string]PropertyKind, len(propertyKinds))
)

func init() {
	for op, s := range binaryOperators {
		binaryBySymbol[s] = BinaryOperator(op)
	}
	for op, s := range logicalOperators {
		logicalBySymbol[s] = LogicalOperator(op)
	}
	for op, s := range assignmentOperators {
		assignmentBySymbol[s] = AssignmentOperator(op)
	}
	for op, s := range unaryOperators {
		unaryBySymbol[s] = UnaryOperator(op)
	}
	for k, s := range propertyKinds {
		kindBySymbol[s] = PropertyKind(k)
	}
}

// ParseBinaryOperator maps the source text of an operator to its value.
func ParseBinaryOperator(s string) (BinaryOperator, error) {
	if op, ok := binaryBySymbol[s]; ok {
		return op, nil
	}
	return 0, invariantf("invalid binary operator %q", s)
}

// ParseLogicalOperator maps the source text of an operator to its value.
func ParseLogicalOperator(s string) (LogicalOperator, error) {
	if op, ok := logicalBySymbol[s]; ok {
		return op, nil
	}
	return 0, invariantf("invalid logical operator %q", s)
}

// ParseAssignmentOperator maps the source text of an operator to its value.
func ParseAssignmentOperator(s string) (AssignmentOperator, error) {
	if op, ok := assignmentBySymbol[s]; ok {
		return op, nil
	}
	return 0, invariantf("invalid assignment operator %q", s)
}

// ParseUnaryOperator maps the source text of an operator to its value.
func ParseUnaryOperator(s string) (UnaryOperator, error) {
	if op, ok := unaryBySymbol[s]; ok {
		return op, nil
	}
	return 0, invariantf("invalid unary operator %q", s)
}

// ParsePropertyKind maps init, get or set to its value.
func ParsePropertyKind(s string) (PropertyKind, error) {
	if k, ok := kindBySymbol[s]; ok {
		return k, nil
	}
	return 0, invariantf("invalid property kind %q", s)
}

// IsLogicalOperator returns true for && and ||.
func IsLogicalOperator(s string) bool {
	_, ok := logicalBySymbol[s]
	return ok
}

package parser

// Error messages are identical to V8's so that parse errors can be compared
// with other engines. Messages with verbs are formatted with the offending
// token or name.
const (
	UnexpectedToken          = "Unexpected token %s"
	UnexpectedNumber         = "Unexpected number"
	UnexpectedString         = "Unexpected string"
	UnexpectedIdentifier     = "Unexpected identifier"
	UnexpectedReserved       = "Unexpected reserved word"
	UnexpectedEOS            = "Unexpected end of input"
	NewlineAfterThrow        = "Illegal newline after throw"
	InvalidRegExp            = "Invalid regular expression"
	UnterminatedRegExp       = "Invalid regular expression: missing /"
	InvalidLHSInAssignment   = "Invalid left-hand side in assignment"
	InvalidLHSInForIn        = "Invalid left-hand side in for-in"
	MultipleDefaultsInSwitch = "More than one default clause in switch statement"
	NoCatchOrFinally         = "Missing catch or finally after try"
	UnknownLabel             = "Undefined label \"%s\""
	Redeclaration            = "%s \"%s\" has already been declared"
	IllegalContinue          = "Illegal continue statement"
	IllegalBreak             = "Illegal break statement"
	IllegalReturn            = "Illegal return statement"
	StrictModeWith           = "Strict mode code may not include a with statement"
	StrictCatchVariable      = "Catch variable may not be eval or arguments in strict mode"
	StrictVarName            = "Variable name may not be eval or arguments in strict mode"
	StrictParamName          = "Parameter name eval or arguments is not allowed in strict mode"
	StrictParamDupe          = "Strict mode function may not have duplicate parameter names"
	StrictFunctionName       = "Function name may not be eval or arguments in strict mode"
	StrictOctalLiteral       = "Octal literals are not allowed in strict mode."
	StrictDelete             = "Delete of an unqualified identifier in strict mode."
	StrictDuplicateProperty  = "Duplicate data property in object literal not allowed in strict mode"
	AccessorDataProperty     = "Object literal may not have data and accessor property with the same name"
	AccessorGetSet           = "Object literal may not have multiple get/set accessors with the same name"
	StrictLHSAssignment      = "Assignment to eval or arguments is not allowed in strict mode"
	StrictLHSPostfix         = "Postfix increment/decrement may not have eval or arguments operand in strict mode"
	StrictLHSPrefix          = "Prefix increment/decrement may not have eval or arguments operand in strict mode"
	StrictReservedWord       = "Use of future reserved word in strict mode"
)

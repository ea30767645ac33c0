package parser

import (
	"fmt"
	"io/ioutil"
	"strings"
	"testing"

	"github.com/kiteco/esparse/kite-go/lang/javascript/ast"
	perrors "github.com/kiteco/esparse/kite-go/lang/javascript/parser/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"
)

type errorCase struct {
	Src           string `yaml:"src"`
	Message       string `yaml:"message"`
	Index         int    `yaml:"index"`
	Line          int    `yaml:"line"`
	Column        int    `yaml:"column"`
	NoLegacyOctal bool   `yaml:"no_legacy_octal"`
}

func loadErrorCases(t *testing.T) []errorCase {
	buf, err := ioutil.ReadFile("testdata/errors.yaml")
	require.NoError(t, err)

	var cases []errorCase
	require.NoError(t, yaml.Unmarshal(buf, &cases))
	require.NotEmpty(t, cases)
	return cases
}

func TestErrorCatalog(t *testing.T) {
	for _, tc := range loadErrorCases(t) {
		t.Run(tc.Src, func(t *testing.T) {
			o := opts
			o.LegacyOctal = !tc.NoLegacyOctal

			prog, err := Parse([]byte(tc.Src), o)
			require.Error(t, err)
			assert.Nil(t, prog)

			e, ok := err.(*Error)
			require.True(t, ok, "expected *Error, got %T", err)

			line := tc.Line
			if line == 0 {
				line = 1
			}
			assert.Equal(t, tc.Message, e.Description)
			assert.Equal(t, fmt.Sprintf("Line %d: %s", line, tc.Message), e.Message)
			assert.Equal(t, tc.Index, e.Index)
			assert.Equal(t, line, e.LineNumber)
			assert.Equal(t, tc.Column, e.Column)
			assert.Equal(t, strings.Split(tc.Src, "\n")[line-1], e.Source)
		})
	}
}

func TestTolerantRecovery(t *testing.T) {
	o := opts
	o.Tolerant = true

	prog, err := Parse([]byte(`a = ; b = 1;`), o)
	require.NoError(t, err)
	require.Len(t, prog.Errors, 1)
	assert.Equal(t, "Line 1: Unexpected token ;", prog.Errors[0].Error())
	assertAST(t, `
Program
	ExpressionStatement
		AssignmentExpression[=]
			Identifier[b]
			Literal[1]
`, prog)
}

func TestTolerantStrictErrors(t *testing.T) {
	o := opts
	o.Tolerant = true

	src := `"use strict"; with (a) {} eval = 1;`
	prog, err := Parse([]byte(src), o)
	require.NoError(t, err)
	require.Len(t, prog.Errors, 2)

	var idxs []int
	for _, err := range prog.Errors {
		idxs = append(idxs, err.(*Error).Index)
	}
	assert.Equal(t, []int{14, 26}, idxs)
	assert.Len(t, prog.Body, 3)
	assert.True(t, prog.Strict)
}

func TestTolerantNestedFunction(t *testing.T) {
	o := opts
	o.Tolerant = true

	src := `function f() { var a = ; return 1 } g()`
	prog, err := Parse([]byte(src), o)
	require.NoError(t, err)
	require.Len(t, prog.Errors, 1)

	assertAST(t, `
Program
	FunctionDeclaration
		Identifier[f]
		BlockStatement
			ReturnStatement
				Literal[1]
	ExpressionStatement
		CallExpression
			Identifier[g]
`, prog)
	assert.Equal(t, []string{"f"}, prog.FunctionNames())
	assert.Empty(t, prog.Body[0].(*ast.FunctionDeclarationNode).VariableNames())
}

func TestTolerantStrayBrace(t *testing.T) {
	o := opts
	o.Tolerant = true

	prog, err := Parse([]byte("}\na"), o)
	require.NoError(t, err)
	require.Len(t, prog.Errors, 1)
	assert.Equal(t, 0, prog.Errors[0].(*Error).Index)
	assert.Len(t, prog.Body, 1)
}

func TestFailFastReturnsFirstError(t *testing.T) {
	_, err := Parse([]byte(`"use strict"; with (a) {} eval = 1;`), opts)
	require.Error(t, err)
	e, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, 14, e.Index)
}

func TestMaxLines(t *testing.T) {
	o := opts
	o.MaxLines = 2

	prog, err := Parse([]byte("a\nb\nc"), o)
	require.Error(t, err)
	assert.Equal(t, perrors.TooManyLines, perrors.ErrorReason(err))
	require.NotNil(t, prog)
	assert.Len(t, prog.Body, 2)
}

func TestInvalidEncoding(t *testing.T) {
	prog, err := Parse([]byte("a = \"\xff\""), opts)
	require.Error(t, err)
	assert.Nil(t, prog)
	assert.Equal(t, perrors.InvalidEncoding, perrors.ErrorReason(err))

	_, err = ParseExpression([]byte("\xff"), opts)
	assert.Equal(t, perrors.InvalidEncoding, perrors.ErrorReason(err))
}

var errInvariant = ast.InvariantError("broken invariant")

func TestRecoverInternal(t *testing.T) {
	f := func() (err error) {
		defer recoverInternal(&err)
		panic(errInvariant)
	}
	err := f()
	require.Error(t, err)
	assert.Equal(t, perrors.Internal, perrors.ErrorReason(err))
	assert.Contains(t, err.Error(), "broken")

	assert.Panics(t, func() {
		var err error
		defer recoverInternal(&err)
		panic("other")
	})
}

package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperators_RoundTrip(t *testing.T) {
	for op := range binaryOperators {
		parsed, err := ParseBinaryOperator(BinaryOperator(op).String())
		require.NoError(t, err)
		assert.Equal(t, BinaryOperator(op), parsed)
	}
	for op := range assignmentOperators {
		parsed, err := ParseAssignmentOperator(AssignmentOperator(op).String())
		require.NoError(t, err)
		assert.Equal(t, AssignmentOperator(op), parsed)
	}
	for op := range unaryOperators {
		parsed, err := ParseUnaryOperator(UnaryOperator(op).String())
		require.NoError(t, err)
		assert.Equal(t, UnaryOperator(op), parsed)
	}
	for op := range logicalOperators {
		parsed, err := ParseLogicalOperator(LogicalOperator(op).String())
		require.NoError(t, err)
		assert.Equal(t, LogicalOperator(op), parsed)
	}
}

func TestOperators_Invalid(t *testing.T) {
	_, err := ParseBinaryOperator("**")
	require.Error(t, err)
	assert.IsType(t, InvariantError(""), err)

	_, err = ParseBinaryOperator("&&")
	assert.Error(t, err, "logical operators are not binary operators")

	_, err = ParseAssignmentOperator("==")
	assert.Error(t, err)

	_, err = ParseUnaryOperator("new")
	assert.Error(t, err)

	_, err = ParsePropertyKind("value")
	assert.Error(t, err)

	assert.Equal(t, "BinaryOperator(99)", BinaryOperator(99).String())
}

func TestPropertyKind(t *testing.T) {
	assert.Equal(t, "init", PropertyInit.String())
	assert.Equal(t, "get", PropertyGet.String())
	assert.Equal(t, "set", PropertySet.String())
}

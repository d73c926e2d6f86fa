package gen

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kapok-dev/kapok"
)

func TestShapeError(t *testing.T) {
	err := NewShapeError("com.example.S", "object", "object singletons cannot be faked")
	assert.EqualError(t, err,
		"kapok: invalid contract shape for com.example.S (object): object singletons cannot be faked")
	assert.ErrorIs(t, err, ErrInvalidShape)
	assert.NotErrorIs(t, err, ErrEmptyContract)

	d := err.Diagnostic()
	assert.Equal(t, kapok.SeverityError, d.Severity)
	assert.Equal(t, "com.example.S", d.Contract)
	require.Len(t, d.Fixes, 1)
}

func TestShapeError_Partial(t *testing.T) {
	assert.EqualError(t, &ShapeError{}, "kapok: invalid contract shape")
	assert.EqualError(t, &ShapeError{Contract: "S"}, "kapok: invalid contract shape for S")
}

func TestEmptyContractError(t *testing.T) {
	err := NewEmptyContractError("com.example.Marker")
	assert.EqualError(t, err, "kapok: empty contract com.example.Marker: no members to fake")
	assert.ErrorIs(t, err, ErrEmptyContract)

	warn := err.Diagnostic(kapok.SeverityWarning)
	assert.Equal(t, kapok.SeverityWarning, warn.Severity)
	hard := err.Diagnostic(kapok.SeverityError)
	assert.Equal(t, kapok.SeverityError, hard.Severity)
}

func TestSignatureError(t *testing.T) {
	err := NewSignatureError("com.example.S", "deep", "type nesting depth 13 exceeds the supported maximum of 12")
	assert.EqualError(t, err,
		"kapok: unsupported member signature on com.example.S member deep: type nesting depth 13 exceeds the supported maximum of 12")
	assert.ErrorIs(t, err, ErrUnsupportedSignature)

	d := err.Diagnostic()
	assert.Equal(t, "com.example.S", d.Contract)
	assert.Equal(t, "deep", d.Member)
}

func TestDependencyError(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		err := &DependencyError{
			Contract: "com.example.A",
			Missing:  "com.example.B",
			Chain:    []string{"com.example.A", "com.example.B"},
		}
		assert.ErrorIs(t, err, ErrMissingDependency)
		assert.NotErrorIs(t, err, ErrCircularDependency)
		assert.Contains(t, err.Error(), "com.example.A -> com.example.B")
	})

	t.Run("circular", func(t *testing.T) {
		err := &DependencyError{
			Contract: "com.example.A",
			Circular: true,
			Chain:    []string{"com.example.A", "com.example.B", "com.example.A"},
		}
		assert.ErrorIs(t, err, ErrCircularDependency)
		assert.NotErrorIs(t, err, ErrMissingDependency)
		assert.Contains(t, err.Error(), "circular dependency")

		d := err.Diagnostic()
		require.Len(t, d.Fixes, 1)
		assert.Contains(t, d.Fixes[0].Message, "break the cycle")
	})
}

func TestErrorWrapping(t *testing.T) {
	wrapped := fmt.Errorf("target jvm: %w", NewShapeError("S", "object", "msg"))
	assert.True(t, IsShapeError(wrapped))
	assert.ErrorIs(t, wrapped, ErrInvalidShape)
}

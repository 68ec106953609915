package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_IsMatchesCodeAndMessage(t *testing.T) {
	wrapped := fmt.Errorf("load invoice: %w", ErrRecordNotFound)
	assert.True(t, stderrors.Is(wrapped, ErrRecordNotFound))
	assert.False(t, stderrors.Is(wrapped, ErrAccessDenied))

	cause := stderrors.New("connection reset")
	err := Wrap(CodeInternalError, "query invoices failed", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "[500] query invoices failed: connection reset", err.Error())
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeForbidden, CodeOf(ErrAccessDenied))
	assert.Equal(t, CodeInternalError, CodeOf(stderrors.New("boom")))
	assert.True(t, IsNotFound(NotFound("project")))
	assert.Equal(t, "project not found", NotFound("project").Message)
	assert.False(t, IsNotFound(ErrInvalidToken))
}

package response

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBusinessError_Defaults(t *testing.T) {
	err := NewBusinessError()
	assert.Equal(t, Fail, err.Code)
	assert.Equal(t, "business error", err.Msg)
	assert.Nil(t, err.Err)
}

func TestBusinessError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewBusinessError(
		WithErrorCode(NotFound),
		WithErrorMessage("用户不存在"),
		WithError(cause),
	)

	assert.Equal(t, "用户不存在: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestHasCode(t *testing.T) {
	wrapped := fmt.Errorf("toggle follow: %w", NewBusinessError(WithErrorCode(InvalidParameter)))

	assert.True(t, HasCode(wrapped, InvalidParameter))
	assert.False(t, HasCode(wrapped, NotFound))
	assert.False(t, HasCode(errors.New("plain"), InvalidParameter))
	assert.False(t, HasCode(nil, Fail))
}

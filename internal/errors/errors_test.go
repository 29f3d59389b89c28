package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCode(t *testing.T) {
	base := ConfigInvalid("PROVIDER_TIMEOUT must be positive")
	err := Wrap(base, "failed to load configuration")

	assert.True(t, IsAppError(err))
	assert.Equal(t, CodeConfigInvalid, GetCode(err))
	assert.Contains(t, err.Error(), "failed to load configuration")
	assert.Contains(t, err.Error(), "PROVIDER_TIMEOUT must be positive")
}

func TestWrapForeignError(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrapf(cause, "calling %s", "Groq")

	assert.Equal(t, CodeInternalError, GetCode(err))
	assert.True(t, Is(err, cause))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ignored"))
	assert.Nil(t, WithCode(CodeInvalidInput, nil))
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeParseFailed, stderrors.New("bad json"))
	assert.Equal(t, CodeParseFailed, GetCode(err))
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
}

func TestProviderFailedUnwraps(t *testing.T) {
	cause := stderrors.New("401 unauthorized")
	err := ProviderFailed("OpenAI", cause)

	assert.Equal(t, CodeProviderFailed, err.Code)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "OpenAI provider failed: 401 unauthorized", err.Error())
}

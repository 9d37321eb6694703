package ai

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvocationError(t *testing.T) {
	upstream := fmt.Errorf("%w: status 429", ErrQuotaExceeded)
	err := error(&InvocationError{Err: upstream})

	assert.Equal(t, upstream.Error(), err.Error())
	assert.True(t, errors.Is(err, ErrQuotaExceeded))

	var ie *InvocationError
	assert.True(t, errors.As(fmt.Errorf("analyze: %w", err), &ie))

	assert.Equal(t, "model invocation failed", (&InvocationError{}).Error())
}

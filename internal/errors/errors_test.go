package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCode(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk full")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: CodeUnknown},
		{name: "plain error", err: cause, want: CodeUnknown},
		{name: "database", err: NewDatabaseError("insert ad", cause), want: CodeDatabase},
		{name: "validation", err: NewValidationError("empty location", nil), want: CodeValidation},
		{name: "precondition", err: NewPreconditionError("location required"), want: CodePrecondition},
		{name: "delivery", err: NewDeliveryError("send photo", cause), want: CodeDelivery},
		{name: "config", err: NewConfigError("missing token", nil), want: CodeConfig},
		{name: "wrapped", err: fmt.Errorf("publish: %w", NewDeliveryError("broadcast", cause)), want: CodeDelivery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Code(tt.err))
		})
	}
}

func TestErrorMessageAndUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	err := NewDatabaseError("failed to save session", cause)

	assert.Equal(t, "failed to save session: connection reset", err.Error())
	require.ErrorIs(t, err, cause)

	bare := NewPreconditionError("location required")
	assert.Equal(t, "location required", bare.Error())
	assert.NoError(t, errors.Unwrap(bare))
}

func TestHasCode(t *testing.T) {
	t.Parallel()

	assert.True(t, HasCode(NewValidationError("bad", nil), CodeValidation))
	assert.False(t, HasCode(NewValidationError("bad", nil), CodeDatabase))
	assert.False(t, HasCode(nil, CodeValidation))
}

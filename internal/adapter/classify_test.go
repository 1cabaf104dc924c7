package adapter

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorClass
	}{
		{name: "nil", err: nil, want: ClassTerminal},
		{name: "unknown", err: errors.New("boom"), want: ClassTerminal},
		{name: "timeout", err: fmt.Errorf("submit: %w", ErrTimeout), want: ClassRetryable},
		{name: "network", err: fmt.Errorf("submit: %w", ErrNetwork), want: ClassRetryable},
		{name: "deadline", err: context.DeadlineExceeded, want: ClassRetryable},
		{name: "5xx sentinel", err: fmt.Errorf("%w: oops", ErrInternalServerError), want: ClassRetryable},
		{name: "gateway timeout", err: ErrGatewayTimeout, want: ClassRetryable},
		{name: "5xx status", err: &StatusError{Code: 507}, want: ClassRetryable},
		{name: "4xx status", err: &StatusError{Code: 418}, want: ClassTerminal},
		{name: "bad request", err: ErrBadRequest, want: ClassTerminal},
		{name: "decode", err: ErrDecodeResponse, want: ClassTerminal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestErrorClass_String(t *testing.T) {
	assert.Equal(t, "retryable", ClassRetryable.String())
	assert.Equal(t, "terminal", ClassTerminal.String())
	assert.Equal(t, "unknown", ErrorClass(42).String())
}

func TestMapTransportError(t *testing.T) {
	assert.Nil(t, mapTransportError(nil))
	assert.ErrorIs(t, mapTransportError(context.DeadlineExceeded), ErrTimeout)
	assert.ErrorIs(t, mapTransportError(errors.New("connection refused")), ErrNetwork)
}

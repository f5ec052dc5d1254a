package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuntimeError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *RuntimeError
		want string
	}{
		{
			"code and message",
			&RuntimeError{Code: ErrCodeCapabilityOrder, Message: "bad order"},
			"CAPABILITY_ORDER: bad order",
		},
		{
			"with method",
			&RuntimeError{Code: ErrCodeBadArgument, Message: "missing", Method: "$set"},
			"BAD_ARGUMENT: missing (method=$set)",
		},
		{
			"with component",
			&RuntimeError{Code: ErrCodeNotConstructed, Message: "degraded", Component: "<App>"},
			"NOT_CONSTRUCTED: degraded (component=<App>)",
		},
		{
			"with both",
			&RuntimeError{Code: ErrCodeUnknownMethod, Message: "no such method", Component: "<App>", Method: "$x"},
			"UNKNOWN_METHOD: no such method (component=<App>, method=$x)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestIsErrorHelpers_Wrapped(t *testing.T) {
	err := fmt.Errorf("context: %w", &RuntimeError{Code: ErrCodeMethodExists})

	assert.True(t, IsMethodExists(err))
	assert.False(t, IsUnknownMethod(err))
	assert.False(t, IsMethodExists(fmt.Errorf("plain")))
	assert.False(t, IsReadOnly(nil))
}

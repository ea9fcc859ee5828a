package generation_test

import (
	"testing"

	"github.com/phrazzld/cunningbot/internal/generation"
	"github.com/stretchr/testify/assert"
)

func TestRequestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     generation.Request
		wantErr error
	}{
		{name: "valid", req: generation.Request{Message: "hello"}},
		{name: "empty", req: generation.Request{}, wantErr: generation.ErrEmptyMessage},
		{name: "whitespace", req: generation.Request{Message: "  \n\t"}, wantErr: generation.ErrEmptyMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, tt.req.Validate(), tt.wantErr)
		})
	}
}

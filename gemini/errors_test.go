package gemini_test

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/fwojciec/stratchat"
	"github.com/fwojciec/stratchat/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestClassifyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), stratchat.ETIMEOUT},
		{"deadline status", errors.New("rpc error: DEADLINE_EXCEEDED"), stratchat.ETIMEOUT},
		{"invalid key message", genai.APIError{Code: 400, Status: "INVALID_ARGUMENT", Message: "API key not valid. Please pass a valid API key."}, stratchat.EUNAUTHORIZED},
		{"forbidden", genai.APIError{Code: 403, Message: "denied"}, stratchat.EUNAUTHORIZED},
		{"quota status", genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED", Message: "Resource has been exhausted"}, stratchat.EQUOTA},
		{"quota message", errors.New("Quota exceeded for requests"), stratchat.EQUOTA},
		{"safety", errors.New("candidate blocked: SAFETY"), stratchat.ESAFETY},
		{"unavailable", genai.APIError{Code: 503, Message: "overloaded"}, stratchat.EUNAVAILABLE},
		{"network", &url.Error{Op: "Post", URL: "https://example.com", Err: errors.New("connection refused")}, stratchat.EUNAVAILABLE},
		{"unknown", errors.New("boom"), stratchat.EINTERNAL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := gemini.ClassifyError(tt.err)

			require.Error(t, err)
			assert.Equal(t, tt.want, stratchat.ErrorCode(err))
			assert.Equal(t, tt.err, errors.Unwrap(err))
		})
	}

	t.Run("nil", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, gemini.ClassifyError(nil))
	})

	t.Run("application errors pass through", func(t *testing.T) {
		t.Parallel()

		want := stratchat.Errorf(stratchat.EINVALID, "prompt required")

		assert.Same(t, want, gemini.ClassifyError(want))
	})
}

package stratchat_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/stratchat"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := stratchat.Errorf(stratchat.ENOTFOUND, "project %q not found", "PR-1")

	assert.Equal(t, stratchat.ENOTFOUND, stratchat.ErrorCode(err))
	assert.Equal(t, "project \"PR-1\" not found", stratchat.ErrorMessage(err))
}

func TestWrapError(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk on fire")
	err := fmt.Errorf("loading: %w", stratchat.WrapError(stratchat.EINVALID, cause, "bad data"))

	assert.Equal(t, stratchat.EINVALID, stratchat.ErrorCode(err))
	assert.Equal(t, "bad data", stratchat.ErrorMessage(err))
	assert.ErrorIs(t, err, cause)
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, stratchat.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, stratchat.ErrorMessage(nil))
}

func TestErrorCode_PlainError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, stratchat.EINTERNAL, stratchat.ErrorCode(err))
	assert.Equal(t, "Internal error", stratchat.ErrorMessage(err))
}

func TestFailureMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code string
		want string
	}{
		{stratchat.ETIMEOUT, stratchat.FailureTimeout},
		{stratchat.EUNAUTHORIZED, stratchat.FailureUnauthorized},
		{stratchat.EQUOTA, stratchat.FailureQuota},
		{stratchat.ESAFETY, stratchat.FailureSafety},
		{stratchat.EUNAVAILABLE, stratchat.FailureNetwork},
		{stratchat.EINTERNAL, stratchat.FailureGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, stratchat.FailureMessage(stratchat.Errorf(tt.code, "x")))
		})
	}

	t.Run("plain errors are generic", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, stratchat.FailureGeneric, stratchat.FailureMessage(errors.New("boom")))
	})
}

package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/stratchat"
	"github.com/fwojciec/stratchat/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCounter_CountTokens(t *testing.T) {
	t.Parallel()

	tc, err := gemini.NewTokenCounter("")
	require.NoError(t, err)

	var _ stratchat.TokenCounter = tc

	t.Run("counts tokens in Arabic text", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "ما هي رؤية التحول الرقمي؟")

		require.NoError(t, err)
		assert.Positive(t, count)
	})

	t.Run("empty string returns zero", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "")

		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("longer text returns more tokens", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		shortCount, err := tc.CountTokens(ctx, "رؤية")
		require.NoError(t, err)

		longCount, err := tc.CountTokens(ctx, "خدمات إسعافية موثوقة ومستدامة من خلال حلول رقمية متميزة وإبداعية لهيئة الهلال الأحمر السعودي.")
		require.NoError(t, err)

		assert.Greater(t, longCount, shortCount)
	})
}

func TestNewTokenCounter_UnknownModel(t *testing.T) {
	t.Parallel()

	_, err := gemini.NewTokenCounter("no-such-model")

	require.Error(t, err)
	assert.Equal(t, stratchat.ECONFIG, stratchat.ErrorCode(err))
}

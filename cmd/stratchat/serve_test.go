package main_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	main "github.com/fwojciec/stratchat/cmd/stratchat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("stops when the context is done", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    ctx,
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		}

		err := (&main.ServeCmd{Addr: "127.0.0.1:0"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "Listening on 127.0.0.1:")
	})

	t.Run("invalid address", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
		}

		err := (&main.ServeCmd{Addr: "127.0.0.1:99999"}).Run(deps)

		assert.Error(t, err)
	})
}

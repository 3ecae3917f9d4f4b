package main_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/fwojciec/stratchat"
	main "github.com/fwojciec/stratchat/cmd/stratchat"
	"github.com/fwojciec/stratchat/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answering(text string) *mock.Responder {
	return &mock.Responder{
		RespondFn: func(_ context.Context, _ stratchat.TurnRequest, w io.Writer) (*stratchat.Turn, error) {
			_, _ = io.WriteString(w, text)
			return &stratchat.Turn{Strategy: stratchat.StrategyContext, Text: text}, nil
		},
	}
}

func TestAskCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("streams the answer", func(t *testing.T) {
		t.Parallel()

		var got stratchat.TurnRequest
		responder := &mock.Responder{
			RespondFn: func(_ context.Context, req stratchat.TurnRequest, w io.Writer) (*stratchat.Turn, error) {
				got = req
				_, _ = io.WriteString(w, "جواب")
				return &stratchat.Turn{Text: "جواب"}, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Responder: responder,
		}

		err := (&main.AskCmd{Question: "سؤال"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "جواب\n", stdout.String())
		assert.Equal(t, "سؤال", got.Input)
		assert.Empty(t, got.History)
	})

	t.Run("renders the complete answer", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Responder: answering("**جواب**"),
			Renderer: &mock.Renderer{
				RenderFn: func(markdown string) (string, error) {
					return "<" + markdown + ">", nil
				},
			},
		}

		err := (&main.AskCmd{Question: "سؤال", Render: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "<**جواب**>", stdout.String())
	})

	t.Run("reports the failure category", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Responder: &mock.Responder{
				RespondFn: func(context.Context, stratchat.TurnRequest, io.Writer) (*stratchat.Turn, error) {
					return nil, stratchat.Errorf(stratchat.EQUOTA, "gemini: quota")
				},
			},
		}

		err := (&main.AskCmd{Question: "سؤال"}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), stratchat.FailureQuota)
	})

	t.Run("rejects a blank question", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    &bytes.Buffer{},
			Responder: &mock.Responder{},
		}

		err := (&main.AskCmd{Question: "  "}).Run(deps)

		assert.Equal(t, stratchat.EINVALID, stratchat.ErrorCode(err))
	})
}

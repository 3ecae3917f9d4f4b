package assistant_test

import (
	"context"
	"errors"
	"iter"
	"strings"
	"testing"

	"github.com/fwojciec/stratchat"
	"github.com/fwojciec/stratchat/assistant"
	"github.com/fwojciec/stratchat/knowledge"
	"github.com/fwojciec/stratchat/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder returns a generator that streams texts and records every request.
func recorder(texts ...string) (*mock.Generator, *[]stratchat.GenerateRequest) {
	var calls []stratchat.GenerateRequest
	gen := &mock.Generator{
		GenerateStreamFn: func(_ context.Context, req stratchat.GenerateRequest) iter.Seq2[stratchat.Chunk, error] {
			calls = append(calls, req)
			return mock.Stream(nil, texts...)
		},
	}
	return gen, &calls
}

func respond(t *testing.T, a *assistant.Assistant, input string) (*stratchat.Turn, string) {
	t.Helper()
	var out strings.Builder
	turn, err := a.Respond(context.Background(), stratchat.TurnRequest{Input: input}, &out)
	require.NoError(t, err)
	return turn, out.String()
}

func TestAssistant_RoadmapGate(t *testing.T) {
	t.Parallel()

	t.Run("off-roadmap project is refused without calling the model", func(t *testing.T) {
		t.Parallel()

		gen, calls := recorder("لا ينبغي")
		a := assistant.New(gen, loadFixture(t))

		turn, out := respond(t, a, "كيف يساهم مشروع نظام الأرشفة الإلكترونية في تحقيق رؤية المملكة 2030؟")

		assert.Empty(t, *calls)
		assert.True(t, turn.Refused())
		assert.False(t, turn.InHistory())
		assert.Contains(t, out, `المشروع "نظام الأرشفة الإلكترونية" معروف`)
		assert.Equal(t, out, turn.Text)
		assert.Empty(t, turn.Prompt)
	})

	t.Run("unknown project is refused without calling the model", func(t *testing.T) {
		t.Parallel()

		gen, calls := recorder("لا ينبغي")
		a := assistant.New(gen, loadFixture(t))

		turn, out := respond(t, a, "ما هي مواءمة مشروع المركبات الطائرة مع متطلبات الحكومة الرقمية؟")

		assert.Empty(t, *calls)
		assert.Equal(t, stratchat.IntentProjectDGA, turn.Intent)
		assert.Contains(t, out, `المشروع "المركبات الطائرة" غير معروف`)
	})

	t.Run("free text mention of an unscheduled project is refused", func(t *testing.T) {
		t.Parallel()

		k, err := knowledge.Build([]byte(`{"futureProjects":{"projects":[{"id":"PR-99","name":"مشروع تجريبي"}]},"roadmap":{"timeline":[]}}`))
		require.NoError(t, err)
		gen, calls := recorder("لا ينبغي")
		a := assistant.New(gen, k)

		turn, out := respond(t, a, "ما هي تفاصيل مشروع تجريبي؟")

		assert.Empty(t, *calls)
		assert.True(t, turn.Refused())
		assert.Contains(t, out, "غير مدرج ضمن خارطة طريق استراتيجية التحول الرقمي الحالية")
	})
}

func TestAssistant_Lookup(t *testing.T) {
	t.Parallel()

	t.Run("exact alias answers from its completion", func(t *testing.T) {
		t.Parallel()

		gen, calls := recorder("رؤيتنا رقمية رائدة")
		a := assistant.New(gen, loadFixture(t))

		turn, out := respond(t, a, "رؤية التحول الرقمي")

		require.Len(t, *calls, 1)
		req := (*calls)[0]
		assert.Equal(t, assistant.ContextPrompt("رؤية رقمية رائدة", "رؤية التحول الرقمي"), req.Prompt)
		assert.Equal(t, assistant.RAGInstruction, req.SystemInstruction)
		assert.Equal(t, assistant.Greeting(), req.History)
		assert.False(t, req.Search)
		assert.Equal(t, stratchat.StrategyContext, turn.Strategy)
		assert.Equal(t, req.Prompt, turn.Prompt)
		assert.Equal(t, "رؤيتنا رقمية رائدة", out)
	})

	t.Run("chunks are written in order and concatenated", func(t *testing.T) {
		t.Parallel()

		gen, _ := recorder("جز", "ء1", "جزء2")
		a := assistant.New(gen, loadFixture(t))

		turn, out := respond(t, a, "رؤية التحول الرقمي")

		assert.Equal(t, "جزء1جزء2", out)
		assert.Equal(t, "جزء1جزء2", turn.Text)
	})

	t.Run("history is passed through", func(t *testing.T) {
		t.Parallel()

		gen, calls := recorder("نعم")
		a := assistant.New(gen, loadFixture(t))
		history := []stratchat.Message{
			{Role: stratchat.RoleUser, Text: "سؤال سابق"},
			{Role: stratchat.RoleModel, Text: "جواب سابق"},
		}

		_, err := a.Respond(context.Background(), stratchat.TurnRequest{History: history, Input: "رسالة التحول الرقمي"}, &strings.Builder{})

		require.NoError(t, err)
		require.Len(t, *calls, 1)
		assert.Equal(t, history, (*calls)[0].History)
	})

	t.Run("no match falls back to general expertise", func(t *testing.T) {
		t.Parallel()

		gen, calls := recorder("إجابة عامة")
		a := assistant.New(gen, stratchat.EmptyKnowledge())

		turn, _ := respond(t, a, "ما هي أفضل ممارسات الحوسبة السحابية؟")

		require.Len(t, *calls, 1)
		assert.Equal(t, assistant.NoContextPrompt("ما هي أفضل ممارسات الحوسبة السحابية؟"), (*calls)[0].Prompt)
		assert.Equal(t, stratchat.StrategyFallback, turn.Strategy)
		assert.True(t, turn.InHistory())
	})

	t.Run("empty reply is replaced", func(t *testing.T) {
		t.Parallel()

		gen, _ := recorder(" ", "")
		a := assistant.New(gen, loadFixture(t))

		turn, out := respond(t, a, "رؤية التحول الرقمي")

		assert.Equal(t, assistant.EmptyReply, turn.Text)
		assert.Equal(t, " "+assistant.EmptyReply, out)
	})

	t.Run("objectives summary is answered directly", func(t *testing.T) {
		t.Parallel()

		gen, calls := recorder()
		a := assistant.New(gen, loadFixture(t))

		turn, _ := respond(t, a, "ماهي الاهداف الاستراتيجية للتحول الرقمي؟")

		require.Len(t, *calls, 1)
		assert.Contains(t, (*calls)[0].Prompt, "SO1: تعزيز الأمن السيبراني")
		assert.NotContains(t, (*calls)[0].Prompt, "توضيح هام للسنوات")
		assert.Equal(t, stratchat.IntentObjectives, turn.Intent)
		assert.Equal(t, assistant.EmptyDirectReply, turn.Text)
	})

	t.Run("nil snapshot answers as empty", func(t *testing.T) {
		t.Parallel()

		gen, calls := recorder("عام")
		a := assistant.New(gen, &mock.KnowledgeSource{
			KnowledgeFn: func() *stratchat.Knowledge { return nil },
		})

		turn, _ := respond(t, a, "رؤية التحول الرقمي")

		require.Len(t, *calls, 1)
		assert.Equal(t, stratchat.StrategyFallback, turn.Strategy)
	})
}

func TestAssistant_ProjectVision(t *testing.T) {
	t.Parallel()

	t.Run("local alignment answers without search", func(t *testing.T) {
		t.Parallel()

		gen, calls := recorder("يساهم")
		a := assistant.New(gen, loadFixture(t))

		turn, _ := respond(t, a, "كيف تساهم مستهدفات مشروع منصة مصادر البيانات في تحقيق رؤية المملكة 2030م؟")

		require.Len(t, *calls, 1)
		req := (*calls)[0]
		assert.False(t, req.Search)
		assert.Contains(t, req.Prompt, knowledge.VisionSectionHeader)
		assert.Contains(t, req.Prompt, "توحيد مصادر البيانات")
		assert.Equal(t, stratchat.StrategyContext, turn.Strategy)
		assert.Equal(t, "منصة مصادر البيانات", turn.Entity)
	})

	t.Run("missing alignment escalates to search", func(t *testing.T) {
		t.Parallel()

		gen := &mock.Generator{
			GenerateStreamFn: func(_ context.Context, req stratchat.GenerateRequest) iter.Seq2[stratchat.Chunk, error] {
				assert.True(t, req.Search)
				assert.Nil(t, req.History)
				assert.Equal(t, `مساهمة مشروع "بوابة المتطوعين" التابع لهيئة الهلال الأحمر السعودي في تحقيق رؤية المملكة 2030`, req.Prompt)
				assert.Contains(t, req.SystemInstruction, `مشروع "بوابة المتطوعين"`)
				return func(yield func(stratchat.Chunk, error) bool) {
					src := stratchat.Source{URI: "https://example.com/a", Title: "أ"}
					if !yield(stratchat.Chunk{Text: "يدعم", Sources: []stratchat.Source{src}}, nil) {
						return
					}
					yield(stratchat.Chunk{Text: " التطوع", Sources: []stratchat.Source{src, {URI: "https://example.com/b"}}}, nil)
				}
			},
		}
		a := assistant.New(gen, loadFixture(t))

		turn, out := respond(t, a, "كيف يساهم مشروع بوابة المتطوعين في تحقيق رؤية المملكة 2030؟")

		assert.Equal(t, "يدعم التطوع", out)
		assert.Equal(t, stratchat.StrategySearch, turn.Strategy)
		assert.False(t, turn.InHistory())
		require.Len(t, turn.Sources, 2)
		assert.Equal(t, "https://example.com/a", turn.Sources[0].URI)
		assert.Equal(t, "https://example.com/b", turn.Sources[1].URI)
	})

	t.Run("empty search reply is replaced", func(t *testing.T) {
		t.Parallel()

		gen, _ := recorder()
		a := assistant.New(gen, loadFixture(t))

		turn, _ := respond(t, a, "كيف يساهم مشروع بوابة المتطوعين في تحقيق رؤية المملكة 2030؟")

		assert.Equal(t, assistant.EmptySearchReply, turn.Text)
	})

	t.Run("without search the profile carries a note", func(t *testing.T) {
		t.Parallel()

		gen, calls := recorder("لا توجد")
		a := assistant.New(gen, loadFixture(t))
		a.NoSearch = true

		turn, _ := respond(t, a, "كيف يساهم مشروع بوابة المتطوعين في تحقيق رؤية المملكة 2030؟")

		require.Len(t, *calls, 1)
		req := (*calls)[0]
		assert.False(t, req.Search)
		assert.Contains(t, req.Prompt, "## تفاصيل مشروع: بوابة المتطوعين")
		assert.Contains(t, req.Prompt, assistant.NoLocalAlignmentNote)
		assert.Equal(t, stratchat.StrategyContext, turn.Strategy)
	})
}

func TestAssistant_Search(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		search assistant.Search
	}{
		{
			name:   "project DGA alignment",
			input:  "ما هي مواءمة مشروع منصة مصادر البيانات مع متطلبات الحكومة الرقمية؟",
			search: assistant.ProjectDGASearch("منصة مصادر البيانات"),
		},
		{
			name:   "DGA requirements",
			input:  "ما هي متطلبات هيئة الحكومة الرقمية؟",
			search: assistant.DGARequirementsSearch(),
		},
		{
			name:   "government directions",
			input:  "ما هي احدث توجهات الحكومة الرقمية",
			search: assistant.GovDirectionsSearch(),
		},
		{
			name:   "objective without local alignment",
			input:  "كيف يساهم هدف تطوير الحلول الذكية في تحقيق رؤية المملكة 2030",
			search: assistant.VisionSearch("هدف", "تطوير الحلول الذكية"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gen, calls := recorder("نتيجة")
			a := assistant.New(gen, loadFixture(t))

			turn, _ := respond(t, a, tt.input)

			require.Len(t, *calls, 1)
			req := (*calls)[0]
			assert.True(t, req.Search)
			assert.Nil(t, req.History)
			assert.Equal(t, tt.search.Query, req.Prompt)
			assert.Equal(t, tt.search.Instruction, req.SystemInstruction)
			assert.Equal(t, stratchat.StrategySearch, turn.Strategy)
		})
	}

	t.Run("disabled search answers locally", func(t *testing.T) {
		t.Parallel()

		gen, calls := recorder("محلي")
		a := assistant.New(gen, loadFixture(t))
		a.NoSearch = true

		turn, _ := respond(t, a, "ما هي متطلبات هيئة الحكومة الرقمية؟")

		require.Len(t, *calls, 1)
		assert.False(t, (*calls)[0].Search)
		assert.NotEqual(t, stratchat.StrategySearch, turn.Strategy)
	})
}

func TestAssistant_ObjectiveVision(t *testing.T) {
	t.Parallel()

	gen, calls := recorder("يساهم الهدف")
	a := assistant.New(gen, loadFixture(t))

	turn, _ := respond(t, a, "كيف يساهم هدف تعزيز الأمن السيبراني في تحقيق رؤية المملكة 2030م؟")

	require.Len(t, *calls, 1)
	req := (*calls)[0]
	assert.False(t, req.Search)
	assert.Contains(t, req.Prompt, knowledge.ObjectiveVisionHeader)
	assert.Contains(t, req.Prompt, "رفع كفاءة الخدمات الرقمية")
	assert.Equal(t, stratchat.StrategyContext, turn.Strategy)
}

func TestAssistant_Errors(t *testing.T) {
	t.Parallel()

	t.Run("stream error is returned after partial output", func(t *testing.T) {
		t.Parallel()

		want := stratchat.Errorf(stratchat.EQUOTA, "quota exceeded")
		gen := &mock.Generator{
			GenerateStreamFn: func(context.Context, stratchat.GenerateRequest) iter.Seq2[stratchat.Chunk, error] {
				return mock.Stream(want, "جزء")
			},
		}
		a := assistant.New(gen, loadFixture(t))
		var out strings.Builder

		turn, err := a.Respond(context.Background(), stratchat.TurnRequest{Input: "رؤية التحول الرقمي"}, &out)

		require.ErrorIs(t, err, want)
		assert.Nil(t, turn)
		assert.Equal(t, "جزء", out.String())
		assert.Equal(t, stratchat.FailureQuota, stratchat.FailureMessage(err))
	})

	t.Run("write error stops the turn", func(t *testing.T) {
		t.Parallel()

		gen, _ := recorder("نص")
		a := assistant.New(gen, loadFixture(t))

		_, err := a.Respond(context.Background(), stratchat.TurnRequest{Input: "رؤية التحول الرقمي"}, failingWriter{})

		require.Error(t, err)
	})
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

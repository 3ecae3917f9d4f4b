package gemini

import (
	"context"
	"iter"

	"github.com/fwojciec/stratchat"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Generator implements stratchat.Generator at compile time.
var _ stratchat.Generator = (*Generator)(nil)

// Generator implements stratchat.Generator using Google Gemini.
type Generator struct {
	client *genai.Client
	model  string
}

// NewGenerator creates a new Generator. An empty model selects DefaultModel.
func NewGenerator(client *genai.Client, model string) *Generator {
	if model == "" {
		model = DefaultModel
	}
	return &Generator{client: client, model: model}
}

// Model returns the model name used for generation.
func (g *Generator) Model() string {
	return g.model
}

// Generate returns the complete reply for req.
func (g *Generator) Generate(ctx context.Context, req stratchat.GenerateRequest) (string, error) {
	if req.Prompt == "" {
		return "", stratchat.Errorf(stratchat.EINVALID, "prompt required")
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, BuildContents(req), BuildConfig(req))
	if err != nil {
		return "", ClassifyError(err)
	}
	if result == nil {
		return "", stratchat.Errorf(stratchat.EINTERNAL, "gemini returned nil result")
	}

	text := result.Text()
	if text == "" && Blocked(result) {
		return "", stratchat.Errorf(stratchat.ESAFETY, "response blocked by safety settings")
	}
	return text, nil
}

// GenerateStream yields reply chunks in arrival order.
func (g *Generator) GenerateStream(ctx context.Context, req stratchat.GenerateRequest) iter.Seq2[stratchat.Chunk, error] {
	return func(yield func(stratchat.Chunk, error) bool) {
		if req.Prompt == "" {
			yield(stratchat.Chunk{}, stratchat.Errorf(stratchat.EINVALID, "prompt required"))
			return
		}

		var produced bool
		for resp, err := range g.client.Models.GenerateContentStream(ctx, g.model, BuildContents(req), BuildConfig(req)) {
			if err != nil {
				yield(stratchat.Chunk{}, ClassifyError(err))
				return
			}
			if resp == nil {
				continue
			}
			chunk := stratchat.Chunk{Text: resp.Text(), Sources: Sources(resp)}
			if chunk.Text == "" && !produced && Blocked(resp) {
				yield(stratchat.Chunk{}, stratchat.Errorf(stratchat.ESAFETY, "response blocked by safety settings"))
				return
			}
			if chunk.Text == "" && len(chunk.Sources) == 0 {
				continue
			}
			produced = produced || chunk.Text != ""
			if !yield(chunk, nil) {
				return
			}
		}
	}
}

// safetyCategories are blocked at low probability and above.
var safetyCategories = []genai.HarmCategory{
	genai.HarmCategoryHarassment,
	genai.HarmCategoryHateSpeech,
	genai.HarmCategorySexuallyExplicit,
	genai.HarmCategoryDangerousContent,
}

// BuildConfig returns the GenerateContentConfig for req.
func BuildConfig(req stratchat.GenerateRequest) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}
	if req.SystemInstruction != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemInstruction}},
		}
	}
	for _, c := range safetyCategories {
		config.SafetySettings = append(config.SafetySettings, &genai.SafetySetting{
			Category:  c,
			Threshold: genai.HarmBlockThresholdBlockLowAndAbove,
		})
	}
	if req.Search {
		config.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	return config
}

// BuildContents converts the conversation history and prompt into Gemini
// contents. Empty history messages are skipped.
func BuildContents(req stratchat.GenerateRequest) []*genai.Content {
	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, m := range req.History {
		if m.Text == "" {
			continue
		}
		role := genai.RoleUser
		if m.Role == stratchat.RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Text, role))
	}
	return append(contents, genai.NewContentFromText(req.Prompt, genai.RoleUser))
}

// Sources returns the web grounding citations in resp, deduplicated by URI.
func Sources(resp *genai.GenerateContentResponse) []stratchat.Source {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return nil
	}
	var sources []stratchat.Source
	seen := make(map[string]bool)
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" || seen[chunk.Web.URI] {
			continue
		}
		seen[chunk.Web.URI] = true
		sources = append(sources, stratchat.Source{URI: chunk.Web.URI, Title: chunk.Web.Title})
	}
	return sources
}

// Blocked reports whether resp was stopped by a safety filter, either on
// the prompt or on the first candidate.
func Blocked(resp *genai.GenerateContentResponse) bool {
	if resp == nil {
		return false
	}
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" && fb.BlockReason != genai.BlockedReasonUnspecified {
		return true
	}
	return len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason == genai.FinishReasonSafety
}

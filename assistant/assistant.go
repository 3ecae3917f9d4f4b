// Package assistant answers strategy questions by routing each one to a
// local knowledge lookup, a web search call, or a fixed refusal.
package assistant

import (
	"context"
	"io"
	"strings"

	"github.com/fwojciec/stratchat"
	"github.com/fwojciec/stratchat/knowledge"
)

// Ensure Assistant implements stratchat.Responder.
var _ stratchat.Responder = (*Assistant)(nil)

// objectivesSourcePath tags the curated objectives summary entry.
const objectivesSourcePath = knowledge.StrategyKey + ".strategicHouse.objectivesData.summary"

// Assistant answers questions against the current knowledge snapshot.
type Assistant struct {
	gen    stratchat.Generator
	source stratchat.KnowledgeSource

	// Matcher selects knowledge entries for plain lookups.
	Matcher knowledge.Matcher

	// NoSearch answers every question locally, never enabling web search.
	NoSearch bool
}

// New creates an Assistant.
func New(gen stratchat.Generator, source stratchat.KnowledgeSource) *Assistant {
	return &Assistant{gen: gen, source: source, Matcher: knowledge.Matcher{MaxCandidates: 1}}
}

// Respond routes one question and streams the reply to w. Refusals are
// written without calling the model.
func (a *Assistant) Respond(ctx context.Context, req stratchat.TurnRequest, w io.Writer) (*stratchat.Turn, error) {
	k := a.source.Knowledge()
	if k == nil {
		k = stratchat.EmptyKnowledge()
	}
	history := req.History
	if len(history) == 0 {
		history = Greeting()
	}

	route := Classify(req.Input, k)
	t := &turn{
		ctx:     ctx,
		a:       a,
		w:       w,
		history: history,
		input:   req.Input,
		k:       k,
		Turn:    stratchat.Turn{Intent: route.Intent, Entity: route.Entity},
	}
	if route.Refusal != "" {
		return t.refuse(route.Refusal)
	}

	switch route.Intent {
	case stratchat.IntentProjectVision:
		name := route.Project.Name
		if local := projectVisionContext(a.Matcher, k, name); local != "" {
			return t.chat(ContextPrompt(local, req.Input), EmptyReply)
		}
		if a.NoSearch {
			if profile, ok := k.Base.Get(knowledge.ProjectVisionPrompt(name)); ok {
				return t.chat(ContextPrompt(profile.Completion+"\n"+NoLocalAlignmentNote+"\n", req.Input), EmptyReply)
			}
			return t.lookup()
		}
		return t.search(VisionSearch(kindProject, name))

	case stratchat.IntentProjectDGA:
		if a.NoSearch {
			return t.lookup()
		}
		return t.search(ProjectDGASearch(route.Project.Name))

	case stratchat.IntentObjectiveVision:
		if local := objectiveVisionContext(a.Matcher, k, route.Entity); local != "" {
			return t.chat(ContextPrompt(local, req.Input), EmptyReply)
		}
		if a.NoSearch {
			return t.lookup()
		}
		return t.search(VisionSearch(kindObjective, route.Entity))

	case stratchat.IntentDGARequirements:
		if a.NoSearch {
			return t.lookup()
		}
		return t.search(DGARequirementsSearch())

	case stratchat.IntentGovDirections:
		if a.NoSearch {
			return t.lookup()
		}
		return t.search(GovDirectionsSearch())

	case stratchat.IntentObjectives:
		if e, ok := k.Base.Get(req.Input); ok && e.SourcePath == objectivesSourcePath && e.Completion != "" {
			return t.chat(DirectPrompt(e.Completion, req.Input), EmptyDirectReply)
		}
		return t.lookup()

	default:
		return t.lookup()
	}
}

// turn accumulates the state of one Respond call.
type turn struct {
	stratchat.Turn

	ctx     context.Context
	a       *Assistant
	w       io.Writer
	history []stratchat.Message
	input   string
	k       *stratchat.Knowledge
}

func (t *turn) refuse(text string) (*stratchat.Turn, error) {
	t.Strategy = stratchat.StrategyRefusal
	t.Text = text
	if _, err := io.WriteString(t.w, text); err != nil {
		return nil, err
	}
	return &t.Turn, nil
}

// lookup answers from the best matching knowledge entry, or from general
// expertise when nothing matches.
func (t *turn) lookup() (*stratchat.Turn, error) {
	matches := t.a.Matcher.Match(t.input, t.k.Entries())
	if len(matches) == 0 {
		t.Strategy = stratchat.StrategyFallback
		return t.send(NoContextPrompt(t.input), EmptyReply)
	}
	return t.chat(ContextPrompt(matches[0].Completion, t.input), EmptyReply)
}

func (t *turn) chat(prompt, empty string) (*stratchat.Turn, error) {
	t.Strategy = stratchat.StrategyContext
	return t.send(prompt, empty)
}

func (t *turn) send(prompt, empty string) (*stratchat.Turn, error) {
	t.Prompt = prompt
	return t.stream(stratchat.GenerateRequest{
		SystemInstruction: RAGInstruction,
		History:           t.history,
		Prompt:            prompt,
	}, empty)
}

// search runs a standalone search-grounded call without history.
func (t *turn) search(s Search) (*stratchat.Turn, error) {
	t.Strategy = stratchat.StrategySearch
	t.Prompt = s.Query
	return t.stream(stratchat.GenerateRequest{
		SystemInstruction: s.Instruction,
		Prompt:            s.Query,
		Search:            true,
	}, EmptySearchReply)
}

// stream writes reply chunks to w in arrival order and collects the full
// text and its grounding sources.
func (t *turn) stream(req stratchat.GenerateRequest, empty string) (*stratchat.Turn, error) {
	var b strings.Builder
	seen := make(map[string]bool)
	for chunk, err := range t.a.gen.GenerateStream(t.ctx, req) {
		if err != nil {
			return nil, err
		}
		if chunk.Text != "" {
			b.WriteString(chunk.Text)
			if _, err := io.WriteString(t.w, chunk.Text); err != nil {
				return nil, err
			}
		}
		for _, src := range chunk.Sources {
			if src.URI != "" && !seen[src.URI] {
				seen[src.URI] = true
				t.Sources = append(t.Sources, src)
			}
		}
	}

	t.Text = b.String()
	if strings.TrimSpace(t.Text) == "" {
		t.Text = empty
		if _, err := io.WriteString(t.w, empty); err != nil {
			return nil, err
		}
	}
	return &t.Turn, nil
}

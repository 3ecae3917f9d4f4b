package stratchat

import "strings"

// Entry is a single retrievable question/answer pair.
type Entry struct {
	// Prompt is a natural-language question acting as the lookup key.
	Prompt string `json:"prompt"`

	// Completion is the answer text, usually Markdown.
	Completion string `json:"completion"`

	// SourcePath points back into the strategy document. It is kept for
	// tracing only and never shown to the end user.
	SourcePath string `json:"sourcePath,omitempty"`
}

// Key returns the normalized prompt used to deduplicate entries.
func (e Entry) Key() string {
	return Normalize(e.Prompt)
}

var punctuation = strings.NewReplacer("؟", "", ".", "", ",", "", "!", "")

// Normalize trims and lower-cases s, then strips a fixed punctuation set
// that includes the Arabic question mark.
func Normalize(s string) string {
	return punctuation.Replace(strings.ToLower(strings.TrimSpace(s)))
}

// KnowledgeBase is an insertion-ordered set of entries keyed by normalized
// prompt. Writing an existing key replaces the entry in place, so later
// writers supersede earlier ones without changing iteration order.
type KnowledgeBase struct {
	keys    []string
	entries map[string]Entry
}

// NewKnowledgeBase returns an empty knowledge base.
func NewKnowledgeBase() *KnowledgeBase {
	return &KnowledgeBase{entries: make(map[string]Entry)}
}

// Put stores e under its normalized prompt.
func (kb *KnowledgeBase) Put(e Entry) {
	key := e.Key()
	if _, ok := kb.entries[key]; !ok {
		kb.keys = append(kb.keys, key)
	}
	kb.entries[key] = e
}

// Get returns the entry whose normalized prompt equals the normalized query.
func (kb *KnowledgeBase) Get(prompt string) (Entry, bool) {
	if kb == nil {
		return Entry{}, false
	}
	e, ok := kb.entries[Normalize(prompt)]
	return e, ok
}

// Len returns the number of entries.
func (kb *KnowledgeBase) Len() int {
	if kb == nil {
		return 0
	}
	return len(kb.keys)
}

// Entries returns all entries in insertion order.
func (kb *KnowledgeBase) Entries() []Entry {
	if kb == nil {
		return nil
	}
	out := make([]Entry, 0, len(kb.keys))
	for _, key := range kb.keys {
		out = append(out, kb.entries[key])
	}
	return out
}

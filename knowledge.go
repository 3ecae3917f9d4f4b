package stratchat

import (
	"context"
	"strings"
	"time"
)

// Knowledge is an immutable snapshot built from one load of the strategy
// document. A reload replaces the whole snapshot.
type Knowledge struct {
	Base     *KnowledgeBase
	Roadmap  RoadmapIndex
	Projects ProjectIndex

	// Fingerprint is a hash of the raw document bytes.
	Fingerprint uint64
	Path        string
	LoadedAt    time.Time
}

// EmptyKnowledge returns a snapshot with no entries. It is used when the
// document is missing or unreadable so the chat remains usable.
func EmptyKnowledge() *Knowledge {
	return &Knowledge{
		Base:    NewKnowledgeBase(),
		Roadmap: RoadmapIndex{},
	}
}

// Knowledge returns k itself so a fixed snapshot can serve as a
// KnowledgeSource.
func (k *Knowledge) Knowledge() *Knowledge { return k }

// Entries returns the knowledge base entries in insertion order.
func (k *Knowledge) Entries() []Entry {
	if k == nil {
		return nil
	}
	return k.Base.Entries()
}

// RoadmapIndex is the set of upper-cased project IDs scheduled in any
// roadmap year.
type RoadmapIndex map[string]struct{}

// Add records a project ID.
func (idx RoadmapIndex) Add(id string) {
	id = strings.ToUpper(strings.TrimSpace(id))
	if id != "" {
		idx[id] = struct{}{}
	}
}

// Contains reports whether the project ID appears on the roadmap.
func (idx RoadmapIndex) Contains(id string) bool {
	_, ok := idx[strings.ToUpper(strings.TrimSpace(id))]
	return ok
}

// KnownProject is the identity of a project from the master project list.
type KnownProject struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Initiative string `json:"initiative,omitempty"`
}

// Resolution describes the outcome of resolving a free-text project name.
type Resolution int

// Resolution values.
const (
	Unresolved Resolution = iota
	Resolved
	Ambiguous
)

func (r Resolution) String() string {
	switch r {
	case Resolved:
		return "resolved"
	case Ambiguous:
		return "ambiguous"
	default:
		return "unresolved"
	}
}

// ProjectIndex lists known projects with upper-cased IDs and trimmed names.
type ProjectIndex []KnownProject

// Resolve maps a free-text project reference to a known project. An exact
// case-insensitive ID match wins; otherwise the name must be a substring of
// exactly one known project name. Several candidates yield Ambiguous.
func (idx ProjectIndex) Resolve(name string) (KnownProject, Resolution) {
	name = strings.TrimSpace(name)
	if name == "" {
		return KnownProject{}, Unresolved
	}

	asID := strings.ToUpper(name)
	for _, p := range idx {
		if p.ID == asID {
			return p, Resolved
		}
	}

	needle := strings.ToLower(name)
	var matches []KnownProject
	for _, p := range idx {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return KnownProject{}, Unresolved
	case 1:
		return matches[0], Resolved
	default:
		return KnownProject{}, Ambiguous
	}
}

// KnowledgeSource provides the current knowledge snapshot.
type KnowledgeSource interface {
	Knowledge() *Knowledge
}

// KnowledgeExporter writes a knowledge snapshot to durable storage for review.
type KnowledgeExporter interface {
	ExportKnowledge(ctx context.Context, k *Knowledge) error
}

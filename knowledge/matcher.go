package knowledge

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/stratchat"
)

// Scoring calibration constants.
const (
	floorScore      = 0.25
	relativeFloor   = 0.60
	lastResortScore = 0.1
	densityBonus    = 0.1
	sizeBonus       = 0.1
	lengthWeight    = 0.1
	partialCredit   = 0.5
)

// stopWords are filler words ignored when extracting keywords. Multi-word
// entries never equal a single token and so never filter anything.
var stopWords = map[string]bool{}

func init() {
	for _, w := range []string{
		"في", "على", "الى", "إلى", "عن", "و", "أو", "ثم", "ما", "هي", "ماهي",
		"هو", "هل", "يا", "اي", "أي", "ان", "أن", "اذا", "إذا", "لكن",
		"قد", "تم", "مع", "كذلك", "مثل", "هذا", "هذه", "ذلك", "تلك", "به",
		"فيه", "عليه", "إليه", "عنه", "لي", "له", "لها", "لهم", "لنا",
		"جدا", "ايضا", "أيضاً", "فقط", "بعض", "كل", "جميع", "اذكر", "ماذا", "كيف",
		"بشكل", "عام", "حول", "بخصوص", "عن ماذا", "تكلم عن", "اشرح", "وضح",
		"الخاصة", "المتعلقة", "ضمن", "قسم",
	} {
		stopWords[w] = true
	}
}

// MatchKind tells which stage of the matcher produced a candidate.
type MatchKind string

// Match kinds.
const (
	MatchExact     MatchKind = "exact"
	MatchSubstring MatchKind = "substring"
	MatchKeyword   MatchKind = "keyword"
)

// Candidate is a scored knowledge entry.
type Candidate struct {
	stratchat.Entry
	Score float64
	Kind  MatchKind
}

// Matcher finds the knowledge entries most relevant to a free-text query.
type Matcher struct {
	// MaxCandidates bounds the number of returned entries. Values below one
	// mean one.
	MaxCandidates int
}

// Match returns the best entries for input, or nil when nothing is relevant.
// An exact normalized prompt match always wins over keyword scoring.
func (m Matcher) Match(input string, entries []stratchat.Entry) []stratchat.Entry {
	ranked := m.Rank(input, entries)
	if len(ranked) == 0 {
		return nil
	}
	if ranked[0].Kind != MatchKeyword {
		return []stratchat.Entry{ranked[0].Entry}
	}

	best := ranked[0].Score
	floor := max(floorScore, best*relativeFloor)
	var kept []stratchat.Entry
	for _, c := range ranked {
		if c.Score >= floor {
			kept = append(kept, c.Entry)
		}
	}
	if len(kept) == 0 {
		if best > lastResortScore {
			return []stratchat.Entry{ranked[0].Entry}
		}
		return nil
	}

	limit := max(m.MaxCandidates, 1)
	if len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}

// Rank scores every entry against input and returns the candidates sorted
// by descending score, before any threshold is applied. An exact match is
// returned alone.
func (m Matcher) Rank(input string, entries []stratchat.Entry) []Candidate {
	query := stratchat.Normalize(input)
	if query == "" {
		return nil
	}

	for _, e := range entries {
		if e.Prompt == "" || e.Completion == "" {
			continue
		}
		if stratchat.Normalize(e.Prompt) == query {
			return []Candidate{{Entry: e, Score: 1, Kind: MatchExact}}
		}
	}

	keywords := Keywords(query)
	var ranked []Candidate
	if len(keywords) == 0 {
		queryLen := float64(utf8.RuneCountInString(query))
		for _, e := range entries {
			if e.Prompt == "" || e.Completion == "" {
				continue
			}
			prompt := stratchat.Normalize(e.Prompt)
			if strings.Contains(prompt, query) {
				ranked = append(ranked, Candidate{
					Entry: e,
					Score: queryLen / float64(utf8.RuneCountInString(prompt)),
					Kind:  MatchSubstring,
				})
			}
		}
	} else {
		for _, e := range entries {
			if e.Prompt == "" || e.Completion == "" {
				continue
			}
			if score, ok := scoreKeywords(keywords, stratchat.Normalize(e.Prompt)); ok {
				ranked = append(ranked, Candidate{Entry: e, Score: score, Kind: MatchKeyword})
			}
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// Keywords splits normalized text on whitespace and drops single-character
// tokens and stop words. Duplicates are kept.
func Keywords(normalized string) []string {
	var out []string
	for _, w := range strings.Fields(normalized) {
		if utf8.RuneCountInString(w) > 1 && !stopWords[w] {
			out = append(out, w)
		}
	}
	return out
}

// uniqueKeywords is Keywords with duplicates removed, first occurrence kept.
func uniqueKeywords(normalized string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, w := range Keywords(normalized) {
		if !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}
	return out
}

// scoreKeywords scores a normalized stored prompt against query keywords.
// It reports false when no keyword matched at all.
func scoreKeywords(keywords []string, prompt string) (float64, bool) {
	stored := uniqueKeywords(prompt)

	var matched, weighted float64
	for _, kw := range keywords {
		kwLen := utf8.RuneCountInString(kw)
		found := false
		for _, s := range stored {
			if strings.Contains(s, kw) || strings.Contains(kw, s) {
				matched++
				weighted += float64(max(kwLen, utf8.RuneCountInString(s)))
				found = true
				break
			}
		}
		if !found && strings.Contains(prompt, kw) {
			matched += partialCredit
			weighted += float64(kwLen) * partialCredit
		}
	}
	if matched == 0 {
		return 0, false
	}

	total := utf8.RuneCountInString(strings.Join(keywords, ""))
	relevance := 0.0
	if total > 0 {
		relevance = weighted / float64(total)
	}
	density := matched / float64(len(keywords))

	score := (relevance + density) / 2
	if density == 1 {
		score += densityBonus
		if len(stored) <= len(keywords)+2 && len(stored) >= len(keywords)-2 {
			score += sizeBonus
		}
	}
	joined := float64(utf8.RuneCountInString(strings.Join(keywords, " ")))
	promptLen := float64(utf8.RuneCountInString(prompt))
	score += min(joined, promptLen) / max(joined, promptLen) * lengthWeight

	return min(score, 1.0), true
}

package assistant

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/stratchat"
	"github.com/fwojciec/stratchat/knowledge"
)

var (
	projectVisionPattern = regexp.MustCompile(`(?i)كيف (يساهم|تساهم)(?: مستهدفات)? مشروع (.*?) في تحقيق رؤية (?:المملكة )?(?:2030|٢٠٣٠|2023|٢٠٢٣)(?:م)?[?؟]?`)

	projectDGAPattern = regexp.MustCompile(`(?i)^(?:كيف يساهم|ما هي مساهمة|ما مدى مساهمة|وضح مساهمة|ما هي مواءمة|اشرح مواءمة|موائمة)\sمشروع\s(.*?)\s(?:في تحقيق|مع|في)\s?(?:متطلبات|توجهات|متطلبات وتوجهات)\s(?:هيئة\s)?الحكومة\sالرقمية(?:\s(?:DGA|دي جي ايه|دي\sجي\sايه))?[?؟]?$`)

	objectiveVisionPattern = regexp.MustCompile(`(?i)^(?:كيف يساهم|مساهمة|مواءمة) هدف (.*?) (?:في التحول الرقمي )?(?:(?:في تحقيق|مع|في)\s)?رؤية (?:المملكة )?(?:2030|٢٠٣٠|2023|٢٠٢٣)(?:م)?[?؟]?$`)

	quotedPattern = regexp.MustCompile(`["«“]([^"»”]+)["»”]`)
)

var dgaKeywords = normalizeAll(
	"متطلبات الحكومة الرقمية dga", "متطلبات هيئة الحكومة الرقمية", "متطلبات ال dga",
	"ما هي متطلبات هيئة الحكومة الرقمية dga", "معايير هيئة الحكومة الرقمية dga",
	"ارشادات هيئة الحكومة الرقمية", "سياسات هيئة الحكومة الرقمية",
	"اطر عمل هيئة الحكومة الرقمية", "التزامات هيئة الحكومة الرقمية",
	"متطلبات التحول الرقمي من dga", "كل مايخص متطلبات الحكومة الرقمية dga",
	"توجهات الحكومة الرقمية dga", "توجهات هيئة الحكومة الرقمية",
)

var directionsKeywords = normalizeAll(
	"توجهات الحكومة الرقمية", "توجه الحكومة الرقمية",
	"توجهات الحكومه الرقميه", "توجه الحكومه الرقميه",
	"ما هي توجهات الحكومة الرقمية", "ما هي احدث توجهات الحكومة الرقمية",
	"اخر توجهات الحكومة الرقمية", "توجهات التحول الرقمي الحكومي",
	"كل مايخص توجهات الحكومة الرقمية",
)

var objectivesQuestions = normalizeAll(
	"ماهي الاهداف الاستراتيجية للتحول الرقمي؟",
	"اذكر لي الاهداف الاستراتيجية للتحول الرقمي",
	"قائمة الاهداف الاستراتيجية للتحول الرقمي",
	"ما هي أهداف استراتيجية التحول الرقمي؟",
	"ما هي الأهداف الرئيسية لاستراتيجية التحول الرقمي؟",
	"استعراض الاهداف الاستراتيجية للتحول الرقمي",
)

// projectWords introduce a project reference in free text.
var projectWords = map[string]bool{"مشروع": true, "بمشروع": true, "لمشروع": true}

// minReferenceLen is the shortest name fragment tried against project names
// when scanning free text.
const minReferenceLen = 3

func normalizeAll(phrases ...string) []string {
	out := make([]string, len(phrases))
	for i, p := range phrases {
		out[i] = stratchat.Normalize(p)
	}
	return out
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func equalsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if s == p {
			return true
		}
	}
	return false
}

// cleanName trims an extracted entity name and strips punctuation.
func cleanName(s string) string {
	return strings.TrimSpace(strings.NewReplacer("؟", "", ".", "", ",", "", "!", "").Replace(strings.TrimSpace(s)))
}

// Route is the routing decision for one question.
type Route struct {
	Intent stratchat.Intent

	// Entity is the project or objective name as written by the user.
	Entity string

	// Project is set when Entity resolved to a known project.
	Project stratchat.KnownProject

	// Refusal is the fixed reply for a question that must not reach the
	// model. Empty when the question may proceed.
	Refusal string
}

// rule is one routing classifier. match reports the extracted entity and
// whether the rule applies.
type rule struct {
	intent stratchat.Intent
	match  func(input, normalized string) (string, bool)

	// gate resolves the entity as a project and refuses unknown or
	// off-roadmap ones.
	gate bool
}

// rules are evaluated in order; the first match wins.
var rules = []rule{
	{
		intent: stratchat.IntentProjectVision,
		gate:   true,
		match: func(input, _ string) (string, bool) {
			m := projectVisionPattern.FindStringSubmatch(input)
			if m == nil || cleanName(m[2]) == "" {
				return "", false
			}
			return cleanName(m[2]), true
		},
	},
	{
		intent: stratchat.IntentProjectDGA,
		gate:   true,
		match: func(input, _ string) (string, bool) {
			m := projectDGAPattern.FindStringSubmatch(strings.TrimSpace(input))
			if m == nil || cleanName(m[1]) == "" {
				return "", false
			}
			return cleanName(m[1]), true
		},
	},
	{
		intent: stratchat.IntentObjectiveVision,
		match: func(input, _ string) (string, bool) {
			m := objectiveVisionPattern.FindStringSubmatch(strings.TrimSpace(input))
			if m == nil || cleanName(m[1]) == "" {
				return "", false
			}
			return cleanName(m[1]), true
		},
	},
	{
		intent: stratchat.IntentDGARequirements,
		match: func(_, normalized string) (string, bool) {
			return "", containsAny(normalized, dgaKeywords)
		},
	},
	{
		intent: stratchat.IntentGovDirections,
		match: func(_, normalized string) (string, bool) {
			return "", containsAny(normalized, directionsKeywords)
		},
	},
	{
		intent: stratchat.IntentObjectives,
		match: func(_, normalized string) (string, bool) {
			return "", equalsAny(normalized, objectivesQuestions)
		},
	},
}

// Classify routes input against the knowledge snapshot k.
func Classify(input string, k *stratchat.Knowledge) Route {
	normalized := stratchat.Normalize(input)
	for _, r := range rules {
		entity, ok := r.match(input, normalized)
		if !ok {
			continue
		}
		route := Route{Intent: r.intent, Entity: entity}
		if !r.gate {
			return route
		}
		p, res := k.Projects.Resolve(entity)
		switch {
		case res != stratchat.Resolved:
			route.Refusal = fmt.Sprintf(refusalUnknown, entity)
		case !k.Roadmap.Contains(p.ID):
			route.Refusal = fmt.Sprintf(refusalOffRoadmap, entity)
		default:
			route.Project = p
		}
		return route
	}

	// A known project mentioned anywhere must still be on the roadmap.
	// Unknown or ambiguous references are left to the plain lookup.
	if name, p, ok := findProjectReference(input, k.Projects); ok {
		route := Route{Intent: stratchat.IntentProjectLookup, Entity: name, Project: p}
		if !k.Roadmap.Contains(p.ID) {
			route.Refusal = fmt.Sprintf(refusalOffRoadmap, name)
		}
		return route
	}
	return Route{Intent: stratchat.IntentLookup}
}

// findProjectReference resolves the text following the first project word
// in input. A quoted name is preferred; otherwise the longest run of words
// that resolves to exactly one project wins.
func findProjectReference(input string, projects stratchat.ProjectIndex) (string, stratchat.KnownProject, bool) {
	if len(projects) == 0 {
		return "", stratchat.KnownProject{}, false
	}
	words := strings.Fields(input)
	start := -1
	for i, w := range words {
		if projectWords[cleanName(w)] {
			start = i + 1
			break
		}
	}
	if start < 0 || start >= len(words) {
		return "", stratchat.KnownProject{}, false
	}
	rest := strings.Join(words[start:], " ")

	if m := quotedPattern.FindStringSubmatch(rest); m != nil {
		name := cleanName(m[1])
		if p, res := projects.Resolve(name); res == stratchat.Resolved {
			return name, p, true
		}
		return "", stratchat.KnownProject{}, false
	}

	tail := words[start:]
	for n := len(tail); n > 0; n-- {
		name := cleanName(strings.Join(tail[:n], " "))
		if utf8.RuneCountInString(name) < minReferenceLen {
			continue
		}
		if p, res := projects.Resolve(name); res == stratchat.Resolved {
			return name, p, true
		}
	}
	return "", stratchat.KnownProject{}, false
}

// projectVisionContext returns the project's local profile when it carries
// a substantive Vision 2030 section. A fuzzy match on another project's
// profile is rejected by requiring the name in the completion.
func projectVisionContext(m knowledge.Matcher, k *stratchat.Knowledge, name string) string {
	matches := m.Match(knowledge.ProjectVisionPrompt(name), k.Entries())
	if len(matches) == 0 {
		return ""
	}
	c := matches[0].Completion
	if !strings.Contains(c, name) {
		return ""
	}
	_, section, ok := strings.Cut(c, knowledge.VisionSectionHeader)
	if !ok || utf8.RuneCountInString(strings.TrimSpace(section)) <= 30 {
		return ""
	}
	return c
}

var objectiveSectionPattern = regexp.MustCompile(regexp.QuoteMeta(knowledge.ObjectiveVisionHeader) + `.*?في رؤية المملكة 2030([\s\S]*)`)

// objectiveVisionContext returns the objective's local Vision 2030 profile
// when it is substantive.
func objectiveVisionContext(m knowledge.Matcher, k *stratchat.Knowledge, name string) string {
	matches := m.Match(knowledge.ObjectiveVisionPrompt(name), k.Entries())
	if len(matches) == 0 {
		return ""
	}
	c := matches[0].Completion
	if !strings.Contains(c, name) {
		return ""
	}
	sm := objectiveSectionPattern.FindStringSubmatch(c)
	if sm == nil || utf8.RuneCountInString(strings.TrimSpace(sm[1])) <= 30 {
		return ""
	}
	return c
}

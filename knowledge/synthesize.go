package knowledge

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/stratchat"
)

const sourcePrefix = StrategyKey + "."

// VisionSectionHeader opens the Vision 2030 section of a project profile.
const VisionSectionHeader = "### المساهمة في تحقيق رؤية المملكة 2030:"

// ObjectiveVisionHeader opens an objective's Vision 2030 profile.
const ObjectiveVisionHeader = "## مساهمة هدف التحول الرقمي:"

// domainPillars maps an initiative domain to the pillars it serves.
var domainPillars = map[string][]string{
	"التطبيقات الرقمية وتحسين تجربة العميل": {"تجربة رقمية فريدة", "حلول ابتكارية"},
	"البنية التقنية وأمن المعلومات":         {"بيئة موثوقة"},
	"قدرات الاعمال (الخدمات)":               {"منظومة تشغيلية متميزة"},
	"حوكمة التحول الرقمي":                   {"منظومة تشغيلية متميزة"},
	"البيانات وذكاء الاعمال":                {"منظومة تشغيلية متميزة", "حلول ابتكارية", "بيئة موثوقة"},
	"التقنيات الناشئة":                      {"حلول ابتكارية"},
}

var (
	yearNumberPattern = regexp.MustCompile(`\((\d{4})\)`)
	nameSplitPattern  = regexp.MustCompile(`[\s-]+`)
	digitsPattern     = regexp.MustCompile(`^\d+$`)
)

var ordinalYears = []string{"السنة الاولى", "السنة الثانية", "السنة الثالثة"}

var pillarLinkPrompts = []string{
	"اربط الركائز بالاهداف الاستراتيجية للتحول الرقمي",
	"ما هي العلاقة بين الركائز الاستراتيجية والأهداف الاستراتيجية للتحول الرقمي؟",
	"كيف ترتبط ركائز التحول الرقمي بأهدافها الاستراتيجية؟",
	"اعرض لي الأهداف الاستراتيجية لكل ركيزة من ركائز التحول الرقمي.",
	"ما هي الأهداف التابعة لكل ركيزة استراتيجية؟",
	"ربط الركائز بالأهداف الاستراتيجية",
	"الركائز والأهداف الاستراتيجية المرتبطة بها",
	"ما هي الاهداف الاستراتيجية للتحول الرقمي وارتباطها بالركائز الاستراتيجية",
}

var objectivesPrompts = []string{
	"ماهي الاهداف الاستراتيجية للتحول الرقمي؟",
	"اذكر لي الاهداف الاستراتيجية للتحول الرقمي",
	"قائمة الاهداف الاستراتيجية للتحول الرقمي",
	"ما هي أهداف استراتيجية التحول الرقمي؟",
	"ما هي الأهداف الرئيسية لاستراتيجية التحول الرقمي؟",
	"استعراض الاهداف الاستراتيجية للتحول الرقمي",
}

var visionPrompts = []string{
	"ما هي رؤية التحول الرقمي؟", "رؤية التحول الرقمي", "ماهي الرؤية الاستراتيجية للتحول الرقمي؟",
	"اذكر لي رؤية التحول الرقمي", "رؤية الهيئة للتحول الرقمي", "ما هي رؤية الهلال الأحمر للتحول الرقمي؟",
	"رؤية التحول الرقمي للهيئة",
	"ماهي رؤية استراتيجية التحول الرقمي",
}

var missionPrompts = []string{
	"ما هي رسالة التحول الرقمي؟", "رسالة التحول الرقمي", "ماهي الرسالة الاستراتيجية للتحول الرقمي؟",
	"اذكر لي رسالة التحول الرقمي", "رسالة الهيئة للتحول الرقمي", "ما هي رسالة الهلال الأحمر للتحول الرقمي؟",
	"رسالة التحول الرقمي للهيئة",
}

var methodologyPrompts = []string{
	"كيف تم بناء استراتيجية التحول الرقمي؟", "ماهي المنهجية المتبعة لبناء استراتيجية التحول الرقمي؟",
	"منهجية بناء الاستراتيجية", "اشرح منهجية تطوير استراتيجية التحول الرقمي.",
	"ما هي خطوات بناء استراتيجية التحول الرقمي؟", "منهجية أعمال تطوير استراتيجية التحول الرقمي",
	"كيف وضعتم استراتيجية التحول الرقمي؟", "ما هي منهجية تطوير الاستراتيجية؟",
	"صف لنا منهجية بناء الاستراتيجية", "خطوات تطوير الاستراتيجية الرقمية",
	"المنهجية المتبعة لتطوير استراتيجية التحول الرقمي", "ما هي آلية بناء استراتيجية التحول الرقمي؟",
}

// ProjectVisionPrompt is the canonical question whose answer is a project's
// local Vision 2030 profile.
func ProjectVisionPrompt(name string) string {
	return fmt.Sprintf("كيف تساهم مستهدفات مشروع %s في تحقيق رؤية المملكة 2030م؟", name)
}

// ObjectiveVisionPrompt is the canonical question whose answer is an
// objective's local Vision 2030 profile.
func ObjectiveVisionPrompt(name string) string {
	return fmt.Sprintf("كيف يساهم هدف %s في تحقيق رؤية المملكة 2030م؟", name)
}

// Synthesize writes curated entries for known question patterns into kb.
// They replace any generic entry with the same normalized prompt.
func Synthesize(s Strategy, kb *stratchat.KnowledgeBase) {
	sy := synthesizer{s: s, kb: kb}
	sy.pillarLinks()
	sy.objectives()
	sy.roadmapYears()
	sy.visionMission()
	sy.methodology()
	sy.projects()
	sy.initiatives()
	sy.objectiveVisions()
}

type synthesizer struct {
	s  Strategy
	kb *stratchat.KnowledgeBase
}

func (sy synthesizer) put(prompts []string, completion, sourcePath string) {
	for _, p := range prompts {
		sy.kb.Put(stratchat.Entry{Prompt: p, Completion: completion, SourcePath: sourcePath})
	}
}

func (sy synthesizer) pillarLinks() {
	h := sy.s.House
	if h.Pillars == nil || h.Objectives == nil {
		return
	}
	var b strings.Builder
	if h.Title != "" {
		fmt.Fprintf(&b, "## %s\n\n", h.Title)
	}
	b.WriteString("فيما يلي ربط الركائز الاستراتيجية للتحول الرقمي بأهدافها المقابلة:\n\n")
	for _, p := range h.Pillars {
		fmt.Fprintf(&b, "### ركيزة: %s\n", p.Name)
		if p.Description != "" {
			fmt.Fprintf(&b, "**الوصف:** %s\n", p.Description)
		}
		var related []Objective
		for _, o := range h.Objectives {
			if o.Pillar == p.Name {
				related = append(related, o)
			}
		}
		if len(related) > 0 {
			b.WriteString("**الأهداف الاستراتيجية المرتبطة بهذه الركيزة:**\n")
			for _, o := range related {
				fmt.Fprintf(&b, "- **%s**: %s\n", o.ID, o.Name)
			}
		} else {
			b.WriteString("- لا توجد أهداف استراتيجية محددة مرتبطة مباشرة بهذه الركيزة ضمن البيانات المتوفرة.\n")
		}
		b.WriteString("\n")
	}
	sy.put(pillarLinkPrompts, b.String(), sourcePrefix+"strategicHouse.pillars_objectives_link")
}

func (sy synthesizer) objectives() {
	h := sy.s.House
	if h.Objectives == nil {
		return
	}
	var b strings.Builder
	b.WriteString("## الأهداف الاستراتيجية للتحول الرقمي\n\n")
	if h.ObjectivesIntro != "" {
		fmt.Fprintf(&b, "%s\n\n", h.ObjectivesIntro)
	}
	b.WriteString("فيما يلي قائمة بالأهداف الاستراتيجية للتحول الرقمي لهيئة الهلال الأحمر السعودي:\n\n")
	for _, o := range h.Objectives {
		fmt.Fprintf(&b, "### %s: %s\n", o.ID, o.Name)
		if o.Pillar != "" {
			fmt.Fprintf(&b, "**الركيزة الاستراتيجية:** %s\n", o.Pillar)
		}
		if o.Description != "" {
			fmt.Fprintf(&b, "**الوصف:** %s\n", o.Description)
		}
		if o.Owner != "" {
			fmt.Fprintf(&b, "**الإدارة المسؤولة (المالك):** %s\n", o.Owner)
		}
		b.WriteString("\n")
	}
	sy.put(objectivesPrompts, b.String(), sourcePrefix+"strategicHouse.objectivesData.summary")
}

func (sy synthesizer) roadmapYears() {
	if sy.s.Timeline == nil || sy.s.Projects == nil {
		return
	}
	for _, y := range sy.s.Timeline {
		if y.Name == "" || y.ProjectIDs == nil {
			continue
		}
		var b strings.Builder
		fmt.Fprintf(&b, "## مشاريع %s\n\n", y.Name)
		if len(y.ProjectIDs) > 0 {
			lines := make([]string, 0, len(y.ProjectIDs))
			for _, id := range y.ProjectIDs {
				if p, ok := sy.projectByID(id); ok {
					lines = append(lines, fmt.Sprintf("- %s (المعرف: %s)", p.Name, p.ID))
				} else {
					lines = append(lines, fmt.Sprintf("- مشروع بالمعرف %s (تفاصيل الاسم غير متوفرة في قائمة المشاريع المفصلة)", id))
				}
			}
			fmt.Fprintf(&b, "في %s، المشاريع المخطط لها هي:\n%s\n\n", y.Name, strings.Join(lines, "\n"))
		} else {
			fmt.Fprintf(&b, "لا توجد مشاريع محددة لـ %s ضمن البيانات المتوفرة.\n\n", y.Name)
		}
		if y.Cost != "" {
			fmt.Fprintf(&b, "**التكلفة الإجمالية المقدرة لمشاريع %s:** %s ر.س.\n", y.Name, y.Cost)
		}
		if y.ProjectCount != "" {
			fmt.Fprintf(&b, "**إجمالي عدد المشاريع في %s:** %s.\n", y.Name, y.ProjectCount)
		}
		sy.put(yearPrompts(y.Name), b.String(), sourcePrefix+"roadmap.timeline."+y.Name)
	}
}

func yearPrompts(year string) []string {
	prompts := []string{
		fmt.Sprintf("ما هي مشاريع %s؟", year),
		fmt.Sprintf("مشاريع %s", year),
		fmt.Sprintf("اذكر لي مشاريع %s", year),
		fmt.Sprintf("ما هي خطة المشاريع لـ %s؟", year),
		fmt.Sprintf("تفاصيل مشاريع %s", year),
	}
	ordinal := yearOrdinal(year)
	if number := yearNumber(year); number != "" {
		prompts = append(prompts,
			fmt.Sprintf("ما هي مشاريع سنة %s؟", number),
			fmt.Sprintf("مشاريع سنة %s", number),
			fmt.Sprintf("مشاريع عام %s", number),
			fmt.Sprintf("خطة مشاريع %s", number),
			fmt.Sprintf("تفاصيل مشاريع سنة %s", number),
		)
		if ordinal != "" {
			prompts = append(prompts,
				fmt.Sprintf("ما هي مشاريع %s %s؟", ordinal, number),
				fmt.Sprintf("مشاريع %s عام %s", ordinal, number),
			)
		}
	}
	if ordinal != "" {
		prompts = append(prompts,
			fmt.Sprintf("ما هي مشاريع %s؟", ordinal),
			fmt.Sprintf("مشاريع %s", ordinal),
		)
	}
	return prompts
}

func yearNumber(year string) string {
	if m := yearNumberPattern.FindStringSubmatch(year); m != nil {
		return m[1]
	}
	return ""
}

func yearOrdinal(year string) string {
	lower := strings.ToLower(year)
	for _, o := range ordinalYears {
		if strings.Contains(lower, o) {
			return o
		}
	}
	return ""
}

func (sy synthesizer) visionMission() {
	h := sy.s.House
	if !h.Present {
		return
	}
	if h.Vision != "" {
		sy.put(visionPrompts, h.Vision, sourcePrefix+"strategicHouse.vision")
	}
	if h.Mission != "" {
		sy.put(missionPrompts, h.Mission, sourcePrefix+"strategicHouse.mission")
	}
}

func (sy synthesizer) methodology() {
	m := sy.s.Methodology
	if m == nil {
		return
	}
	title := m.Title
	if title == "" {
		title = "منهجية تطوير استراتيجية التحول الرقمي"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", title)
	fmt.Fprintf(&b, "%s\n\n", m.Introduction)
	if len(m.Steps) > 0 {
		b.WriteString("تتكون المنهجية المتبعة من عدة خطوات رئيسية، وهي كالتالي:\n\n")
		for _, st := range m.Steps {
			fmt.Fprintf(&b, "### الخطوة %s: %s\n", st.Step, st.Title)
			if st.Description != "" {
				fmt.Fprintf(&b, "**الوصف:** %s\n", st.Description)
			}
			if st.Details != "" {
				fmt.Fprintf(&b, "**التفاصيل:** %s\n", st.Details)
			}
			b.WriteString("\n")
		}
	}
	sy.put(methodologyPrompts, b.String(), sourcePrefix+"developmentMethodology.summary")
}

func (sy synthesizer) projectByID(id string) (Project, bool) {
	for _, p := range sy.s.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}

func (sy synthesizer) initiativeByName(name string) (Initiative, bool) {
	if name == "" {
		return Initiative{}, false
	}
	for _, in := range sy.s.Initiatives {
		if in.Name == name {
			return in, true
		}
	}
	return Initiative{}, false
}

// yearOf returns the first roadmap year scheduling the project.
func (sy synthesizer) yearOf(id string) string {
	for _, y := range sy.s.Timeline {
		for _, pid := range y.ProjectIDs {
			if pid == id {
				return y.Name
			}
		}
	}
	return ""
}

// objectivesForDomain returns the objectives of every pillar mapped to
// domain, deduplicated by ID.
func (sy synthesizer) objectivesForDomain(domain string) []Objective {
	var out []Objective
	seen := make(map[string]bool)
	for _, pillar := range domainPillars[domain] {
		for _, o := range sy.s.House.Objectives {
			if o.Pillar == pillar && !seen[o.ID] {
				seen[o.ID] = true
				out = append(out, o)
			}
		}
	}
	return out
}

// kpisFor returns the KPIs related to any of objectives, deduplicated by ID.
func (sy synthesizer) kpisFor(objectives []Objective) []KPI {
	var out []KPI
	seen := make(map[string]bool)
	for _, o := range objectives {
		for _, k := range sy.s.KPIs {
			if k.RelatedObjective == o.Name && !seen[k.ID] {
				seen[k.ID] = true
				out = append(out, k)
			}
		}
	}
	return out
}

// gapsBridgedBy returns the gaps naming the initiative as their bridge.
func (sy synthesizer) gapsBridgedBy(initiative string) []Gap {
	var out []Gap
	for _, d := range sy.s.GapDomains {
		for _, g := range d.Gaps {
			if g.BridgingInitiative != "" && strings.Contains(g.BridgingInitiative, initiative) {
				out = append(out, g)
			}
		}
	}
	return out
}

func (sy synthesizer) priorityOf(id string) string {
	for _, p := range sy.s.Priorities {
		if p.ID == id {
			return p.Priority
		}
	}
	return ""
}

func writeObjectivesAndKPIs(b *strings.Builder, objectives []Objective, kpis []KPI) {
	for _, o := range objectives {
		fmt.Fprintf(b, "- **%s %s** (الركيزة: %s)\n", o.ID, o.Name, o.Pillar)
	}
	b.WriteString("\n")
	if len(kpis) > 0 {
		b.WriteString("**المؤشرات الاستراتيجية المرتبطة بهذه الأهداف:**\n")
		for _, k := range kpis {
			fmt.Fprintf(b, "- **%s:** %s\n", k.ID, k.Name)
		}
		b.WriteString("\n")
	}
}

func writeAlignment(b *strings.Builder, alignment []Alignment) {
	for _, a := range alignment {
		if a.VisionObjective != "" && a.ProjectContribution != "" {
			fmt.Fprintf(b, "- **%s:** %s\n", strings.TrimSpace(a.VisionObjective), strings.TrimSpace(a.ProjectContribution))
		}
	}
	b.WriteString("\n")
}

func (sy synthesizer) projects() {
	for _, p := range sy.s.Projects {
		if p.ID == "" || p.Name == "" {
			continue
		}
		year := sy.yearOf(p.ID)
		priority := sy.priorityOf(p.ID)
		sy.put(projectPrompts(p, year, priority), sy.projectProfile(p, year, priority), sourcePrefix+"futureProjects.projects."+p.ID)
	}
}

func (sy synthesizer) projectProfile(p Project, year, priority string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## تفاصيل مشروع: %s (المعرف: %s)\n\n", p.Name, p.ID)
	fmt.Fprintf(&b, "**المشروع:** %s\n", p.Name)
	fmt.Fprintf(&b, "**المعرف:** %s\n", p.ID)
	if p.Cost != "" {
		fmt.Fprintf(&b, "**التكلفة المقدرة:** %s ريال سعودي\n", p.Cost)
	}
	if p.Duration != "" {
		fmt.Fprintf(&b, "**مدة التنفيذ المقدرة:** %s شهرًا\n", p.Duration)
	}
	if year != "" {
		fmt.Fprintf(&b, "\n**سنة التنفيذ المخطط لها:** %s.\n", year)
		fmt.Fprintf(&b, "سيتم تنفيذ هذا المشروع ضمن خطة %s.\n\n", year)
	}

	parent, hasParent := sy.initiativeByName(p.Initiative)
	if hasParent {
		fmt.Fprintf(&b, "\n### المبادرة الأم: %s\n", parent.Name)
		if parent.Description != "" {
			fmt.Fprintf(&b, "**وصف وأهداف المبادرة:** %s\n", parent.Description)
		}
	} else if p.Initiative != "" {
		fmt.Fprintf(&b, "\n**المبادرة الأم:** %s (لم يتم العثور على تفاصيل إضافية لهذه المبادرة).\n", p.Initiative)
	}
	b.WriteString("\n")

	if objectives := sy.objectivesForDomain(parent.Domain); len(objectives) > 0 {
		via := parent.Name
		if via == "" {
			via = p.Initiative
		}
		b.WriteString("### الأهداف الاستراتيجية (للتحول الرقمي) المرتبطة:\n")
		fmt.Fprintf(&b, "يساهم هذا المشروع، من خلال مبادرته الأم \"%s\", في تحقيق الأهداف الاستراتيجية التالية للتحول الرقمي:\n", via)
		writeObjectivesAndKPIs(&b, objectives, sy.kpisFor(objectives))
	}

	if priority != "" {
		fmt.Fprintf(&b, "**درجة أهمية المشروع (الأولوية):** %s\n\n", priority)
	}

	if hasParent {
		if gaps := sy.gapsBridgedBy(parent.Name); len(gaps) > 0 {
			b.WriteString("### التحديات والمشاكل التي يعالجها المشروع (من خلال سد الفجوات عبر المبادرة الأم):\n")
			fmt.Fprintf(&b, "يهدف هذا المشروع، من خلال مبادرته الأم \"%s\", إلى معالجة التحديات والمشاكل (الفجوات) التالية:\n\n", parent.Name)
			for _, g := range gaps {
				fmt.Fprintf(&b, "#### تحدي/مشكلة (فجوة): %s\n", g.Description)
				if g.Impact != "" {
					fmt.Fprintf(&b, "- **التأثير السلبي الحالي:** %s\n", g.Impact)
				}
				if g.FutureState != "" {
					fmt.Fprintf(&b, "- **الوضع المستهدف بعد المعالجة:** %s\n", g.FutureState)
				}
				b.WriteString("\n")
			}
		}
	}

	if len(p.Alignment) > 0 {
		fmt.Fprintf(&b, "\n%s\n", VisionSectionHeader)
		b.WriteString("يساهم هذا المشروع في تحقيق أهداف رؤية المملكة 2030 من خلال النقاط التالية:\n")
		writeAlignment(&b, p.Alignment)
	}
	return b.String()
}

func projectPrompts(p Project, year, priority string) []string {
	n := p.Name
	prompts := []string{
		fmt.Sprintf("ما هي تفاصيل مشروع \"%s\"؟", n), fmt.Sprintf("معلومات عن مشروع \"%s\"", n),
		fmt.Sprintf("حدثني عن مشروع \"%s\"", n), fmt.Sprintf("ما هو مشروع \"%s\" (المعرف %s)؟", n, p.ID),
		fmt.Sprintf("تفاصيل %s", p.ID), fmt.Sprintf("مشروع %s", p.ID), fmt.Sprintf("\"%s\"", n),
		fmt.Sprintf("ما هي أهداف مشروع \"%s\"؟", n),
		fmt.Sprintf("ما هو تأثير مشروع \"%s\"؟", n),
		fmt.Sprintf("ما هو الأثر من تنفيذ مشروع \"%s\"؟", n), fmt.Sprintf("ماذا يحقق مشروع \"%s\"؟", n),
		fmt.Sprintf("ما هي الأهداف الاستراتيجية المرتبطة بمشروع \"%s\"؟", n),
		fmt.Sprintf("اذكر الأهداف الاستراتيجية لمشروع \"%s\"", n),
		fmt.Sprintf("ما هي المؤشرات الاستراتيجية المرتبطة بمشروع \"%s\"؟", n),
		fmt.Sprintf("ما هي مؤشرات الأداء المتأثرة بمشروع \"%s\"؟", n),
		fmt.Sprintf("اذكر المؤشرات الاستراتيجية المرتبطة والمتأثرة بمشروع \"%s\"", n),
		fmt.Sprintf("ما هي درجة أهمية مشروع \"%s\"؟", n),
		fmt.Sprintf("ما مدى أهمية مشروع \"%s\"؟", n),
		ProjectVisionPrompt(n),
		fmt.Sprintf("كيف يساهم مشروع %s في تحقيق رؤية المملكة 2030؟", n),
		fmt.Sprintf("مساهمة مشروع %s في رؤية 2030", n),
		fmt.Sprintf("كيف يدعم مشروع %s رؤية المملكة 2030؟", n),
		fmt.Sprintf("ما هي التحديات التي يعالجها مشروع \"%s\"؟", n),
		fmt.Sprintf("ما هي المشاكل التي يحلها مشروع \"%s\"؟", n),
		fmt.Sprintf("ما هي التحديات أو المشاكل المتوقع معالجتها في حال تمت الموافقة على مشروع \"%s\"؟", n),
		fmt.Sprintf("التحديات التي يتصدى لها مشروع \"%s\"", n),
		fmt.Sprintf("المشاكل التي يعالجها مشروع \"%s\"", n),
	}

	if year != "" {
		prompts = append(prompts,
			fmt.Sprintf("في أي سنة سيتم تنفيذ مشروع \"%s\"؟", n),
			fmt.Sprintf("متى سيتم تنفيذ مشروع \"%s\"؟", n),
			fmt.Sprintf("ما هي سنة تنفيذ مشروع \"%s\"؟", n),
			fmt.Sprintf("جدول تنفيذ مشروع \"%s\"", n),
		)
		if number := yearNumber(year); number != "" {
			prompts = append(prompts,
				fmt.Sprintf("في أي عام سيبدأ مشروع \"%s\"؟", n),
				fmt.Sprintf("في أي عام (%s) يخطط لتنفيذ مشروع \"%s\"؟", number, n),
			)
		}
	}

	if short := significantLastPart(n); short != "" {
		prompts = append(prompts,
			fmt.Sprintf("ما هو مشروع \"%s\"؟", short),
			fmt.Sprintf("تفاصيل مشروع \"%s\"", short),
			fmt.Sprintf("أهداف مشروع \"%s\"", short),
			fmt.Sprintf("تأثير مشروع \"%s\"", short),
			fmt.Sprintf("الأهداف الاستراتيجية لمشروع \"%s\"", short),
			fmt.Sprintf("درجة أهمية مشروع \"%s\"", short),
		)
		if year != "" {
			prompts = append(prompts, fmt.Sprintf("في أي سنة سيتم تنفيذ مشروع \"%s\"؟", short))
		}
		prompts = append(prompts, ProjectVisionPrompt(short))
	}

	if strings.Contains(n, "مصادر") {
		prompts = append(prompts,
			"ما هو مشروع مصادر؟", "تفاصيل مشروع مصادر", "أهداف مشروع مصادر", "تأثير مشروع مصادر",
			"الأهداف الاستراتيجية لمشروع مصادر", "درجة أهمية مشروع مصادر",
			ProjectVisionPrompt("مصادر"),
		)
		if year != "" {
			prompts = append(prompts, "في أي سنة سيتم تنفيذ مشروع مصادر؟")
		}
	}

	if priority != "" {
		prompts = append(prompts, fmt.Sprintf("هل مشروع \"%s\" ذو أولوية %s؟", n, priority))
	}
	return prompts
}

// significantLastPart returns the last word of a multi-word name when it is
// long enough to identify the project on its own.
func significantLastPart(name string) string {
	parts := nameSplitPattern.Split(name, -1)
	if len(parts) < 2 {
		return ""
	}
	last := parts[len(parts)-1]
	if utf8.RuneCountInString(last) <= 2 || digitsPattern.MatchString(last) {
		return ""
	}
	if strings.EqualFold(last, name) {
		return ""
	}
	return last
}

func (sy synthesizer) initiatives() {
	for _, in := range sy.s.Initiatives {
		if in.ID == "" || in.Name == "" {
			continue
		}
		sy.put(initiativePrompts(in), sy.initiativeProfile(in), sourcePrefix+"digitalTransformationInitiatives.initiativeDetails."+in.ID)
	}
}

func (sy synthesizer) initiativeProfile(in Initiative) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## تفاصيل مبادرة: %s (المعرف: %s)\n\n", in.Name, in.ID)
	fmt.Fprintf(&b, "**المبادرة:** %s\n", in.Name)
	fmt.Fprintf(&b, "**المعرف:** %s\n", in.ID)
	if in.Description != "" {
		fmt.Fprintf(&b, "**الوصف:** %s\n", in.Description)
	}
	if in.Domain != "" {
		fmt.Fprintf(&b, "**المجال:** %s\n", in.Domain)
	}
	if in.EstimatedCost != "" {
		fmt.Fprintf(&b, "**التكلفة المقدرة:** %s\n", in.EstimatedCost)
	}
	if in.ProjectCount != "" {
		fmt.Fprintf(&b, "**عدد المشاريع التابعة:** %s\n", in.ProjectCount)
	}

	if len(in.ProjectNames) > 0 {
		b.WriteString("\n### المشاريع التابعة لهذه المبادرة:\n")
		for _, name := range in.ProjectNames {
			fmt.Fprintf(&b, "- %s", name)
			for _, p := range sy.s.Projects {
				if p.Name == name {
					fmt.Fprintf(&b, " (المعرف: %s)", p.ID)
					break
				}
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if objectives := sy.objectivesForDomain(in.Domain); len(objectives) > 0 {
		b.WriteString("### الأهداف الاستراتيجية العامة التي تساهم بها المبادرة:\n")
		writeObjectivesAndKPIs(&b, objectives, sy.kpisFor(objectives))
	}

	if gaps := sy.gapsBridgedBy(in.Name); len(gaps) > 0 {
		b.WriteString("### تأثير المبادرة (من خلال معالجة الفجوات):\n")
		b.WriteString("**الفجوات التي تساهم هذه المبادرة في معالجتها:**\n\n")
		for _, g := range gaps {
			fmt.Fprintf(&b, "#### فجوة: %s\n", g.Description)
			if g.Impact != "" {
				fmt.Fprintf(&b, "- **التأثير السلبي للفجوة (قبل المعالجة):** %s\n", g.Impact)
			}
			if g.FutureState != "" {
				fmt.Fprintf(&b, "- **الوضع المستقبلي المستهدف (بعد المعالجة):** %s\n", g.FutureState)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func initiativePrompts(in Initiative) []string {
	n := in.Name
	prompts := []string{
		fmt.Sprintf("ما هي تفاصيل مبادرة \"%s\"؟", n), fmt.Sprintf("معلومات عن مبادرة \"%s\"", n),
		fmt.Sprintf("حدثني عن مبادرة \"%s\"", n), fmt.Sprintf("ما هي مبادرة \"%s\" (المعرف %s)؟", n, in.ID),
		fmt.Sprintf("تفاصيل المبادرة %s", in.ID), fmt.Sprintf("مبادرة %s", in.ID), fmt.Sprintf("\"%s\"", n),
		fmt.Sprintf("ما هي أهداف مبادرة \"%s\"؟", n),
		fmt.Sprintf("ما هو تأثير مبادرة \"%s\"؟", n),
		fmt.Sprintf("ما هو الأثر من تنفيذ مبادرة \"%s\"؟", n), fmt.Sprintf("ماذا تحقق مبادرة \"%s\"؟", n),
		fmt.Sprintf("ما هي الأهداف الاستراتيجية المرتبطة بمبادرة \"%s\"؟", n),
		fmt.Sprintf("اذكر الأهداف الاستراتيجية لمبادرة \"%s\"", n),
		fmt.Sprintf("ما هي المؤشرات الاستراتيجية المرتبطة بمبادرة \"%s\"؟", n),
		fmt.Sprintf("ما هي مؤشرات الأداء المتأثرة بمبادرة \"%s\"؟", n),
		fmt.Sprintf("اذكر المؤشرات الاستراتيجية المرتبطة والمتأثرة بمبادرة \"%s\"", n),
		fmt.Sprintf("ما هي المشاريع التابعة لمبادرة \"%s\"؟", n),
		fmt.Sprintf("ما هي الفجوات التي تعالجها مبادرة \"%s\"؟", n),
	}
	parts := nameSplitPattern.Split(n, -1)
	if len(parts) > 2 && strings.HasPrefix(n, "مبادرة") {
		if short := strings.Join(parts[1:], " "); utf8.RuneCountInString(short) > 3 {
			prompts = append(prompts,
				fmt.Sprintf("ما هي مبادرة \"%s\"؟", short),
				fmt.Sprintf("تفاصيل مبادرة \"%s\"", short),
				fmt.Sprintf("الأهداف الاستراتيجية لمبادرة \"%s\"", short),
			)
		}
	}
	return prompts
}

func (sy synthesizer) objectiveVisions() {
	for _, o := range sy.s.House.Objectives {
		if o.ID == "" || o.Name == "" || len(o.Alignment) == 0 {
			continue
		}
		var b strings.Builder
		fmt.Fprintf(&b, "%s \"%s\" (المعرف: %s) في رؤية المملكة 2030\n\n", ObjectiveVisionHeader, o.Name, o.ID)
		fmt.Fprintf(&b, "يساهم هدف التحول الرقمي **\"%s\"** في تحقيق أهداف رؤية المملكة 2030 من خلال النقاط التالية:\n", o.Name)
		writeAlignment(&b, o.Alignment)
		prompts := []string{
			ObjectiveVisionPrompt(o.Name),
			fmt.Sprintf("كيف يساهم هدف %s في تحقيق رؤية 2030؟", o.Name),
			fmt.Sprintf("مواءمة هدف %s مع رؤية 2030", o.Name),
			fmt.Sprintf("مساهمة هدف %s في رؤية 2030", o.Name),
			fmt.Sprintf("ما هي مساهمة هدف %s في رؤية المملكة 2030؟", o.Name),
			fmt.Sprintf("كيف يدعم هدف %s رؤية المملكة 2030؟", o.Name),
		}
		sy.put(prompts, b.String(), sourcePrefix+"strategicHouse.objectivesData.objectives."+o.ID+".vision2030Alignment")
	}
}

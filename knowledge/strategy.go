package knowledge

// StrategyKey is the optional envelope key wrapping the strategy document.
const StrategyKey = "digitalTransformationStrategy"

// Strategy is a typed view over the recognized parts of the document.
// Collections are nil when the document lacks them and empty when present
// but empty. Fields of the wrong JSON type read as unset.
type Strategy struct {
	House       House
	Timeline    []Year
	Projects    []Project
	Initiatives []Initiative
	GapDomains  []GapDomain
	KPIs        []KPI
	Priorities  []Priority
	Methodology *Methodology
}

// House is the strategic house: vision, mission, pillars and objectives.
type House struct {
	Present         bool
	Title           string
	Vision          string
	Mission         string
	Pillars         []Pillar
	ObjectivesIntro string
	Objectives      []Objective
}

// Pillar groups strategic objectives.
type Pillar struct {
	Name        string
	Description string
}

// Objective is a strategic objective.
type Objective struct {
	ID          string
	Name        string
	Pillar      string
	Description string
	Owner       string
	Alignment   []Alignment
}

// Alignment is one Vision 2030 contribution statement.
type Alignment struct {
	VisionObjective     string
	ProjectContribution string
}

// Year is a roadmap timeline entry.
type Year struct {
	Name         string
	ProjectIDs   []string
	Cost         string
	ProjectCount string
}

// Project is a future project record.
type Project struct {
	ID         string
	Name       string
	Cost       string
	Duration   string
	Initiative string
	Alignment  []Alignment
}

// Initiative is a digital transformation initiative.
type Initiative struct {
	ID            string
	Name          string
	Domain        string
	Description   string
	EstimatedCost string
	ProjectCount  string
	ProjectNames  []string
}

// GapDomain groups gaps found by the gap analysis.
type GapDomain struct {
	Gaps []Gap
}

// Gap is a problem an initiative is meant to bridge.
type Gap struct {
	Description        string
	Impact             string
	FutureState        string
	BridgingInitiative string
}

// KPI is a performance indicator measuring an objective.
type KPI struct {
	ID               string
	Name             string
	RelatedObjective string
}

// Priority assigns a priority to a project ID.
type Priority struct {
	ID       string
	Priority string
}

// Methodology describes how the strategy was developed.
type Methodology struct {
	Title        string
	Introduction string
	Steps        []Step
}

// Step is one methodology step.
type Step struct {
	Step        string
	Title       string
	Description string
	Details     string
}

// Unwrap returns the strategy body, descending into the optional envelope.
func Unwrap(root *Node) *Node {
	if inner := root.Field(StrategyKey); inner.Truthy() {
		return inner
	}
	return root
}

// DecodeStrategy reads the typed view from an unwrapped document.
func DecodeStrategy(doc *Node) Strategy {
	var s Strategy

	if house := doc.Field("strategicHouse"); house.Truthy() {
		s.House.Present = true
		s.House.Title = str(house, "title")
		s.House.Vision = onlyString(house, "vision")
		s.House.Mission = onlyString(house, "mission")
		if pillars := list(house.Field("pillarsData").Field("pillars")); pillars != nil {
			s.House.Pillars = make([]Pillar, 0, len(pillars))
			for _, p := range pillars {
				s.House.Pillars = append(s.House.Pillars, Pillar{
					Name:        str(p, "name"),
					Description: str(p, "description"),
				})
			}
		}
		objData := house.Field("objectivesData")
		s.House.ObjectivesIntro = str(objData, "introduction")
		s.House.Objectives = decodeObjectives(list(objData.Field("objectives")))
	}

	if timeline := list(doc.Field("roadmap").Field("timeline")); timeline != nil {
		s.Timeline = make([]Year, 0, len(timeline))
		for _, y := range timeline {
			s.Timeline = append(s.Timeline, Year{
				Name:         str(y, "year"),
				ProjectIDs:   texts(y.Field("projects")),
				Cost:         str(y, "cost"),
				ProjectCount: number(y, "projectCount"),
			})
		}
	}

	if projects := list(doc.Field("futureProjects").Field("projects")); projects != nil {
		s.Projects = make([]Project, 0, len(projects))
		for _, p := range projects {
			s.Projects = append(s.Projects, Project{
				ID:         str(p, "id"),
				Name:       str(p, "name"),
				Cost:       str(p, "cost_sar"),
				Duration:   str(p, "duration_months"),
				Initiative: str(p, "initiative"),
				Alignment:  decodeAlignment(p),
			})
		}
	}

	if initiatives := list(doc.Field("digitalTransformationInitiatives").Field("initiativeDetails")); initiatives != nil {
		s.Initiatives = make([]Initiative, 0, len(initiatives))
		for _, in := range initiatives {
			s.Initiatives = append(s.Initiatives, Initiative{
				ID:            str(in, "id"),
				Name:          str(in, "name"),
				Domain:        str(in, "domain"),
				Description:   str(in, "description"),
				EstimatedCost: str(in, "estimatedCost"),
				ProjectCount:  number(in, "projectCount"),
				ProjectNames:  texts(in.Field("projects")),
			})
		}
	}

	if domains := list(doc.Field("gapAnalysis").Field("domains")); domains != nil {
		s.GapDomains = make([]GapDomain, 0, len(domains))
		for _, d := range domains {
			var domain GapDomain
			for _, g := range list(d.Field("gaps")) {
				domain.Gaps = append(domain.Gaps, Gap{
					Description:        str(g, "description"),
					Impact:             str(g, "impact"),
					FutureState:        str(g, "futureState"),
					BridgingInitiative: onlyString(g, "bridgingInitiative"),
				})
			}
			s.GapDomains = append(s.GapDomains, domain)
		}
	}

	if kpis := list(doc.Field("performanceIndicators").Field("kpis")); kpis != nil {
		s.KPIs = make([]KPI, 0, len(kpis))
		for _, k := range kpis {
			s.KPIs = append(s.KPIs, KPI{
				ID:               str(k, "id"),
				Name:             str(k, "name"),
				RelatedObjective: str(k, "relatedObjective"),
			})
		}
	}

	if priorities := list(doc.Field("projectPrioritization").Field("priorities")); priorities != nil {
		s.Priorities = make([]Priority, 0, len(priorities))
		for _, p := range priorities {
			s.Priorities = append(s.Priorities, Priority{
				ID:       str(p, "id"),
				Priority: str(p, "priority"),
			})
		}
	}

	if m := doc.Field("developmentMethodology"); m.Truthy() {
		intro := onlyString(m, "introduction")
		steps := list(m.Field("steps"))
		if intro != "" && steps != nil {
			s.Methodology = &Methodology{
				Title:        str(m, "title"),
				Introduction: intro,
				Steps:        make([]Step, 0, len(steps)),
			}
			for _, st := range steps {
				s.Methodology.Steps = append(s.Methodology.Steps, Step{
					Step:        str(st, "step"),
					Title:       str(st, "title"),
					Description: str(st, "description"),
					Details:     str(st, "details"),
				})
			}
		}
	}

	return s
}

func decodeObjectives(nodes []*Node) []Objective {
	if nodes == nil {
		return nil
	}
	out := make([]Objective, 0, len(nodes))
	for _, o := range nodes {
		out = append(out, Objective{
			ID:          str(o, "id"),
			Name:        str(o, "name"),
			Pillar:      str(o, "pillar"),
			Description: str(o, "description"),
			Owner:       str(o, "owner"),
			Alignment:   decodeAlignment(o),
		})
	}
	return out
}

func decodeAlignment(n *Node) []Alignment {
	var out []Alignment
	for _, a := range list(n.Field("vision2030Alignment")) {
		out = append(out, Alignment{
			VisionObjective:     onlyString(a, "visionObjective"),
			ProjectContribution: onlyString(a, "projectContribution"),
		})
	}
	return out
}

// list returns the items of an array node, an empty non-nil slice for an
// empty array, and nil for anything else.
func list(n *Node) []*Node {
	if n == nil || n.Kind != Array {
		return nil
	}
	if n.Items == nil {
		return []*Node{}
	}
	return n.Items
}

// str returns a set scalar field as text, or "".
func str(n *Node, key string) string {
	f := n.Field(key)
	if !f.Truthy() || f.IsComposite() {
		return ""
	}
	return f.Text()
}

func onlyString(n *Node, key string) string {
	f := n.Field(key)
	if f == nil || f.Kind != String {
		return ""
	}
	return f.Scalar
}

func number(n *Node, key string) string {
	f := n.Field(key)
	if f == nil || f.Kind != Number {
		return ""
	}
	return f.Scalar
}

// texts returns the scalar items of an array node as text.
func texts(n *Node) []string {
	items := list(n)
	if items == nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if !item.IsComposite() && item.Kind != Null {
			out = append(out, item.Text())
		}
	}
	return out
}

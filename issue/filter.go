package issue

// All is the wildcard filter value.
const All = "All"

// Filter option lists, wildcard first, in selector order.
var (
	StatusOptions   = []string{All, StatusOpen, StatusInProgress, StatusResolved}
	SeverityOptions = []string{All, SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}
	TypeOptions     = []string{All, TypeHighConsumption, TypeLowConsumption, TypeIntermittent}
)

// Criteria holds one equality constraint per dimension. An empty value or
// All leaves that dimension unconstrained.
type Criteria struct {
	Status   string
	Severity string
	Type     string
}

// IsWildcard reports whether no dimension is constrained.
func (c Criteria) IsWildcard() bool {
	return wildcard(c.Status) && wildcard(c.Severity) && wildcard(c.Type)
}

// Matches reports whether i satisfies every constraint.
func (c Criteria) Matches(i Issue) bool {
	if !wildcard(c.Status) && i.Status != c.Status {
		return false
	}
	if !wildcard(c.Severity) && i.Severity != c.Severity {
		return false
	}
	if !wildcard(c.Type) && i.Type != c.Type {
		return false
	}
	return true
}

func wildcard(v string) bool {
	return v == "" || v == All
}

// Filter returns the issues matching c in their original order. The result
// is never nil.
func Filter(issues []Issue, c Criteria) []Issue {
	filtered := make([]Issue, 0, len(issues))
	for _, i := range issues {
		if c.Matches(i) {
			filtered = append(filtered, i)
		}
	}
	return filtered
}

// Summary holds the dashboard counters. They are always computed over the
// full collection, never the filtered one.
type Summary struct {
	Total           int
	Critical        int
	Open            int
	HighConsumption int
	Resolved        int
}

// Summarize counts the summary statistics over issues.
func Summarize(issues []Issue) Summary {
	s := Summary{Total: len(issues)}
	for _, i := range issues {
		if i.Severity == SeverityCritical {
			s.Critical++
		}
		if i.Type == TypeHighConsumption {
			s.HighConsumption++
		}
		switch i.Status {
		case StatusOpen:
			s.Open++
		case StatusResolved:
			s.Resolved++
		}
	}
	return s
}

// Cycle returns the option after (or before, when step is negative)
// current, wrapping around. Unknown values restart at the first option.
func Cycle(options []string, current string, step int) string {
	if len(options) == 0 {
		return current
	}
	idx := -1
	for n, o := range options {
		if o == current {
			idx = n
			break
		}
	}
	if idx < 0 {
		return options[0]
	}
	n := len(options)
	return options[((idx+step)%n+n)%n]
}

// Normalize maps values outside options to All.
func Normalize(options []string, v string) string {
	for _, o := range options {
		if o == v {
			return v
		}
	}
	return All
}

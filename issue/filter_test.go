package issue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleIssues() []Issue {
	return []Issue{
		{ID: 1, Status: StatusOpen, Severity: SeverityCritical, Type: TypeHighConsumption},
		{ID: 2, Status: StatusResolved, Severity: SeverityLow, Type: TypeLowConsumption},
		{ID: 3, Status: StatusOpen, Severity: SeverityHigh, Type: TypeIntermittent},
		{ID: 4, Status: StatusInProgress, Severity: SeverityCritical, Type: TypeHighConsumption},
		{ID: 5, Status: StatusOpen, Severity: SeverityCritical, Type: TypeLowConsumption},
	}
}

func ids(issues []Issue) []int {
	out := make([]int, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.ID)
	}
	return out
}

// TestFilter tests each dimension alone and in combination
func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     []int
	}{
		{name: "all wildcards", criteria: Criteria{Status: All, Severity: All, Type: All}, want: []int{1, 2, 3, 4, 5}},
		{name: "empty criteria", criteria: Criteria{}, want: []int{1, 2, 3, 4, 5}},
		{name: "status only", criteria: Criteria{Status: StatusOpen, Severity: All, Type: All}, want: []int{1, 3, 5}},
		{name: "severity only", criteria: Criteria{Status: All, Severity: SeverityCritical, Type: All}, want: []int{1, 4, 5}},
		{name: "type only", criteria: Criteria{Status: All, Severity: All, Type: TypeLowConsumption}, want: []int{2, 5}},
		{name: "status and severity", criteria: Criteria{Status: StatusOpen, Severity: SeverityCritical, Type: All}, want: []int{1, 5}},
		{name: "all three", criteria: Criteria{Status: StatusOpen, Severity: SeverityCritical, Type: TypeHighConsumption}, want: []int{1}},
		{name: "no match", criteria: Criteria{Status: StatusResolved, Severity: SeverityCritical, Type: All}, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(sampleIssues(), tt.criteria)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterWildcardReturnsCollectionUnchanged(t *testing.T) {
	issues := sampleIssues()
	assert.Equal(t, issues, Filter(issues, Criteria{Status: All, Severity: All, Type: All}))
}

func TestFilterScenario(t *testing.T) {
	issues := []Issue{
		{ID: 1, Status: StatusOpen},
		{ID: 2, Status: StatusResolved},
		{ID: 3, Status: StatusOpen},
	}

	assert.Equal(t, []int{1, 3}, ids(Filter(issues, Criteria{Status: StatusOpen})))
	assert.Equal(t, 2, Summarize(issues).Open)

	issues[2].Status = StatusResolved
	s := Summarize(issues)
	assert.Equal(t, 1, s.Open)
	assert.Equal(t, 2, s.Resolved)
}

func TestSummarizeIgnoresFilter(t *testing.T) {
	issues := sampleIssues()
	want := Summary{Total: 5, Critical: 3, Open: 3, HighConsumption: 2, Resolved: 1}

	assert.Equal(t, want, Summarize(issues))

	// the filtered view must not feed the counters
	_ = Filter(issues, Criteria{Status: StatusResolved})
	assert.Equal(t, want, Summarize(issues))
}

func TestCriteriaIsWildcard(t *testing.T) {
	assert.True(t, Criteria{}.IsWildcard())
	assert.True(t, Criteria{Status: All, Severity: All, Type: All}.IsWildcard())
	assert.False(t, Criteria{Severity: SeverityLow}.IsWildcard())
}

func TestCycle(t *testing.T) {
	assert.Equal(t, StatusOpen, Cycle(StatusOptions, All, 1))
	assert.Equal(t, All, Cycle(StatusOptions, StatusResolved, 1))
	assert.Equal(t, StatusResolved, Cycle(StatusOptions, All, -1))
	assert.Equal(t, All, Cycle(StatusOptions, "bogus", 1))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, SeverityHigh, Normalize(SeverityOptions, SeverityHigh))
	assert.Equal(t, All, Normalize(SeverityOptions, "Severe"))
	assert.Equal(t, All, Normalize(TypeOptions, ""))
}

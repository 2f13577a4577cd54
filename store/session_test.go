package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/heyandras/gridwatch/issue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSession(t *testing.T, content string) (*Session, string) {
	t.Helper()
	path := writeDoc(t, content)
	s, err := Open(New(path, nil))
	require.NoError(t, err)
	return s, path
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(New(filepath.Join(t.TempDir(), "missing.json"), nil))
	assert.ErrorIs(t, err, ErrDataLoad)
}

func TestSessionServesFromMemory(t *testing.T) {
	s, path := openSession(t, sampleDoc)

	require.NoError(t, os.Remove(path))

	assert.Len(t, s.Issues(), 3)
	assert.Equal(t, 2, s.Summary().Open)
	assert.Len(t, s.Filter(issue.Criteria{Severity: issue.SeverityLow}), 1)
}

func TestIssuesReturnsCopy(t *testing.T) {
	s, _ := openSession(t, sampleDoc)

	issues := s.Issues()
	issues[0].Status = issue.StatusResolved

	got, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, issue.StatusOpen, got.Status)
}

func TestUpdateChangesOnlyStatusAndSolution(t *testing.T) {
	s, path := openSession(t, sampleDoc)
	before := s.Issues()

	require.NoError(t, s.Update(1, issue.StatusInProgress, "Timers reprogrammed"))

	reloaded, err := New(path, nil).Load()
	require.NoError(t, err)
	require.Len(t, reloaded, len(before))

	want := before
	want[0].Status = issue.StatusInProgress
	want[0].Solution = "Timers reprogrammed"

	if diff := cmp.Diff(want, reloaded); diff != "" {
		t.Errorf("unexpected document after update (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, s.Issues()); diff != "" {
		t.Errorf("session cache not refreshed (-want +got):\n%s", diff)
	}
}

func TestUpdateKeepsOtherRecordsStoredValues(t *testing.T) {
	s, path := openSession(t, `[
		{"id": 1, "status": "Open"},
		{"id": 2, "location": "", "reported_date": 20240115, "description": null}
	]`)

	require.NoError(t, s.Update(1, issue.StatusResolved, "Fixed"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc, 2)

	untouched := doc[1]
	assert.Equal(t, `""`, string(untouched["location"]))
	assert.Equal(t, `20240115`, string(untouched["reported_date"]))
	assert.Equal(t, `null`, string(untouched["description"]))
	assert.NotContains(t, untouched, "recommended_action")
}

func TestUpdateScenario(t *testing.T) {
	s, _ := openSession(t, `[
		{"id": 1, "status": "Open"},
		{"id": 2, "status": "Resolved"},
		{"id": 3, "status": "Open"}
	]`)

	open := s.Filter(issue.Criteria{Status: issue.StatusOpen})
	require.Len(t, open, 2)
	assert.Equal(t, 1, open[0].ID)
	assert.Equal(t, 3, open[1].ID)
	assert.Equal(t, 2, s.Summary().Open)

	require.NoError(t, s.Update(3, issue.StatusResolved, ""))

	summary := s.Summary()
	assert.Equal(t, 1, summary.Open)
	assert.Equal(t, 2, summary.Resolved)
}

func TestUpdateUnknownID(t *testing.T) {
	s, path := openSession(t, sampleDoc)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	err = s.Update(42, issue.StatusResolved, "n/a")
	assert.ErrorIs(t, err, ErrNotFound)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, 42, nf.ID)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after), "document must not be rewritten")
}

func TestUpdateInvalidStatus(t *testing.T) {
	s, _ := openSession(t, sampleDoc)

	err := s.Update(1, "Closed", "")
	assert.ErrorIs(t, err, issue.ErrInvalidStatus)

	got, _ := s.Get(1)
	assert.Equal(t, issue.StatusOpen, got.Status)
}

func TestUpdatePersistFailureKeepsEdit(t *testing.T) {
	s, path := openSession(t, `[
		{"id": 1, "status": "Open"},
		{"id": 2, "status": "Resolved"},
		{"id": 3, "status": "Open"}
	]`)
	restore := breakDir(t, path)

	err := s.Update(3, issue.StatusResolved, "Replaced contactor")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDataPersist)

	got, ok := s.Get(3)
	require.True(t, ok)
	assert.Equal(t, issue.StatusResolved, got.Status)
	assert.Equal(t, "Replaced contactor", got.Solution)
	assert.Equal(t, 2, s.Summary().Resolved)

	// retry once the location is writable again
	restore()
	require.NoError(t, s.Save())

	reloaded, err := New(path, nil).Load()
	require.NoError(t, err)
	assert.Equal(t, issue.StatusResolved, reloaded[2].Status)
	assert.Equal(t, "Replaced contactor", reloaded[2].Solution)
}

func TestExport(t *testing.T) {
	s, path := openSession(t, sampleDoc)

	target, err := s.Export()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "consumption_issues_updated.json"), target)

	exported, err := New(target, nil).Load()
	require.NoError(t, err)
	if diff := cmp.Diff(s.Issues(), exported); diff != "" {
		t.Errorf("export differs (-session +export):\n%s", diff)
	}
}

func TestExportPath(t *testing.T) {
	tests := map[string]string{
		"/data/issues.json": "/data/issues_updated.json",
		"issues":            "issues_updated.json",
		"a/b.txt":           "a/b_updated.txt",
	}
	for in, want := range tests {
		assert.Equal(t, want, ExportPath(in), in)
	}
}

// Package issue defines the electrical consumption issue record, its JSON
// encoding, and the filter and summary views computed over a collection.
package issue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// Status values
const (
	StatusOpen       = "Open"
	StatusInProgress = "In Progress"
	StatusResolved   = "Resolved"
)

// Severity values
const (
	SeverityCritical = "Critical"
	SeverityHigh     = "High"
	SeverityMedium   = "Medium"
	SeverityLow      = "Low"
)

// Issue type values offered by the dashboard. Stored data may hold others.
const (
	TypeHighConsumption = "High Consumption"
	TypeLowConsumption  = "Low Consumption"
	TypeIntermittent    = "Intermittent"
)

// Defaults applied at load time. A missing recommended_action is shown as
// NotAvailable but never stored.
const (
	DefaultStatus   = StatusOpen
	DefaultSolution = ""
)

// Statuses lists the values an editor may assign, in display order.
var Statuses = []string{StatusOpen, StatusInProgress, StatusResolved}

var (
	ErrMissingID     = errors.New("issue has no id")
	ErrDuplicateID   = errors.New("duplicate issue id")
	ErrNotObject     = errors.New("issue is not a JSON object")
	ErrInvalidStatus = errors.New("invalid status")
)

// Issue is one electrical consumption anomaly record.
type Issue struct {
	ID                int
	Location          string
	Type              string
	Status            string
	Severity          string
	ReportedDate      string
	CurrentUsage      Value
	ExpectedUsage     Value
	Deviation         Value // energy_deviation_percentage
	EstimatedCost     Value
	Description       string
	PatternAnalysis   string
	LastMaintenance   string
	ExternalFactors   string
	MonthlyHistory    Value
	RecommendedAction string
	Solution          string

	// Extra holds keys this package does not model, compacted, so they
	// survive a save untouched. It also keeps the stored form of a text
	// field that was not a non-empty string (a number, a bool, null or "");
	// the field then holds its display text.
	Extra map[string]json.RawMessage
}

// ValidStatus reports whether s is one of Statuses.
func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// ApplyDefaults fills the fields that have documented defaults.
func ApplyDefaults(i *Issue) {
	if i.Status == "" {
		i.Status = DefaultStatus
	}
}

// Validate checks collection level invariants.
func Validate(issues []Issue) error {
	seen := make(map[int]int, len(issues))
	for idx, i := range issues {
		if first, ok := seen[i.ID]; ok {
			return fmt.Errorf("%w %d at positions %d and %d", ErrDuplicateID, i.ID, first, idx)
		}
		seen[i.ID] = idx
	}
	return nil
}

// UnmarshalJSON decodes an issue object. Only id is required.
func (i *Issue) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return ErrNotObject
	}
	if fields == nil {
		return ErrNotObject
	}

	rawID, ok := fields["id"]
	if !ok || string(rawID) == "null" {
		return ErrMissingID
	}

	*i = Issue{}
	for key, raw := range fields {
		var err error
		if dst := i.text(key); dst != nil {
			err = i.decodeText(key, raw, dst)
		} else {
			switch key {
			case "id":
				err = json.Unmarshal(raw, &i.ID)
			case "current_usage":
				err = i.CurrentUsage.UnmarshalJSON(raw)
			case "expected_usage":
				err = i.ExpectedUsage.UnmarshalJSON(raw)
			case "energy_deviation_percentage":
				err = i.Deviation.UnmarshalJSON(raw)
			case "estimated_cost":
				err = i.EstimatedCost.UnmarshalJSON(raw)
			case "monthly_history":
				err = i.MonthlyHistory.UnmarshalJSON(raw)
			default:
				var v Value
				if err = v.UnmarshalJSON(raw); err == nil {
					i.keep(key, v)
				}
			}
		}
		if err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
	}
	return nil
}

// text returns the string field stored under key, or nil when key is not a
// text field.
func (i *Issue) text(key string) *string {
	switch key {
	case "location":
		return &i.Location
	case "issue_type":
		return &i.Type
	case "status":
		return &i.Status
	case "severity":
		return &i.Severity
	case "reported_date":
		return &i.ReportedDate
	case "description":
		return &i.Description
	case "pattern_analysis":
		return &i.PatternAnalysis
	case "last_maintenance":
		return &i.LastMaintenance
	case "external_factors":
		return &i.ExternalFactors
	case "recommended_action":
		return &i.RecommendedAction
	case "solution":
		return &i.Solution
	}
	return nil
}

func isTextKey(key string) bool {
	var i Issue
	return i.text(key) != nil
}

// decodeText accepts any JSON value for a text field. Anything other than a
// non-empty string is also kept verbatim in Extra.
func (i *Issue) decodeText(key string, raw []byte, dst *string) error {
	var v Value
	if err := v.UnmarshalJSON(raw); err != nil {
		return err
	}
	*dst = v.String()
	if *dst == "" || v[0] != '"' {
		i.keep(key, v)
	}
	return nil
}

func (i *Issue) keep(key string, v Value) {
	if i.Extra == nil {
		i.Extra = make(map[string]json.RawMessage)
	}
	i.Extra[key] = json.RawMessage(v)
}

// MarshalJSON writes known fields in a fixed order followed by extra keys
// sorted by name, so repeated saves produce identical documents.
func (i Issue) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	text := func(key, val string) {
		if stored, ok := i.Extra[key]; ok && Value(stored).String() == val {
			w.raw(key, stored)
			return
		}
		w.str(key, val)
	}

	w.raw("id", []byte(strconv.Itoa(i.ID)))
	text("location", i.Location)
	text("issue_type", i.Type)
	text("status", i.Status)
	text("severity", i.Severity)
	text("reported_date", i.ReportedDate)
	w.value("current_usage", i.CurrentUsage)
	w.value("expected_usage", i.ExpectedUsage)
	w.value("energy_deviation_percentage", i.Deviation)
	w.value("estimated_cost", i.EstimatedCost)
	text("description", i.Description)
	text("pattern_analysis", i.PatternAnalysis)
	text("last_maintenance", i.LastMaintenance)
	text("external_factors", i.ExternalFactors)
	w.value("monthly_history", i.MonthlyHistory)
	text("recommended_action", i.RecommendedAction)
	if stored, ok := i.Extra["solution"]; ok && Value(stored).String() == i.Solution {
		w.raw("solution", stored)
	} else {
		w.strAlways("solution", i.Solution)
	}

	keys := make([]string, 0, len(i.Extra))
	for k := range i.Extra {
		if !isTextKey(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		w.raw(k, i.Extra[k])
	}
	return w.close()
}

// objectWriter builds a JSON object with caller controlled key order.
type objectWriter struct {
	buf bytes.Buffer
	n   int
	err error
}

func newObjectWriter() *objectWriter {
	w := &objectWriter{}
	w.buf.WriteByte('{')
	return w
}

func (w *objectWriter) raw(key string, val []byte) {
	if w.err != nil {
		return
	}
	if w.n > 0 {
		w.buf.WriteByte(',')
	}
	w.n++
	if w.err = encodeString(&w.buf, key); w.err != nil {
		return
	}
	w.buf.WriteByte(':')
	w.buf.Write(val)
}

func (w *objectWriter) str(key, val string) {
	if val == "" {
		return
	}
	w.strAlways(key, val)
}

func (w *objectWriter) strAlways(key, val string) {
	var b bytes.Buffer
	if err := encodeString(&b, val); err != nil {
		w.err = err
		return
	}
	w.raw(key, b.Bytes())
}

func (w *objectWriter) value(key string, v Value) {
	if len(v) == 0 {
		return
	}
	w.raw(key, v)
}

func (w *objectWriter) close() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	w.buf.WriteByte('}')
	return w.buf.Bytes(), nil
}

// encodeString writes s as a JSON string without HTML escaping.
func encodeString(b *bytes.Buffer, s string) error {
	enc := json.NewEncoder(b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode appends a newline
	b.Truncate(b.Len() - 1)
	return nil
}

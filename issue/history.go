package issue

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MonthUsage is one entry of an issue's monthly history.
type MonthUsage struct {
	Month  string `json:"-"`
	Usage  Value  `json:"usage"`
	Status Value  `json:"status"`
}

// History decodes monthly_history keeping the stored month order. Issues
// without history return nil.
func (i Issue) History() ([]MonthUsage, error) {
	if i.MonthlyHistory.IsNull() {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(i.MonthlyHistory))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("monthly_history: expected object, got %v", tok)
	}

	var months []MonthUsage
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		month, _ := tok.(string)

		var entry MonthUsage
		if err := dec.Decode(&entry); err != nil {
			return nil, fmt.Errorf("monthly_history %q: %w", month, err)
		}
		entry.Month = month
		months = append(months, entry)
	}
	return months, nil
}

// Usages returns the leading numeric usage of each month, in order.
func Usages(months []MonthUsage) []float64 {
	data := make([]float64, len(months))
	for n, m := range months {
		data[n] = m.Usage.Leading()
	}
	return data
}

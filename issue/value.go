package issue

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Value is a display-only JSON value kept in its original (compacted)
// encoding. A zero Value means the key was absent.
type Value []byte

// NumberValue returns a Value holding f.
func NumberValue(f float64) Value {
	return Value(strconv.FormatFloat(f, 'f', -1, 64))
}

// StringValue returns a Value holding s as a JSON string.
func StringValue(s string) Value {
	var b bytes.Buffer
	_ = encodeString(&b, s)
	return Value(b.Bytes())
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	if len(v) == 0 {
		return []byte("null"), nil
	}
	return v, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return err
	}
	*v = buf.Bytes()
	return nil
}

// IsNull reports whether the value is absent or JSON null.
func (v Value) IsNull() bool {
	return len(v) == 0 || string(v) == "null"
}

// String renders the value for display: strings unquoted, null as "".
func (v Value) String() string {
	if v.IsNull() {
		return ""
	}
	if v[0] == '"' {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			return s
		}
	}
	return string(v)
}

// Float returns the numeric value of a JSON number or a string holding one.
func (v Value) Float() (float64, bool) {
	if v.IsNull() {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(v, &f); err == nil {
		return f, true
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Leading returns the number at the start of the displayed value, or 0.
// "1250 kWh" yields 1250.
func (v Value) Leading() float64 {
	if f, ok := v.Float(); ok {
		return f
	}
	s := strings.TrimSpace(v.String())
	end := 0
	for end < len(s) {
		c := s[end]
		if (c >= '0' && c <= '9') || c == '.' || (end == 0 && (c == '-' || c == '+')) {
			end++
			continue
		}
		break
	}
	for end > 0 {
		if f, err := strconv.ParseFloat(s[:end], 64); err == nil {
			return f
		}
		end--
	}
	return 0
}

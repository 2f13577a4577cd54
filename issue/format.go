package issue

import "fmt"

// NotAvailable is shown for absent optional values.
const NotAvailable = "N/A"

// FormatDeviation renders a deviation percentage with an explicit sign and
// one decimal place. Absent values render as N/A; non-numeric values are
// shown as stored.
func FormatDeviation(v Value) string {
	if v.IsNull() {
		return NotAvailable
	}
	f, ok := v.Float()
	if !ok {
		return v.String()
	}
	return fmt.Sprintf("%+.1f%%", f)
}

// SeverityIcon maps a severity to its indicator glyph.
func SeverityIcon(severity string) string {
	switch severity {
	case SeverityCritical:
		return "🔴"
	case SeverityHigh:
		return "🟠"
	case SeverityMedium:
		return "🟡"
	case SeverityLow:
		return "🟢"
	default:
		return "⚪"
	}
}

// SeverityLabel is the severity with its glyph, as shown in the table.
func SeverityLabel(severity string) string {
	return SeverityIcon(severity) + " " + severity
}

// OrNA returns s, or N/A when s is empty.
func OrNA(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}

// Truncate shortens s to max runes, appending "..." when cut.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

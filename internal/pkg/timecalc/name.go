package timecalc

import (
	"strings"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
)

// NormalizeName builds the grouping key for a free-text employee name:
// trimmed, inner whitespace collapsed, lowercased. Blank names share the
// "unknown" key.
func NormalizeName(name string) string {
	key := normalizeLabel(name)
	if key == "" {
		return timesheet.UnknownEmployeeKey
	}
	return key
}

func normalizeLabel(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

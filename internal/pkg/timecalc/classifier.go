package timecalc

import (
	"strings"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
)

// shiftTypeAliases maps normalized upstream labels to canonical categories.
var shiftTypeAliases = map[string]string{
	"normalshift":   timesheet.CategoryNormalShift,
	"normal shift":  timesheet.CategoryNormalShift,
	"normal":        timesheet.CategoryNormalShift,
	"normale":       timesheet.CategoryNormalShift,
	"turno":         timesheet.CategoryNormalShift,
	"turno normale": timesheet.CategoryNormalShift,
	"affiancamento": timesheet.CategoryNormalShift,
	"co-staffing":   timesheet.CategoryNormalShift,

	"overtime":      timesheet.CategoryOvertime,
	"straordinario": timesheet.CategoryOvertime,

	"unpaidabsence":              timesheet.CategoryUnpaidAbsence,
	"unpaid absence":             timesheet.CategoryUnpaidAbsence,
	"assenza non retribuita":     timesheet.CategoryUnpaidAbsence,
	"assenza ingiustificata":     timesheet.CategoryUnpaidAbsence,
	"malattia (no certificato)":  timesheet.CategoryUnpaidAbsence,
	"malattia no certificato":    timesheet.CategoryUnpaidAbsence,
	"malattia senza certificato": timesheet.CategoryUnpaidAbsence,
	"malattia non certificata":   timesheet.CategoryUnpaidAbsence,

	"paidleave":           timesheet.CategoryPaidLeave,
	"paid leave":          timesheet.CategoryPaidLeave,
	"ferie":               timesheet.CategoryPaidLeave,
	"permesso":            timesheet.CategoryPaidLeave,
	"permesso retribuito": timesheet.CategoryPaidLeave,

	"sickleave":                timesheet.CategorySickLeave,
	"sick leave":               timesheet.CategorySickLeave,
	"malattia":                 timesheet.CategorySickLeave,
	"malattia (certificato)":   timesheet.CategorySickLeave,
	"malattia con certificato": timesheet.CategorySickLeave,
}

// Classify maps a raw shift-type label to its category. Blank labels are
// NormalShift; labels missing from the alias table are their own category.
func Classify(rawLabel string) string {
	key := normalizeLabel(rawLabel)
	if key == "" {
		return timesheet.CategoryNormalShift
	}
	if category, ok := shiftTypeAliases[key]; ok {
		return category
	}
	return strings.TrimSpace(rawLabel)
}

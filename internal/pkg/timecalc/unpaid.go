package timecalc

import (
	"sort"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
)

// ResolveUnpaidAbsence lists every cause of unpaid-absence minutes for one
// employee. A shift that is both classified as an absence and late yields two
// entries, one per cause. Undated shifts contribute nothing. Entries are
// sorted by shift date, newest first.
func ResolveUnpaidAbsence(shifts []timesheet.CanonicalShift, employeeKey string, filter timesheet.Filter) timesheet.UnpaidAbsenceDetail {
	key := NormalizeName(employeeKey)
	detail := timesheet.UnpaidAbsenceDetail{
		EmployeeKey: key,
		Entries:     []timesheet.UnpaidEntry{},
	}

	for _, shift := range shifts {
		if shift.EmployeeKey != key || !shift.HasDate() || !MatchesFilter(shift, filter) {
			continue
		}
		if shift.ShiftTypeCategory == timesheet.CategoryUnpaidAbsence {
			detail.Entries = append(detail.Entries, timesheet.UnpaidEntry{
				Shift:   shift,
				Reason:  timesheet.ReasonClassifiedAbsence,
				Minutes: shift.ScheduledMinutes,
			})
		}
		if shift.DelayMinutes > 0 {
			detail.Entries = append(detail.Entries, timesheet.UnpaidEntry{
				Shift:   shift,
				Reason:  timesheet.ReasonLateArrival,
				Minutes: shift.DelayMinutes,
			})
		}
	}

	sort.SliceStable(detail.Entries, func(i, j int) bool {
		return detail.Entries[i].Shift.Date.After(detail.Entries[j].Shift.Date)
	})

	for _, entry := range detail.Entries {
		detail.TotalMinutes += entry.Minutes
	}
	return detail
}

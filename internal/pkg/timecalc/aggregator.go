package timecalc

import (
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
)

const (
	// PeriodScopeKey names the single scope of a whole-period aggregation.
	PeriodScopeKey = "period"
	// UndatedScopeKey collects shifts without a derivable date in day/week views.
	UndatedScopeKey = "undated"
)

// ScopeAggregate is the reconciled per-employee fold of one grouping scope.
type ScopeAggregate struct {
	Key       string
	Employees map[string]*timesheet.EmployeePeriodSummary
}

// MatchesFilter reports whether a shift belongs to the filtered snapshot.
// Shifts without a date never match a date range.
func MatchesFilter(shift timesheet.CanonicalShift, filter timesheet.Filter) bool {
	if filter.LocationID != "" && shift.LocationID != filter.LocationID {
		return false
	}
	if filter.DateRange == nil {
		return true
	}
	if !shift.HasDate() {
		return false
	}
	start := calendarDay(filter.DateRange.Start)
	end := calendarDay(filter.DateRange.End)
	return !shift.Date.Before(start) && !shift.Date.After(end)
}

// Aggregate folds the filtered shifts into one reconciled summary per employee.
func Aggregate(shifts []timesheet.CanonicalShift, filter timesheet.Filter) map[string]*timesheet.EmployeePeriodSummary {
	acc := make(map[string]*timesheet.EmployeePeriodSummary)
	for _, shift := range shifts {
		if MatchesFilter(shift, filter) {
			fold(acc, shift)
		}
	}
	reconcile(acc)
	return acc
}

// AggregateGrouped partitions the filtered shifts by granularity and folds
// each scope on its own, so delay reconciliation runs once per employee per
// scope. Day and week scopes are ordered by key with "undated" last; record
// scopes keep input order.
func AggregateGrouped(shifts []timesheet.CanonicalShift, filter timesheet.Filter, granularity timesheet.Granularity) []ScopeAggregate {
	if granularity == "" || granularity == timesheet.GranularityPeriod {
		return []ScopeAggregate{{Key: PeriodScopeKey, Employees: Aggregate(shifts, filter)}}
	}

	scopes := make(map[string]map[string]*timesheet.EmployeePeriodSummary)
	var order []string
	for i, shift := range shifts {
		if !MatchesFilter(shift, filter) {
			continue
		}
		key := scopeKey(shift, granularity, i)
		if granularity == timesheet.GranularityRecord {
			key = uniqueRecordKey(scopes, key, i)
		}
		acc, ok := scopes[key]
		if !ok {
			acc = make(map[string]*timesheet.EmployeePeriodSummary)
			scopes[key] = acc
			order = append(order, key)
		}
		fold(acc, shift)
	}

	if granularity != timesheet.GranularityRecord {
		sort.SliceStable(order, func(i, j int) bool {
			if order[i] == UndatedScopeKey || order[j] == UndatedScopeKey {
				return order[j] == UndatedScopeKey && order[i] != UndatedScopeKey
			}
			return order[i] < order[j]
		})
	}

	result := make([]ScopeAggregate, 0, len(order))
	for _, key := range order {
		reconcile(scopes[key])
		result = append(result, ScopeAggregate{Key: key, Employees: scopes[key]})
	}
	return result
}

// uniqueRecordKey keeps every record in its own scope even when entry ids
// repeat or collide with an already suffixed key.
func uniqueRecordKey(scopes map[string]map[string]*timesheet.EmployeePeriodSummary, key string, index int) string {
	if _, taken := scopes[key]; !taken {
		return key
	}
	candidate := fmt.Sprintf("%s#%d", key, index)
	for n := 1; ; n++ {
		if _, taken := scopes[candidate]; !taken {
			return candidate
		}
		candidate = fmt.Sprintf("%s#%d-%d", key, index, n)
	}
}

func scopeKey(shift timesheet.CanonicalShift, granularity timesheet.Granularity, index int) string {
	switch granularity {
	case timesheet.GranularityDay:
		if !shift.HasDate() {
			return UndatedScopeKey
		}
		return shift.Date.Format("2006-01-02")
	case timesheet.GranularityWeek:
		if !shift.HasDate() {
			return UndatedScopeKey
		}
		return weekStart(shift.Date).Format("2006-01-02")
	case timesheet.GranularityRecord:
		if shift.EntryID == "" {
			return fmt.Sprintf("record-%d", index)
		}
		return shift.EntryID
	}
	return PeriodScopeKey
}

// fold adds one shift to its employee's accumulator, keeping the first-seen display name.
func fold(acc map[string]*timesheet.EmployeePeriodSummary, shift timesheet.CanonicalShift) {
	key := shift.EmployeeKey
	if key == "" {
		key = NormalizeName(shift.EmployeeDisplayName)
	}

	summary, ok := acc[key]
	if !ok {
		summary = &timesheet.EmployeePeriodSummary{
			EmployeeDisplayName: shift.EmployeeDisplayName,
			EmployeeKey:         key,
			CategoryBuckets:     make(timesheet.CategoryBuckets),
			LocationNames:       make(map[string]struct{}),
		}
		acc[key] = summary
	}

	// Undated shifts still name the employee but contribute no minutes.
	if shift.HasDate() {
		summary.CategoryBuckets[shift.ShiftTypeCategory] += shift.ScheduledMinutes
		summary.TotalDelayMinutes += shift.DelayMinutes
	}
	if shift.LocationName != "" {
		summary.LocationNames[shift.LocationName] = struct{}{}
	}
}

// reconcile moves accumulated delay out of NormalShift into UnpaidAbsence.
// It must run exactly once per employee per scope.
func reconcile(acc map[string]*timesheet.EmployeePeriodSummary) {
	for _, summary := range acc {
		delay := summary.TotalDelayMinutes
		if delay <= 0 {
			continue
		}
		if normal, ok := summary.CategoryBuckets[timesheet.CategoryNormalShift]; ok {
			summary.CategoryBuckets[timesheet.CategoryNormalShift] = max(0, normal-delay)
		}
		summary.CategoryBuckets[timesheet.CategoryUnpaidAbsence] += delay
	}
}

func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// weekStart returns the Monday of the ISO week containing day.
func weekStart(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

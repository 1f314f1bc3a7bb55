// Package timecalc turns raw roster and shift records into per-employee
// worked-minute breakdowns. Every function is pure: callers fetch the
// snapshot, pass configuration explicitly and persist results themselves.
package timecalc

import (
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
)

// AggregateForReport builds the whole-period payroll report for a snapshot.
func AggregateForReport(raws []timesheet.RawScheduleEntry, cfg EngineConfig, filter timesheet.Filter) timesheet.PayrollReport {
	shifts := AdaptEntries(raws, cfg)
	return BuildReport(Aggregate(shifts, filter), cfg.Locale)
}

// AggregateForGroupedReport builds one payroll report per grouping scope.
func AggregateForGroupedReport(raws []timesheet.RawScheduleEntry, cfg EngineConfig, filter timesheet.Filter, granularity timesheet.Granularity) []timesheet.ScopedReport {
	shifts := AdaptEntries(raws, cfg)
	scopes := AggregateGrouped(shifts, filter, granularity)

	reports := make([]timesheet.ScopedReport, 0, len(scopes))
	for _, scope := range scopes {
		reports = append(reports, timesheet.ScopedReport{
			Key:    scope.Key,
			Report: BuildReport(scope.Employees, cfg.Locale),
		})
	}
	return reports
}

// ExplainUnpaidAbsence returns the unpaid-absence drill-down for one employee.
func ExplainUnpaidAbsence(raws []timesheet.RawScheduleEntry, cfg EngineConfig, employeeKey string, filter timesheet.Filter) timesheet.UnpaidAbsenceDetail {
	return ResolveUnpaidAbsence(AdaptEntries(raws, cfg), employeeKey, filter)
}

// RecomputeDelay re-derives an entry's delay with the same rules every report
// uses. Changed is true when the stored value is missing or differs.
func RecomputeDelay(raw timesheet.RawScheduleEntry, cfg EngineConfig) timesheet.DelayRecomputation {
	delay := AdaptEntry(raw, cfg).DelayMinutes
	return timesheet.DelayRecomputation{
		DelayMinutes: delay,
		Changed:      raw.DelayMinutes == nil || *raw.DelayMinutes != delay,
	}
}

package timecalc

import (
	"sort"
	"strings"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var minutesPerHour = decimal.NewFromInt(60)

// MinutesToHours converts minutes to hours rounded to two decimals.
func MinutesToHours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(minutesPerHour).Round(2)
}

// BuildReport turns reconciled per-employee accumulators into the final
// report. Grand totals are sums of the emitted rows so they always
// reconcile with what is displayed. The input map is not modified.
func BuildReport(perEmployee map[string]*timesheet.EmployeePeriodSummary, locale language.Tag) timesheet.PayrollReport {
	categorySet := make(map[string]struct{})
	for _, summary := range perEmployee {
		for category := range summary.CategoryBuckets {
			categorySet[category] = struct{}{}
		}
	}
	categories := make([]string, 0, len(categorySet))
	for category := range categorySet {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	rows := make([]timesheet.EmployeePeriodSummary, 0, len(perEmployee))
	for _, summary := range perEmployee {
		rows = append(rows, deriveRow(summary, categories))
	}

	collator := collate.New(locale)
	sort.SliceStable(rows, func(i, j int) bool {
		if cmp := collator.CompareString(rows[i].EmployeeDisplayName, rows[j].EmployeeDisplayName); cmp != 0 {
			return cmp < 0
		}
		return rows[i].EmployeeKey < rows[j].EmployeeKey
	})

	totals := timesheet.ReportTotals{Categories: make(timesheet.CategoryBuckets, len(categories))}
	for _, category := range categories {
		totals.Categories[category] = 0
	}
	for _, row := range rows {
		for category, minutes := range row.CategoryBuckets {
			totals.Categories[category] += minutes
		}
		totals.TotalMinutes += row.TotalMinutes
		totals.TotalDelayMinutes += row.TotalDelayMinutes
		totals.TotalMinutesExcludingOvertime += row.TotalMinutesExcludingOvertime
		totals.NetMinutesExcludingOvertime += row.NetMinutesExcludingOvertime
	}
	totals.TotalHours = MinutesToHours(totals.TotalMinutes)
	totals.NetHoursExcludingOvertime = MinutesToHours(totals.NetMinutesExcludingOvertime)

	return timesheet.PayrollReport{
		Employees:  rows,
		Categories: categories,
		Totals:     totals,
	}
}

func deriveRow(summary *timesheet.EmployeePeriodSummary, categories []string) timesheet.EmployeePeriodSummary {
	row := timesheet.EmployeePeriodSummary{
		EmployeeDisplayName: summary.EmployeeDisplayName,
		EmployeeKey:         summary.EmployeeKey,
		TotalDelayMinutes:   max(0, summary.TotalDelayMinutes),
		CategoryBuckets:     make(timesheet.CategoryBuckets, len(categories)),
	}

	for _, category := range categories {
		minutes := max(0, summary.CategoryBuckets[category])
		row.CategoryBuckets[category] = minutes
		row.TotalMinutes += minutes
	}

	row.TotalMinutesExcludingOvertime = max(0, row.TotalMinutes-row.CategoryBuckets[timesheet.CategoryOvertime])
	row.NetMinutesExcludingOvertime = max(0, row.TotalMinutesExcludingOvertime-row.TotalDelayMinutes)
	row.TotalHours = MinutesToHours(row.TotalMinutes)
	row.NetHoursExcludingOvertime = MinutesToHours(row.NetMinutesExcludingOvertime)

	names := make([]string, 0, len(summary.LocationNames))
	for name := range summary.LocationNames {
		names = append(names, name)
	}
	sort.Strings(names)
	row.LocationNamesDisplay = strings.Join(names, ", ")

	return row
}

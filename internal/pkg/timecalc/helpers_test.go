package timecalc

import (
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
)

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func timePtr(t time.Time) *time.Time { return &t }

func at(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func rosterEntry(id, name, date, start, end string) timesheet.RawScheduleEntry {
	return timesheet.RawScheduleEntry{
		ID:           id,
		Shape:        timesheet.ShapeRoster,
		EmployeeName: strPtr(name),
		LocationID:   "loc-1",
		Date:         strPtr(date),
		StartTime:    strPtr(start),
		EndTime:      strPtr(end),
	}
}

func shift(key, category string, date string, minutes, delay int) timesheet.CanonicalShift {
	s := timesheet.CanonicalShift{
		EntryID:             key + "-" + date,
		EmployeeDisplayName: key,
		EmployeeKey:         NormalizeName(key),
		LocationID:          "loc-1",
		LocationName:        "Milano Centro",
		ScheduledMinutes:    minutes,
		ShiftTypeCategory:   category,
		DelayMinutes:        delay,
	}
	if date != "" {
		s.Date = day(date)
	}
	return s
}

func timeMinutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}

package timecalc

import (
	"testing"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveUnpaidAbsence(t *testing.T) {
	absentAndLate := shift("Maria Rossi", timesheet.CategoryUnpaidAbsence, "2025-03-03", 240, 15)
	shifts := []timesheet.CanonicalShift{
		absentAndLate,
		shift("Maria Rossi", timesheet.CategoryNormalShift, "2025-03-05", 480, 30),
		shift("Maria Rossi", timesheet.CategoryNormalShift, "2025-03-04", 480, 0),
		shift("Luca", timesheet.CategoryUnpaidAbsence, "2025-03-04", 480, 0),
	}

	detail := ResolveUnpaidAbsence(shifts, "  MARIA rossi", timesheet.Filter{})

	assert.Equal(t, "maria rossi", detail.EmployeeKey)
	require.Len(t, detail.Entries, 3)

	assert.Equal(t, day("2025-03-05"), detail.Entries[0].Shift.Date)
	assert.Equal(t, timesheet.ReasonLateArrival, detail.Entries[0].Reason)
	assert.Equal(t, 30, detail.Entries[0].Minutes)

	assert.Equal(t, timesheet.ReasonClassifiedAbsence, detail.Entries[1].Reason)
	assert.Equal(t, 240, detail.Entries[1].Minutes)
	assert.Equal(t, timesheet.ReasonLateArrival, detail.Entries[2].Reason)
	assert.Equal(t, 15, detail.Entries[2].Minutes)

	assert.Equal(t, 285, detail.TotalMinutes)
}

func TestResolveUnpaidAbsence_RespectsFilter(t *testing.T) {
	shifts := []timesheet.CanonicalShift{
		shift("Maria", timesheet.CategoryUnpaidAbsence, "2025-03-01", 60, 0),
		shift("Maria", timesheet.CategoryUnpaidAbsence, "2025-03-10", 60, 0),
	}
	filter := timesheet.Filter{DateRange: &timesheet.DateRange{Start: day("2025-03-05"), End: day("2025-03-31")}}

	detail := ResolveUnpaidAbsence(shifts, "maria", filter)

	require.Len(t, detail.Entries, 1)
	assert.Equal(t, day("2025-03-10"), detail.Entries[0].Shift.Date)
}

func TestResolveUnpaidAbsence_NoEntries(t *testing.T) {
	detail := ResolveUnpaidAbsence(nil, "nobody", timesheet.Filter{})

	assert.NotNil(t, detail.Entries)
	assert.Empty(t, detail.Entries)
	assert.Equal(t, 0, detail.TotalMinutes)
}

func TestResolveUnpaidAbsence_SkipsUndatedShifts(t *testing.T) {
	shifts := []timesheet.CanonicalShift{
		shift("Maria", timesheet.CategoryUnpaidAbsence, "", 240, 30),
		shift("Maria", timesheet.CategoryNormalShift, "2025-03-03", 480, 15),
	}

	detail := ResolveUnpaidAbsence(shifts, "maria", timesheet.Filter{})

	require.Len(t, detail.Entries, 1)
	assert.Equal(t, timesheet.ReasonLateArrival, detail.Entries[0].Reason)
	assert.Equal(t, 15, detail.TotalMinutes)
}

package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type scheduleEntryRepositoryImpl struct {
	db *database.DB
}

func NewScheduleEntryRepository(db *database.DB) timesheet.ScheduleEntryRepository {
	return &scheduleEntryRepositoryImpl{db: db}
}

// List implements timesheet.ScheduleEntryRepository.
// Roster entries come first, then shifts, each ordered by date. Shift bounds
// are one day wider on each side, since the session timezone may disagree
// with the one callers derive days in; callers narrow the result with
// timecalc.MatchesFilter.
func (r *scheduleEntryRepositoryImpl) List(ctx context.Context, companyID string, dateRange *timesheet.DateRange) ([]timesheet.RawScheduleEntry, error) {
	q := GetQuerier(ctx, r.db)

	var from, to *time.Time
	if dateRange != nil {
		from, to = &dateRange.Start, &dateRange.End
	}

	rosterQuery := `
		SELECT id::text, company_id::text, employee_name, COALESCE(location_id::text, ''),
			   to_char(date, 'YYYY-MM-DD'), start_time::text, end_time::text,
			   clock_in, clock_out, delay_minutes, shift_type, created_at
		FROM roster_entries
		WHERE company_id = $1
		  AND ($2::date IS NULL OR date >= $2::date)
		  AND ($3::date IS NULL OR date <= $3::date)
		ORDER BY date, start_time, id
	`
	rows, err := q.Query(ctx, rosterQuery, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query roster entries: %w", err)
	}
	entries, err := collectEntries(rows, timesheet.ShapeRoster)
	if err != nil {
		return nil, fmt.Errorf("scan roster entries: %w", err)
	}

	shiftQuery := `
		SELECT id::text, company_id::text, employee_name, COALESCE(location_id::text, ''),
			   to_char(date, 'YYYY-MM-DD'), scheduled_start, scheduled_end,
			   clock_in, clock_out, delay_minutes, shift_type, created_at
		FROM shifts
		WHERE company_id = $1
		  AND ($2::date IS NULL OR COALESCE(date, scheduled_start::date) >= $2::date - 1)
		  AND ($3::date IS NULL OR COALESCE(date, scheduled_start::date) <= $3::date + 1)
		ORDER BY COALESCE(date, scheduled_start::date) NULLS LAST, scheduled_start, id
	`
	rows, err = q.Query(ctx, shiftQuery, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query shifts: %w", err)
	}
	shifts, err := collectEntries(rows, timesheet.ShapeShift)
	if err != nil {
		return nil, fmt.Errorf("scan shifts: %w", err)
	}

	return append(entries, shifts...), nil
}

// collectEntries scans rows of either table. Column 5 and 6 are time-of-day
// text for rosters and timestamps for shifts.
func collectEntries(rows pgx.Rows, shape timesheet.SourceShape) ([]timesheet.RawScheduleEntry, error) {
	defer rows.Close()

	var entries []timesheet.RawScheduleEntry
	for rows.Next() {
		var (
			e                    timesheet.RawScheduleEntry
			clockIn, clockOut    *time.Time
			startText, endText   *string
			startStamp, endStamp *time.Time
		)
		e.Shape = shape

		dest := []any{&e.ID, &e.CompanyID, &e.EmployeeName, &e.LocationID, &e.Date}
		if shape == timesheet.ShapeRoster {
			dest = append(dest, &startText, &endText)
		} else {
			dest = append(dest, &startStamp, &endStamp)
		}
		dest = append(dest, &clockIn, &clockOut, &e.DelayMinutes, &e.ShiftType, &e.CreatedAt)

		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		if shape == timesheet.ShapeRoster {
			e.StartTime, e.EndTime = startText, endText
		} else {
			e.ScheduledStart, e.ScheduledEnd = formatTimestamp(startStamp), formatTimestamp(endStamp)
		}
		e.ActualStart = formatTimestamp(clockIn)
		e.ActualEnd = formatTimestamp(clockOut)

		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func formatTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339Nano)
	return &s
}

// UpdateDelayMinutes implements timesheet.ScheduleEntryRepository.
func (r *scheduleEntryRepositoryImpl) UpdateDelayMinutes(ctx context.Context, companyID string, shape timesheet.SourceShape, entryID string, minutes int) error {
	var table string
	switch shape {
	case timesheet.ShapeRoster:
		table = "roster_entries"
	case timesheet.ShapeShift:
		table = "shifts"
	default:
		return timesheet.ErrUnknownSourceShape
	}

	q := GetQuerier(ctx, r.db)
	query := fmt.Sprintf(`
		UPDATE %s
		SET delay_minutes = $1
		WHERE id = $2 AND company_id = $3
	`, table)

	commandTag, err := q.Exec(ctx, query, minutes, entryID, companyID)
	if err != nil {
		return fmt.Errorf("update delay minutes: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return timesheet.ErrScheduleEntryNotFound
	}
	return nil
}

// ListCompanyIDs implements timesheet.ScheduleEntryRepository.
func (r *scheduleEntryRepositoryImpl) ListCompanyIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT company_id::text FROM roster_entries
		UNION
		SELECT company_id::text FROM shifts
		ORDER BY 1
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query company ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

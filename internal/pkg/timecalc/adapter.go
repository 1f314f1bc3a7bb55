package timecalc

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"golang.org/x/text/language"
)

// EngineConfig carries everything the engine reads besides the snapshot itself.
type EngineConfig struct {
	Rounding timesheet.DelayRounding
	// Location interprets roster time-of-day fields and zone-less timestamps.
	Location *time.Location
	// Locale drives the collation used to sort employees by display name.
	Locale language.Tag
	// LocationNames resolves location ids for presentation only.
	LocationNames map[string]string
}

// DefaultEngineConfig uses {15, ceiling} rounding, UTC and Italian collation.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Rounding: timesheet.DefaultDelayRounding(),
		Location: time.UTC,
		Locale:   language.Italian,
	}
}

func (c EngineConfig) location() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

func (c EngineConfig) locationName(id string) string {
	if name, ok := c.LocationNames[id]; ok && name != "" {
		return name
	}
	return id
}

var (
	zonedLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02 15:04:05Z07:00",
		"2006-01-02 15:04:05.999999999Z07:00",
	}
	localLayouts = []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02T15:04",
		"2006-01-02 15:04",
	}
	timeOfDayLayouts = []string{"15:04:05", "15:04"}
)

// AdaptEntry converts a raw entry of either source shape into a CanonicalShift.
// It never fails: unparseable fields simply yield no value.
func AdaptEntry(raw timesheet.RawScheduleEntry, cfg EngineConfig) timesheet.CanonicalShift {
	loc := cfg.location()

	date := parseDate(raw.Date)
	scheduledStart := parseInstant(raw.ScheduledStart, loc)
	if scheduledStart == nil {
		scheduledStart = combine(date, raw.StartTime, loc)
	}
	scheduledEnd := parseInstant(raw.ScheduledEnd, loc)
	if scheduledEnd == nil {
		scheduledEnd = combine(date, raw.EndTime, loc)
	}
	if date.IsZero() && scheduledStart != nil {
		local := scheduledStart.In(loc)
		date = time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	}

	actualStart := parseInstant(raw.ActualStart, loc)
	actualEnd := parseInstant(raw.ActualEnd, loc)

	shiftType := deref(raw.ShiftType)
	displayName := deref(raw.EmployeeName)

	return timesheet.CanonicalShift{
		EntryID:             raw.ID,
		EmployeeDisplayName: displayName,
		EmployeeKey:         NormalizeName(displayName),
		LocationID:          raw.LocationID,
		LocationName:        cfg.locationName(raw.LocationID),
		Date:                date,
		ScheduledStart:      scheduledStart,
		ScheduledEnd:        scheduledEnd,
		ActualStart:         actualStart,
		ActualEnd:           actualEnd,
		ScheduledMinutes:    scheduledMinutes(scheduledStart, scheduledEnd),
		ShiftTypeRaw:        shiftType,
		ShiftTypeCategory:   Classify(shiftType),
		DelayMinutes:        ComputeDelay(scheduledStart, actualStart, raw.DelayMinutes, cfg.Rounding),
	}
}

// AdaptEntries adapts a whole snapshot, preserving input order.
func AdaptEntries(raws []timesheet.RawScheduleEntry, cfg EngineConfig) []timesheet.CanonicalShift {
	shifts := make([]timesheet.CanonicalShift, 0, len(raws))
	for _, raw := range raws {
		shifts = append(shifts, AdaptEntry(raw, cfg))
	}
	return shifts
}

// scheduledMinutes is clamped at 0 when end precedes start.
func scheduledMinutes(start, end *time.Time) int {
	if start == nil || end == nil {
		return 0
	}
	minutes := int(end.Sub(*start) / time.Minute)
	if minutes < 0 {
		return 0
	}
	return minutes
}

func parseInstant(s *string, loc *time.Location) *time.Time {
	value := strings.TrimSpace(deref(s))
	if value == "" {
		return nil
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return &t
		}
	}
	return nil
}

// parseDate returns the calendar day at UTC midnight, or the zero time.
func parseDate(s *string) time.Time {
	value := strings.TrimSpace(deref(s))
	if len(value) > len("2006-01-02") {
		value = value[:len("2006-01-02")]
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func combine(date time.Time, timeOfDay *string, loc *time.Location) *time.Time {
	if date.IsZero() {
		return nil
	}
	value := strings.TrimSpace(deref(timeOfDay))
	if value == "" {
		return nil
	}
	for _, layout := range timeOfDayLayouts {
		tod, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		t := time.Date(date.Year(), date.Month(), date.Day(), tod.Hour(), tod.Minute(), tod.Second(), 0, loc)
		return &t
	}
	return nil
}

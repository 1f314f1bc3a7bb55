package timesheet

import "errors"

// Timesheet domain errors
var (
	ErrCompanyIDMissing      = errors.New("company_id claim is missing or invalid")
	ErrScheduleEntryNotFound = errors.New("schedule entry not found")
	ErrSettingsNotFound      = errors.New("delay rounding settings not found")
	ErrUnknownSourceShape    = errors.New("unknown schedule entry source shape")
)

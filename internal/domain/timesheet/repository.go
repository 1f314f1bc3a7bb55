package timesheet

import "context"

// ScheduleEntryRepository reads the raw roster/shift snapshot and writes back repaired delays.
// All methods take companyID to keep every chain's data isolated.
type ScheduleEntryRepository interface {
	// List returns entries of both source shapes. A nil range returns everything.
	List(ctx context.Context, companyID string, dateRange *DateRange) ([]RawScheduleEntry, error)

	// UpdateDelayMinutes stores a recomputed delay on the entry's source table.
	UpdateDelayMinutes(ctx context.Context, companyID string, shape SourceShape, entryID string, minutes int) error

	// ListCompanyIDs returns every company owning at least one schedule entry.
	ListCompanyIDs(ctx context.Context) ([]string, error)
}

// LocationRepository resolves location ids to display names.
type LocationRepository interface {
	GetNames(ctx context.Context, companyID string) (map[string]string, error)
}

// DelayRoundingRepository persists the per-company rounding policy.
type DelayRoundingRepository interface {
	// Get returns ErrSettingsNotFound when the company never customized rounding.
	Get(ctx context.Context, companyID string) (DelayRoundingSettings, error)
	Upsert(ctx context.Context, settings DelayRoundingSettings) (DelayRoundingSettings, error)
}

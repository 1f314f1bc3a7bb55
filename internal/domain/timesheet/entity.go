package timesheet

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceShape identifies which upstream table a schedule entry was read from.
type SourceShape string

const (
	// ShapeRoster entries carry a calendar date plus separate start/end time-of-day fields.
	ShapeRoster SourceShape = "roster"
	// ShapeShift entries carry combined scheduled start/end timestamps.
	ShapeShift SourceShape = "shift"
)

// Well-known shift-type categories. Any other label is its own category.
const (
	CategoryNormalShift   = "NormalShift"
	CategoryOvertime      = "Overtime"
	CategoryUnpaidAbsence = "UnpaidAbsence"
	CategoryPaidLeave     = "PaidLeave"
	CategorySickLeave     = "SickLeave"
)

// UnknownEmployeeKey groups every entry whose employee name is missing.
const UnknownEmployeeKey = "unknown"

// RawScheduleEntry is a schedule/punch record as read from the store.
// Temporal fields are kept as text so malformed upstream values degrade
// to "no value" instead of failing the whole snapshot.
type RawScheduleEntry struct {
	ID           string
	CompanyID    string
	Shape        SourceShape
	EmployeeName *string
	LocationID   string

	// Roster shape
	Date      *string
	StartTime *string
	EndTime   *string

	// Shift shape
	ScheduledStart *string
	ScheduledEnd   *string

	ActualStart  *string
	ActualEnd    *string
	DelayMinutes *int
	ShiftType    *string
	CreatedAt    time.Time
}

// CanonicalShift is the single in-memory shape every raw entry is adapted into.
type CanonicalShift struct {
	EntryID             string     `json:"entry_id"`
	EmployeeDisplayName string     `json:"employee_display_name"`
	EmployeeKey         string     `json:"employee_key"`
	LocationID          string     `json:"location_id"`
	LocationName        string     `json:"location_name"`
	Date                time.Time  `json:"date"`
	ScheduledStart      *time.Time `json:"scheduled_start"`
	ScheduledEnd        *time.Time `json:"scheduled_end"`
	ActualStart         *time.Time `json:"actual_start"`
	ActualEnd           *time.Time `json:"actual_end"`
	ScheduledMinutes    int        `json:"scheduled_minutes"`
	ShiftTypeRaw        string     `json:"shift_type_raw"`
	ShiftTypeCategory   string     `json:"shift_type_category"`
	DelayMinutes        int        `json:"delay_minutes"`
}

// HasDate reports whether a calendar day could be derived for the shift.
func (s CanonicalShift) HasDate() bool {
	return !s.Date.IsZero()
}

// CategoryBuckets maps a category label to accumulated minutes.
type CategoryBuckets map[string]int

// EmployeePeriodSummary is one employee row of a payroll report.
type EmployeePeriodSummary struct {
	EmployeeDisplayName           string          `json:"employee_display_name"`
	EmployeeKey                   string          `json:"employee_key"`
	LocationNamesDisplay          string          `json:"location_names_display"`
	CategoryBuckets               CategoryBuckets `json:"category_buckets"`
	TotalMinutes                  int             `json:"total_minutes"`
	TotalDelayMinutes             int             `json:"total_delay_minutes"`
	TotalMinutesExcludingOvertime int             `json:"total_minutes_excluding_overtime"`
	NetMinutesExcludingOvertime   int             `json:"net_minutes_excluding_overtime"`
	TotalHours                    decimal.Decimal `json:"total_hours"`
	NetHoursExcludingOvertime     decimal.Decimal `json:"net_hours_excluding_overtime"`

	// LocationNames collects every location seen while folding; rendered into LocationNamesDisplay.
	LocationNames map[string]struct{} `json:"-"`
}

// ReportTotals are grand totals summed from the displayed employee rows.
type ReportTotals struct {
	Categories                    CategoryBuckets `json:"categories"`
	TotalMinutes                  int             `json:"total_minutes"`
	TotalDelayMinutes             int             `json:"total_delay_minutes"`
	TotalMinutesExcludingOvertime int             `json:"total_minutes_excluding_overtime"`
	NetMinutesExcludingOvertime   int             `json:"net_minutes_excluding_overtime"`
	TotalHours                    decimal.Decimal `json:"total_hours"`
	NetHoursExcludingOvertime     decimal.Decimal `json:"net_hours_excluding_overtime"`
}

// PayrollReport is the final per-scope report shape.
type PayrollReport struct {
	Employees  []EmployeePeriodSummary `json:"employees"`
	Categories []string                `json:"categories"`
	Totals     ReportTotals            `json:"totals"`
}

// ScopedReport is one PayrollReport for a grouping scope (day, week, record or whole period).
type ScopedReport struct {
	Key    string        `json:"key"`
	Report PayrollReport `json:"report"`
}

// UnpaidReason explains why unpaid-absence minutes exist.
type UnpaidReason string

const (
	ReasonClassifiedAbsence UnpaidReason = "ClassifiedAbsence"
	ReasonLateArrival       UnpaidReason = "LateArrival"
)

type UnpaidEntry struct {
	Shift   CanonicalShift `json:"shift"`
	Reason  UnpaidReason   `json:"reason"`
	Minutes int            `json:"minutes"`
}

type UnpaidAbsenceDetail struct {
	EmployeeKey  string        `json:"employee_key"`
	Entries      []UnpaidEntry `json:"entries"`
	TotalMinutes int           `json:"total_minutes"`
}

// RoundingDirection controls how a raw delay is snapped to the increment.
type RoundingDirection string

const (
	RoundCeiling RoundingDirection = "ceiling"
	RoundFloor   RoundingDirection = "floor"
)

const DefaultRoundToMinutes = 15

// DelayRounding is the per-company tardiness rounding policy.
type DelayRounding struct {
	RoundToMinutes int               `json:"round_to_minutes"`
	Direction      RoundingDirection `json:"direction"`
}

// DefaultDelayRounding returns {15, ceiling}.
func DefaultDelayRounding() DelayRounding {
	return DelayRounding{RoundToMinutes: DefaultRoundToMinutes, Direction: RoundCeiling}
}

// Normalized replaces invalid fields with their defaults.
func (r DelayRounding) Normalized() DelayRounding {
	if r.RoundToMinutes <= 0 {
		r.RoundToMinutes = DefaultRoundToMinutes
	}
	if r.Direction != RoundFloor {
		r.Direction = RoundCeiling
	}
	return r
}

// DateRange is inclusive on both ends; bounds are calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Filter restricts which shifts take part in an aggregation.
type Filter struct {
	LocationID string
	DateRange  *DateRange
}

// Granularity is the grouping scope of a report.
type Granularity string

const (
	GranularityPeriod Granularity = "period"
	GranularityDay    Granularity = "day"
	GranularityWeek   Granularity = "week"
	GranularityRecord Granularity = "record"
)

// IsValid checks whether the granularity is supported
func (g Granularity) IsValid() bool {
	switch g {
	case GranularityPeriod, GranularityDay, GranularityWeek, GranularityRecord:
		return true
	}
	return false
}

// DelayRecomputation is the result of re-deriving a stored delay value.
type DelayRecomputation struct {
	DelayMinutes int  `json:"delay_minutes"`
	Changed      bool `json:"changed"`
}

// DelayRoundingSettings is the persisted per-company rounding policy.
type DelayRoundingSettings struct {
	CompanyID string
	Rounding  DelayRounding
	UpdatedAt time.Time
}

type RepairFailure struct {
	EntryID string `json:"entry_id"`
	Error   string `json:"error"`
}

// RepairSummary reports the outcome of a batch delay repair.
type RepairSummary struct {
	RunID      string          `json:"run_id"`
	CompanyID  string          `json:"company_id"`
	DryRun     bool            `json:"dry_run"`
	Total      int             `json:"total"`
	Updated    int             `json:"updated"`
	Skipped    int             `json:"skipped"`
	Errors     int             `json:"errors"`
	Failures   []RepairFailure `json:"failures,omitempty"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
}

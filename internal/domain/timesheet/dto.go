package timesheet

import (
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
)

// ========================================
// PAYROLL REPORT
// ========================================

type PayrollReportRequest struct {
	StartDate   string `json:"start_date" validate:"omitempty,date"`
	EndDate     string `json:"end_date" validate:"omitempty,date"`
	LocationID  string `json:"location_id"`
	Granularity string `json:"granularity" validate:"omitempty,oneof=period day week record"`
}

func (r *PayrollReportRequest) Validate() error {
	errs := validator.Struct(r)
	errs = append(errs, validateDateRange(r.StartDate, r.EndDate)...)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Filter converts the request into an engine filter. Call after Validate.
func (r *PayrollReportRequest) Filter() Filter {
	return buildFilter(r.LocationID, r.StartDate, r.EndDate)
}

// GranularityOrDefault returns the requested granularity, or the whole period.
func (r *PayrollReportRequest) GranularityOrDefault() Granularity {
	if r.Granularity == "" {
		return GranularityPeriod
	}
	return Granularity(r.Granularity)
}

type PayrollReportResponse struct {
	Granularity Granularity    `json:"granularity"`
	StartDate   string         `json:"start_date,omitempty"`
	EndDate     string         `json:"end_date,omitempty"`
	LocationID  string         `json:"location_id,omitempty"`
	Rounding    DelayRounding  `json:"rounding"`
	GeneratedAt string         `json:"generated_at"`
	Scopes      []ScopedReport `json:"scopes"`
}

// ========================================
// UNPAID ABSENCE DRILL-DOWN
// ========================================

type UnpaidAbsenceRequest struct {
	Employee   string `json:"employee" validate:"required"`
	StartDate  string `json:"start_date" validate:"omitempty,date"`
	EndDate    string `json:"end_date" validate:"omitempty,date"`
	LocationID string `json:"location_id"`
}

func (r *UnpaidAbsenceRequest) Validate() error {
	errs := validator.Struct(r)
	if r.Employee != "" && validator.IsEmpty(r.Employee) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee",
			Message: "employee must not be blank",
		})
	}
	errs = append(errs, validateDateRange(r.StartDate, r.EndDate)...)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *UnpaidAbsenceRequest) Filter() Filter {
	return buildFilter(r.LocationID, r.StartDate, r.EndDate)
}

type UnpaidAbsenceResponse struct {
	Employee    string              `json:"employee"`
	StartDate   string              `json:"start_date,omitempty"`
	EndDate     string              `json:"end_date,omitempty"`
	GeneratedAt string              `json:"generated_at"`
	Detail      UnpaidAbsenceDetail `json:"detail"`
}

// ========================================
// DELAY REPAIR
// ========================================

type RecomputeDelaysRequest struct {
	StartDate string `json:"start_date" validate:"omitempty,date"`
	EndDate   string `json:"end_date" validate:"omitempty,date"`
	DryRun    bool   `json:"dry_run"`
}

func (r *RecomputeDelaysRequest) Validate() error {
	errs := validator.Struct(r)
	errs = append(errs, validateDateRange(r.StartDate, r.EndDate)...)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DateRange returns the requested bounds, or nil when unbounded.
func (r *RecomputeDelaysRequest) DateRange() *DateRange {
	return buildFilter("", r.StartDate, r.EndDate).DateRange
}

// ========================================
// ROUNDING SETTINGS
// ========================================

type UpdateDelayRoundingRequest struct {
	RoundToMinutes int    `json:"round_to_minutes" validate:"min=1,max=240"`
	Direction      string `json:"direction" validate:"required,oneof=ceiling floor"`
}

func (r *UpdateDelayRoundingRequest) Validate() error {
	if errs := validator.Struct(r); len(errs) > 0 {
		return errs
	}
	return nil
}

type DelayRoundingResponse struct {
	CompanyID      string     `json:"company_id"`
	RoundToMinutes int        `json:"round_to_minutes"`
	Direction      string     `json:"direction"`
	IsDefault      bool       `json:"is_default"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

func validateDateRange(start, end string) validator.ValidationErrors {
	if start == "" || end == "" {
		return nil
	}
	startDate, okStart := validator.IsValidDate(start)
	endDate, okEnd := validator.IsValidDate(end)
	if okStart && okEnd && startDate.After(endDate) {
		return validator.ValidationErrors{{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		}}
	}
	return nil
}

// buildFilter assumes dates were already validated; an open bound extends
// to the far past or future.
func buildFilter(locationID, start, end string) Filter {
	f := Filter{LocationID: locationID}
	if start == "" && end == "" {
		return f
	}

	rng := DateRange{
		Start: time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	if d, ok := validator.IsValidDate(start); ok {
		rng.Start = d
	}
	if d, ok := validator.IsValidDate(end); ok {
		rng.End = d
	}
	f.DateRange = &rng
	return f
}

package timesheet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/timecalc"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/text/language"
)

// Options configures the engine defaults shared by every company.
type Options struct {
	DefaultRounding timesheet.DelayRounding
	Location        *time.Location
	Locale          language.Tag
}

type TimesheetServiceImpl struct {
	scheduleRepo timesheet.ScheduleEntryRepository
	locationRepo timesheet.LocationRepository
	roundingRepo timesheet.DelayRoundingRepository
	opts         Options
	now          func() time.Time
}

// Service is the union of the token-scoped and explicit-company surfaces.
type Service interface {
	timesheet.TimesheetService
	timesheet.CompanyOperations
}

func NewTimesheetService(
	scheduleRepo timesheet.ScheduleEntryRepository,
	locationRepo timesheet.LocationRepository,
	roundingRepo timesheet.DelayRoundingRepository,
	opts Options,
) Service {
	opts.DefaultRounding = opts.DefaultRounding.Normalized()
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Locale == language.Und {
		opts.Locale = language.Italian
	}
	return &TimesheetServiceImpl{
		scheduleRepo: scheduleRepo,
		locationRepo: locationRepo,
		roundingRepo: roundingRepo,
		opts:         opts,
		now:          time.Now,
	}
}

// getCompanyIDFromContext extracts company_id from JWT claims
func (s *TimesheetServiceImpl) getCompanyIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", timesheet.ErrCompanyIDMissing
	}

	return companyID, nil
}

// GeneratePayrollReport builds the grouped payroll report for the caller's company
func (s *TimesheetServiceImpl) GeneratePayrollReport(ctx context.Context, req timesheet.PayrollReportRequest) (timesheet.PayrollReportResponse, error) {
	companyID, err := s.getCompanyIDFromContext(ctx)
	if err != nil {
		return timesheet.PayrollReportResponse{}, err
	}
	return s.GeneratePayrollReportForCompany(ctx, companyID, req)
}

func (s *TimesheetServiceImpl) GeneratePayrollReportForCompany(ctx context.Context, companyID string, req timesheet.PayrollReportRequest) (timesheet.PayrollReportResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.PayrollReportResponse{}, err
	}

	filter := req.Filter()
	cfg, err := s.engineConfig(ctx, companyID)
	if err != nil {
		return timesheet.PayrollReportResponse{}, err
	}

	entries, err := s.scheduleRepo.List(ctx, companyID, nil)
	if err != nil {
		return timesheet.PayrollReportResponse{}, fmt.Errorf("failed to list schedule entries: %w", err)
	}

	granularity := req.GranularityOrDefault()
	scopes := timecalc.AggregateForGroupedReport(entries, cfg, filter, granularity)

	slog.Debug("Payroll report generated",
		"company_id", companyID,
		"granularity", granularity,
		"entries", len(entries),
		"scopes", len(scopes),
	)

	return timesheet.PayrollReportResponse{
		Granularity: granularity,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		LocationID:  req.LocationID,
		Rounding:    cfg.Rounding,
		GeneratedAt: s.now().Format(time.RFC3339),
		Scopes:      scopes,
	}, nil
}

// ExplainUnpaidAbsence lists the unpaid-absence causes for one employee
func (s *TimesheetServiceImpl) ExplainUnpaidAbsence(ctx context.Context, req timesheet.UnpaidAbsenceRequest) (timesheet.UnpaidAbsenceResponse, error) {
	companyID, err := s.getCompanyIDFromContext(ctx)
	if err != nil {
		return timesheet.UnpaidAbsenceResponse{}, err
	}
	return s.ExplainUnpaidAbsenceForCompany(ctx, companyID, req)
}

func (s *TimesheetServiceImpl) ExplainUnpaidAbsenceForCompany(ctx context.Context, companyID string, req timesheet.UnpaidAbsenceRequest) (timesheet.UnpaidAbsenceResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.UnpaidAbsenceResponse{}, err
	}

	cfg, err := s.engineConfig(ctx, companyID)
	if err != nil {
		return timesheet.UnpaidAbsenceResponse{}, err
	}

	entries, err := s.scheduleRepo.List(ctx, companyID, nil)
	if err != nil {
		return timesheet.UnpaidAbsenceResponse{}, fmt.Errorf("failed to list schedule entries: %w", err)
	}

	return timesheet.UnpaidAbsenceResponse{
		Employee:    req.Employee,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		GeneratedAt: s.now().Format(time.RFC3339),
		Detail:      timecalc.ExplainUnpaidAbsence(entries, cfg, req.Employee, req.Filter()),
	}, nil
}

// GetDelayRounding returns the company's rounding policy, or the default when none is stored
func (s *TimesheetServiceImpl) GetDelayRounding(ctx context.Context) (timesheet.DelayRoundingResponse, error) {
	companyID, err := s.getCompanyIDFromContext(ctx)
	if err != nil {
		return timesheet.DelayRoundingResponse{}, err
	}

	settings, err := s.roundingRepo.Get(ctx, companyID)
	if err != nil {
		if errors.Is(err, timesheet.ErrSettingsNotFound) {
			return timesheet.DelayRoundingResponse{
				CompanyID:      companyID,
				RoundToMinutes: s.opts.DefaultRounding.RoundToMinutes,
				Direction:      string(s.opts.DefaultRounding.Direction),
				IsDefault:      true,
			}, nil
		}
		return timesheet.DelayRoundingResponse{}, fmt.Errorf("failed to get delay rounding: %w", err)
	}

	return toRoundingResponse(settings), nil
}

func (s *TimesheetServiceImpl) UpdateDelayRounding(ctx context.Context, req timesheet.UpdateDelayRoundingRequest) (timesheet.DelayRoundingResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.DelayRoundingResponse{}, err
	}

	companyID, err := s.getCompanyIDFromContext(ctx)
	if err != nil {
		return timesheet.DelayRoundingResponse{}, err
	}

	settings, err := s.roundingRepo.Upsert(ctx, timesheet.DelayRoundingSettings{
		CompanyID: companyID,
		Rounding: timesheet.DelayRounding{
			RoundToMinutes: req.RoundToMinutes,
			Direction:      timesheet.RoundingDirection(req.Direction),
		},
		UpdatedAt: s.now(),
	})
	if err != nil {
		return timesheet.DelayRoundingResponse{}, fmt.Errorf("failed to save delay rounding: %w", err)
	}

	slog.Info("Delay rounding updated",
		"company_id", companyID,
		"round_to_minutes", settings.Rounding.RoundToMinutes,
		"direction", settings.Rounding.Direction,
	)

	return toRoundingResponse(settings), nil
}

// engineConfig resolves the company's rounding policy and location names.
func (s *TimesheetServiceImpl) engineConfig(ctx context.Context, companyID string) (timecalc.EngineConfig, error) {
	rounding, err := s.rounding(ctx, companyID)
	if err != nil {
		return timecalc.EngineConfig{}, err
	}

	names, err := s.locationRepo.GetNames(ctx, companyID)
	if err != nil {
		return timecalc.EngineConfig{}, fmt.Errorf("failed to get location names: %w", err)
	}

	return timecalc.EngineConfig{
		Rounding:      rounding,
		Location:      s.opts.Location,
		Locale:        s.opts.Locale,
		LocationNames: names,
	}, nil
}

func (s *TimesheetServiceImpl) rounding(ctx context.Context, companyID string) (timesheet.DelayRounding, error) {
	settings, err := s.roundingRepo.Get(ctx, companyID)
	if err != nil {
		if errors.Is(err, timesheet.ErrSettingsNotFound) {
			return s.opts.DefaultRounding, nil
		}
		return timesheet.DelayRounding{}, fmt.Errorf("failed to get delay rounding: %w", err)
	}
	return settings.Rounding.Normalized(), nil
}

func toRoundingResponse(settings timesheet.DelayRoundingSettings) timesheet.DelayRoundingResponse {
	rounding := settings.Rounding.Normalized()
	updatedAt := settings.UpdatedAt
	return timesheet.DelayRoundingResponse{
		CompanyID:      settings.CompanyID,
		RoundToMinutes: rounding.RoundToMinutes,
		Direction:      string(rounding.Direction),
		UpdatedAt:      &updatedAt,
	}
}

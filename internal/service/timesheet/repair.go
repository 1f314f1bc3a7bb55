package timesheet

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/timecalc"
	"github.com/google/uuid"
)

// RecomputeDelays repairs stored delay values for the caller's company
func (s *TimesheetServiceImpl) RecomputeDelays(ctx context.Context, req timesheet.RecomputeDelaysRequest) (timesheet.RepairSummary, error) {
	companyID, err := s.getCompanyIDFromContext(ctx)
	if err != nil {
		return timesheet.RepairSummary{}, err
	}
	return s.RepairCompanyDelays(ctx, companyID, req)
}

// RepairCompanyDelays recomputes every entry's delay and writes back the ones
// that changed. A failed write is logged and counted; it never stops the run.
func (s *TimesheetServiceImpl) RepairCompanyDelays(ctx context.Context, companyID string, req timesheet.RecomputeDelaysRequest) (timesheet.RepairSummary, error) {
	if err := req.Validate(); err != nil {
		return timesheet.RepairSummary{}, err
	}

	summary := timesheet.RepairSummary{
		RunID:     uuid.NewString(),
		CompanyID: companyID,
		DryRun:    req.DryRun,
		StartedAt: s.now(),
	}

	cfg, err := s.engineConfig(ctx, companyID)
	if err != nil {
		return timesheet.RepairSummary{}, err
	}

	dateRange := req.DateRange()
	entries, err := s.scheduleRepo.List(ctx, companyID, dateRange)
	if err != nil {
		return timesheet.RepairSummary{}, fmt.Errorf("failed to list schedule entries: %w", err)
	}
	if dateRange != nil {
		entries = entriesInRange(entries, cfg, *dateRange)
	}

	slog.Info("Delay repair starting",
		"run_id", summary.RunID,
		"company_id", companyID,
		"entries", len(entries),
		"dry_run", req.DryRun,
	)

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("delay repair interrupted: %w", err)
		}
		summary.Total++

		result := timecalc.RecomputeDelay(entry, cfg)
		if !result.Changed {
			summary.Skipped++
			continue
		}
		if req.DryRun {
			summary.Updated++
			continue
		}

		if err := s.scheduleRepo.UpdateDelayMinutes(ctx, companyID, entry.Shape, entry.ID, result.DelayMinutes); err != nil {
			slog.Error("Failed to update delay minutes",
				"run_id", summary.RunID,
				"company_id", companyID,
				"entry_id", entry.ID,
				"error", err,
			)
			summary.Errors++
			summary.Failures = append(summary.Failures, timesheet.RepairFailure{
				EntryID: entry.ID,
				Error:   err.Error(),
			})
			continue
		}
		summary.Updated++
	}

	summary.FinishedAt = s.now()
	slog.Info("Delay repair completed",
		"run_id", summary.RunID,
		"company_id", companyID,
		"total", summary.Total,
		"updated", summary.Updated,
		"skipped", summary.Skipped,
		"errors", summary.Errors,
		"duration", summary.FinishedAt.Sub(summary.StartedAt),
	)

	return summary, nil
}

// entriesInRange keeps the entries whose calendar day, derived in the
// configured timezone, falls inside the range. The repository bounds are
// coarser than this for timestamped shifts.
func entriesInRange(entries []timesheet.RawScheduleEntry, cfg timecalc.EngineConfig, dateRange timesheet.DateRange) []timesheet.RawScheduleEntry {
	filter := timesheet.Filter{DateRange: &dateRange}
	kept := entries[:0:0]
	for _, entry := range entries {
		if timecalc.MatchesFilter(timecalc.AdaptEntry(entry, cfg), filter) {
			kept = append(kept, entry)
		}
	}
	return kept
}

// RepairAllCompanies runs RepairCompanyDelays for every company with schedule entries.
func (s *TimesheetServiceImpl) RepairAllCompanies(ctx context.Context) ([]timesheet.RepairSummary, error) {
	companyIDs, err := s.scheduleRepo.ListCompanyIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	summaries := make([]timesheet.RepairSummary, 0, len(companyIDs))
	for _, companyID := range companyIDs {
		summary, err := s.RepairCompanyDelays(ctx, companyID, timesheet.RecomputeDelaysRequest{})
		if err != nil {
			slog.Error("Delay repair failed", "company_id", companyID, "error", err)
			continue
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

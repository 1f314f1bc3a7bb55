package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
)

// CompanyRepairer repairs stored delays for every company.
type CompanyRepairer interface {
	RepairAllCompanies(ctx context.Context) ([]timesheet.RepairSummary, error)
}

type DelayRepairJobs struct {
	repairer CompanyRepairer
	interval time.Duration
}

func NewDelayRepairJobs(repairer CompanyRepairer, interval time.Duration) *DelayRepairJobs {
	return &DelayRepairJobs{
		repairer: repairer,
		interval: interval,
	}
}

func (j *DelayRepairJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("recompute_delays", j.interval, j.RecomputeDelays)
}

// RecomputeDelays keeps stored delay values in line with the current rounding policy.
func (j *DelayRepairJobs) RecomputeDelays(ctx context.Context) error {
	slog.Info("Cron: Starting delay recompute job")

	summaries, err := j.repairer.RepairAllCompanies(ctx)
	if err != nil {
		return fmt.Errorf("repair delays: %w", err)
	}

	var updated, failed int
	for _, summary := range summaries {
		updated += summary.Updated
		failed += summary.Errors
	}

	slog.Info("Cron: Delay recompute job completed",
		"companies", len(summaries),
		"updated", updated,
		"errors", failed,
	)
	return nil
}

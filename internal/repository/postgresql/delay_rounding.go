package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type delayRoundingRepositoryImpl struct {
	db *database.DB
}

func NewDelayRoundingRepository(db *database.DB) timesheet.DelayRoundingRepository {
	return &delayRoundingRepositoryImpl{db: db}
}

// Get implements timesheet.DelayRoundingRepository.
func (d *delayRoundingRepositoryImpl) Get(ctx context.Context, companyID string) (timesheet.DelayRoundingSettings, error) {
	q := GetQuerier(ctx, d.db)
	query := `
		SELECT company_id::text, round_to_minutes, direction, updated_at
		FROM delay_rounding_settings
		WHERE company_id = $1
	`
	var s timesheet.DelayRoundingSettings
	err := q.QueryRow(ctx, query, companyID).Scan(
		&s.CompanyID, &s.Rounding.RoundToMinutes, &s.Rounding.Direction, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.DelayRoundingSettings{}, timesheet.ErrSettingsNotFound
		}
		return timesheet.DelayRoundingSettings{}, err
	}
	return s, nil
}

// Upsert implements timesheet.DelayRoundingRepository.
func (d *delayRoundingRepositoryImpl) Upsert(ctx context.Context, settings timesheet.DelayRoundingSettings) (timesheet.DelayRoundingSettings, error) {
	q := GetQuerier(ctx, d.db)
	query := `
		INSERT INTO delay_rounding_settings (company_id, round_to_minutes, direction, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (company_id) DO UPDATE
		SET round_to_minutes = EXCLUDED.round_to_minutes,
			direction = EXCLUDED.direction,
			updated_at = EXCLUDED.updated_at
		RETURNING updated_at
	`
	err := q.QueryRow(ctx, query,
		settings.CompanyID, settings.Rounding.RoundToMinutes, string(settings.Rounding.Direction),
	).Scan(&settings.UpdatedAt)
	if err != nil {
		return timesheet.DelayRoundingSettings{}, err
	}
	return settings, nil
}

package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
)

type locationRepositoryImpl struct {
	db *database.DB
}

func NewLocationRepository(db *database.DB) timesheet.LocationRepository {
	return &locationRepositoryImpl{db: db}
}

// GetNames implements timesheet.LocationRepository.
func (l *locationRepositoryImpl) GetNames(ctx context.Context, companyID string) (map[string]string, error) {
	q := GetQuerier(ctx, l.db)
	query := `
		SELECT id::text, name
		FROM locations
		WHERE company_id = $1
	`
	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("query locations: %w", err)
	}
	defer rows.Close()

	names := make(map[string]string)
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	return names, rows.Err()
}

package postgresql

import (
	"context"
	"fmt"

	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/domain/worklocation"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
)

type workLocationRepository struct {
	db *database.DB
}

func NewWorkLocationRepository(db *database.DB) worklocation.WorkLocationRepository {
	return &workLocationRepository{db: db}
}

// SitesForType implements worklocation.WorkLocationRepository.
func (r *workLocationRepository) SitesForType(ctx context.Context, locationType user.LocationType) ([]worklocation.WorkLocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, type, latitude, longitude, radius_meters, created_at, updated_at
		FROM work_locations
		WHERE type = $1
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, string(locationType))
	if err != nil {
		return nil, fmt.Errorf("failed to list work locations: %w", err)
	}
	defer rows.Close()

	var sites []worklocation.WorkLocation
	for rows.Next() {
		var site worklocation.WorkLocation
		var siteType string
		if err := rows.Scan(
			&site.ID, &site.Name, &siteType, &site.Latitude, &site.Longitude,
			&site.RadiusMeters, &site.CreatedAt, &site.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan work location: %w", err)
		}
		site.Type = user.LocationType(siteType)
		sites = append(sites, site)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate work locations: %w", err)
	}

	return sites, nil
}

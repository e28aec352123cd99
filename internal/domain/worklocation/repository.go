package worklocation

import (
	"context"

	"github.com/attendly/attendance-backend-go/internal/domain/user"
)

// WorkLocationRepository - read-only site directory.
type WorkLocationRepository interface {
	SitesForType(ctx context.Context, locationType user.LocationType) ([]WorkLocation, error)
}

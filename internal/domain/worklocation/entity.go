package worklocation

import (
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/user"
)

// WorkLocation is a punch-eligible site with its own geofence radius.
type WorkLocation struct {
	ID           string
	Name         string
	Type         user.LocationType
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

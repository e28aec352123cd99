package attendance

import "time"

// PunchType is the direction of a punch event.
type PunchType string

const (
	PunchTypeIn  PunchType = "in"
	PunchTypeOut PunchType = "out"
)

// PunchStatus is a user's position in the punch cycle for a given day.
type PunchStatus string

const (
	PunchStatusNone PunchStatus = "none"
	PunchStatusIn   PunchStatus = "in"
	PunchStatusOut  PunchStatus = "out"
)

// AttendanceRecord is a single punch event. Immutable once created, except
// the Processed flag flipped by the summary reconciliation job.
type AttendanceRecord struct {
	ID        string
	UserID    string
	Type      PunchType
	Timestamp time.Time
	Latitude  float64
	Longitude float64
	Processed bool
	CreatedAt time.Time
}

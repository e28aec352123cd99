package user

import "time"

// LocationType determines which set of work sites a user punches against.
type LocationType string

const (
	LocationTypeOffice LocationType = "office"
	LocationTypeClient LocationType = "client"
)

type User struct {
	ID                string
	Name              string
	Email             string
	LocationType      LocationType
	SkipLocationCheck bool
	HireDate          time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

package attendance

import "errors"

// Attendance domain errors
var (
	// Punch sequencing errors
	ErrAlreadyClockedIn  = errors.New("you have already clocked in today")
	ErrAlreadyClockedOut = errors.New("you have already clocked out today")
	ErrNoClockInYet      = errors.New("you have not clocked in yet")
	ErrDuplicatePunch    = errors.New("a punch of the same type was recorded moments ago")

	// Location errors
	ErrOutOfGeofence = errors.New("you are outside the allowed radius of every work site")

	// General errors
	ErrRecordNotFound = errors.New("attendance record not found")
)

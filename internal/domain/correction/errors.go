package correction

import "errors"

var (
	ErrCorrectionNotFound = errors.New("time correction request not found")
	ErrNotOwnedByUser     = errors.New("attendance record does not belong to this user")
	ErrInvalidRequestType = errors.New("request type must be one of: time, type, both")
	ErrNotPending         = errors.New("time correction request has already been approved or rejected")
)

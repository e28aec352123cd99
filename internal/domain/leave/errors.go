package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrInvalidLeaveType     = errors.New("leave type must be one of: paid, sick, special")
	ErrInvalidDateRange     = errors.New("end date must not be before start date")
	ErrPastDateNotAllowed   = errors.New("start date must not be in the past")
	ErrRangeTooLong         = errors.New("leave request must not span more than 30 days")
	ErrOverlappingRequest   = errors.New("an existing pending or approved request overlaps this range")
	ErrNotPending           = errors.New("leave request has already been approved or rejected")
	ErrNotOwnedByUser       = errors.New("leave request does not belong to this user")
)

package response

import (
	"errors"
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/correction"
	"github.com/attendly/attendance-backend-go/internal/domain/leave"
	"github.com/attendly/attendance-backend-go/internal/domain/summary"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/pkg/geo"
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, geo.ErrInvalidCoordinates):
		BadRequest(w, "Invalid coordinates", nil)
	case errors.Is(err, attendance.ErrOutOfGeofence):
		Forbidden(w, "You are outside the allowed radius of every work site")
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "You have already clocked in today")
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		Conflict(w, "You have already clocked out today")
	case errors.Is(err, attendance.ErrNoClockInYet):
		Conflict(w, "You have not clocked in yet")
	case errors.Is(err, attendance.ErrDuplicatePunch):
		Conflict(w, "Duplicate punch within the cooldown window")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Summary domain errors
	case errors.Is(err, summary.ErrSummaryNotFound):
		NotFound(w, "Attendance summary not found")

	// Time correction domain errors
	case errors.Is(err, correction.ErrCorrectionNotFound):
		NotFound(w, "Time correction request not found")
	case errors.Is(err, correction.ErrNotOwnedByUser):
		Forbidden(w, "Attendance record does not belong to this user")
	case errors.Is(err, correction.ErrInvalidRequestType):
		BadRequest(w, "Request type must be one of: time, type, both", nil)
	case errors.Is(err, correction.ErrNotPending):
		Conflict(w, "Time correction request has already been processed")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrNotOwnedByUser):
		Forbidden(w, "Leave request does not belong to this user")
	case errors.Is(err, leave.ErrInvalidLeaveType):
		BadRequest(w, "Leave type must be one of: paid, sick, special", nil)
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "End date must not be before start date", nil)
	case errors.Is(err, leave.ErrPastDateNotAllowed):
		BadRequest(w, "Start date must not be in the past", nil)
	case errors.Is(err, leave.ErrRangeTooLong):
		BadRequest(w, "Leave request must not span more than 30 days", nil)
	case errors.Is(err, leave.ErrOverlappingRequest):
		Conflict(w, "An existing pending or approved request overlaps this range")
	case errors.Is(err, leave.ErrNotPending):
		Conflict(w, "Leave request has already been processed")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

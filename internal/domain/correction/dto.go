package correction

import (
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// TIME CORRECTION DTOs
// ========================================

type CreateCorrectionRequest struct {
	UserID        string  `json:"user_id"`
	AttendanceID  string  `json:"attendance_id"`
	RequestType   string  `json:"request_type"`
	RequestedTime *string `json:"requested_time,omitempty"`
	RequestedType *string `json:"requested_type,omitempty"`
	Reason        string  `json:"reason"`
}

// Validate covers field presence and formats. Request-type semantics
// (which fields a given RequestType demands) live in the service.
func (r *CreateCorrectionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if validator.IsEmpty(r.AttendanceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_id",
			Message: "attendance_id is required",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if r.RequestedTime != nil {
		if _, ok := validator.IsValidDateTime(*r.RequestedTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "requested_time",
				Message: "requested_time must be an ISO8601 timestamp",
			})
		}
	}

	if r.RequestedType != nil && !validator.IsInSlice(*r.RequestedType, []string{"in", "out"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "requested_type",
			Message: "requested_type must be in or out",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CorrectionResponse struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	AttendanceID  string  `json:"attendance_id"`
	RequestType   string  `json:"request_type"`
	BeforeTime    string  `json:"before_time"`
	CurrentType   string  `json:"current_type"`
	RequestedTime *string `json:"requested_time,omitempty"`
	RequestedType *string `json:"requested_type,omitempty"`
	Reason        string  `json:"reason"`
	Status        string  `json:"status"`
	ApproverID    *string `json:"approver_id,omitempty"`
	CreatedAt     string  `json:"created_at"`
	ApprovedAt    *string `json:"approved_at,omitempty"`
}

type ListCorrectionsResponse struct {
	TotalCount  int64                `json:"total_count"`
	Corrections []CorrectionResponse `json:"corrections"`
}

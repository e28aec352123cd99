package correction

import (
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
)

// RequestType says which part of the punch is being disputed.
type RequestType string

const (
	RequestTypeTime RequestType = "time"
	RequestTypeType RequestType = "type"
	RequestTypeBoth RequestType = "both"
)

type CorrectionStatus string

const (
	CorrectionStatusPending  CorrectionStatus = "pending"
	CorrectionStatusApproved CorrectionStatus = "approved"
	CorrectionStatusRejected CorrectionStatus = "rejected"
)

// TimeCorrection is a dispute over a recorded punch. Approval records the
// decision only; the referenced AttendanceRecord is left untouched and
// reconciled by an external process.
type TimeCorrection struct {
	ID            string
	UserID        string
	AttendanceID  string
	RequestType   RequestType
	BeforeTime    time.Time
	CurrentType   attendance.PunchType
	RequestedTime *time.Time
	RequestedType *attendance.PunchType
	Reason        string
	Status        CorrectionStatus
	ApproverID    *string
	CreatedAt     time.Time
	ApprovedAt    *time.Time
}

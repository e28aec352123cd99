package leave

import "time"

type LeaveType string

const (
	LeaveTypePaid    LeaveType = "paid"
	LeaveTypeSick    LeaveType = "sick"
	LeaveTypeSpecial LeaveType = "special"
)

type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "pending"
	LeaveStatusApproved LeaveStatus = "approved"
	LeaveStatusRejected LeaveStatus = "rejected"
)

// MaxRangeDays caps a single request's inclusive day span.
const MaxRangeDays = 30

// LeaveRequest is a request for time off over an inclusive date range.
// Pending requests may be edited; approved and rejected ones are immutable.
type LeaveRequest struct {
	ID         string
	UserID     string
	Type       LeaveType
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	Status     LeaveStatus
	ApproverID *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Days is the inclusive day count of the range.
func (r LeaveRequest) Days() int {
	return int(r.EndDate.Sub(r.StartDate).Hours()/24) + 1
}

// Overlaps reports whether the two inclusive ranges intersect.
func (r LeaveRequest) Overlaps(start, end time.Time) bool {
	return !r.EndDate.Before(start) && !end.Before(r.StartDate)
}

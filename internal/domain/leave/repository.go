package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository - interface for leave_requests table.
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	// Update rewrites a pending request and returns the stored row.
	Update(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	ListByUser(ctx context.Context, userID string) ([]LeaveRequest, int64, error)
	ListByStatus(ctx context.Context, status LeaveStatus) ([]LeaveRequest, int64, error)
	// CheckOverlapping reports whether any pending/approved request for the
	// user intersects [start, end]. excludeID skips one request, for updates.
	CheckOverlapping(ctx context.Context, userID string, start, end time.Time, excludeID *string) (bool, error)
	// ListActiveByUserAndYear returns pending and approved requests whose
	// start date falls in the given calendar year.
	ListActiveByUserAndYear(ctx context.Context, userID string, year int) ([]LeaveRequest, error)
}

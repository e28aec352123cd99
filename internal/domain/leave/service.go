package leave

import "context"

type LeaveService interface {
	Create(ctx context.Context, req CreateLeaveRequest) (LeaveRequest, error)
	Update(ctx context.Context, req UpdateLeaveRequest) (LeaveRequest, error)
	Approve(ctx context.Context, id, approverID string) (LeaveRequest, error)
	Reject(ctx context.Context, id, approverID string) (LeaveRequest, error)
	RemainingLeaveDays(ctx context.Context, userID string) (RemainingDaysResponse, error)
	ListMyLeaves(ctx context.Context, userID string) ([]LeaveRequest, int64, error)
	ListPendingLeaves(ctx context.Context) ([]LeaveRequest, int64, error)
}

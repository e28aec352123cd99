package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/leave"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/pkg/clock"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
)

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	user.UserRepository
	tx    database.TxManager
	clock clock.Clock
}

func NewLeaveService(
	leaveRepo leave.LeaveRequestRepository,
	userRepo user.UserRepository,
	tx database.TxManager,
	clk clock.Clock,
) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRequestRepository: leaveRepo,
		UserRepository:         userRepo,
		tx:                     tx,
		clock:                  clk,
	}
}

// Create implements leave.LeaveService.
func (s *LeaveServiceImpl) Create(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	leaveType := leave.LeaveType(req.Type)
	switch leaveType {
	case leave.LeaveTypePaid, leave.LeaveTypeSick, leave.LeaveTypeSpecial:
	default:
		return leave.LeaveRequest{}, leave.ErrInvalidLeaveType
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to parse start date: %w", err)
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to parse end date: %w", err)
	}

	request := leave.LeaveRequest{
		UserID:    req.UserID,
		Type:      leaveType,
		StartDate: start,
		EndDate:   end,
		Reason:    req.Reason,
		Status:    leave.LeaveStatusPending,
	}

	// Overlap check and insert share a transaction so two concurrent
	// requests cannot both pass the check.
	var created leave.LeaveRequest
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.validateRange(ctx, req.UserID, start, end, nil); err != nil {
			return err
		}

		created, err = s.LeaveRequestRepository.Create(ctx, request)
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return created, nil
}

// Update implements leave.LeaveService. Only pending requests may change;
// the full validation set re-runs with the overlap check excluding itself.
func (s *LeaveServiceImpl) Update(ctx context.Context, req leave.UpdateLeaveRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	request, err := s.LeaveRequestRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	if request.UserID != req.UserID {
		return leave.LeaveRequest{}, leave.ErrNotOwnedByUser
	}
	if request.Status != leave.LeaveStatusPending {
		return leave.LeaveRequest{}, leave.ErrNotPending
	}

	if req.Type != nil {
		leaveType := leave.LeaveType(*req.Type)
		switch leaveType {
		case leave.LeaveTypePaid, leave.LeaveTypeSick, leave.LeaveTypeSpecial:
			request.Type = leaveType
		default:
			return leave.LeaveRequest{}, leave.ErrInvalidLeaveType
		}
	}
	if req.StartDate != nil {
		start, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			return leave.LeaveRequest{}, fmt.Errorf("failed to parse start date: %w", err)
		}
		request.StartDate = start
	}
	if req.EndDate != nil {
		end, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return leave.LeaveRequest{}, fmt.Errorf("failed to parse end date: %w", err)
		}
		request.EndDate = end
	}
	if req.Reason != nil {
		request.Reason = *req.Reason
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.validateRange(ctx, request.UserID, request.StartDate, request.EndDate, &request.ID); err != nil {
			return err
		}

		updated, err := s.LeaveRequestRepository.Update(ctx, request)
		if err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}
		request = updated
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return request, nil
}

func (s *LeaveServiceImpl) validateRange(ctx context.Context, userID string, start, end time.Time, excludeID *string) error {
	if end.Before(start) {
		return leave.ErrInvalidDateRange
	}

	now := s.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, start.Location())
	if start.Before(today) {
		return leave.ErrPastDateNotAllowed
	}

	if int(end.Sub(start).Hours()/24)+1 > leave.MaxRangeDays {
		return leave.ErrRangeTooLong
	}

	hasOverlap, err := s.LeaveRequestRepository.CheckOverlapping(ctx, userID, start, end, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check overlapping leave requests: %w", err)
	}
	if hasOverlap {
		return leave.ErrOverlappingRequest
	}

	return nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, id, approverID string) (leave.LeaveRequest, error) {
	return s.transition(ctx, id, approverID, leave.LeaveStatusApproved)
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, id, approverID string) (leave.LeaveRequest, error) {
	return s.transition(ctx, id, approverID, leave.LeaveStatusRejected)
}

func (s *LeaveServiceImpl) transition(ctx context.Context, id, approverID string, to leave.LeaveStatus) (leave.LeaveRequest, error) {
	request, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	if request.Status != leave.LeaveStatusPending {
		return leave.LeaveRequest{}, leave.ErrNotPending
	}

	request.Status = to
	request.ApproverID = &approverID

	updated, err := s.LeaveRequestRepository.Update(ctx, request)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	return updated, nil
}

// RemainingLeaveDays implements leave.LeaveService. Entitlement comes from
// tenure; pending and approved paid requests starting this calendar year
// count against it.
func (s *LeaveServiceImpl) RemainingLeaveDays(ctx context.Context, userID string) (leave.RemainingDaysResponse, error) {
	usr, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return leave.RemainingDaysResponse{}, err
	}

	now := s.clock.Now()
	entitlement := EntitlementDays(usr.HireDate, now)

	active, err := s.LeaveRequestRepository.ListActiveByUserAndYear(ctx, userID, now.Year())
	if err != nil {
		return leave.RemainingDaysResponse{}, fmt.Errorf("failed to list active leave requests: %w", err)
	}

	used := 0
	for _, r := range active {
		if r.Type == leave.LeaveTypePaid {
			used += r.Days()
		}
	}

	remaining := entitlement - used
	if remaining < 0 {
		remaining = 0
	}

	return leave.RemainingDaysResponse{
		UserID:          userID,
		EntitlementDays: entitlement,
		UsedDays:        used,
		RemainingDays:   remaining,
	}, nil
}

// ListMyLeaves implements leave.LeaveService.
func (s *LeaveServiceImpl) ListMyLeaves(ctx context.Context, userID string) ([]leave.LeaveRequest, int64, error) {
	leaves, total, err := s.LeaveRequestRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return leaves, total, nil
}

// ListPendingLeaves implements leave.LeaveService.
func (s *LeaveServiceImpl) ListPendingLeaves(ctx context.Context) ([]leave.LeaveRequest, int64, error) {
	leaves, total, err := s.LeaveRequestRepository.ListByStatus(ctx, leave.LeaveStatusPending)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list pending leave requests: %w", err)
	}
	return leaves, total, nil
}

package correction

import (
	"context"
	"fmt"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/correction"
	"github.com/attendly/attendance-backend-go/internal/pkg/clock"
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

type CorrectionServiceImpl struct {
	correction.CorrectionRepository
	attendance.AttendanceRepository
	clock clock.Clock
}

func NewCorrectionService(
	correctionRepo correction.CorrectionRepository,
	attendanceRepo attendance.AttendanceRepository,
	clk clock.Clock,
) correction.CorrectionService {
	return &CorrectionServiceImpl{
		CorrectionRepository: correctionRepo,
		AttendanceRepository: attendanceRepo,
		clock:                clk,
	}
}

// Create implements correction.CorrectionService.
func (s *CorrectionServiceImpl) Create(ctx context.Context, req correction.CreateCorrectionRequest) (correction.TimeCorrection, error) {
	if err := req.Validate(); err != nil {
		return correction.TimeCorrection{}, err
	}

	requestType := correction.RequestType(req.RequestType)
	switch requestType {
	case correction.RequestTypeTime, correction.RequestTypeType, correction.RequestTypeBoth:
	default:
		return correction.TimeCorrection{}, correction.ErrInvalidRequestType
	}

	if err := validateRequiredFields(requestType, req); err != nil {
		return correction.TimeCorrection{}, err
	}

	record, err := s.AttendanceRepository.GetByID(ctx, req.AttendanceID)
	if err != nil {
		return correction.TimeCorrection{}, err
	}
	if record.UserID != req.UserID {
		return correction.TimeCorrection{}, correction.ErrNotOwnedByUser
	}

	c := correction.TimeCorrection{
		UserID:       req.UserID,
		AttendanceID: record.ID,
		RequestType:  requestType,
		BeforeTime:   record.Timestamp,
		CurrentType:  record.Type,
		Reason:       req.Reason,
		Status:       correction.CorrectionStatusPending,
	}

	if req.RequestedTime != nil {
		t, ok := validator.IsValidDateTime(*req.RequestedTime)
		if !ok {
			return correction.TimeCorrection{}, validator.ValidationErrors{{
				Field:   "requested_time",
				Message: "requested_time must be an ISO8601 timestamp",
			}}
		}
		c.RequestedTime = &t
	}
	if req.RequestedType != nil {
		pt := attendance.PunchType(*req.RequestedType)
		c.RequestedType = &pt
	}

	created, err := s.CorrectionRepository.Create(ctx, c)
	if err != nil {
		return correction.TimeCorrection{}, fmt.Errorf("failed to create time correction: %w", err)
	}

	return created, nil
}

// validateRequiredFields checks the request-type specific fields: a time
// correction needs a requested time, a type correction a requested type,
// and "both" needs both.
func validateRequiredFields(requestType correction.RequestType, req correction.CreateCorrectionRequest) error {
	var errs validator.ValidationErrors

	needsTime := requestType == correction.RequestTypeTime || requestType == correction.RequestTypeBoth
	needsType := requestType == correction.RequestTypeType || requestType == correction.RequestTypeBoth

	if needsTime && req.RequestedTime == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "requested_time",
			Message: "requested_time is required for this request type",
		})
	}
	if needsType && req.RequestedType == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "requested_type",
			Message: "requested_type is required for this request type",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Approve implements correction.CorrectionService. Approval records the
// decision only; the disputed AttendanceRecord stays untouched and the
// actual punch mutation is left to an external reconciliation step.
func (s *CorrectionServiceImpl) Approve(ctx context.Context, id, approverID string) (correction.TimeCorrection, error) {
	return s.transition(ctx, id, approverID, correction.CorrectionStatusApproved)
}

// Reject implements correction.CorrectionService.
func (s *CorrectionServiceImpl) Reject(ctx context.Context, id, approverID string) (correction.TimeCorrection, error) {
	return s.transition(ctx, id, approverID, correction.CorrectionStatusRejected)
}

func (s *CorrectionServiceImpl) transition(ctx context.Context, id, approverID string, to correction.CorrectionStatus) (correction.TimeCorrection, error) {
	c, err := s.CorrectionRepository.GetByID(ctx, id)
	if err != nil {
		return correction.TimeCorrection{}, err
	}

	if c.Status != correction.CorrectionStatusPending {
		return correction.TimeCorrection{}, correction.ErrNotPending
	}

	now := s.clock.Now()
	c.Status = to
	c.ApproverID = &approverID
	c.ApprovedAt = &now

	if err := s.CorrectionRepository.UpdateStatus(ctx, c); err != nil {
		return correction.TimeCorrection{}, fmt.Errorf("failed to update time correction status: %w", err)
	}

	return c, nil
}

// ListMyCorrections implements correction.CorrectionService.
func (s *CorrectionServiceImpl) ListMyCorrections(ctx context.Context, userID string) ([]correction.TimeCorrection, int64, error) {
	corrections, total, err := s.CorrectionRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list corrections: %w", err)
	}
	return corrections, total, nil
}

// ListPendingCorrections implements correction.CorrectionService.
func (s *CorrectionServiceImpl) ListPendingCorrections(ctx context.Context) ([]correction.TimeCorrection, int64, error) {
	corrections, total, err := s.CorrectionRepository.ListByStatus(ctx, correction.CorrectionStatusPending)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list pending corrections: %w", err)
	}
	return corrections, total, nil
}

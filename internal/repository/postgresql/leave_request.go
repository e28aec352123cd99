package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/leave"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepository{db: db}
}

const leaveColumns = `
	id, user_id, type, start_date, end_date, reason, status, approver_id,
	created_at, updated_at
`

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	request.ID = uuid.NewString()

	query := `
		INSERT INTO leave_requests (
			id, user_id, type, start_date, end_date, reason, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.ID,
		request.UserID,
		string(request.Type),
		request.StartDate,
		request.EndDate,
		request.Reason,
		string(request.Status),
	).Scan(&request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveColumns + ` FROM leave_requests WHERE id = $1`

	request, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return request, nil
}

// Update implements leave.LeaveRequestRepository. The pending predicate
// keeps terminal rows immutable even under racing writers.
func (r *leaveRequestRepository) Update(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET type = $2, start_date = $3, end_date = $4, reason = $5,
		    status = $6, approver_id = $7, updated_at = NOW()
		WHERE id = $1
		  AND status = 'pending'
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		request.ID,
		string(request.Type),
		request.StartDate,
		request.EndDate,
		request.Reason,
		string(request.Status),
		request.ApproverID,
	).Scan(&request.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrNotPending
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	return request, nil
}

// ListByUser implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) ListByUser(ctx context.Context, userID string) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveColumns + ` FROM leave_requests WHERE user_id = $1 ORDER BY start_date DESC`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	return scanLeaveRequests(rows)
}

// ListByStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) ListByStatus(ctx context.Context, status leave.LeaveStatus) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveColumns + ` FROM leave_requests WHERE status = $1 ORDER BY created_at ASC`

	rows, err := q.Query(ctx, query, string(status))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests by status: %w", err)
	}
	defer rows.Close()

	return scanLeaveRequests(rows)
}

// CheckOverlapping implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) CheckOverlapping(ctx context.Context, userID string, start, end time.Time, excludeID *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_requests
			WHERE user_id = $1
			  AND status IN ('pending', 'approved')
			  AND start_date <= $3
			  AND end_date >= $2
			  AND ($4::text IS NULL OR id <> $4)
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, userID, start, end, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check overlapping leave requests: %w", err)
	}

	return exists, nil
}

// ListActiveByUserAndYear implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) ListActiveByUserAndYear(ctx context.Context, userID string, year int) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leave_requests
		WHERE user_id = $1
		  AND status IN ('pending', 'approved')
		  AND start_date >= $2
		  AND start_date < $3
		ORDER BY start_date ASC
	`

	from := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list active leave requests: %w", err)
	}
	defer rows.Close()

	requests, _, err := scanLeaveRequests(rows)
	return requests, err
}

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var request leave.LeaveRequest
	var leaveType, status string

	err := row.Scan(
		&request.ID, &request.UserID, &leaveType, &request.StartDate, &request.EndDate,
		&request.Reason, &status, &request.ApproverID,
		&request.CreatedAt, &request.UpdatedAt,
	)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	request.Type = leave.LeaveType(leaveType)
	request.Status = leave.LeaveStatus(status)

	return request, nil
}

func scanLeaveRequests(rows pgx.Rows) ([]leave.LeaveRequest, int64, error) {
	var result []leave.LeaveRequest
	for rows.Next() {
		request, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}
		result = append(result, request)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate leave requests: %w", err)
	}
	return result, int64(len(result)), nil
}

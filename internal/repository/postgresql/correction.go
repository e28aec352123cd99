package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/correction"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type correctionRepository struct {
	db *database.DB
}

func NewCorrectionRepository(db *database.DB) correction.CorrectionRepository {
	return &correctionRepository{db: db}
}

const correctionColumns = `
	id, user_id, attendance_id, request_type, before_time, current_type,
	requested_time, requested_type, reason, status, approver_id,
	created_at, approved_at
`

// Create implements correction.CorrectionRepository.
func (r *correctionRepository) Create(ctx context.Context, c correction.TimeCorrection) (correction.TimeCorrection, error) {
	q := GetQuerier(ctx, r.db)

	c.ID = uuid.NewString()

	query := `
		INSERT INTO time_corrections (
			id, user_id, attendance_id, request_type, before_time, current_type,
			requested_time, requested_type, reason, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING created_at
	`

	var requestedType *string
	if c.RequestedType != nil {
		s := string(*c.RequestedType)
		requestedType = &s
	}

	err := q.QueryRow(ctx, query,
		c.ID,
		c.UserID,
		c.AttendanceID,
		string(c.RequestType),
		c.BeforeTime,
		string(c.CurrentType),
		c.RequestedTime,
		requestedType,
		c.Reason,
		string(c.Status),
	).Scan(&c.CreatedAt)

	if err != nil {
		return correction.TimeCorrection{}, fmt.Errorf("failed to create time correction: %w", err)
	}

	return c, nil
}

// GetByID implements correction.CorrectionRepository.
func (r *correctionRepository) GetByID(ctx context.Context, id string) (correction.TimeCorrection, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + correctionColumns + ` FROM time_corrections WHERE id = $1`

	c, err := scanCorrection(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return correction.TimeCorrection{}, correction.ErrCorrectionNotFound
		}
		return correction.TimeCorrection{}, fmt.Errorf("failed to get time correction: %w", err)
	}

	return c, nil
}

// UpdateStatus implements correction.CorrectionRepository. The status
// predicate makes the terminal transition first-writer-wins under
// concurrent approvals.
func (r *correctionRepository) UpdateStatus(ctx context.Context, c correction.TimeCorrection) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_corrections
		SET status = $2, approver_id = $3, approved_at = $4
		WHERE id = $1
		  AND status = 'pending'
	`

	tag, err := q.Exec(ctx, query, c.ID, string(c.Status), c.ApproverID, c.ApprovedAt)
	if err != nil {
		return fmt.Errorf("failed to update time correction status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return correction.ErrNotPending
	}

	return nil
}

// ListByUser implements correction.CorrectionRepository.
func (r *correctionRepository) ListByUser(ctx context.Context, userID string) ([]correction.TimeCorrection, int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + correctionColumns + ` FROM time_corrections WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list time corrections: %w", err)
	}
	defer rows.Close()

	return scanCorrections(rows)
}

// ListByStatus implements correction.CorrectionRepository.
func (r *correctionRepository) ListByStatus(ctx context.Context, status correction.CorrectionStatus) ([]correction.TimeCorrection, int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + correctionColumns + ` FROM time_corrections WHERE status = $1 ORDER BY created_at ASC`

	rows, err := q.Query(ctx, query, string(status))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list time corrections by status: %w", err)
	}
	defer rows.Close()

	return scanCorrections(rows)
}

func scanCorrection(row pgx.Row) (correction.TimeCorrection, error) {
	var c correction.TimeCorrection
	var requestType, currentType, status string
	var requestedType *string

	err := row.Scan(
		&c.ID, &c.UserID, &c.AttendanceID, &requestType, &c.BeforeTime, &currentType,
		&c.RequestedTime, &requestedType, &c.Reason, &status, &c.ApproverID,
		&c.CreatedAt, &c.ApprovedAt,
	)
	if err != nil {
		return correction.TimeCorrection{}, err
	}

	c.RequestType = correction.RequestType(requestType)
	c.CurrentType = attendance.PunchType(currentType)
	c.Status = correction.CorrectionStatus(status)
	if requestedType != nil {
		pt := attendance.PunchType(*requestedType)
		c.RequestedType = &pt
	}

	return c, nil
}

func scanCorrections(rows pgx.Rows) ([]correction.TimeCorrection, int64, error) {
	var result []correction.TimeCorrection
	for rows.Next() {
		c, err := scanCorrection(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan time correction: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate time corrections: %w", err)
	}
	return result, int64(len(result)), nil
}

package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Create implements attendance.AttendanceRepository. The partial unique
// index on (user_id, day, type) resolves concurrent punch races: the loser
// of a same-day same-type insert gets a conflict mapped to ErrDuplicatePunch.
func (a *attendanceRepository) Create(ctx context.Context, record attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	record.ID = uuid.NewString()

	query := `
		INSERT INTO attendance_records (
			id, user_id, type, timestamp, latitude, longitude, processed
		) VALUES (
			$1, $2, $3, $4, $5, $6, false
		) RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		record.ID,
		record.UserID,
		string(record.Type),
		record.Timestamp,
		record.Latitude,
		record.Longitude,
	).Scan(&record.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return attendance.AttendanceRecord{}, attendance.ErrDuplicatePunch
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return record, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, user_id, type, timestamp, latitude, longitude, processed, created_at
		FROM attendance_records
		WHERE id = $1
	`

	var rec attendance.AttendanceRecord
	var punchType string
	err := q.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.UserID, &punchType, &rec.Timestamp,
		&rec.Latitude, &rec.Longitude, &rec.Processed, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.AttendanceRecord{}, attendance.ErrRecordNotFound
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	rec.Type = attendance.PunchType(punchType)

	return rec, nil
}

// ListByUserAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByUserAndDate(ctx context.Context, userID string, date time.Time) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, user_id, type, timestamp, latitude, longitude, processed, created_at
		FROM attendance_records
		WHERE user_id = $1
		  AND timestamp >= $2
		  AND timestamp < $3
		ORDER BY timestamp ASC
	`

	rows, err := q.Query(ctx, query, userID, date, date.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to list punches by date: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ListByUserBetween implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]attendance.AttendanceRecord, int64, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, user_id, type, timestamp, latitude, longitude, processed, created_at
		FROM attendance_records
		WHERE user_id = $1
		  AND timestamp >= $2
		  AND timestamp < $3
		ORDER BY timestamp ASC
	`

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list punches between dates: %w", err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, 0, err
	}

	return records, int64(len(records)), nil
}

// ListUnprocessedClockOuts implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListUnprocessedClockOuts(ctx context.Context, limit int) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, user_id, type, timestamp, latitude, longitude, processed, created_at
		FROM attendance_records
		WHERE type = 'out'
		  AND processed = false
		ORDER BY timestamp ASC
		LIMIT $1
	`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list unprocessed clock-outs: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ListUserIDsWithPunchesBetween implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListUserIDsWithPunchesBetween(ctx context.Context, from, to time.Time) ([]string, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT DISTINCT user_id
		FROM attendance_records
		WHERE timestamp >= $1
		  AND timestamp < $2
		ORDER BY user_id ASC
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list users with punches: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		users = append(users, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user ids: %w", err)
	}

	return users, nil
}

// MarkProcessed implements attendance.AttendanceRepository.
func (a *attendanceRepository) MarkProcessed(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `UPDATE attendance_records SET processed = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark record processed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

func scanRecords(rows pgx.Rows) ([]attendance.AttendanceRecord, error) {
	var records []attendance.AttendanceRecord
	for rows.Next() {
		var rec attendance.AttendanceRecord
		var punchType string
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &punchType, &rec.Timestamp,
			&rec.Latitude, &rec.Longitude, &rec.Processed, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		rec.Type = attendance.PunchType(punchType)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}
	return records, nil
}

package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/summary"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type summaryRepository struct {
	db *database.DB
}

func NewSummaryRepository(db *database.DB) summary.SummaryRepository {
	return &summaryRepository{db: db}
}

// Upsert implements summary.SummaryRepository. Keyed on the unique index
// over (user_id, target_date, summary_type).
func (s *summaryRepository) Upsert(ctx context.Context, row summary.AttendanceSummary) (summary.AttendanceSummary, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO attendance_summaries (
			id, user_id, target_date, total_hours, overtime_hours,
			late_night_hours, holiday_hours, summary_type
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
		ON CONFLICT (user_id, target_date, summary_type) DO UPDATE SET
			total_hours = EXCLUDED.total_hours,
			overtime_hours = EXCLUDED.overtime_hours,
			late_night_hours = EXCLUDED.late_night_hours,
			holiday_hours = EXCLUDED.holiday_hours,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		uuid.NewString(),
		row.UserID,
		row.TargetDate,
		row.TotalHours,
		row.OvertimeHours,
		row.LateNightHours,
		row.HolidayHours,
		string(row.SummaryType),
	).Scan(&row.ID, &row.CreatedAt, &row.UpdatedAt)

	if err != nil {
		return summary.AttendanceSummary{}, fmt.Errorf("failed to upsert attendance summary: %w", err)
	}

	return row, nil
}

// Get implements summary.SummaryRepository.
func (s *summaryRepository) Get(ctx context.Context, userID string, targetDate time.Time, summaryType summary.SummaryType) (summary.AttendanceSummary, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, user_id, target_date, total_hours, overtime_hours,
		       late_night_hours, holiday_hours, summary_type, created_at, updated_at
		FROM attendance_summaries
		WHERE user_id = $1
		  AND target_date = $2
		  AND summary_type = $3
	`

	var row summary.AttendanceSummary
	var st string
	err := q.QueryRow(ctx, query, userID, targetDate, string(summaryType)).Scan(
		&row.ID, &row.UserID, &row.TargetDate, &row.TotalHours, &row.OvertimeHours,
		&row.LateNightHours, &row.HolidayHours, &st, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return summary.AttendanceSummary{}, summary.ErrSummaryNotFound
		}
		return summary.AttendanceSummary{}, fmt.Errorf("failed to get attendance summary: %w", err)
	}
	row.SummaryType = summary.SummaryType(st)

	return row, nil
}

// ListDailyByMonth implements summary.SummaryRepository.
func (s *summaryRepository) ListDailyByMonth(ctx context.Context, userID string, month time.Time) ([]summary.AttendanceSummary, error) {
	q := GetQuerier(ctx, s.db)

	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	next := first.AddDate(0, 1, 0)

	query := `
		SELECT id, user_id, target_date, total_hours, overtime_hours,
		       late_night_hours, holiday_hours, summary_type, created_at, updated_at
		FROM attendance_summaries
		WHERE user_id = $1
		  AND summary_type = 'daily'
		  AND target_date >= $2
		  AND target_date < $3
		ORDER BY target_date ASC
	`

	rows, err := q.Query(ctx, query, userID, first, next)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily summaries: %w", err)
	}
	defer rows.Close()

	var result []summary.AttendanceSummary
	for rows.Next() {
		var row summary.AttendanceSummary
		var st string
		if err := rows.Scan(
			&row.ID, &row.UserID, &row.TargetDate, &row.TotalHours, &row.OvertimeHours,
			&row.LateNightHours, &row.HolidayHours, &st, &row.CreatedAt, &row.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance summary: %w", err)
		}
		row.SummaryType = summary.SummaryType(st)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance summaries: %w", err)
	}

	return result, nil
}

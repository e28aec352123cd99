package summary

import (
	"context"
	"time"
)

// SummaryRepository - interface for attendance_summaries table.
type SummaryRepository interface {
	// Upsert inserts or replaces the row keyed by (UserID, TargetDate, SummaryType).
	Upsert(ctx context.Context, s AttendanceSummary) (AttendanceSummary, error)
	Get(ctx context.Context, userID string, targetDate time.Time, summaryType SummaryType) (AttendanceSummary, error)
	// ListDailyByMonth returns the daily rows with TargetDate inside month's calendar month.
	ListDailyByMonth(ctx context.Context, userID string, month time.Time) ([]AttendanceSummary, error)
}

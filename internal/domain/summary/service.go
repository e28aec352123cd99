package summary

import (
	"context"
	"time"
)

type SummaryService interface {
	// DailySummary recomputes and upserts the daily row from the day's punches.
	DailySummary(ctx context.Context, userID string, date time.Time) (DailyResult, error)
	// MonthlySummary sums the month's daily rows field-by-field and upserts the
	// monthly row. It never re-derives from raw punches.
	MonthlySummary(ctx context.Context, userID string, month time.Time) (AttendanceSummary, error)
	GetDaily(ctx context.Context, userID string, date time.Time) (AttendanceSummary, error)
	GetMonthly(ctx context.Context, userID string, month time.Time) (AttendanceSummary, error)
}

// Recomputer is the seam the attendance recorder fires after a successful
// clock-out. The call is best-effort: the recorder logs failures and keeps
// the punch; the cron reconciler picks up anything that slipped through.
type Recomputer interface {
	DailySummary(ctx context.Context, userID string, date time.Time) (DailyResult, error)
}

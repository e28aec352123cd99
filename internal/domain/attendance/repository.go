package attendance

import (
	"context"
	"time"
)

// AttendanceRepository - interface for attendance_records table.
// Day-scoped queries interpret date in the timestamp's own zone; callers
// pass a midnight-truncated local time.
type AttendanceRepository interface {
	Create(ctx context.Context, record AttendanceRecord) (AttendanceRecord, error)
	GetByID(ctx context.Context, id string) (AttendanceRecord, error)
	// ListByUserAndDate returns the user's punches within [date, date+24h) ordered by timestamp.
	ListByUserAndDate(ctx context.Context, userID string, date time.Time) ([]AttendanceRecord, error)
	// ListByUserBetween returns punches with timestamp in [from, to) ordered by timestamp.
	ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]AttendanceRecord, int64, error)
	// ListUnprocessedClockOuts returns out-punches not yet reconciled into a summary.
	ListUnprocessedClockOuts(ctx context.Context, limit int) ([]AttendanceRecord, error)
	// ListUserIDsWithPunchesBetween returns the distinct users who punched in [from, to).
	ListUserIDsWithPunchesBetween(ctx context.Context, from, to time.Time) ([]string, error)
	MarkProcessed(ctx context.Context, id string) error
}

package attendance

import (
	"context"
	"time"
)

type AttendanceService interface {
	ClockIn(ctx context.Context, req PunchRequest) (AttendanceRecord, error)
	ClockOut(ctx context.Context, req PunchRequest) (AttendanceRecord, error)
	CurrentStatus(ctx context.Context, userID string) (PunchStatus, error)
	ListMyAttendance(ctx context.Context, userID string, from, to time.Time) ([]AttendanceRecord, int64, error)
}

package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/summary"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/domain/worklocation"
	"github.com/attendly/attendance-backend-go/internal/pkg/clock"
	"github.com/attendly/attendance-backend-go/internal/pkg/geo"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	user.UserRepository
	worklocation.WorkLocationRepository
	guard      *PunchGuard
	recomputer summary.Recomputer
	clock      clock.Clock
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	userRepo user.UserRepository,
	workLocationRepo worklocation.WorkLocationRepository,
	guard *PunchGuard,
	recomputer summary.Recomputer,
	clk clock.Clock,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository:   attendanceRepo,
		UserRepository:         userRepo,
		WorkLocationRepository: workLocationRepo,
		guard:                  guard,
		recomputer:             recomputer,
		clock:                  clk,
	}
}

// ClockIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.PunchRequest) (attendance.AttendanceRecord, error) {
	return s.punch(ctx, req, attendance.PunchTypeIn)
}

// ClockOut implements attendance.AttendanceService. On success it fires the
// daily summary recompute through the summary.Recomputer seam; a recompute
// failure is logged and never invalidates the punch. Days the recompute
// missed are reconciled later by the cron job via the Processed flag.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.PunchRequest) (attendance.AttendanceRecord, error) {
	record, err := s.punch(ctx, req, attendance.PunchTypeOut)
	if err != nil {
		return attendance.AttendanceRecord{}, err
	}

	day := startOfDay(record.Timestamp)
	if _, err := s.recomputer.DailySummary(ctx, record.UserID, day); err != nil {
		slog.Error("daily summary recompute failed after clock-out",
			"user_id", record.UserID, "date", day.Format("2006-01-02"), "error", err)
		return record, nil
	}

	if err := s.AttendanceRepository.MarkProcessed(ctx, record.ID); err != nil {
		slog.Error("failed to mark clock-out record processed",
			"record_id", record.ID, "error", err)
	}

	return record, nil
}

func (s *AttendanceServiceImpl) punch(ctx context.Context, req attendance.PunchRequest, punchType attendance.PunchType) (attendance.AttendanceRecord, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceRecord{}, err
	}

	if err := geo.ValidateCoordinates(req.Latitude, req.Longitude); err != nil {
		return attendance.AttendanceRecord{}, err
	}

	usr, err := s.UserRepository.GetByID(ctx, req.UserID)
	if err != nil {
		return attendance.AttendanceRecord{}, err
	}

	if !usr.SkipLocationCheck {
		if err := s.checkGeofence(ctx, usr, req.Latitude, req.Longitude); err != nil {
			return attendance.AttendanceRecord{}, err
		}
	}

	now := s.clock.Now()
	today, err := s.AttendanceRepository.ListByUserAndDate(ctx, usr.ID, startOfDay(now))
	if err != nil {
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to list today's punches: %w", err)
	}

	if err := s.guard.Check(today, punchType, now); err != nil {
		return attendance.AttendanceRecord{}, err
	}

	record := attendance.AttendanceRecord{
		UserID:    usr.ID,
		Type:      punchType,
		Timestamp: now,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}

	created, err := s.AttendanceRepository.Create(ctx, record)
	if err != nil {
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return created, nil
}

// checkGeofence accepts the punch if the point is inside any site of the
// user's location type. Each site carries its own radius.
func (s *AttendanceServiceImpl) checkGeofence(ctx context.Context, usr user.User, lat, lon float64) error {
	sites, err := s.WorkLocationRepository.SitesForType(ctx, usr.LocationType)
	if err != nil {
		return fmt.Errorf("failed to resolve work sites: %w", err)
	}

	for _, site := range sites {
		if geo.WithinRadius(lat, lon, site.Latitude, site.Longitude, site.RadiusMeters) {
			return nil
		}
	}

	return attendance.ErrOutOfGeofence
}

// CurrentStatus implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CurrentStatus(ctx context.Context, userID string) (attendance.PunchStatus, error) {
	if _, err := s.UserRepository.GetByID(ctx, userID); err != nil {
		return attendance.PunchStatusNone, err
	}

	today, err := s.AttendanceRepository.ListByUserAndDate(ctx, userID, startOfDay(s.clock.Now()))
	if err != nil {
		return attendance.PunchStatusNone, fmt.Errorf("failed to list today's punches: %w", err)
	}

	status := attendance.PunchStatusNone
	for _, rec := range today {
		switch rec.Type {
		case attendance.PunchTypeIn:
			if status == attendance.PunchStatusNone {
				status = attendance.PunchStatusIn
			}
		case attendance.PunchTypeOut:
			status = attendance.PunchStatusOut
		}
	}

	return status, nil
}

// ListMyAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListMyAttendance(ctx context.Context, userID string, from, to time.Time) ([]attendance.AttendanceRecord, int64, error) {
	records, total, err := s.AttendanceRepository.ListByUserBetween(ctx, userID, from, to)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	return records, total, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

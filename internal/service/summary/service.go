package summary

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/holiday"
	"github.com/attendly/attendance-backend-go/internal/domain/summary"
)

// regularHoursPerDay is the threshold above which time counts as overtime.
const regularHoursPerDay = 8.0

// Late-night window: 22:00 through 05:00 the next morning.
const (
	lateNightStartHour = 22
	lateNightEndHour   = 5
)

type SummaryServiceImpl struct {
	attendance.AttendanceRepository
	summary.SummaryRepository
	calendar holiday.Calendar
}

func NewSummaryService(
	attendanceRepo attendance.AttendanceRepository,
	summaryRepo summary.SummaryRepository,
	calendar holiday.Calendar,
) *SummaryServiceImpl {
	return &SummaryServiceImpl{
		AttendanceRepository: attendanceRepo,
		SummaryRepository:    summaryRepo,
		calendar:             calendar,
	}
}

// DailySummary implements summary.SummaryService. It locates the day's
// earliest in-punch and the earliest out-punch after it; incomplete days
// produce a zero-hour summary with a none/in_progress status.
func (s *SummaryServiceImpl) DailySummary(ctx context.Context, userID string, date time.Time) (summary.DailyResult, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	punches, err := s.AttendanceRepository.ListByUserAndDate(ctx, userID, day)
	if err != nil {
		return summary.DailyResult{}, fmt.Errorf("failed to list punches for %s: %w", day.Format("2006-01-02"), err)
	}

	clockIn, clockOut := pairPunches(punches)

	row := summary.AttendanceSummary{
		UserID:      userID,
		TargetDate:  day,
		SummaryType: summary.SummaryTypeDaily,
	}

	status := summary.DayStatusNone
	switch {
	case clockIn == nil:
		// no accrual without a punch pair
	case clockOut == nil:
		status = summary.DayStatusInProgress
	default:
		status = summary.DayStatusComplete

		in := clockIn.Timestamp
		out := clockOut.Timestamp

		row.TotalHours = roundHours(out.Sub(in))
		row.OvertimeHours = round2(math.Max(0, row.TotalHours-regularHoursPerDay))
		row.LateNightHours = roundHours(lateNightOverlap(in, out))

		holidayDur, err := s.holidayOverlap(ctx, in, out)
		if err != nil {
			return summary.DailyResult{}, err
		}
		row.HolidayHours = roundHours(holidayDur)
	}

	saved, err := s.SummaryRepository.Upsert(ctx, row)
	if err != nil {
		return summary.DailyResult{}, fmt.Errorf("failed to upsert daily summary: %w", err)
	}

	return summary.DailyResult{Status: status, Summary: saved}, nil
}

// MonthlySummary implements summary.SummaryService. It sums the month's
// daily rows field-by-field; raw punches are never re-read.
func (s *SummaryServiceImpl) MonthlySummary(ctx context.Context, userID string, month time.Time) (summary.AttendanceSummary, error) {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())

	dailies, err := s.SummaryRepository.ListDailyByMonth(ctx, userID, first)
	if err != nil {
		return summary.AttendanceSummary{}, fmt.Errorf("failed to list daily summaries: %w", err)
	}

	row := summary.AttendanceSummary{
		UserID:      userID,
		TargetDate:  first,
		SummaryType: summary.SummaryTypeMonthly,
	}
	for _, d := range dailies {
		row.TotalHours += d.TotalHours
		row.OvertimeHours += d.OvertimeHours
		row.LateNightHours += d.LateNightHours
		row.HolidayHours += d.HolidayHours
	}
	row.TotalHours = round2(row.TotalHours)
	row.OvertimeHours = round2(row.OvertimeHours)
	row.LateNightHours = round2(row.LateNightHours)
	row.HolidayHours = round2(row.HolidayHours)

	saved, err := s.SummaryRepository.Upsert(ctx, row)
	if err != nil {
		return summary.AttendanceSummary{}, fmt.Errorf("failed to upsert monthly summary: %w", err)
	}

	return saved, nil
}

// GetDaily implements summary.SummaryService.
func (s *SummaryServiceImpl) GetDaily(ctx context.Context, userID string, date time.Time) (summary.AttendanceSummary, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return s.SummaryRepository.Get(ctx, userID, day, summary.SummaryTypeDaily)
}

// GetMonthly implements summary.SummaryService.
func (s *SummaryServiceImpl) GetMonthly(ctx context.Context, userID string, month time.Time) (summary.AttendanceSummary, error) {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	return s.SummaryRepository.Get(ctx, userID, first, summary.SummaryTypeMonthly)
}

// pairPunches picks the earliest in-punch and the earliest out-punch after
// it. Punches arrive ordered by timestamp.
func pairPunches(punches []attendance.AttendanceRecord) (in, out *attendance.AttendanceRecord) {
	for i := range punches {
		p := &punches[i]
		switch p.Type {
		case attendance.PunchTypeIn:
			if in == nil {
				in = p
			}
		case attendance.PunchTypeOut:
			if in != nil && out == nil && p.Timestamp.After(in.Timestamp) {
				out = p
			}
		}
	}
	return in, out
}

// lateNightOverlap totals the portion of [in, out] that falls inside the
// 22:00-05:00 windows of the days the interval spans.
func lateNightOverlap(in, out time.Time) time.Duration {
	var total time.Duration

	// Start one day early so the 22:00 window of the previous day covers an
	// in-punch before 05:00.
	day := time.Date(in.Year(), in.Month(), in.Day(), 0, 0, 0, 0, in.Location()).AddDate(0, 0, -1)
	for !day.After(out) {
		nightStart := day.Add(time.Duration(lateNightStartHour) * time.Hour)
		nightEnd := day.AddDate(0, 0, 1).Add(time.Duration(lateNightEndHour) * time.Hour)
		total += overlap(in, out, nightStart, nightEnd)
		day = day.AddDate(0, 0, 1)
	}

	return total
}

// holidayOverlap totals the portion of [in, out] that falls on days the
// holiday calendar marks.
func (s *SummaryServiceImpl) holidayOverlap(ctx context.Context, in, out time.Time) (time.Duration, error) {
	var total time.Duration

	day := time.Date(in.Year(), in.Month(), in.Day(), 0, 0, 0, 0, in.Location())
	for !day.After(out) {
		isHoliday, err := s.calendar.IsHoliday(ctx, day)
		if err != nil {
			return 0, fmt.Errorf("holiday lookup failed for %s: %w", day.Format("2006-01-02"), err)
		}
		if isHoliday {
			total += overlap(in, out, day, day.AddDate(0, 0, 1))
		}
		day = day.AddDate(0, 0, 1)
	}

	return total, nil
}

func overlap(aStart, aEnd, bStart, bEnd time.Time) time.Duration {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if end.Before(start) {
		return 0
	}
	return end.Sub(start)
}

// roundHours converts a duration to hours at minute precision, rounded to
// 2 decimals half-up.
func roundHours(d time.Duration) float64 {
	return round2(d.Minutes() / 60)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/summary"
	"github.com/attendly/attendance-backend-go/internal/pkg/clock"
)

// reconcileBatchSize caps how many stale clock-outs one run picks up.
const reconcileBatchSize = 200

// SummaryJobs reconciles summaries the fire-and-forget recompute missed and
// rolls daily rows up into monthly ones.
type SummaryJobs struct {
	attendanceRepo attendance.AttendanceRepository
	summaryService summary.SummaryService
	clock          clock.Clock
}

func NewSummaryJobs(
	attendanceRepo attendance.AttendanceRepository,
	summaryService summary.SummaryService,
	clk clock.Clock,
) *SummaryJobs {
	return &SummaryJobs{
		attendanceRepo: attendanceRepo,
		summaryService: summaryService,
		clock:          clk,
	}
}

func (j *SummaryJobs) Register(scheduler *Scheduler, reconcileInterval time.Duration) {
	scheduler.AddJob("reconcile_unprocessed_punches", reconcileInterval, j.ReconcileUnprocessedPunches)
	scheduler.AddJob("rollup_monthly_summaries", 1*time.Hour, j.RollupMonthlySummaries)
}

// ReconcileUnprocessedPunches recomputes the daily summary for every
// clock-out the inline recompute failed on. Records are handled one
// user-day at a time so concurrent upserts cannot lose updates.
func (j *SummaryJobs) ReconcileUnprocessedPunches(ctx context.Context) error {
	stale, err := j.attendanceRepo.ListUnprocessedClockOuts(ctx, reconcileBatchSize)
	if err != nil {
		return fmt.Errorf("failed to list unprocessed clock-outs: %w", err)
	}

	if len(stale) == 0 {
		return nil
	}

	slog.Info("Cron: reconciling unprocessed clock-outs", "count", len(stale))

	for _, rec := range stale {
		day := time.Date(rec.Timestamp.Year(), rec.Timestamp.Month(), rec.Timestamp.Day(), 0, 0, 0, 0, rec.Timestamp.Location())

		if _, err := j.summaryService.DailySummary(ctx, rec.UserID, day); err != nil {
			slog.Error("Cron: summary recompute failed",
				"user_id", rec.UserID, "date", day.Format("2006-01-02"), "error", err)
			continue
		}

		if err := j.attendanceRepo.MarkProcessed(ctx, rec.ID); err != nil {
			slog.Error("Cron: failed to mark record processed",
				"record_id", rec.ID, "error", err)
		}
	}

	return nil
}

// RollupMonthlySummaries refreshes last month's monthly rows during the
// first day of a month. Hourly cadence keeps it cheap; the upsert is
// idempotent.
func (j *SummaryJobs) RollupMonthlySummaries(ctx context.Context) error {
	now := j.clock.Now()
	if now.Day() != 1 {
		return nil
	}

	lastMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)

	users, err := j.attendanceRepo.ListUserIDsWithPunchesBetween(ctx, lastMonth, lastMonth.AddDate(0, 1, 0))
	if err != nil {
		return fmt.Errorf("failed to list last month's users: %w", err)
	}

	for _, userID := range users {
		if _, err := j.summaryService.MonthlySummary(ctx, userID, lastMonth); err != nil {
			slog.Error("Cron: monthly rollup failed",
				"user_id", userID, "month", lastMonth.Format("2006-01"), "error", err)
		}
	}

	return nil
}

package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/summary"
	"github.com/attendly/attendance-backend-go/internal/pkg/clock"
)

type fakeAttendanceRepo struct {
	records []attendance.AttendanceRecord
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, record attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	f.records = append(f.records, record)
	return record, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.AttendanceRecord, error) {
	for _, rec := range f.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return attendance.AttendanceRecord{}, attendance.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) ListByUserAndDate(ctx context.Context, userID string, date time.Time) ([]attendance.AttendanceRecord, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) ListByUserBetween(ctx context.Context, userID string, from, to time.Time) ([]attendance.AttendanceRecord, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) ListUnprocessedClockOuts(ctx context.Context, limit int) ([]attendance.AttendanceRecord, error) {
	var out []attendance.AttendanceRecord
	for _, rec := range f.records {
		if rec.Type == attendance.PunchTypeOut && !rec.Processed {
			out = append(out, rec)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListUserIDsWithPunchesBetween(ctx context.Context, from, to time.Time) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, rec := range f.records {
		if !rec.Timestamp.Before(from) && rec.Timestamp.Before(to) && !seen[rec.UserID] {
			seen[rec.UserID] = true
			out = append(out, rec.UserID)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) MarkProcessed(ctx context.Context, id string) error {
	for i := range f.records {
		if f.records[i].ID == id {
			f.records[i].Processed = true
			return nil
		}
	}
	return attendance.ErrRecordNotFound
}

type fakeSummaryService struct {
	dailyCalls   []string
	monthlyCalls []string
}

func (f *fakeSummaryService) DailySummary(ctx context.Context, userID string, date time.Time) (summary.DailyResult, error) {
	f.dailyCalls = append(f.dailyCalls, userID+"/"+date.Format("2006-01-02"))
	return summary.DailyResult{}, nil
}

func (f *fakeSummaryService) MonthlySummary(ctx context.Context, userID string, month time.Time) (summary.AttendanceSummary, error) {
	f.monthlyCalls = append(f.monthlyCalls, userID+"/"+month.Format("2006-01"))
	return summary.AttendanceSummary{}, nil
}

func (f *fakeSummaryService) GetDaily(ctx context.Context, userID string, date time.Time) (summary.AttendanceSummary, error) {
	return summary.AttendanceSummary{}, summary.ErrSummaryNotFound
}

func (f *fakeSummaryService) GetMonthly(ctx context.Context, userID string, month time.Time) (summary.AttendanceSummary, error) {
	return summary.AttendanceSummary{}, summary.ErrSummaryNotFound
}

func TestSummaryJobs_ReconcileUnprocessedPunches(t *testing.T) {
	repo := &fakeAttendanceRepo{records: []attendance.AttendanceRecord{
		{ID: "out-1", UserID: "user-1", Type: attendance.PunchTypeOut,
			Timestamp: time.Date(2025, 6, 2, 18, 0, 0, 0, time.UTC)},
		{ID: "out-2", UserID: "user-2", Type: attendance.PunchTypeOut,
			Timestamp: time.Date(2025, 6, 2, 19, 0, 0, 0, time.UTC), Processed: true},
		{ID: "in-1", UserID: "user-1", Type: attendance.PunchTypeIn,
			Timestamp: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)},
	}}
	svc := &fakeSummaryService{}
	jobs := NewSummaryJobs(repo, svc, clock.Fixed{T: time.Date(2025, 6, 3, 4, 0, 0, 0, time.UTC)})

	err := jobs.ReconcileUnprocessedPunches(context.Background())

	require.NoError(t, err)
	// Only the stale out-punch gets recomputed and flipped.
	assert.Equal(t, []string{"user-1/2025-06-02"}, svc.dailyCalls)
	rec, err := repo.GetByID(context.Background(), "out-1")
	require.NoError(t, err)
	assert.True(t, rec.Processed)
}

func TestSummaryJobs_ReconcileUnprocessedPunches_NothingStale(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	svc := &fakeSummaryService{}
	jobs := NewSummaryJobs(repo, svc, clock.Fixed{T: time.Date(2025, 6, 3, 4, 0, 0, 0, time.UTC)})

	err := jobs.ReconcileUnprocessedPunches(context.Background())

	require.NoError(t, err)
	assert.Empty(t, svc.dailyCalls)
}

func TestSummaryJobs_RollupMonthlySummaries_OnFirstOfMonth(t *testing.T) {
	repo := &fakeAttendanceRepo{records: []attendance.AttendanceRecord{
		{ID: "a", UserID: "user-1", Type: attendance.PunchTypeIn,
			Timestamp: time.Date(2025, 5, 12, 9, 0, 0, 0, time.UTC)},
		{ID: "b", UserID: "user-2", Type: attendance.PunchTypeIn,
			Timestamp: time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC)},
		{ID: "c", UserID: "user-3", Type: attendance.PunchTypeIn,
			Timestamp: time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC)},
	}}
	svc := &fakeSummaryService{}
	jobs := NewSummaryJobs(repo, svc, clock.Fixed{T: time.Date(2025, 6, 1, 3, 0, 0, 0, time.UTC)})

	err := jobs.RollupMonthlySummaries(context.Background())

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"user-1/2025-05", "user-2/2025-05"}, svc.monthlyCalls)
}

func TestSummaryJobs_RollupMonthlySummaries_SkipsMidMonth(t *testing.T) {
	repo := &fakeAttendanceRepo{records: []attendance.AttendanceRecord{
		{ID: "a", UserID: "user-1", Type: attendance.PunchTypeIn,
			Timestamp: time.Date(2025, 5, 12, 9, 0, 0, 0, time.UTC)},
	}}
	svc := &fakeSummaryService{}
	jobs := NewSummaryJobs(repo, svc, clock.Fixed{T: time.Date(2025, 6, 15, 3, 0, 0, 0, time.UTC)})

	err := jobs.RollupMonthlySummaries(context.Background())

	require.NoError(t, err)
	assert.Empty(t, svc.monthlyCalls)
}

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/correction"
	"github.com/attendly/attendance-backend-go/internal/domain/leave"
	"github.com/attendly/attendance-backend-go/internal/domain/summary"
	"github.com/attendly/attendance-backend-go/internal/pkg/jwt"
)

const routerTestSecret = "test-secret-key-for-jwt"

var testPunchTime = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

type stubAttendanceService struct {
	lastReq attendance.PunchRequest
	err     error
}

func (s *stubAttendanceService) ClockIn(ctx context.Context, req attendance.PunchRequest) (attendance.AttendanceRecord, error) {
	s.lastReq = req
	if s.err != nil {
		return attendance.AttendanceRecord{}, s.err
	}
	return attendance.AttendanceRecord{
		ID: "rec-1", UserID: req.UserID, Type: attendance.PunchTypeIn,
		Timestamp: testPunchTime, Latitude: req.Latitude, Longitude: req.Longitude,
	}, nil
}

func (s *stubAttendanceService) ClockOut(ctx context.Context, req attendance.PunchRequest) (attendance.AttendanceRecord, error) {
	s.lastReq = req
	if s.err != nil {
		return attendance.AttendanceRecord{}, s.err
	}
	return attendance.AttendanceRecord{
		ID: "rec-2", UserID: req.UserID, Type: attendance.PunchTypeOut,
		Timestamp: testPunchTime, Latitude: req.Latitude, Longitude: req.Longitude,
	}, nil
}

func (s *stubAttendanceService) CurrentStatus(ctx context.Context, userID string) (attendance.PunchStatus, error) {
	return attendance.PunchStatusIn, nil
}

func (s *stubAttendanceService) ListMyAttendance(ctx context.Context, userID string, from, to time.Time) ([]attendance.AttendanceRecord, int64, error) {
	return nil, 0, nil
}

type stubSummaryService struct{}

func (s *stubSummaryService) DailySummary(ctx context.Context, userID string, date time.Time) (summary.DailyResult, error) {
	return summary.DailyResult{}, nil
}

func (s *stubSummaryService) MonthlySummary(ctx context.Context, userID string, month time.Time) (summary.AttendanceSummary, error) {
	return summary.AttendanceSummary{}, nil
}

func (s *stubSummaryService) GetDaily(ctx context.Context, userID string, date time.Time) (summary.AttendanceSummary, error) {
	return summary.AttendanceSummary{
		ID: "sum-1", UserID: userID, TargetDate: date,
		TotalHours: 9.00, OvertimeHours: 1.00,
		SummaryType: summary.SummaryTypeDaily,
	}, nil
}

func (s *stubSummaryService) GetMonthly(ctx context.Context, userID string, month time.Time) (summary.AttendanceSummary, error) {
	return summary.AttendanceSummary{}, summary.ErrSummaryNotFound
}

type stubCorrectionService struct {
	approveCalls int
}

func (s *stubCorrectionService) Create(ctx context.Context, req correction.CreateCorrectionRequest) (correction.TimeCorrection, error) {
	return correction.TimeCorrection{ID: "corr-1", UserID: req.UserID, Status: correction.CorrectionStatusPending}, nil
}

func (s *stubCorrectionService) Approve(ctx context.Context, id, approverID string) (correction.TimeCorrection, error) {
	s.approveCalls++
	return correction.TimeCorrection{ID: id, Status: correction.CorrectionStatusApproved, ApproverID: &approverID}, nil
}

func (s *stubCorrectionService) Reject(ctx context.Context, id, approverID string) (correction.TimeCorrection, error) {
	return correction.TimeCorrection{ID: id, Status: correction.CorrectionStatusRejected}, nil
}

func (s *stubCorrectionService) ListMyCorrections(ctx context.Context, userID string) ([]correction.TimeCorrection, int64, error) {
	return nil, 0, nil
}

func (s *stubCorrectionService) ListPendingCorrections(ctx context.Context) ([]correction.TimeCorrection, int64, error) {
	return nil, 0, nil
}

type stubLeaveService struct{}

func (s *stubLeaveService) Create(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveRequest, error) {
	return leave.LeaveRequest{ID: "leave-1", UserID: req.UserID, Status: leave.LeaveStatusPending}, nil
}

func (s *stubLeaveService) Update(ctx context.Context, req leave.UpdateLeaveRequest) (leave.LeaveRequest, error) {
	return leave.LeaveRequest{ID: req.ID, UserID: req.UserID}, nil
}

func (s *stubLeaveService) Approve(ctx context.Context, id, approverID string) (leave.LeaveRequest, error) {
	return leave.LeaveRequest{ID: id, Status: leave.LeaveStatusApproved}, nil
}

func (s *stubLeaveService) Reject(ctx context.Context, id, approverID string) (leave.LeaveRequest, error) {
	return leave.LeaveRequest{ID: id, Status: leave.LeaveStatusRejected}, nil
}

func (s *stubLeaveService) RemainingLeaveDays(ctx context.Context, userID string) (leave.RemainingDaysResponse, error) {
	return leave.RemainingDaysResponse{UserID: userID, EntitlementDays: 15, UsedDays: 3, RemainingDays: 12}, nil
}

func (s *stubLeaveService) ListMyLeaves(ctx context.Context, userID string) ([]leave.LeaveRequest, int64, error) {
	return nil, 0, nil
}

func (s *stubLeaveService) ListPendingLeaves(ctx context.Context) ([]leave.LeaveRequest, int64, error) {
	return nil, 0, nil
}

type routerFixture struct {
	router     http.Handler
	jwtService jwt.Service
	attendance *stubAttendanceService
	correction *stubCorrectionService
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	jwtService := jwt.NewJWTService(routerTestSecret)
	att := &stubAttendanceService{}
	corr := &stubCorrectionService{}

	router := NewRouter(
		RouterConfig{Env: "test", Location: time.UTC},
		jwtService,
		NewAttendanceHandler(att, jwtService),
		NewSummaryHandler(&stubSummaryService{}, jwtService),
		NewCorrectionHandler(corr, jwtService),
		NewLeaveHandler(&stubLeaveService{}, jwtService),
	)

	return &routerFixture{router: router, jwtService: jwtService, attendance: att, correction: corr}
}

func (fx *routerFixture) token(t *testing.T, userID, role string) string {
	t.Helper()
	_, tokenString, err := fx.jwtService.JWTAuth().Encode(map[string]interface{}{
		"user_id": userID,
		"role":    role,
		"type":    "access",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)
	return tokenString
}

func (fx *routerFixture) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	fx.router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_ClockIn_SetsUserFromClaims(t *testing.T) {
	fx := newRouterFixture(t)
	token := fx.token(t, "user-1", "member")

	rec := fx.do(t, http.MethodPost, "/api/v1/attendance/clock-in", token, map[string]float64{
		"latitude": 35.6812, "longitude": 139.7671,
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	// The user id comes from the token, never from the body.
	assert.Equal(t, "user-1", fx.attendance.lastReq.UserID)
}

func TestRouter_ClockIn_BodyCannotSpoofUser(t *testing.T) {
	fx := newRouterFixture(t)
	token := fx.token(t, "user-1", "member")

	rec := fx.do(t, http.MethodPost, "/api/v1/attendance/clock-in", token, map[string]interface{}{
		"user_id": "someone-else", "latitude": 35.6812, "longitude": 139.7671,
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "user-1", fx.attendance.lastReq.UserID)
}

func TestRouter_ClockIn_GeofenceRejection(t *testing.T) {
	fx := newRouterFixture(t)
	fx.attendance.err = attendance.ErrOutOfGeofence
	token := fx.token(t, "user-1", "member")

	rec := fx.do(t, http.MethodPost, "/api/v1/attendance/clock-in", token, map[string]float64{
		"latitude": 35.6812, "longitude": 139.7671,
	})

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_ClockIn_DuplicateConflict(t *testing.T) {
	fx := newRouterFixture(t)
	fx.attendance.err = attendance.ErrDuplicatePunch
	token := fx.token(t, "user-1", "member")

	rec := fx.do(t, http.MethodPost, "/api/v1/attendance/clock-in", token, map[string]float64{
		"latitude": 35.6812, "longitude": 139.7671,
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRouter_RequiresToken(t *testing.T) {
	fx := newRouterFixture(t)

	rec := fx.do(t, http.MethodGet, "/api/v1/attendance/status", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_RejectsNonAccessToken(t *testing.T) {
	fx := newRouterFixture(t)
	_, tokenString, err := fx.jwtService.JWTAuth().Encode(map[string]interface{}{
		"user_id": "user-1",
		"role":    "member",
		"type":    "refresh",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)

	rec := fx.do(t, http.MethodGet, "/api/v1/attendance/status", tokenString, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_ApproveRequiresApproverRole(t *testing.T) {
	fx := newRouterFixture(t)
	memberToken := fx.token(t, "user-1", "member")

	rec := fx.do(t, http.MethodPost, "/api/v1/corrections/corr-1/approve", memberToken, nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 0, fx.correction.approveCalls)
}

func TestRouter_ApproveAllowsApprover(t *testing.T) {
	fx := newRouterFixture(t)
	approverToken := fx.token(t, "approver-1", "approver")

	rec := fx.do(t, http.MethodPost, "/api/v1/corrections/corr-1/approve", approverToken, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, fx.correction.approveCalls)
}

func TestRouter_DailySummary(t *testing.T) {
	fx := newRouterFixture(t)
	token := fx.token(t, "user-1", "member")

	rec := fx.do(t, http.MethodGet, "/api/v1/summaries/daily?date=2025-06-02", token, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Success bool                    `json:"success"`
		Data    summary.SummaryResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 9.00, body.Data.TotalHours)
	assert.Equal(t, "2025-06-02", body.Data.TargetDate)
}

func TestRouter_MonthlySummary_NotFound(t *testing.T) {
	fx := newRouterFixture(t)
	token := fx.token(t, "user-1", "member")

	rec := fx.do(t, http.MethodGet, "/api/v1/summaries/monthly?month=2025-05", token, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_DailySummary_BadDate(t *testing.T) {
	fx := newRouterFixture(t)
	token := fx.token(t, "user-1", "member")

	rec := fx.do(t, http.MethodGet, "/api/v1/summaries/daily?date=junk", token, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_RemainingLeaveDays(t *testing.T) {
	fx := newRouterFixture(t)
	token := fx.token(t, "user-1", "member")

	rec := fx.do(t, http.MethodGet, "/api/v1/leaves/remaining", token, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data leave.RemainingDaysResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 12, body.Data.RemainingDays)
}

func TestRouter_Heartbeat(t *testing.T) {
	fx := newRouterFixture(t)

	rec := fx.do(t, http.MethodGet, "/healthz", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

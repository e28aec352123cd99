package leave

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendly/attendance-backend-go/internal/domain/leave"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/pkg/clock"
)

type fakeLeaveRepo struct {
	requests map[string]leave.LeaveRequest
	nextID   int
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{requests: map[string]leave.LeaveRequest{}}
}

func (f *fakeLeaveRepo) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.nextID++
	request.ID = fmt.Sprintf("leave-%d", f.nextID)
	f.requests[request.ID] = request
	return request, nil
}

func (f *fakeLeaveRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	request, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return request, nil
}

func (f *fakeLeaveRepo) Update(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	existing, ok := f.requests[request.ID]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	if existing.Status != leave.LeaveStatusPending {
		return leave.LeaveRequest{}, leave.ErrNotPending
	}
	// Mirrors the updated_at = NOW() stamp the table applies.
	request.UpdatedAt = existing.UpdatedAt.Add(time.Minute)
	f.requests[request.ID] = request
	return request, nil
}

func (f *fakeLeaveRepo) ListByUser(ctx context.Context, userID string) ([]leave.LeaveRequest, int64, error) {
	var out []leave.LeaveRequest
	for _, r := range f.requests {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeLeaveRepo) ListByStatus(ctx context.Context, status leave.LeaveStatus) ([]leave.LeaveRequest, int64, error) {
	var out []leave.LeaveRequest
	for _, r := range f.requests {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeLeaveRepo) CheckOverlapping(ctx context.Context, userID string, start, end time.Time, excludeID *string) (bool, error) {
	for _, r := range f.requests {
		if r.UserID != userID {
			continue
		}
		if excludeID != nil && r.ID == *excludeID {
			continue
		}
		if r.Status == leave.LeaveStatusRejected {
			continue
		}
		if r.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLeaveRepo) ListActiveByUserAndYear(ctx context.Context, userID string, year int) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, r := range f.requests {
		if r.UserID == userID && r.StartDate.Year() == year && r.Status != leave.LeaveStatusRejected {
			out = append(out, r)
		}
	}
	return out, nil
}

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeUserStore struct {
	users map[string]user.User
}

func (f *fakeUserStore) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

var leaveNow = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

type leaveFixture struct {
	repo    *fakeLeaveRepo
	users   *fakeUserStore
	service leave.LeaveService
}

func newLeaveFixture() *leaveFixture {
	repo := newFakeLeaveRepo()
	users := &fakeUserStore{users: map[string]user.User{
		// Hired 2018: full 15-day entitlement in 2025.
		"user-1": {ID: "user-1", HireDate: time.Date(2018, 4, 1, 0, 0, 0, 0, time.UTC)},
		// Hired three months ago: no entitlement yet.
		"rookie": {ID: "rookie", HireDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
	}}
	return &leaveFixture{
		repo:    repo,
		users:   users,
		service: NewLeaveService(repo, users, passthroughTx{}, clock.Fixed{T: leaveNow}),
	}
}

func validCreate() leave.CreateLeaveRequest {
	return leave.CreateLeaveRequest{
		UserID:    "user-1",
		Type:      "paid",
		StartDate: "2025-06-10",
		EndDate:   "2025-06-12",
		Reason:    "family trip",
	}
}

func TestLeaveService_Create(t *testing.T) {
	fx := newLeaveFixture()

	created, err := fx.service.Create(context.Background(), validCreate())

	require.NoError(t, err)
	assert.Equal(t, leave.LeaveStatusPending, created.Status)
	assert.Equal(t, leave.LeaveTypePaid, created.Type)
	assert.Equal(t, 3, created.Days())
}

func TestLeaveService_Create_InvalidType(t *testing.T) {
	fx := newLeaveFixture()
	req := validCreate()
	req.Type = "sabbatical"

	_, err := fx.service.Create(context.Background(), req)

	assert.ErrorIs(t, err, leave.ErrInvalidLeaveType)
}

func TestLeaveService_Create_EndBeforeStart(t *testing.T) {
	fx := newLeaveFixture()
	req := validCreate()
	req.StartDate = "2025-06-12"
	req.EndDate = "2025-06-10"

	_, err := fx.service.Create(context.Background(), req)

	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
}

func TestLeaveService_Create_PastStart(t *testing.T) {
	fx := newLeaveFixture()
	req := validCreate()
	req.StartDate = "2025-06-01"
	req.EndDate = "2025-06-03"

	_, err := fx.service.Create(context.Background(), req)

	assert.ErrorIs(t, err, leave.ErrPastDateNotAllowed)
}

func TestLeaveService_Create_StartingTodayIsAllowed(t *testing.T) {
	fx := newLeaveFixture()
	req := validCreate()
	req.StartDate = "2025-06-02"
	req.EndDate = "2025-06-02"

	_, err := fx.service.Create(context.Background(), req)

	assert.NoError(t, err)
}

func TestLeaveService_Create_RangeTooLong(t *testing.T) {
	fx := newLeaveFixture()
	req := validCreate()
	req.StartDate = "2025-06-10"
	req.EndDate = "2025-07-10" // 31 days inclusive

	_, err := fx.service.Create(context.Background(), req)

	assert.ErrorIs(t, err, leave.ErrRangeTooLong)
}

func TestLeaveService_Create_ThirtyDaysIsAllowed(t *testing.T) {
	fx := newLeaveFixture()
	req := validCreate()
	req.StartDate = "2025-06-10"
	req.EndDate = "2025-07-09" // exactly 30 days inclusive

	_, err := fx.service.Create(context.Background(), req)

	assert.NoError(t, err)
}

func TestLeaveService_Create_Overlapping(t *testing.T) {
	fx := newLeaveFixture()
	ctx := context.Background()
	_, err := fx.service.Create(ctx, validCreate())
	require.NoError(t, err)

	req := validCreate()
	req.StartDate = "2025-06-12"
	req.EndDate = "2025-06-14"

	_, err = fx.service.Create(ctx, req)

	assert.ErrorIs(t, err, leave.ErrOverlappingRequest)
}

func TestLeaveService_Create_AdjacentRangesDoNotOverlap(t *testing.T) {
	fx := newLeaveFixture()
	ctx := context.Background()
	_, err := fx.service.Create(ctx, validCreate())
	require.NoError(t, err)

	req := validCreate()
	req.StartDate = "2025-06-13"
	req.EndDate = "2025-06-13"

	_, err = fx.service.Create(ctx, req)

	assert.NoError(t, err)
}

func TestLeaveService_Update(t *testing.T) {
	fx := newLeaveFixture()
	ctx := context.Background()
	created, err := fx.service.Create(ctx, validCreate())
	require.NoError(t, err)

	newEnd := "2025-06-13"
	updated, err := fx.service.Update(ctx, leave.UpdateLeaveRequest{
		ID:      created.ID,
		UserID:  "user-1",
		EndDate: &newEnd,
	})

	require.NoError(t, err)
	assert.Equal(t, 4, updated.Days())
	assert.Equal(t, leave.LeaveStatusPending, updated.Status)
}

func TestLeaveService_Update_OverlapExcludesSelf(t *testing.T) {
	fx := newLeaveFixture()
	ctx := context.Background()
	created, err := fx.service.Create(ctx, validCreate())
	require.NoError(t, err)

	// Shifting within its own original range must not collide with itself.
	newStart := "2025-06-11"
	_, err = fx.service.Update(ctx, leave.UpdateLeaveRequest{
		ID:        created.ID,
		UserID:    "user-1",
		StartDate: &newStart,
	})

	assert.NoError(t, err)
}

func TestLeaveService_Update_NotOwner(t *testing.T) {
	fx := newLeaveFixture()
	ctx := context.Background()
	created, err := fx.service.Create(ctx, validCreate())
	require.NoError(t, err)

	reason := "mine now"
	_, err = fx.service.Update(ctx, leave.UpdateLeaveRequest{
		ID:     created.ID,
		UserID: "user-2",
		Reason: &reason,
	})

	assert.ErrorIs(t, err, leave.ErrNotOwnedByUser)
}

func TestLeaveService_Update_AfterApproval(t *testing.T) {
	fx := newLeaveFixture()
	ctx := context.Background()
	created, err := fx.service.Create(ctx, validCreate())
	require.NoError(t, err)
	_, err = fx.service.Approve(ctx, created.ID, "approver-1")
	require.NoError(t, err)

	reason := "changed my mind"
	_, err = fx.service.Update(ctx, leave.UpdateLeaveRequest{
		ID:     created.ID,
		UserID: "user-1",
		Reason: &reason,
	})

	assert.ErrorIs(t, err, leave.ErrNotPending)
}

func TestLeaveService_ApproveThenReject(t *testing.T) {
	fx := newLeaveFixture()
	ctx := context.Background()
	created, err := fx.service.Create(ctx, validCreate())
	require.NoError(t, err)

	approved, err := fx.service.Approve(ctx, created.ID, "approver-1")
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveStatusApproved, approved.Status)
	require.NotNil(t, approved.ApproverID)
	assert.Equal(t, "approver-1", *approved.ApproverID)

	_, err = fx.service.Reject(ctx, created.ID, "approver-2")
	assert.ErrorIs(t, err, leave.ErrNotPending)
}

func TestLeaveService_Approve_ReturnsStoredRow(t *testing.T) {
	fx := newLeaveFixture()
	ctx := context.Background()
	created, err := fx.service.Create(ctx, validCreate())
	require.NoError(t, err)

	approved, err := fx.service.Approve(ctx, created.ID, "approver-1")
	require.NoError(t, err)

	// The response carries the repository's updated_at, not the stale
	// in-memory value read before the write.
	stored := fx.repo.requests[created.ID]
	assert.True(t, approved.UpdatedAt.Equal(stored.UpdatedAt))
	assert.True(t, approved.UpdatedAt.After(created.UpdatedAt))
}

func TestLeaveService_RemainingLeaveDays(t *testing.T) {
	fx := newLeaveFixture()
	ctx := context.Background()
	_, err := fx.service.Create(ctx, validCreate()) // 3 paid days

	require.NoError(t, err)
	// Sick leave does not draw from the paid allowance.
	sick := validCreate()
	sick.Type = "sick"
	sick.StartDate = "2025-07-01"
	sick.EndDate = "2025-07-02"
	_, err = fx.service.Create(ctx, sick)
	require.NoError(t, err)

	remaining, err := fx.service.RemainingLeaveDays(ctx, "user-1")

	require.NoError(t, err)
	assert.Equal(t, 15, remaining.EntitlementDays)
	assert.Equal(t, 3, remaining.UsedDays)
	assert.Equal(t, 12, remaining.RemainingDays)
}

func TestLeaveService_RemainingLeaveDays_NoEntitlement(t *testing.T) {
	fx := newLeaveFixture()

	remaining, err := fx.service.RemainingLeaveDays(context.Background(), "rookie")

	require.NoError(t, err)
	assert.Equal(t, 0, remaining.EntitlementDays)
	assert.Equal(t, 0, remaining.RemainingDays)
}

func TestLeaveService_RemainingLeaveDays_ClampsAtZero(t *testing.T) {
	fx := newLeaveFixture()
	ctx := context.Background()

	// 16 paid days against a 15-day entitlement.
	first := validCreate()
	first.StartDate = "2025-06-10"
	first.EndDate = "2025-06-19"
	_, err := fx.service.Create(ctx, first)
	require.NoError(t, err)

	second := validCreate()
	second.StartDate = "2025-07-01"
	second.EndDate = "2025-07-06"
	_, err = fx.service.Create(ctx, second)
	require.NoError(t, err)

	remaining, err := fx.service.RemainingLeaveDays(ctx, "user-1")

	require.NoError(t, err)
	assert.Equal(t, 16, remaining.UsedDays)
	assert.Equal(t, 0, remaining.RemainingDays)
}

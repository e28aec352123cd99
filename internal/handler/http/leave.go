package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/attendly/attendance-backend-go/internal/domain/leave"
	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
	"github.com/attendly/attendance-backend-go/internal/pkg/jwt"
)

type LeaveHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	GetMyLeaves(w http.ResponseWriter, r *http.Request)
	GetPendingLeaves(w http.ResponseWriter, r *http.Request)
	GetRemainingDays(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
	jwtService   jwt.Service
}

func NewLeaveHandler(leaveService leave.LeaveService, jwtService jwt.Service) LeaveHandler {
	return &leaveHandlerImpl{
		leaveService: leaveService,
		jwtService:   jwtService,
	}
}

// Create implements LeaveHandler.
func (h *leaveHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	userID, err := h.jwtService.UserIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}
	req.UserID = userID

	created, err := h.leaveService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", mapLeaveToResponse(created))
}

// Update implements LeaveHandler.
func (h *leaveHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req leave.UpdateLeaveRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	userID, err := h.jwtService.UserIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}
	req.UserID = userID
	req.ID = chi.URLParam(r, "id")

	updated, err := h.leaveService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request updated", mapLeaveToResponse(updated))
}

// Approve implements LeaveHandler.
func (h *leaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.leaveService.Approve, "Leave request approved")
}

// Reject implements LeaveHandler.
func (h *leaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.leaveService.Reject, "Leave request rejected")
}

func (h *leaveHandlerImpl) transition(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, id, approverID string) (leave.LeaveRequest, error),
	message string,
) {
	approverID, err := h.jwtService.UserIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "id is required", nil)
		return
	}

	updated, err := fn(r.Context(), id, approverID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, mapLeaveToResponse(updated))
}

// GetMyLeaves implements LeaveHandler.
func (h *leaveHandlerImpl) GetMyLeaves(w http.ResponseWriter, r *http.Request) {
	userID, err := h.jwtService.UserIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	leaves, total, err := h.leaveService.ListMyLeaves(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, mapLeaveList(leaves, total))
}

// GetPendingLeaves implements LeaveHandler.
func (h *leaveHandlerImpl) GetPendingLeaves(w http.ResponseWriter, r *http.Request) {
	leaves, total, err := h.leaveService.ListPendingLeaves(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, mapLeaveList(leaves, total))
}

// GetRemainingDays implements LeaveHandler.
func (h *leaveHandlerImpl) GetRemainingDays(w http.ResponseWriter, r *http.Request) {
	userID, err := h.jwtService.UserIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	remaining, err := h.leaveService.RemainingLeaveDays(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, remaining)
}

func mapLeaveList(leaves []leave.LeaveRequest, total int64) leave.ListLeavesResponse {
	resp := leave.ListLeavesResponse{
		TotalCount: total,
		Leaves:     make([]leave.LeaveResponse, 0, len(leaves)),
	}
	for _, l := range leaves {
		resp.Leaves = append(resp.Leaves, mapLeaveToResponse(l))
	}
	return resp
}

func mapLeaveToResponse(l leave.LeaveRequest) leave.LeaveResponse {
	return leave.LeaveResponse{
		ID:         l.ID,
		UserID:     l.UserID,
		Type:       string(l.Type),
		StartDate:  l.StartDate.Format(dateLayout),
		EndDate:    l.EndDate.Format(dateLayout),
		Reason:     l.Reason,
		Status:     string(l.Status),
		ApproverID: l.ApproverID,
		CreatedAt:  l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  l.UpdatedAt.Format(time.RFC3339),
	}
}

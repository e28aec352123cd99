package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/attendly/attendance-backend-go/internal/domain/correction"
	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
	"github.com/attendly/attendance-backend-go/internal/pkg/jwt"
)

type CorrectionHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	GetMyCorrections(w http.ResponseWriter, r *http.Request)
	GetPendingCorrections(w http.ResponseWriter, r *http.Request)
}

type correctionHandlerImpl struct {
	correctionService correction.CorrectionService
	jwtService        jwt.Service
}

func NewCorrectionHandler(correctionService correction.CorrectionService, jwtService jwt.Service) CorrectionHandler {
	return &correctionHandlerImpl{
		correctionService: correctionService,
		jwtService:        jwtService,
	}
}

// Create implements CorrectionHandler.
func (h *correctionHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req correction.CreateCorrectionRequest

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

	created, err := h.correctionService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Correction request submitted", mapCorrectionToResponse(created))
}

// Approve implements CorrectionHandler.
func (h *correctionHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.correctionService.Approve, "Correction request approved")
}

// Reject implements CorrectionHandler.
func (h *correctionHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.correctionService.Reject, "Correction request rejected")
}

func (h *correctionHandlerImpl) transition(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, id, approverID string) (correction.TimeCorrection, error),
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

	response.SuccessWithMessage(w, message, mapCorrectionToResponse(updated))
}

// GetMyCorrections implements CorrectionHandler.
func (h *correctionHandlerImpl) GetMyCorrections(w http.ResponseWriter, r *http.Request) {
	userID, err := h.jwtService.UserIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	corrections, total, err := h.correctionService.ListMyCorrections(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, mapCorrectionList(corrections, total))
}

// GetPendingCorrections implements CorrectionHandler.
func (h *correctionHandlerImpl) GetPendingCorrections(w http.ResponseWriter, r *http.Request) {
	corrections, total, err := h.correctionService.ListPendingCorrections(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, mapCorrectionList(corrections, total))
}

func mapCorrectionList(corrections []correction.TimeCorrection, total int64) correction.ListCorrectionsResponse {
	resp := correction.ListCorrectionsResponse{
		TotalCount:  total,
		Corrections: make([]correction.CorrectionResponse, 0, len(corrections)),
	}
	for _, c := range corrections {
		resp.Corrections = append(resp.Corrections, mapCorrectionToResponse(c))
	}
	return resp
}

func mapCorrectionToResponse(c correction.TimeCorrection) correction.CorrectionResponse {
	resp := correction.CorrectionResponse{
		ID:           c.ID,
		UserID:       c.UserID,
		AttendanceID: c.AttendanceID,
		RequestType:  string(c.RequestType),
		BeforeTime:   c.BeforeTime.Format(time.RFC3339),
		CurrentType:  string(c.CurrentType),
		Reason:       c.Reason,
		Status:       string(c.Status),
		ApproverID:   c.ApproverID,
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
	}
	if c.RequestedTime != nil {
		v := c.RequestedTime.Format(time.RFC3339)
		resp.RequestedTime = &v
	}
	if c.RequestedType != nil {
		v := string(*c.RequestedType)
		resp.RequestedType = &v
	}
	if c.ApprovedAt != nil {
		v := c.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	return resp
}

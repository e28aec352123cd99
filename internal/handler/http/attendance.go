package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
	"github.com/attendly/attendance-backend-go/internal/pkg/jwt"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	jwtService        jwt.Service
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, jwtService jwt.Service) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		jwtService:        jwtService,
	}
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodePunch(w, r)
	if !ok {
		return
	}

	record, err := h.attendanceService.ClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clock in successful", mapRecordToResponse(record))
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodePunch(w, r)
	if !ok {
		return
	}

	record, err := h.attendanceService.ClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clock out successful", mapRecordToResponse(record))
}

func (h *attendanceHandlerImpl) decodePunch(w http.ResponseWriter, r *http.Request) (attendance.PunchRequest, bool) {
	var req attendance.PunchRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return req, false
	}

	userID, err := h.jwtService.UserIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return req, false
	}
	req.UserID = userID

	return req, true
}

// Status implements AttendanceHandler.
func (h *attendanceHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	userID, err := h.jwtService.UserIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	status, err := h.attendanceService.CurrentStatus(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.StatusResponse{
		UserID: userID,
		Status: string(status),
	})
}

// GetMyAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	userID, err := h.jwtService.UserIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	from, to, err := parseRangeParams(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	records, total, err := h.attendanceService.ListMyAttendance(r.Context(), userID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := attendance.ListRecordsResponse{
		TotalCount: total,
		Records:    make([]attendance.RecordResponse, 0, len(records)),
	}
	for _, rec := range records {
		resp.Records = append(resp.Records, mapRecordToResponse(rec))
	}

	response.Success(w, resp)
}

func mapRecordToResponse(rec attendance.AttendanceRecord) attendance.RecordResponse {
	return attendance.RecordResponse{
		ID:        rec.ID,
		UserID:    rec.UserID,
		Type:      string(rec.Type),
		Timestamp: rec.Timestamp.Format(time.RFC3339),
		Latitude:  rec.Latitude,
		Longitude: rec.Longitude,
	}
}

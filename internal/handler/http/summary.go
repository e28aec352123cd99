package http

import (
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/domain/summary"
	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
	"github.com/attendly/attendance-backend-go/internal/pkg/jwt"
)

type SummaryHandler interface {
	GetDailySummary(w http.ResponseWriter, r *http.Request)
	GetMonthlySummary(w http.ResponseWriter, r *http.Request)
}

type summaryHandlerImpl struct {
	summaryService summary.SummaryService
	jwtService     jwt.Service
}

func NewSummaryHandler(summaryService summary.SummaryService, jwtService jwt.Service) SummaryHandler {
	return &summaryHandlerImpl{
		summaryService: summaryService,
		jwtService:     jwtService,
	}
}

// GetDailySummary implements SummaryHandler.
func (h *summaryHandlerImpl) GetDailySummary(w http.ResponseWriter, r *http.Request) {
	userID, err := h.jwtService.UserIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	date, err := parseDateParam(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	row, err := h.summaryService.GetDaily(r.Context(), userID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, mapSummaryToResponse(row))
}

// GetMonthlySummary implements SummaryHandler.
func (h *summaryHandlerImpl) GetMonthlySummary(w http.ResponseWriter, r *http.Request) {
	userID, err := h.jwtService.UserIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	month, err := parseMonthParam(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	row, err := h.summaryService.GetMonthly(r.Context(), userID, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, mapSummaryToResponse(row))
}

func mapSummaryToResponse(row summary.AttendanceSummary) summary.SummaryResponse {
	return summary.SummaryResponse{
		ID:             row.ID,
		UserID:         row.UserID,
		TargetDate:     row.TargetDate.Format(dateLayout),
		TotalHours:     row.TotalHours,
		OvertimeHours:  row.OvertimeHours,
		LateNightHours: row.LateNightHours,
		HolidayHours:   row.HolidayHours,
		SummaryType:    string(row.SummaryType),
	}
}

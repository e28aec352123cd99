package summary

type SummaryResponse struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	TargetDate     string  `json:"target_date"`
	TotalHours     float64 `json:"total_hours"`
	OvertimeHours  float64 `json:"overtime_hours"`
	LateNightHours float64 `json:"late_night_hours"`
	HolidayHours   float64 `json:"holiday_hours"`
	SummaryType    string  `json:"summary_type"`
	Status         string  `json:"status,omitempty"`
}

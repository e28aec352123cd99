package summary

import "time"

type SummaryType string

const (
	SummaryTypeDaily   SummaryType = "daily"
	SummaryTypeMonthly SummaryType = "monthly"
)

// DayStatus describes how complete a day's punch pair is.
type DayStatus string

const (
	DayStatusNone       DayStatus = "none"
	DayStatusInProgress DayStatus = "in_progress"
	DayStatusComplete   DayStatus = "complete"
)

// AttendanceSummary holds aggregated work hours for one user over a day or a
// month. All hour fields are rounded to 2 decimals, half-up. One row per
// (UserID, TargetDate, SummaryType); monthly rows use the first of the month.
type AttendanceSummary struct {
	ID             string
	UserID         string
	TargetDate     time.Time
	TotalHours     float64
	OvertimeHours  float64
	LateNightHours float64
	HolidayHours   float64
	SummaryType    SummaryType
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DailyResult pairs a daily summary with its completeness status. The status
// is derived, not persisted: summaries for incomplete days carry zero hours.
type DailyResult struct {
	Status  DayStatus
	Summary AttendanceSummary
}

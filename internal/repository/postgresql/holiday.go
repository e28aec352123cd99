package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/holiday"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
)

type holidayCalendar struct {
	db *database.DB
}

func NewHolidayCalendar(db *database.DB) holiday.Calendar {
	return &holidayCalendar{db: db}
}

// IsHoliday implements holiday.Calendar. Weekends count as holidays in
// addition to the rows in the holidays table.
func (r *holidayCalendar) IsHoliday(ctx context.Context, day time.Time) (bool, error) {
	if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return true, nil
	}

	q := GetQuerier(ctx, r.db)

	date := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM holidays WHERE holiday_date = $1)`
	if err := q.QueryRow(ctx, query, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to look up holiday: %w", err)
	}

	return exists, nil
}

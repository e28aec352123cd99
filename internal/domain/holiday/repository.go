package holiday

import (
	"context"
	"time"
)

// Calendar answers whether a calendar day counts as a holiday for
// work-hour decomposition. Only the date part of day is significant.
type Calendar interface {
	IsHoliday(ctx context.Context, day time.Time) (bool, error)
}

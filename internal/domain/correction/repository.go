package correction

import "context"

// CorrectionRepository - interface for time_corrections table.
type CorrectionRepository interface {
	Create(ctx context.Context, c TimeCorrection) (TimeCorrection, error)
	GetByID(ctx context.Context, id string) (TimeCorrection, error)
	// UpdateStatus writes the terminal transition; it must only ever run once
	// per row, which the service guarantees with the pending-status guard.
	UpdateStatus(ctx context.Context, c TimeCorrection) error
	ListByUser(ctx context.Context, userID string) ([]TimeCorrection, int64, error)
	ListByStatus(ctx context.Context, status CorrectionStatus) ([]TimeCorrection, int64, error)
}

package correction

import "context"

type CorrectionService interface {
	Create(ctx context.Context, req CreateCorrectionRequest) (TimeCorrection, error)
	Approve(ctx context.Context, id, approverID string) (TimeCorrection, error)
	Reject(ctx context.Context, id, approverID string) (TimeCorrection, error)
	ListMyCorrections(ctx context.Context, userID string) ([]TimeCorrection, int64, error)
	ListPendingCorrections(ctx context.Context) ([]TimeCorrection, int64, error)
}

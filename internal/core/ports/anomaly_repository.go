package ports

import (
	"context"

	"production/internal/core/domain/model/anomaly"
	"production/internal/core/domain/model/kernel"
)

type AnomalyRepository interface {
	Add(ctx context.Context, a *anomaly.Anomaly) error

	Update(ctx context.Context, a *anomaly.Anomaly) error

	Get(ctx context.Context, id kernel.UUID) (*anomaly.Anomaly, error)

	Delete(ctx context.Context, id kernel.UUID) error

	// HasBlockingForLine reports an unresolved blocking anomaly attached to the line.
	HasBlockingForLine(ctx context.Context, lineID kernel.UUID) (bool, error)

	// HasBlockingForOrder reports an unresolved blocking anomaly attached to the order
	// itself, without a line.
	HasBlockingForOrder(ctx context.Context, orderID kernel.UUID) (bool, error)

	// BlockedLineIDs returns the lines of the order that have an unresolved blocking anomaly.
	BlockedLineIDs(ctx context.Context, orderID kernel.UUID) ([]kernel.UUID, error)

	// DetachLine clears the line reference of the line's anomalies, keeping the order.
	DetachLine(ctx context.Context, lineID kernel.UUID) error

	DeleteByOrder(ctx context.Context, orderID kernel.UUID) error
}

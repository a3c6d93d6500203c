package ports

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
)

type ProductionOrderRepository interface {
	// Add returns a conflict error when the code is already used.
	Add(ctx context.Context, aggregate *order.ProductionOrder) error

	Update(ctx context.Context, aggregate *order.ProductionOrder) error

	Get(ctx context.Context, id kernel.UUID) (*order.ProductionOrder, error)

	Delete(ctx context.Context, id kernel.UUID) error

	ListIDs(ctx context.Context) ([]kernel.UUID, error)
}

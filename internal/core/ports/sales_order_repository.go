package ports

import (
	"context"

	"production/internal/core/domain/model/sales"
)

type SalesOrderRepository interface {
	GetByCode(ctx context.Context, code string) (*sales.SalesOrder, error)
}

// Package ports declares what the application core needs from the outside world:
// repositories over the production aggregates and a unit of work spanning them.
package ports

import (
	"context"
)

type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

type UnitOfWork interface {
	Begin(ctx context.Context) error

	Commit(ctx context.Context) error

	Rollback(ctx context.Context) error

	ProductionOrderRepository() ProductionOrderRepository

	LineRepository() LineRepository

	AnomalyRepository() AnomalyRepository

	SalesOrderRepository() SalesOrderRepository
}

// Package commands holds the write side of the application: one Command and one
// CommandHandler per operation. Every handler runs in a single unit of work and
// finishes by reconciling the orders it touched.
package commands

import (
	"context"

	"production/internal/core/ports"
)

type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ProductionOrderRepoFactory interface {
		ProductionOrderRepository() ports.ProductionOrderRepository
	}

	LineRepoFactory interface {
		LineRepository() ports.LineRepository
	}

	AnomalyRepoFactory interface {
		AnomalyRepository() ports.AnomalyRepository
	}

	SalesOrderRepoFactory interface {
		SalesOrderRepository() ports.SalesOrderRepository
	}

	// UoW spans all production repositories in one transaction.
	//
	//   uow := factory.Create()
	//   if err := uow.Begin(ctx); err != nil { ... }
	//   defer func() { _ = uow.Rollback(ctx) }()
	//   ...
	//   return uow.Commit(ctx)
	UoW interface {
		TxManager
		ProductionOrderRepoFactory
		LineRepoFactory
		AnomalyRepoFactory
		SalesOrderRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)

// Package postgres provides the GORM implementation of the production Unit of Work.
//
// One unit of work wraps one database transaction. Every repository obtained from it
// while the transaction is open runs inside that transaction, so a command handler can
// write the order header, its lines and its anomalies atomically:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.LineRepository().Add(ctx, l); err != nil {
//	    return err
//	}
//	if err := uow.ProductionOrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit is a no-op returning gorm.ErrInvalidTransaction,
// which is why handlers may defer it unconditionally.
//
// Instances are not safe for concurrent use; create one per operation.
package postgres

import (
	"context"

	"production/internal/adapters/out/postgres/anomalyrepo"
	"production/internal/adapters/out/postgres/linerepo"
	"production/internal/adapters/out/postgres/orderrepo"
	"production/internal/adapters/out/postgres/salesrepo"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create returns a fresh unit of work with no open transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one transaction across the production repositories and
// records which aggregates were written in it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin opens the transaction. Calling it again while open does nothing.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	return nil
}

func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) ProductionOrderRepository() ports.ProductionOrderRepository {
	return orderrepo.NewGormProductionOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) LineRepository() ports.LineRepository {
	return linerepo.NewGormLineRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) AnomalyRepository() ports.AnomalyRepository {
	return anomalyrepo.NewGormAnomalyRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) SalesOrderRepository() ports.SalesOrderRepository {
	return salesrepo.NewGormSalesOrderRepository(uow.conn())
}

// TrackAggregate is called by the repositories after each successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedIDs returns the distinct ids of the aggregates written so far, in write order.
func (uow *GormUnitOfWork) TrackedIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(uow.trackedAggregates))
	for _, t := range uow.trackedAggregates {
		ids = append(ids, t.ID)
	}
	return kernel.UniqueUUIDs(ids...)
}

// conn is the open transaction, or the plain connection outside of one.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

package orderrepo

import (
	"context"
	"errors"

	"production/internal/adapters/out/postgres/pgerr"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductionOrderRepository implements ports.ProductionOrderRepository using GORM.
type GormProductionOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormProductionOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormProductionOrderRepository {
	return &GormProductionOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new order. A duplicate code is reported as a conflict.
func (r *GormProductionOrderRepository) Add(ctx context.Context, aggregate *order.ProductionOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&dto).Error
	})
	if err != nil {
		if pgerr.IsUniqueViolation(err, CodeConstraint) {
			return errs.NewConflictErrorWithCause("production order", "code already exists", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes every column so that cleared header fields become NULL.
func (r *GormProductionOrderRepository) Update(ctx context.Context, aggregate *order.ProductionOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ProductionOrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		if pgerr.IsUniqueViolation(result.Error, CodeConstraint) {
			return errs.NewConflictErrorWithCause("production order", "code already exists", result.Error)
		}
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("production order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormProductionOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.ProductionOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductionOrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("production order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormProductionOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ProductionOrderDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("production order", id.String())
	}
	return nil
}

// ListIDs returns the ids of every order, oldest first.
func (r *GormProductionOrderRepository) ListIDs(ctx context.Context) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&ProductionOrderDTO{}).
		Order("created_at asc").
		Pluck("id", &raw).Error; err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, b := range raw {
		id, err := kernel.UUIDFromBytes(b[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}

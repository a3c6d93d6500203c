package anomalyrepo

import (
	"context"
	"errors"

	"production/internal/core/domain/model/anomaly"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// blockingScope selects unresolved blocking anomalies.
func blockingScope(db *gorm.DB) *gorm.DB {
	return db.Where("is_blocking = ? AND resolved = ?", true, false)
}

// GormAnomalyRepository implements ports.AnomalyRepository using GORM.
type GormAnomalyRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormAnomalyRepository(db *gorm.DB, tracker aggregateTracker) *GormAnomalyRepository {
	return &GormAnomalyRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormAnomalyRepository) Add(ctx context.Context, a *anomaly.Anomaly) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := fromDomain(a)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(a.ID(), a)
	return nil
}

func (r *GormAnomalyRepository) Update(ctx context.Context, a *anomaly.Anomaly) error {
	if err := a.Validate(); err != nil {
		return err
	}

	dto := fromDomain(a)
	result := r.db.WithContext(ctx).
		Model(&AnomalyDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("anomaly", a.ID().String())
	}

	r.tracker.TrackAggregate(a.ID(), a)
	return nil
}

func (r *GormAnomalyRepository) Get(ctx context.Context, id kernel.UUID) (*anomaly.Anomaly, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AnomalyDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("anomaly", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormAnomalyRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&AnomalyDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("anomaly", id.String())
	}
	return nil
}

func (r *GormAnomalyRepository) HasBlockingForLine(ctx context.Context, lineID kernel.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&AnomalyDTO{}).
		Scopes(blockingScope).
		Where("production_order_line_id = ?", lineID.Bytes()).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormAnomalyRepository) HasBlockingForOrder(ctx context.Context, orderID kernel.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&AnomalyDTO{}).
		Scopes(blockingScope).
		Where("production_order_id = ? AND production_order_line_id IS NULL", orderID.Bytes()).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormAnomalyRepository) BlockedLineIDs(ctx context.Context, orderID kernel.UUID) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&AnomalyDTO{}).
		Scopes(blockingScope).
		Where("production_order_id = ? AND production_order_line_id IS NOT NULL", orderID.Bytes()).
		Distinct().
		Pluck("production_order_line_id", &raw).Error; err != nil {
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

func (r *GormAnomalyRepository) DetachLine(ctx context.Context, lineID kernel.UUID) error {
	return r.db.WithContext(ctx).
		Model(&AnomalyDTO{}).
		Where("production_order_line_id = ?", lineID.Bytes()).
		Update("production_order_line_id", nil).Error
}

func (r *GormAnomalyRepository) DeleteByOrder(ctx context.Context, orderID kernel.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&AnomalyDTO{}, "production_order_id = ?", orderID.Bytes()).
		Error
}

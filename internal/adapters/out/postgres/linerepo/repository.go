package linerepo

import (
	"context"
	"errors"
	"fmt"

	"production/internal/adapters/out/postgres/pgerr"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/line"
	"production/internal/core/ports"
	"production/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLineRepository implements ports.LineRepository using GORM.
type GormLineRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormLineRepository(db *gorm.DB, tracker aggregateTracker) *GormLineRepository {
	return &GormLineRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the line inside a savepoint so that a seq collision does not abort the
// caller's transaction. The collision is reported as ports.ErrLineSequenceTaken.
func (r *GormLineRepository) Add(ctx context.Context, l *line.Line) error {
	if err := l.Validate(); err != nil {
		return err
	}

	dto := fromDomain(l)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(&dto).Error
	})
	if err != nil {
		if pgerr.IsUniqueViolation(err, SequenceConstraint) {
			return fmt.Errorf("%w: %w", ports.ErrLineSequenceTaken, err)
		}
		return err
	}

	r.tracker.TrackAggregate(l.ID(), l)
	return nil
}

func (r *GormLineRepository) Update(ctx context.Context, l *line.Line) error {
	if err := l.Validate(); err != nil {
		return err
	}

	dto := fromDomain(l)
	result := r.db.WithContext(ctx).
		Model(&LineDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit(clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		if pgerr.IsUniqueViolation(result.Error, SequenceConstraint) {
			return fmt.Errorf("%w: %w", ports.ErrLineSequenceTaken, result.Error)
		}
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("production order line", l.ID().String())
	}

	r.tracker.TrackAggregate(l.ID(), l)
	return nil
}

func (r *GormLineRepository) Get(ctx context.Context, id kernel.UUID) (*line.Line, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto LineDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("production order line", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormLineRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*line.Line, error) {
	var dtos []LineDTO
	if err := r.db.WithContext(ctx).
		Where("production_order_id = ?", orderID.Bytes()).
		Order("seq asc").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	lines := make([]*line.Line, 0, len(dtos))
	for _, dto := range dtos {
		l, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}

	return lines, nil
}

func (r *GormLineRepository) MaxSeq(ctx context.Context, orderID kernel.UUID) (int, error) {
	var maxSeq int
	if err := r.db.WithContext(ctx).
		Model(&LineDTO{}).
		Select("COALESCE(MAX(seq), 0)").
		Where("production_order_id = ?", orderID.Bytes()).
		Scan(&maxSeq).Error; err != nil {
		return 0, err
	}
	return maxSeq, nil
}

// Delete removes the line; its sizes go with it through the cascading foreign key.
func (r *GormLineRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&LineDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("production order line", id.String())
	}
	return nil
}

func (r *GormLineRepository) DeleteByOrder(ctx context.Context, orderID kernel.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&LineDTO{}, "production_order_id = ?", orderID.Bytes()).
		Error
}

// UpsertSize keeps the existing row id when the label is already present.
func (r *GormLineRepository) UpsertSize(ctx context.Context, size *line.Size) error {
	if err := size.Validate(); err != nil {
		return err
	}

	dto := sizeFromDomain(size)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "line_id"}, {Name: "size"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"qty_ordered",
				"qty_to_produce",
				"qty_produced",
				"qty_defect",
			}),
		}).
		Create(&dto).Error
}

func (r *GormLineRepository) DeleteSize(ctx context.Context, lineID kernel.UUID, label string) error {
	result := r.db.WithContext(ctx).
		Delete(&SizeDTO{}, "line_id = ? AND size = ?", lineID.Bytes(), label)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("production order line size", label)
	}
	return nil
}

func (r *GormLineRepository) ListSizes(ctx context.Context, lineID kernel.UUID) ([]*line.Size, error) {
	var dtos []SizeDTO
	if err := r.db.WithContext(ctx).
		Where("line_id = ?", lineID.Bytes()).
		Order("size asc").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	sizes := make([]*line.Size, 0, len(dtos))
	for _, dto := range dtos {
		s, err := sizeToDomain(dto)
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, s)
	}

	return sizes, nil
}

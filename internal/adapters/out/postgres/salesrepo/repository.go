package salesrepo

import (
	"context"
	"errors"

	"production/internal/core/domain/model/sales"
	"production/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSalesOrderRepository implements ports.SalesOrderRepository using GORM.
type GormSalesOrderRepository struct {
	db *gorm.DB
}

func NewGormSalesOrderRepository(db *gorm.DB) *GormSalesOrderRepository {
	return &GormSalesOrderRepository{db: db}
}

func (r *GormSalesOrderRepository) GetByCode(ctx context.Context, code string) (*sales.SalesOrder, error) {
	var dto SalesOrderDTO
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		First(&dto, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("sales order", code)
		}
		return nil, err
	}

	return toDomain(dto)
}

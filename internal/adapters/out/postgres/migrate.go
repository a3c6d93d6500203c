package postgres

import (
	"context"

	"production/internal/adapters/out/postgres/anomalyrepo"
	"production/internal/adapters/out/postgres/linerepo"
	"production/internal/adapters/out/postgres/orderrepo"
	"production/internal/adapters/out/postgres/salesrepo"

	"gorm.io/gorm"
)

// Models lists every table owned or read by the service, parents first.
func Models() []any {
	return []any{
		&orderrepo.ProductionOrderDTO{},
		&linerepo.LineDTO{},
		&linerepo.SizeDTO{},
		&anomalyrepo.AnomalyDTO{},
		&salesrepo.SalesOrderDTO{},
		&salesrepo.SalesOrderLineDTO{},
	}
}

// Migrate creates or alters the schema to match Models.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(Models()...)
}

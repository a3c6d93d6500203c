// Package salesrepo reads commercial sales orders. The tables are fed by the sales
// system; production only reads them.
package salesrepo

import (
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/sales"

	"github.com/google/uuid"
)

type SalesOrderDTO struct {
	ID           uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Code         string              `gorm:"size:64;not null;uniqueIndex"`
	CustomerName *string             `gorm:"size:255"`
	DateOrder    *time.Time          `gorm:"type:date"`
	Lines        []SalesOrderLineDTO `gorm:"foreignKey:SalesOrderID;constraint:OnDelete:CASCADE"`
}

func (SalesOrderDTO) TableName() string {
	return "sales_orders"
}

// SalesOrderLineDTO keeps the position of the line in the sales document so that
// size order survives the round trip.
type SalesOrderLineDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	SalesOrderID uuid.UUID `gorm:"type:uuid;not null;index"`
	Position     int       `gorm:"not null;default:0"`
	ArticleRef   string    `gorm:"size:64;not null"`
	Color        *string   `gorm:"size:64"`
	Size         *string   `gorm:"size:16"`
	Qty          int       `gorm:"not null;default:0"`
}

func (SalesOrderLineDTO) TableName() string {
	return "sales_order_lines"
}

func toDomain(dto SalesOrderDTO) (*sales.SalesOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]sales.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		lines = append(lines, sales.Line{
			ArticleRef: l.ArticleRef,
			Color:      deref(l.Color),
			Size:       deref(l.Size),
			Qty:        l.Qty,
		})
	}

	return sales.RestoreSalesOrder(id, dto.Code, deref(dto.CustomerName), dto.DateOrder, lines)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

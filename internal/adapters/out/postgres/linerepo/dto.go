// Package linerepo persists production order lines and their size breakdown.
package linerepo

import (
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/line"

	"github.com/google/uuid"
)

const (
	// SequenceConstraint makes (production order, seq) unique. Concurrent line
	// creation for the same order collides on it.
	SequenceConstraint = "uq_production_order_lines_order_seq"

	// SizeConstraint makes a size label unique within its line.
	SizeConstraint = "uq_production_order_line_sizes_line_size"
)

type LineDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductionOrderID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_production_order_lines_order_seq,priority:1"`
	Seq               int       `gorm:"not null;uniqueIndex:uq_production_order_lines_order_seq,priority:2"`
	Code              string    `gorm:"size:80;not null;index"`
	ArticleRef        string    `gorm:"size:64;not null"`
	Color             *string   `gorm:"size:64"`
	QtyOrdered        int       `gorm:"not null;default:0"`
	QtyToProduce      int       `gorm:"not null;default:0"`
	QtyProduced       int       `gorm:"not null;default:0"`
	QtyDefect         int       `gorm:"not null;default:0"`
	ServiceCurrent    string    `gorm:"size:16;not null"`
	State             string    `gorm:"size:16;not null"`
	CreatedAt         time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt         time.Time `gorm:"not null;autoUpdateTime:false"`
	Sizes             []SizeDTO `gorm:"foreignKey:LineID;constraint:OnDelete:CASCADE"`
}

func (LineDTO) TableName() string {
	return "production_order_lines"
}

type SizeDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	LineID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_production_order_line_sizes_line_size,priority:1"`
	Size         string    `gorm:"size:16;not null;uniqueIndex:uq_production_order_line_sizes_line_size,priority:2"`
	QtyOrdered   int       `gorm:"not null;default:0"`
	QtyToProduce int       `gorm:"not null;default:0"`
	QtyProduced  int       `gorm:"not null;default:0"`
	QtyDefect    int       `gorm:"not null;default:0"`
}

func (SizeDTO) TableName() string {
	return "production_order_line_sizes"
}

func fromDomain(l *line.Line) LineDTO {
	q := l.Quantities()

	var color *string
	if c := l.Color(); c != "" {
		color = &c
	}

	return LineDTO{
		ID:                l.ID().Bytes(),
		ProductionOrderID: l.OrderID().Bytes(),
		Seq:               l.Seq(),
		Code:              l.Code(),
		ArticleRef:        l.ArticleRef(),
		Color:             color,
		QtyOrdered:        q.Ordered,
		QtyToProduce:      q.ToProduce,
		QtyProduced:       q.Produced,
		QtyDefect:         q.Defect,
		ServiceCurrent:    l.ServiceCurrent().String(),
		State:             l.State().String(),
		CreatedAt:         l.CreatedAt(),
		UpdatedAt:         l.UpdatedAt(),
	}
}

func toDomain(dto LineDTO) (*line.Line, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.ProductionOrderID[:])
	if err != nil {
		return nil, err
	}

	stage, err := kernel.ParseServiceStage(dto.ServiceCurrent)
	if err != nil {
		return nil, err
	}

	state, err := kernel.ParseProductionState(dto.State)
	if err != nil {
		return nil, err
	}

	var color string
	if dto.Color != nil {
		color = *dto.Color
	}

	qty := line.Quantities{
		Ordered:   dto.QtyOrdered,
		ToProduce: dto.QtyToProduce,
		Produced:  dto.QtyProduced,
		Defect:    dto.QtyDefect,
	}

	return line.RestoreLine(
		id,
		orderID,
		dto.Seq,
		dto.Code,
		dto.ArticleRef,
		color,
		qty,
		stage,
		state,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func sizeFromDomain(s *line.Size) SizeDTO {
	q := s.Quantities()
	return SizeDTO{
		ID:           s.ID().Bytes(),
		LineID:       s.LineID().Bytes(),
		Size:         s.Label(),
		QtyOrdered:   q.Ordered,
		QtyToProduce: q.ToProduce,
		QtyProduced:  q.Produced,
		QtyDefect:    q.Defect,
	}
}

func sizeToDomain(dto SizeDTO) (*line.Size, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	lineID, err := kernel.UUIDFromBytes(dto.LineID[:])
	if err != nil {
		return nil, err
	}

	return line.NewSize(id, lineID, dto.Size, line.Quantities{
		Ordered:   dto.QtyOrdered,
		ToProduce: dto.QtyToProduce,
		Produced:  dto.QtyProduced,
		Defect:    dto.QtyDefect,
	})
}

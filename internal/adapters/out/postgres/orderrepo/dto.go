// Package orderrepo persists the production order aggregate header. Lines and
// anomalies live in their own tables and repositories.
package orderrepo

import (
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// CodeConstraint is the unique index guarding production order codes.
const CodeConstraint = "uq_production_orders_code"

// ProductionOrderDTO is the production_orders row. Stage and state are stored by name
// so that read-side queries can filter on the transport values directly.
type ProductionOrderDTO struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Code                  string     `gorm:"size:64;not null;uniqueIndex:uq_production_orders_code"`
	SaleRef               *string    `gorm:"size:64;index"`
	CustomerName          *string    `gorm:"size:255"`
	DateOrder             *time.Time `gorm:"type:date"`
	DateDeliveryRequested *time.Time `gorm:"type:date"`
	DateStartPlan         *time.Time `gorm:"type:date"`
	DateEndEstimated      *time.Time `gorm:"type:date"`
	ServiceCurrent        string     `gorm:"size:16;not null;index"`
	State                 string     `gorm:"size:16;not null;index"`
	StateBeforeIssue      *string    `gorm:"size:16"`
	CreatedAt             time.Time  `gorm:"not null;autoCreateTime:false"`
	UpdatedAt             time.Time  `gorm:"not null;autoUpdateTime:false;index"`
}

func (ProductionOrderDTO) TableName() string {
	return "production_orders"
}

func fromDomain(o *order.ProductionOrder) ProductionOrderDTO {
	d := o.Details()

	var stateBeforeIssue *string
	if o.StateBeforeIssue() != kernel.UnknownState {
		name := o.StateBeforeIssue().String()
		stateBeforeIssue = &name
	}

	return ProductionOrderDTO{
		ID:                    o.ID().Bytes(),
		Code:                  o.Code(),
		SaleRef:               nullable(d.SaleRef),
		CustomerName:          nullable(d.CustomerName),
		DateOrder:             d.DateOrder,
		DateDeliveryRequested: d.DateDeliveryRequested,
		DateStartPlan:         d.DateStartPlan,
		DateEndEstimated:      d.DateEndEstimated,
		ServiceCurrent:        o.ServiceCurrent().String(),
		State:                 o.State().String(),
		StateBeforeIssue:      stateBeforeIssue,
		CreatedAt:             o.CreatedAt(),
		UpdatedAt:             o.UpdatedAt(),
	}
}

func toDomain(dto ProductionOrderDTO) (*order.ProductionOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
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

	stateBeforeIssue := kernel.UnknownState
	if dto.StateBeforeIssue != nil {
		if stateBeforeIssue, err = kernel.ParseProductionState(*dto.StateBeforeIssue); err != nil {
			return nil, err
		}
	}

	details := order.Details{
		SaleRef:               deref(dto.SaleRef),
		CustomerName:          deref(dto.CustomerName),
		DateOrder:             dto.DateOrder,
		DateDeliveryRequested: dto.DateDeliveryRequested,
		DateStartPlan:         dto.DateStartPlan,
		DateEndEstimated:      dto.DateEndEstimated,
	}

	return order.RestoreProductionOrder(
		id,
		dto.Code,
		details,
		stage,
		state,
		stateBeforeIssue,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

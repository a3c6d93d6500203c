// Package anomalyrepo persists production anomalies.
package anomalyrepo

import (
	"time"

	"production/internal/core/domain/model/anomaly"
	"production/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type AnomalyDTO struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ProductionOrderID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductionOrderLineID *uuid.UUID `gorm:"type:uuid;index"`
	Service               string     `gorm:"size:16;not null"`
	Severity              string     `gorm:"size:16;not null"`
	Description           string     `gorm:"type:text;not null"`
	IsBlocking            bool       `gorm:"not null;default:false"`
	Resolved              bool       `gorm:"not null;default:false"`
	CreatedAt             time.Time  `gorm:"not null;autoCreateTime:false"`
}

func (AnomalyDTO) TableName() string {
	return "anomalies"
}

func fromDomain(a *anomaly.Anomaly) AnomalyDTO {
	var lineID *uuid.UUID
	if id := a.LineID(); id != nil {
		raw := id.Bytes()
		lineID = &raw
	}

	return AnomalyDTO{
		ID:                    a.ID().Bytes(),
		ProductionOrderID:     a.OrderID().Bytes(),
		ProductionOrderLineID: lineID,
		Service:               a.Service().String(),
		Severity:              a.Severity().String(),
		Description:           a.Description(),
		IsBlocking:            a.IsBlocking(),
		Resolved:              a.IsResolved(),
		CreatedAt:             a.CreatedAt(),
	}
}

func toDomain(dto AnomalyDTO) (*anomaly.Anomaly, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.ProductionOrderID[:])
	if err != nil {
		return nil, err
	}

	var lineID *kernel.UUID
	if dto.ProductionOrderLineID != nil {
		lID, lineErr := kernel.UUIDFromBytes((*dto.ProductionOrderLineID)[:])
		if lineErr != nil {
			return nil, lineErr
		}
		lineID = &lID
	}

	service, err := kernel.ParseServiceStage(dto.Service)
	if err != nil {
		return nil, err
	}

	severity, err := anomaly.ParseSeverity(dto.Severity)
	if err != nil {
		return nil, err
	}

	return anomaly.RestoreAnomaly(
		id,
		orderID,
		lineID,
		service,
		severity,
		dto.Description,
		dto.IsBlocking,
		dto.Resolved,
		dto.CreatedAt,
	)
}

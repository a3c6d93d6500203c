package queries

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrExportProductionOrderQueryIsNotConstructed = errors.New(
	"ExportProductionOrderQuery must be created via NewExportProductionOrderQuery constructor",
)

// ExportProductionOrderQuery renders a production order as an XLSX workbook.
type ExportProductionOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewExportProductionOrderQuery(orderID kernel.UUID) (ExportProductionOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return ExportProductionOrderQuery{}, err
	}
	return ExportProductionOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q ExportProductionOrderQuery) Validate() error {
	return q.guard.Validate(ErrExportProductionOrderQueryIsNotConstructed)
}

func (q ExportProductionOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

type ExportedWorkbook struct {
	FileName string
	Content  []byte
}

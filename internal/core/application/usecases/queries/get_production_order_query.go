package queries

import (
	"errors"
	"time"

	"production/internal/core/domain/model/anomaly"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrGetProductionOrderQueryIsNotConstructed = errors.New(
	"GetProductionOrderQuery must be created via NewGetProductionOrderQuery constructor",
)

type GetProductionOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetProductionOrderQuery(orderID kernel.UUID) (GetProductionOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetProductionOrderQuery{}, err
	}
	return GetProductionOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetProductionOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetProductionOrderQueryIsNotConstructed)
}

func (q GetProductionOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// ProductionOrderView is a production order with its lines (by seq), their sizes (by
// label) and every anomaly reported on the order, newest first.
type ProductionOrderView struct {
	ProductionOrderSummary
	Lines     []LineView
	Anomalies []AnomalyView
}

type LineView struct {
	ID             kernel.UUID
	Seq            int
	Code           string
	ArticleRef     string
	Color          string
	QtyOrdered     int
	QtyToProduce   int
	QtyProduced    int
	QtyDefect      int
	ServiceCurrent kernel.ServiceStage
	State          kernel.ProductionState
	Sizes          []SizeView
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type SizeView struct {
	Size         string
	QtyOrdered   int
	QtyToProduce int
	QtyProduced  int
	QtyDefect    int
}

type AnomalyView struct {
	ID          kernel.UUID
	LineID      *kernel.UUID
	LineCode    string
	Service     kernel.ServiceStage
	Severity    anomaly.Severity
	Description string
	IsBlocking  bool
	Resolved    bool
	CreatedAt   time.Time
}

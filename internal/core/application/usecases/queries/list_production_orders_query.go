// Package queries holds the read side of the application. Handlers read straight from
// the database into read models shaped for the HTTP API and exports, bypassing the
// aggregates.
package queries

import (
	"errors"
	"strings"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrListProductionOrdersQueryIsNotConstructed = errors.New(
	"ListProductionOrdersQuery must be created via NewListProductionOrdersQuery constructor",
)

// ListProductionOrdersQuery filters production orders. Every filter is optional.
//
//	issue := kernel.StateIssue
//	query := NewListProductionOrdersQuery(&issue, nil, "acme")
//	orders, err := handler.Handle(ctx, query)
type ListProductionOrdersQuery struct {
	state  *kernel.ProductionState
	stage  *kernel.ServiceStage
	search string

	guard guard.ConstructorGuard
}

// NewListProductionOrdersQuery builds the filter. search matches code, sale_ref and
// customer_name, case-insensitively.
func NewListProductionOrdersQuery(
	state *kernel.ProductionState,
	stage *kernel.ServiceStage,
	search string,
) (ListProductionOrdersQuery, error) {
	var stateErr, stageErr error
	if state != nil {
		stateErr = state.Validate()
	}
	if stage != nil {
		stageErr = stage.Validate()
	}
	if err := errors.Join(stateErr, stageErr); err != nil {
		return ListProductionOrdersQuery{}, err
	}

	return ListProductionOrdersQuery{
		state:  state,
		stage:  stage,
		search: strings.TrimSpace(search),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListProductionOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListProductionOrdersQueryIsNotConstructed)
}

func (q ListProductionOrdersQuery) State() *kernel.ProductionState {
	return q.state
}

func (q ListProductionOrdersQuery) Stage() *kernel.ServiceStage {
	return q.stage
}

func (q ListProductionOrdersQuery) Search() string {
	return q.search
}

// ProductionOrderSummary is one row of the production order list.
type ProductionOrderSummary struct {
	ID                    kernel.UUID
	Code                  string
	SaleRef               string
	CustomerName          string
	ServiceCurrent        kernel.ServiceStage
	State                 kernel.ProductionState
	DateOrder             *time.Time
	DateDeliveryRequested *time.Time
	DateStartPlan         *time.Time
	DateEndEstimated      *time.Time
	LinesCount            int
	OpenAnomalies         int
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

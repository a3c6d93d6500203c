package queries

import (
	"errors"
	"strings"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrListSalesOrdersQueryIsNotConstructed = errors.New(
	"ListSalesOrdersQuery must be created via NewListSalesOrdersQuery constructor",
)

// ListSalesOrdersQuery lists the sales orders a production order can be imported from.
type ListSalesOrdersQuery struct {
	search string

	guard guard.ConstructorGuard
}

func NewListSalesOrdersQuery(search string) ListSalesOrdersQuery {
	return ListSalesOrdersQuery{search: strings.TrimSpace(search), guard: guard.NewConstructorGuard()}
}

func (q ListSalesOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListSalesOrdersQueryIsNotConstructed)
}

func (q ListSalesOrdersQuery) Search() string {
	return q.search
}

type SalesOrderSummary struct {
	ID           kernel.UUID
	Code         string
	CustomerName string
	DateOrder    *time.Time
	LinesCount   int
	TotalQty     int
}

package queries

import (
	"errors"
	"strings"

	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrGetSalesOrderQueryIsNotConstructed = errors.New(
	"GetSalesOrderQuery must be created via NewGetSalesOrderQuery constructor",
)

type GetSalesOrderQuery struct {
	code string

	guard guard.ConstructorGuard
}

func NewGetSalesOrderQuery(code string) (GetSalesOrderQuery, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return GetSalesOrderQuery{}, errs.NewValueIsRequiredError("code")
	}
	return GetSalesOrderQuery{code: code, guard: guard.NewConstructorGuard()}, nil
}

func (q GetSalesOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetSalesOrderQueryIsNotConstructed)
}

func (q GetSalesOrderQuery) Code() string {
	return q.code
}

// SalesOrderView is a sales order with its lines in document order.
type SalesOrderView struct {
	SalesOrderSummary
	Lines []SalesOrderLineView
}

type SalesOrderLineView struct {
	ArticleRef string
	Color      string
	Size       string
	Qty        int
}

// Package sales is the read-only view of commercial sales orders that production
// orders are materialized from.
package sales

import (
	"errors"
	"strings"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

var ErrSalesOrderIsNotConstructed = errors.New("SalesOrder must be created via RestoreSalesOrder")

// Line is one (article, colour, size) quantity of a sales order.
type Line struct {
	ArticleRef string
	Color      string
	Size       string
	Qty        int
}

type SalesOrder struct {
	id           kernel.UUID
	code         string
	customerName string
	dateOrder    *time.Time
	lines        []Line

	isConstructed bool
}

func RestoreSalesOrder(id kernel.UUID, code, customerName string, dateOrder *time.Time, lines []Line) (*SalesOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(code) == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}

	copied := make([]Line, len(lines))
	copy(copied, lines)

	return &SalesOrder{
		id:            id,
		code:          code,
		customerName:  customerName,
		dateOrder:     dateOrder,
		lines:         copied,
		isConstructed: true,
	}, nil
}

func (s *SalesOrder) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSalesOrderIsNotConstructed
	}
	return nil
}

func (s *SalesOrder) ID() kernel.UUID {
	return s.id
}

func (s *SalesOrder) Code() string {
	return s.code
}

func (s *SalesOrder) CustomerName() string {
	return s.customerName
}

func (s *SalesOrder) DateOrder() *time.Time {
	return s.dateOrder
}

func (s *SalesOrder) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *SalesOrder) HasLines() bool {
	return len(s.lines) > 0
}

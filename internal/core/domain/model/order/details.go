package order

import (
	"strings"
	"time"
)

// Details carries the editable header fields of a production order.
type Details struct {
	SaleRef               string
	CustomerName          string
	DateOrder             *time.Time
	DateDeliveryRequested *time.Time
	DateStartPlan         *time.Time
	DateEndEstimated      *time.Time
}

func (d Details) normalized() Details {
	d.SaleRef = strings.TrimSpace(d.SaleRef)
	d.CustomerName = strings.TrimSpace(d.CustomerName)
	return d
}

// HasSaleRef reports whether the order is linked to a sales order.
func (d Details) HasSaleRef() bool {
	return d.SaleRef != ""
}

// DetailsPatch is a partial update of Details; nil fields are kept.
type DetailsPatch struct {
	SaleRef               *string
	CustomerName          *string
	DateOrder             *time.Time
	DateDeliveryRequested *time.Time
	DateStartPlan         *time.Time
	DateEndEstimated      *time.Time
}

func (d Details) Apply(p DetailsPatch) Details {
	if p.SaleRef != nil {
		d.SaleRef = *p.SaleRef
	}
	if p.CustomerName != nil {
		d.CustomerName = *p.CustomerName
	}
	if p.DateOrder != nil {
		d.DateOrder = p.DateOrder
	}
	if p.DateDeliveryRequested != nil {
		d.DateDeliveryRequested = p.DateDeliveryRequested
	}
	if p.DateStartPlan != nil {
		d.DateStartPlan = p.DateStartPlan
	}
	if p.DateEndEstimated != nil {
		d.DateEndEstimated = p.DateEndEstimated
	}
	return d
}

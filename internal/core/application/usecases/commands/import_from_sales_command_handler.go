package commands

import (
	"context"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/line"
	"production/internal/core/domain/services"
	"production/internal/pkg/errs"
)

type ImportFromSalesCommandHandler struct {
	uowFactory UoWFactory
	grouper    services.SalesImportGrouper
	reconciler reconciler
}

func NewImportFromSalesCommandHandler(
	uowFactory UoWFactory,
	grouper services.SalesImportGrouper,
	propagator services.AnomalyPropagator,
) ImportFromSalesCommandHandler {
	return ImportFromSalesCommandHandler{
		uowFactory: uowFactory,
		grouper:    grouper,
		reconciler: newReconciler(propagator),
	}
}

// Handle checks, in order: the order exists, it has a sale_ref, it has no lines yet, the
// sales order exists and has lines. It then creates one line per (article, colour) group
// with one size row per size, and derives the order state once at the end.
func (h ImportFromSalesCommandHandler) Handle(ctx context.Context, cmd ImportFromSalesCommand) (ImportResult, error) {
	var result ImportResult
	if err := cmd.Validate(); err != nil {
		return result, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return result, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.ProductionOrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return result, err
	}
	if !o.Details().HasSaleRef() {
		return result, errs.NewInvalidStateError("production order has no sale_ref")
	}

	lineRepo := uow.LineRepository()
	existing, err := lineRepo.MaxSeq(ctx, o.ID())
	if err != nil {
		return result, err
	}
	if existing > 0 {
		return result, errs.NewConflictError("production order", "already has lines")
	}

	salesOrder, err := uow.SalesOrderRepository().GetByCode(ctx, o.Details().SaleRef)
	if err != nil {
		return result, err
	}
	if !salesOrder.HasLines() {
		return result, errs.NewInvalidStateError("sales order has no lines")
	}

	now := time.Now().UTC()
	for _, group := range h.grouper.Group(salesOrder.Lines()) {
		qty, qtyErr := line.NewQuantities(group.TotalQty, nil)
		if qtyErr != nil {
			return ImportResult{}, qtyErr
		}

		l, allocErr := allocateLine(ctx, lineRepo, o, group.ArticleRef, group.Color, qty, now)
		if allocErr != nil {
			return ImportResult{}, allocErr
		}

		sizes := make([]services.SizeQty, 0, len(group.Sizes))
		for _, sq := range group.Sizes {
			sizeQty, sizeQtyErr := line.NewQuantities(sq.Qty, nil)
			if sizeQtyErr != nil {
				return ImportResult{}, sizeQtyErr
			}
			size, sizeErr := line.NewSize(kernel.NewUUID(), l.ID(), sq.Size, sizeQty)
			if sizeErr != nil {
				return ImportResult{}, sizeErr
			}
			if err = lineRepo.UpsertSize(ctx, size); err != nil {
				return ImportResult{}, err
			}
			sizes = append(sizes, sq)
		}

		result.Details = append(result.Details, ImportedLine{
			LineCode:   l.Code(),
			ArticleRef: l.ArticleRef(),
			Color:      l.Color(),
			Sizes:      sizes,
		})
	}
	result.CreatedLines = len(result.Details)

	if _, err = h.reconciler.reconcile(ctx, uow, nil, []kernel.UUID{o.ID()}, now); err != nil {
		return ImportResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ImportResult{}, err
	}

	return result, nil
}

package commands_test

import (
	"testing"
	"time"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateProductionOrderCommand(t *testing.T) {
	t.Run("should trim code", func(t *testing.T) {
		cmd, err := commands.NewCreateProductionOrderCommand(kernel.NewUUID(), " OP-1 ", order.Details{}, nil, nil)

		require.NoError(t, err)
		assert.Equal(t, "OP-1", cmd.Code())
	})

	t.Run("should require code and refuse issue", func(t *testing.T) {
		issue := kernel.StateIssue

		_, err := commands.NewCreateProductionOrderCommand(kernel.NewUUID(), "", order.Details{}, nil, &issue)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should fail with zero id", func(t *testing.T) {
		_, err := commands.NewCreateProductionOrderCommand(kernel.UUID{}, "OP-1", order.Details{}, nil, nil)

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestCreateProductionOrderCommandHandler_Handle(t *testing.T) {
	t.Run("should store a draft order", func(t *testing.T) {
		h := newHarness()

		o := h.createOrder(t, "OP-600", "SO-9")

		stored := h.order(t, o.ID())
		assert.Equal(t, "OP-600", stored.Code())
		assert.Equal(t, "SO-9", stored.Details().SaleRef)
		assert.Equal(t, kernel.StateDraft, stored.State())
		assert.Equal(t, kernel.StagePlanning, stored.ServiceCurrent())
	})

	t.Run("should apply starting stage and state", func(t *testing.T) {
		h := newHarness()
		stage := kernel.StageSewing
		state := kernel.StateInProduction
		cmd, err := commands.NewCreateProductionOrderCommand(kernel.NewUUID(), "OP-601", order.Details{}, &stage, &state)
		require.NoError(t, err)

		o, err := commands.NewCreateProductionOrderCommandHandler(h.db).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, kernel.StageSewing, o.ServiceCurrent())
		assert.Equal(t, kernel.StateInProduction, o.State())
	})

	t.Run("should refuse a duplicate code", func(t *testing.T) {
		h := newHarness()
		h.createOrder(t, "OP-602", "")
		cmd, err := commands.NewCreateProductionOrderCommand(kernel.NewUUID(), "OP-602", order.Details{}, nil, nil)
		require.NoError(t, err)

		_, err = commands.NewCreateProductionOrderCommandHandler(h.db).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Len(t, h.db.state.orders, 1)
	})
}

func TestUpdateProductionOrderCommandHandler_Handle(t *testing.T) {
	t.Run("should patch header fields and override state", func(t *testing.T) {
		h := newHarness()
		o := h.createOrder(t, "OP-610", "SO-1")
		customer := "Acme"
		start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
		state := kernel.StateShipped

		cmd, err := commands.NewUpdateProductionOrderCommand(o.ID(),
			order.DetailsPatch{CustomerName: &customer, DateStartPlan: &start}, nil, &state)
		require.NoError(t, err)
		updated, err := commands.NewUpdateProductionOrderCommandHandler(h.db).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, "Acme", updated.Details().CustomerName)
		assert.Equal(t, "SO-1", updated.Details().SaleRef)
		assert.Equal(t, kernel.StateShipped, h.order(t, o.ID()).State())
	})

	t.Run("should not leave issue", func(t *testing.T) {
		h := newHarness()
		o := h.createOrder(t, "OP-611", "")
		orderID := o.ID()
		h.reportAnomaly(t, &orderID, nil, true)
		state := kernel.StatePlanned

		cmd, err := commands.NewUpdateProductionOrderCommand(orderID, order.DetailsPatch{}, nil, &state)
		require.NoError(t, err)
		_, err = commands.NewUpdateProductionOrderCommandHandler(h.db).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrBlocked)
		h.requireIssueInvariant(t)
	})

	t.Run("unknown order", func(t *testing.T) {
		h := newHarness()
		cmd, err := commands.NewUpdateProductionOrderCommand(kernel.NewUUID(), order.DetailsPatch{}, nil, nil)
		require.NoError(t, err)

		_, err = commands.NewUpdateProductionOrderCommandHandler(h.db).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestDeleteProductionOrderCommandHandler_Handle(t *testing.T) {
	h := newHarness()
	o := h.createOrder(t, "OP-620", "")
	keep := h.createOrder(t, "OP-621", "")
	l := h.createLine(t, o.ID(), 3)
	h.createLine(t, keep.ID(), 3)
	lineID := l.ID()
	h.reportAnomaly(t, nil, &lineID, true)
	size, err := commands.NewUpsertLineSizeCommand(lineID, "S", 3, nil)
	require.NoError(t, err)
	_, err = commands.NewUpsertLineSizeCommandHandler(h.db).Handle(t.Context(), size)
	require.NoError(t, err)

	cmd, err := commands.NewDeleteProductionOrderCommand(o.ID())
	require.NoError(t, err)
	require.NoError(t, commands.NewDeleteProductionOrderCommandHandler(h.db).Handle(t.Context(), cmd))

	assert.Len(t, h.db.state.orders, 1)
	assert.Len(t, h.db.state.lines, 1)
	assert.Empty(t, h.db.state.anomalies)
	assert.Empty(t, h.db.state.sizes)

	err = commands.NewDeleteProductionOrderCommandHandler(h.db).Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestReconcileOrdersCommandHandler_Handle(t *testing.T) {
	h := newHarness()
	o := h.createOrder(t, "OP-630", "")
	l := h.createLine(t, o.ID(), 3)
	healthy := h.createOrder(t, "OP-631", "")
	h.createLine(t, healthy.ID(), 3)
	lineID := l.ID()
	h.reportAnomaly(t, nil, &lineID, true)

	// Simulate a state written behind the application's back.
	corrupted := h.line(t, lineID)
	require.True(t, corrupted.RestoreFromIssue(kernel.StatePlanned, time.Now()))
	h.db.state.lines[lineID] = *corrupted

	cmd, err := commands.NewReconcileOrdersCommand(nil)
	require.NoError(t, err)
	result, err := commands.NewReconcileOrdersCommandHandler(h.db, h.propagator).Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Checked)
	assert.Equal(t, 1, result.Corrected)
	assert.Equal(t, kernel.StateIssue, h.line(t, lineID).State())
	h.requireIssueInvariant(t)

	single := healthy.ID()
	cmd, err = commands.NewReconcileOrdersCommand(&single)
	require.NoError(t, err)
	result, err = commands.NewReconcileOrdersCommandHandler(h.db, h.propagator).Handle(t.Context(), cmd)
	require.NoError(t, err)
	assert.Equal(t, commands.ReconcileResult{Checked: 1, Corrected: 0}, result)
}

func TestReconcileOrdersCommandHandler_KeepsShippedOrder(t *testing.T) {
	h := newHarness()
	o := h.createOrder(t, "OP-640", "")
	l := h.createLine(t, o.ID(), 1)
	h.setProduced(t, l.ID(), 1)
	for range 5 {
		_, err := h.advance(t, l.ID())
		require.NoError(t, err)
	}
	require.Equal(t, kernel.StateProduced, h.order(t, o.ID()).State())

	shipped := kernel.StateShipped
	update, err := commands.NewUpdateProductionOrderCommand(o.ID(), order.DetailsPatch{}, nil, &shipped)
	require.NoError(t, err)
	_, err = commands.NewUpdateProductionOrderCommandHandler(h.db).Handle(t.Context(), update)
	require.NoError(t, err)

	cmd, err := commands.NewReconcileOrdersCommand(nil)
	require.NoError(t, err)
	result, err := commands.NewReconcileOrdersCommandHandler(h.db, h.propagator).Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, commands.ReconcileResult{Checked: 1, Corrected: 0}, result)
	assert.Equal(t, kernel.StateShipped, h.order(t, o.ID()).State())
}

func TestReconcileOrdersCommandHandler_SkipsOrderDeletedDuringRun(t *testing.T) {
	h := newHarness()
	gone := h.createOrder(t, "OP-650", "")
	kept := h.createOrder(t, "OP-651", "")
	h.createLine(t, kept.ID(), 2)
	h.db.afterListIDs = func() {
		delete(h.db.state.orders, gone.ID())
	}

	cmd, err := commands.NewReconcileOrdersCommand(nil)
	require.NoError(t, err)
	result, err := commands.NewReconcileOrdersCommandHandler(h.db, h.propagator).Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Checked)

	single := gone.ID()
	cmd, err = commands.NewReconcileOrdersCommand(&single)
	require.NoError(t, err)
	_, err = commands.NewReconcileOrdersCommandHandler(h.db, h.propagator).Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound, "an explicit order still has to exist")
}

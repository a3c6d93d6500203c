package commands_test

import (
	"testing"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/anomaly"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/line"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

// harness wires every handler to one in-memory store.
type harness struct {
	db         *memDB
	propagator services.AnomalyPropagator
}

func newHarness() *harness {
	return &harness{
		db:         newMemDB(),
		propagator: services.NewAnomalyPropagator(services.NewStateDeriver()),
	}
}

func (h *harness) createOrder(t *testing.T, code, saleRef string) *order.ProductionOrder {
	t.Helper()
	cmd, err := commands.NewCreateProductionOrderCommand(kernel.NewUUID(), code, order.Details{SaleRef: saleRef}, nil, nil)
	require.NoError(t, err)
	o, err := commands.NewCreateProductionOrderCommandHandler(h.db).Handle(t.Context(), cmd)
	require.NoError(t, err)
	return o
}

func (h *harness) createLine(t *testing.T, orderID kernel.UUID, qtyOrdered int) *line.Line {
	t.Helper()
	l, err := h.tryCreateLine(t, orderID, qtyOrdered)
	require.NoError(t, err)
	return l
}

func (h *harness) tryCreateLine(t *testing.T, orderID kernel.UUID, qtyOrdered int) (*line.Line, error) {
	t.Helper()
	cmd, err := commands.NewCreateLineCommand(orderID, "ART-1", "red", qtyOrdered, nil)
	require.NoError(t, err)
	return commands.NewCreateLineCommandHandler(h.db, h.propagator).Handle(t.Context(), cmd)
}

func (h *harness) advance(t *testing.T, lineID kernel.UUID) (*line.Line, error) {
	t.Helper()
	cmd, err := commands.NewAdvanceLineCommand(lineID)
	require.NoError(t, err)
	return commands.NewAdvanceLineCommandHandler(h.db, h.propagator).Handle(t.Context(), cmd)
}

func (h *harness) setProduced(t *testing.T, lineID kernel.UUID, produced int) {
	t.Helper()
	cmd, err := commands.NewUpdateLineCommand(lineID, line.Edit{Produced: &produced}, nil, nil)
	require.NoError(t, err)
	_, err = commands.NewUpdateLineCommandHandler(h.db, h.propagator).Handle(t.Context(), cmd)
	require.NoError(t, err)
}

func (h *harness) reportAnomaly(t *testing.T, orderID, lineID *kernel.UUID, blocking bool) *anomaly.Anomaly {
	t.Helper()
	cmd, err := commands.NewCreateAnomalyCommand(orderID, lineID, kernel.StageSewing, anomaly.High, "broken needle", blocking)
	require.NoError(t, err)
	a, err := commands.NewCreateAnomalyCommandHandler(h.db, h.propagator).Handle(t.Context(), cmd)
	require.NoError(t, err)
	return a
}

func (h *harness) resolve(t *testing.T, anomalyID kernel.UUID) {
	t.Helper()
	resolved := true
	cmd, err := commands.NewUpdateAnomalyCommand(anomalyID, commands.AnomalyPatch{Resolved: &resolved})
	require.NoError(t, err)
	_, err = commands.NewUpdateAnomalyCommandHandler(h.db, h.propagator).Handle(t.Context(), cmd)
	require.NoError(t, err)
}

func (h *harness) order(t *testing.T, id kernel.UUID) *order.ProductionOrder {
	t.Helper()
	o, ok := h.db.state.orders[id]
	require.True(t, ok, "order %s not stored", id)
	return &o
}

func (h *harness) line(t *testing.T, id kernel.UUID) *line.Line {
	t.Helper()
	l, ok := h.db.state.lines[id]
	require.True(t, ok, "line %s not stored", id)
	return &l
}

// requireIssueInvariant checks that every stored order and line is in issue exactly
// when an unresolved blocking anomaly is attached to it, directly or through a line.
func (h *harness) requireIssueInvariant(t *testing.T) {
	t.Helper()
	st := h.db.state

	lineBlocked := map[kernel.UUID]bool{}
	orderBlocked := map[kernel.UUID]bool{}
	for _, a := range st.anomalies {
		if !a.Blocks() {
			continue
		}
		orderBlocked[a.OrderID()] = true
		if a.LineID() != nil {
			lineBlocked[*a.LineID()] = true
		}
	}

	for id, l := range st.lines {
		require.Equal(t, lineBlocked[id], l.State() == kernel.StateIssue, "line %s", l.Code())
	}
	for id, o := range st.orders {
		require.Equal(t, orderBlocked[id], o.State() == kernel.StateIssue, "order %s", o.Code())
	}
}

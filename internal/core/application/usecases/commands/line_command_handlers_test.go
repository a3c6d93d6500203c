package commands_test

import (
	"testing"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/line"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateLineCommandHandler_Handle(t *testing.T) {
	t.Run("override bypasses stage guards and re-derives the order", func(t *testing.T) {
		h := newHarness()
		o := h.createOrder(t, "OP-500", "")
		l := h.createLine(t, o.ID(), 5)
		stage := kernel.StageProduced
		state := kernel.StateProduced

		cmd, err := commands.NewUpdateLineCommand(l.ID(), line.Edit{}, &stage, &state)
		require.NoError(t, err)
		updated, err := commands.NewUpdateLineCommandHandler(h.db, h.propagator).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, kernel.StageProduced, updated.ServiceCurrent())
		assert.Equal(t, kernel.StateProduced, h.order(t, o.ID()).State())
	})

	t.Run("issue cannot be chosen", func(t *testing.T) {
		state := kernel.StateIssue

		_, err := commands.NewUpdateLineCommand(kernel.NewUUID(), line.Edit{}, nil, &state)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("issue cannot be left while blocked", func(t *testing.T) {
		h := newHarness()
		o := h.createOrder(t, "OP-501", "")
		l := h.createLine(t, o.ID(), 5)
		lineID := l.ID()
		h.reportAnomaly(t, nil, &lineID, true)
		state := kernel.StatePlanned

		cmd, err := commands.NewUpdateLineCommand(lineID, line.Edit{}, nil, &state)
		require.NoError(t, err)
		_, err = commands.NewUpdateLineCommandHandler(h.db, h.propagator).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrBlocked)
		h.requireIssueInvariant(t)
	})

	t.Run("invalid quantities are rejected", func(t *testing.T) {
		h := newHarness()
		o := h.createOrder(t, "OP-502", "")
		l := h.createLine(t, o.ID(), 5)
		negative := -3

		cmd, err := commands.NewUpdateLineCommand(l.ID(), line.Edit{Defect: &negative}, nil, nil)
		require.NoError(t, err)
		_, err = commands.NewUpdateLineCommandHandler(h.db, h.propagator).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, 0, h.line(t, l.ID()).Quantities().Defect)
	})
}

func TestDeleteLineCommandHandler_Handle(t *testing.T) {
	deleteLine := func(t *testing.T, h *harness, id kernel.UUID) error {
		t.Helper()
		cmd, err := commands.NewDeleteLineCommand(id)
		require.NoError(t, err)
		return commands.NewDeleteLineCommandHandler(h.db, h.propagator).Handle(t.Context(), cmd)
	}

	t.Run("re-derives from the remaining lines", func(t *testing.T) {
		h := newHarness()
		o := h.createOrder(t, "OP-510", "")
		started := h.createLine(t, o.ID(), 1)
		h.createLine(t, o.ID(), 1)
		_, err := h.advance(t, started.ID())
		require.NoError(t, err)
		require.Equal(t, kernel.StateInProduction, h.order(t, o.ID()).State())

		require.NoError(t, deleteLine(t, h, started.ID()))

		assert.Len(t, h.db.state.lines, 1)
		assert.Equal(t, kernel.StatePlanned, h.order(t, o.ID()).State())
	})

	t.Run("keeps order state when no line remains", func(t *testing.T) {
		h := newHarness()
		o := h.createOrder(t, "OP-511", "")
		l := h.createLine(t, o.ID(), 1)

		require.NoError(t, deleteLine(t, h, l.ID()))

		assert.Empty(t, h.db.state.lines)
		assert.Equal(t, kernel.StatePlanned, h.order(t, o.ID()).State())
	})

	t.Run("detaches anomalies onto the order", func(t *testing.T) {
		h := newHarness()
		o := h.createOrder(t, "OP-512", "")
		l := h.createLine(t, o.ID(), 1)
		lineID := l.ID()
		a := h.reportAnomaly(t, nil, &lineID, true)

		require.NoError(t, deleteLine(t, h, lineID))

		stored := h.db.state.anomalies[a.ID()]
		assert.Nil(t, stored.LineID())
		assert.Equal(t, kernel.StateIssue, h.order(t, o.ID()).State())
		h.requireIssueInvariant(t)
	})

	t.Run("unknown line", func(t *testing.T) {
		h := newHarness()

		require.ErrorIs(t, deleteLine(t, h, kernel.NewUUID()), errs.ErrObjectNotFound)
	})
}

func TestLineSizeCommandHandlers(t *testing.T) {
	h := newHarness()
	o := h.createOrder(t, "OP-520", "")
	l := h.createLine(t, o.ID(), 10)
	upsert := commands.NewUpsertLineSizeCommandHandler(h.db)

	cmd, err := commands.NewUpsertLineSizeCommand(l.ID(), "M", 4, nil)
	require.NoError(t, err)
	sizes, err := upsert.Handle(t.Context(), cmd)
	require.NoError(t, err)
	require.Len(t, sizes, 1)
	firstID := sizes[0].ID()

	toProduce := 6
	cmd, err = commands.NewUpsertLineSizeCommand(l.ID(), " M ", 5, &toProduce)
	require.NoError(t, err)
	sizes, err = upsert.Handle(t.Context(), cmd)
	require.NoError(t, err)
	require.Len(t, sizes, 1, "same label replaces")
	assert.True(t, sizes[0].ID().IsEqual(firstID))
	assert.Equal(t, line.Quantities{Ordered: 5, ToProduce: 6}, sizes[0].Quantities())

	cmd, err = commands.NewUpsertLineSizeCommand(l.ID(), "L", 2, nil)
	require.NoError(t, err)
	sizes, err = upsert.Handle(t.Context(), cmd)
	require.NoError(t, err)
	assert.Len(t, sizes, 2)
	assert.Equal(t, kernel.StatePlanned, h.order(t, o.ID()).State(), "sizes do not derive")

	del, err := commands.NewDeleteLineSizeCommand(l.ID(), "L")
	require.NoError(t, err)
	require.NoError(t, commands.NewDeleteLineSizeCommandHandler(h.db).Handle(t.Context(), del))
	assert.Len(t, h.db.state.sizes[l.ID()], 1)

	err = commands.NewDeleteLineSizeCommandHandler(h.db).Handle(t.Context(), del)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	cmd, err = commands.NewUpsertLineSizeCommand(kernel.NewUUID(), "S", 1, nil)
	require.NoError(t, err)
	_, err = upsert.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	_, err = commands.NewUpsertLineSizeCommand(l.ID(), "", -1, nil)
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

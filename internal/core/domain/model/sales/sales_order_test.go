package sales_test

import (
	"testing"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/sales"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestoreSalesOrder(t *testing.T) {
	t.Run("should copy lines", func(t *testing.T) {
		lines := []sales.Line{{ArticleRef: "A", Color: "red", Size: "S", Qty: 5}}

		so, err := sales.RestoreSalesOrder(kernel.NewUUID(), "SO-1", "Acme", nil, lines)
		require.NoError(t, err)
		lines[0].Qty = 99

		require.NoError(t, so.Validate())
		assert.True(t, so.HasLines())
		assert.Equal(t, 5, so.Lines()[0].Qty)
	})

	t.Run("should require code", func(t *testing.T) {
		_, err := sales.RestoreSalesOrder(kernel.NewUUID(), "", "Acme", nil, nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should report empty orders", func(t *testing.T) {
		so, err := sales.RestoreSalesOrder(kernel.NewUUID(), "SO-2", "", nil, nil)

		require.NoError(t, err)
		assert.False(t, so.HasLines())
	})
}

package services_test

import (
	"testing"

	"production/internal/core/domain/model/sales"
	"production/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalesImportGrouper_Group(t *testing.T) {
	grouper := services.NewSalesImportGrouper()

	t.Run("should group by article and colour", func(t *testing.T) {
		groups := grouper.Group([]sales.Line{
			{ArticleRef: "A", Color: "red", Size: "S", Qty: 5},
			{ArticleRef: "A", Color: "red", Size: "M", Qty: 3},
			{ArticleRef: "B", Color: "blue", Size: "L", Qty: 2},
		})

		require.Len(t, groups, 2)
		assert.Equal(t, services.ImportGroup{
			ArticleRef: "A",
			Color:      "red",
			Sizes:      []services.SizeQty{{Size: "S", Qty: 5}, {Size: "M", Qty: 3}},
			TotalQty:   8,
		}, groups[0])
		assert.Equal(t, "B", groups[1].ArticleRef)
		assert.Equal(t, 2, groups[1].TotalQty)
	})

	t.Run("should order groups by article then colour", func(t *testing.T) {
		groups := grouper.Group([]sales.Line{
			{ArticleRef: "b", Color: "", Size: "S", Qty: 1},
			{ArticleRef: "B", Color: "red", Size: "S", Qty: 1},
			{ArticleRef: "A", Color: "white", Size: "S", Qty: 1},
			{ArticleRef: "A", Color: "", Size: "S", Qty: 1},
		})

		got := make([][2]string, 0, len(groups))
		for _, g := range groups {
			got = append(got, [2]string{g.ArticleRef, g.Color})
		}
		assert.Equal(t, [][2]string{{"A", ""}, {"A", "white"}, {"B", "red"}, {"b", ""}}, got)
	})

	t.Run("should sum repeated sizes", func(t *testing.T) {
		groups := grouper.Group([]sales.Line{
			{ArticleRef: "A", Size: "M", Qty: 2},
			{ArticleRef: "A", Size: "M", Qty: 4},
		})

		require.Len(t, groups, 1)
		assert.Equal(t, []services.SizeQty{{Size: "M", Qty: 6}}, groups[0].Sizes)
		assert.Equal(t, 6, groups[0].TotalQty)
	})

	t.Run("should leave unlabelled quantities out of the total", func(t *testing.T) {
		groups := grouper.Group([]sales.Line{
			{ArticleRef: "A", Size: "S", Qty: 5},
			{ArticleRef: "A", Size: " ", Qty: 4},
			{ArticleRef: "C", Size: "", Qty: 7},
		})

		require.Len(t, groups, 2)
		assert.Equal(t, []services.SizeQty{{Size: "S", Qty: 5}}, groups[0].Sizes)
		assert.Equal(t, 5, groups[0].TotalQty)
		assert.Empty(t, groups[1].Sizes)
		assert.Zero(t, groups[1].TotalQty)
	})

	t.Run("should return no groups for no lines", func(t *testing.T) {
		assert.Empty(t, grouper.Group(nil))
	})
}

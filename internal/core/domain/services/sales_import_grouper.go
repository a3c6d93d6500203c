package services

import (
	"cmp"
	"slices"
	"strings"

	"production/internal/core/domain/model/sales"
)

// SizeQty is the quantity of one size label within an import group.
type SizeQty struct {
	Size string
	Qty  int
}

// ImportGroup becomes one production line: all sales lines with the same article and colour.
type ImportGroup struct {
	ArticleRef string
	Color      string
	Sizes      []SizeQty
	TotalQty   int
}

type SalesImportGrouper interface {
	Group(lines []sales.Line) []ImportGroup
}

var _ SalesImportGrouper = &salesImportGrouper{}

type salesImportGrouper struct{}

func NewSalesImportGrouper() SalesImportGrouper {
	return &salesImportGrouper{}
}

// Group buckets sales lines by (article_ref, color), a missing colour counting as the
// empty string, and returns the groups in ascending byte order of that pair. Sizes keep
// their first-seen order; repeated sizes within a group are summed. Lines without a size
// label open their group but add no quantity, so TotalQty is always the sum of Sizes.
func (g *salesImportGrouper) Group(lines []sales.Line) []ImportGroup {
	type key struct {
		article string
		color   string
	}

	index := make(map[key]int)
	groups := make([]ImportGroup, 0)
	sizePos := make([]map[string]int, 0)

	for _, sl := range lines {
		k := key{article: strings.TrimSpace(sl.ArticleRef), color: strings.TrimSpace(sl.Color)}
		gi, ok := index[k]
		if !ok {
			gi = len(groups)
			index[k] = gi
			groups = append(groups, ImportGroup{ArticleRef: k.article, Color: k.color})
			sizePos = append(sizePos, make(map[string]int))
		}

		size := strings.TrimSpace(sl.Size)
		if size == "" {
			continue
		}
		if si, seen := sizePos[gi][size]; seen {
			groups[gi].Sizes[si].Qty += sl.Qty
		} else {
			sizePos[gi][size] = len(groups[gi].Sizes)
			groups[gi].Sizes = append(groups[gi].Sizes, SizeQty{Size: size, Qty: sl.Qty})
		}
		groups[gi].TotalQty += sl.Qty
	}

	slices.SortFunc(groups, func(a, b ImportGroup) int {
		return cmp.Or(
			strings.Compare(a.ArticleRef, b.ArticleRef),
			strings.Compare(a.Color, b.Color),
		)
	})

	return groups
}

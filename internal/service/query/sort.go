package query

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ashwinyue/strato-tools/internal/model"
)

// SortTools 按排序选项稳定排序，返回新切片
// 未知选项保持原顺序
func SortTools(tools []model.Tool, option string) []model.Tool {
	sorted := slices.Clone(tools)

	switch option {
	case SortMostPopular:
		slices.SortStableFunc(sorted, func(a, b model.Tool) int { return trueFirst(a.Popular, b.Popular) })
	case SortLatest:
		slices.SortStableFunc(sorted, func(a, b model.Tool) int { return trueFirst(a.IsNew, b.IsNew) })
	case SortPriceLowHigh:
		slices.SortStableFunc(sorted, func(a, b model.Tool) int { return a.Price.Type.Rank() - b.Price.Type.Rank() })
	case SortPriceHighLow:
		slices.SortStableFunc(sorted, func(a, b model.Tool) int { return b.Price.Type.Rank() - a.Price.Type.Rank() })
	case SortNameAZ:
		// Collator 不是并发安全的，每次排序新建
		c := collate.New(language.English)
		slices.SortStableFunc(sorted, func(a, b model.Tool) int { return c.CompareString(a.Name, b.Name) })
	case SortNameZA:
		c := collate.New(language.English)
		slices.SortStableFunc(sorted, func(a, b model.Tool) int { return c.CompareString(b.Name, a.Name) })
	}

	return sorted
}

func trueFirst(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return -1
	default:
		return 1
	}
}

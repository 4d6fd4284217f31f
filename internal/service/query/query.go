// Package query 提供目录查询引擎
// 包括结构化筛选排序、聊天推荐以及推荐回复模板
// 所有函数都是纯函数，不持有状态，可以并发调用
package query

import (
	"strings"

	"github.com/ashwinyue/strato-tools/internal/model"
)

// Source 目录数据来源
// 引擎不会修改 AllTools 返回的切片
type Source interface {
	AllTools() []model.Tool
}

// 排序选项
const (
	SortMostPopular  = "Most Popular"
	SortLatest       = "Latest"
	SortPriceLowHigh = "Price: Low to High"
	SortPriceHighLow = "Price: High to Low"
	SortNameAZ       = "Alphabetical: A-Z"
	SortNameZA       = "Alphabetical: Z-A"
)

// 价格标签
const (
	PriceLabelAll      = "All"
	PriceLabelFree     = "Free"
	PriceLabelFreemium = "Freemium"
	PriceLabelPaid     = "Paid"
	PriceLabelContact  = "Contact for Pricing"
)

var priceLabelTags = map[string]model.PriceType{
	PriceLabelFree:     model.PriceFree,
	PriceLabelFreemium: model.PriceFreemium,
	PriceLabelPaid:     model.PricePaid,
	PriceLabelContact:  model.PriceContact,
}

// PriceTagForLabel 价格标签对应的价格类型
// "All" 和未知标签返回 false
func PriceTagForLabel(label string) (model.PriceType, bool) {
	t, ok := priceLabelTags[label]
	return t, ok
}

// FilterAndSort 按筛选状态过滤并排序
// 各阶段按顺序做 AND，保持目录顺序，最后稳定排序
// Sort 为空时按默认的 Most Popular 排序
func FilterAndSort(src Source, state FilterState) []model.Tool {
	result := src.AllTools()

	if state.Search != "" {
		needle := strings.ToLower(state.Search)
		result = keep(result, func(t *model.Tool) bool {
			return strings.Contains(strings.ToLower(t.Name), needle) ||
				strings.Contains(strings.ToLower(t.Description), needle)
		})
	}

	if len(state.Categories) > 0 {
		result = keep(result, func(t *model.Tool) bool {
			return anyOf(state.Categories, t.HasCategory)
		})
	}

	if len(state.Industries) > 0 {
		result = keep(result, func(t *model.Tool) bool {
			return anyOf(state.Industries, t.HasIndustry)
		})
	}

	if len(state.Price) > 0 {
		result = keep(result, func(t *model.Tool) bool {
			return anyOf(state.Price, func(label string) bool {
				if label == PriceLabelAll {
					return true
				}
				tag, ok := PriceTagForLabel(label)
				return ok && t.Price.Type == tag
			})
		})
	}

	if state.ShowNew {
		result = keep(result, func(t *model.Tool) bool { return t.IsNew })
	}
	if state.ShowPopular {
		result = keep(result, func(t *model.Tool) bool { return t.Popular })
	}
	if state.HasIntegrations {
		result = keep(result, (*model.Tool).HasIntegrations)
	}

	return SortTools(result, sortOrDefault(state.Sort))
}

// keep 保序过滤，返回新切片
func keep(tools []model.Tool, pred func(*model.Tool) bool) []model.Tool {
	out := make([]model.Tool, 0, len(tools))
	for i := range tools {
		if pred(&tools[i]) {
			out = append(out, tools[i])
		}
	}
	return out
}

func anyOf(labels []string, match func(string) bool) bool {
	for _, l := range labels {
		if match(l) {
			return true
		}
	}
	return false
}

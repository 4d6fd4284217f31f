package query

import (
	"net/url"
	"slices"

	"github.com/spf13/cast"

	"github.com/ashwinyue/strato-tools/internal/model"
)

// 查询参数名
const (
	ParamSearch          = "search"
	ParamCategories      = "categories"
	ParamIndustries      = "industries"
	ParamPrice           = "price"
	ParamSort            = "sort"
	ParamShowNew         = "show_new"
	ParamShowPopular     = "show_popular"
	ParamHasIntegrations = "has_integrations"
)

// FilterState 调用方持有的筛选状态
// 只保存标签字符串，不引用具体工具，可以放进 URL 或会话
type FilterState struct {
	Search          string   `json:"search"`
	Categories      []string `json:"categories"`
	Industries      []string `json:"industries"`
	Price           []string `json:"price"`
	Sort            string   `json:"sort"`
	ShowNew         bool     `json:"show_new"`
	ShowPopular     bool     `json:"show_popular"`
	HasIntegrations bool     `json:"has_integrations"`
}

// DefaultFilterState 默认筛选状态
func DefaultFilterState() FilterState {
	return FilterState{
		Categories: []string{},
		Industries: []string{},
		Price:      []string{},
		Sort:       SortMostPopular,
	}
}

// Values 编码为查询参数，默认值省略
func (s FilterState) Values() url.Values {
	v := url.Values{}
	if s.Search != "" {
		v.Set(ParamSearch, s.Search)
	}
	for _, c := range s.Categories {
		v.Add(ParamCategories, c)
	}
	for _, i := range s.Industries {
		v.Add(ParamIndustries, i)
	}
	for _, p := range s.Price {
		v.Add(ParamPrice, p)
	}
	if s.Sort != "" && s.Sort != SortMostPopular {
		v.Set(ParamSort, s.Sort)
	}
	if s.ShowNew {
		v.Set(ParamShowNew, "true")
	}
	if s.ShowPopular {
		v.Set(ParamShowPopular, "true")
	}
	if s.HasIntegrations {
		v.Set(ParamHasIntegrations, "true")
	}
	return v
}

// Encode 编码为查询字符串
func (s FilterState) Encode() string {
	return s.Values().Encode()
}

// DecodeFilterState 从查询参数解析筛选状态，缺省字段取默认值
func DecodeFilterState(v url.Values) FilterState {
	s := DefaultFilterState()
	s.Search = v.Get(ParamSearch)
	s.Categories = append(s.Categories, v[ParamCategories]...)
	s.Industries = append(s.Industries, v[ParamIndustries]...)
	s.Price = append(s.Price, v[ParamPrice]...)
	if sort := v.Get(ParamSort); sort != "" {
		s.Sort = sort
	}
	s.ShowNew = cast.ToBool(v.Get(ParamShowNew))
	s.ShowPopular = cast.ToBool(v.Get(ParamShowPopular))
	s.HasIntegrations = cast.ToBool(v.Get(ParamHasIntegrations))
	return s
}

// ParseFilterState 从查询字符串解析筛选状态
func ParseFilterState(raw string) (FilterState, error) {
	v, err := url.ParseQuery(raw)
	if err != nil {
		return FilterState{}, err
	}
	return DecodeFilterState(v), nil
}

// Equal 是否等价，nil 与空集合视为相同，空排序视为默认排序
func (s FilterState) Equal(o FilterState) bool {
	return s.Search == o.Search &&
		slices.Equal(s.Categories, o.Categories) &&
		slices.Equal(s.Industries, o.Industries) &&
		slices.Equal(s.Price, o.Price) &&
		sortOrDefault(s.Sort) == sortOrDefault(o.Sort) &&
		s.ShowNew == o.ShowNew &&
		s.ShowPopular == o.ShowPopular &&
		s.HasIntegrations == o.HasIntegrations
}

// SearchLink 工具卡片跳转到列表页的链接
func SearchLink(t model.Tool) string {
	s := DefaultFilterState()
	s.Search = t.Name
	return "/?" + s.Encode()
}

func sortOrDefault(s string) string {
	if s == "" {
		return SortMostPopular
	}
	return s
}

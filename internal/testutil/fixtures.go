package testutil

import (
	"testing"

	"github.com/ashwinyue/strato-tools/internal/catalog"
	"github.com/ashwinyue/strato-tools/internal/model"
)

// Catalog 返回内置种子目录
func Catalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Seed()
	if err != nil {
		t.Fatalf("failed to load seed catalog: %v", err)
	}
	return c
}

// ToolOption 修改测试工具
type ToolOption func(*model.Tool)

// NewTool 创建一个合法的测试工具
func NewTool(id string, opts ...ToolOption) model.Tool {
	t := model.Tool{
		ID:          id,
		Name:        "Tool " + id,
		Description: "Test tool " + id,
		Category:    []string{"Productivity"},
		Price:       model.Price{Type: model.PriceFree},
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// WithName 设置名称
func WithName(name string) ToolOption {
	return func(t *model.Tool) { t.Name = name }
}

// WithCategories 设置分类
func WithCategories(categories ...string) ToolOption {
	return func(t *model.Tool) { t.Category = categories }
}

// WithIndustries 设置行业
func WithIndustries(industries ...string) ToolOption {
	return func(t *model.Tool) { t.Industries = industries }
}

// WithPrice 设置价格类型
func WithPrice(p model.PriceType) ToolOption {
	return func(t *model.Tool) { t.Price.Type = p }
}

// Popular 标记为热门
func Popular(t *model.Tool) { t.Popular = true }

// New 标记为新上线
func New(t *model.Tool) { t.IsNew = true }

// IDs 提取工具 ID，保持顺序
func IDs(tools []model.Tool) []string {
	ids := make([]string, len(tools))
	for i, t := range tools {
		ids[i] = t.ID
	}
	return ids
}

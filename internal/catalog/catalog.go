// Package catalog 提供只读的工具目录
// 目录在启动时构建一次，之后不再修改，可以被任意多个调用方并发读取
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ashwinyue/strato-tools/internal/model"
)

var (
	// ErrToolNotFound 工具不存在
	ErrToolNotFound = errors.New("tool not found")
	// ErrDuplicateID 工具 ID 重复
	ErrDuplicateID = errors.New("duplicate tool id")
	// ErrInvalidTool 工具数据不合法
	ErrInvalidTool = errors.New("invalid tool")
)

//go:embed seed.yaml
var seedYAML []byte

// Catalog 不可变的工具目录
type Catalog struct {
	tools       []model.Tool
	byID        map[string]int
	categories  []string
	industries  []string
	priceLabels []string
	sortLabels  []string
}

// Labels 目录的四组枚举
type Labels struct {
	Categories  []string `json:"categories" yaml:"categories"`
	Industries  []string `json:"industries" yaml:"industries"`
	PriceLabels []string `json:"price_labels" yaml:"priceLabels"`
	SortLabels  []string `json:"sort_labels" yaml:"sortLabels"`
}

// document YAML 文件结构
type document struct {
	Labels `yaml:",inline"`
	Tools  []model.Tool `yaml:"tools"`
}

// New 创建目录
// 校验 ID 唯一、至少一个分类、价格类型合法，并保存副本
func New(tools []model.Tool, labels Labels) (*Catalog, error) {
	c := &Catalog{
		tools:       make([]model.Tool, 0, len(tools)),
		byID:        make(map[string]int, len(tools)),
		categories:  copyStrings(labels.Categories),
		industries:  copyStrings(labels.Industries),
		priceLabels: copyStrings(labels.PriceLabels),
		sortLabels:  copyStrings(labels.SortLabels),
	}

	for i, t := range tools {
		if t.ID == "" {
			return nil, fmt.Errorf("%w: tool at index %d has empty id", ErrInvalidTool, i)
		}
		if _, ok := c.byID[t.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, t.ID)
		}
		if len(t.Category) == 0 {
			return nil, fmt.Errorf("%w: tool %s has no category", ErrInvalidTool, t.ID)
		}
		if !t.Price.Type.Valid() {
			return nil, fmt.Errorf("%w: tool %s: %w", ErrInvalidTool, t.ID, model.ErrUnknownPriceType)
		}
		c.byID[t.ID] = len(c.tools)
		c.tools = append(c.tools, t.Clone())
	}

	return c, nil
}

// Parse 从 YAML 解析目录
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return New(doc.Tools, doc.Labels)
}

// LoadFile 从文件加载目录
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// Seed 内置的种子目录
func Seed() (*Catalog, error) {
	return Parse(seedYAML)
}

// MustSeed 内置的种子目录，解析失败时 panic
func MustSeed() *Catalog {
	c, err := Seed()
	if err != nil {
		panic(err)
	}
	return c
}

// Load 加载目录，path 为空时使用内置种子
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Seed()
	}
	return LoadFile(path)
}

// AllTools 按插入顺序返回所有工具
func (c *Catalog) AllTools() []model.Tool {
	out := make([]model.Tool, len(c.tools))
	for i, t := range c.tools {
		out[i] = t.Clone()
	}
	return out
}

// Get 按 ID 获取工具
func (c *Catalog) Get(id string) (model.Tool, error) {
	i, ok := c.byID[id]
	if !ok {
		return model.Tool{}, fmt.Errorf("%w: %s", ErrToolNotFound, id)
	}
	return c.tools[i].Clone(), nil
}

// Len 工具数量
func (c *Catalog) Len() int {
	return len(c.tools)
}

// Categories 分类标签
func (c *Catalog) Categories() []string { return copyStrings(c.categories) }

// Industries 行业标签
func (c *Catalog) Industries() []string { return copyStrings(c.industries) }

// PriceLabels 价格筛选标签，包括 "All"
func (c *Catalog) PriceLabels() []string { return copyStrings(c.priceLabels) }

// SortLabels 排序选项
func (c *Catalog) SortLabels() []string { return copyStrings(c.sortLabels) }

// Labels 返回全部枚举
func (c *Catalog) Labels() Labels {
	return Labels{
		Categories:  c.Categories(),
		Industries:  c.Industries(),
		PriceLabels: c.PriceLabels(),
		SortLabels:  c.SortLabels(),
	}
}

func copyStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPriceType 未知的价格类型
var ErrUnknownPriceType = errors.New("unknown price type")

// PriceType 价格类型
type PriceType string

const (
	PriceFree     PriceType = "free"     // 免费
	PriceFreemium PriceType = "freemium" // 免费增值
	PricePaid     PriceType = "paid"     // 付费
	PriceContact  PriceType = "contact"  // 联系销售
)

// PriceTypes 所有价格类型，按价格排序
var PriceTypes = []PriceType{PriceFree, PriceFreemium, PricePaid, PriceContact}

// Rank 价格排序权重 free(0) < freemium(1) < paid(2) < contact(3)
func (p PriceType) Rank() int {
	switch p {
	case PriceFree:
		return 0
	case PriceFreemium:
		return 1
	case PricePaid:
		return 2
	case PriceContact:
		return 3
	default:
		return len(PriceTypes)
	}
}

// Valid 是否为已知价格类型
func (p PriceType) Valid() bool {
	return p.Rank() < len(PriceTypes)
}

// ParsePriceType 解析价格类型
func ParsePriceType(s string) (PriceType, error) {
	p := PriceType(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPriceType, s)
	}
	return p, nil
}

// Price 价格信息
// StartingAt 只用于展示，不参与比较
type Price struct {
	Type       PriceType `json:"type" yaml:"type"`
	StartingAt string    `json:"starting_at,omitempty" yaml:"startingAt,omitempty"`
}

// Tool 目录中的工具
type Tool struct {
	ID              string   `json:"id" yaml:"id"`
	Name            string   `json:"name" yaml:"name"`
	Description     string   `json:"description" yaml:"description"`
	LongDescription string   `json:"long_description" yaml:"longDescription"`
	Category        []string `json:"category" yaml:"category"`
	Price           Price    `json:"price" yaml:"price"`
	Popular         bool     `json:"popular" yaml:"popular"`
	IsNew           bool     `json:"is_new" yaml:"isNew"`
	Industries      []string `json:"industries" yaml:"industries"`
	Logo            string   `json:"logo" yaml:"logo"`
	Website         string   `json:"website" yaml:"website"`
	AffiliateLink   string   `json:"affiliate_link" yaml:"affiliateLink"`
	Integrations    []string `json:"integrations" yaml:"integrations"`
}

// HasCategory 是否属于指定分类（区分大小写）
func (t *Tool) HasCategory(category string) bool {
	return containsExact(t.Category, category)
}

// HasIndustry 是否属于指定行业（区分大小写）
func (t *Tool) HasIndustry(industry string) bool {
	return containsExact(t.Industries, industry)
}

// HasIntegrations 是否有集成
func (t *Tool) HasIntegrations() bool {
	return len(t.Integrations) > 0
}

// Clone 深拷贝
func (t Tool) Clone() Tool {
	t.Category = cloneStrings(t.Category)
	t.Industries = cloneStrings(t.Industries)
	t.Integrations = cloneStrings(t.Integrations)
	return t
}

func containsExact(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

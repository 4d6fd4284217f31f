package query

import (
	"strings"

	"github.com/ashwinyue/strato-tools/internal/model"
)

const (
	// MaxRecommendations 单次推荐数量上限
	MaxRecommendations = 3
	// minKeywordLen 关键词最短长度
	minKeywordLen = 3
)

// Recommend 根据自由文本推荐工具，最多返回 3 个
//
// 三路匹配：关键词命中工具文本、查询包含工具分类、查询包含工具行业。
// 合并后按 ID 去重（保留首次出现），热门优先稳定排序，截断。
func Recommend(src Source, text string) []model.Tool {
	lower := strings.ToLower(text)
	keywords := Keywords(text)
	tools := src.AllTools()

	var keywordMatches, categoryMatches, industryMatches []model.Tool
	for _, t := range tools {
		if matchesKeyword(&t, keywords) {
			keywordMatches = append(keywordMatches, t)
		}
		if containsAnyLabel(lower, t.Category) {
			categoryMatches = append(categoryMatches, t)
		}
		if containsAnyLabel(lower, t.Industries) {
			industryMatches = append(industryMatches, t)
		}
	}

	seen := make(map[string]struct{}, len(tools))
	unique := make([]model.Tool, 0, len(tools))
	for _, group := range [][]model.Tool{keywordMatches, categoryMatches, industryMatches} {
		for _, t := range group {
			if _, ok := seen[t.ID]; ok {
				continue
			}
			seen[t.ID] = struct{}{}
			unique = append(unique, t)
		}
	}

	sorted := SortTools(unique, SortMostPopular)
	if len(sorted) > MaxRecommendations {
		sorted = sorted[:MaxRecommendations]
	}
	return sorted
}

// Keywords 小写后按空白切分，丢弃短于 3 个字符的词
func Keywords(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) >= minKeywordLen {
			out = append(out, f)
		}
	}
	return out
}

// SearchText 工具的可匹配文本：名称、描述、分类、行业
func SearchText(t *model.Tool) string {
	return strings.ToLower(strings.Join([]string{
		t.Name,
		t.Description,
		strings.Join(t.Category, " "),
		strings.Join(t.Industries, " "),
	}, " "))
}

func matchesKeyword(t *model.Tool, keywords []string) bool {
	if len(keywords) == 0 {
		return false
	}
	text := SearchText(t)
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func containsAnyLabel(lowerQuery string, labels []string) bool {
	for _, l := range labels {
		if l == "" {
			continue
		}
		if strings.Contains(lowerQuery, strings.ToLower(l)) {
			return true
		}
	}
	return false
}

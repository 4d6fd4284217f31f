package query

import (
	"fmt"
	"strings"
)

// NoMatchResponse 没有推荐结果时的回复
const NoMatchResponse = "I couldn't find any specific tools matching your criteria. Could you provide more details about what you're looking for?"

// ResponseTemplate 意图触发词与回复模板
// Template 中的 %d 为推荐数量
type ResponseTemplate struct {
	Intent   string
	Triggers []string
	Template string
}

// responseTemplates 按优先级排列，第一个命中的生效
var responseTemplates = []ResponseTemplate{
	{
		Intent:   "productivity",
		Triggers: []string{"productivity"},
		Template: "Based on your interest in productivity tools, I've found %d great options for you. These tools can help streamline your workflow and enhance your efficiency.",
	},
	{
		Intent:   "design",
		Triggers: []string{"design"},
		Template: "For your design needs, I've selected %d powerful tools. These solutions offer a range of features for creating professional visuals and interfaces.",
	},
	{
		Intent:   "marketing",
		Triggers: []string{"marketing"},
		Template: "To help with your marketing efforts, I've identified %d effective tools. These solutions can boost your campaign performance and audience engagement.",
	},
	{
		Intent:   "ai",
		Triggers: []string{"ai", "artificial intelligence"},
		Template: "I've found %d cutting-edge AI tools that match your query. These solutions leverage artificial intelligence to automate tasks and provide valuable insights.",
	},
	{
		Intent:   "integration",
		Triggers: []string{"integration", "connect"},
		Template: "I've picked %d tools that play well with the rest of your stack. Each of them connects with popular apps and services.",
	},
	{
		Intent:   "analytics",
		Triggers: []string{"analytics", "data"},
		Template: "For analytics and data work, here are %d tools worth a look. They can help you measure performance and turn data into decisions.",
	},
	{
		Intent:   "budget",
		Triggers: []string{"free", "budget"},
		Template: "Keeping your budget in mind, I've found %d tools for you. Check the pricing on each card, several offer free or freemium plans.",
	},
	{
		Intent:   "popular",
		Triggers: []string{"popular", "trending"},
		Template: "Here are %d of the most popular tools people are using right now for this kind of work.",
	},
}

// FallbackTemplate 没有触发词命中时的通用回复
const FallbackTemplate = "Based on your request, I've selected %d tools that might help. Take a look at these recommendations and let me know if they meet your needs."

// ResponseTemplates 返回按优先级排列的模板副本
func ResponseTemplates() []ResponseTemplate {
	out := make([]ResponseTemplate, len(responseTemplates))
	for i, tpl := range responseTemplates {
		out[i] = tpl.clone()
	}
	return out
}

func (t ResponseTemplate) clone() ResponseTemplate {
	t.Triggers = append([]string(nil), t.Triggers...)
	return t
}

// DetectIntent 返回第一个命中的模板
func DetectIntent(text string) (ResponseTemplate, bool) {
	lower := strings.ToLower(text)
	for _, tpl := range responseTemplates {
		for _, trigger := range tpl.Triggers {
			if strings.Contains(lower, trigger) {
				return tpl.clone(), true
			}
		}
	}
	return ResponseTemplate{}, false
}

// TemplateResponse 根据查询文本和推荐数量生成回复
func TemplateResponse(text string, count int) string {
	if count == 0 {
		return NoMatchResponse
	}
	if tpl, ok := DetectIntent(text); ok {
		return fmt.Sprintf(tpl.Template, count)
	}
	return fmt.Sprintf(FallbackTemplate, count)
}

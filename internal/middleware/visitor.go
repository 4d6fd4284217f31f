package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// VisitorHeader 访客ID请求头
	VisitorHeader = "X-Visitor-ID"

	visitorKey = "visitor_id"
)

// VisitorMiddleware 访客标识中间件
// 只用于关联会话和提交，不做认证；未提供时生成临时ID
func VisitorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		visitorID := c.GetHeader(VisitorHeader)
		if visitorID == "" {
			visitorID = uuid.New().String()
		}

		c.Set(visitorKey, visitorID)
		c.Header(VisitorHeader, visitorID)
		c.Next()
	}
}

// GetVisitorID 从上下文获取访客ID
func GetVisitorID(c *gin.Context) (string, bool) {
	visitorID, exists := c.Get(visitorKey)
	if !exists {
		return "", false
	}
	id, ok := visitorID.(string)
	return id, ok
}

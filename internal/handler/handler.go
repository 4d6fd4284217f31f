package handler

import (
	"github.com/ashwinyue/strato-tools/internal/middleware"
	"github.com/ashwinyue/strato-tools/internal/service"
	"github.com/gin-gonic/gin"
)

// Handlers 处理器集合
type Handlers struct {
	Tool       *ToolHandler
	Chat       *ChatHandler
	Submission *SubmissionHandler
}

// NewHandlers 创建所有处理器
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Tool:       NewToolHandler(svc),
		Chat:       NewChatHandler(svc),
		Submission: NewSubmissionHandler(svc),
	}
}

// getVisitorID 获取访客ID
func getVisitorID(c *gin.Context) string {
	id, _ := middleware.GetVisitorID(c)
	return id
}

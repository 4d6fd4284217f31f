package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/strato-tools/internal/service"
)

// ChatHandler 聊天处理器
type ChatHandler struct {
	svc *service.Services
}

// NewChatHandler 创建聊天处理器
func NewChatHandler(svc *service.Services) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// MessageRequest 用户消息
type MessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// RecommendRequest 推荐请求
type RecommendRequest struct {
	Query string `json:"query" binding:"required"`
}

// Recommend 无状态推荐
func (h *ChatHandler) Recommend(c *gin.Context) {
	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	success(c, h.svc.Chat.Recommend(req.Query))
}

// CreateSession 创建会话
func (h *ChatHandler) CreateSession(c *gin.Context) {
	session, err := h.svc.Chat.CreateSession(c.Request.Context(), getVisitorID(c))
	if err != nil {
		errorResponse(c, err)
		return
	}

	created(c, session)
}

// DeleteSession 删除会话
func (h *ChatHandler) DeleteSession(c *gin.Context) {
	if err := h.svc.Chat.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		errorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SendMessage 发送消息
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	message, err := h.svc.Chat.SendMessage(c.Request.Context(), c.Param("id"), req.Content)
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, message)
}

// GetMessages 获取会话消息
func (h *ChatHandler) GetMessages(c *gin.Context) {
	messages, err := h.svc.Chat.Messages(c.Request.Context(), c.Param("id"))
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, gin.H{"messages": messages, "pending": h.svc.Chat.Pending(c.Param("id"))})
}

// StopReply 取消等待中的回复
func (h *ChatHandler) StopReply(c *gin.Context) {
	success(c, gin.H{"stopped": h.svc.Chat.StopReply(c.Param("id"))})
}

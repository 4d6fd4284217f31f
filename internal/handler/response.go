package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/strato-tools/internal/catalog"
	"github.com/ashwinyue/strato-tools/internal/model"
	"github.com/ashwinyue/strato-tools/internal/service/chat"
	"github.com/ashwinyue/strato-tools/internal/service/file"
	"github.com/ashwinyue/strato-tools/internal/service/session"
	"github.com/ashwinyue/strato-tools/internal/service/submission"
)

// Response 统一响应
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// success 成功响应
func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: "success", Data: data})
}

// created 创建成功响应
func created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Code: 0, Message: "created", Data: data})
}

// accepted 已接收响应
func accepted(c *gin.Context, data interface{}) {
	c.JSON(http.StatusAccepted, Response{Code: 0, Message: "accepted", Data: data})
}

// badRequest 400 错误响应
func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Code: -1, Message: msg})
}

// errorResponse 根据错误类型返回相应的错误响应
func errorResponse(c *gin.Context, err error) {
	c.JSON(statusFor(err), Response{Code: -1, Message: err.Error()})
}

// StatusClientClosedRequest 客户端在响应前断开（与 nginx 的 499 一致）
const StatusClientClosedRequest = 499

// statusFor 错误到 HTTP 状态码的映射
func statusFor(err error) int {
	switch {
	case errors.Is(err, chat.ErrReplyCanceled):
		return http.StatusConflict
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, catalog.ErrToolNotFound),
		errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, chat.ErrEmptyMessage),
		errors.Is(err, submission.ErrLogoRequired),
		errors.Is(err, model.ErrUnknownPriceType),
		errors.Is(err, file.ErrEmptyLogo),
		errors.Is(err, file.ErrUnsupportedLogoType):
		return http.StatusBadRequest
	case errors.Is(err, file.ErrLogoTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

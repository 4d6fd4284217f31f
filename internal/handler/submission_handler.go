package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/strato-tools/internal/metrics"
	"github.com/ashwinyue/strato-tools/internal/service"
	"github.com/ashwinyue/strato-tools/internal/service/submission"
)

// SubmissionHandler 工具提交处理器
type SubmissionHandler struct {
	svc *service.Services
}

// NewSubmissionHandler 创建工具提交处理器
func NewSubmissionHandler(svc *service.Services) *SubmissionHandler {
	return &SubmissionHandler{svc: svc}
}

// Submit 提交新工具，进入审核队列
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req submission.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.svc.Metrics.IncSubmission(metrics.OutcomeInvalid)
		badRequest(c, submission.ValidationMessage(err))
		return
	}

	sub, err := h.svc.Submission.Submit(c.Request.Context(), &req, getVisitorID(c))
	if err != nil {
		if statusFor(err) == http.StatusBadRequest {
			badRequest(c, submission.ValidationMessage(err))
			return
		}
		errorResponse(c, err)
		return
	}

	accepted(c, gin.H{
		"id":      sub.ID,
		"status":  sub.Status,
		"message": "We'll review your submission and get back to you soon.",
	})
}

// UploadLogo 上传 logo，返回可填入提交的 URL
func (h *SubmissionHandler) UploadLogo(c *gin.Context) {
	if h.svc.Logo == nil {
		c.JSON(http.StatusServiceUnavailable, Response{Code: -1, Message: "logo upload is not configured"})
		return
	}

	header, err := c.FormFile("logo")
	if err != nil {
		badRequest(c, "Please upload a logo for your tool")
		return
	}
	f, err := header.Open()
	if err != nil {
		errorResponse(c, err)
		return
	}
	defer f.Close()

	logo, err := h.svc.Logo.SaveLogo(c.Request.Context(), header.Header.Get("Content-Type"), header.Size, f)
	if err != nil {
		errorResponse(c, err)
		return
	}

	created(c, logo)
}

package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ashwinyue/strato-tools/internal/handler"
	"github.com/ashwinyue/strato-tools/internal/middleware"
	"github.com/ashwinyue/strato-tools/internal/service"
	"github.com/ashwinyue/strato-tools/internal/service/file"
)

// SetupRouter 设置路由
// gatherer 为 nil 时不暴露指标端点
func SetupRouter(h *handler.Handlers, svc *service.Services, gatherer prometheus.Gatherer) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(middleware.RecoveryMiddleware(svc.Logger))
	r.Use(middleware.VisitorMiddleware())
	r.Use(middleware.LoggingMiddleware(svc.Logger.Named("http")))
	r.Use(middleware.CORSMiddleware(svc.Config.Server.AllowedOrigins))
	r.Use(middleware.MetricsMiddleware(svc.Metrics))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "tools": svc.Catalog.Len()})
	})

	if gatherer != nil && svc.Config.Metrics.Enabled {
		r.GET(svc.Config.Metrics.Path, gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	// API v1
	v1 := r.Group("/api/v1")
	{
		// Tool 工具目录
		tools := v1.Group("/tools")
		{
			tools.GET("", h.Tool.ListTools)
			tools.GET("/:id", h.Tool.GetTool)
		}
		v1.GET("/catalog/options", h.Tool.GetOptions)

		// Recommendation 推荐
		v1.POST("/recommendations", h.Chat.Recommend)

		// Chat 聊天
		chats := v1.Group("/chats")
		{
			chats.POST("", h.Chat.CreateSession)
			chats.DELETE("/:id", h.Chat.DeleteSession)
			chats.GET("/:id/messages", h.Chat.GetMessages)
			chats.POST("/:id/messages", h.Chat.SendMessage)
			chats.POST("/:id/stop", h.Chat.StopReply)
		}

		// Submission 工具提交
		v1.POST("/submissions", h.Submission.Submit)
		v1.POST("/submissions/logo", h.Submission.UploadLogo)
	}

	// 本地存储的 logo 由本服务提供
	if svc.Logo != nil && svc.Logo.StorageType() == file.StorageTypeLocal {
		upload := svc.Config.Upload
		r.Static(upload.URLPrefix, upload.BasePath)
	}

	return r
}

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/strato-tools/internal/metrics"
)

// MetricsMiddleware 请求指标中间件
// 使用路由模板作为标签，未匹配的路由记为 "unmatched"
func MetricsMiddleware(rec metrics.Recorder) gin.HandlerFunc {
	rec = metrics.OrNop(rec)
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		rec.ObserveHTTP(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ashwinyue/strato-tools/internal/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestVisitorMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(VisitorMiddleware())
	r.GET("/who", func(c *gin.Context) {
		id, ok := GetVisitorID(c)
		require.True(t, ok)
		c.String(http.StatusOK, id)
	})

	t.Run("header is kept", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/who", map[string]string{VisitorHeader: "visitor-1"})
		assert.Equal(t, "visitor-1", w.Body.String())
		assert.Equal(t, "visitor-1", w.Header().Get(VisitorHeader))
	})

	t.Run("generated when missing", func(t *testing.T) {
		w := perform(r, http.MethodGet, "/who", nil)
		assert.Len(t, w.Body.String(), 36)
		assert.Equal(t, w.Body.String(), w.Header().Get(VisitorHeader))
	})
}

func TestGetVisitorID_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := GetVisitorID(c)
	assert.False(t, ok)
}

func TestRecoveryMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	r := gin.New()
	r.Use(RecoveryMiddleware(zap.New(core)))
	r.GET("/panic", func(*gin.Context) { panic("boom") })

	w := perform(r, http.MethodGet, "/panic", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"code":-1,"message":"internal server error"}`, w.Body.String())
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "panic recovered", logs.All()[0].Message)
}

func TestLoggingMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := gin.New()
	r.Use(VisitorMiddleware(), LoggingMiddleware(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	perform(r, http.MethodGet, "/ok?search=ai", map[string]string{VisitorHeader: "v"})
	perform(r, http.MethodGet, "/missing", nil)
	perform(r, http.MethodGet, "/fail", nil)

	entries := logs.All()
	require.Len(t, entries, 3)

	first := entries[0].ContextMap()
	assert.Equal(t, "/ok", first["path"])
	assert.Equal(t, "search=ai", first["query"])
	assert.Equal(t, int64(http.StatusOK), first["status"])
	assert.Equal(t, "v", first["visitor_id"])

	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
}

func TestCORSMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		allowed    []string
		method     string
		origin     string
		wantOrigin string
		wantStatus int
	}{
		{name: "wildcard", allowed: []string{"*"}, method: http.MethodGet, origin: "http://app.test", wantOrigin: "http://app.test", wantStatus: http.StatusOK},
		{name: "listed origin", allowed: []string{"http://app.test"}, method: http.MethodGet, origin: "http://app.test", wantOrigin: "http://app.test", wantStatus: http.StatusOK},
		{name: "unlisted origin", allowed: []string{"http://app.test"}, method: http.MethodGet, origin: "http://evil.test", wantStatus: http.StatusOK},
		{name: "no origin", allowed: []string{"*"}, method: http.MethodGet, wantStatus: http.StatusOK},
		{name: "preflight", allowed: []string{"*"}, method: http.MethodOptions, origin: "http://app.test", wantOrigin: "http://app.test", wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(CORSMiddleware(tt.allowed))
			r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

			headers := map[string]string{}
			if tt.origin != "" {
				headers["Origin"] = tt.origin
			}
			w := perform(r, tt.method, "/x", headers)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

type httpRecorder struct {
	metrics.Nop
	mu     sync.Mutex
	routes []string
	codes  []int
}

func (r *httpRecorder) ObserveHTTP(_, route string, status int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route)
	r.codes = append(r.codes, status)
}

func TestMetricsMiddleware(t *testing.T) {
	rec := &httpRecorder{}
	r := gin.New()
	r.Use(MetricsMiddleware(rec))
	r.GET("/tools/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	perform(r, http.MethodGet, "/tools/42", nil)
	perform(r, http.MethodGet, "/nowhere", nil)

	assert.Equal(t, []string{"/tools/:id", "unmatched"}, rec.routes)
	assert.Equal(t, []int{http.StatusOK, http.StatusNotFound}, rec.codes)
}

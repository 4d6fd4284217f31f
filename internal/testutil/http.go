// Package testutil 提供测试辅助工具
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// Envelope 统一响应格式，Data 延迟解码
type Envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Request 构造一个测试请求
// body 为 nil 时不带请求体，string 原样发送，其他类型编码为 JSON
func Request(t *testing.T, method, path string, body interface{}, headers ...string) *http.Request {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return req
}

// Do 执行请求并返回记录器
func Do(t *testing.T, h http.Handler, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, Request(t, method, path, body, headers...))
	return w
}

// DecodeEnvelope 解码统一响应，out 非 nil 时解码 data 字段
func DecodeEnvelope(t *testing.T, w *httptest.ResponseRecorder, out interface{}) Envelope {
	t.Helper()

	var env Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			t.Fatalf("failed to decode data %s: %v", env.Data, err)
		}
	}
	return env
}

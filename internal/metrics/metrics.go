// Package metrics 提供业务指标
package metrics

import "time"

// 结果标签
const (
	OutcomeSuccess  = "success"
	OutcomeInvalid  = "invalid"
	OutcomeCanceled = "canceled"
	OutcomeError    = "error"
)

// Recorder 指标记录接口
type Recorder interface {
	ObserveHTTP(method, route string, status int, duration time.Duration)
	ObserveFilterResults(count int)
	ObserveRecommendations(count int)
	IncChatTurn(outcome string)
	IncSubmission(outcome string)
}

// Nop 不记录任何指标
type Nop struct{}

func (Nop) ObserveHTTP(string, string, int, time.Duration) {}
func (Nop) ObserveFilterResults(int)                        {}
func (Nop) ObserveRecommendations(int)                      {}
func (Nop) IncChatTurn(string)                              {}
func (Nop) IncSubmission(string)                            {}

var _ Recorder = Nop{}

// OrNop recorder 为 nil 时返回 Nop
func OrNop(r Recorder) Recorder {
	if r == nil {
		return Nop{}
	}
	return r
}

// Package chat 提供对话式推荐服务
// 维护会话记录，在固定延迟后调用查询引擎生成推荐
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ashwinyue/strato-tools/internal/metrics"
	"github.com/ashwinyue/strato-tools/internal/model"
	"github.com/ashwinyue/strato-tools/internal/service/query"
	"github.com/ashwinyue/strato-tools/internal/service/session"
)

// DefaultGreeting 新会话的欢迎语
const DefaultGreeting = "Hi there! I'm your AI assistant from Strato Tools. I can help you find the perfect tools and software for your needs. Tell me what kind of tools you're looking for or what problem you're trying to solve."

var (
	// ErrEmptyMessage 消息内容为空
	ErrEmptyMessage = errors.New("message content is empty")
	// ErrReplyCanceled 回复被停止、被新消息取代或会话已删除
	ErrReplyCanceled = errors.New("reply canceled")
)

// Options 聊天服务配置
type Options struct {
	ResponseDelay time.Duration // 回复前的人为延迟，仅用于展示节奏
	Greeting      string
}

// Service 聊天服务
type Service struct {
	catalog  query.Source
	sessions *session.Manager
	opts     Options
	metrics  metrics.Recorder
	logger   *zap.Logger
}

// NewService 创建聊天服务
func NewService(catalog query.Source, sessions *session.Manager, opts Options, rec metrics.Recorder, logger *zap.Logger) *Service {
	if opts.Greeting == "" {
		opts.Greeting = DefaultGreeting
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		catalog:  catalog,
		sessions: sessions,
		opts:     opts,
		metrics:  metrics.OrNop(rec),
		logger:   logger,
	}
}

// Reply 助手回复
type Reply struct {
	Message         string       `json:"message"`
	Recommendations []model.Tool `json:"recommendations"`
}

// Recommend 无状态推荐，不写会话也不延迟
func (s *Service) Recommend(text string) Reply {
	recs := query.Recommend(s.catalog, text)
	s.metrics.ObserveRecommendations(len(recs))
	return Reply{
		Message:         query.TemplateResponse(text, len(recs)),
		Recommendations: recs,
	}
}

// CreateSession 创建会话，写入欢迎语
func (s *Service) CreateSession(ctx context.Context, visitorID string) (*session.Session, error) {
	greeting := newMessage(model.RoleAssistant, s.opts.Greeting, nil)
	sess, err := s.sessions.Create(ctx, visitorID, greeting)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return sess, nil
}

// SendMessage 发送用户消息并返回助手回复
// 等待期间回复被停止、被新消息取代或会话被删除时返回 ErrReplyCanceled；
// 调用方 ctx 结束时返回 ctx 的错误
func (s *Service) SendMessage(ctx context.Context, sessionID, content string) (*model.ChatMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		s.metrics.IncChatTurn(metrics.OutcomeInvalid)
		return nil, ErrEmptyMessage
	}

	if err := s.sessions.Append(ctx, sessionID, newMessage(model.RoleUser, content, nil)); err != nil {
		return nil, fmt.Errorf("failed to append message: %w", err)
	}

	turnCtx, done := s.sessions.BeginTurn(ctx, sessionID)
	defer done()

	if err := wait(turnCtx, s.opts.ResponseDelay); err != nil {
		s.metrics.IncChatTurn(metrics.OutcomeCanceled)
		s.logger.Debug("chat turn canceled", zap.String("session_id", sessionID), zap.Error(err))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", ErrReplyCanceled, err)
	}

	reply := s.Recommend(content)
	answer := newMessage(model.RoleAssistant, reply.Message, reply.Recommendations)
	if err := s.sessions.Append(ctx, sessionID, answer); err != nil {
		s.metrics.IncChatTurn(metrics.OutcomeError)
		return nil, fmt.Errorf("failed to append reply: %w", err)
	}

	s.metrics.IncChatTurn(metrics.OutcomeSuccess)
	s.logger.Debug("chat turn completed",
		zap.String("session_id", sessionID),
		zap.Int("recommendations", len(reply.Recommendations)),
	)
	return &answer, nil
}

// Messages 获取会话消息
func (s *Service) Messages(ctx context.Context, sessionID string) ([]model.ChatMessage, error) {
	return s.sessions.History(ctx, sessionID)
}

// StopReply 取消等待中的回复
func (s *Service) StopReply(sessionID string) bool {
	return s.sessions.StopTurn(sessionID)
}

// Pending 会话是否有等待中的回复
func (s *Service) Pending(sessionID string) bool {
	return s.sessions.Pending(sessionID)
}

// DeleteSession 删除会话
func (s *Service) DeleteSession(ctx context.Context, sessionID string) error {
	if !s.sessions.Exists(ctx, sessionID) {
		return session.ErrSessionNotFound
	}
	if err := s.sessions.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func newMessage(role, content string, recs []model.Tool) model.ChatMessage {
	return model.ChatMessage{
		ID:              uuid.New().String(),
		Role:            role,
		Content:         content,
		Timestamp:       time.Now(),
		Recommendations: recs,
	}
}

// wait 等待 d，ctx 取消时提前返回
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Package session 管理聊天会话记录
// 内存为主，配置了 Redis 时同步一份 JSON 副本
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ashwinyue/strato-tools/internal/model"
)

const (
	// 会话在 Redis 中的默认过期时间（24小时）
	defaultSessionTTL = 24 * time.Hour
	// Redis key 前缀
	sessionKeyPrefix = "strato:chat:session:"
)

// ErrSessionNotFound 会话不存在
var ErrSessionNotFound = errors.New("session not found")

// Config 会话配置
type Config struct {
	TTL        time.Duration // Redis 过期时间
	MaxHistory int           // 最多保留的消息数，<=0 不限制
}

// DefaultConfig 默认配置
func DefaultConfig() Config {
	return Config{
		TTL:        defaultSessionTTL,
		MaxHistory: 100,
	}
}

// Session 会话记录
type Session struct {
	ID        string              `json:"id"`
	VisitorID string              `json:"visitor_id,omitempty"`
	Messages  []model.ChatMessage `json:"messages"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// Info 会话基本信息
func (s *Session) Info() model.ChatSession {
	return model.ChatSession{
		ID:        s.ID,
		VisitorID: s.VisitorID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (s *Session) clone() *Session {
	c := *s
	c.Messages = make([]model.ChatMessage, len(s.Messages))
	copy(c.Messages, s.Messages)
	return &c
}

// pendingTurn 等待中的助手回复
type pendingTurn struct {
	token  string
	cancel context.CancelFunc
}

// Manager 会话管理器
type Manager struct {
	mu      sync.RWMutex
	memory  map[string]*Session
	pending map[string]pendingTurn
	redis   *redis.Client
	config  Config
	logger  *zap.Logger
}

// NewManager 创建会话管理器，redisClient 可以为 nil
func NewManager(redisClient *redis.Client, cfg Config, logger *zap.Logger) *Manager {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultSessionTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		memory:  make(map[string]*Session),
		pending: make(map[string]pendingTurn),
		redis:   redisClient,
		config:  cfg,
		logger:  logger,
	}
}

// Create 创建会话
func (m *Manager) Create(ctx context.Context, visitorID string, initial ...model.ChatMessage) (*Session, error) {
	now := time.Now()
	sess := &Session{
		ID:        uuid.New().String(),
		VisitorID: visitorID,
		Messages:  append([]model.ChatMessage{}, initial...),
		CreatedAt: now,
		UpdatedAt: now,
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.memory[sess.ID] = sess
	m.save(ctx, sess)
	return sess.clone(), nil
}

// Get 获取会话快照
func (m *Manager) Get(ctx context.Context, sessionID string) (*Session, error) {
	m.mu.RLock()
	sess, ok := m.memory[sessionID]
	if ok {
		snapshot := sess.clone()
		m.mu.RUnlock()
		return snapshot, nil
	}
	m.mu.RUnlock()

	// 从 Redis 加载
	if m.redis != nil {
		if loaded := m.loadFromRedis(ctx, sessionID); loaded != nil {
			m.mu.Lock()
			if existing, ok := m.memory[sessionID]; ok {
				loaded = existing
			} else {
				m.memory[sessionID] = loaded
			}
			snapshot := loaded.clone()
			m.mu.Unlock()
			return snapshot, nil
		}
	}

	return nil, ErrSessionNotFound
}

// Exists 会话是否存在
func (m *Manager) Exists(ctx context.Context, sessionID string) bool {
	_, err := m.Get(ctx, sessionID)
	return err == nil
}

// Append 追加消息
func (m *Manager) Append(ctx context.Context, sessionID string, msgs ...model.ChatMessage) error {
	// 确保会话已加载到内存
	if _, err := m.Get(ctx, sessionID); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.memory[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	sess.Messages = append(sess.Messages, msgs...)
	if limit := m.config.MaxHistory; limit > 0 && len(sess.Messages) > limit {
		sess.Messages = append([]model.ChatMessage(nil), sess.Messages[len(sess.Messages)-limit:]...)
	}
	sess.UpdatedAt = time.Now()

	// 在锁内同步到 Redis，保证写入顺序与内存一致
	m.save(ctx, sess)
	return nil
}

// History 获取历史消息
func (m *Manager) History(ctx context.Context, sessionID string) ([]model.ChatMessage, error) {
	sess, err := m.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Messages, nil
}

// Clear 删除会话，同时取消等待中的回复
func (m *Manager) Clear(ctx context.Context, sessionID string) error {
	m.StopTurn(sessionID)

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.memory, sessionID)

	// 从 Redis 删除
	if m.redis != nil {
		if err := m.redis.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
			m.logger.Warn("failed to delete session from redis", zap.String("session_id", sessionID), zap.Error(err))
		}
	}

	return nil
}

// ========== 回复控制 ==========

// BeginTurn 登记一次等待中的回复
// 同一会话上一条未完成的回复会被取消；返回的 done 必须调用
func (m *Manager) BeginTurn(ctx context.Context, sessionID string) (context.Context, func()) {
	turnCtx, cancel := context.WithCancel(ctx)
	token := uuid.New().String()

	m.mu.Lock()
	if prev, ok := m.pending[sessionID]; ok {
		prev.cancel()
	}
	m.pending[sessionID] = pendingTurn{token: token, cancel: cancel}
	m.mu.Unlock()

	done := func() {
		m.mu.Lock()
		if cur, ok := m.pending[sessionID]; ok && cur.token == token {
			delete(m.pending, sessionID)
		}
		m.mu.Unlock()
		cancel()
	}
	return turnCtx, done
}

// StopTurn 取消等待中的回复
func (m *Manager) StopTurn(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	turn, ok := m.pending[sessionID]
	if !ok {
		return false
	}
	turn.cancel()
	delete(m.pending, sessionID)
	return true
}

// Pending 是否有等待中的回复
func (m *Manager) Pending(sessionID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.pending[sessionID]
	return ok
}

// ========== Redis ==========

// save 调用方需持有 m.mu
func (m *Manager) save(ctx context.Context, sess *Session) {
	if m.redis == nil {
		return
	}
	// 记录错误但不影响主流程
	if err := m.saveToRedis(ctx, sess); err != nil {
		m.logger.Warn("failed to save session to redis", zap.String("session_id", sess.ID), zap.Error(err))
	}
}

// loadFromRedis 从 Redis 加载会话
func (m *Manager) loadFromRedis(ctx context.Context, sessionID string) *Session {
	data, err := m.redis.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			m.logger.Warn("failed to load session from redis", zap.String("session_id", sessionID), zap.Error(err))
		}
		return nil
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		m.logger.Warn("corrupt session in redis", zap.String("session_id", sessionID), zap.Error(err))
		return nil
	}
	return &sess
}

// saveToRedis 保存会话到 Redis
func (m *Manager) saveToRedis(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return m.redis.Set(ctx, sessionKeyPrefix+sess.ID, data, m.config.TTL).Err()
}

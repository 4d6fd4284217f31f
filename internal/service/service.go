package service

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ashwinyue/strato-tools/internal/catalog"
	"github.com/ashwinyue/strato-tools/internal/config"
	"github.com/ashwinyue/strato-tools/internal/metrics"
	"github.com/ashwinyue/strato-tools/internal/repository"
	"github.com/ashwinyue/strato-tools/internal/service/chat"
	"github.com/ashwinyue/strato-tools/internal/service/file"
	"github.com/ashwinyue/strato-tools/internal/service/session"
	"github.com/ashwinyue/strato-tools/internal/service/submission"
)

// Services 服务集合
type Services struct {
	// 业务服务
	Catalog    *catalog.Catalog
	Chat       *chat.Service
	Submission *submission.Service
	Logo       *file.Service // 未配置时为 nil，logo 只能以 URL 提交

	// 配置
	Config     *config.Config
	SessionMgr *session.Manager
	Metrics    metrics.Recorder
	Logger     *zap.Logger
}

// NewServices 创建所有服务
// redisClient 为 nil 时会话只保存在内存
func NewServices(repo *repository.Repositories, cfg *config.Config, cat *catalog.Catalog, redisClient *redis.Client, logos *file.Service, rec metrics.Recorder, logger *zap.Logger) *Services {
	if logger == nil {
		logger = zap.NewNop()
	}
	rec = metrics.OrNop(rec)

	sessionMgr := session.NewManager(redisClient, session.Config{
		TTL:        cfg.Redis.TTL(),
		MaxHistory: cfg.Chat.MaxHistory,
	}, logger.Named("session"))

	return &Services{
		Catalog: cat,
		Chat: chat.NewService(cat, sessionMgr, chat.Options{
			ResponseDelay: cfg.Chat.ResponseDelay(),
			Greeting:      cfg.Chat.Greeting,
		}, rec, logger.Named("chat")),
		Submission: submission.NewService(repo.Submission, rec, logger.Named("submission")),
		Logo:       logos,

		Config:     cfg,
		SessionMgr: sessionMgr,
		Metrics:    rec,
		Logger:     logger,
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ashwinyue/strato-tools/internal/database"
	"github.com/ashwinyue/strato-tools/internal/handler"
	"github.com/ashwinyue/strato-tools/internal/metrics"
	"github.com/ashwinyue/strato-tools/internal/repository"
	"github.com/ashwinyue/strato-tools/internal/router"
	"github.com/ashwinyue/strato-tools/internal/service"
	"github.com/ashwinyue/strato-tools/internal/service/file"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signalAwareContext(cmd.Context())
			defer cancel()
			return serve(ctx, opts)
		},
	}
}

func serve(ctx context.Context, opts *rootOptions) error {
	cfg, logger := opts.cfg, opts.logger

	// 设置 Gin 模式
	gin.SetMode(cfg.Server.Mode)

	cat, err := opts.loadCatalog()
	if err != nil {
		return err
	}
	logger.Info("catalog loaded", zap.Int("tools", cat.Len()), zap.String("path", cfg.Catalog.Path))

	// 初始化数据库，未启用时提交被丢弃
	repos := repository.NewRepositories(nil)
	if cfg.Database.Enabled {
		db, err := database.New(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer db.Close()
		repos = repository.NewRepositories(db.DB)
		logger.Info("database connected", zap.String("dbname", cfg.Database.DBName))
	}

	// 初始化 Redis
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to ping redis: %w", err)
		}
		logger.Info("redis connected", zap.String("addr", cfg.Redis.GetAddr()))
	}

	// logo 存储
	logos, err := file.NewServiceFromConfig(ctx, cfg.Upload, logger.Named("upload"))
	if err != nil {
		return err
	}

	// 指标
	var gatherer prometheus.Gatherer
	var rec metrics.Recorder = metrics.Nop{}
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		rec = metrics.NewPrometheus(reg)
		gatherer = reg
	}

	// 初始化各层
	services := service.NewServices(repos, cfg, cat, redisClient, logos, rec, logger)
	handlers := handler.NewHandlers(services)
	r := router.SetupRouter(handlers, services, gatherer)

	// 创建 HTTP 服务器
	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")

	// 优雅关闭
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server exited")
	return nil
}

func signalAwareContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

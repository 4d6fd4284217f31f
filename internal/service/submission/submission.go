// Package submission 处理用户提交的新工具
// 提交只进入审核队列，不会修改目录
package submission

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ashwinyue/strato-tools/internal/metrics"
	"github.com/ashwinyue/strato-tools/internal/model"
	"github.com/ashwinyue/strato-tools/internal/repository"
)

// ErrLogoRequired 未上传 logo
var ErrLogoRequired = errors.New("please upload a logo for your tool")

// PriceRequest 价格信息
type PriceRequest struct {
	Type       string `json:"type" form:"price_type" binding:"required,oneof=free freemium paid contact"`
	StartingAt string `json:"starting_at" form:"starting_at"`
}

// SubmitRequest 工具提交请求
type SubmitRequest struct {
	Name            string       `json:"name" form:"name" binding:"required,min=2"`
	Description     string       `json:"description" form:"description" binding:"required,min=10"`
	LongDescription string       `json:"long_description" form:"long_description" binding:"required,min=50"`
	Category        []string     `json:"category" form:"category" binding:"required,min=1"`
	Industries      []string     `json:"industries" form:"industries" binding:"required,min=1"`
	Website         string       `json:"website" form:"website" binding:"required,url"`
	Price           PriceRequest `json:"price"`
	Integrations    []string     `json:"integrations" form:"integrations"`
	Logo            string       `json:"logo" form:"logo"`
	TermsAccepted   bool         `json:"terms_accepted" form:"terms_accepted" binding:"required"`
}

// Service 提交服务
type Service struct {
	repo    repository.SubmissionRepository
	metrics metrics.Recorder
	logger  *zap.Logger
}

// NewService 创建提交服务
func NewService(repo repository.SubmissionRepository, rec metrics.Recorder, logger *zap.Logger) *Service {
	if repo == nil {
		repo = repository.Discard{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, metrics: metrics.OrNop(rec), logger: logger}
}

// Submit 接收已通过字段校验的提交
func (s *Service) Submit(ctx context.Context, req *SubmitRequest, visitorID string) (*model.ToolSubmission, error) {
	if strings.TrimSpace(req.Logo) == "" {
		s.metrics.IncSubmission(metrics.OutcomeInvalid)
		return nil, ErrLogoRequired
	}
	priceType, err := model.ParsePriceType(req.Price.Type)
	if err != nil {
		s.metrics.IncSubmission(metrics.OutcomeInvalid)
		return nil, err
	}

	sub := &model.ToolSubmission{
		Name:            strings.TrimSpace(req.Name),
		Description:     strings.TrimSpace(req.Description),
		LongDescription: strings.TrimSpace(req.LongDescription),
		Category:        model.StringList(req.Category),
		Industries:      model.StringList(req.Industries),
		Website:         req.Website,
		PriceType:       priceType,
		StartingAt:      req.Price.StartingAt,
		Integrations:    model.StringList(req.Integrations),
		Logo:            req.Logo,
		VisitorID:       visitorID,
		Status:          model.SubmissionPending,
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		s.metrics.IncSubmission(metrics.OutcomeError)
		return nil, fmt.Errorf("failed to save submission: %w", err)
	}

	s.metrics.IncSubmission(metrics.OutcomeSuccess)
	s.logger.Info("tool submitted",
		zap.String("submission_id", sub.ID),
		zap.String("name", sub.Name),
		zap.String("visitor_id", visitorID),
	)
	return sub, nil
}

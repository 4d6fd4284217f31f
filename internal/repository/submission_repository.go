package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ashwinyue/strato-tools/internal/model"
)

// ErrSubmissionNotFound 提交记录不存在
var ErrSubmissionNotFound = errors.New("submission not found")

// submissionRepositoryImpl 基于 GORM 的审核队列
type submissionRepositoryImpl struct {
	db *gorm.DB
}

// NewSubmissionRepository 创建提交仓库
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepositoryImpl{db: db}
}

// Create 写入待审核提交
func (r *submissionRepositoryImpl) Create(ctx context.Context, sub *model.ToolSubmission) error {
	if sub.Status == "" {
		sub.Status = model.SubmissionPending
	}
	return r.db.WithContext(ctx).Create(sub).Error
}

// GetByID 获取提交
func (r *submissionRepositoryImpl) GetByID(ctx context.Context, id string) (*model.ToolSubmission, error) {
	var sub model.ToolSubmission
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSubmissionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListByStatus 按状态列出提交，status 为空时列出全部
func (r *submissionRepositoryImpl) ListByStatus(ctx context.Context, status string, offset, limit int) ([]*model.ToolSubmission, error) {
	var subs []*model.ToolSubmission
	query := r.db.WithContext(ctx).Order("created_at DESC").Offset(offset).Limit(limit)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&subs).Error
	return subs, err
}

// UpdateStatus 更新审核状态
func (r *submissionRepositoryImpl) UpdateStatus(ctx context.Context, id, status string) error {
	result := r.db.WithContext(ctx).Model(&model.ToolSubmission{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubmissionNotFound
	}
	return nil
}

// Discard 丢弃所有提交，未启用数据库时使用
type Discard struct{}

// Create 只补全 ID 和状态，不做持久化
func (Discard) Create(_ context.Context, sub *model.ToolSubmission) error {
	if err := sub.BeforeCreate(nil); err != nil {
		return err
	}
	if sub.Status == "" {
		sub.Status = model.SubmissionPending
	}
	return nil
}

func (Discard) GetByID(context.Context, string) (*model.ToolSubmission, error) {
	return nil, ErrSubmissionNotFound
}

func (Discard) ListByStatus(context.Context, string, int, int) ([]*model.ToolSubmission, error) {
	return nil, nil
}

func (Discard) UpdateStatus(context.Context, string, string) error {
	return ErrSubmissionNotFound
}

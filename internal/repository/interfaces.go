// Package repository 定义数据访问接口
// 接口抽象使依赖注入和单元测试成为可能
package repository

import (
	"context"

	"github.com/ashwinyue/strato-tools/internal/model"
)

// ========== SubmissionRepository 接口 ==========

// SubmissionRepository 工具提交数据访问接口
type SubmissionRepository interface {
	Create(ctx context.Context, sub *model.ToolSubmission) error
	GetByID(ctx context.Context, id string) (*model.ToolSubmission, error)
	ListByStatus(ctx context.Context, status string, offset, limit int) ([]*model.ToolSubmission, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// 确保实现了接口
var (
	_ SubmissionRepository = (*submissionRepositoryImpl)(nil)
	_ SubmissionRepository = Discard{}
)

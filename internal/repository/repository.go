package repository

import "gorm.io/gorm"

// Repositories 仓库集合，用于统一管理所有仓库
type Repositories struct {
	DB         *gorm.DB // 直接访问数据库，未启用时为 nil
	Submission SubmissionRepository
}

// NewRepositories 创建所有仓库，db 为 nil 时提交被丢弃
func NewRepositories(db *gorm.DB) *Repositories {
	if db == nil {
		return &Repositories{Submission: Discard{}}
	}
	return &Repositories{
		DB:         db,
		Submission: NewSubmissionRepository(db),
	}
}

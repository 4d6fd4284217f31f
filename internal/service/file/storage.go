// Package file 保存用户上传的工具 logo
package file

import (
	"context"
	"io"
)

// Storage 文件存储接口
type Storage interface {
	// Save 保存文件，返回相对路径
	Save(ctx context.Context, req *SaveRequest) (string, error)
	// Delete 删除文件
	Delete(ctx context.Context, filePath string) error
	// GetURL 获取文件的访问URL
	GetURL(filePath string) string
}

// SaveRequest 保存文件请求
type SaveRequest struct {
	Ext         string // 带点的扩展名
	ContentType string
	Size        int64
	Reader      io.Reader
	Prefix      string // 目录或对象名前缀
}

// StorageType 存储类型
type StorageType string

const (
	StorageTypeLocal StorageType = "local"
	StorageTypeMinIO StorageType = "minio"
)

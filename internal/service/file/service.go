package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ashwinyue/strato-tools/internal/config"
)

// DefaultMaxLogoSize 默认 logo 大小上限
const DefaultMaxLogoSize = 2 << 20

// sniffLen 内容类型检测读取的字节数
const sniffLen = 512

var (
	// ErrEmptyLogo 上传内容为空
	ErrEmptyLogo = errors.New("logo file is empty")
	// ErrLogoTooLarge 超过大小上限
	ErrLogoTooLarge = errors.New("logo file is too large")
	// ErrUnsupportedLogoType 只接受 PNG、JPEG、SVG
	ErrUnsupportedLogoType = errors.New("logo must be a PNG, JPEG or SVG image")
)

// logoTypes 允许的内容类型及扩展名
var logoTypes = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/svg+xml": ".svg",
}

// Logo 已保存的 logo
type Logo struct {
	Path        string `json:"path"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// Service logo 上传服务
type Service struct {
	storage     Storage
	storageType StorageType
	maxSize     int64
	logger      *zap.Logger
}

// NewService 创建 logo 服务，maxSize<=0 时使用默认上限
func NewService(storage Storage, storageType StorageType, maxSize int64, logger *zap.Logger) *Service {
	if maxSize <= 0 {
		maxSize = DefaultMaxLogoSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		storage:     storage,
		storageType: storageType,
		maxSize:     maxSize,
		logger:      logger,
	}
}

// NewServiceFromConfig 从配置创建 logo 服务
func NewServiceFromConfig(ctx context.Context, cfg config.UploadConfig, logger *zap.Logger) (*Service, error) {
	var (
		storage Storage
		err     error
	)

	storageType := StorageType(cfg.Driver)
	switch storageType {
	case StorageTypeLocal, "":
		storageType = StorageTypeLocal
		storage, err = NewLocalStorage(cfg.BasePath, cfg.URLPrefix)

	case StorageTypeMinIO:
		m := cfg.MinIO
		if m.Endpoint == "" || m.AccessKey == "" || m.SecretKey == "" || m.Bucket == "" {
			return nil, fmt.Errorf("missing required MinIO config")
		}
		storage, err = NewMinIOStorage(ctx, &MinIOConfig{
			Endpoint:   m.Endpoint,
			AccessKey:  m.AccessKey,
			SecretKey:  m.SecretKey,
			BucketName: m.Bucket,
			UseSSL:     m.UseSSL,
			URLPrefix:  m.URLPrefix,
		})

	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Driver)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create storage: %w", err)
	}

	return NewService(storage, storageType, int64(cfg.MaxSizeKB)<<10, logger), nil
}

// SaveLogo 校验并保存 logo
// 内容类型由文件头判断，声明的类型只用于识别 SVG
func (s *Service) SaveLogo(ctx context.Context, declaredType string, size int64, r io.Reader) (*Logo, error) {
	if size == 0 {
		return nil, ErrEmptyLogo
	}
	if size > s.maxSize {
		return nil, ErrLogoTooLarge
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read logo: %w", err)
	}
	head = head[:n]
	if n == 0 {
		return nil, ErrEmptyLogo
	}

	contentType, ok := detectLogoType(declaredType, head)
	if !ok {
		return nil, ErrUnsupportedLogoType
	}

	start := time.Now()
	filePath, err := s.storage.Save(ctx, &SaveRequest{
		Ext:         logoTypes[contentType],
		ContentType: contentType,
		Size:        size,
		Reader:      io.LimitReader(io.MultiReader(bytes.NewReader(head), r), s.maxSize),
		Prefix:      "logos/" + time.Now().UTC().Format("2006/01"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save logo: %w", err)
	}

	s.logger.Info("logo stored",
		zap.String("path", filePath),
		zap.String("storage", string(s.storageType)),
		zap.String("content_type", contentType),
		zap.Int64("size", size),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &Logo{
		Path:        filePath,
		URL:         s.storage.GetURL(filePath),
		ContentType: contentType,
		Size:        size,
	}, nil
}

// DeleteLogo 删除 logo
func (s *Service) DeleteLogo(ctx context.Context, filePath string) error {
	return s.storage.Delete(ctx, filePath)
}

// StorageType 当前存储类型
func (s *Service) StorageType() StorageType {
	return s.storageType
}

func detectLogoType(declaredType string, head []byte) (string, bool) {
	sniffed := http.DetectContentType(head)
	if _, ok := logoTypes[sniffed]; ok && sniffed != "image/svg+xml" {
		return sniffed, true
	}
	// SVG 是文本，无法靠文件头识别
	if declaredType == "image/svg+xml" && bytes.Contains(bytes.ToLower(head), []byte("<svg")) {
		return "image/svg+xml", true
	}
	return "", false
}

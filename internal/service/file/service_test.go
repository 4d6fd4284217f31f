package file

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashwinyue/strato-tools/internal/config"
)

var (
	pngData = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 32)...)
	jpgData = append([]byte("\xff\xd8\xff\xe0"), bytes.Repeat([]byte{0}, 32)...)
	svgData = []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"></svg>`)
)

func newLocalService(t *testing.T, maxSize int64) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, "/uploads/")
	require.NoError(t, err)
	return NewService(storage, StorageTypeLocal, maxSize, nil), dir
}

func TestService_SaveLogo(t *testing.T) {
	tests := []struct {
		name     string
		declared string
		data     []byte
		wantType string
		wantExt  string
	}{
		{name: "png", declared: "image/png", data: pngData, wantType: "image/png", wantExt: ".png"},
		{name: "jpeg with wrong declared type", declared: "application/octet-stream", data: jpgData, wantType: "image/jpeg", wantExt: ".jpg"},
		{name: "svg", declared: "image/svg+xml", data: svgData, wantType: "image/svg+xml", wantExt: ".svg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, dir := newLocalService(t, 0)

			logo, err := svc.SaveLogo(context.Background(), tt.declared, int64(len(tt.data)), bytes.NewReader(tt.data))
			require.NoError(t, err)

			assert.Equal(t, tt.wantType, logo.ContentType)
			assert.True(t, strings.HasPrefix(logo.Path, "logos/"), logo.Path)
			assert.Equal(t, tt.wantExt, filepath.Ext(logo.Path))
			assert.Equal(t, "/uploads/"+logo.Path, logo.URL)

			stored, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(logo.Path)))
			require.NoError(t, err)
			assert.Equal(t, tt.data, stored)
		})
	}
}

func TestService_SaveLogo_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		declared string
		data     []byte
		size     int64
		wantErr  error
	}{
		{name: "empty", declared: "image/png", data: nil, size: 0, wantErr: ErrEmptyLogo},
		{name: "too large", declared: "image/png", data: pngData, size: 1 << 30, wantErr: ErrLogoTooLarge},
		{name: "plain text", declared: "image/png", data: []byte("hello world"), wantErr: ErrUnsupportedLogoType},
		{name: "svg not declared", declared: "text/plain", data: svgData, wantErr: ErrUnsupportedLogoType},
		{name: "gif", declared: "image/gif", data: []byte("GIF89a......"), wantErr: ErrUnsupportedLogoType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, dir := newLocalService(t, 0)

			size := tt.size
			if size == 0 && tt.data != nil {
				size = int64(len(tt.data))
			}
			_, err := svc.SaveLogo(context.Background(), tt.declared, size, bytes.NewReader(tt.data))
			assert.ErrorIs(t, err, tt.wantErr)

			entries, _ := os.ReadDir(dir)
			assert.Empty(t, entries, "rejected logos must not be written")
		})
	}
}

func TestService_DeleteLogo(t *testing.T) {
	svc, dir := newLocalService(t, 0)
	ctx := context.Background()

	logo, err := svc.SaveLogo(ctx, "image/png", int64(len(pngData)), bytes.NewReader(pngData))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteLogo(ctx, logo.Path))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(logo.Path)))
	assert.True(t, os.IsNotExist(err))

	// 重复删除不报错
	assert.NoError(t, svc.DeleteLogo(ctx, logo.Path))
}

func TestNewServiceFromConfig(t *testing.T) {
	ctx := context.Background()

	svc, err := NewServiceFromConfig(ctx, config.UploadConfig{BasePath: t.TempDir(), URLPrefix: "/uploads", MaxSizeKB: 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, StorageTypeLocal, svc.StorageType())
	assert.Equal(t, int64(1024), svc.maxSize)

	_, err = NewServiceFromConfig(ctx, config.UploadConfig{Driver: "minio"}, nil)
	assert.ErrorContains(t, err, "missing required MinIO config")

	_, err = NewServiceFromConfig(ctx, config.UploadConfig{Driver: "ftp"}, nil)
	assert.ErrorContains(t, err, "unsupported storage type")
}

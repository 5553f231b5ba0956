package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/papergraph/papergraph/pkg/logger"

	"go.uber.org/zap"
)

// LocalStorage 本地磁盘存储实现
type LocalStorage struct {
	basePath string // 基础存储路径，如 ./data/files
	baseURL  string // 基础访问URL，如 http://localhost:8080/static
}

// NewLocalStorage 创建本地存储实例
func NewLocalStorage(basePath, baseURL string) *LocalStorage {
	// 确保基础目录存在
	if err := os.MkdirAll(basePath, 0755); err != nil {
		logger.Error("创建存储目录失败", zap.String("path", basePath), zap.Error(err))
	}

	return &LocalStorage{
		basePath: basePath,
		baseURL:  baseURL,
	}
}

// Save 落盘保存，文件名加时间戳前缀避免覆盖
func (s *LocalStorage) Save(ctx context.Context, file io.Reader, filename, folder string) (string, error) {
	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filepath.Base(filename), ext)
	stored := fmt.Sprintf("%d_%s%s", time.Now().Unix(), stem, ext)

	dir := filepath.Join(s.basePath, folder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("创建文件夹失败: %w", err)
	}

	path := filepath.Join(dir, stored)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("创建文件失败: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		// 写入失败时不留半截文件
		os.Remove(path)
		return "", fmt.Errorf("写入文件失败: %w", err)
	}

	return s.FileURL(filepath.Join(folder, stored)), nil
}

// Remove 按访问 URL 删除本地文件
func (s *LocalStorage) Remove(ctx context.Context, url string) error {
	rel := strings.TrimPrefix(url, s.baseURL)
	rel = strings.TrimPrefix(rel, "/")

	path := filepath.Join(s.basePath, rel)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// 文件不存在，认为删除成功
		return nil
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("删除文件失败: %w", err)
	}
	return nil
}

// FileURL 拼接访问 URL，统一使用正斜杠
func (s *LocalStorage) FileURL(path string) string {
	urlPath := strings.TrimPrefix(filepath.ToSlash(path), "/")
	if s.baseURL == "" {
		return "/" + urlPath
	}
	return strings.TrimSuffix(s.baseURL, "/") + "/" + urlPath
}

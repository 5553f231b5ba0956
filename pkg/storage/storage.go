package storage

import (
	"context"
	"io"
)

// FileStorage 论文 PDF 等上传文件的存储接口
// 本地实现见 local.go，切换 OSS/S3 只需替换实现
type FileStorage interface {
	// Save 保存文件，返回可访问的 URL
	// folder 为存储子目录（如 "pdf"）
	Save(ctx context.Context, file io.Reader, filename, folder string) (string, error)

	// Remove 按访问 URL 删除文件，文件不存在视为成功
	Remove(ctx context.Context, url string) error

	// FileURL 由存储相对路径得到访问 URL
	FileURL(path string) string
}

package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageSaveAndRemove(t *testing.T) {
	base := t.TempDir()
	s := NewLocalStorage(base, "http://localhost:8080/static")

	url, err := s.Save(context.Background(), strings.NewReader("%PDF-1.4 fake"), "paper.pdf", "pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/static/pdf/"), "URL 应带基础前缀: %s", url)
	assert.True(t, strings.HasSuffix(url, "_paper.pdf"))

	// 落盘内容可读回
	rel := strings.TrimPrefix(url, "http://localhost:8080/static/")
	data, err := os.ReadFile(filepath.Join(base, rel))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(data))

	require.NoError(t, s.Remove(context.Background(), url))
	_, err = os.Stat(filepath.Join(base, rel))
	assert.True(t, os.IsNotExist(err), "删除后文件不应存在")

	// 再次删除视为成功
	assert.NoError(t, s.Remove(context.Background(), url))
}

func TestFileURL(t *testing.T) {
	s := NewLocalStorage(t.TempDir(), "http://localhost:8080/static/")
	assert.Equal(t, "http://localhost:8080/static/pdf/a.pdf", s.FileURL("pdf/a.pdf"))

	noBase := NewLocalStorage(t.TempDir(), "")
	assert.Equal(t, "/pdf/a.pdf", noBase.FileURL("pdf/a.pdf"))
}

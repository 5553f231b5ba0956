package handler

import (
	"net/http"

	"github.com/papergraph/papergraph/internal/catalog"
	"github.com/papergraph/papergraph/pkg/response"
	"github.com/papergraph/papergraph/pkg/xerr"

	"github.com/gin-gonic/gin"
)

// AuthorHandler 作者维度接口
type AuthorHandler struct {
	cat *catalog.Catalog
}

func NewAuthorHandler(cat *catalog.Catalog) *AuthorHandler {
	return &AuthorHandler{cat: cat}
}

// Articles GET /api/articles/authors/:authorName
// 返回命中文章的检索结果与作者汇总统计
func (h *AuthorHandler) Articles(c *gin.Context) {
	authorName := c.Param("authorName")
	if authorName == "" {
		response.Error(c, http.StatusBadRequest, xerr.ErrMissingParameter, "作者名不能为空")
		return
	}

	filters := parseSearchFilters(c)
	filters.Author = authorName
	result := h.cat.Search(filters)
	stats := h.cat.AuthorStats(authorName)

	response.Success(c, "获取作者文章成功", gin.H{
		"articles":    result,
		"authorStats": stats,
	})
}

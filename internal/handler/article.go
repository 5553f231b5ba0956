package handler

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/papergraph/papergraph/internal/catalog"
	apperr "github.com/papergraph/papergraph/pkg/errors"
	"github.com/papergraph/papergraph/pkg/logger"
	"github.com/papergraph/papergraph/pkg/response"
	"github.com/papergraph/papergraph/pkg/storage"
	"github.com/papergraph/papergraph/pkg/xerr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ArticleHandler 文章相关接口
type ArticleHandler struct {
	cat   *catalog.Catalog
	files storage.FileStorage
}

func NewArticleHandler(cat *catalog.Catalog, files storage.FileStorage) *ArticleHandler {
	return &ArticleHandler{cat: cat, files: files}
}

type createArticleReq struct {
	Title        string   `json:"title" binding:"required"`
	Authors      []string `json:"authors" binding:"required,min=1"`
	AuthorString string   `json:"authorString" binding:"required"`
	Abstract     string   `json:"abstract" binding:"required"`
	PublishDate  string   `json:"publishDate" binding:"required"`
	PublishYear  int      `json:"publishYear" binding:"required,min=1900"`
	Source       string   `json:"source"`
	DOI          string   `json:"doi"`
	URL          string   `json:"url" binding:"omitempty,url"`
	PDFURL       string   `json:"pdfUrl" binding:"omitempty,url"`
	Category     string   `json:"category"`
	Subcategory  string   `json:"subcategory"`
	Language     string   `json:"language" binding:"omitempty,oneof=zh en other"`
	WordCount    int      `json:"wordCount" binding:"omitempty,min=0"`
}

type updateArticleReq struct {
	Title        *string  `json:"title" binding:"omitempty,min=1"`
	Authors      []string `json:"authors" binding:"omitempty,min=1"`
	AuthorString *string  `json:"authorString" binding:"omitempty,min=1"`
	Abstract     *string  `json:"abstract" binding:"omitempty,min=1"`
	PublishDate  *string  `json:"publishDate" binding:"omitempty,min=1"`
	PublishYear  *int     `json:"publishYear" binding:"omitempty,min=1900"`
	Source       *string  `json:"source"`
	DOI          *string  `json:"doi"`
	URL          *string  `json:"url" binding:"omitempty,url"`
	PDFURL       *string  `json:"pdfUrl" binding:"omitempty,url"`
	Category     *string  `json:"category"`
	Subcategory  *string  `json:"subcategory"`
	Language     *string  `json:"language" binding:"omitempty,oneof=zh en other"`
	WordCount    *int     `json:"wordCount" binding:"omitempty,min=0"`
}

// Search GET /api/articles 组合检索
func (h *ArticleHandler) Search(c *gin.Context) {
	filters := parseSearchFilters(c)
	result := h.cat.Search(filters)
	response.Success(c, "获取文章列表成功", result)
}

// Create POST /api/articles 创建文章，拒绝重复 URL
func (h *ArticleHandler) Create(c *gin.Context) {
	var req createArticleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, xerr.ErrInvalidInput, err.Error())
		return
	}

	publishDate, err := parseDate(req.PublishDate)
	if err != nil {
		response.Error(c, http.StatusBadRequest, xerr.ErrInvalidInput, "发布日期格式不正确")
		return
	}

	lang := catalog.Language(req.Language)
	if lang == "" {
		lang = catalog.LangZH
	}

	article, err := h.cat.CreateArticle(catalog.ArticleFields{
		Title:        req.Title,
		Authors:      req.Authors,
		AuthorString: req.AuthorString,
		Abstract:     req.Abstract,
		PublishDate:  publishDate,
		PublishYear:  req.PublishYear,
		Source:       req.Source,
		DOI:          req.DOI,
		URL:          req.URL,
		PDFURL:       req.PDFURL,
		Category:     req.Category,
		Subcategory:  req.Subcategory,
		Language:     lang,
		WordCount:    req.WordCount,
	})
	if err != nil {
		if errors.Is(err, catalog.ErrDuplicateURL) {
			response.Error(c, http.StatusBadRequest, xerr.ErrDuplicateURL, "该URL的文章已存在")
			return
		}
		logger.Error("创建文章失败", zap.Error(err), zap.String("client_ip", c.ClientIP()))
		response.Error(c, http.StatusInternalServerError, xerr.SERVER_COMMON_ERROR, "创建文章失败")
		return
	}

	logger.Info("创建文章成功", zap.Uint64("article_id", article.ID), zap.String("client_ip", c.ClientIP()))
	response.Success(c, "创建文章成功", article)
}

// Get GET /api/articles/:id
func (h *ArticleHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	article := h.cat.GetArticle(id)
	if article == nil {
		response.FromError(c, http.StatusNotFound, apperr.New(xerr.ErrNotFound, "文章不存在"))
		return
	}
	response.Success(c, "获取文章成功", article)
}

// Update PUT /api/articles/:id 部分更新
func (h *ArticleHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req updateArticleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, xerr.ErrInvalidInput, err.Error())
		return
	}

	patch := catalog.ArticlePatch{
		Title:        req.Title,
		Authors:      req.Authors,
		AuthorString: req.AuthorString,
		Abstract:     req.Abstract,
		PublishYear:  req.PublishYear,
		Source:       req.Source,
		DOI:          req.DOI,
		URL:          req.URL,
		PDFURL:       req.PDFURL,
		Category:     req.Category,
		Subcategory:  req.Subcategory,
		WordCount:    req.WordCount,
	}
	if req.PublishDate != nil {
		d, err := parseDate(*req.PublishDate)
		if err != nil {
			response.Error(c, http.StatusBadRequest, xerr.ErrInvalidInput, "发布日期格式不正确")
			return
		}
		patch.PublishDate = &d
	}
	if req.Language != nil {
		lang := catalog.Language(*req.Language)
		patch.Language = &lang
	}

	article := h.cat.UpdateArticle(id, patch)
	if article == nil {
		response.Error(c, http.StatusNotFound, xerr.ErrNotFound, "文章不存在")
		return
	}
	response.Success(c, "更新文章成功", article)
}

// Delete DELETE /api/articles/:id 删除文章并级联清理关联
func (h *ArticleHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if !h.cat.DeleteArticle(id) {
		response.FromError(c, http.StatusNotFound, apperr.New(xerr.ErrNotFound, "文章不存在"))
		return
	}
	logger.Info("删除文章成功", zap.Uint64("article_id", id), zap.String("client_ip", c.ClientIP()))
	response.Success(c, "删除文章成功", nil)
}

// IncrementStat POST /api/articles/:id/stats/:field 递增互动统计
func (h *ArticleHandler) IncrementStat(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	field := catalog.StatField(c.Param("field"))
	switch field {
	case catalog.StatViews, catalog.StatDownloads, catalog.StatShares, catalog.StatCitations:
	default:
		response.Error(c, http.StatusBadRequest, xerr.ErrInvalidInput, "统计字段无效")
		return
	}
	article := h.cat.IncrementStat(id, field)
	if article == nil {
		response.Error(c, http.StatusNotFound, xerr.ErrNotFound, "文章不存在")
		return
	}
	response.Success(c, "更新统计成功", article.Stats)
}

// UploadPDF POST /api/articles/:id/pdf 上传论文PDF并回填 pdfUrl
func (h *ArticleHandler) UploadPDF(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if h.cat.GetArticle(id) == nil {
		response.Error(c, http.StatusNotFound, xerr.ErrNotFound, "文章不存在")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		logger.Warn("文件获取失败", zap.Error(err), zap.String("client_ip", c.ClientIP()))
		response.Error(c, http.StatusBadRequest, xerr.ErrBadRequest, "文件获取失败")
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		response.Error(c, http.StatusBadRequest, xerr.ErrInvalidInput, "仅支持PDF文件")
		return
	}

	url, err := h.files.Save(c.Request.Context(), file, header.Filename, "pdf")
	if err != nil {
		logger.Error("PDF保存失败", zap.Error(err), zap.String("client_ip", c.ClientIP()))
		response.FromError(c, http.StatusInternalServerError, apperr.Wrap(xerr.STORE_ERROR, "PDF保存失败", err))
		return
	}

	article := h.cat.UpdateArticle(id, catalog.ArticlePatch{PDFURL: &url})
	logger.Info("PDF上传成功", zap.Uint64("article_id", id), zap.String("pdf_url", url))
	response.Success(c, "上传PDF成功", article)
}

// parseSearchFilters 把查询参数翻译成检索条件
func parseSearchFilters(c *gin.Context) catalog.SearchFilters {
	filters := catalog.SearchFilters{
		Author:   c.Query("author"),
		Category: c.Query("category"),
		Language: catalog.Language(c.Query("language")),
		SortBy:   catalog.SortKey(c.Query("sortBy")),
		Order:    catalog.SortOrder(c.Query("sortOrder")),
	}

	if tags := c.Query("tags"); tags != "" {
		for _, t := range strings.Split(tags, ",") {
			if t = strings.TrimSpace(t); t != "" {
				filters.Tags = append(filters.Tags, t)
			}
		}
	}

	start, _ := strconv.Atoi(c.Query("yearStart"))
	end, _ := strconv.Atoi(c.Query("yearEnd"))
	if start != 0 || end != 0 {
		filters.Year = &catalog.YearRange{Start: start, End: end}
	}

	if v := c.Query("minScore"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filters.MinScore = &f
		}
	}
	if v := c.Query("maxScore"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filters.MaxScore = &f
		}
	}

	filters.Page, _ = strconv.Atoi(c.Query("page"))
	filters.Limit, _ = strconv.Atoi(c.Query("limit"))
	return filters
}

// parseDate 支持 2006-01-02 与 RFC3339 两种日期格式
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// paramID 解析路径中的数字 ID，无效时写出 400 并返回 false
func paramID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, http.StatusBadRequest, xerr.ErrInvalidInput, "ID无效")
		return 0, false
	}
	return id, true
}

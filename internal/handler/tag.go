package handler

import (
	"errors"
	"net/http"

	"github.com/papergraph/papergraph/internal/catalog"
	"github.com/papergraph/papergraph/pkg/logger"
	"github.com/papergraph/papergraph/pkg/response"
	"github.com/papergraph/papergraph/pkg/xerr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TagHandler 标签与文章-标签关联接口
type TagHandler struct {
	cat *catalog.Catalog
}

func NewTagHandler(cat *catalog.Catalog) *TagHandler {
	return &TagHandler{cat: cat}
}

type createTagReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color" binding:"required"`
	Category    string `json:"category" binding:"required"`
}

type attachTagReq struct {
	// 二选一：携带 tagId 关联已有标签，或携带 name 等字段懒创建
	TagID       uint64   `json:"tagId"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Color       string   `json:"color"`
	Category    string   `json:"category"`
	Confidence  *float64 `json:"confidence" binding:"omitempty,min=0,max=1"`
}

// List GET /api/tags 全部标签，或按 category 过滤
func (h *TagHandler) List(c *gin.Context) {
	category := c.Query("category")

	var tags []*catalog.Tag
	if category != "" {
		tags = h.cat.TagsByCategory(category)
	} else {
		tags = h.cat.ListTags()
	}
	response.Success(c, "获取标签列表成功", tags)
}

// Create POST /api/tags 创建标签，重名拒绝
func (h *TagHandler) Create(c *gin.Context) {
	var req createTagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, xerr.ErrInvalidInput, err.Error())
		return
	}

	tag, err := h.cat.CreateTag(catalog.TagFields{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Category:    req.Category,
	})
	if err != nil {
		if errors.Is(err, catalog.ErrDuplicateName) {
			response.Error(c, http.StatusBadRequest, xerr.ErrDuplicateTag, "标签已存在")
			return
		}
		logger.Error("创建标签失败", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, xerr.SERVER_COMMON_ERROR, "创建标签失败")
		return
	}
	response.Success(c, "创建标签成功", tag)
}

// Delete DELETE /api/tags/:id 删除标签并级联清理关联
func (h *TagHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if !h.cat.DeleteTag(id) {
		response.Error(c, http.StatusNotFound, xerr.ErrNotFound, "标签不存在")
		return
	}
	logger.Info("删除标签成功", zap.Uint64("tag_id", id))
	response.Success(c, "删除标签成功", nil)
}

// ArticleTags GET /api/articles/:id/tags 文章已关联的标签
func (h *TagHandler) ArticleTags(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if h.cat.GetArticle(id) == nil {
		response.Error(c, http.StatusNotFound, xerr.ErrNotFound, "文章不存在")
		return
	}
	tags := h.cat.TagsFor(id)
	if tags == nil {
		tags = []*catalog.Tag{}
	}
	response.Success(c, "获取文章标签成功", tags)
}

// Attach POST /api/articles/:id/tags 关联标签（已有ID或按名懒创建）
func (h *TagHandler) Attach(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req attachTagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, xerr.ErrInvalidInput, err.Error())
		return
	}

	confidence := 1.0
	if req.Confidence != nil {
		confidence = *req.Confidence
	}

	var at *catalog.Association
	switch {
	case req.TagID != 0:
		at = h.cat.Associate(id, req.TagID, confidence)
	case req.Name != "":
		at = h.cat.AssociateByName(id, catalog.TagFields{
			Name:        req.Name,
			Description: req.Description,
			Color:       req.Color,
			Category:    req.Category,
		}, confidence)
	default:
		response.Error(c, http.StatusBadRequest, xerr.ErrMissingParameter, "需要 tagId 或 name")
		return
	}

	if at == nil {
		response.Error(c, http.StatusNotFound, xerr.ErrNotFound, "文章或标签不存在")
		return
	}
	response.Success(c, "关联标签成功", at)
}

// Detach DELETE /api/articles/:id/tags/:tagId 解除关联
func (h *TagHandler) Detach(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	tagID, ok := paramID(c, "tagId")
	if !ok {
		return
	}
	if !h.cat.Disassociate(id, tagID) {
		response.Error(c, http.StatusNotFound, xerr.ErrNotFound, "关联不存在")
		return
	}
	response.Success(c, "移除标签成功", nil)
}

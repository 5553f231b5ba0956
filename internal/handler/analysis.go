package handler

import (
	"net/http"

	"github.com/papergraph/papergraph/internal/catalog"
	"github.com/papergraph/papergraph/pkg/response"
	"github.com/papergraph/papergraph/pkg/xerr"

	"github.com/gin-gonic/gin"
)

// AnalysisHandler 文章评估接口
type AnalysisHandler struct {
	cat *catalog.Catalog
}

func NewAnalysisHandler(cat *catalog.Catalog) *AnalysisHandler {
	return &AnalysisHandler{cat: cat}
}

type dimensionScoresReq struct {
	Innovation      float64 `json:"innovation" binding:"min=0,max=10"`
	Methodology     float64 `json:"methodology" binding:"min=0,max=10"`
	Impact          float64 `json:"impact" binding:"min=0,max=10"`
	Clarity         float64 `json:"clarity" binding:"min=0,max=10"`
	Reproducibility float64 `json:"reproducibility" binding:"min=0,max=10"`
	Significance    float64 `json:"significance" binding:"min=0,max=10"`
}

type createAnalysisReq struct {
	ArticleID     uint64               `json:"articleId" binding:"required"`
	UserID        uint64               `json:"userId"`
	OverallScore  float64              `json:"overallScore" binding:"min=0,max=10"`
	Dimensions    dimensionScoresReq   `json:"dimensions"`
	Summary       string               `json:"summary"`
	KeyFindings   []catalog.KeyFinding `json:"keyFindings"`
	Strengths     []string             `json:"strengths"`
	Weaknesses    []string             `json:"weaknesses"`
	Suggestions   []string             `json:"suggestions"`
	ExtractedTags []string             `json:"extractedTags"`
}

// Create POST /api/analyses 记录一次文章评估
func (h *AnalysisHandler) Create(c *gin.Context) {
	var req createAnalysisReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, xerr.ErrInvalidInput, err.Error())
		return
	}
	if h.cat.GetArticle(req.ArticleID) == nil {
		response.Error(c, http.StatusNotFound, xerr.ErrNotFound, "文章不存在")
		return
	}

	analysis := h.cat.CreateAnalysis(catalog.AnalysisFields{
		ArticleID:    req.ArticleID,
		UserID:       req.UserID,
		OverallScore: req.OverallScore,
		Dimensions: catalog.DimensionScores{
			Innovation:      req.Dimensions.Innovation,
			Methodology:     req.Dimensions.Methodology,
			Impact:          req.Dimensions.Impact,
			Clarity:         req.Dimensions.Clarity,
			Reproducibility: req.Dimensions.Reproducibility,
			Significance:    req.Dimensions.Significance,
		},
		Summary:       req.Summary,
		KeyFindings:   req.KeyFindings,
		Strengths:     req.Strengths,
		Weaknesses:    req.Weaknesses,
		Suggestions:   req.Suggestions,
		ExtractedTags: req.ExtractedTags,
	})
	response.Success(c, "创建评估成功", analysis)
}

// Get GET /api/analyses/:articleId 文章的评估结果
func (h *AnalysisHandler) Get(c *gin.Context) {
	articleID, ok := paramID(c, "articleId")
	if !ok {
		return
	}
	analysis := h.cat.AnalysisFor(articleID)
	if analysis == nil {
		response.Error(c, http.StatusNotFound, xerr.ErrNotFound, "评估不存在")
		return
	}
	response.Success(c, "获取评估成功", analysis)
}

package catalog

import (
	"time"
)

// DimensionScores 六个维度的评分
type DimensionScores struct {
	Innovation      float64 `json:"innovation"`
	Methodology     float64 `json:"methodology"`
	Impact          float64 `json:"impact"`
	Clarity         float64 `json:"clarity"`
	Reproducibility float64 `json:"reproducibility"`
	Significance    float64 `json:"significance"`
}

// KeyFinding 分析报告中的关键发现
type KeyFinding struct {
	ID          string `json:"id"`
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Analysis 文章评估结果，OverallScore 是检索引擎的评分来源
type Analysis struct {
	ID            uint64          `json:"id"`
	ArticleID     uint64          `json:"articleId"`
	UserID        uint64          `json:"userId"`
	OverallScore  float64         `json:"overallScore"`
	Dimensions    DimensionScores `json:"dimensions"`
	Summary       string          `json:"summary"`
	KeyFindings   []KeyFinding    `json:"keyFindings,omitempty"`
	Strengths     []string        `json:"strengths,omitempty"`
	Weaknesses    []string        `json:"weaknesses,omitempty"`
	Suggestions   []string        `json:"suggestions,omitempty"`
	ExtractedTags []string        `json:"extractedTags,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// clone 返回脱离存储的副本，供锁外使用
func (a *Analysis) clone() *Analysis {
	if a == nil {
		return nil
	}
	out := *a
	out.KeyFindings = append([]KeyFinding(nil), a.KeyFindings...)
	out.Strengths = append([]string(nil), a.Strengths...)
	out.Weaknesses = append([]string(nil), a.Weaknesses...)
	out.Suggestions = append([]string(nil), a.Suggestions...)
	out.ExtractedTags = append([]string(nil), a.ExtractedTags...)
	return &out
}

// AnalysisFields 创建分析时调用方可提供的字段
type AnalysisFields struct {
	ArticleID     uint64
	UserID        uint64
	OverallScore  float64
	Dimensions    DimensionScores
	Summary       string
	KeyFindings   []KeyFinding
	Strengths     []string
	Weaknesses    []string
	Suggestions   []string
	ExtractedTags []string
}

// analysisStore 评估结果内存存储
// byArticle 每篇文章只保留最早一条分析，与检索引擎的评分解析一致
type analysisStore struct {
	analyses  map[uint64]*Analysis
	byArticle map[uint64]uint64
	nextID    uint64
}

func newAnalysisStore() *analysisStore {
	return &analysisStore{
		analyses:  make(map[uint64]*Analysis),
		byArticle: make(map[uint64]uint64),
		nextID:    1,
	}
}

func (s *analysisStore) create(fields AnalysisFields, now time.Time) *Analysis {
	a := &Analysis{
		ID:            s.nextID,
		ArticleID:     fields.ArticleID,
		UserID:        fields.UserID,
		OverallScore:  fields.OverallScore,
		Dimensions:    fields.Dimensions,
		Summary:       fields.Summary,
		KeyFindings:   append([]KeyFinding(nil), fields.KeyFindings...),
		Strengths:     append([]string(nil), fields.Strengths...),
		Weaknesses:    append([]string(nil), fields.Weaknesses...),
		Suggestions:   append([]string(nil), fields.Suggestions...),
		ExtractedTags: append([]string(nil), fields.ExtractedTags...),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.nextID++
	s.analyses[a.ID] = a
	if _, ok := s.byArticle[a.ArticleID]; !ok {
		s.byArticle[a.ArticleID] = a.ID
	}
	return a
}

func (s *analysisStore) forArticle(articleID uint64) *Analysis {
	id, ok := s.byArticle[articleID]
	if !ok {
		return nil
	}
	return s.analyses[id]
}

// scoreFor 文章的综合评分，无分析时为 0
func (s *analysisStore) scoreFor(articleID uint64) float64 {
	if a := s.forArticle(articleID); a != nil {
		return a.OverallScore
	}
	return 0
}

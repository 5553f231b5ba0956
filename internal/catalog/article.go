package catalog

import (
	"time"
)

// Language 文章语言
type Language string

const (
	LangZH    Language = "zh"
	LangEN    Language = "en"
	LangOther Language = "other"
)

// ArticleStats 文章互动统计，由外部协作方递增，本引擎不做递减
type ArticleStats struct {
	Views     int `json:"views"`
	Downloads int `json:"downloads"`
	Shares    int `json:"shares"`
	Citations int `json:"citations"`
}

// Article 文章记录
// AuthorString 保存原始作者字符串格式，与 Authors 的一致性由调用方维护
type Article struct {
	ID           uint64       `json:"id"`
	Title        string       `json:"title"`
	Authors      []string     `json:"authors"`
	AuthorString string       `json:"authorString"`
	Abstract     string       `json:"abstract"`
	PublishDate  time.Time    `json:"publishDate"`
	PublishYear  int          `json:"publishYear"` // 冗余字段，用于按年份快速过滤
	Source       string       `json:"source,omitempty"`
	DOI          string       `json:"doi,omitempty"`
	URL          string       `json:"url,omitempty"`
	PDFURL       string       `json:"pdfUrl,omitempty"`
	Category     string       `json:"category,omitempty"`
	Subcategory  string       `json:"subcategory,omitempty"`
	Language     Language     `json:"language"`
	WordCount    int          `json:"wordCount"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
	Stats        ArticleStats `json:"stats"`
}

// ArticleFields 创建文章时调用方可提供的字段（ID/时间戳/统计由存储生成）
type ArticleFields struct {
	Title        string
	Authors      []string
	AuthorString string
	Abstract     string
	PublishDate  time.Time
	PublishYear  int
	Source       string
	DOI          string
	URL          string
	PDFURL       string
	Category     string
	Subcategory  string
	Language     Language
	WordCount    int
}

// ArticlePatch 部分更新，nil 字段保持原值
type ArticlePatch struct {
	Title        *string
	Authors      []string
	AuthorString *string
	Abstract     *string
	PublishDate  *time.Time
	PublishYear  *int
	Source       *string
	DOI          *string
	URL          *string
	PDFURL       *string
	Category     *string
	Subcategory  *string
	Language     *Language
	WordCount    *int
}

// StatField 可递增的统计字段名
type StatField string

const (
	StatViews     StatField = "views"
	StatDownloads StatField = "downloads"
	StatShares    StatField = "shares"
	StatCitations StatField = "citations"
)

// clone 返回脱离存储的副本，供锁外使用
func (a *Article) clone() *Article {
	if a == nil {
		return nil
	}
	out := *a
	out.Authors = append([]string(nil), a.Authors...)
	return &out
}

func cloneArticles(in []*Article) []*Article {
	if in == nil {
		return nil
	}
	out := make([]*Article, len(in))
	for i, a := range in {
		out[i] = a.clone()
	}
	return out
}

// articleStore 文章内存存储
// order 维护插入顺序，listAll 按此顺序返回
type articleStore struct {
	articles map[uint64]*Article
	order    []uint64
	nextID   uint64
}

func newArticleStore() *articleStore {
	return &articleStore{
		articles: make(map[uint64]*Article),
		nextID:   1,
	}
}

func (s *articleStore) create(fields ArticleFields, now time.Time) *Article {
	a := &Article{
		ID:           s.nextID,
		Title:        fields.Title,
		Authors:      append([]string(nil), fields.Authors...),
		AuthorString: fields.AuthorString,
		Abstract:     fields.Abstract,
		PublishDate:  fields.PublishDate,
		PublishYear:  fields.PublishYear,
		Source:       fields.Source,
		DOI:          fields.DOI,
		URL:          fields.URL,
		PDFURL:       fields.PDFURL,
		Category:     fields.Category,
		Subcategory:  fields.Subcategory,
		Language:     fields.Language,
		WordCount:    fields.WordCount,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.nextID++
	s.articles[a.ID] = a
	s.order = append(s.order, a.ID)
	return a
}

func (s *articleStore) get(id uint64) *Article {
	return s.articles[id]
}

func (s *articleStore) getByURL(url string) *Article {
	for _, id := range s.order {
		if a := s.articles[id]; a != nil && a.URL == url {
			return a
		}
	}
	return nil
}

func (s *articleStore) update(id uint64, patch ArticlePatch, now time.Time) *Article {
	a := s.articles[id]
	if a == nil {
		return nil
	}
	if patch.Title != nil {
		a.Title = *patch.Title
	}
	if patch.Authors != nil {
		a.Authors = append([]string(nil), patch.Authors...)
	}
	if patch.AuthorString != nil {
		a.AuthorString = *patch.AuthorString
	}
	if patch.Abstract != nil {
		a.Abstract = *patch.Abstract
	}
	if patch.PublishDate != nil {
		a.PublishDate = *patch.PublishDate
	}
	if patch.PublishYear != nil {
		a.PublishYear = *patch.PublishYear
	}
	if patch.Source != nil {
		a.Source = *patch.Source
	}
	if patch.DOI != nil {
		a.DOI = *patch.DOI
	}
	if patch.URL != nil {
		a.URL = *patch.URL
	}
	if patch.PDFURL != nil {
		a.PDFURL = *patch.PDFURL
	}
	if patch.Category != nil {
		a.Category = *patch.Category
	}
	if patch.Subcategory != nil {
		a.Subcategory = *patch.Subcategory
	}
	if patch.Language != nil {
		a.Language = *patch.Language
	}
	if patch.WordCount != nil {
		a.WordCount = *patch.WordCount
	}
	a.UpdatedAt = now
	return a
}

func (s *articleStore) delete(id uint64) bool {
	if _, ok := s.articles[id]; !ok {
		return false
	}
	delete(s.articles, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *articleStore) listAll() []*Article {
	list := make([]*Article, 0, len(s.order))
	for _, id := range s.order {
		if a := s.articles[id]; a != nil {
			list = append(list, a)
		}
	}
	return list
}

func (s *articleStore) incrementStat(id uint64, field StatField) *Article {
	a := s.articles[id]
	if a == nil {
		return nil
	}
	switch field {
	case StatViews:
		a.Stats.Views++
	case StatDownloads:
		a.Stats.Downloads++
	case StatShares:
		a.Stats.Shares++
	case StatCitations:
		a.Stats.Citations++
	default:
		return nil
	}
	return a
}

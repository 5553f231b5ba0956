package catalog

import (
	"sort"
	"strings"
)

// 排序键
type SortKey string

const (
	SortByDate      SortKey = "date"
	SortByScore     SortKey = "score"
	SortByCitations SortKey = "citations"
	SortByViews     SortKey = "views"
)

// 排序方向
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// YearRange 发表年份范围，零值端视为无界
type YearRange struct {
	Start int `json:"start,omitempty"`
	End   int `json:"end,omitempty"`
}

// SearchFilters 组合检索条件，所有字段均可缺省
// 缺省条件不参与过滤；空条件返回全量集合
type SearchFilters struct {
	Author   string     `json:"author,omitempty"`
	Tags     []string   `json:"tags,omitempty"`
	Category string     `json:"category,omitempty"`
	Year     *YearRange `json:"year,omitempty"`
	Language Language   `json:"language,omitempty"`
	MinScore *float64   `json:"minScore,omitempty"`
	MaxScore *float64   `json:"maxScore,omitempty"`
	SortBy   SortKey    `json:"sortBy,omitempty"`
	Order    SortOrder  `json:"sortOrder,omitempty"`
	Page     int        `json:"page,omitempty"`
	Limit    int        `json:"limit,omitempty"`
}

// SearchResult 检索结果
// Total 为分页前的命中总数，TotalPages = ceil(Total/Limit)
type SearchResult struct {
	Articles   []*Article    `json:"articles"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"totalPages"`
	Filters    SearchFilters `json:"filters"`
}

// search 按固定的谓词顺序过滤，再排序、分页
// 各谓词独立缩小工作集，后续过滤不会恢复已淘汰的文章
func (c *Catalog) search(filters SearchFilters) *SearchResult {
	articles := c.articles.listAll()

	// 1. 作者过滤：子串匹配作者序列任一元素或原始作者字符串
	if filters.Author != "" {
		needle := strings.ToLower(filters.Author)
		articles = filterArticles(articles, func(a *Article) bool {
			return matchAuthor(a, needle)
		})
	}

	// 2. 标签过滤：任一请求标签名子串命中任一已关联标签名即保留
	if len(filters.Tags) > 0 {
		articles = filterArticles(articles, func(a *Article) bool {
			var names []string
			for _, tagID := range c.assocs.tagIDsFor(a.ID) {
				if t := c.tags.get(tagID); t != nil {
					names = append(names, strings.ToLower(t.Name))
				}
			}
			for _, want := range filters.Tags {
				needle := strings.ToLower(want)
				for _, name := range names {
					if strings.Contains(name, needle) {
						return true
					}
				}
			}
			return false
		})
	}

	// 3. 分类过滤：精确匹配
	if filters.Category != "" {
		articles = filterArticles(articles, func(a *Article) bool {
			return a.Category == filters.Category
		})
	}

	// 4. 年份范围：闭区间，任一端可缺省
	if filters.Year != nil {
		yr := filters.Year
		articles = filterArticles(articles, func(a *Article) bool {
			if yr.Start != 0 && a.PublishYear < yr.Start {
				return false
			}
			if yr.End != 0 && a.PublishYear > yr.End {
				return false
			}
			return true
		})
	}

	// 5. 语言过滤：精确匹配
	if filters.Language != "" {
		articles = filterArticles(articles, func(a *Article) bool {
			return a.Language == filters.Language
		})
	}

	// 6. 评分范围：取分析结果的综合评分，无分析按 0 计，闭区间
	if filters.MinScore != nil || filters.MaxScore != nil {
		articles = filterArticles(articles, func(a *Article) bool {
			score := c.analyses.scoreFor(a.ID)
			if filters.MinScore != nil && score < *filters.MinScore {
				return false
			}
			if filters.MaxScore != nil && score > *filters.MaxScore {
				return false
			}
			return true
		})
	}

	// 7. 排序：稳定排序，平局保持过滤后的相对顺序
	sortBy := filters.SortBy
	if sortBy == "" {
		sortBy = SortByDate
	}
	order := filters.Order
	if order == "" {
		order = OrderDesc
	}
	less := c.comparator(sortBy)
	sort.SliceStable(articles, func(i, j int) bool {
		if order == OrderDesc {
			return less(articles[j], articles[i])
		}
		return less(articles[i], articles[j])
	})

	// 8. 分页：越界页返回空列表而非错误
	page := filters.Page
	if page < 1 {
		page = defaultPage
	}
	limit := filters.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	total := len(articles)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &SearchResult{
		Articles:   articles[start:end],
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		Filters:    filters,
	}
}

func (c *Catalog) comparator(key SortKey) func(a, b *Article) bool {
	switch key {
	case SortByScore:
		return func(a, b *Article) bool {
			return c.analyses.scoreFor(a.ID) < c.analyses.scoreFor(b.ID)
		}
	case SortByCitations:
		return func(a, b *Article) bool {
			return a.Stats.Citations < b.Stats.Citations
		}
	case SortByViews:
		return func(a, b *Article) bool {
			return a.Stats.Views < b.Stats.Views
		}
	default:
		return func(a, b *Article) bool {
			return a.PublishDate.Before(b.PublishDate)
		}
	}
}

func matchAuthor(a *Article, lowerNeedle string) bool {
	for _, author := range a.Authors {
		if strings.Contains(strings.ToLower(author), lowerNeedle) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(a.AuthorString), lowerNeedle)
}

func filterArticles(in []*Article, keep func(*Article) bool) []*Article {
	out := in[:0:0]
	for _, a := range in {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}

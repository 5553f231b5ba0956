package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedSearchFixture 五篇覆盖不同作者/年份/语言/分类的文章
func seedSearchFixture(t *testing.T, cat *Catalog) map[string]*Article {
	t.Helper()
	articles := make(map[string]*Article)

	specs := []struct {
		key     string
		fields  ArticleFields
		tagName string
	}{
		{"bert", ArticleFields{
			Title: "BERT预训练研究", Authors: []string{"张三", "李四"}, AuthorString: "张三, 李四",
			Abstract: "摘要", PublishDate: date("2019-05-01"), PublishYear: 2019,
			Category: "NLP", Language: LangZH,
		}, "自然语言处理"},
		{"vit", ArticleFields{
			Title: "Vision Transformer", Authors: []string{"Alexey Dosovitskiy"}, AuthorString: "Dosovitskiy et al.",
			Abstract: "摘要", PublishDate: date("2020-10-22"), PublishYear: 2020,
			Category: "CV", Language: LangEN,
		}, "计算机视觉"},
		{"gpt", ArticleFields{
			Title: "GPT-3语言模型", Authors: []string{"Tom Brown"}, AuthorString: "Brown et al.",
			Abstract: "摘要", PublishDate: date("2020-05-28"), PublishYear: 2020,
			Category: "NLP", Language: LangEN,
		}, "自然语言处理"},
		{"survey", ArticleFields{
			Title: "深度学习综述", Authors: []string{"张三"}, AuthorString: "张三",
			Abstract: "摘要", PublishDate: date("2021-01-15"), PublishYear: 2021,
			Category: "ML", Language: LangZH,
		}, "深度学习"},
		{"rl", ArticleFields{
			Title: "强化学习入门", Authors: []string{"赵六"}, AuthorString: "赵六",
			Abstract: "摘要", PublishDate: date("2018-09-01"), PublishYear: 2018,
			Category: "ML", Language: LangZH,
		}, "强化学习"},
	}

	for _, s := range specs {
		a, err := cat.CreateArticle(s.fields)
		require.NoError(t, err)
		articles[s.key] = a

		tag := cat.GetTagByName(s.tagName)
		if tag == nil {
			tag, err = cat.CreateTag(TagFields{Name: s.tagName, Color: "#000", Category: "domain"})
			require.NoError(t, err)
		}
		require.NotNil(t, cat.Associate(a.ID, tag.ID, 1.0))
	}
	return articles
}

// 空条件返回全量集合
func TestSearchEmptyFilters(t *testing.T) {
	cat := New()
	seedSearchFixture(t, cat)

	result := cat.Search(SearchFilters{})
	assert.Equal(t, 5, result.Total)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 10, result.Limit)
	assert.Equal(t, 1, result.TotalPages)
	assert.Len(t, result.Articles, 5)
}

func TestSearchAuthorFilter(t *testing.T) {
	cat := New()
	seedSearchFixture(t, cat)

	// 作者序列命中
	result := cat.Search(SearchFilters{Author: "张三"})
	assert.Equal(t, 2, result.Total)

	// 原始作者字符串命中（大小写不敏感）
	result = cat.Search(SearchFilters{Author: "dosovitskiy"})
	assert.Equal(t, 1, result.Total)

	result = cat.Search(SearchFilters{Author: "不存在"})
	assert.Zero(t, result.Total)
	assert.Empty(t, result.Articles)
}

func TestSearchTagFilterORSemantics(t *testing.T) {
	cat := New()
	seedSearchFixture(t, cat)

	// 单个标签名子串
	result := cat.Search(SearchFilters{Tags: []string{"视觉"}})
	assert.Equal(t, 1, result.Total)

	// 多个标签 OR 语义
	result = cat.Search(SearchFilters{Tags: []string{"计算机视觉", "强化学习"}})
	assert.Equal(t, 2, result.Total)

	result = cat.Search(SearchFilters{Tags: []string{"无此标签"}})
	assert.Zero(t, result.Total)
}

func TestSearchCategoryAndLanguage(t *testing.T) {
	cat := New()
	seedSearchFixture(t, cat)

	assert.Equal(t, 2, cat.Search(SearchFilters{Category: "NLP"}).Total)
	assert.Equal(t, 3, cat.Search(SearchFilters{Language: LangZH}).Total)
	assert.Equal(t, 1, cat.Search(SearchFilters{Category: "NLP", Language: LangZH}).Total)
}

func TestSearchYearRange(t *testing.T) {
	cat := New()
	seedSearchFixture(t, cat)

	assert.Equal(t, 3, cat.Search(SearchFilters{Year: &YearRange{Start: 2020}}).Total)
	assert.Equal(t, 2, cat.Search(SearchFilters{Year: &YearRange{End: 2019}}).Total)
	// 闭区间
	assert.Equal(t, 3, cat.Search(SearchFilters{Year: &YearRange{Start: 2019, End: 2020}}).Total)
}

func TestSearchScoreRange(t *testing.T) {
	cat := New()
	articles := seedSearchFixture(t, cat)

	cat.CreateAnalysis(AnalysisFields{ArticleID: articles["bert"].ID, OverallScore: 9.2})
	cat.CreateAnalysis(AnalysisFields{ArticleID: articles["gpt"].ID, OverallScore: 7.5})

	min := 8.0
	result := cat.Search(SearchFilters{MinScore: &min})
	require.Equal(t, 1, result.Total)
	assert.Equal(t, articles["bert"].ID, result.Articles[0].ID)

	// 无分析按 0 分计，maxScore 过滤会保留它们
	max := 8.0
	result = cat.Search(SearchFilters{MaxScore: &max})
	assert.Equal(t, 4, result.Total)
}

func TestSearchSortByDate(t *testing.T) {
	cat := New()
	seedSearchFixture(t, cat)

	// 默认按发表日期降序
	result := cat.Search(SearchFilters{})
	titles := make([]string, 0, len(result.Articles))
	for _, a := range result.Articles {
		titles = append(titles, a.Title)
	}
	assert.Equal(t, []string{"深度学习综述", "Vision Transformer", "GPT-3语言模型", "BERT预训练研究", "强化学习入门"}, titles)

	// 升序
	result = cat.Search(SearchFilters{SortBy: SortByDate, Order: OrderAsc})
	assert.Equal(t, "强化学习入门", result.Articles[0].Title)
}

func TestSearchSortByScoreAndStats(t *testing.T) {
	cat := New()
	articles := seedSearchFixture(t, cat)

	cat.CreateAnalysis(AnalysisFields{ArticleID: articles["rl"].ID, OverallScore: 9.9})
	cat.CreateAnalysis(AnalysisFields{ArticleID: articles["bert"].ID, OverallScore: 5.0})

	result := cat.Search(SearchFilters{SortBy: SortByScore, Order: OrderDesc})
	assert.Equal(t, articles["rl"].ID, result.Articles[0].ID)
	assert.Equal(t, articles["bert"].ID, result.Articles[1].ID)

	for i := 0; i < 3; i++ {
		cat.IncrementStat(articles["vit"].ID, StatCitations)
	}
	cat.IncrementStat(articles["gpt"].ID, StatCitations)

	result = cat.Search(SearchFilters{SortBy: SortByCitations, Order: OrderDesc})
	assert.Equal(t, articles["vit"].ID, result.Articles[0].ID)

	cat.IncrementStat(articles["survey"].ID, StatViews)
	result = cat.Search(SearchFilters{SortBy: SortByViews, Order: OrderDesc})
	assert.Equal(t, articles["survey"].ID, result.Articles[0].ID)
}

// 分页边界：25 篇命中，limit=10 时第 3 页 5 篇、第 4 页为空、共 3 页
func TestSearchPaginationBoundary(t *testing.T) {
	cat := New()
	for i := 0; i < 25; i++ {
		_, err := cat.CreateArticle(newTestArticle(
			fmt.Sprintf("文章%02d", i), "张三", []string{"张三"}, 2023, "2023-01-01"))
		require.NoError(t, err)
	}

	page3 := cat.Search(SearchFilters{Page: 3, Limit: 10})
	assert.Equal(t, 25, page3.Total)
	assert.Equal(t, 3, page3.TotalPages)
	assert.Len(t, page3.Articles, 5)

	page4 := cat.Search(SearchFilters{Page: 4, Limit: 10})
	assert.Empty(t, page4.Articles, "越界页应返回空列表而非错误")
	assert.Equal(t, 25, page4.Total)

	// 首页边界之外 total 不受 page/limit 影响
	assert.Equal(t, 25, cat.Search(SearchFilters{Page: 99, Limit: 3}).Total)
}

func TestSearchDefaults(t *testing.T) {
	cat := New()
	seedSearchFixture(t, cat)

	result := cat.Search(SearchFilters{Page: 0, Limit: 0})
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 10, result.Limit)
}

// 谓词按固定顺序叠加缩小工作集
func TestSearchCombinedFilters(t *testing.T) {
	cat := New()
	seedSearchFixture(t, cat)

	result := cat.Search(SearchFilters{
		Author:   "张三",
		Category: "NLP",
		Year:     &YearRange{Start: 2019, End: 2019},
		Language: LangZH,
	})
	require.Equal(t, 1, result.Total)
	assert.Equal(t, "BERT预训练研究", result.Articles[0].Title)
}

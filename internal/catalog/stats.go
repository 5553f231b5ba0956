package catalog

import (
	"math"
	"sort"
	"strings"
)

// AuthorStats 作者维度的汇总统计
type AuthorStats struct {
	Name           string   `json:"name"`
	ArticleCount   int      `json:"articleCount"`
	TotalCitations int      `json:"totalCitations"`
	AverageScore   float64  `json:"averageScore"` // 保留两位小数
	TopCategories  []string `json:"topCategories"`
	TopTags        []string `json:"topTags"`
	LatestArticle  string   `json:"latestArticle"`
}

// authorStats 对作者名命中的文章做单遍汇总
// 命中谓词与检索引擎的作者过滤一致，保证两边计数相同
func (c *Catalog) authorStats(authorName string) *AuthorStats {
	needle := strings.ToLower(authorName)
	var matched []*Article
	for _, a := range c.articles.listAll() {
		if matchAuthor(a, needle) {
			matched = append(matched, a)
		}
	}
	if len(matched) == 0 {
		return nil
	}

	totalCitations := 0
	scoreSum := 0.0
	categoryCount := newFreqTable()
	tagCount := newFreqTable()
	latest := matched[0]

	for _, a := range matched {
		totalCitations += a.Stats.Citations
		scoreSum += c.analyses.scoreFor(a.ID)
		if a.Category != "" {
			categoryCount.add(a.Category)
		}
		for _, tagID := range c.assocs.tagIDsFor(a.ID) {
			if t := c.tags.get(tagID); t != nil {
				tagCount.add(t.Name)
			}
		}
		if a.PublishDate.After(latest.PublishDate) {
			latest = a
		}
	}

	avg := scoreSum / float64(len(matched))

	return &AuthorStats{
		Name:           authorName,
		ArticleCount:   len(matched),
		TotalCitations: totalCitations,
		AverageScore:   math.Round(avg*100) / 100,
		TopCategories:  categoryCount.top(3),
		TopTags:        tagCount.top(5),
		LatestArticle:  latest.Title,
	}
}

// freqTable 频次表，记录首次出现顺序用于平局裁决
type freqTable struct {
	counts map[string]int
	first  map[string]int
	seen   int
}

func newFreqTable() *freqTable {
	return &freqTable{
		counts: make(map[string]int),
		first:  make(map[string]int),
	}
}

func (f *freqTable) add(key string) {
	if _, ok := f.counts[key]; !ok {
		f.first[key] = f.seen
		f.seen++
	}
	f.counts[key]++
}

// top 频次前 N 名，频次相同按首次出现顺序
func (f *freqTable) top(n int) []string {
	keys := make([]string, 0, len(f.counts))
	for k := range f.counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ci, cj := f.counts[keys[i]], f.counts[keys[j]]
		if ci != cj {
			return ci > cj
		}
		return f.first[keys[i]] < f.first[keys[j]]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

// Package catalog 实现文章目录的内存引擎：
// 文章存储、标签注册表、文章-标签关联索引、组合检索与作者统计。
package catalog

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrDuplicateName 标签名已存在（不区分大小写）
	ErrDuplicateName = errors.New("catalog: tag name already exists")
	// ErrDuplicateURL 相同 URL 的文章已存在
	ErrDuplicateURL = errors.New("catalog: article url already exists")
)

// Catalog 目录门面，持有全部内存存储
// gin 并发处理请求，所有访问经由一把读写锁串行化，
// 对外一律返回快照副本，存储内部的指针不出锁
// 实例由宿主进程构造并注入 handler，不使用全局单例
type Catalog struct {
	mu       sync.RWMutex
	articles *articleStore
	tags     *tagRegistry
	assocs   *assocIndex
	analyses *analysisStore

	now func() time.Time // 测试时可替换
}

func New() *Catalog {
	return &Catalog{
		articles: newArticleStore(),
		tags:     newTagRegistry(),
		assocs:   newAssocIndex(),
		analyses: newAnalysisStore(),
		now:      time.Now,
	}
}

// ---- 文章 ----

// CreateArticle 创建文章，统计清零、时间戳取当前时间
// URL 非空且已存在同 URL 文章时返回 ErrDuplicateURL
func (c *Catalog) CreateArticle(fields ArticleFields) (*Article, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if fields.URL != "" && c.articles.getByURL(fields.URL) != nil {
		return nil, ErrDuplicateURL
	}
	return c.articles.create(fields, c.now()).clone(), nil
}

// GetArticle 按 ID 获取文章快照，不存在返回 nil
func (c *Catalog) GetArticle(id uint64) *Article {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.articles.get(id).clone()
}

// GetArticleByURL 按 URL 精确匹配，用于上传去重
func (c *Catalog) GetArticleByURL(url string) *Article {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.articles.getByURL(url).clone()
}

// UpdateArticle 部分更新，刷新 UpdatedAt；不存在返回 nil
func (c *Catalog) UpdateArticle(id uint64, patch ArticlePatch) *Article {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.articles.update(id, patch, c.now()).clone()
}

// DeleteArticle 删除文章并级联删除其全部标签关联，
// 同步回退相关标签的使用计数
func (c *Catalog) DeleteArticle(id uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.articles.delete(id) {
		return false
	}
	for _, tagID := range c.assocs.removeByArticle(id) {
		c.tags.adjustUsage(tagID, -1)
	}
	return true
}

// ListArticles 全量文章快照，插入顺序
func (c *Catalog) ListArticles() []*Article {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneArticles(c.articles.listAll())
}

// IncrementStat 递增互动统计，文章或字段无效返回 nil
func (c *Catalog) IncrementStat(id uint64, field StatField) *Article {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.articles.incrementStat(id, field).clone()
}

// ---- 标签 ----

// CreateTag 创建标签，重名返回 ErrDuplicateName
func (c *Catalog) CreateTag(fields TagFields) (*Tag, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.tags.create(fields, c.now())
	if t == nil {
		return nil, ErrDuplicateName
	}
	return t.clone(), nil
}

func (c *Catalog) GetTag(id uint64) *Tag {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tags.get(id).clone()
}

// GetTagByName 按名称查找，不区分大小写
func (c *Catalog) GetTagByName(name string) *Tag {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tags.getByName(name).clone()
}

func (c *Catalog) ListTags() []*Tag {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneTags(c.tags.listAll())
}

func (c *Catalog) TagsByCategory(category string) []*Tag {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneTags(c.tags.byCategory(category))
}

// DeleteTag 删除标签并级联删除引用它的全部关联
func (c *Catalog) DeleteTag(id uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.assocs.removeByTag(id)
	return c.tags.delete(id)
}

// ---- 关联 ----

// Associate 建立文章-标签关联
// 任一端不存在时返回 nil（软失败）；已有关联原样返回且不重复计数
func (c *Catalog) Associate(articleID, tagID uint64, confidence float64) *Association {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.articles.get(articleID) == nil || c.tags.get(tagID) == nil {
		return nil
	}
	at, created := c.assocs.add(articleID, tagID, confidence, c.now())
	if created {
		c.tags.adjustUsage(tagID, 1)
	}
	return at.clone()
}

// AssociateByName 按标签名关联，标签不存在时懒创建
// 用于上传路径携带纯标签名的场景
func (c *Catalog) AssociateByName(articleID uint64, fields TagFields, confidence float64) *Association {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.articles.get(articleID) == nil {
		return nil
	}
	t := c.tags.getByName(fields.Name)
	if t == nil {
		t = c.tags.create(fields, c.now())
	}
	at, created := c.assocs.add(articleID, t.ID, confidence, c.now())
	if created {
		c.tags.adjustUsage(t.ID, 1)
	}
	return at.clone()
}

// Disassociate 解除关联并回退使用计数，返回是否确有删除
func (c *Catalog) Disassociate(articleID, tagID uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.assocs.remove(articleID, tagID) {
		return false
	}
	c.tags.adjustUsage(tagID, -1)
	return true
}

// TagsFor 文章当前关联的标签快照
func (c *Catalog) TagsFor(articleID uint64) []*Tag {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var tags []*Tag
	for _, tagID := range c.assocs.tagIDsFor(articleID) {
		if t := c.tags.get(tagID); t != nil {
			tags = append(tags, t.clone())
		}
	}
	return tags
}

// ---- 分析 ----

// CreateAnalysis 记录一次文章评估
func (c *Catalog) CreateAnalysis(fields AnalysisFields) *Analysis {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.analyses.create(fields, c.now()).clone()
}

// AnalysisFor 文章的分析结果，不存在返回 nil
func (c *Catalog) AnalysisFor(articleID uint64) *Analysis {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.analyses.forArticle(articleID).clone()
}

// ---- 检索与统计 ----

// Search 组合检索，见 search.go 的谓词顺序
// 结果页内的文章同样是快照
func (c *Catalog) Search(filters SearchFilters) *SearchResult {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := c.search(filters)
	result.Articles = cloneArticles(result.Articles)
	return result
}

// AuthorStats 作者维度汇总，无命中返回 nil
func (c *Catalog) AuthorStats(authorName string) *AuthorStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.authorStats(authorName)
}

// ---- 维护 ----

// RepairReport 一次完整性巡查的结果
type RepairReport struct {
	OrphansRemoved   int `json:"orphansRemoved"`
	CountersRepaired int `json:"countersRepaired"`
}

// RepairIntegrity 完整性巡查：
// 清除两端实体已消失的关联，并按关联索引重算标签使用计数
func (c *Catalog) RepairIntegrity() RepairReport {
	c.mu.Lock()
	defer c.mu.Unlock()

	var report RepairReport
	report.OrphansRemoved = c.assocs.removeWhere(func(k assocKey) bool {
		return c.articles.get(k.articleID) == nil || c.tags.get(k.tagID) == nil
	})

	usage := make(map[uint64]int)
	for _, at := range c.assocs.listAll() {
		usage[at.TagID]++
	}
	for _, t := range c.tags.listAll() {
		if want := usage[t.ID]; t.UsageCount != want {
			t.UsageCount = want
			report.CountersRepaired++
		}
	}
	return report
}

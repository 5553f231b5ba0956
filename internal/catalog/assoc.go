package catalog

import (
	"time"
)

// Association 文章与标签之间带置信度的关联
type Association struct {
	ID         uint64    `json:"id"`
	ArticleID  uint64    `json:"articleId"`
	TagID      uint64    `json:"tagId"`
	Confidence float64   `json:"confidence"` // 标签置信度 0-1
	CreatedAt  time.Time `json:"createdAt"`
}

// clone 返回脱离索引的副本，供锁外使用
func (a *Association) clone() *Association {
	if a == nil {
		return nil
	}
	out := *a
	return &out
}

type assocKey struct {
	articleID uint64
	tagID     uint64
}

// assocIndex 文章-标签关联索引
// pairs 按 (articleID, tagID) 做去重索引，order 维护插入顺序
// ID 单调递增且删除后不复用
type assocIndex struct {
	pairs  map[assocKey]*Association
	order  []assocKey
	nextID uint64
}

func newAssocIndex() *assocIndex {
	return &assocIndex{
		pairs:  make(map[assocKey]*Association),
		nextID: 1,
	}
}

// add 追加关联；同一 (articleID, tagID) 重复添加时原样返回已有关联
// 返回值第二项表示是否新建
func (x *assocIndex) add(articleID, tagID uint64, confidence float64, now time.Time) (*Association, bool) {
	key := assocKey{articleID, tagID}
	if existing, ok := x.pairs[key]; ok {
		return existing, false
	}
	at := &Association{
		ID:         x.nextID,
		ArticleID:  articleID,
		TagID:      tagID,
		Confidence: confidence,
		CreatedAt:  now,
	}
	x.nextID++
	x.pairs[key] = at
	x.order = append(x.order, key)
	return at, true
}

func (x *assocIndex) remove(articleID, tagID uint64) bool {
	key := assocKey{articleID, tagID}
	if _, ok := x.pairs[key]; !ok {
		return false
	}
	delete(x.pairs, key)
	for i, k := range x.order {
		if k == key {
			x.order = append(x.order[:i], x.order[i+1:]...)
			break
		}
	}
	return true
}

// removeByTag 删除引用该标签的全部关联，返回删除条数
func (x *assocIndex) removeByTag(tagID uint64) int {
	return x.removeWhere(func(k assocKey) bool { return k.tagID == tagID })
}

// removeByArticle 删除引用该文章的全部关联，返回被删关联的标签 ID 列表
func (x *assocIndex) removeByArticle(articleID uint64) []uint64 {
	var tagIDs []uint64
	x.removeWhere(func(k assocKey) bool {
		if k.articleID == articleID {
			tagIDs = append(tagIDs, k.tagID)
			return true
		}
		return false
	})
	return tagIDs
}

func (x *assocIndex) removeWhere(match func(assocKey) bool) int {
	removed := 0
	kept := x.order[:0]
	for _, k := range x.order {
		if match(k) {
			delete(x.pairs, k)
			removed++
			continue
		}
		kept = append(kept, k)
	}
	x.order = kept
	return removed
}

// tagIDsFor 返回文章当前关联的标签 ID，按关联插入顺序
func (x *assocIndex) tagIDsFor(articleID uint64) []uint64 {
	var ids []uint64
	for _, k := range x.order {
		if k.articleID == articleID {
			ids = append(ids, k.tagID)
		}
	}
	return ids
}

func (x *assocIndex) listAll() []*Association {
	list := make([]*Association, 0, len(x.order))
	for _, k := range x.order {
		if at := x.pairs[k]; at != nil {
			list = append(list, at)
		}
	}
	return list
}

package catalog

import (
	"strings"
	"time"
)

// Tag 标签记录
type Tag struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	Category    string    `json:"category"` // 标签分类，如 method、domain、technique
	UsageCount  int       `json:"usageCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// clone 返回脱离注册表的副本，供锁外使用
func (t *Tag) clone() *Tag {
	if t == nil {
		return nil
	}
	out := *t
	return &out
}

func cloneTags(in []*Tag) []*Tag {
	if in == nil {
		return nil
	}
	out := make([]*Tag, len(in))
	for i, t := range in {
		out[i] = t.clone()
	}
	return out
}

// TagFields 创建标签时调用方可提供的字段
type TagFields struct {
	Name        string
	Description string
	Color       string
	Category    string
}

// tagRegistry 标签内存注册表
// byName 用小写标签名做唯一性索引，创建时即拒绝重名
type tagRegistry struct {
	tags   map[uint64]*Tag
	byName map[string]uint64
	order  []uint64
	nextID uint64
}

func newTagRegistry() *tagRegistry {
	return &tagRegistry{
		tags:   make(map[uint64]*Tag),
		byName: make(map[string]uint64),
		nextID: 1,
	}
}

// create 创建标签，重名（不区分大小写）返回 nil
func (r *tagRegistry) create(fields TagFields, now time.Time) *Tag {
	key := strings.ToLower(fields.Name)
	if _, exists := r.byName[key]; exists {
		return nil
	}
	t := &Tag{
		ID:          r.nextID,
		Name:        fields.Name,
		Description: fields.Description,
		Color:       fields.Color,
		Category:    fields.Category,
		CreatedAt:   now,
	}
	r.nextID++
	r.tags[t.ID] = t
	r.byName[key] = t.ID
	r.order = append(r.order, t.ID)
	return t
}

func (r *tagRegistry) get(id uint64) *Tag {
	return r.tags[id]
}

func (r *tagRegistry) getByName(name string) *Tag {
	id, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return nil
	}
	return r.tags[id]
}

func (r *tagRegistry) listAll() []*Tag {
	list := make([]*Tag, 0, len(r.order))
	for _, id := range r.order {
		if t := r.tags[id]; t != nil {
			list = append(list, t)
		}
	}
	return list
}

func (r *tagRegistry) byCategory(category string) []*Tag {
	var list []*Tag
	for _, id := range r.order {
		if t := r.tags[id]; t != nil && t.Category == category {
			list = append(list, t)
		}
	}
	return list
}

// adjustUsage 调整使用计数，结果不低于 0
func (r *tagRegistry) adjustUsage(id uint64, delta int) *Tag {
	t := r.tags[id]
	if t == nil {
		return nil
	}
	t.UsageCount += delta
	if t.UsageCount < 0 {
		t.UsageCount = 0
	}
	return t
}

func (r *tagRegistry) delete(id uint64) bool {
	t := r.tags[id]
	if t == nil {
		return false
	}
	delete(r.tags, id)
	delete(r.byName, strings.ToLower(t.Name))
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

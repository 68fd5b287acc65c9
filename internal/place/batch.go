/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package place

import (
	"sync"
)

// Batch 是一次捕捉会话累积的 POI 集合，以 poiid 去重。
// 重复 poiid 时后写覆盖，但保留首次出现的位置。可并发使用。
type Batch struct {
	mu     sync.RWMutex
	order  []string
	places map[string]*PlaceDetail
}

// NewBatch 创建空集合。
func NewBatch() *Batch {
	return &Batch{places: make(map[string]*PlaceDetail)}
}

// Put 追加或替换一条记录，返回是否为新 poiid。nil 记录被忽略。
func (b *Batch) Put(p *PlaceDetail) bool {
	if p == nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, exists := b.places[p.PoiID]
	if !exists {
		b.order = append(b.order, p.PoiID)
	}
	b.places[p.PoiID] = p
	return !exists
}

// Get 按 poiid 查找。
func (b *Batch) Get(poiid string) (*PlaceDetail, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	p, ok := b.places[poiid]
	return p, ok
}

// Len 返回当前记录数。
func (b *Batch) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.order)
}

// Snapshot 按插入顺序返回当前记录的副本切片，不清空集合。
func (b *Batch) Snapshot() []*PlaceDetail {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshotLocked()
}

// Drain 原子地取出全部记录并清空集合，供导出使用。
func (b *Batch) Drain() []*PlaceDetail {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.snapshotLocked()
	b.order = nil
	b.places = make(map[string]*PlaceDetail)
	return out
}

func (b *Batch) snapshotLocked() []*PlaceDetail {
	out := make([]*PlaceDetail, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.places[id])
	}
	return out
}

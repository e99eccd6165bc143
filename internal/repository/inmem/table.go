// Package inmem 提供与 gorm 仓储同接口的内存实现，用于测试和 database.driver=memory 的本地运行
package inmem

import (
	"sort"
	"sync"
	"time"

	"eduboost_backend/internal/model"

	"gorm.io/gorm"
)

type entity[T any] interface {
	*T
	Base() *model.UUIDBase
}

// table 以值拷贝保存实体，调用方拿到的指针不会影响存储内容
type table[T any, P entity[T]] struct {
	mu   sync.RWMutex
	rows map[string]T
	seq  map[string]int
	next int
}

func newTable[T any, P entity[T]]() *table[T, P] {
	return &table[T, P]{rows: make(map[string]T), seq: make(map[string]int)}
}

func (t *table[T, P]) insert(v P) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.insertLocked(v)
}

// insertUnique 在同一把写锁内检查冲突并插入，已有行满足 conflict 时返回 ErrDuplicatedKey
func (t *table[T, P]) insertUnique(v P, conflict func(*T) bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, row := range t.rows {
		if conflict(&row) {
			return gorm.ErrDuplicatedKey
		}
	}
	return t.insertLocked(v)
}

func (t *table[T, P]) insertLocked(v P) error {
	b := v.Base()
	b.EnsureID()
	if _, exists := t.rows[b.ID]; exists {
		return gorm.ErrDuplicatedKey
	}
	now := time.Now()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now

	t.rows[b.ID] = *v
	t.seq[b.ID] = t.next
	t.next++
	return nil
}

// save 存在则覆盖，不存在则插入
func (t *table[T, P]) save(v P) error {
	t.mu.Lock()
	b := v.Base()
	_, exists := t.rows[b.ID]
	if exists {
		b.UpdatedAt = time.Now()
		t.rows[b.ID] = *v
	}
	t.mu.Unlock()

	if exists {
		return nil
	}
	return t.insert(v)
}

func (t *table[T, P]) get(id string) (P, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return P(&row), nil
}

func (t *table[T, P]) remove(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.rows, id)
	delete(t.seq, id)
	return nil
}

// first 按插入顺序返回第一个满足条件的实体
func (t *table[T, P]) first(match func(*T) bool) (P, error) {
	rows := t.filter(match)
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return P(&rows[0]), nil
}

// filter 按插入顺序返回满足条件的实体拷贝
func (t *table[T, P]) filter(match func(*T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := make([]string, 0, len(t.rows))
	for id, row := range t.rows {
		if match == nil || match(&row) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return t.seq[ids[i]] < t.seq[ids[j]] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.rows[id])
	}
	return out
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

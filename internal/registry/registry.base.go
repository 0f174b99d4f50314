// Package registry cung cấp registry generic, thread-safe để quản lý các singleton instances
// (collection MongoDB, service dùng chung) trong ứng dụng.
package registry

import (
	"errors"
	"sync"
)

// ErrEmptyName trả về khi đăng ký với tên rỗng
var ErrEmptyName = errors.New("registry: name cannot be empty")

// Registry là một thread-safe generic registry.
//
// Example:
//
//	colls := NewRegistry[*mongo.Collection]()
//	colls.Register("products", db.Collection("products"))
//	if c, ok := colls.Get("products"); ok {
//	    ...
//	}
type Registry[T any] struct {
	items map[string]T // Map lưu trữ các items theo key
	mu    sync.RWMutex
}

// NewRegistry tạo và trả về một registry mới.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		items: make(map[string]T),
	}
}

// Register đăng ký một item mới vào registry, ghi đè nếu trùng tên.
//
// Returns:
//   - isNew: true nếu là item mới, false nếu ghi đè item cũ
//   - err: lỗi nếu name rỗng
func (r *Registry[T]) Register(name string, item T) (isNew bool, err error) {
	if name == "" {
		return false, ErrEmptyName
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.items[name]
	r.items[name] = item
	return !exists, nil
}

// Get lấy item theo tên.
func (r *Registry[T]) Get(name string) (item T, exists bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, exists = r.items[name]
	return item, exists
}

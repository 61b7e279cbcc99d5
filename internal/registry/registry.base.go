// Package registry cung cấp registry generic thread-safe cho các singleton
// dùng chung toàn ứng dụng (collection MongoDB, cache...).
package registry

import (
	"fmt"
	"sync"

	"video_tube/internal/common"
)

// Registry lưu item theo tên. Mọi thao tác an toàn khi gọi đồng thời.
//
//	colRegistry := NewRegistry[*mongo.Collection]()
//	colRegistry.Register("videos", coll)
//	coll := colRegistry.MustGet("videos")
type Registry[T any] struct {
	items map[string]T
	mu    sync.RWMutex
}

// NewRegistry tạo registry rỗng.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{items: make(map[string]T)}
}

// Register đăng ký item dưới tên name; tên đã tồn tại thì ghi đè.
// isNew = false báo đã ghi đè item cũ. Tên rỗng là lỗi.
func (r *Registry[T]) Register(name string, item T) (isNew bool, err error) {
	if name == "" {
		return false, fmt.Errorf("name cannot be empty: %w", common.ErrRequiredField)
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

// MustGet lấy item theo tên, panic nếu chưa đăng ký. Chỉ dùng lúc khởi tạo,
// khi item vắng mặt là lỗi cấu hình không thể phục hồi.
func (r *Registry[T]) MustGet(name string) T {
	item, exists := r.Get(name)
	if !exists {
		panic(fmt.Sprintf("registry: item %q chưa được đăng ký", name))
	}
	return item
}


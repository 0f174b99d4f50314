// Package basesvctest cung cấp fake Repository ghi lại mọi lời gọi, dùng cho test các domain service.
package basesvctest

import (
	"context"
	"sync"

	basequery "jammshop/internal/api/base/query"
	basesvc "jammshop/internal/api/base/service"
	"jammshop/internal/common"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FakeRepo cài đặt basesvc.Repository. Hàm XxxFn nil thì trả về giá trị rỗng.
type FakeRepo[T any] struct {
	mu    sync.Mutex
	calls []string

	InsertOneFn          func(ctx context.Context, data T) (T, error)
	FindOneFn            func(ctx context.Context, filter interface{}) (T, error)
	FindFn               func(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error)
	FindOneByIdFn        func(ctx context.Context, id interface{}) (T, error)
	FindManyByIdsFn      func(ctx context.Context, ids interface{}) ([]T, error)
	FindWithPaginationFn func(ctx context.Context, filter interface{}, page basequery.PageSpec, sort basequery.SortSpec) ([]T, int64, error)
	UpdateByIdFn         func(ctx context.Context, id interface{}, set bson.M) (T, error)
	DeleteByIdFn         func(ctx context.Context, id interface{}) error
	CountDocumentsFn     func(ctx context.Context, filter interface{}) (int64, error)
	AggregateFn          func(ctx context.Context, pipeline interface{}, results interface{}) error

	// Tham số của lần gọi gần nhất
	LastFilter   interface{}
	LastPage     basequery.PageSpec
	LastSort     basequery.SortSpec
	LastSet      bson.M
	LastID       interface{}
	LastIDs      interface{}
	LastInsert   T
	LastPipeline interface{}
}

func (f *FakeRepo[T]) record(name string, capture func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	capture()
}

// Calls trả về danh sách method đã được gọi theo thứ tự
func (f *FakeRepo[T]) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// Called đếm số lần method được gọi
func (f *FakeRepo[T]) Called(name string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == name {
			n++
		}
	}
	return n
}

func (f *FakeRepo[T]) InsertOne(ctx context.Context, data T) (T, error) {
	f.record("InsertOne", func() {
		f.LastInsert = data
	})
	if f.InsertOneFn != nil {
		return f.InsertOneFn(ctx, data)
	}
	return data, nil
}

func (f *FakeRepo[T]) FindOne(ctx context.Context, filter interface{}, _ *options.FindOneOptions) (T, error) {
	f.record("FindOne", func() {
		f.LastFilter = filter
	})
	if f.FindOneFn != nil {
		return f.FindOneFn(ctx, filter)
	}
	var zero T
	return zero, common.ErrNotFound
}

func (f *FakeRepo[T]) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error) {
	f.record("Find", func() {
		f.LastFilter = filter
	})
	if f.FindFn != nil {
		return f.FindFn(ctx, filter, opts)
	}
	return []T{}, nil
}

func (f *FakeRepo[T]) FindOneById(ctx context.Context, id interface{}) (T, error) {
	f.record("FindOneById", func() {
		f.LastID = id
	})
	if f.FindOneByIdFn != nil {
		return f.FindOneByIdFn(ctx, id)
	}
	var zero T
	return zero, common.ErrNotFound
}

func (f *FakeRepo[T]) FindManyByIds(ctx context.Context, ids interface{}) ([]T, error) {
	f.record("FindManyByIds", func() {
		f.LastIDs = ids
	})
	if f.FindManyByIdsFn != nil {
		return f.FindManyByIdsFn(ctx, ids)
	}
	return []T{}, nil
}

func (f *FakeRepo[T]) FindWithPagination(ctx context.Context, filter interface{}, page basequery.PageSpec, sort basequery.SortSpec) (*basequery.Envelope[T], error) {
	f.record("FindWithPagination", func() {
		f.LastFilter = filter
		f.LastPage = page
		f.LastSort = sort
	})
	if f.FindWithPaginationFn != nil {
		items, total, err := f.FindWithPaginationFn(ctx, filter, page, sort)
		if err != nil {
			return nil, err
		}
		return basequery.NewEnvelope(items, page, total), nil
	}
	return basequery.NewEnvelope[T](nil, page, 0), nil
}

func (f *FakeRepo[T]) UpdateById(ctx context.Context, id interface{}, set bson.M) (T, error) {
	f.record("UpdateById", func() {
		f.LastID = id
		f.LastSet = set
	})
	if f.UpdateByIdFn != nil {
		return f.UpdateByIdFn(ctx, id, set)
	}
	var zero T
	return zero, nil
}

func (f *FakeRepo[T]) DeleteById(ctx context.Context, id interface{}) error {
	f.record("DeleteById", func() {
		f.LastID = id
	})
	if f.DeleteByIdFn != nil {
		return f.DeleteByIdFn(ctx, id)
	}
	return nil
}

func (f *FakeRepo[T]) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	f.record("CountDocuments", func() {
		f.LastFilter = filter
	})
	if f.CountDocumentsFn != nil {
		return f.CountDocumentsFn(ctx, filter)
	}
	return 0, nil
}

func (f *FakeRepo[T]) Aggregate(ctx context.Context, pipeline interface{}, results interface{}) error {
	f.record("Aggregate", func() {
		f.LastPipeline = pipeline
	})
	if f.AggregateFn != nil {
		return f.AggregateFn(ctx, pipeline, results)
	}
	return nil
}

var _ basesvc.Repository[struct{}] = (*FakeRepo[struct{}])(nil)

// package basesvc cung cấp các service cơ bản cho việc tương tác với MongoDB
package basesvc

import (
	"context"
	"errors"

	basequery "jammshop/internal/api/base/query"
	"jammshop/internal/common"
	"jammshop/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ====================================
// INTERFACE VÀ STRUCT
// ====================================

// Repository là tập thao tác store mà các domain service dùng.
// BaseServiceMongoImpl là implementation thật, test dùng fake.
type Repository[T any] interface {
	InsertOne(ctx context.Context, data T) (T, error)
	FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error)
	Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error)
	FindOneById(ctx context.Context, id interface{}) (T, error)
	FindManyByIds(ctx context.Context, ids interface{}) ([]T, error)
	FindWithPagination(ctx context.Context, filter interface{}, page basequery.PageSpec, sort basequery.SortSpec) (*basequery.Envelope[T], error)
	UpdateById(ctx context.Context, id interface{}, set bson.M) (T, error)
	DeleteById(ctx context.Context, id interface{}) error
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
	Aggregate(ctx context.Context, pipeline interface{}, results interface{}) error
}

// BaseServiceMongoImpl là implementation Repository trên một collection MongoDB
type BaseServiceMongoImpl[T any] struct {
	collection *mongo.Collection // Collection MongoDB
}

// NewBaseServiceMongo tạo mới một BaseServiceMongoImpl
func NewBaseServiceMongo[T any](collection *mongo.Collection) *BaseServiceMongoImpl[T] {
	return &BaseServiceMongoImpl[T]{
		collection: collection,
	}
}

// ====================================
// NHÓM 1: CÁC HÀM CHUẨN MONGODB DRIVER
// ====================================

// InsertOne tạo mới một bản ghi, tự gán created_at/updated_at nếu đang trống
func (s *BaseServiceMongoImpl[T]) InsertOne(ctx context.Context, data T) (T, error) {
	var zero T

	dataMap, err := utility.ToMap(data)
	if err != nil {
		return zero, common.ErrInvalidFormat
	}

	now := utility.CurrentTimeInMilli()
	if v, ok := dataMap["created_at"].(int64); !ok || v == 0 {
		dataMap["created_at"] = now
	}
	dataMap["updated_at"] = now

	result, err := s.collection.InsertOne(ctx, dataMap)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}

	// Lấy lại document vừa tạo
	var created T
	if err := s.collection.FindOne(ctx, bson.M{"_id": result.InsertedID}).Decode(&created); err != nil {
		return zero, common.ConvertMongoError(err)
	}
	return created, nil
}

// FindOne tìm một document theo điều kiện lọc
func (s *BaseServiceMongoImpl[T]) FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error) {
	var result T
	if filter == nil {
		filter = bson.D{}
	}
	if opts == nil {
		opts = options.FindOne()
	}

	if err := s.collection.FindOne(ctx, filter, opts).Decode(&result); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return result, common.ErrNotFound
		}
		return result, common.ConvertMongoError(err)
	}
	return result, nil
}

// Find tìm tất cả bản ghi theo điều kiện lọc, luôn trả về slice khác nil
func (s *BaseServiceMongoImpl[T]) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error) {
	if filter == nil {
		filter = bson.D{}
	}
	if opts == nil {
		opts = options.Find()
	}

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	results := []T{}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return results, nil
}

// CountDocuments đếm số lượng document
func (s *BaseServiceMongoImpl[T]) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	if filter == nil {
		filter = bson.D{}
	}
	count, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return count, nil
}

// Aggregate chạy pipeline và decode toàn bộ kết quả vào results (con trỏ tới slice)
func (s *BaseServiceMongoImpl[T]) Aggregate(ctx context.Context, pipeline interface{}, results interface{}) error {
	cursor, err := s.collection.Aggregate(ctx, pipeline, options.Aggregate())
	if err != nil {
		return common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	if results == nil {
		return nil
	}
	if err := cursor.All(ctx, results); err != nil {
		return common.ConvertMongoError(err)
	}
	return nil
}

// ====================================
// NHÓM 2: CÁC HÀM TIỆN ÍCH MỞ RỘNG
// ====================================

// FindOneById tìm một document theo _id (ObjectID hoặc chuỗi với profiles)
func (s *BaseServiceMongoImpl[T]) FindOneById(ctx context.Context, id interface{}) (T, error) {
	return s.FindOne(ctx, bson.M{"_id": id}, nil)
}

// FindManyByIds tìm nhiều document theo danh sách _id, không đảm bảo thứ tự
func (s *BaseServiceMongoImpl[T]) FindManyByIds(ctx context.Context, ids interface{}) ([]T, error) {
	return s.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, nil)
}

// FindWithPagination đếm tổng rồi đọc một trang theo sort đã whitelist
func (s *BaseServiceMongoImpl[T]) FindWithPagination(ctx context.Context, filter interface{}, page basequery.PageSpec, sort basequery.SortSpec) (*basequery.Envelope[T], error) {
	if filter == nil {
		filter = bson.D{}
	}

	total, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	opts := options.Find().
		SetSort(sort.Bson()).
		SetSkip(page.Offset()).
		SetLimit(page.PageSize)

	items, err := s.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	return basequery.NewEnvelope(items, page, total), nil
}

// UpdateById $set các field và trả về document sau khi cập nhật
func (s *BaseServiceMongoImpl[T]) UpdateById(ctx context.Context, id interface{}, set bson.M) (T, error) {
	var updated T
	if len(set) == 0 {
		return updated, common.ErrNoUpdatableFields
	}

	fields := bson.M{}
	for k, v := range set {
		fields[k] = v
	}
	fields["updated_at"] = utility.CurrentTimeInMilli()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return updated, common.ErrNotFound
		}
		return updated, common.ConvertMongoError(err)
	}
	return updated, nil
}

// DeleteById xóa một document theo _id
func (s *BaseServiceMongoImpl[T]) DeleteById(ctx context.Context, id interface{}) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return common.ConvertMongoError(err)
	}
	if result.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

var _ Repository[struct{}] = (*BaseServiceMongoImpl[struct{}])(nil)

// Package brandsvc - service thương hiệu: danh sách, tra cứu theo slug, CRUD admin và đếm lại sản phẩm.
package brandsvc

import (
	"context"
	"fmt"
	"strings"

	basepatch "jammshop/internal/api/base/patch"
	basequery "jammshop/internal/api/base/query"
	basesvc "jammshop/internal/api/base/service"
	branddto "jammshop/internal/api/brand/dto"
	models "jammshop/internal/api/brand/models"
	catalogmodels "jammshop/internal/api/catalog/models"
	"jammshop/internal/common"
	"jammshop/internal/global"
	"jammshop/internal/logger"
	"jammshop/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BrandSortFields là các field được phép sort
var BrandSortFields = []string{"name", "product_count", "created_at"}

// BrandWhitelist là các field admin được phép sửa
var BrandWhitelist = basepatch.Whitelist{
	"name":      {Kind: basepatch.Text},
	"type":      {Kind: basepatch.Enum, Values: models.BrandTypes},
	"is_active": {Kind: basepatch.Bool},
	"logo_url":  {Kind: basepatch.Text},
	"website":   {Kind: basepatch.Text},
	"slug":      {Kind: basepatch.Slug},
}

// BrandService thao tác trên brands, đếm sản phẩm qua products
type BrandService struct {
	brands   basesvc.Repository[models.Brand]
	products basesvc.Repository[catalogmodels.Product]
}

// NewBrandService tạo mới BrandService
func NewBrandService() (*BrandService, error) {
	brandCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Brands)
	if !exist {
		return nil, fmt.Errorf("failed to get brands collection: %v", common.ErrNotFound)
	}
	productCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Products)
	if !exist {
		return nil, fmt.Errorf("failed to get products collection: %v", common.ErrNotFound)
	}
	return NewBrandServiceWith(
		basesvc.NewBaseServiceMongo[models.Brand](brandCollection),
		basesvc.NewBaseServiceMongo[catalogmodels.Product](productCollection),
	), nil
}

// NewBrandServiceWith tạo BrandService trên các repository có sẵn
func NewBrandServiceWith(brands basesvc.Repository[models.Brand], products basesvc.Repository[catalogmodels.Product]) *BrandService {
	return &BrandService{brands: brands, products: products}
}

// ListParams tham số danh sách thương hiệu.
// Active rỗng dùng DefaultActive, "all" bỏ lọc.
type ListParams struct {
	Search        string
	Type          string
	Active        string
	DefaultActive string
	Page          basequery.PageSpec
	Sort          basequery.SortSpec
}

// ListFilter dựng filter danh sách thương hiệu
func ListFilter(p ListParams) bson.M {
	active := strings.TrimSpace(p.Active)
	if active == "" {
		active = p.DefaultActive
	}
	return basequery.NewFilter().
		Search(p.Search, "name").
		Eq("type", p.Type).
		Flag("is_active", active).
		Bson()
}

// List liệt kê thương hiệu
func (s *BrandService) List(ctx context.Context, p ListParams) (*basequery.Envelope[models.Brand], error) {
	return s.brands.FindWithPagination(ctx, ListFilter(p), p.Page, p.Sort)
}

// GetBySlug lấy thương hiệu đang hoạt động theo slug
func (s *BrandService) GetBySlug(ctx context.Context, slug string) (models.Brand, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return models.Brand{}, common.ErrNotFound
	}
	return s.brands.FindOne(ctx, bson.M{"slug": slug, "is_active": true}, nil)
}

// Create tạo thương hiệu, slug suy ra từ tên, loại mặc định là other
func (s *BrandService) Create(ctx context.Context, input branddto.BrandCreateInput) (models.Brand, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.Brand{}, common.ErrNameRequired
	}
	slug := utility.Slugify(input.Slug)
	if slug == "" {
		slug = utility.Slugify(name)
	}
	if slug == "" {
		return models.Brand{}, common.ValidationError("name must contain letters or digits", nil)
	}
	brandType := strings.TrimSpace(input.Type)
	if brandType == "" {
		brandType = models.BrandTypeOther
	}
	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}
	return s.brands.InsertOne(ctx, models.Brand{
		Name:     name,
		Slug:     slug,
		Type:     brandType,
		IsActive: active,
		LogoURL:  strings.TrimSpace(input.LogoURL),
		Website:  strings.TrimSpace(input.Website),
	})
}

// Update áp dụng partial update theo BrandWhitelist
func (s *BrandService) Update(ctx context.Context, id primitive.ObjectID, body map[string]interface{}) (models.Brand, error) {
	set, err := BrandWhitelist.Apply(body)
	if err != nil {
		return models.Brand{}, err
	}
	if name, ok := set["name"]; ok && name == "" {
		return models.Brand{}, common.ErrNameRequired
	}
	return s.brands.UpdateById(ctx, id, set)
}

// Delete xoá thương hiệu
func (s *BrandService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.brands.DeleteById(ctx, id)
}

type brandCount struct {
	ID    primitive.ObjectID `bson:"_id"`
	Count int64              `bson:"count"`
}

// ProductCountPipeline đếm sản phẩm đang bán theo brand_id
func ProductCountPipeline() bson.A {
	return bson.A{
		bson.M{"$match": bson.M{"is_active": true, "brand_id": bson.M{"$ne": nil}}},
		bson.M{"$group": bson.M{"_id": "$brand_id", "count": bson.M{"$sum": 1}}},
	}
}

// RefreshResult là kết quả một lần đếm lại
type RefreshResult struct {
	Brands  int `json:"brands"`
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}

// RefreshProductCounts đếm lại product_count cho mọi thương hiệu (0 với thương hiệu không có sản phẩm).
// Chỉ ghi những thương hiệu có số đếm thay đổi, lỗi ghi một thương hiệu không dừng vòng lặp.
func (s *BrandService) RefreshProductCounts(ctx context.Context) (RefreshResult, error) {
	var result RefreshResult

	var rows []brandCount
	if err := s.products.Aggregate(ctx, ProductCountPipeline(), &rows); err != nil {
		return result, err
	}
	counts := make(map[primitive.ObjectID]int64, len(rows))
	for _, r := range rows {
		counts[r.ID] = r.Count
	}

	opts := options.Find().SetProjection(bson.M{"_id": 1, "product_count": 1})
	brands, err := s.brands.Find(ctx, bson.M{}, opts)
	if err != nil {
		return result, err
	}
	result.Brands = len(brands)

	log := logger.WithModule("brand")
	for _, b := range brands {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		count := counts[b.ID]
		if b.ProductCount == count {
			continue
		}
		if _, err := s.brands.UpdateById(ctx, b.ID, bson.M{"product_count": count}); err != nil {
			result.Failed++
			log.WithError(err).WithField("brand_id", b.ID.Hex()).Warn("Failed to update product count")
			continue
		}
		result.Updated++
	}
	return result, nil
}

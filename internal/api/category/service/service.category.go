// Package categorysvc - service danh mục: CRUD admin, danh sách công khai và đếm sản phẩm.
package categorysvc

import (
	"context"
	"fmt"
	"strings"

	basepatch "jammshop/internal/api/base/patch"
	basequery "jammshop/internal/api/base/query"
	basesvc "jammshop/internal/api/base/service"
	catalogmodels "jammshop/internal/api/catalog/models"
	categorydto "jammshop/internal/api/category/dto"
	models "jammshop/internal/api/category/models"
	"jammshop/internal/common"
	"jammshop/internal/global"
	"jammshop/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CategorySortFields là các field được phép sort
var CategorySortFields = []string{"created_at", "name", "slug"}

// CategoryWhitelist là các field admin được phép sửa
var CategoryWhitelist = basepatch.Whitelist{
	"name":        {Kind: basepatch.Text},
	"description": {Kind: basepatch.Text},
	"image_url":   {Kind: basepatch.Text},
	"slug":        {Kind: basepatch.Slug},
}

// CategoryService thao tác trên categories, đếm sản phẩm qua products
type CategoryService struct {
	categories basesvc.Repository[models.Category]
	products   basesvc.Repository[catalogmodels.Product]
}

// NewCategoryService tạo mới CategoryService
func NewCategoryService() (*CategoryService, error) {
	categoryCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Categories)
	if !exist {
		return nil, fmt.Errorf("failed to get categories collection: %v", common.ErrNotFound)
	}
	productCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Products)
	if !exist {
		return nil, fmt.Errorf("failed to get products collection: %v", common.ErrNotFound)
	}
	return NewCategoryServiceWith(
		basesvc.NewBaseServiceMongo[models.Category](categoryCollection),
		basesvc.NewBaseServiceMongo[catalogmodels.Product](productCollection),
	), nil
}

// NewCategoryServiceWith tạo CategoryService trên các repository có sẵn
func NewCategoryServiceWith(categories basesvc.Repository[models.Category], products basesvc.Repository[catalogmodels.Product]) *CategoryService {
	return &CategoryService{categories: categories, products: products}
}

// countRow là một dòng kết quả $group theo category_id
type countRow struct {
	ID    primitive.ObjectID `bson:"_id"`
	Count int64              `bson:"count"`
}

// CountPipeline dựng pipeline đếm sản phẩm theo category_id trong tập ids
func CountPipeline(ids []primitive.ObjectID, activeOnly bool) bson.A {
	match := bson.M{"category_id": bson.M{"$in": ids}}
	if activeOnly {
		match["is_active"] = true
	}
	return bson.A{
		bson.M{"$match": match},
		bson.M{"$group": bson.M{"_id": "$category_id", "count": bson.M{"$sum": 1}}},
	}
}

// withCounts gắn product_count cho các danh mục bằng một lần aggregate
func (s *CategoryService) withCounts(ctx context.Context, categories []models.Category, activeOnly bool) ([]models.CategoryWithCount, error) {
	out := make([]models.CategoryWithCount, 0, len(categories))
	if len(categories) == 0 {
		return out, nil
	}

	ids := make([]primitive.ObjectID, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID)
	}
	var rows []countRow
	if err := s.products.Aggregate(ctx, CountPipeline(ids, activeOnly), &rows); err != nil {
		return nil, err
	}
	counts := make(map[primitive.ObjectID]int64, len(rows))
	for _, r := range rows {
		counts[r.ID] = r.Count
	}

	for _, c := range categories {
		out = append(out, models.CategoryWithCount{Category: c, ProductCount: counts[c.ID]})
	}
	return out, nil
}

// ListParams tham số danh sách danh mục
type ListParams struct {
	Search string
	Page   basequery.PageSpec
	Sort   basequery.SortSpec
}

// List liệt kê danh mục cho admin kèm product_count
func (s *CategoryService) List(ctx context.Context, p ListParams) (*basequery.Envelope[models.CategoryWithCount], error) {
	filter := basequery.NewFilter().Search(p.Search, "name", "slug")
	env, err := s.categories.FindWithPagination(ctx, filter.Bson(), p.Page, p.Sort)
	if err != nil {
		return nil, err
	}
	items, err := s.withCounts(ctx, env.Data, false)
	if err != nil {
		return nil, err
	}
	return basequery.NewEnvelope(items, p.Page, env.Total), nil
}

// ListPublic trả về toàn bộ danh mục theo tên, đếm sản phẩm đang bán
func (s *CategoryService) ListPublic(ctx context.Context) ([]models.CategoryWithCount, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})
	categories, err := s.categories.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	return s.withCounts(ctx, categories, true)
}

// Create tạo danh mục, slug suy ra từ tên khi không truyền
func (s *CategoryService) Create(ctx context.Context, input categorydto.CategoryCreateInput) (models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.Category{}, common.ErrNameRequired
	}
	slug := utility.Slugify(input.Slug)
	if slug == "" {
		slug = utility.Slugify(name)
	}
	if slug == "" {
		return models.Category{}, common.ValidationError("name must contain letters or digits", nil)
	}
	return s.categories.InsertOne(ctx, models.Category{
		Name:        name,
		Slug:        slug,
		Description: strings.TrimSpace(input.Description),
		ImageURL:    strings.TrimSpace(input.ImageURL),
	})
}

// Update áp dụng partial update theo CategoryWhitelist. Đổi tên không sinh lại slug.
func (s *CategoryService) Update(ctx context.Context, id primitive.ObjectID, body map[string]interface{}) (models.Category, error) {
	set, err := CategoryWhitelist.Apply(body)
	if err != nil {
		return models.Category{}, err
	}
	if name, ok := set["name"]; ok && name == "" {
		return models.Category{}, common.ErrNameRequired
	}
	return s.categories.UpdateById(ctx, id, set)
}

// Delete xoá danh mục
func (s *CategoryService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.categories.DeleteById(ctx, id)
}

// Package catalogsvc - service sản phẩm: danh sách công khai, tìm kiếm và quản trị.
package catalogsvc

import (
	"context"
	"fmt"
	"strings"

	basepatch "jammshop/internal/api/base/patch"
	basequery "jammshop/internal/api/base/query"
	basesvc "jammshop/internal/api/base/service"
	catalogdto "jammshop/internal/api/catalog/dto"
	models "jammshop/internal/api/catalog/models"
	"jammshop/internal/common"
	"jammshop/internal/global"
	"jammshop/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LowStockThreshold: tồn kho <= ngưỡng này (và > 0) được xem là sắp hết
const LowStockThreshold = 5

// ProductSortFields là các field được phép sort
var ProductSortFields = []string{"created_at", "price", "name", "stock_quantity"}

// ProductWhitelist là các field admin được phép sửa
var ProductWhitelist = basepatch.Whitelist{
	"name":             {Kind: basepatch.Text},
	"sku":              {Kind: basepatch.Text},
	"description":      {Kind: basepatch.Text},
	"price":            {Kind: basepatch.Number},
	"compare_at_price": {Kind: basepatch.Number},
	"stock_quantity":   {Kind: basepatch.NonNegInt},
	"is_active":        {Kind: basepatch.Bool},
	"is_featured":      {Kind: basepatch.Bool},
	"category_id":      {Kind: basepatch.ObjectID},
	"brand_id":         {Kind: basepatch.ObjectID},
	"image_url":        {Kind: basepatch.Text},
}

// ProductService thao tác trên collection products
type ProductService struct {
	products basesvc.Repository[models.Product]
}

// NewProductService tạo mới ProductService
func NewProductService() (*ProductService, error) {
	productCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Products)
	if !exist {
		return nil, fmt.Errorf("failed to get products collection: %v", common.ErrNotFound)
	}
	return NewProductServiceWith(basesvc.NewBaseServiceMongo[models.Product](productCollection)), nil
}

// NewProductServiceWith tạo ProductService trên repository có sẵn
func NewProductServiceWith(products basesvc.Repository[models.Product]) *ProductService {
	return &ProductService{products: products}
}

// Repository trả về repository sản phẩm (dùng cho đồng bộ bên ngoài)
func (s *ProductService) Repository() basesvc.Repository[models.Product] {
	return s.products
}

// PublicListParams tham số danh sách sản phẩm công khai
type PublicListParams struct {
	Search   string
	Category string
	Brand    string
	MinPrice string
	MaxPrice string
	InStock  string
	Featured string
	Page     basequery.PageSpec
	Sort     basequery.SortSpec
}

// stockFilter: "true" -> còn hàng, "false" -> hết hàng
func stockFilter(f *basequery.Filter, raw string) *basequery.Filter {
	inStock, err := utility.ToBool(raw)
	if strings.TrimSpace(raw) == "" || err != nil {
		return f
	}
	if inStock {
		return f.Raw(bson.M{"stock_quantity": bson.M{"$gt": 0}})
	}
	return f.Raw(bson.M{"stock_quantity": bson.M{"$lte": 0}})
}

// PublicFilter dựng filter danh sách công khai (chỉ sản phẩm đang bán)
func PublicFilter(p PublicListParams) bson.M {
	f := basequery.NewFilter().
		EqValue("is_active", true).
		Search(p.Search, "name", "sku").
		ObjectID("category_id", p.Category).
		ObjectID("brand_id", p.Brand).
		NumberRange("price", p.MinPrice, p.MaxPrice).
		Flag("is_featured", p.Featured)
	return stockFilter(f, p.InStock).Bson()
}

// ListPublic liệt kê sản phẩm đang bán
func (s *ProductService) ListPublic(ctx context.Context, p PublicListParams) (*basequery.Envelope[models.Product], error) {
	return s.products.FindWithPagination(ctx, PublicFilter(p), p.Page, p.Sort)
}

// GetPublic lấy sản phẩm đang bán theo id
func (s *ProductService) GetPublic(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	return s.products.FindOne(ctx, bson.M{"_id": id, "is_active": true}, nil)
}

// Search tìm sản phẩm đang bán theo tên, SKU, mô tả. Từ khoá rỗng trả về trang rỗng.
func (s *ProductService) Search(ctx context.Context, term string, page basequery.PageSpec) (*basequery.Envelope[models.Product], error) {
	if strings.TrimSpace(term) == "" {
		return basequery.NewEnvelope[models.Product](nil, page, 0), nil
	}
	filter := basequery.NewFilter().
		EqValue("is_active", true).
		Search(term, "name", "sku", "description")
	sort := basequery.SortSpec{Field: "name"}
	return s.products.FindWithPagination(ctx, filter.Bson(), page, sort)
}

// AdminListParams tham số danh sách sản phẩm cho admin
type AdminListParams struct {
	Search   string
	Status   string // active | inactive | all
	Category string
	Brand    string
	Stock    string // low | out | all
	Page     basequery.PageSpec
	Sort     basequery.SortSpec
}

// AdminFilter dựng filter danh sách admin
func AdminFilter(p AdminListParams) bson.M {
	f := basequery.NewFilter().
		Search(p.Search, "name", "sku").
		ObjectID("category_id", p.Category).
		ObjectID("brand_id", p.Brand)

	switch strings.ToLower(strings.TrimSpace(p.Status)) {
	case "active":
		f.EqValue("is_active", true)
	case "inactive":
		f.EqValue("is_active", false)
	}

	switch strings.ToLower(strings.TrimSpace(p.Stock)) {
	case "low":
		f.Raw(bson.M{"stock_quantity": bson.M{"$gt": 0, "$lte": LowStockThreshold}})
	case "out":
		f.Raw(bson.M{"stock_quantity": bson.M{"$lte": 0}})
	}
	return f.Bson()
}

// ListAdmin liệt kê mọi sản phẩm cho admin
func (s *ProductService) ListAdmin(ctx context.Context, p AdminListParams) (*basequery.Envelope[models.Product], error) {
	return s.products.FindWithPagination(ctx, AdminFilter(p), p.Page, p.Sort)
}

// Get lấy sản phẩm theo id (kể cả đang ẩn)
func (s *ProductService) Get(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	return s.products.FindOneById(ctx, id)
}

// optionalObjectID: chuỗi rỗng -> nil
func optionalObjectID(hex string) *primitive.ObjectID {
	hex = strings.TrimSpace(hex)
	if hex == "" {
		return nil
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return nil
	}
	return &id
}

// Create tạo sản phẩm mới. Slug suy ra từ tên khi không truyền, tồn kho âm được kẹp về 0.
func (s *ProductService) Create(ctx context.Context, input catalogdto.ProductCreateInput) (models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.Product{}, common.ErrNameRequired
	}
	if input.Price == nil {
		return models.Product{}, common.ValidationError("price is required", nil)
	}

	slug := utility.Slugify(input.Slug)
	if slug == "" {
		slug = utility.Slugify(name)
	}
	stock := input.StockQuantity
	if stock < 0 {
		stock = 0
	}
	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	product := models.Product{
		Name:           name,
		Slug:           slug,
		SKU:            strings.TrimSpace(input.SKU),
		Description:    strings.TrimSpace(input.Description),
		Price:          *input.Price,
		CompareAtPrice: input.CompareAtPrice,
		StockQuantity:  stock,
		IsActive:       active,
		IsFeatured:     input.IsFeatured,
		CategoryID:     optionalObjectID(input.CategoryID),
		BrandID:        optionalObjectID(input.BrandID),
		ImageURL:       strings.TrimSpace(input.ImageURL),
		ExternalSource: strings.TrimSpace(input.ExternalSource),
		ExternalID:     strings.TrimSpace(input.ExternalID),
	}
	return s.products.InsertOne(ctx, product)
}

// Update áp dụng partial update theo ProductWhitelist
func (s *ProductService) Update(ctx context.Context, id primitive.ObjectID, body map[string]interface{}) (models.Product, error) {
	set, err := ProductWhitelist.Apply(body)
	if err != nil {
		return models.Product{}, err
	}
	return s.products.UpdateById(ctx, id, set)
}

// Delete xoá sản phẩm
func (s *ProductService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.products.DeleteById(ctx, id)
}

// ListExternal trả về các sản phẩm có nguồn bên ngoài
func (s *ProductService) ListExternal(ctx context.Context) ([]models.Product, error) {
	return s.products.Find(ctx, bson.M{
		"external_source": bson.M{"$exists": true, "$ne": ""},
		"external_id":     bson.M{"$exists": true, "$ne": ""},
	}, nil)
}

// ApplyQuote ghi giá/tồn kho mới từ nhà cung cấp
func (s *ProductService) ApplyQuote(ctx context.Context, id primitive.ObjectID, price float64, stock int64) (models.Product, error) {
	if stock < 0 {
		stock = 0
	}
	return s.products.UpdateById(ctx, id, bson.M{"price": price, "stock_quantity": stock})
}

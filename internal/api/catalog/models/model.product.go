// Package models - sản phẩm (Product) thuộc domain catalog.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Product là một mặt hàng trong catalog.
// ExternalSource/ExternalID trỏ tới bản ghi ở nhà cung cấp bên ngoài (đồng bộ giá/tồn kho).
type Product struct {
	ID             primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name           string              `json:"name" bson:"name" index:"single"`
	Slug           string              `json:"slug" bson:"slug" index:"single"`
	SKU            string              `json:"sku" bson:"sku" index:"single"`
	Description    string              `json:"description" bson:"description"`
	Price          float64             `json:"price" bson:"price" index:"single"`
	CompareAtPrice *float64            `json:"compare_at_price" bson:"compare_at_price"`
	StockQuantity  int64               `json:"stock_quantity" bson:"stock_quantity"`
	IsActive       bool                `json:"is_active" bson:"is_active" index:"compound:active_created"`
	IsFeatured     bool                `json:"is_featured" bson:"is_featured"`
	CategoryID     *primitive.ObjectID `json:"category_id" bson:"category_id" index:"single"`
	BrandID        *primitive.ObjectID `json:"brand_id" bson:"brand_id" index:"single"`
	ImageURL       string              `json:"image_url" bson:"image_url"`
	ExternalSource string              `json:"external_source,omitempty" bson:"external_source,omitempty" index:"compound:external_ref"`
	ExternalID     string              `json:"external_id,omitempty" bson:"external_id,omitempty" index:"compound:external_ref"`
	CreatedAt      int64               `json:"created_at" bson:"created_at" index:"compound:active_created,order:-1"`
	UpdatedAt      int64               `json:"updated_at" bson:"updated_at"`
}

// InStock cho biết còn hàng
func (p Product) InStock() bool {
	return p.StockQuantity > 0
}

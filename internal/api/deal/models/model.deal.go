// Package models - bảng xếp hạng deal (DealRanking) và item trả về của /deals.
package models

import (
	catalogmodels "jammshop/internal/api/catalog/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DealRanking là một dòng xếp hạng được tính lại định kỳ từ products.
// Thứ tự xếp hạng: discount_pct giảm dần, product_id tăng dần.
type DealRanking struct {
	ID          primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	ProductID   primitive.ObjectID `json:"product_id" bson:"product_id" index:"compound:rank,order:-1"`
	DiscountPct float64            `json:"discount_pct" bson:"discount_pct" index:"compound:rank,order:-1"`
	RefreshedAt int64              `json:"refreshed_at" bson:"refreshed_at"`
}

// DealItem là sản phẩm kèm phần trăm giảm giá
type DealItem struct {
	catalogmodels.Product
	DiscountPct float64 `json:"discount_pct"`
}

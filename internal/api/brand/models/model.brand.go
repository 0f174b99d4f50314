// Package models - thương hiệu / nhà cung cấp (Brand).
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Các loại thương hiệu
const (
	BrandTypeInternal = "internal"
	BrandTypeAlibaba  = "alibaba"
	BrandTypeJumia    = "jumia"
	BrandTypeOther    = "other"
)

// BrandTypes là tập loại hợp lệ
var BrandTypes = []string{BrandTypeInternal, BrandTypeAlibaba, BrandTypeJumia, BrandTypeOther}

// Brand là thương hiệu hoặc nhà cung cấp.
// ProductCount là trường suy ra, chỉ được ghi bởi job đếm lại (cron).
type Brand struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name" index:"single"`
	Slug         string             `json:"slug" bson:"slug" index:"unique"`
	Type         string             `json:"type" bson:"type" index:"single"`
	IsActive     bool               `json:"is_active" bson:"is_active"`
	LogoURL      string             `json:"logo_url" bson:"logo_url"`
	Website      string             `json:"website" bson:"website"`
	ProductCount int64              `json:"product_count" bson:"product_count"`
	CreatedAt    int64              `json:"created_at" bson:"created_at"`
	UpdatedAt    int64              `json:"updated_at" bson:"updated_at"`
}

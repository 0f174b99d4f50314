// Package models - danh mục sản phẩm (Category).
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Category là danh mục sản phẩm, slug là duy nhất
type Category struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name" index:"single"`
	Slug        string             `json:"slug" bson:"slug" index:"unique"`
	Description string             `json:"description" bson:"description"`
	ImageURL    string             `json:"image_url" bson:"image_url"`
	CreatedAt   int64              `json:"created_at" bson:"created_at"`
	UpdatedAt   int64              `json:"updated_at" bson:"updated_at"`
}

// CategoryWithCount là danh mục kèm số sản phẩm (trường suy ra, không lưu)
type CategoryWithCount struct {
	Category
	ProductCount int64 `json:"product_count"`
}

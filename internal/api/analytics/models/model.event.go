// Package models - sự kiện analytics (chỉ ghi thêm, không sửa) và các dòng thống kê.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Event là một sự kiện từ storefront
type Event struct {
	ID        primitive.ObjectID     `json:"id" bson:"_id,omitempty"`
	Name      string                 `json:"name" bson:"name" index:"single"`
	Props     map[string]interface{} `json:"props,omitempty" bson:"props,omitempty"`
	UserID    string                 `json:"user_id,omitempty" bson:"user_id,omitempty"`
	IP        string                 `json:"ip" bson:"ip"`
	UserAgent string                 `json:"user_agent" bson:"user_agent"`
	CreatedAt int64                  `json:"created_at" bson:"created_at" index:"single,order:-1"`
}

// TopEvent là số lần xuất hiện của một tên sự kiện
type TopEvent struct {
	Name  string `json:"name" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}

// Stats là số liệu tổng quan cho dashboard admin
type Stats struct {
	Products int64   `json:"products"`
	Orders   int64   `json:"orders"`
	Users    int64   `json:"users"`
	Events   int64   `json:"events"`
	Revenue  float64 `json:"revenue"`
}

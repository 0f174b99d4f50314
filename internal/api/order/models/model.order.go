// Package models - đơn hàng (Order) và thông tin khách hàng đi kèm.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Trạng thái đơn hàng
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// Trạng thái thanh toán
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// OrderStatuses là tập trạng thái đơn hàng hợp lệ
var OrderStatuses = []string{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}

// PaymentStatuses là tập trạng thái thanh toán hợp lệ
var PaymentStatuses = []string{PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded}

// OrderItem là một dòng sản phẩm trong đơn
type OrderItem struct {
	ProductID primitive.ObjectID `json:"product_id" bson:"product_id"`
	Name      string             `json:"name" bson:"name"`
	Quantity  int64              `json:"quantity" bson:"quantity"`
	UnitPrice float64            `json:"unit_price" bson:"unit_price"`
}

// Order là đơn hàng, UserID là id profile của người đặt
type Order struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OrderNumber   string             `json:"order_number" bson:"order_number" index:"unique"`
	UserID        string             `json:"user_id" bson:"user_id" index:"single"`
	Status        string             `json:"status" bson:"status" index:"single"`
	PaymentStatus string             `json:"payment_status" bson:"payment_status" index:"single"`
	Total         float64            `json:"total" bson:"total"`
	Items         []OrderItem        `json:"items" bson:"items"`
	CreatedAt     int64              `json:"created_at" bson:"created_at" index:"single,order:-1"`
	UpdatedAt     int64              `json:"updated_at" bson:"updated_at"`
}

// Customer là thông tin tóm tắt của người đặt
type Customer struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// OrderWithCustomer là đơn hàng kèm khách hàng (nil khi profile không còn)
type OrderWithCustomer struct {
	Order
	Customer *Customer `json:"customer"`
}

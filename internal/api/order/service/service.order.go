// Package ordersvc - service đơn hàng cho admin: danh sách có tìm kiếm theo khách hàng, xem và cập nhật trạng thái.
package ordersvc

import (
	"context"
	"fmt"
	"strings"

	authmodels "jammshop/internal/api/auth/models"
	basepatch "jammshop/internal/api/base/patch"
	basequery "jammshop/internal/api/base/query"
	basesvc "jammshop/internal/api/base/service"
	models "jammshop/internal/api/order/models"
	"jammshop/internal/common"
	"jammshop/internal/global"
	"jammshop/internal/logger"

	"github.com/sirupsen/logrus"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MaxCustomerMatches giới hạn số profile khớp từ khoá được đưa vào điều kiện user_id.
// Vượt giới hạn thì các profile còn lại bị bỏ qua và có log cảnh báo.
const MaxCustomerMatches = 500

// OrderSortFields là các field được phép sort
var OrderSortFields = []string{"created_at", "total", "status", "order_number"}

// OrderWhitelist là các field admin được phép sửa
var OrderWhitelist = basepatch.Whitelist{
	"status":         {Kind: basepatch.Enum, Values: models.OrderStatuses},
	"payment_status": {Kind: basepatch.Enum, Values: models.PaymentStatuses},
}

// OrderService thao tác trên orders, đọc profiles để tìm kiếm và ghép khách hàng
type OrderService struct {
	orders   basesvc.Repository[models.Order]
	profiles basesvc.Repository[authmodels.Profile]
}

// NewOrderService tạo mới OrderService
func NewOrderService() (*OrderService, error) {
	orderCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Orders)
	if !exist {
		return nil, fmt.Errorf("failed to get orders collection: %v", common.ErrNotFound)
	}
	profileCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Profiles)
	if !exist {
		return nil, fmt.Errorf("failed to get profiles collection: %v", common.ErrNotFound)
	}
	return NewOrderServiceWith(
		basesvc.NewBaseServiceMongo[models.Order](orderCollection),
		basesvc.NewBaseServiceMongo[authmodels.Profile](profileCollection),
	), nil
}

// NewOrderServiceWith tạo OrderService trên các repository có sẵn
func NewOrderServiceWith(orders basesvc.Repository[models.Order], profiles basesvc.Repository[authmodels.Profile]) *OrderService {
	return &OrderService{orders: orders, profiles: profiles}
}

// ListParams tham số danh sách đơn hàng
type ListParams struct {
	Search  string
	Status  string
	Payment string
	Start   string
	End     string
	Page    basequery.PageSpec
	Sort    basequery.SortSpec
}

// searchClause: order_number khớp từ khoá HOẶC người đặt có tên/email khớp.
// Profile được tìm trước, kết quả đưa vào một $or duy nhất.
func (s *OrderService) searchClause(ctx context.Context, term string) (bson.M, error) {
	re := basequery.SearchRegex(term)
	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetLimit(MaxCustomerMatches)
	matched, err := s.profiles.Find(ctx, bson.M{"$or": bson.A{
		bson.M{"full_name": re},
		bson.M{"email": re},
	}}, opts)
	if err != nil {
		return nil, err
	}

	if len(matched) >= MaxCustomerMatches {
		logger.WithModule("order").WithFields(logrus.Fields{
			"term":  term,
			"limit": MaxCustomerMatches,
		}).Warn("Customer search hit match limit, results may be incomplete")
	}

	or := bson.A{bson.M{"order_number": re}}
	if len(matched) > 0 {
		ids := make([]string, 0, len(matched))
		for _, p := range matched {
			ids = append(ids, p.ID)
		}
		or = append(or, bson.M{"user_id": bson.M{"$in": ids}})
	}
	return bson.M{"$or": or}, nil
}

// Filter dựng filter danh sách đơn hàng
func (s *OrderService) Filter(ctx context.Context, p ListParams) (bson.M, error) {
	f := basequery.NewFilter().
		Eq("status", p.Status).
		Eq("payment_status", p.Payment).
		DateRange("created_at", p.Start, p.End)
	if strings.TrimSpace(p.Search) != "" {
		clause, err := s.searchClause(ctx, p.Search)
		if err != nil {
			return nil, err
		}
		f.Raw(clause)
	}
	return f.Bson(), nil
}

// withCustomers ghép thông tin khách hàng bằng một lần đọc profiles theo tập user_id
func (s *OrderService) withCustomers(ctx context.Context, orders []models.Order) ([]models.OrderWithCustomer, error) {
	out := make([]models.OrderWithCustomer, 0, len(orders))
	if len(orders) == 0 {
		return out, nil
	}

	seen := map[string]bool{}
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		if o.UserID != "" && !seen[o.UserID] {
			seen[o.UserID] = true
			ids = append(ids, o.UserID)
		}
	}

	customers := map[string]*models.Customer{}
	if len(ids) > 0 {
		profiles, err := s.profiles.FindManyByIds(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, p := range profiles {
			customers[p.ID] = &models.Customer{ID: p.ID, FullName: p.FullName, Email: p.Email}
		}
	}

	for _, o := range orders {
		out = append(out, models.OrderWithCustomer{Order: o, Customer: customers[o.UserID]})
	}
	return out, nil
}

// List liệt kê đơn hàng kèm khách hàng
func (s *OrderService) List(ctx context.Context, p ListParams) (*basequery.Envelope[models.OrderWithCustomer], error) {
	filter, err := s.Filter(ctx, p)
	if err != nil {
		return nil, err
	}
	env, err := s.orders.FindWithPagination(ctx, filter, p.Page, p.Sort)
	if err != nil {
		return nil, err
	}
	items, err := s.withCustomers(ctx, env.Data)
	if err != nil {
		return nil, err
	}
	return basequery.NewEnvelope(items, p.Page, env.Total), nil
}

// Get lấy một đơn hàng kèm khách hàng
func (s *OrderService) Get(ctx context.Context, id primitive.ObjectID) (models.OrderWithCustomer, error) {
	order, err := s.orders.FindOneById(ctx, id)
	if err != nil {
		return models.OrderWithCustomer{}, err
	}
	items, err := s.withCustomers(ctx, []models.Order{order})
	if err != nil {
		return models.OrderWithCustomer{}, err
	}
	return items[0], nil
}

// Update cập nhật status/payment_status theo OrderWhitelist
func (s *OrderService) Update(ctx context.Context, id primitive.ObjectID, body map[string]interface{}) (models.Order, error) {
	set, err := OrderWhitelist.Apply(body)
	if err != nil {
		return models.Order{}, err
	}
	return s.orders.UpdateById(ctx, id, set)
}

// Package extsync đồng bộ giá và tồn kho của sản phẩm có nguồn ngoài (external_source/external_id)
// từ nhà cung cấp. Mỗi sản phẩm được cập nhật độc lập, lỗi của một sản phẩm không dừng vòng lặp.
package extsync

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/valyala/fasthttp"
)

// ExternalRef tham chiếu tới sản phẩm bên nhà cung cấp kèm giá trị hiện tại
type ExternalRef struct {
	Source        string
	ExternalID    string
	Price         float64
	StockQuantity int64
}

// Quote là giá và tồn kho mới nhất từ nhà cung cấp
type Quote struct {
	Price         float64 `json:"price"`
	StockQuantity int64   `json:"stock_quantity"`
}

// Validate kiểm tra quote hợp lệ trước khi ghi
func (q Quote) Validate() error {
	if math.IsNaN(q.Price) || math.IsInf(q.Price, 0) || q.Price < 0 {
		return fmt.Errorf("invalid price %v", q.Price)
	}
	return nil
}

// Provider lấy quote cho một tham chiếu ngoài
type Provider interface {
	Fetch(ctx context.Context, ref ExternalRef) (Quote, error)
}

// ====================================
// MOCK PROVIDER
// ====================================

// MockProvider sinh biến động ngẫu nhiên có giới hạn quanh giá trị hiện tại
type MockProvider struct {
	mu            sync.Mutex
	rnd           *rand.Rand
	MaxPriceDelta float64 // tỉ lệ, 0.05 = ±5%
	MaxStockDelta int64
}

// NewMockProvider tạo MockProvider, seed = 0 thì dùng thời gian hiện tại
func NewMockProvider(seed int64) *MockProvider {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &MockProvider{
		rnd:           rand.New(rand.NewSource(seed)),
		MaxPriceDelta: 0.05,
		MaxStockDelta: 5,
	}
}

// Fetch trả về giá lệch tối đa ±MaxPriceDelta (làm tròn 2 chữ số) và tồn kho lệch tối đa ±MaxStockDelta, không âm
func (p *MockProvider) Fetch(ctx context.Context, ref ExternalRef) (Quote, error) {
	if err := ctx.Err(); err != nil {
		return Quote{}, err
	}
	p.mu.Lock()
	priceFactor := 1 + (p.rnd.Float64()*2-1)*p.MaxPriceDelta
	stockDelta := p.rnd.Int63n(2*p.MaxStockDelta+1) - p.MaxStockDelta
	p.mu.Unlock()

	price := math.Round(ref.Price*priceFactor*100) / 100
	if price < 0 {
		price = 0
	}
	stock := ref.StockQuantity + stockDelta
	if stock < 0 {
		stock = 0
	}
	return Quote{Price: price, StockQuantity: stock}, nil
}

// ====================================
// HTTP PROVIDER
// ====================================

// HTTPProvider gọi GET <base>/<source>/<external_id> và đọc JSON {price, stock_quantity}
type HTTPProvider struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
}

// NewHTTPProvider tạo HTTPProvider
func NewHTTPProvider(baseURL string, timeout time.Duration) *HTTPProvider {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPProvider{
		client: &fasthttp.Client{
			Name:         "jammshop-sync",
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
	}
}

// URL dựng địa chỉ quote cho một tham chiếu
func (p *HTTPProvider) URL(ref ExternalRef) string {
	return fmt.Sprintf("%s/%s/%s", p.baseURL, url.PathEscape(ref.Source), url.PathEscape(ref.ExternalID))
}

// Fetch gọi nhà cung cấp, deadline của ctx được ưu tiên hơn timeout mặc định
func (p *HTTPProvider) Fetch(ctx context.Context, ref ExternalRef) (Quote, error) {
	if err := ctx.Err(); err != nil {
		return Quote{}, err
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(p.URL(ref))
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")

	deadline := time.Now().Add(p.timeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}
	if err := p.client.DoDeadline(req, resp, deadline); err != nil {
		return Quote{}, fmt.Errorf("fetch %s/%s: %w", ref.Source, ref.ExternalID, err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return Quote{}, fmt.Errorf("fetch %s/%s: status %d", ref.Source, ref.ExternalID, resp.StatusCode())
	}

	var quote Quote
	if err := json.Unmarshal(resp.Body(), &quote); err != nil {
		return Quote{}, fmt.Errorf("decode quote %s/%s: %w", ref.Source, ref.ExternalID, err)
	}
	return quote, quote.Validate()
}

// NewProvider chọn provider theo tên cấu hình ("http" hoặc mặc định "mock")
func NewProvider(name, baseURL string, timeout time.Duration) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "mock":
		return NewMockProvider(0), nil
	case "http":
		if baseURL == "" {
			return nil, fmt.Errorf("sync provider http requires SYNC_PROVIDER_URL")
		}
		return NewHTTPProvider(baseURL, timeout), nil
	}
	return nil, fmt.Errorf("unknown sync provider %q", name)
}

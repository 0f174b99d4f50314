package catalogdto

// ProductCreateInput đầu vào tạo sản phẩm (POST /admin/products)
type ProductCreateInput struct {
	Name           string   `json:"name" validate:"required,no_xss"`
	Slug           string   `json:"slug"`
	SKU            string   `json:"sku" validate:"no_xss"`
	Description    string   `json:"description" validate:"no_xss"`
	Price          *float64 `json:"price" validate:"required,gte=0"`
	CompareAtPrice *float64 `json:"compare_at_price" validate:"omitempty,gte=0"`
	StockQuantity  int64    `json:"stock_quantity"`
	IsActive       *bool    `json:"is_active"`
	IsFeatured     bool     `json:"is_featured"`
	CategoryID     string   `json:"category_id" validate:"omitempty,exists=categories"`
	BrandID        string   `json:"brand_id" validate:"omitempty,exists=brands"`
	ImageURL       string   `json:"image_url" validate:"omitempty,url"`
	ExternalSource string   `json:"external_source"`
	ExternalID     string   `json:"external_id"`
}

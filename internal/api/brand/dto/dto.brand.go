package branddto

// BrandCreateInput đầu vào tạo thương hiệu
type BrandCreateInput struct {
	Name     string `json:"name" validate:"required,no_xss"`
	Slug     string `json:"slug"`
	Type     string `json:"type" validate:"brand_type"`
	IsActive *bool  `json:"is_active"`
	LogoURL  string `json:"logo_url" validate:"omitempty,url"`
	Website  string `json:"website" validate:"omitempty,url"`
}

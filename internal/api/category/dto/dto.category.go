package categorydto

// CategoryCreateInput đầu vào tạo danh mục
type CategoryCreateInput struct {
	Name        string `json:"name" validate:"required,no_xss"`
	Description string `json:"description" validate:"no_xss"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
	Slug        string `json:"slug"`
}

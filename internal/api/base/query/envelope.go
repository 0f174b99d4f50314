package basequery

// Envelope là format trả về chung của list endpoint
type Envelope[T any] struct {
	Data       []T   `json:"data"`
	Page       int64 `json:"page"`
	PageSize   int64 `json:"pageSize"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// NewEnvelope tạo envelope, data nil được đổi thành mảng rỗng
func NewEnvelope[T any](items []T, page PageSpec, total int64) *Envelope[T] {
	if items == nil {
		items = []T{}
	}
	return &Envelope[T]{
		Data:       items,
		Page:       page.Page,
		PageSize:   page.PageSize,
		Total:      total,
		TotalPages: TotalPages(total, page.PageSize),
	}
}

package basequery

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// DefaultSortField là khoá sắp xếp mặc định của mọi list endpoint
const DefaultSortField = "created_at"

// SortSpec là khoá sắp xếp đã qua whitelist
type SortSpec struct {
	Field string
	Desc  bool
	Then  string // khoá phụ tăng dần, rỗng thì dùng _id cùng chiều với Field
}

// ParseSort chọn field trong whitelist (không có thì dùng defaultField).
// Chỉ "asc" (không phân biệt hoa thường) mới sắp xếp tăng dần.
func ParseSort(key, order string, whitelist []string, defaultField string) SortSpec {
	if defaultField == "" {
		defaultField = DefaultSortField
	}
	field := defaultField
	key = strings.TrimSpace(key)
	for _, allowed := range whitelist {
		if key == allowed {
			field = key
			break
		}
	}
	return SortSpec{
		Field: field,
		Desc:  !strings.EqualFold(strings.TrimSpace(order), "asc"),
	}
}

// Bson trả về sort document, thêm _id làm khoá phụ để phân trang ổn định
func (s SortSpec) Bson() bson.D {
	dir := 1
	if s.Desc {
		dir = -1
	}
	d := bson.D{{Key: s.Field, Value: dir}}
	if s.Then != "" && s.Then != s.Field {
		return append(d, bson.E{Key: s.Then, Value: 1})
	}
	if s.Field != "_id" {
		d = append(d, bson.E{Key: "_id", Value: dir})
	}
	return d
}

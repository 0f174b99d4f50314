package basequery

import (
	"regexp"
	"strings"

	"jammshop/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FilterAll là giá trị query tương đương "không lọc"
const FilterAll = "all"

// Filter gom các điều kiện lọc rồi ghép lại bằng $and
type Filter struct {
	clauses []bson.M
}

// NewFilter tạo filter rỗng
func NewFilter() *Filter {
	return &Filter{}
}

// skip: tham số vắng mặt hoặc bằng "all"
func skip(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, FilterAll)
}

// SearchRegex tạo regex khớp một phần, không phân biệt hoa thường, đã escape ký tự đặc biệt
func SearchRegex(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(strings.TrimSpace(term)), Options: "i"}
}

// Search thêm điều kiện tìm kiếm text trên các field whitelist (OR giữa các field)
func (f *Filter) Search(term string, fields ...string) *Filter {
	if strings.TrimSpace(term) == "" || len(fields) == 0 {
		return f
	}
	re := SearchRegex(term)
	if len(fields) == 1 {
		return f.Raw(bson.M{fields[0]: re})
	}
	or := make(bson.A, 0, len(fields))
	for _, field := range fields {
		or = append(or, bson.M{field: re})
	}
	return f.Raw(bson.M{"$or": or})
}

// Eq lọc bằng giá trị chuỗi, bỏ qua khi rỗng hoặc "all"
func (f *Filter) Eq(field, value string) *Filter {
	if skip(value) {
		return f
	}
	return f.Raw(bson.M{field: strings.TrimSpace(value)})
}

// EqValue lọc bằng giá trị bất kỳ (không bỏ qua)
func (f *Filter) EqValue(field string, value interface{}) *Filter {
	return f.Raw(bson.M{field: value})
}

// ObjectID lọc theo khoá tham chiếu dạng hex. Hex sai cho ra điều kiện không khớp bản ghi nào.
func (f *Filter) ObjectID(field, hex string) *Filter {
	if skip(hex) {
		return f
	}
	id, err := utility.String2ObjectID(hex)
	if err != nil {
		return f.In(field, bson.A{})
	}
	return f.Raw(bson.M{field: id})
}

// In lọc theo danh sách giá trị
func (f *Filter) In(field string, values interface{}) *Filter {
	return f.Raw(bson.M{field: bson.M{"$in": values}})
}

// Range lọc khoảng [gte, lte]; nil ở đầu nào thì bỏ đầu đó
func (f *Filter) Range(field string, gte, lte interface{}) *Filter {
	cond := bson.M{}
	if gte != nil {
		cond["$gte"] = gte
	}
	if lte != nil {
		cond["$lte"] = lte
	}
	if len(cond) == 0 {
		return f
	}
	return f.Raw(bson.M{field: cond})
}

// NumberRange đọc min/max dạng chuỗi; giá trị không phải số bị bỏ qua
func (f *Filter) NumberRange(field, min, max string) *Filter {
	var gte, lte interface{}
	if !skip(min) {
		if v, err := utility.ToFloat64(min); err == nil {
			gte = v
		}
	}
	if !skip(max) {
		if v, err := utility.ToFloat64(max); err == nil {
			lte = v
		}
	}
	return f.Range(field, gte, lte)
}

// DateRange đọc start/end (ngày thuần hoặc RFC3339) thành Unix ms, end tính hết ngày
func (f *Filter) DateRange(field, start, end string) *Filter {
	var gte, lte interface{}
	if v, ok := utility.ParseDateBound(start, false); ok {
		gte = v
	}
	if v, ok := utility.ParseDateBound(end, true); ok {
		lte = v
	}
	return f.Range(field, gte, lte)
}

// Flag lọc field bool từ tham số "true"/"false"; giá trị khác bị bỏ qua
func (f *Filter) Flag(field, raw string) *Filter {
	if skip(raw) {
		return f
	}
	b, err := utility.ToBool(raw)
	if err != nil {
		return f
	}
	return f.Raw(bson.M{field: b})
}

// Raw thêm một điều kiện tuỳ ý
func (f *Filter) Raw(clause bson.M) *Filter {
	if len(clause) > 0 {
		f.clauses = append(f.clauses, clause)
	}
	return f
}

// Bson ghép các điều kiện thành filter document
func (f *Filter) Bson() bson.M {
	switch len(f.clauses) {
	case 0:
		return bson.M{}
	case 1:
		return f.clauses[0]
	}
	and := make(bson.A, 0, len(f.clauses))
	for _, c := range f.clauses {
		and = append(and, c)
	}
	return bson.M{"$and": and}
}

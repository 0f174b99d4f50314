// Package basepatch áp dụng partial update theo whitelist: chỉ các field được khai báo
// mới được ghi, giá trị được ép kiểu trước khi chạm tới store.
package basepatch

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"jammshop/internal/common"
	"jammshop/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FieldKind quyết định cách ép kiểu một field
type FieldKind int

const (
	Text      FieldKind = iota // chuỗi, null -> ""
	Number                     // số thực, NaN/không parse được -> lỗi
	NonNegInt                  // số nguyên, âm bị kẹp về 0 (tồn kho)
	Bool                       // bool
	ObjectID                   // hex ObjectID, rỗng/null -> null
	Enum                       // chuỗi thuộc tập giá trị cho phép
	Slug                       // chuỗi được chuẩn hoá bằng Slugify
)

// Field mô tả một field được phép ghi
type Field struct {
	Kind   FieldKind
	Values []string // cho Enum
}

// Whitelist là tập field được phép ghi của một entity
type Whitelist map[string]Field

// Fields trả về tên field đã sắp xếp (dùng cho message lỗi)
func (w Whitelist) Fields() []string {
	names := make([]string, 0, len(w))
	for name := range w {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Present trả về tên các field trong body thuộc whitelist (dùng cho audit log)
func (w Whitelist) Present(body map[string]interface{}) []string {
	names := make([]string, 0, len(body))
	for _, name := range w.Fields() {
		if _, ok := body[name]; ok {
			names = append(names, name)
		}
	}
	return names
}

// Apply giao body với whitelist và ép kiểu.
// Trả về ErrNoUpdatableFields khi không còn field nào, trước khi có bất kỳ thao tác store nào.
func (w Whitelist) Apply(body map[string]interface{}) (bson.M, error) {
	set := bson.M{}
	for name, raw := range body {
		field, ok := w[name]
		if !ok {
			continue
		}
		v, err := coerce(name, field, raw)
		if err != nil {
			return nil, err
		}
		set[name] = v
	}
	if len(set) == 0 {
		return nil, common.ErrNoUpdatableFields
	}
	return set, nil
}

func coerce(name string, field Field, raw interface{}) (interface{}, error) {
	switch field.Kind {
	case Text:
		if raw == nil {
			return "", nil
		}
		s, ok := raw.(string)
		if !ok {
			return nil, common.ValidationError(fmt.Sprintf("%s must be a string", name), nil)
		}
		return strings.TrimSpace(s), nil

	case Number:
		f, err := utility.ToFloat64(raw)
		if err != nil {
			return nil, common.NewError(common.ErrCodeValidationFormat, fmt.Sprintf("%s: %s", common.MsgInvalidNumber, name), common.StatusBadRequest, nil)
		}
		return f, nil

	case NonNegInt:
		f, err := utility.ToFloat64(raw)
		if err != nil {
			return nil, common.NewError(common.ErrCodeValidationFormat, fmt.Sprintf("%s: %s", common.MsgInvalidNumber, name), common.StatusBadRequest, nil)
		}
		// ngoài khoảng int64 thì không ép kiểu được
		if f >= math.MaxInt64 {
			return nil, common.NewError(common.ErrCodeValidationFormat, fmt.Sprintf("%s: %s", common.MsgInvalidNumber, name), common.StatusBadRequest, nil)
		}
		if f < 0 {
			return int64(0), nil
		}
		return int64(math.Trunc(f)), nil

	case Bool:
		b, err := utility.ToBool(raw)
		if err != nil {
			return nil, common.ValidationError(fmt.Sprintf("%s must be a boolean", name), nil)
		}
		return b, nil

	case ObjectID:
		s, _ := raw.(string)
		if raw == nil || strings.TrimSpace(s) == "" {
			return nil, nil
		}
		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(s))
		if err != nil {
			return nil, common.ValidationError(fmt.Sprintf("%s must be a valid id", name), nil)
		}
		return id, nil

	case Enum:
		s, _ := raw.(string)
		for _, allowed := range field.Values {
			if s == allowed {
				return s, nil
			}
		}
		return nil, common.ValidationError(fmt.Sprintf("%s must be one of: %s", name, strings.Join(field.Values, ", ")), nil)

	case Slug:
		s, ok := raw.(string)
		if !ok {
			return nil, common.ValidationError(fmt.Sprintf("%s must be a string", name), nil)
		}
		slug := utility.Slugify(s)
		if slug == "" {
			return nil, common.ValidationError(fmt.Sprintf("%s must contain letters or digits", name), nil)
		}
		return slug, nil
	}
	return nil, common.ErrInvalidInput
}

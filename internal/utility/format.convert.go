package utility

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CurrentTimeInMilli trả về thời gian hiện tại dạng Unix milliseconds
func CurrentTimeInMilli() int64 {
	return time.Now().UnixMilli()
}

// String2ObjectID chuyển chuỗi hex sang ObjectID
func String2ObjectID(id string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(strings.TrimSpace(id))
}

// ToMap chuyển struct sang bson.M qua bson (giữ nguyên tên field theo tag bson)
func ToMap(data interface{}) (bson.M, error) {
	raw, err := bson.Marshal(data)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// ToFloat64 ép một giá trị JSON bất kỳ sang số. NaN và Inf bị coi là lỗi.
func ToFloat64(v interface{}) (float64, error) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return 0, err
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, err
		}
		f = parsed
	case bool:
		if x {
			f = 1
		}
	default:
		return 0, fmt.Errorf("cannot convert %T to number", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("value is not a finite number")
	}
	return f, nil
}

// ToBool ép giá trị JSON sang bool ("true"/"1"/"yes" được chấp nhận)
func ToBool(v interface{}) (bool, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true", "1", "yes", "on":
			return true, nil
		case "false", "0", "no", "off":
			return false, nil
		}
	case float64:
		return x != 0, nil
	}
	return false, fmt.Errorf("cannot convert %v to bool", v)
}

// ParseDateBound đọc "2024-05-01" hoặc RFC3339 thành Unix ms.
// endOfDay = true thì ngày thuần được hiểu là 23:59:59.999 của ngày đó.
func ParseDateBound(s string, endOfDay bool) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UnixMilli(), true
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return 0, false
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Millisecond)
	}
	return t.UnixMilli(), true
}

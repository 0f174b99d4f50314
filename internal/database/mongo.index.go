package database

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"jammshop/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IndexSpec là một index được suy ra từ struct tag `index`
type IndexSpec struct {
	Name   string
	Keys   bson.D
	Unique bool
}

// Cú pháp tag `index` (phân cách cấu hình bằng ';', tham số bằng ','):
//
//	index:"single"                 -> {field: 1}
//	index:"single,order:-1"        -> {field: -1}
//	index:"unique"                 -> {field: 1}, unique
//	index:"compound:grp"           -> gộp các field cùng grp theo thứ tự khai báo
//	index:"compound:grp,order:-1"  -> như trên, giảm dần
//
// Tên group chứa "_unique" thì index compound là unique.

// parseIndexTag phân tách tag index thành các cấu hình key/value
func parseIndexTag(tag string) []map[string]string {
	var result []map[string]string
	for _, part := range strings.Split(tag, ";") {
		entry := map[string]string{}
		for _, sub := range strings.Split(part, ",") {
			kv := strings.SplitN(strings.TrimSpace(sub), ":", 2)
			if kv[0] == "" {
				continue
			}
			if len(kv) == 2 {
				entry[kv[0]] = kv[1]
			} else {
				entry[kv[0]] = ""
			}
		}
		if len(entry) > 0 {
			result = append(result, entry)
		}
	}
	return result
}

// parseOrder: thứ tự sắp xếp trong cấu hình (1 hoặc -1)
func parseOrder(cfg map[string]string) int {
	if cfg["order"] == "-1" {
		return -1
	}
	return 1
}

// IndexesFromModel đọc struct tag của model và trả về danh sách index
func IndexesFromModel(model interface{}) []IndexSpec {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	var specs []IndexSpec
	groups := map[string]bson.D{}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag, ok := field.Tag.Lookup("index")
		if !ok {
			continue
		}
		bsonField := strings.Split(field.Tag.Get("bson"), ",")[0]
		if bsonField == "" || bsonField == "-" {
			continue
		}

		for _, cfg := range parseIndexTag(tag) {
			order := parseOrder(cfg)
			if _, ok := cfg["single"]; ok {
				specs = append(specs, IndexSpec{Name: bsonField + "_single", Keys: bson.D{{Key: bsonField, Value: order}}})
			}
			if _, ok := cfg["unique"]; ok {
				specs = append(specs, IndexSpec{Name: bsonField + "_unique", Keys: bson.D{{Key: bsonField, Value: 1}}, Unique: true})
			}
			if grp, ok := cfg["compound"]; ok && grp != "" {
				groups[grp] = append(groups[grp], bson.E{Key: bsonField, Value: order})
			}
		}
	}

	names := make([]string, 0, len(groups))
	for grp := range groups {
		names = append(names, grp)
	}
	sort.Strings(names)
	for _, grp := range names {
		specs = append(specs, IndexSpec{Name: grp, Keys: groups[grp], Unique: strings.Contains(grp, "_unique")})
	}
	return specs
}

// CreateIndexes tạo các index khai báo trên model, bỏ qua index đã tồn tại cùng tên
func CreateIndexes(ctx context.Context, collection *mongo.Collection, model interface{}) error {
	specs := IndexesFromModel(model)
	if len(specs) == 0 {
		return nil
	}

	cursor, err := collection.Indexes().List(ctx)
	if err != nil {
		return fmt.Errorf("không thể lấy danh sách index: %w", err)
	}
	defer cursor.Close(ctx)

	existing := map[string]bool{}
	for cursor.Next(ctx) {
		var info bson.M
		if err := cursor.Decode(&info); err != nil {
			return fmt.Errorf("không thể giải mã thông tin index: %w", err)
		}
		if name, ok := info["name"].(string); ok {
			existing[name] = true
		}
	}

	log := logger.WithModule("database").WithField("collection", collection.Name())
	for _, spec := range specs {
		if existing[spec.Name] {
			continue
		}
		opts := options.Index().SetName(spec.Name)
		if spec.Unique {
			opts.SetUnique(true)
		}
		if _, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: spec.Keys, Options: opts}); err != nil {
			return fmt.Errorf("không thể tạo index %s: %w", spec.Name, err)
		}
		log.Infof("Đã tạo index: %s", spec.Name)
	}
	return nil
}

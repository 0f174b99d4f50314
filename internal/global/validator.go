package global

import (
	"context"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	Validate = validator.New()

	// Báo lỗi theo tên field JSON thay vì tên field Go
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	_ = Validate.RegisterValidation("no_xss", validateNoXSS)
	_ = Validate.RegisterValidation("slug", validateSlug)
	_ = Validate.RegisterValidation("role", validateRole)
	_ = Validate.RegisterValidation("brand_type", validateBrandType)
	_ = Validate.RegisterValidation("exists", validateExists)
}

// ValidateStruct khởi tạo validator nếu cần rồi validate
func ValidateStruct(s interface{}) error {
	if Validate == nil {
		InitValidator()
	}
	return Validate.Struct(s)
}

// validateNoXSS kiểm tra XSS
func validateNoXSS(fl validator.FieldLevel) bool {
	value := strings.ToLower(fl.Field().String())
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"onclick=",
		"eval(",
		"document.cookie",
		"<iframe",
		"<object",
		"<embed",
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}

// validateSlug: chữ thường, số, gạch nối đơn
func validateSlug(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return slugPattern.MatchString(value)
}

func validateRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "user", "admin", "super_admin":
		return true
	}
	return false
}

func validateBrandType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", "internal", "alibaba", "jumia", "other":
		return true
	}
	return false
}

// validateExists kiểm tra ObjectID tồn tại trong collection (foreign key validation)
// Format: validate:"exists=<collection_name>"
// Collection chưa đăng ký trong registry thì bỏ qua (môi trường test)
func validateExists(fl validator.FieldLevel) bool {
	collectionName := fl.Param()
	if collectionName == "" {
		return false
	}

	var objID primitive.ObjectID
	switch v := fl.Field().Interface().(type) {
	case string:
		if v == "" {
			return true
		}
		var err error
		if objID, err = primitive.ObjectIDFromHex(v); err != nil {
			return false
		}
	case primitive.ObjectID:
		if v.IsZero() {
			return true
		}
		objID = v
	default:
		return false
	}

	collection, exist := RegistryCollections.Get(collectionName)
	if !exist {
		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	count, err := collection.CountDocuments(ctx, bson.M{"_id": objID})
	if err != nil {
		return false
	}
	return count > 0
}

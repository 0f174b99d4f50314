package utility

import (
	"regexp"
	"strings"
)

var (
	slugQuotes   = regexp.MustCompile("['\"`‘’“”]")
	slugNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify sinh slug từ tên: chữ thường, bỏ dấu nháy, gộp các ký tự không phải chữ/số thành một "-",
// cắt "-" ở hai đầu. Ví dụ: "Men's Shoes!" -> "mens-shoes".
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugQuotes.ReplaceAllString(s, "")
	s = slugNonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

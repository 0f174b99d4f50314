// Package basequery chứa các khối dùng chung cho list endpoint:
// phân trang, sắp xếp theo whitelist, bộ lọc và envelope trả về.
package basequery

import (
	"math"
	"strconv"
	"strings"
)

// PageSpec là tham số phân trang đã được chuẩn hoá
type PageSpec struct {
	Page     int64 // >= 1
	PageSize int64 // trong [1, max]
}

// ParsePage chuẩn hoá page/pageSize từ query string.
// page không hợp lệ hoặc < 1 thành 1. pageSize thiếu hoặc không phải số dùng defaultSize,
// sau đó bị kẹp vào [1, maxSize]. page bị chặn trên để (page-1)*pageSize không tràn int64.
func ParsePage(page, pageSize string, defaultSize, maxSize int64) PageSpec {
	if maxSize < 1 {
		maxSize = 1
	}
	if defaultSize < 1 {
		defaultSize = 1
	}

	p, err := strconv.ParseInt(strings.TrimSpace(page), 10, 64)
	if err != nil || p < 1 {
		p = 1
	}

	size, err := strconv.ParseInt(strings.TrimSpace(pageSize), 10, 64)
	if err != nil {
		size = defaultSize
	}
	if size < 1 {
		size = 1
	}
	if size > maxSize {
		size = maxSize
	}

	if p > math.MaxInt64/size {
		p = math.MaxInt64 / size
	}

	return PageSpec{Page: p, PageSize: size}
}

// Offset = (page-1) * pageSize
func (p PageSpec) Offset() int64 {
	return (p.Page - 1) * p.PageSize
}

// TotalPages trả về ceil(total/pageSize), và 1 khi total = 0
func TotalPages(total, pageSize int64) int64 {
	if total <= 0 || pageSize <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

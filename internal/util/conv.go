package util

import (
	"strconv"
)

// ParseLimit 解析查询参数中的条数限制，非法或超界时回退
func ParseLimit(s string, def, max int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}

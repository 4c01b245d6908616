package util

import (
	"strconv"
)

// ParseUint 将字符串转换为无符号整数，解析失败时返回 0 和 false
func ParseUint(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// ModuleKey is the canonical string form of a module id used in the
// completed-modules set.
func ModuleKey(moduleID uint) string {
	return strconv.FormatUint(uint64(moduleID), 10)
}

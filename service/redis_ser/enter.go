package redis_ser

import "strings"

// Prefix 所有键的全局前缀
const Prefix = "blog:"

// BuildKey 拼接Redis键
func BuildKey(parts ...string) string {
	return Prefix + strings.Join(parts, ":")
}

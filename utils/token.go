package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenToken 生成n字节的随机十六进制令牌，用于邮箱确认、密码重置等
func GenToken(n int) (string, error) {
	if n <= 0 {
		n = 32
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("生成随机令牌失败: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

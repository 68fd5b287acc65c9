/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package util

import (
	"crypto/rand"

	"github.com/google/uuid"
)

// IntDigits 计算有符号整数的位数（忽略负号）
func IntDigits(n int) int {
	if n == 0 {
		return 1
	}
	if n < 0 {
		n = -n
	}
	count := 0
	for n > 0 {
		n /= 10
		count++
	}
	return count
}

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomString 生成 n 位字母数字随机串，用于名称模板 {rand}。
func RandomString(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	_, _ = rand.Read(b)
	for i := range n {
		b[i] = letters[int(b[i])%len(letters)]
	}
	return string(b)
}

// NewUUID 返回随机 UUID v4 字符串，用于名称模板 {uuid}。
func NewUUID() string {
	return uuid.NewString()
}

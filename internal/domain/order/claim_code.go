package order

import (
	"crypto/rand"
	"strings"
)

// 提货码字符集,仅含大写字母与数字,便于口头传达与人工录入
const claimCodeChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultClaimCodeLength 默认提货码长度
const DefaultClaimCodeLength = 6

// GenerateClaimCode 生成指定长度的随机提货码
//
// 使用 crypto/rand 保证不可预测,防止提货码被枚举冒领。
// 256不是36的整数倍,直接取模会偏向字符集前段,
// 超出36最大整数倍的字节丢弃重采样。
// 唯一性由数据库唯一索引兜底,冲突时由调用方重新生成。
func GenerateClaimCode(length int) (string, error) {
	if length <= 0 {
		length = DefaultClaimCodeLength
	}
	const limit = 252 // 36 * 7
	code := make([]byte, 0, length)
	buf := make([]byte, length)
	for len(code) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			code = append(code, claimCodeChars[int(b)%len(claimCodeChars)])
			if len(code) == length {
				break
			}
		}
	}
	return string(code), nil
}

// NormalizeClaimCode 规范化用户输入的提货码,去除首尾空白并转为大写
func NormalizeClaimCode(input string) string {
	return strings.ToUpper(strings.TrimSpace(input))
}

// MatchClaimCode 比较输入提货码与订单提货码,输入侧容忍大小写与空白差异
func MatchClaimCode(input, stored string) bool {
	normalized := NormalizeClaimCode(input)
	return normalized != "" && normalized == stored
}

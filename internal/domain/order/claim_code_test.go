package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGenerateClaimCode 测试提货码的长度与字符集
func TestGenerateClaimCode(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenerateClaimCode(DefaultClaimCodeLength)
		require.NoError(t, err)
		assert.Len(t, code, DefaultClaimCodeLength)
		for _, c := range code {
			assert.True(t, (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9'),
				"提货码包含非法字符: %c", c)
		}
	}
}

// TestGenerateClaimCode_CharsetCoverage 抽样验证36个字符都可能出现
// 样本量下任一字符始终缺席的概率可忽略,缺席即说明采样有偏
func TestGenerateClaimCode_CharsetCoverage(t *testing.T) {
	seen := make(map[rune]bool)
	for i := 0; i < 500; i++ {
		code, err := GenerateClaimCode(DefaultClaimCodeLength)
		require.NoError(t, err)
		for _, c := range code {
			seen[c] = true
		}
	}
	assert.Len(t, seen, 36)
}

func TestGenerateClaimCode_DefaultLength(t *testing.T) {
	code, err := GenerateClaimCode(0)
	require.NoError(t, err)
	assert.Len(t, code, DefaultClaimCodeLength)
}

// TestMatchClaimCode 测试提货码比对对大小写与空白的容忍
func TestMatchClaimCode(t *testing.T) {
	stored := "AB12CD"

	assert.True(t, MatchClaimCode("AB12CD", stored))
	assert.True(t, MatchClaimCode("ab12cd", stored))
	assert.True(t, MatchClaimCode("  Ab12Cd \n", stored))

	assert.False(t, MatchClaimCode("AB12CE", stored))
	assert.False(t, MatchClaimCode("", stored))
	assert.False(t, MatchClaimCode("   ", stored))
}

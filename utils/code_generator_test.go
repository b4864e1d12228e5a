package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateInviteCode(t *testing.T) {
	code := GenerateInviteCode(12)
	assert.Len(t, code, 12)
	for _, ch := range code {
		assert.Contains(t, charset, string(ch))
	}
	// 碰撞概率可忽略
	assert.NotEqual(t, code, GenerateInviteCode(12))
}

func TestGenerateFlag(t *testing.T) {
	flag := GenerateFlag("CTF")
	assert.Regexp(t, `^CTF\{[0-9a-f]{32}\}$`, flag)
	assert.NotEqual(t, flag, GenerateFlag("CTF"))
}

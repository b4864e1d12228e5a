package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var seededRand *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))

// GenerateInviteCode 生成指定长度的随机邀请码
func GenerateInviteCode(length int) string {
	var sb strings.Builder
	sb.Grow(length)
	for i := 0; i < length; i++ {
		sb.WriteByte(charset[seededRand.Intn(len(charset))])
	}
	return sb.String()
}

// GenerateFlag 为管理员快捷生成一个随机 flag
func GenerateFlag(prefix string) string {
	value := strings.Replace(uuid.New().String(), "-", "", -1)
	return fmt.Sprintf("%s{%s}", prefix, value)
}

package services

import (
	"regexp"
	"strings"
)

// flagPattern 匹配 PREFIX{VALUE} 形态。VALUE 捕获是贪婪的，
// 提交里出现多个 '}' 时取到最后一个为止
var flagPattern = regexp.MustCompile(`^([A-Za-z0-9_]+)\{(.+)\}$`)

// ParsedFlag prefix/value 为空串表示整体不符合 PREFIX{VALUE} 形态
type ParsedFlag struct {
	Raw    string
	Prefix string
	Value  string
}

// ParseFlag 去除首尾空白后按 PREFIX{VALUE} 解析
func ParseFlag(raw string) ParsedFlag {
	trimmed := strings.TrimSpace(raw)
	m := flagPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return ParsedFlag{Raw: trimmed}
	}
	return ParsedFlag{Raw: trimmed, Prefix: m[1], Value: m[2]}
}

// FlagMatcher 按进程级前缀白名单判定提交的 flag
type FlagMatcher struct {
	allowedPrefixes []string
}

func NewFlagMatcher(allowedPrefixes []string) *FlagMatcher {
	return &FlagMatcher{allowedPrefixes: allowedPrefixes}
}

// Matches 判定规则：
//  1. 标准答案可解析时，提交必须也带前缀，前缀与标准一致或在白名单内，
//     且 VALUE 完全相等（区分大小写）
//  2. 标准答案不带 {} 结构时，退化为整串精确比较
func (m *FlagMatcher) Matches(submitted, canonical string) bool {
	sub := ParseFlag(submitted)
	can := ParseFlag(canonical)

	if can.Value == "" {
		return sub.Raw == can.Raw
	}

	if sub.Prefix == "" {
		return false
	}
	prefixOK := sub.Prefix == can.Prefix || m.allowed(sub.Prefix)
	return prefixOK && sub.Value == can.Value
}

func (m *FlagMatcher) allowed(prefix string) bool {
	for _, p := range m.allowedPrefixes {
		if p == prefix {
			return true
		}
	}
	return false
}

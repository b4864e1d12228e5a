package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFlag(t *testing.T) {
	p := ParseFlag("CTF{abc123}")
	assert.Equal(t, "CTF", p.Prefix)
	assert.Equal(t, "abc123", p.Value)

	// VALUE 贪婪匹配到最后一个 '}'
	p = ParseFlag("CTF{ab}cd}")
	assert.Equal(t, "CTF", p.Prefix)
	assert.Equal(t, "ab}cd", p.Value)

	p = ParseFlag("  flag{x}  ")
	assert.Equal(t, "flag", p.Prefix)
	assert.Equal(t, "x", p.Value)
	assert.Equal(t, "flag{x}", p.Raw)

	// 不符合 PREFIX{VALUE} 形态
	for _, raw := range []string{"no braces", "CTF{}", "{abc}", "CTF{abc", "pre-fix{x}"} {
		p = ParseFlag(raw)
		assert.Empty(t, p.Prefix, "raw=%q", raw)
		assert.Empty(t, p.Value, "raw=%q", raw)
	}
}

func TestFlagMatcher(t *testing.T) {
	matcher := NewFlagMatcher([]string{"CTF", "flag"})

	tests := []struct {
		name      string
		submitted string
		canonical string
		want      bool
	}{
		{"exact match", "CTF{abc123}", "CTF{abc123}", true},
		{"allowed prefix substitution", "flag{abc123}", "CTF{abc123}", true},
		{"prefix comparison is case sensitive", "FLAG{abc123}", "CTF{abc123}", false},
		{"value mismatch", "CTF{wrong}", "CTF{abc123}", false},
		{"prefix neither canonical nor allowed", "WRONG{abc123}", "CTF{abc123}", false},
		{"value comparison is case sensitive", "CTF{ABC123}", "CTF{abc123}", false},
		{"bare value without prefix", "abc123", "CTF{abc123}", false},
		{"whitespace trimmed", "  CTF{abc123}\n", "CTF{abc123}", true},
		{"greedy value with extra brace", "flag{ab}cd}", "CTF{ab}cd}", true},
		{"plain canonical exact equality", "just-a-secret", "just-a-secret", true},
		{"plain canonical mismatch", "other", "just-a-secret", false},
		{"plain canonical trimmed", "  just-a-secret ", "just-a-secret", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matcher.Matches(tt.submitted, tt.canonical))
		})
	}
}

func TestFlagMatcherUnknownCanonicalPrefix(t *testing.T) {
	// 标准答案带未登记前缀时，提交相同前缀或白名单前缀都可接受
	matcher := NewFlagMatcher([]string{"CTF", "flag"})
	assert.True(t, matcher.Matches("ISCTF{v}", "ISCTF{v}"))
	assert.True(t, matcher.Matches("flag{v}", "ISCTF{v}"))
	assert.False(t, matcher.Matches("OTHER{v}", "ISCTF{v}"))
}

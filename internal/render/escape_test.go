package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeMarkdownV2(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "hello world", "hello world"},
		{"dot", "v1.2", `v1\.2`},
		{"full reserved set", "_*[]()>~`#+-=|{}.!", `\_\*\[\]\(\)\>\~` + "\\`" + `\#\+\-\=\|\{\}\.\!`},
		{"backslash", `a\b`, `a\\b`},
		{"multibyte passthrough", "日本語のテキスト！", "日本語のテキスト！"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeMarkdownV2(tt.in))
		})
	}
}

// Escaping must be the identity on any string disjoint from the reserved
// character set.
func TestEscapeMarkdownV2_IdempotentOnCleanText(t *testing.T) {
	clean := []string{"abc", "漢字 and spaces", "emoji 🦄", "quotes「」《》"}
	for _, s := range clean {
		assert.Equal(t, s, EscapeMarkdownV2(s))
	}
}

func TestRestoreSpoilers(t *testing.T) {
	assert.Equal(t, "||secret||", restoreSpoilers(`\|\|secret\|\|`))
	assert.Equal(t, `\|not a pair`, restoreSpoilers(`\|not a pair`))
}

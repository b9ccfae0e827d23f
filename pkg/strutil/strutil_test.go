package strutil

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{"빈 문자열", "", 10, ""},
		{"제한보다 짧은 문자열", "hello", 10, "hello"},
		{"제한과 같은 길이", "hello", 5, "hello"},
		{"ASCII 자르기", "hello world", 5, "hello"},
		{"한글 자르기", "가나다라마", 3, "가나다"},
		{"바이트 길이는 길지만 문자 수는 제한 이내", "가나다", 3, "가나다"},
		{"이모지 혼합", "a😀b😀c", 3, "a😀b"},
		{"0 이하 제한", "hello", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, tt.max)
			assert.Equal(t, tt.expected, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestTruncate_LongMessage(t *testing.T) {
	t.Parallel()

	assert.Len(t, Truncate(strings.Repeat("x", 2000), 1024), 1024)
	assert.Equal(t, 1024, RuneCount(Truncate(strings.Repeat("가", 2000), 1024)))
}

func TestMaskSensitiveData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"abc", "***"},
		{"abcd", "***"},
		{"abcde", "***"},
		{"abcdefgh", "***"},
		{"abcdefghi", "abcd***"},
		{"abcdefghijkl", "abcd***"},
		{"azGDORePK8gMaC0QOYAMyEEuzJnyUi", "azGD***nyUi"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, MaskSensitiveData(tt.input), "input: %q", tt.input)
	}
}

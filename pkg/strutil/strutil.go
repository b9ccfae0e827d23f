// Package strutil은 문자열 처리를 위한 유틸리티 함수들을 제공합니다.
package strutil

import (
	"unicode/utf8"
)

// Truncate 문자열을 최대 maxRunes개의 문자(rune)로 자릅니다.
// 멀티바이트 UTF-8 문자의 중간을 자르지 않으며, 이미 충분히 짧은 문자열은 그대로 반환합니다.
// 예: Truncate("가나다라", 2) -> "가나"
func Truncate(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}

	// ASCII 위주의 입력은 바이트 길이만으로 빠르게 판정한다.
	if len(s) <= maxRunes {
		return s
	}

	count := 0
	for i := range s {
		if count == maxRunes {
			return s[:i]
		}
		count++
	}

	return s
}

// RuneCount 문자열의 문자(rune) 수를 반환합니다.
func RuneCount(s string) int {
	return utf8.RuneCountInString(s)
}

// MaskSensitiveData 민감한 정보를 마스킹합니다.
// 토큰, 키 등의 민감 정보를 안전하게 로깅하기 위해 사용합니다.
func MaskSensitiveData(data string) string {
	if data == "" {
		return ""
	}

	// 8자 이하는 앞 4자만 보여도 절반 이상이 드러나므로 전체 마스킹
	if len(data) <= 8 {
		return "***"
	}

	// 앞 4자만 표시하고 나머지는 마스킹
	if len(data) <= 12 {
		return data[:4] + "***"
	}

	// 긴 토큰은 앞 4자 + 마스킹 + 뒤 4자
	return data[:4] + "***" + data[len(data)-4:]
}

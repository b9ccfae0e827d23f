package notification

import (
	"strings"
)

const (
	// generalAPIErrorReason 4xx 응답 본문을 해석할 수 없을 때 사용하는 사유
	generalAPIErrorReason = "general API error"
)

// Error Pushover로의 알림 전송이 실패했을 때 반환되는 에러입니다.
//
// Reasons는 사람이 읽을 수 있는 실패 사유 목록이며, API가 거부한 경우 응답의 errors 배열이 그대로 담깁니다.
// 전송 계층에서 실패했다면 StatusCode는 0입니다.
type Error struct {
	StatusCode int
	Reasons    []string

	cause error
}

// Error 실패 사유를 "; "로 연결하여 반환합니다.
func (e *Error) Error() string {
	return strings.Join(e.Reasons, "; ")
}

// Unwrap 에러 분류(apperrors.ErrorType)를 담고 있는 원인 에러를 반환합니다.
func (e *Error) Unwrap() error {
	return e.cause
}

// Package log logrus 기반의 전역 로깅 설정과 컴포넌트 단위 로깅 헬퍼를 제공합니다.
package log

import (
	"github.com/sirupsen/logrus"
)

// WithComponent component 필드를 포함한 로그 Entry를 반환합니다.
func WithComponent(component string) *Entry {
	return logrus.WithField("component", component)
}

// WithComponentAndFields component 필드와 추가 필드를 포함한 로그 Entry를 반환합니다.
func WithComponentAndFields(component string, fields Fields) *Entry {
	newFields := make(Fields, len(fields)+1)
	for k, v := range fields {
		newFields[k] = v
	}
	newFields["component"] = component
	return logrus.WithFields(newFields)
}

// ParseLevel 문자열을 로그 레벨로 변환합니다. (예: "debug", "warn")
func ParseLevel(s string) (Level, error) {
	return logrus.ParseLevel(s)
}

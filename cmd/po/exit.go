package main

import (
	"errors"
	"fmt"

	"github.com/darkkaiser/po/internal/config"
	apperrors "github.com/darkkaiser/po/internal/pkg/errors"
)

// 프로세스 종료 코드
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// noConfigMessage 자격증명 파일이 없을 때 표준 에러로 출력하는 안내문
const noConfigMessage = "po --setup을 실행하여 Pushover API 토큰과 사용자 키를 먼저 설정하세요."

// usageError 잘못된 플래그나 인자로 인한 에러입니다.
type usageError struct {
	err error
}

func newUsageError(err error) error {
	return &usageError{err: apperrors.Wrap(err, apperrors.InvalidInput, "잘못된 사용법")}
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// exitCode 에러에 해당하는 종료 코드를 반환합니다.
func exitCode(err error) int {
	var ue *usageError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &ue),
		errors.Is(err, config.ErrNoConfig),
		errors.Is(err, config.ErrInvalidAPIToken),
		errors.Is(err, config.ErrInvalidUserKey):
		return exitUsage
	default:
		return exitError
	}
}

// printError 에러를 "po: " 접두사와 함께 표준 에러로 출력합니다.
func (a *app) printError(err error) {
	if errors.Is(err, config.ErrNoConfig) {
		fmt.Fprintf(a.stderr, "po: %s\n", noConfigMessage)
		return
	}

	fmt.Fprintf(a.stderr, "po: %v\n", err)

	var ue *usageError
	if errors.As(err, &ue) {
		fmt.Fprintln(a.stderr, "자세한 사용법은 po --help를 참고하세요.")
	}
}

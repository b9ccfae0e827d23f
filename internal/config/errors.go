package config

import (
	apperrors "github.com/darkkaiser/po/internal/pkg/errors"
)

// 자격증명 저장소가 반환하는 센티넬 에러입니다. 호출자는 errors.Is로 판별합니다.
var (
	// ErrNoConfig 자격증명 파일이 존재하지 않을 때 반환됩니다. (po --setup으로 생성)
	ErrNoConfig = apperrors.New(apperrors.NotFound, "자격증명 파일이 존재하지 않습니다")

	// ErrConfigIO 자격증명 파일을 읽거나 쓰는 중 입출력 오류가 발생했을 때 반환됩니다.
	ErrConfigIO = apperrors.New(apperrors.System, "자격증명 파일을 읽거나 쓸 수 없습니다")

	// ErrConfigParse 자격증명 파일의 내용을 token, user 두 문자열 필드로 해석할 수 없을 때 반환됩니다.
	ErrConfigParse = apperrors.New(apperrors.ParsingFailed, "자격증명 파일의 형식이 올바르지 않습니다")

	// ErrInvalidAPIToken API 토큰이 형식 규칙을 만족하지 않을 때 반환됩니다.
	ErrInvalidAPIToken = apperrors.New(apperrors.InvalidInput, "유효하지 않은 API 토큰입니다")

	// ErrInvalidUserKey 사용자 키가 형식 규칙을 만족하지 않을 때 반환됩니다.
	ErrInvalidUserKey = apperrors.New(apperrors.InvalidInput, "유효하지 않은 사용자 키입니다")
)

// newSentinelError 센티넬과 같은 타입과 메시지를 가지면서 원인 에러를 보존하는 에러를 생성합니다.
func newSentinelError(sentinel error, cause error) error {
	var appErr *apperrors.AppError
	if !apperrors.As(sentinel, &appErr) {
		return sentinel
	}
	if cause == nil {
		return apperrors.New(appErr.Type(), appErr.Message())
	}

	return apperrors.Wrap(cause, appErr.Type(), appErr.Message())
}

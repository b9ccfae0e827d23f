// Package paste 긴 메시지 본문을 외부 붙여넣기 호스트(GitHub Gist)에 업로드하고
// 공개 URL을 돌려받는 기능을 제공합니다.
package paste

import (
	"context"

	apperrors "github.com/darkkaiser/po/internal/pkg/errors"
)

// component 붙여넣기 업로드 로깅용 컴포넌트 이름
const component = "paste"

// DefaultFilename 파일명이 주어지지 않았을 때 사용하는 업로드 파일명입니다.
const DefaultFilename = "po"

const uploadFailedMessage = "붙여넣기 업로드에 실패했습니다"

// ErrUploadFailed 업로드가 어떤 이유로든 실패했을 때 반환됩니다.
// 원인(상태 코드, 전송 실패, 응답 해석 실패)은 에러 체인에 보존되지만 호출자는 이 센티넬 하나로 판별합니다.
var ErrUploadFailed = apperrors.New(apperrors.ExecutionFailed, uploadFailedMessage)

// Uploader 텍스트를 업로드하고 공개적으로 접근 가능한 URL을 반환하는 인터페이스입니다.
type Uploader interface {
	Upload(ctx context.Context, content, filename string) (string, error)
}

// newUploadError ErrUploadFailed와 일치하면서 원인 에러를 보존하는 에러를 생성합니다.
func newUploadError(cause error) error {
	return apperrors.Wrap(cause, apperrors.ExecutionFailed, uploadFailedMessage)
}

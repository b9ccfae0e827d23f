package main

import (
	"io"
	"strings"

	apperrors "github.com/darkkaiser/po/internal/pkg/errors"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// readMessage 전송할 메시지를 결정합니다.
//
// 메시지 인자가 있으면 그대로 사용하고, 없으면 표준 입력을 끝까지 읽습니다.
// 표준 입력으로 읽은 원본 바이트는 그대로 표준 출력으로 복사하며, charset이 지정된 경우
// 해당 인코딩을 UTF-8로 변환한 뒤 NFC로 정규화합니다.
func (a *app) readMessage(args []string, charset string) (string, error) {
	if len(args) == 1 {
		return norm.NFC.String(args[0]), nil
	}

	var r io.Reader = io.TeeReader(a.stdin, a.stdout)
	if charset = strings.TrimSpace(charset); charset != "" {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return "", newUsageError(apperrors.Wrapf(err, apperrors.InvalidInput, "지원하지 않는 문자 인코딩입니다: %q", charset))
		}
		r = transform.NewReader(r, enc.NewDecoder())
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.System, "표준 입력을 읽을 수 없습니다")
	}

	return norm.NFC.String(string(data)), nil
}

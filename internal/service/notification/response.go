package notification

import (
	"fmt"
	"net/http"

	apperrors "github.com/darkkaiser/po/internal/pkg/errors"
	"github.com/darkkaiser/po/internal/pkg/fetcher"
	applog "github.com/darkkaiser/po/pkg/log"
	"github.com/tidwall/gjson"
)

// interpretResponse Pushover API 응답을 해석합니다.
//
//   - 200: 성공
//   - 400~499: 본문의 {status, errors}를 해석하여 status가 1이 아니면 errors를 사유로 반환
//   - 그 밖의 상태: "API error <status>"
func interpretResponse(resp *http.Response) error {
	data, readErr := fetcher.ReadBody(resp.Body, fetcher.MaxResponseBytes)

	switch {
	case resp.StatusCode == http.StatusOK:
		fields := applog.Fields{"status_code": resp.StatusCode}
		if readErr == nil {
			if id := gjson.GetBytes(data, "request"); id.Exists() {
				fields["request"] = id.String()
			}
		}
		applog.WithComponentAndFields(component, fields).Debug("Pushover API가 알림을 접수했습니다")

		return nil

	case resp.StatusCode >= 400 && resp.StatusCode <= 499:
		reasons := []string{generalAPIErrorReason}
		if readErr == nil {
			if parsed, ok := parseAPIErrors(data); ok {
				reasons = parsed
			}
		}

		return &Error{
			StatusCode: resp.StatusCode,
			Reasons:    reasons,
			cause:      apperrors.Newf(apperrors.ExecutionFailed, "Pushover API가 요청을 거부했습니다 (HTTP %d)", resp.StatusCode),
		}

	default:
		errType := apperrors.ExecutionFailed
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			errType = apperrors.Unavailable
		}

		return &Error{
			StatusCode: resp.StatusCode,
			Reasons:    []string{fmt.Sprintf("API error %d", resp.StatusCode)},
			cause:      apperrors.Newf(errType, "Pushover API 요청이 실패했습니다 (HTTP %d)", resp.StatusCode),
		}
	}
}

// parseAPIErrors {status: 정수, errors: 문자열 배열} 형식의 본문에서 실패 사유를 추출합니다.
//
// 본문이 이 형식이 아니거나, status가 1(성공)이거나, errors가 비어 있으면 false를 반환합니다.
func parseAPIErrors(data []byte) ([]string, bool) {
	if !gjson.ValidBytes(data) {
		return nil, false
	}

	result := gjson.ParseBytes(data)
	status := result.Get("status")
	if status.Type != gjson.Number || status.Int() == 1 {
		return nil, false
	}

	errs := result.Get("errors")
	if !errs.IsArray() {
		return nil, false
	}

	var reasons []string
	for _, e := range errs.Array() {
		if e.Type != gjson.String {
			return nil, false
		}
		reasons = append(reasons, e.Str)
	}
	if len(reasons) == 0 {
		return nil, false
	}

	return reasons, true
}

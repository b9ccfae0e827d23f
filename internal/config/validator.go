package config

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	apperrors "github.com/darkkaiser/po/internal/pkg/errors"
	"github.com/go-playground/validator/v10"
)

const (
	// pushoverKeyLength Pushover API 토큰과 사용자 키의 고정 길이입니다.
	pushoverKeyLength = 30

	// pushoverKeyTag Pushover 키 형식을 검사하는 커스텀 유효성 검사 태그입니다.
	pushoverKeyTag = "pushover_key"
)

var (
	// alphanumericRegex 영문자 또는 숫자가 하나 이상 포함되어 있는지 검사합니다.
	alphanumericRegex = regexp.MustCompile(`[A-Za-z0-9]`)

	// validate 패키지 전역에서 공유하는 Validator 인스턴스 (동시 사용에 안전)
	validate = newValidator()
)

// ValidToken 입력된 문자열이 Pushover API 토큰 또는 사용자 키로 쓸 수 있는 형식인지 검사합니다.
//
// 길이(바이트 기준)가 정확히 30이고 영문자 또는 숫자를 하나 이상 포함하면 유효합니다.
// 예: "a" + 29개의 "-" 는 유효하고, 29자 문자열은 유효하지 않습니다.
func ValidToken(s string) bool {
	return len(s) == pushoverKeyLength && alphanumericRegex.MatchString(s)
}

// newValidator 새로운 Validator 인스턴스를 생성하고 커스텀 유효성 검사 함수를 등록합니다.
func newValidator() *validator.Validate {
	v := validator.New()

	// 검증 에러 메시지에 Go 구조체 필드명 대신 JSON 이름을 보여주도록 설정합니다.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation(pushoverKeyTag, validatePushoverKey); err != nil {
		panic(fmt.Sprintf("초기화 치명적 오류: '%s' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", pushoverKeyTag, err))
	}

	return v
}

// validatePushoverKey validator 라이브러리의 검증 인터페이스를 ValidToken과 연결하는 어댑터입니다.
func validatePushoverKey(fl validator.FieldLevel) bool {
	return ValidToken(fl.Field().String())
}

// checkStruct 구조체의 유효성을 검사하고, 사용자 친화적인 에러 메시지를 반환합니다.
func checkStruct(v *validator.Validate, s any, contextName string) error {
	if err := v.Struct(s); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			// 첫 번째 에러만 상세히 보고
			firstErr := validationErrors[0]
			return apperrors.Newf(apperrors.InvalidInput, "%s의 설정이 올바르지 않습니다: %s (조건: %s)", contextName, firstErr.Namespace(), firstErr.Tag())
		}
		return apperrors.Wrapf(err, apperrors.InvalidInput, "%s 유효성 검증에 실패했습니다", contextName)
	}
	return nil
}

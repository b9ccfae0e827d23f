package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	apperrors "github.com/darkkaiser/po/internal/pkg/errors"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// credentialsFileMode 자격증명 파일의 권한 (소유자만 읽기/쓰기)
	credentialsFileMode fs.FileMode = 0o600

	// credentialsDirMode 자격증명 디렉토리의 권한
	credentialsDirMode fs.FileMode = 0o700
)

// Credentials Pushover API 호출에 필요한 두 개의 자격증명 문자열입니다.
type Credentials struct {
	Token string `json:"token" validate:"pushover_key"`
	User  string `json:"user" validate:"pushover_key"`
}

// ReadCredentials 지정된 경로의 자격증명 파일을 읽어 Credentials를 반환합니다.
//
// 반환되는 에러는 다음 센티넬 중 하나와 errors.Is로 일치합니다.
//   - ErrNoConfig: 파일이 존재하지 않음
//   - ErrConfigIO: 그 밖의 입출력 오류 (권한 없음, 디렉토리 경로 등)
//   - ErrConfigParse: JSON 형식 오류, 필드 누락, 문자열이 아닌 필드
//
// 읽어들인 값의 형식(ValidToken)은 다시 검사하지 않습니다.
func ReadCredentials(path string) (Credentials, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		var pathErr *fs.PathError
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return Credentials{}, newSentinelError(ErrNoConfig, err)
		case errors.As(err, &pathErr):
			return Credentials{}, newSentinelError(ErrConfigIO, err)
		default:
			return Credentials{}, newSentinelError(ErrConfigParse, err)
		}
	}

	// JSON null이나 숫자 등은 문자열 필드로 받아들이지 않는다.
	for _, key := range []string{"token", "user"} {
		if _, ok := k.Get(key).(string); !ok {
			return Credentials{}, newSentinelError(ErrConfigParse, fmt.Errorf("'%s' 필드가 없거나 문자열이 아닙니다", key))
		}
	}

	var creds Credentials
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			ErrorUnset: true,
		},
	}
	if err := k.UnmarshalWithConf("", &creds, unmarshalConf); err != nil {
		return Credentials{}, newSentinelError(ErrConfigParse, err)
	}

	return creds, nil
}

// WriteCredentials API 토큰과 사용자 키를 검증한 뒤 지정된 경로에 JSON으로 저장합니다.
//
// 파일 시스템에 접근하기 전에 token, user 순서로 형식을 검사하며, 둘 다 유효하지 않으면
// ErrInvalidAPIToken만 보고합니다. 검증에 실패하면 파일은 생성되지도 변경되지도 않습니다.
// 기존 파일은 전체가 덮어써집니다.
func WriteCredentials(token, user, path string) error {
	creds := Credentials{Token: token, User: user}
	if err := creds.validate(); err != nil {
		return err
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(creds, "json"), nil); err != nil {
		return newSentinelError(ErrConfigIO, err)
	}

	data, err := k.Marshal(json.Parser())
	if err != nil {
		return newSentinelError(ErrConfigIO, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), credentialsDirMode); err != nil {
		return newSentinelError(ErrConfigIO, err)
	}
	if err := os.WriteFile(path, data, credentialsFileMode); err != nil {
		return newSentinelError(ErrConfigIO, err)
	}

	return nil
}

// validate 구조체 태그의 pushover_key 규칙으로 token, user를 검사합니다.
// 검증 에러는 필드 선언 순서대로 보고되므로 첫 번째 에러가 token이면 user는 보고하지 않습니다.
func (c Credentials) validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return apperrors.Wrap(err, apperrors.Internal, "자격증명 검증 중 예기치 않은 오류가 발생했습니다")
	}

	if validationErrs[0].StructField() == "User" {
		return newSentinelError(ErrInvalidUserKey, fmt.Errorf("%q", c.User))
	}

	return newSentinelError(ErrInvalidAPIToken, fmt.Errorf("%q", c.Token))
}

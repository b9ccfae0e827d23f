// Package config po의 자격증명 저장소와 애플리케이션 설정 로더를 제공합니다.
//
// 자격증명(tokens.json)은 ReadCredentials/WriteCredentials로 다루며, 그 밖의 실행 설정은
// Load가 기본값, 선택적 설정 파일(po.json), 환경 변수(PO_) 순서로 병합하여 AppConfig로 반환합니다.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/po/internal/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// DefaultPushoverAPIURL Pushover 메시지 전송 API 엔드포인트
	DefaultPushoverAPIURL = "https://api.pushover.net/1/messages.json"

	// DefaultPushoverTimeout Pushover API 요청 타임아웃 기본값
	DefaultPushoverTimeout = 15 * time.Second

	// DefaultGistAPIURL GitHub Gist 생성 API 엔드포인트
	DefaultGistAPIURL = "https://api.github.com/gists"

	// DefaultGistTimeout Gist 업로드 요청 타임아웃 기본값
	DefaultGistTimeout = 30 * time.Second

	// DefaultGistThreshold --gist 사용 시 업로드를 수행하는 메시지 길이 기준 (문자 수)
	DefaultGistThreshold = 1024

	// envPrefix 설정을 덮어쓰는 환경 변수의 접두사
	envPrefix = "PO_"

	// githubTokenEnv Gist 토큰이 설정되지 않았을 때 참조하는 환경 변수
	githubTokenEnv = "GITHUB_TOKEN"
)

// AppConfig 애플리케이션의 실행 설정을 관장하는 최상위 구조체
type AppConfig struct {
	Debug    bool           `json:"debug"`
	Pushover PushoverConfig `json:"pushover"`
	Gist     GistConfig     `json:"gist"`
	Log      LogConfig      `json:"log"`
}

// PushoverConfig Pushover API 호출 설정
type PushoverConfig struct {
	APIURL  string        `json:"api_url" validate:"required,url"`
	Timeout time.Duration `json:"timeout" validate:"gt=0"`
}

// GistConfig 긴 메시지를 업로드할 GitHub Gist 설정
type GistConfig struct {
	APIURL    string        `json:"api_url" validate:"required,url"`
	Token     string        `json:"token"`
	Timeout   time.Duration `json:"timeout" validate:"gt=0"`
	Threshold int           `json:"threshold" validate:"gt=0"`
}

// LogConfig 파일 로그 설정. Dir이 비어 있으면 파일 로그를 남기지 않습니다.
type LogConfig struct {
	Dir    string `json:"dir"`
	MaxAge int    `json:"max_age" validate:"gte=0"`

	// Level 로그 레벨 (빈 값: 실행 프로필의 기본 레벨)
	Level string `json:"level" validate:"omitempty,oneof=panic fatal error warn warning info debug trace"`
}

// defaults 가장 낮은 우선순위로 적용되는 기본 설정값
func defaults() map[string]any {
	return map[string]any{
		"debug":            false,
		"pushover.api_url": DefaultPushoverAPIURL,
		"pushover.timeout": DefaultPushoverTimeout.String(),
		"gist.api_url":     DefaultGistAPIURL,
		"gist.token":       "",
		"gist.timeout":     DefaultGistTimeout.String(),
		"gist.threshold":   DefaultGistThreshold,
		"log.dir":          "",
		"log.max_age":      0,
		"log.level":        "",
	}
}

// Load 설정 디렉토리(dir)를 기준으로 AppConfig를 생성합니다.
//
// 병합 순서 (뒤가 앞을 덮어씀):
//  1. 기본값
//  2. <dir>/po.json (파일이 없으면 건너뜀)
//  3. 환경 변수 PO_ 접두사 (예: PO_GIST__THRESHOLD -> gist.threshold)
//
// Gist 토큰이 설정되지 않았으면 GITHUB_TOKEN 환경 변수를 사용합니다.
func Load(dir string) (*AppConfig, error) {
	k := koanf.New(".")

	// 1. 기본값 로드
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "애플리케이션 기본 설정 로드에 실패했습니다")
	}

	// 2. JSON 설정 파일 로드 (선택)
	if dir != "" {
		filename := filepath.Join(dir, SettingsFilename)
		if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
			var pathErr *fs.PathError
			switch {
			case errors.Is(err, fs.ErrNotExist):
				// 설정 파일은 선택 사항이다.
			case errors.As(err, &pathErr):
				return nil, apperrors.Wrapf(err, apperrors.System, "설정 파일을 읽을 수 없습니다: '%s'", filename)
			default:
				return nil, apperrors.Wrapf(err, apperrors.ParsingFailed, "설정 파일의 형식이 올바르지 않습니다: '%s'", filename)
			}
		}
	}

	// 3. 환경 변수 로드 (최우선 순위)
	if err := k.Load(env.Provider(envPrefix, ".", normalizeEnvKey), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	// 4. 구조체 언마샬링 (정의되지 않은 필드는 에러)
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			ErrorUnused:      true,
			WeaklyTypedInput: true,
		},
	}
	var appConfig AppConfig
	if err := k.UnmarshalWithConf("", &appConfig, unmarshalConf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ParsingFailed, "설정 데이터를 애플리케이션 구조체로 변환하는데 실패했습니다")
	}

	if appConfig.Gist.Token == "" {
		appConfig.Gist.Token = os.Getenv(githubTokenEnv)
	}

	// 5. 유효성 검사
	if err := checkStruct(validate, &appConfig, "애플리케이션 설정"); err != nil {
		return nil, err
	}

	return &appConfig, nil
}

// normalizeEnvKey 환경 변수 이름을 koanf 키 경로로 변환합니다.
// 접두사를 제거하고 소문자로 바꾼 뒤, 이중 언더스코어(__)를 계층 구분자(.)로 바꿉니다.
func normalizeEnvKey(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "__", ".")
}

package config

import (
	"os"
	"path/filepath"

	apperrors "github.com/darkkaiser/po/internal/pkg/errors"
)

const (
	// AppName 애플리케이션의 전역 고유 식별자입니다.
	AppName = "po"

	// CredentialsFilename API 토큰과 사용자 키를 저장하는 자격증명 파일명입니다.
	CredentialsFilename = "tokens.json"

	// SettingsFilename 선택적으로 읽어들이는 애플리케이션 설정 파일명입니다.
	SettingsFilename = AppName + ".json"
)

// DefaultDir 설정 파일이 위치하는 기본 디렉토리를 반환합니다.
//
// $XDG_CONFIG_HOME이 설정되어 있으면 그 아래의 po 디렉토리를, 그렇지 않으면 ~/.config/po를 사용합니다.
// 운영체제와 무관하게 동일한 경로 규칙을 따릅니다.
func DefaultDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.System, "사용자 홈 디렉토리를 확인할 수 없습니다")
	}

	return filepath.Join(home, ".config", AppName), nil
}

// DefaultCredentialsPath 기본 자격증명 파일 경로를 반환합니다.
func DefaultCredentialsPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}

	return CredentialsPath(dir), nil
}

// CredentialsPath 지정된 설정 디렉토리 아래의 자격증명 파일 경로를 반환합니다.
func CredentialsPath(dir string) string {
	return filepath.Join(dir, CredentialsFilename)
}

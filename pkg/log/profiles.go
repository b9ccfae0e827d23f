package log

import "os"

// NewCLIOptions 일반 실행에 사용하는 로그 설정을 반환합니다.
// 경고 이상만 표준 에러로 출력하여 파이프라인 출력을 방해하지 않습니다.
func NewCLIOptions(appName string) Options {
	return Options{
		Name:  appName,
		Level: WarnLevel,

		MaxAge:     30,
		MaxSizeMB:  10,
		MaxBackups: 5,

		ConsoleWriter: os.Stderr,

		ReportCaller:     false,
		CallerPathPrefix: "github.com/darkkaiser",
	}
}

// NewDebugOptions 문제 분석(--verbose)에 사용하는 로그 설정을 반환합니다.
func NewDebugOptions(appName string) Options {
	return Options{
		Name:  appName,
		Level: DebugLevel,

		MaxAge:     7,
		MaxSizeMB:  10,
		MaxBackups: 5,

		EnableVerboseLog: true,
		ConsoleWriter:    os.Stderr,

		ReportCaller:     true,
		CallerPathPrefix: "github.com/darkkaiser",
	}
}

package main

import (
	"fmt"
	"slices"

	"github.com/darkkaiser/po/internal/config"
)

// setupInstructions 인자 없이 --setup을 실행했을 때 출력하는 안내문
const setupInstructions = `po를 사용하려면 Pushover API 토큰과 사용자 키가 필요합니다.

1. Pushover 계정이 없다면 https://pushover.net/login 에서 가입합니다.
2. https://pushover.net/apps/build 에서 API 토큰을 발급받습니다.
   애플리케이션 이름은 알림을 보낼 컴퓨터의 호스트 이름 등으로 지정하거나 기본값을 사용해도 됩니다.
3. https://pushover.net 대시보드에서 사용자 키를 확인합니다.
4. 마지막으로 다음 명령을 실행합니다.

   po --setup <API 토큰> <사용자 키>

   토큰이나 키가 하이픈(-)으로 시작하면 다음과 같이 -- 뒤에 지정할 수도 있습니다.

   po --setup -- <API 토큰> <사용자 키>
`

// runSetup 자격증명을 저장하거나, 인자가 없으면 설정 방법을 안내합니다.
func (a *app) runSetup(f flags, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.stdout, setupInstructions)
		return nil
	}

	dir, err := a.resolveConfigDir(f)
	if err != nil {
		return err
	}

	path := config.CredentialsPath(dir)
	if err := config.WriteCredentials(args[0], args[1], path); err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "자격증명을 저장했습니다: %s\n", path)

	return nil
}

// normalizeSetupArgs "--setup <토큰> <사용자 키>" 형태에서 "--setup" 뒤에 "--"를 끼워 넣습니다.
//
// Pushover 키는 하이픈(-)으로 시작할 수 있으므로 플래그로 해석되지 않게 합니다.
// "--setup" 뒤에 정확히 두 개의 인자가 남아 있고 "--"가 아직 없을 때만 적용합니다.
func normalizeSetupArgs(args []string) []string {
	if slices.Contains(args, "--") {
		return args
	}

	for i, arg := range args {
		if arg == "--setup" && len(args)-i-1 == 2 {
			normalized := make([]string, 0, len(args)+1)
			normalized = append(normalized, args[:i+1]...)
			normalized = append(normalized, "--")
			return append(normalized, args[i+1:]...)
		}
	}

	return args
}

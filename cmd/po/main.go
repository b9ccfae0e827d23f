// po 표준 입력이나 인자로 받은 메시지를 Pushover 알림으로 전송하는 명령행 도구입니다.
//
//	make test 2>&1 | po -t "테스트 결과" -g
//	po -p 1 "배포가 완료되었습니다"
//	po --setup <API 토큰> <사용자 키>
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, newApp(os.Stdin, os.Stdout, os.Stderr), os.Args[1:])
	stop()

	os.Exit(code)
}

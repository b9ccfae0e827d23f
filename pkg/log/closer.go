package log

import (
	"errors"
	"io"
	"sync/atomic"
)

// closer 로그 파일(Main, Verbose)의 리소스 해제를 통합 관리합니다.
//
// Hook을 먼저 비활성화한 뒤 파일을 닫으며, 일부 파일 닫기에 실패해도 나머지 파일의 Close()를 계속 수행합니다.
// Close()는 여러 번 호출해도 안전합니다.
type closer struct {
	closers []io.Closer

	hook *hook

	// closed 중복 Close() 호출을 방지하기 위한 원자적 플래그 (0: open, 1: closed)
	closed int32
}

func (c *closer) Close() error {
	if !atomic.CompareAndSwapInt32(&c.closed, 0, 1) {
		return nil
	}

	if c.hook != nil {
		c.hook.Close()
	}

	var errs error
	for _, cl := range c.closers {
		if cl == nil {
			continue
		}
		if s, ok := cl.(interface{ Sync() error }); ok {
			_ = s.Sync()
		}
		if err := cl.Close(); err != nil {
			errs = errors.Join(errs, err)
		}
	}

	return errs
}

package fetcher

import (
	"io"
	"sync"

	apperrors "github.com/darkkaiser/po/internal/pkg/errors"
)

const (
	// MaxResponseBytes 응답 본문을 메모리로 읽어들일 때 허용하는 최대 크기 (1MiB)
	// Pushover와 GitHub의 응답은 수 KB 이내이므로 이보다 큰 응답은 비정상으로 간주합니다.
	MaxResponseBytes = 1 << 20

	// maxDrainBytes 커넥션 재사용을 위해 Body를 비울 때 읽을 최대 바이트 수 (64KB)
	maxDrainBytes = 64 * 1024
)

// drainBufPool DrainAndClose에서 사용할 바이트 버퍼 풀
var drainBufPool = sync.Pool{
	New: func() any {
		b := make([]byte, 32*1024)
		return &b
	},
}

// DrainAndClose HTTP 커넥션 재사용을 위해 응답 객체의 Body를 비우고 닫습니다.
//
// maxDrainBytes를 초과하는 나머지는 읽지 않으므로 해당 커넥션은 재사용되지 않습니다.
// body가 nil이면 아무 작업도 하지 않습니다.
func DrainAndClose(body io.ReadCloser) {
	if body == nil {
		return
	}
	defer body.Close()

	bufPtr := drainBufPool.Get().(*[]byte)
	defer drainBufPool.Put(bufPtr)

	_, _ = io.CopyBuffer(io.Discard, io.LimitReader(body, maxDrainBytes), *bufPtr)
}

// ReadBody 응답 본문을 최대 limit 바이트까지 읽습니다.
//
// limit이 0 이하이면 MaxResponseBytes가 적용됩니다. 본문이 limit을 초과하면
// ExecutionFailed 타입의 에러를 반환합니다. Body를 닫는 것은 호출자의 책임입니다.
func ReadBody(body io.Reader, limit int64) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = MaxResponseBytes
	}

	// 초과 여부를 판정하기 위해 1바이트를 더 읽는다.
	data, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Unavailable, "응답 본문을 읽는 중 에러가 발생했습니다")
	}
	if int64(len(data)) > limit {
		return nil, apperrors.Newf(apperrors.ExecutionFailed, "응답 본문의 크기가 허용된 최대 크기(%d 바이트)를 초과했습니다", limit)
	}

	return data, nil
}

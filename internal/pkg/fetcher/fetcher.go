// Package fetcher 외부 HTTP API 호출에 사용하는 클라이언트 데코레이터 체인을 제공합니다.
//
// 기본 체인은 다음 순서로 요청을 전달합니다.
//
//	UserAgentFetcher -> LoggingFetcher -> HTTPFetcher
//
// 각 데코레이터는 Fetcher 인터페이스를 구현하므로 테스트에서는 mocks.MockFetcher 또는
// httpmock 트랜스포트를 주입한 HTTPFetcher로 손쉽게 교체할 수 있습니다.
package fetcher

import (
	"context"
	"io"
	"net/http"
	"time"
)

// component Fetcher 로깅용 컴포넌트 이름
const component = "fetcher"

// DefaultUserAgent po가 외부 API에 자신을 알릴 때 사용하는 User-Agent입니다.
const DefaultUserAgent = "po"

// Fetcher HTTP 요청을 수행하는 핵심 인터페이스입니다.
//
// 구현 시 주의사항:
//   - 반환된 응답 객체의 Body는 반드시 호출자가 닫아야 합니다.
//   - Context 취소 시 즉시 요청을 중단하고 적절한 에러를 반환해야 합니다.
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)
}

// New 기본 데코레이터 체인이 구성된 Fetcher를 생성합니다.
//
// timeout이 0 이하이면 HTTPFetcher의 기본 타임아웃이 적용되며,
// userAgent가 비어 있으면 DefaultUserAgent를 사용합니다.
func New(timeout time.Duration, userAgent string, opts ...Option) Fetcher {
	if timeout > 0 {
		opts = append([]Option{WithTimeout(timeout)}, opts...)
	}

	var f Fetcher = NewHTTPFetcher(opts...)
	f = NewLoggingFetcher(f)
	f = NewUserAgentFetcher(f, userAgent)

	return f
}

// Post 지정된 URL로 HTTP POST 요청을 전송하는 헬퍼 함수입니다.
//
// 요청 실패 시 응답 객체가 함께 반환되었다면 커넥션 재사용을 위해 Body를 비우고 닫습니다.
// 성공 시 반환된 응답 객체의 Body는 호출자가 반드시 닫아야 합니다.
func Post(ctx context.Context, f Fetcher, url string, header http.Header, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := f.Do(req)
	if err != nil {
		if resp != nil {
			DrainAndClose(resp.Body)
		}

		return nil, err
	}

	return resp, nil
}

package fetcher

import (
	"net/http"
	"time"
)

// defaultTimeout HTTPFetcher의 기본 요청 타임아웃
const defaultTimeout = 30 * time.Second

// HTTPFetcher 타임아웃이 설정된 http.Client를 감싸는 최하위 Fetcher 구현체입니다.
type HTTPFetcher struct {
	client *http.Client
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ Fetcher = (*HTTPFetcher)(nil)

// Option HTTPFetcher 생성 옵션입니다.
type Option func(*HTTPFetcher)

// WithTimeout 요청 전체(연결, 헤더, 본문 읽기 포함)에 대한 타임아웃을 설정합니다.
func WithTimeout(timeout time.Duration) Option {
	return func(h *HTTPFetcher) {
		if timeout > 0 {
			h.client.Timeout = timeout
		}
	}
}

// WithTransport 사용할 RoundTripper를 교체합니다. 테스트에서 httpmock 트랜스포트를 주입할 때 사용합니다.
func WithTransport(transport http.RoundTripper) Option {
	return func(h *HTTPFetcher) {
		if transport != nil {
			h.client.Transport = transport
		}
	}
}

// NewHTTPFetcher 기본 타임아웃(30초) 설정이 포함된 새로운 HTTPFetcher 인스턴스를 생성합니다.
func NewHTTPFetcher(opts ...Option) *HTTPFetcher {
	h := &HTTPFetcher{
		client: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Do 요청을 실행합니다.
func (h *HTTPFetcher) Do(req *http.Request) (*http.Response, error) {
	return h.client.Do(req)
}

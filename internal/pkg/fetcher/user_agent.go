package fetcher

import (
	"net/http"
)

// UserAgentFetcher HTTP 요청에 User-Agent를 주입하는 미들웨어입니다.
//
// 요청에 이미 User-Agent가 있으면 수정하지 않고 그대로 전달합니다.
type UserAgentFetcher struct {
	delegate  Fetcher
	userAgent string
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ Fetcher = (*UserAgentFetcher)(nil)

// NewUserAgentFetcher 새로운 UserAgentFetcher 인스턴스를 생성합니다.
// userAgent가 비어 있으면 DefaultUserAgent를 사용합니다.
func NewUserAgentFetcher(delegate Fetcher, userAgent string) *UserAgentFetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &UserAgentFetcher{
		delegate:  delegate,
		userAgent: userAgent,
	}
}

// Do HTTP 요청을 수행하며, 필요한 경우 User-Agent를 주입합니다.
//
// 원본 요청 객체는 변경하지 않으며, 주입이 필요한 경우 req.Clone()으로 복제본을 만들어 전달합니다.
func (f *UserAgentFetcher) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return f.delegate.Do(req)
	}

	clonedReq := req.Clone(req.Context())
	clonedReq.Header.Set("User-Agent", f.userAgent)

	return f.delegate.Do(clonedReq)
}

package paste

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/darkkaiser/po/internal/pkg/fetcher"
	applog "github.com/darkkaiser/po/pkg/log"
	"github.com/tidwall/gjson"
)

const (
	// DefaultGistAPIURL GitHub Gist 생성 API 엔드포인트
	DefaultGistAPIURL = "https://api.github.com/gists"

	// DefaultTimeout 업로드 요청 한 건에 허용하는 최대 시간
	DefaultTimeout = 30 * time.Second

	gistAcceptHeader = "application/vnd.github+json"
)

// gistDocument Gist 생성 요청 본문
type gistDocument struct {
	Files map[string]gistFile `json:"files"`
}

type gistFile struct {
	Content string `json:"content"`
}

// GistUploader GitHub Gist API를 사용하는 Uploader 구현체입니다.
type GistUploader struct {
	apiURL  string
	token   string
	timeout time.Duration
	fetcher fetcher.Fetcher
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ Uploader = (*GistUploader)(nil)

// GistOption GistUploader 생성 옵션입니다.
type GistOption func(*GistUploader)

// WithAPIURL Gist API 엔드포인트를 변경합니다.
func WithAPIURL(apiURL string) GistOption {
	return func(u *GistUploader) {
		if apiURL != "" {
			u.apiURL = apiURL
		}
	}
}

// WithToken GitHub 인증 토큰을 설정합니다. 설정되면 Authorization 헤더로 전송됩니다.
func WithToken(token string) GistOption {
	return func(u *GistUploader) {
		u.token = token
	}
}

// WithTimeout 업로드 요청 타임아웃을 설정합니다.
func WithTimeout(timeout time.Duration) GistOption {
	return func(u *GistUploader) {
		if timeout > 0 {
			u.timeout = timeout
		}
	}
}

// WithFetcher HTTP 요청에 사용할 Fetcher를 교체합니다.
func WithFetcher(f fetcher.Fetcher) GistOption {
	return func(u *GistUploader) {
		if f != nil {
			u.fetcher = f
		}
	}
}

// NewGistUploader 새로운 GistUploader 인스턴스를 생성합니다.
func NewGistUploader(opts ...GistOption) *GistUploader {
	u := &GistUploader{
		apiURL:  DefaultGistAPIURL,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(u)
	}
	if u.fetcher == nil {
		u.fetcher = fetcher.New(u.timeout, fetcher.DefaultUserAgent)
	}

	return u
}

// Upload content를 filename 이름의 파일로 하는 Gist를 생성하고 html_url을 반환합니다.
//
// 200 또는 201 응답에서 유효한 html_url을 얻은 경우에만 성공합니다.
// 그 밖의 모든 실패는 ErrUploadFailed와 일치하는 에러로 반환됩니다.
func (u *GistUploader) Upload(ctx context.Context, content, filename string) (string, error) {
	if filename == "" {
		filename = DefaultFilename
	}

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	body, err := json.Marshal(gistDocument{
		Files: map[string]gistFile{filename: {Content: content}},
	})
	if err != nil {
		return "", newUploadError(err)
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")
	header.Set("User-Agent", fetcher.DefaultUserAgent)
	header.Set("Accept", gistAcceptHeader)
	if u.token != "" {
		header.Set("Authorization", "Bearer "+u.token)
	}

	resp, err := fetcher.Post(ctx, u.fetcher, u.apiURL, header, bytes.NewReader(body))
	if err != nil {
		return "", newUploadError(err)
	}
	defer fetcher.DrainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", newUploadError(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	data, err := fetcher.ReadBody(resp.Body, fetcher.MaxResponseBytes)
	if err != nil {
		return "", newUploadError(err)
	}

	htmlURL := gjson.GetBytes(data, "html_url")
	if htmlURL.Type != gjson.String {
		return "", newUploadError(errors.New("response has no html_url"))
	}
	if parsed, err := url.Parse(htmlURL.Str); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", newUploadError(fmt.Errorf("invalid html_url %q", htmlURL.Str))
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"filename": filename,
		"url":      htmlURL.Str,
		"size":     len(content),
	}).Debug("Gist 업로드 완료")

	return htmlURL.Str, nil
}

// Package notification 메시지와 선택 항목을 Pushover 요청으로 조립하여 전송하는 Dispatcher를 제공합니다.
//
//	d := notification.New()
//	err := d.Push(ctx, token, user, "빌드 완료",
//	    notification.Title("CI"),
//	    notification.Priority(1),
//	    notification.Gist{},
//	)
//
// 긴 메시지는 1024자로 잘려 전송되며, Gist 항목이 주어지면 전문이 Gist로 업로드되어 링크로 첨부됩니다.
package notification

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/po/internal/pkg/errors"
	"github.com/darkkaiser/po/internal/pkg/fetcher"
	"github.com/darkkaiser/po/internal/service/paste"
	applog "github.com/darkkaiser/po/pkg/log"
	"github.com/darkkaiser/po/pkg/strutil"
)

// component 알림 전송 로깅용 컴포넌트 이름
const component = "notification"

const (
	// DefaultAPIURL Pushover 메시지 전송 API 엔드포인트
	DefaultAPIURL = "https://api.pushover.net/1/messages.json"

	// DefaultTimeout 알림 전송 요청 한 건에 허용하는 최대 시간
	DefaultTimeout = 15 * time.Second

	// MaxMessageLength 전송되는 message 필드의 최대 문자 수
	MaxMessageLength = 1024

	// GistURLTitle Gist 링크에 붙는 표시 제목
	GistURLTitle = "Full Output (GitHub Gist)"

	// defaultFilename Title이 주어지기 전에 Gist 업로드에 사용하는 파일명
	defaultFilename = "po"
)

// Dispatcher Pushover API로 알림을 전송합니다. 상태를 갖지 않으므로 여러 번 재사용할 수 있습니다.
type Dispatcher struct {
	apiURL   string
	timeout  time.Duration
	fetcher  fetcher.Fetcher
	uploader paste.Uploader
	diag     io.Writer
}

// Option Dispatcher 생성 옵션입니다.
type Option func(*Dispatcher)

// WithAPIURL 메시지 전송 엔드포인트를 변경합니다.
func WithAPIURL(apiURL string) Option {
	return func(d *Dispatcher) {
		if apiURL != "" {
			d.apiURL = apiURL
		}
	}
}

// WithTimeout 전송 요청 타임아웃을 설정합니다.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.timeout = timeout
		}
	}
}

// WithFetcher HTTP 요청에 사용할 Fetcher를 교체합니다.
func WithFetcher(f fetcher.Fetcher) Option {
	return func(d *Dispatcher) {
		if f != nil {
			d.fetcher = f
		}
	}
}

// WithUploader Gist 항목 처리에 사용할 Uploader를 교체합니다.
func WithUploader(u paste.Uploader) Option {
	return func(d *Dispatcher) {
		if u != nil {
			d.uploader = u
		}
	}
}

// WithDiagnosticWriter Debug 항목이 요청 본문을 출력할 대상을 지정합니다. 기본값은 표준 에러입니다.
func WithDiagnosticWriter(w io.Writer) Option {
	return func(d *Dispatcher) {
		if w != nil {
			d.diag = w
		}
	}
}

// New 새로운 Dispatcher 인스턴스를 생성합니다.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		apiURL:  DefaultAPIURL,
		timeout: DefaultTimeout,
		diag:    os.Stderr,
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.fetcher == nil {
		d.fetcher = fetcher.New(d.timeout, fetcher.DefaultUserAgent)
	}
	if d.uploader == nil {
		d.uploader = paste.NewGistUploader()
	}

	return d
}

// Push 메시지와 선택 항목으로 알림 요청을 조립하여 Pushover API로 전송합니다.
//
// message는 최대 1024자로 잘려 전송되며, params는 주어진 순서대로 처리됩니다.
// Gist 항목은 잘리지 않은 전문을 업로드하며 그 시점까지의 마지막 Title을 파일명으로 사용합니다.
//
// 실패 시 반환되는 에러는 *Error이며, Reasons에 실패 사유가 담깁니다.
// 재시도는 수행하지 않습니다.
func (d *Dispatcher) Push(ctx context.Context, token, user, message string, params ...Parameter) error {
	req := newRequest(token, user, strutil.Truncate(message, MaxMessageLength))
	for _, p := range params {
		req = d.apply(ctx, req, message, p)
	}

	body := req.encode()
	if req.debug {
		fmt.Fprintf(d.diag, "push body:\n%s\n", body)
	}

	logger := applog.WithComponentAndFields(component, applog.Fields{
		"token":          strutil.MaskSensitiveData(token),
		"message_length": strutil.RuneCount(message),
		"truncated":      strutil.RuneCount(message) > MaxMessageLength,
	})

	if err := d.submit(ctx, body); err != nil {
		logger.WithError(err).Error("알림 전송에 실패했습니다")
		return err
	}

	logger.Info("알림을 전송했습니다")

	return nil
}

// Send Options로 표현된 항목들로 알림을 전송합니다.
func (d *Dispatcher) Send(ctx context.Context, token, user, message string, opts Options) error {
	return d.Push(ctx, token, user, message, opts.Parameters()...)
}

// apply 항목 하나를 반영한 새 요청을 반환합니다.
func (d *Dispatcher) apply(ctx context.Context, req request, message string, p Parameter) request {
	switch v := p.(type) {
	case Priority:
		if v == 0 {
			return req
		}
		return req.with("priority", strconv.Itoa(int(v)))
	case Title:
		return req.with("title", string(v)).withFilename(string(v))
	case Device:
		return req.with("device", string(v))
	case Sound:
		return req.with("sound", string(v))
	case URL:
		return req.with("url", string(v))
	case URLTitle:
		return req.with("url_title", string(v))
	case Gist:
		return d.attachGist(ctx, req, message)
	case Debug:
		return req.withDebug()
	default:
		return req
	}
}

// attachGist 메시지 전문을 업로드하고 성공하면 링크를 첨부합니다.
// 업로드 실패는 알림 전송을 막지 않습니다.
func (d *Dispatcher) attachGist(ctx context.Context, req request, message string) request {
	gistURL, err := d.uploader.Upload(ctx, message, req.filename)
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"filename": req.filename,
		}).WithError(err).Warn("Gist 업로드에 실패하여 링크 없이 알림을 전송합니다")

		return req
	}

	if prev, ok := req.get("url"); ok {
		applog.WithComponentAndFields(component, applog.Fields{
			"previous_url": prev,
			"gist_url":     gistURL,
		}).Debug("앞서 지정된 URL을 Gist 링크로 대체합니다")
	}

	return req.with("url", gistURL).with("url_title", GistURLTitle)
}

// submit 인코딩된 본문을 전송하고 응답을 해석합니다.
func (d *Dispatcher) submit(ctx context.Context, body string) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	header := http.Header{}
	header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := fetcher.Post(ctx, d.fetcher, d.apiURL, header, strings.NewReader(body))
	if err != nil {
		return newTransportError(err)
	}
	defer fetcher.DrainAndClose(resp.Body)

	return interpretResponse(resp)
}

// newTransportError 전송 계층 실패를 *Error로 변환합니다.
func newTransportError(err error) error {
	errType := apperrors.Unavailable
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		errType = apperrors.Timeout
	}

	return &Error{
		Reasons: []string{fmt.Sprintf("transport error %v", err)},
		cause:   apperrors.Wrap(err, errType, "Pushover API에 연결할 수 없습니다"),
	}
}

package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/darkkaiser/po/internal/config"
	applog "github.com/darkkaiser/po/pkg/log"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/htmlindex"
)

var (
	testToken = strings.Repeat("a", 30)
	testUser  = strings.Repeat("u", 30)
)

// testEnv run 실행에 필요한 입출력 버퍼와 모의 트랜스포트
type testEnv struct {
	app       *app
	stdout    *bytes.Buffer
	stderr    *bytes.Buffer
	transport *httpmock.MockTransport
	dir       string
}

func newTestEnv(t *testing.T, stdin string) *testEnv {
	t.Helper()

	t.Setenv("GITHUB_TOKEN", "")

	env := &testEnv{
		stdout:    &bytes.Buffer{},
		stderr:    &bytes.Buffer{},
		transport: httpmock.NewMockTransport(),
		dir:       t.TempDir(),
	}
	env.app = newApp(strings.NewReader(stdin), env.stdout, env.stderr)
	env.app.transport = env.transport
	env.app.setupLog = func(applog.Options) (io.Closer, error) {
		return io.NopCloser(nil), nil
	}

	return env
}

func (e *testEnv) run(args ...string) int {
	return run(context.Background(), e.app, append([]string{"--config-dir", e.dir}, args...))
}

func (e *testEnv) writeCredentials(t *testing.T) {
	t.Helper()
	require.NoError(t, config.WriteCredentials(testToken, testUser, config.CredentialsPath(e.dir)))
}

// capturePushover Pushover 요청의 폼 값을 기록하는 응답자를 등록합니다.
func (e *testEnv) capturePushover(status int, body string) *url.Values {
	var captured url.Values
	e.transport.RegisterResponder(http.MethodPost, config.DefaultPushoverAPIURL,
		func(req *http.Request) (*http.Response, error) {
			if err := req.ParseForm(); err != nil {
				return nil, err
			}
			captured = req.PostForm
			return httpmock.NewStringResponse(status, body), nil
		})

	return &captured
}

func TestSetup_Instructions(t *testing.T) {
	env := newTestEnv(t, "")

	code := env.run("--setup")

	assert.Equal(t, exitOK, code)
	assert.Contains(t, env.stdout.String(), "https://pushover.net/apps/build")
	assert.Contains(t, env.stdout.String(), "po --setup <API 토큰> <사용자 키>")
	assert.Empty(t, env.stderr.String())
}

func TestSetup_WritesCredentials(t *testing.T) {
	dashUser := strings.Repeat("-", 29) + "a"

	tests := []struct {
		name     string
		args     []string
		wantUser string
	}{
		{name: "토큰과 키", args: []string{"--setup", testToken, testUser}, wantUser: testUser},
		{name: "하이픈으로 시작하는 키", args: []string{"--setup", testToken, dashUser}, wantUser: dashUser},
		{name: "-- 구분자와 하이픈으로 시작하는 키", args: []string{"--setup", "--", testToken, dashUser}, wantUser: dashUser},
		{name: "다른 플래그 뒤의 --setup", args: []string{"-v", "--setup", testToken, dashUser}, wantUser: dashUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, "")

			code := env.run(tt.args...)

			require.Equal(t, exitOK, code, env.stderr.String())
			creds, err := config.ReadCredentials(config.CredentialsPath(env.dir))
			require.NoError(t, err)
			assert.Equal(t, testToken, creds.Token)
			assert.Equal(t, tt.wantUser, creds.User)
			assert.Contains(t, env.stdout.String(), config.CredentialsPath(env.dir))
		})
	}
}

func TestNormalizeSetupArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{name: "토큰과 키", args: []string{"--setup", "tok", "-key"}, want: []string{"--setup", "--", "tok", "-key"}},
		{name: "앞선 플래그 유지", args: []string{"--config-dir", "/tmp/po", "--setup", "tok", "key"}, want: []string{"--config-dir", "/tmp/po", "--setup", "--", "tok", "key"}},
		{name: "이미 -- 있음", args: []string{"--setup", "--", "tok"}, want: []string{"--setup", "--", "tok"}},
		{name: "인자 없는 --setup", args: []string{"--setup"}, want: []string{"--setup"}},
		{name: "인자 3개", args: []string{"--setup", "a", "b", "c"}, want: []string{"--setup", "a", "b", "c"}},
		{name: "메시지 전송", args: []string{"-t", "제목", "hello"}, want: []string{"-t", "제목", "hello"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeSetupArgs(tt.args))
		})
	}
}

func TestSetup_Errors(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantStderr string
	}{
		{
			name:       "짧은 API 토큰",
			args:       []string{"--setup", "short", testUser},
			wantStderr: "유효하지 않은 API 토큰입니다",
		},
		{
			name:       "영숫자가 아닌 사용자 키",
			args:       []string{"--setup", testToken, strings.Repeat("-", 30)},
			wantStderr: "유효하지 않은 사용자 키입니다",
		},
		{
			name:       "-- 구분자와 영숫자가 없는 사용자 키",
			args:       []string{"--setup", "--", testToken, strings.Repeat("-", 30)},
			wantStderr: "유효하지 않은 사용자 키입니다",
		},
		{
			name:       "인자 1개",
			args:       []string{"--setup", testToken},
			wantStderr: "--setup에는 API 토큰과 사용자 키를 함께 지정해야 합니다",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, "")

			code := env.run(tt.args...)

			assert.Equal(t, exitUsage, code)
			assert.True(t, strings.HasPrefix(env.stderr.String(), "po: "))
			assert.Contains(t, env.stderr.String(), tt.wantStderr)
			assert.NoFileExists(t, config.CredentialsPath(env.dir))
		})
	}
}

func TestSend_NoConfig(t *testing.T) {
	env := newTestEnv(t, "")

	code := env.run("hello")

	assert.Equal(t, exitUsage, code)
	assert.Equal(t, "po: "+noConfigMessage+"\n", env.stderr.String())
	assert.Zero(t, env.transport.GetTotalCallCount())
}

func TestSend_MessageArgument(t *testing.T) {
	env := newTestEnv(t, "stdin은 읽지 않습니다")
	env.writeCredentials(t)
	form := env.capturePushover(http.StatusOK, `{"status":1,"request":"r-1"}`)

	code := env.run("-t", "빌드", "--priority=1", "-s", "magic", "배포 완료")

	require.Equal(t, exitOK, code, env.stderr.String())
	assert.Equal(t, testToken, form.Get("token"))
	assert.Equal(t, testUser, form.Get("user"))
	assert.Equal(t, "배포 완료", form.Get("message"))
	assert.Equal(t, "빌드", form.Get("title"))
	assert.Equal(t, "1", form.Get("priority"))
	assert.Equal(t, "magic", form.Get("sound"))
	assert.Empty(t, env.stdout.String())
}

func TestSend_StdinIsEchoed(t *testing.T) {
	input := "line 1\nline 2\n"
	env := newTestEnv(t, input)
	env.writeCredentials(t)
	form := env.capturePushover(http.StatusOK, `{"status":1}`)

	code := env.run()

	require.Equal(t, exitOK, code, env.stderr.String())
	assert.Equal(t, input, env.stdout.String())
	assert.Equal(t, input, form.Get("message"))
}

func TestSend_Charset(t *testing.T) {
	enc, err := htmlindex.Get("euc-kr")
	require.NoError(t, err)
	encoded, err := enc.NewEncoder().String("안녕하세요")
	require.NoError(t, err)

	env := newTestEnv(t, encoded)
	env.writeCredentials(t)
	form := env.capturePushover(http.StatusOK, `{"status":1}`)

	code := env.run("--charset", "euc-kr")

	require.Equal(t, exitOK, code, env.stderr.String())
	assert.Equal(t, "안녕하세요", form.Get("message"))
	assert.Equal(t, encoded, env.stdout.String(), "표준 출력에는 원본 바이트가 그대로 복사되어야 합니다")
}

func TestSend_NFCNormalization(t *testing.T) {
	env := newTestEnv(t, "")
	env.writeCredentials(t)
	form := env.capturePushover(http.StatusOK, `{"status":1}`)

	// "한"을 자모 분리(NFD) 형태로 전달
	code := env.run("\u1112\u1161\u11ab")

	require.Equal(t, exitOK, code, env.stderr.String())
	assert.Equal(t, "\ud55c", form.Get("message"))
}

func TestSend_Gist(t *testing.T) {
	env := newTestEnv(t, "")
	env.writeCredentials(t)
	form := env.capturePushover(http.StatusOK, `{"status":1}`)
	env.transport.RegisterResponder(http.MethodPost, config.DefaultGistAPIURL,
		httpmock.NewStringResponder(http.StatusCreated, `{"html_url":"https://gist.github.com/abc"}`))

	code := env.run("-g", "--gist-threshold", "5", "-t", "로그", "0123456789")

	require.Equal(t, exitOK, code, env.stderr.String())
	assert.Equal(t, "https://gist.github.com/abc", form.Get("url"))
	assert.Equal(t, "Full Output (GitHub Gist)", form.Get("url_title"))
	assert.Equal(t, 1, env.transport.GetCallCountInfo()["POST "+config.DefaultGistAPIURL])
}

func TestSend_GistBelowThreshold(t *testing.T) {
	env := newTestEnv(t, "")
	env.writeCredentials(t)
	form := env.capturePushover(http.StatusOK, `{"status":1}`)

	code := env.run("-g", "짧은 메시지")

	require.Equal(t, exitOK, code, env.stderr.String())
	assert.Empty(t, form.Get("url"))
	assert.Equal(t, 1, env.transport.GetTotalCallCount())
}

func TestSend_Debug(t *testing.T) {
	env := newTestEnv(t, "")
	env.writeCredentials(t)
	env.capturePushover(http.StatusOK, `{"status":1}`)

	code := env.run("--debug", "hello")

	require.Equal(t, exitOK, code, env.stderr.String())
	assert.True(t, strings.HasPrefix(env.stdout.String(), "push body:\n"))
	assert.Contains(t, env.stdout.String(), "message=hello")
}

func TestSend_APIError(t *testing.T) {
	env := newTestEnv(t, "")
	env.writeCredentials(t)
	env.capturePushover(http.StatusBadRequest, `{"status":0,"errors":["application token is invalid"]}`)

	code := env.run("hello")

	assert.Equal(t, exitError, code)
	assert.Equal(t, "po: application token is invalid\n", env.stderr.String())
}

func TestSend_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "우선순위 범위 초과", args: []string{"--priority=3", "hello"}},
		{name: "알 수 없는 플래그", args: []string{"--unknown", "hello"}},
		{name: "메시지 인자 2개", args: []string{"hello", "world"}},
		{name: "지원하지 않는 문자 인코딩", args: []string{"--charset", "no-such-charset"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, "")
			env.writeCredentials(t)

			code := env.run(tt.args...)

			assert.Equal(t, exitUsage, code)
			assert.True(t, strings.HasPrefix(env.stderr.String(), "po: "))
			assert.Zero(t, env.transport.GetTotalCallCount())
		})
	}
}

func TestSend_ConfigFileOverrides(t *testing.T) {
	env := newTestEnv(t, "")
	env.writeCredentials(t)
	require.NoError(t, os.WriteFile(filepath.Join(env.dir, config.SettingsFilename),
		[]byte(`{"pushover":{"api_url":"http://localhost:8080/1/messages.json"}}`), 0o600))
	env.transport.RegisterResponder(http.MethodPost, "http://localhost:8080/1/messages.json",
		httpmock.NewStringResponder(http.StatusOK, `{"status":1}`))

	code := env.run("hello")

	require.Equal(t, exitOK, code, env.stderr.String())
	assert.Equal(t, 1, env.transport.GetCallCountInfo()["POST http://localhost:8080/1/messages.json"])
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t, "")

	code := env.run("--version")

	assert.Equal(t, exitOK, code)
	assert.True(t, strings.HasPrefix(env.stdout.String(), "po "))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitOK, exitCode(nil))
	assert.Equal(t, exitUsage, exitCode(config.ErrNoConfig))
	assert.Equal(t, exitUsage, exitCode(newUsageError(io.EOF)))
	assert.Equal(t, exitError, exitCode(config.ErrConfigIO))
	assert.Equal(t, exitError, exitCode(io.ErrUnexpectedEOF))
}

func TestSetupLogging_Level(t *testing.T) {
	tests := []struct {
		name      string
		settings  string
		args      []string
		wantLevel applog.Level
	}{
		{name: "기본값", wantLevel: applog.WarnLevel},
		{name: "설정 파일의 로그 레벨", settings: `{"log":{"level":"info"}}`, wantLevel: applog.InfoLevel},
		{name: "-v가 설정 파일보다 우선", settings: `{"log":{"level":"error"}}`, args: []string{"-v"}, wantLevel: applog.DebugLevel},
		{name: "debug 설정", settings: `{"debug":true}`, wantLevel: applog.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, "")
			env.writeCredentials(t)
			env.capturePushover(http.StatusOK, `{"status":1}`)
			if tt.settings != "" {
				require.NoError(t, os.WriteFile(filepath.Join(env.dir, config.SettingsFilename), []byte(tt.settings), 0o600))
			}

			var got applog.Options
			env.app.setupLog = func(opts applog.Options) (io.Closer, error) {
				got = opts
				return io.NopCloser(nil), nil
			}

			code := env.run(append(tt.args, "hello")...)

			require.Equal(t, exitOK, code, env.stderr.String())
			assert.Equal(t, tt.wantLevel, got.Level)
			assert.Equal(t, env.stderr, got.ConsoleWriter)
		})
	}
}

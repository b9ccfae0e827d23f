package main

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/darkkaiser/po/internal/config"
	apperrors "github.com/darkkaiser/po/internal/pkg/errors"
	"github.com/darkkaiser/po/internal/pkg/fetcher"
	"github.com/darkkaiser/po/internal/pkg/version"
	"github.com/darkkaiser/po/internal/service/notification"
	"github.com/darkkaiser/po/internal/service/paste"
	applog "github.com/darkkaiser/po/pkg/log"
	"github.com/darkkaiser/po/pkg/strutil"
	"github.com/spf13/cobra"
)

// component CLI 로깅용 컴포넌트 이름
const component = "main"

// app 한 번의 실행에 필요한 입출력과 외부 의존성을 묶습니다.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// setupLog 로깅 시스템 초기화 함수 (테스트에서 교체)
	setupLog func(applog.Options) (io.Closer, error)

	// transport HTTP 요청에 사용할 RoundTripper. nil이면 기본 트랜스포트를 사용합니다.
	transport http.RoundTripper
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
		setupLog: applog.Setup,
	}
}

// flags 명령행 플래그 값
type flags struct {
	title         string
	priority      int
	device        string
	sound         string
	url           string
	urlTitle      string
	gist          bool
	gistThreshold int
	alwaysGist    bool
	debug         bool
	charset       string
	configDir     string
	verbose       bool
	setup         bool
}

// run 명령을 실행하고 프로세스 종료 코드를 반환합니다.
func run(ctx context.Context, a *app, args []string) int {
	cmd := a.newRootCommand()
	cmd.SetArgs(normalizeSetupArgs(args))
	cmd.SetIn(a.stdin)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"error_type": apperrors.UnderlyingType(err),
			"root_cause": apperrors.RootCause(err),
		}).Debug("명령 실행에 실패했습니다")

		a.printError(err)
		return exitCode(err)
	}

	return exitOK
}

func (a *app) newRootCommand() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "po [flags] [message]",
		Short: "Pushover 알림 전송 도구",
		Long: `메시지를 Pushover 알림으로 전송합니다.

메시지 인자가 없으면 표준 입력을 끝까지 읽어 메시지로 사용하며,
읽은 내용은 그대로 표준 출력으로 다시 내보냅니다.

하이픈(-)으로 시작하는 메시지는 -- 뒤에 지정합니다. (예: po -- "-1 실패")
--setup 바로 뒤에 토큰과 키 두 개만 오면 하이픈으로 시작하는 키도 그대로 받아들입니다.

사용법:
  po [flags] [message]
  po --setup <API 토큰> <사용자 키>
  po --setup -- <API 토큰> <사용자 키>
  po --setup`,
		Version:       version.Get().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if f.setup {
				if len(args) != 0 && len(args) != 2 {
					return newUsageError(fmt.Errorf("--setup에는 API 토큰과 사용자 키를 함께 지정해야 합니다 (인자 %d개)", len(args)))
				}
				return nil
			}
			if len(args) > 1 {
				return newUsageError(fmt.Errorf("메시지 인자는 하나만 지정할 수 있습니다 (인자 %d개)", len(args)))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.setup {
				return a.runSetup(f, args)
			}
			return a.runSend(cmd, f, args)
		},
	}
	cmd.SetVersionTemplate("po {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return newUsageError(err)
	})

	fs := cmd.Flags()
	fs.StringVarP(&f.title, "title", "t", "", "알림 제목")
	fs.IntVarP(&f.priority, "priority", "p", 0, "알림 우선순위 (-2 ~ 2)")
	fs.StringVarP(&f.device, "device", "d", "", "알림을 받을 장치 이름")
	fs.StringVarP(&f.sound, "sound", "s", "", "Pushover 알림음 이름")
	fs.StringVarP(&f.url, "url", "u", "", "알림에 첨부할 보조 URL")
	fs.StringVar(&f.urlTitle, "url-title", "", "보조 URL의 표시 제목")
	fs.BoolVarP(&f.gist, "gist", "g", false, "메시지가 --gist-threshold보다 길면 GitHub Gist에 업로드하고 링크를 첨부")
	fs.IntVar(&f.gistThreshold, "gist-threshold", config.DefaultGistThreshold, "--gist 업로드 기준 메시지 길이 (문자 수)")
	fs.BoolVar(&f.alwaysGist, "always-gist", false, "메시지 길이와 무관하게 항상 GitHub Gist에 업로드")
	fs.BoolVar(&f.debug, "debug", false, "전송 직전의 요청 본문을 출력")
	fs.StringVar(&f.charset, "charset", "", "표준 입력의 문자 인코딩 (예: euc-kr, shift_jis)")
	fs.StringVar(&f.configDir, "config-dir", "", "설정 디렉토리 (기본값: $XDG_CONFIG_HOME/po 또는 ~/.config/po)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "상세 로그를 표준 에러로 출력")
	fs.BoolVar(&f.setup, "setup", false, "API 토큰과 사용자 키를 저장 (인자가 없으면 설정 방법을 출력)")

	return cmd
}

// runSend 자격증명을 읽고 메시지를 전송합니다.
func (a *app) runSend(cmd *cobra.Command, f flags, args []string) error {
	if f.priority < -2 || f.priority > 2 {
		return newUsageError(fmt.Errorf("우선순위는 -2에서 2 사이여야 합니다: %d", f.priority))
	}

	dir, err := a.resolveConfigDir(f)
	if err != nil {
		return err
	}

	appConfig, err := config.Load(dir)
	if err != nil {
		return err
	}

	logCloser, err := a.setupLogging(f, appConfig)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	creds, err := config.ReadCredentials(config.CredentialsPath(dir))
	if err != nil {
		return err
	}

	message, err := a.readMessage(args, f.charset)
	if err != nil {
		return err
	}

	threshold := appConfig.Gist.Threshold
	if cmd.Flags().Changed("gist-threshold") {
		threshold = f.gistThreshold
	}
	useGist := (f.gist && strutil.RuneCount(message) > threshold) || f.alwaysGist

	applog.WithComponentAndFields(component, applog.Fields{
		"version":        version.Get().Version,
		"config_dir":     dir,
		"message_length": strutil.RuneCount(message),
		"gist":           useGist,
	}).Debug("알림 전송을 시작합니다")

	d := a.newDispatcher(appConfig)

	return d.Send(cmd.Context(), creds.Token, creds.User, message, notification.Options{
		Priority: f.priority,
		Title:    f.title,
		Device:   f.device,
		Sound:    f.sound,
		URL:      f.url,
		URLTitle: f.urlTitle,
		Gist:     useGist,
		Debug:    f.debug,
	})
}

// newDispatcher 설정을 반영한 Dispatcher를 생성합니다.
func (a *app) newDispatcher(appConfig *config.AppConfig) *notification.Dispatcher {
	var opts []fetcher.Option
	if a.transport != nil {
		opts = append(opts, fetcher.WithTransport(a.transport))
	}

	uploader := paste.NewGistUploader(
		paste.WithAPIURL(appConfig.Gist.APIURL),
		paste.WithToken(appConfig.Gist.Token),
		paste.WithTimeout(appConfig.Gist.Timeout),
		paste.WithFetcher(fetcher.New(appConfig.Gist.Timeout, fetcher.DefaultUserAgent, opts...)),
	)

	return notification.New(
		notification.WithAPIURL(appConfig.Pushover.APIURL),
		notification.WithTimeout(appConfig.Pushover.Timeout),
		notification.WithFetcher(fetcher.New(appConfig.Pushover.Timeout, fetcher.DefaultUserAgent, opts...)),
		notification.WithUploader(uploader),
		notification.WithDiagnosticWriter(a.stdout),
	)
}

// setupLogging 플래그와 설정에 맞춰 로깅 시스템을 초기화합니다.
func (a *app) setupLogging(f flags, appConfig *config.AppConfig) (io.Closer, error) {
	opts := applog.NewCLIOptions(config.AppName)
	switch {
	case f.verbose || appConfig.Debug:
		opts = applog.NewDebugOptions(config.AppName)
	case appConfig.Log.Level != "":
		level, err := applog.ParseLevel(appConfig.Log.Level)
		if err != nil {
			return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "로그 레벨이 올바르지 않습니다: %q", appConfig.Log.Level)
		}
		opts.Level = level
	}
	opts.ConsoleWriter = a.stderr
	opts.Dir = appConfig.Log.Dir
	if appConfig.Log.MaxAge > 0 {
		opts.MaxAge = appConfig.Log.MaxAge
	}

	closer, err := a.setupLog(opts)
	if err != nil {
		return nil, fmt.Errorf("로그 시스템 초기화 실패: %w", err)
	}

	return closer, nil
}

func (a *app) resolveConfigDir(f flags) (string, error) {
	if f.configDir != "" {
		return f.configDir, nil
	}
	return config.DefaultDir()
}

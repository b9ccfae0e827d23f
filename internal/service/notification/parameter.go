package notification

// Parameter 알림 요청에 덧붙이는 선택 항목입니다.
//
// 구현체는 이 패키지에 정의된 Priority, Title, Device, Sound, URL, URLTitle, Gist, Debug로 한정되며,
// Push에 전달된 순서대로 처리됩니다. 같은 종류가 여러 번 주어지면 마지막 값이 적용됩니다.
type Parameter interface {
	isParameter()
}

// Priority 메시지 우선순위 (-2..2). 0은 기본값이므로 요청에 포함되지 않습니다.
type Priority int

// Title 메시지 제목. 이후에 오는 Gist 업로드의 파일명으로도 사용됩니다.
type Title string

// Device 메시지를 받을 장치 이름
type Device string

// Sound 알림음 이름
type Sound string

// URL 메시지에 첨부할 보조 URL
type URL string

// URLTitle 보조 URL의 표시 제목
type URLTitle string

// Gist 메시지 전문을 Gist로 업로드하고 그 주소를 보조 URL로 첨부합니다.
// 업로드에 실패하면 경고 로그만 남기고 알림은 그대로 전송됩니다.
type Gist struct{}

// Debug 전송 직전의 인코딩된 요청 본문을 진단 출력으로 내보냅니다. 요청 자체는 바뀌지 않습니다.
type Debug struct{}

func (Priority) isParameter() {}
func (Title) isParameter()    {}
func (Device) isParameter()   {}
func (Sound) isParameter()    {}
func (URL) isParameter()      {}
func (URLTitle) isParameter() {}
func (Gist) isParameter()     {}
func (Debug) isParameter()    {}

// Options 자주 쓰이는 항목 조합을 구조체로 표현한 것입니다.
// 비어 있는 문자열 항목은 생략됩니다.
type Options struct {
	Priority int
	Title    string
	Device   string
	Sound    string
	URL      string
	URLTitle string
	Gist     bool
	Debug    bool
}

// Parameters Options를 Push에 전달할 Parameter 목록으로 변환합니다.
// Title은 항상 Gist보다 앞에 위치하므로 업로드 파일명에 제목이 사용됩니다.
func (o Options) Parameters() []Parameter {
	params := []Parameter{Priority(o.Priority)}

	if o.Title != "" {
		params = append(params, Title(o.Title))
	}
	if o.Device != "" {
		params = append(params, Device(o.Device))
	}
	if o.Sound != "" {
		params = append(params, Sound(o.Sound))
	}
	if o.URL != "" {
		params = append(params, URL(o.URL))
	}
	if o.URLTitle != "" {
		params = append(params, URLTitle(o.URLTitle))
	}
	if o.Gist {
		params = append(params, Gist{})
	}
	if o.Debug {
		params = append(params, Debug{})
	}

	return params
}

package notification

import (
	"net/url"
	"slices"
	"strings"
)

// field 폼 인코딩되는 키/값 한 쌍
type field struct {
	key   string
	value string
}

// request 전송할 알림 요청의 불변 빌더입니다.
//
// 모든 변경 메서드는 새 값을 반환하며 수신자를 수정하지 않습니다.
type request struct {
	fields []field

	// filename 이후의 Gist 업로드에 사용할 파일명 (마지막으로 처리된 Title)
	filename string

	// debug 전송 전에 본문을 진단 출력으로 내보낼지 여부
	debug bool
}

func newRequest(token, user, message string) request {
	return request{
		fields: []field{
			{key: "token", value: token},
			{key: "user", value: user},
			{key: "message", value: message},
		},
		filename: defaultFilename,
	}
}

// with key의 값을 설정한 새 요청을 반환합니다.
// 이미 존재하는 key는 원래 위치에서 값만 교체되며, 없으면 끝에 추가됩니다.
func (r request) with(key, value string) request {
	fields := slices.Clone(r.fields)
	if i := slices.IndexFunc(fields, func(f field) bool { return f.key == key }); i >= 0 {
		fields[i].value = value
	} else {
		fields = append(fields, field{key: key, value: value})
	}

	r.fields = fields
	return r
}

func (r request) withFilename(filename string) request {
	r.filename = filename
	return r
}

func (r request) withDebug() request {
	r.debug = true
	return r
}

// get key에 해당하는 값을 반환합니다.
func (r request) get(key string) (string, bool) {
	for _, f := range r.fields {
		if f.key == key {
			return f.value, true
		}
	}
	return "", false
}

// encode 필드 순서를 유지한 채 application/x-www-form-urlencoded 형식으로 인코딩합니다.
// url.Values.Encode는 키를 정렬하므로 사용하지 않습니다.
func (r request) encode() string {
	var sb strings.Builder
	for i, f := range r.fields {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(f.key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(f.value))
	}
	return sb.String()
}

package config

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "영숫자 30자", input: validToken, want: true},
		{name: "영문자 하나와 기호 29자", input: "a" + strings.Repeat("-", 29), want: true},
		{name: "숫자 하나와 공백", input: "7" + strings.Repeat(" ", 29), want: true},
		{name: "29자", input: strings.Repeat("a", 29), want: false},
		{name: "31자", input: strings.Repeat("a", 31), want: false},
		{name: "기호만 30자", input: strings.Repeat("_", 30), want: false},
		{name: "빈 문자열", input: "", want: false},
		// 길이는 바이트 기준이다: 한글 10자는 30바이트이지만 영숫자가 없다.
		{name: "멀티바이트 30바이트", input: strings.Repeat("가", 10), want: false},
		{name: "멀티바이트와 영문자", input: "a" + strings.Repeat("가", 9) + "bc", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidToken(tt.input))
		})
	}
}

func TestPushoverKeyTag(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validate.Var(validToken, pushoverKeyTag))
	assert.Error(t, validate.Var("short", pushoverKeyTag))

	assert.NoError(t, validate.Struct(Credentials{Token: validToken, User: validUser}))
	assert.Error(t, validate.Struct(Credentials{Token: validToken, User: "x"}))
}

func TestCredentials_StructTagOrder(t *testing.T) {
	t.Parallel()

	err := validate.Struct(Credentials{Token: "bad-token", User: "bad-user"})
	require.Error(t, err)

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	require.Len(t, validationErrs, 2)
	assert.Equal(t, "Token", validationErrs[0].StructField())
	assert.Equal(t, "token", validationErrs[0].Field())
	assert.Equal(t, pushoverKeyTag, validationErrs[0].Tag())
	assert.Equal(t, "User", validationErrs[1].StructField())

	err = Credentials{Token: validToken, User: "bad-user"}.validate()
	assert.ErrorIs(t, err, ErrInvalidUserKey)
	assert.NotErrorIs(t, err, ErrInvalidAPIToken)
}

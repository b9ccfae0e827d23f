package fetcher_test

import (
	"strings"
	"testing"

	apperrors "github.com/darkkaiser/po/internal/pkg/errors"
	"github.com/darkkaiser/po/internal/pkg/fetcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBody(t *testing.T) {
	t.Parallel()

	t.Run("제한 이내", func(t *testing.T) {
		data, err := fetcher.ReadBody(strings.NewReader("hello"), 5)
		require.NoError(t, err)
		assert.Equal(t, "hello", string(data))
	})

	t.Run("제한 초과", func(t *testing.T) {
		_, err := fetcher.ReadBody(strings.NewReader("hello!"), 5)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ExecutionFailed))
	})

	t.Run("nil 본문", func(t *testing.T) {
		data, err := fetcher.ReadBody(nil, 0)
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("기본 제한", func(t *testing.T) {
		data, err := fetcher.ReadBody(strings.NewReader(strings.Repeat("a", fetcher.MaxResponseBytes)), 0)
		require.NoError(t, err)
		assert.Len(t, data, fetcher.MaxResponseBytes)
	})
}

func TestDrainAndClose(t *testing.T) {
	t.Parallel()

	body := &trackingBody{Reader: strings.NewReader(strings.Repeat("x", 100))}
	fetcher.DrainAndClose(body)
	assert.True(t, body.closed)

	assert.NotPanics(t, func() { fetcher.DrainAndClose(nil) })
}

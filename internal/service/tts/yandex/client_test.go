package yandex

import (
	"TTSAnnouncer/internal/config"
	"TTSAnnouncer/internal/service/tts"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(config.YandexTTSConfig{Endpoint: srv.URL, APIKey: "secret", Speed: "1.2", Emotion: "Good"})
}

func TestSynthesize(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "Api-Key secret", r.Header.Get("Authorization"))
		assert.Equal(t, "Сборка завершена", r.PostForm.Get("text"))
		assert.Equal(t, "alena", r.PostForm.Get("voice"))
		assert.Equal(t, "mp3", r.PostForm.Get("format"))
		assert.Equal(t, "1.2", r.PostForm.Get("speed"))
		assert.Equal(t, "good", r.PostForm.Get("emotion"))
		_, _ = w.Write([]byte("mp3"))
	})

	data, err := c.Synthesize(context.Background(), tts.Request{Text: "Сборка завершена", Voice: "alena"})
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3"), data)
}

func TestSynthesizeErrors(t *testing.T) {
	t.Run("too long", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error_code":"BAD_REQUEST","error_message":"Too long text"}`))
		})
		_, err := c.Synthesize(context.Background(), tts.Request{Text: "x", Voice: "alena"})
		assert.ErrorIs(t, err, tts.ErrTextTooLong)
	})

	t.Run("unauthorized", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error_code":"UNAUTHORIZED","error_message":"Unknown api key"}`))
		})
		_, err := c.Synthesize(context.Background(), tts.Request{Text: "x", Voice: "alena"})
		var se *tts.SynthesisError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "401", se.Code)
		assert.Contains(t, se.Message, "Unknown api key")
	})

	t.Run("missing key", func(t *testing.T) {
		c := New(config.YandexTTSConfig{})
		_, err := c.Synthesize(context.Background(), tts.Request{Text: "x"})
		assert.ErrorContains(t, err, "empty API key")
	})
}

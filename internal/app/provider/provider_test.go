package provider

import (
	"TTSAnnouncer/internal/config"
	"TTSAnnouncer/internal/service/tts"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		want     string
	}{
		{"google", "google", "google"},
		{"gemini", "Gemini", "gemini"},
		{"openai", "openai", "openai"},
		{"yandex", "yandex", "yandex"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Defaults()
			cfg.Provider = tt.provider
			cfg.YandexTTS.APIKey = "test-key"

			synth, err := New(context.Background(), cfg, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, synth.Name())
		})
	}
}

func TestNewAfterValidateAcceptsAliases(t *testing.T) {
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")
	tests := []struct {
		alias string
		want  string
	}{
		{"google-gemini", "gemini"},
		{"YC", "yandex"},
		{"speechkit", "yandex"},
	}
	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			cfg := config.Defaults()
			cfg.Provider = tt.alias
			cfg.YandexTTS.APIKey = "test-key"
			require.NoError(t, cfg.Validate())

			synth, err := New(context.Background(), cfg, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, synth.Name())
		})
	}
}

func TestNewUnknownProvider(t *testing.T) {
	cfg := config.Defaults()
	cfg.Provider = "festival"

	_, err := New(context.Background(), cfg, nil)
	assert.ErrorContains(t, err, `unknown tts provider "festival"`)
}

func TestNewYandexRequiresKey(t *testing.T) {
	cfg := config.Defaults()
	cfg.Provider = config.ProviderYandex

	_, err := New(context.Background(), cfg, nil)
	assert.ErrorContains(t, err, "empty API key")
}

type plainSynth struct{}

func (plainSynth) Name() string { return "plain" }
func (plainSynth) Synthesize(context.Context, tts.Request) ([]byte, error) {
	return nil, nil
}

type listingSynth struct{ plainSynth }

func (listingSynth) Voices(_ context.Context, language string) ([]tts.Voice, error) {
	return []tts.Voice{{ID: "Joanna", Language: language}}, nil
}

func TestVoices(t *testing.T) {
	_, err := Voices(context.Background(), plainSynth{}, "")
	assert.ErrorIs(t, err, ErrVoicesUnsupported)

	voices, err := Voices(context.Background(), listingSynth{}, "en-US")
	require.NoError(t, err)
	assert.Equal(t, []tts.Voice{{ID: "Joanna", Language: "en-US"}}, voices)
}

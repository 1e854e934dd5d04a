package provider

import (
	"TTSAnnouncer/internal/config"
	"TTSAnnouncer/internal/service/tts"
	"TTSAnnouncer/internal/service/tts/gemini"
	"TTSAnnouncer/internal/service/tts/google"
	"TTSAnnouncer/internal/service/tts/openai"
	"TTSAnnouncer/internal/service/tts/polly"
	"TTSAnnouncer/internal/service/tts/yandex"
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ErrVoicesUnsupported — провайдер не умеет перечислять голоса.
var ErrVoicesUnsupported = errors.New("voice listing is not supported by provider")

// New создаёт клиент синтеза по имени провайдера. Ожидает конфигурацию после Validate.
func New(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (tts.Synthesizer, error) {
	var synth tts.Synthesizer
	service := strings.ToLower(strings.TrimSpace(cfg.Provider))
	switch service {
	case config.ProviderPolly, "":
		c, err := polly.New(ctx, cfg.Polly, logger)
		if err != nil {
			return nil, err
		}
		synth = c
	case config.ProviderGoogle:
		synth = google.New(cfg.GoogleTTS, logger)
	case config.ProviderGemini:
		synth = gemini.New(cfg.GeminiTTS, logger)
	case config.ProviderOpenAI:
		synth = openai.New(cfg.OpenAITTS, logger)
	case config.ProviderYandex:
		if strings.TrimSpace(cfg.YandexTTS.APIKey) == "" {
			return nil, errors.New("yandex tts: empty API key (set YC_TTS_API_KEY)")
		}
		synth = yandex.New(cfg.YandexTTS)
	default:
		return nil, fmt.Errorf("unknown tts provider %q", cfg.Provider)
	}

	if logger != nil {
		logger.Infow("TTS selected", "service", synth.Name())
	}
	return synth, nil
}

// Voices возвращает голоса, если провайдер поддерживает их перечисление.
func Voices(ctx context.Context, synth tts.Synthesizer, language string) ([]tts.Voice, error) {
	lister, ok := synth.(tts.VoiceLister)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrVoicesUnsupported, synth.Name())
	}
	return lister.Voices(ctx, language)
}

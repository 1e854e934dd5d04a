package tts

import (
	"context"
	"strings"
)

// FormatMP3 — единственный формат, который запрашивается у провайдеров и проигрывается локально.
const FormatMP3 = "mp3"

// Request — параметры одного синтеза. Движок и прочие тонкие настройки задаются конфигурацией провайдера.
type Request struct {
	Text   string
	Voice  string
	Format string
}

// Synthesizer абстракция TTS. Возвращает аудио целиком, воспроизводит вызывающий.
type Synthesizer interface {
	Name() string
	Synthesize(ctx context.Context, req Request) ([]byte, error)
}

// Voice описание голоса провайдера.
type Voice struct {
	ID       string
	Name     string
	Language string
	Gender   string
}

// VoiceLister реализуют провайдеры, умеющие отдавать список голосов.
type VoiceLister interface {
	Voices(ctx context.Context, language string) ([]Voice, error)
}

// IsSSML определяет тип входа по наличию корневого тега <speak>.
func IsSSML(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "<speak")
}

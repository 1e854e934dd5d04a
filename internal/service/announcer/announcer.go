package announcer

import (
	"TTSAnnouncer/internal/service/audiofile"
	"TTSAnnouncer/internal/service/tts"
	"TTSAnnouncer/internal/service/tts/player"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Options — настройки, которые передаются при сборке, а не читаются из окружения внутри.
type Options struct {
	// Enabled опрашивается на каждый вызов. nil — всегда включено.
	Enabled          func() bool
	DefaultVoice     string
	MaxMessageLength int // в рунах, 0 — без локального лимита
	AudioDir         string
	KeepUnplayed     bool
}

// Announcer озвучивает сообщение: синтез → временный файл → воспроизведение → удаление.
// Собственного изменяемого состояния нет, вызовы можно делать конкурентно.
type Announcer struct {
	synth  tts.Synthesizer
	player player.Player
	opts   Options
	logger *zap.SugaredLogger
}

func New(synth tts.Synthesizer, p player.Player, opts Options, logger *zap.SugaredLogger) *Announcer {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Announcer{synth: synth, player: p, opts: opts, logger: logger}
}

// Announce никогда не паникует наружу и не возвращает error: любой исход возвращается как Outcome.
func (a *Announcer) Announce(ctx context.Context, message, voice string) (out Outcome) {
	if a.opts.Enabled != nil && !a.opts.Enabled() {
		return Outcome{Kind: Disabled, Message: message}
	}

	defer func() {
		if r := recover(); r != nil {
			a.logger.Errorw("Announce panicked", "panic", r)
			out = Outcome{Kind: ProviderError, Message: message, Err: fmt.Errorf("internal error: %v", r)}
		}
	}()

	if strings.TrimSpace(message) == "" {
		return Outcome{Kind: InvalidInput, Message: message, Err: tts.ErrInvalidInput}
	}
	if a.opts.MaxMessageLength > 0 && utf8.RuneCountInString(message) > a.opts.MaxMessageLength {
		return Outcome{Kind: TooLong, Message: message, Err: tts.ErrTextTooLong}
	}
	if strings.TrimSpace(voice) == "" {
		voice = a.opts.DefaultVoice
	}

	started := time.Now()
	data, err := a.synth.Synthesize(ctx, tts.Request{Text: message, Voice: voice, Format: tts.FormatMP3})
	if err != nil {
		out = Outcome{Kind: ProviderError, Message: message, Err: err}
		switch {
		case errors.Is(err, tts.ErrInvalidInput):
			out.Kind = InvalidInput
		case errors.Is(err, tts.ErrTextTooLong):
			out.Kind = TooLong
		}
		a.logger.Warnw("Синтез речи не удался", "provider", a.synth.Name(), "voice", voice, "kind", out.Kind.String(), "error", err)
		return out
	}
	a.logger.Debugw("Синтез речи выполнен", "provider", a.synth.Name(), "voice", voice, "bytes", len(data), "took", time.Since(started).String())

	return a.play(ctx, message, data)
}

// play записывает аудио во временный файл и удаляет его на любом пути выхода,
// кроме платформы без проигрывателя при KeepUnplayed.
func (a *Announcer) play(ctx context.Context, message string, data []byte) Outcome {
	f, err := audiofile.Write(a.opts.AudioDir, data)
	if err != nil {
		a.logger.Warnw("Не удалось сохранить аудио", "error", err)
		return Outcome{Kind: PlaybackError, Message: message, Err: err}
	}

	keep := false
	defer func() {
		if keep {
			return
		}
		// Ошибка удаления не влияет на результат объявления
		if err := f.Remove(); err != nil {
			a.logger.Debugw("Не удалось удалить временный аудиофайл", "path", f.Path(), "error", err)
		}
	}()

	if err := a.player.Play(ctx, f.Path()); err != nil {
		out := Outcome{Kind: PlaybackError, Message: message, Err: err}
		if errors.Is(err, player.ErrUnsupportedPlatform) && a.opts.KeepUnplayed {
			keep = true
			out.AudioPath = f.Path()
		}
		a.logger.Warnw("Не удалось воспроизвести аудио", "player", a.player.Name(), "path", f.Path(), "kept", keep, "error", err)
		return out
	}

	a.logger.Infow("Объявление озвучено", "player", a.player.Name(), "mode", a.player.Mode().String(), "message", message)
	return Outcome{Kind: Announced, Message: message}
}

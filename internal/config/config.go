package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// EnvEnableTTS — переключатель озвучки. Читается на каждый вызов, не кэшируется.
const EnvEnableTTS = "ENABLE_TTS"

// Поддерживаемые провайдеры синтеза.
const (
	ProviderPolly  = "polly"
	ProviderGoogle = "google"
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderYandex = "yandex"
)

// Бэкенды воспроизведения.
const (
	PlayerAuto = "auto" // нативная команда ОС по таблице платформ
	PlayerBeep = "beep" // декодирование и вывод внутри процесса
)

type Config struct {
	DebugMode        bool          `env:"DEBUG_MODE"`             // Режим дебага: уровень логов debug
	Provider         string        `env:"TTS_PROVIDER"`           // polly|google|gemini|openai|yandex
	DefaultVoice     string        `env:"TTS_DEFAULT_VOICE"`      // Голос, если voice_id не передан
	MaxMessageLength int           `env:"TTS_MAX_MESSAGE_LENGTH"` // Локальный лимит длины в рунах, 0 — без лимита
	AudioDir         string        `env:"TTS_AUDIO_DIR"`          // Каталог временных аудиофайлов, пусто — os.TempDir()
	AudioRetention   time.Duration `env:"TTS_AUDIO_RETENTION"`    // Через сколько удалять забытые файлы, 0 — не чистить

	Player    PlayerConfig
	Polly     PollyConfig
	GoogleTTS GoogleTTSConfig
	GeminiTTS GeminiTTSConfig
	OpenAITTS OpenAITTSConfig
	YandexTTS YandexTTSConfig
}

// PlayerConfig настройки локального воспроизведения.
type PlayerConfig struct {
	Backend      string  `env:"TTS_PLAYER"`           // auto|beep
	Command      string  `env:"TTS_PLAYER_COMMAND"`   // Явная команда проигрывателя (напр. mpg123), перекрывает таблицу платформ
	VolumeDB     float64 `env:"TTS_PLAYER_VOLUME_DB"` // Громкость для beep в dB (отрицательные — тише)
	KeepUnplayed bool    `env:"TTS_KEEP_UNPLAYED"`    // Сохранять файл, если на платформе нет проигрывателя
}

// PollyConfig конфигурация Amazon Polly. Учётные данные берутся из стандартной цепочки AWS.
type PollyConfig struct {
	Region       string `env:"AWS_REGION"`          // Пусто — регион из профиля AWS
	Engine       string `env:"POLLY_ENGINE"`        // standard|neural|long-form|generative
	LanguageCode string `env:"POLLY_LANGUAGE_CODE"` // Опционально, для двуязычных голосов
	SampleRate   string `env:"POLLY_SAMPLE_RATE"`   // Опционально: 8000|16000|22050|24000
}

// GoogleTTSConfig конфигурация для синтеза речи через Google Cloud Text-to-Speech.
type GoogleTTSConfig struct {
	// Путь к файлу ключа сервисного аккаунта. Фактически читается из ENV GOOGLE_APPLICATION_CREDENTIALS.
	CredentialsPath string  `env:"GOOGLE_APPLICATION_CREDENTIALS"`
	Language        string  `env:"GOOGLE_TTS_LANGUAGE"`
	SpeakingRate    float64 `env:"GOOGLE_TTS_SPEAKING_RATE"`
	Pitch           float64 `env:"GOOGLE_TTS_PITCH"`
	VolumeGainDb    float64 `env:"GOOGLE_TTS_VOLUME_DB"`
	// Эффект профиля устройства воспроизведения, напр. headphone-class-device
	EffectsProfileID string `env:"GOOGLE_TTS_EFFECTS_PROFILE_ID"`
}

// GeminiTTSConfig конфигурация Cloud Text-to-Speech: Gemini‑TTS (REST + ADC).
type GeminiTTSConfig struct {
	Endpoint     string  `env:"GEMINI_TTS_ENDPOINT"`
	ModelName    string  `env:"GEMINI_TTS_MODEL"`
	Language     string  `env:"GEMINI_TTS_LANGUAGE"`
	Prompt       string  `env:"GEMINI_TTS_PROMPT"` // Стилевой промпт, пустым не отправляется
	SpeakingRate float64 `env:"GEMINI_TTS_SPEAKING_RATE"`
	Pitch        float64 `env:"GEMINI_TTS_PITCH"`
	VolumeGainDb float64 `env:"GEMINI_TTS_VOLUME_DB"`
}

// OpenAITTSConfig конфигурация OpenAI speech. Ключ читается SDK из OPENAI_API_KEY.
type OpenAITTSConfig struct {
	BaseURL      string  `env:"OPENAI_BASE_URL"`
	Model        string  `env:"OPENAI_TTS_MODEL"`
	Speed        float64 `env:"OPENAI_TTS_SPEED"`
	Instructions string  `env:"OPENAI_TTS_INSTRUCTIONS"`
}

// YandexTTSConfig конфигурация для синтеза речи через Yandex SpeechKit.
type YandexTTSConfig struct {
	Endpoint string `env:"YC_TTS_ENDPOINT"`
	APIKey   string `env:"YC_TTS_API_KEY"` // Ключ берём из .env/ENV. Пустой ключ даст ошибку при использовании
	Speed    string `env:"YC_TTS_SPEED"`   // Скорость синтеза (1.0 по умолчанию в API)
	Emotion  string `env:"YC_TTS_EMOTION"` // neutral|good|evil
}

// Defaults возвращает конфигурацию с предустановленными значениями по умолчанию.
// Эти значения перекрываются .env, переменными окружения и флагами CLI.
func Defaults() *Config {
	return &Config{
		DebugMode:      false,
		Provider:       ProviderPolly,
		DefaultVoice:   "Joanna",
		AudioRetention: 24 * time.Hour,
		Player: PlayerConfig{
			Backend:      PlayerAuto,
			KeepUnplayed: true,
		},
		Polly: PollyConfig{
			Engine: "neural",
		},
		GoogleTTS: GoogleTTSConfig{
			Language:     "en-US",
			SpeakingRate: 1.0,
		},
		GeminiTTS: GeminiTTSConfig{
			Endpoint:     "https://texttospeech.googleapis.com/v1beta1/text:synthesize",
			ModelName:    "gemini-2.5-flash-tts",
			Language:     "en-US",
			SpeakingRate: 1.0,
		},
		OpenAITTS: OpenAITTSConfig{
			Model: "gpt-4o-mini-tts",
			Speed: 1.0,
		},
		YandexTTS: YandexTTSConfig{
			Endpoint: "https://tts.api.cloud.yandex.net/speech/v1/tts:synthesize",
			Speed:    "1.0",
			Emotion:  "neutral",
		},
	}
}

// NewConfig загружает конфигурацию: дефолты, затем .env и окружение.
// Флаги CLI накладываются отдельно через BindFlags.
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// BindFlags регистрирует флаги, перекрывающие значения из окружения.
// Вызывать после NewConfig: текущие значения становятся дефолтами флагов.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&c.DebugMode, "debug-mode", c.DebugMode, "включить режим дебага (логи уровня debug)")
	fs.StringVar(&c.Provider, "provider", c.Provider, "сервис синтеза: polly|google|gemini|openai|yandex")
	fs.StringVar(&c.DefaultVoice, "default-voice", c.DefaultVoice, "голос по умолчанию, если voice_id не передан")
	fs.IntVar(&c.MaxMessageLength, "max-message-length", c.MaxMessageLength, "локальный лимит длины сообщения в символах, 0 — без лимита")
	fs.StringVar(&c.AudioDir, "audio-dir", c.AudioDir, "каталог временных аудиофайлов (по умолчанию системный temp)")
	fs.DurationVar(&c.AudioRetention, "audio-retention", c.AudioRetention, "возраст, после которого забытые аудиофайлы удаляются при старте; 0 — не чистить")
	// Плеер
	fs.StringVar(&c.Player.Backend, "player", c.Player.Backend, "бэкенд воспроизведения: auto|beep")
	fs.StringVar(&c.Player.Command, "player-command", c.Player.Command, "команда проигрывателя, перекрывает таблицу платформ (напр. mpg123)")
	fs.Float64Var(&c.Player.VolumeDB, "player-volume-db", c.Player.VolumeDB, "громкость beep-плеера в dB")
	fs.BoolVar(&c.Player.KeepUnplayed, "keep-unplayed", c.Player.KeepUnplayed, "сохранять аудио, если на платформе нет проигрывателя")
	// Polly
	fs.StringVar(&c.Polly.Region, "polly-region", c.Polly.Region, "регион AWS для Polly")
	fs.StringVar(&c.Polly.Engine, "polly-engine", c.Polly.Engine, "движок Polly: standard|neural|long-form|generative")
	fs.StringVar(&c.Polly.LanguageCode, "polly-language-code", c.Polly.LanguageCode, "код языка для двуязычных голосов, напр. en-US")
	fs.StringVar(&c.Polly.SampleRate, "polly-sample-rate", c.Polly.SampleRate, "частота дискретизации mp3: 8000|16000|22050|24000")
	// Google / Gemini
	fs.StringVar(&c.GoogleTTS.CredentialsPath, "google-tts-credentials", c.GoogleTTS.CredentialsPath, "путь к service-account.json (также читается из ENV GOOGLE_APPLICATION_CREDENTIALS)")
	fs.StringVar(&c.GoogleTTS.Language, "google-tts-language", c.GoogleTTS.Language, "язык синтеза, напр. en-US")
	fs.Float64Var(&c.GoogleTTS.SpeakingRate, "google-tts-speaking-rate", c.GoogleTTS.SpeakingRate, "скорость речи (1.0 по умолчанию)")
	fs.StringVar(&c.GeminiTTS.ModelName, "gemini-tts-model", c.GeminiTTS.ModelName, "модель Gemini TTS")
	fs.StringVar(&c.GeminiTTS.Prompt, "gemini-tts-prompt", c.GeminiTTS.Prompt, "стилевой промпт Gemini TTS")
	// OpenAI / Yandex
	fs.StringVar(&c.OpenAITTS.Model, "openai-tts-model", c.OpenAITTS.Model, "модель OpenAI TTS")
	fs.Float64Var(&c.OpenAITTS.Speed, "openai-tts-speed", c.OpenAITTS.Speed, "скорость речи OpenAI (0.25-4.0)")
	fs.StringVar(&c.YandexTTS.APIKey, "yc-tts-api-key", c.YandexTTS.APIKey, "API ключ Yandex SpeechKit TTS (перекрывает ENV)")
	fs.StringVar(&c.YandexTTS.Emotion, "yc-tts-emotion", c.YandexTTS.Emotion, "эмоциональная окраска (neutral|good|evil)")
}

// providerAliases — альтернативные имена провайдеров, приводятся к каноническим.
var providerAliases = map[string]string{
	"aws":           ProviderPolly,
	"google-gemini": ProviderGemini,
	"yc":            ProviderYandex,
	"speechkit":     ProviderYandex,
}

// Validate проверяет согласованность конфигурации после применения флагов.
func (c *Config) Validate() error {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if canonical, ok := providerAliases[c.Provider]; ok {
		c.Provider = canonical
	}
	switch c.Provider {
	case ProviderPolly, ProviderGoogle, ProviderGemini, ProviderOpenAI, ProviderYandex:
	default:
		return fmt.Errorf("unknown tts provider %q", c.Provider)
	}

	c.Player.Backend = strings.ToLower(strings.TrimSpace(c.Player.Backend))
	switch c.Player.Backend {
	case "":
		c.Player.Backend = PlayerAuto
	case PlayerAuto, PlayerBeep:
	default:
		return fmt.Errorf("unknown player backend %q", c.Player.Backend)
	}

	if c.MaxMessageLength < 0 {
		return errors.New("max message length must not be negative")
	}
	if strings.TrimSpace(c.DefaultVoice) == "" {
		return errors.New("default voice must not be empty")
	}

	// Для google/gemini: если ENV пуст, но в конфиге указан путь, устанавливаем ENV.
	// Без пути полагаемся на ADC (gcloud auth application-default login, метаданные GCE).
	if c.Provider == ProviderGoogle || c.Provider == ProviderGemini {
		cred := strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
		if cred == "" {
			if cp := strings.TrimSpace(c.GoogleTTS.CredentialsPath); cp != "" {
				_ = os.Setenv("GOOGLE_APPLICATION_CREDENTIALS", cp)
				cred = cp
			}
		}
		if cred != "" {
			if _, err := os.Stat(cred); err != nil {
				return fmt.Errorf("google tts: credentials file not found: %s", cred)
			}
		}
	}

	if c.Provider == ProviderYandex && strings.TrimSpace(c.YandexTTS.APIKey) == "" {
		return errors.New("yandex tts: empty API key (set YC_TTS_API_KEY in .env/ENV or pass via flag)")
	}
	return nil
}

// TTSEnabled читает ENABLE_TTS при каждом вызове. Не задано — включено;
// включено только значение "true" без учёта регистра, всё остальное выключает озвучку.
func TTSEnabled() bool {
	v, ok := os.LookupEnv(EnvEnableTTS)
	if !ok {
		return true
	}
	return strings.EqualFold(v, "true")
}

package gemini

import (
	"TTSAnnouncer/internal/config"
	"TTSAnnouncer/internal/service/tts"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
)

const (
	name = "gemini"
	// По умолчанию используем Cloud TTS v1beta1 text:synthesize, совместимый с Generative AI TTS.
	defaultEndpoint = "https://texttospeech.googleapis.com/v1beta1/text:synthesize"
	cloudScope      = "https://www.googleapis.com/auth/cloud-platform"
)

// Client реализует синтез речи через Cloud Text-to-Speech: Gemini‑TTS.
type Client struct {
	cfg        config.GeminiTTSConfig
	httpClient func(ctx context.Context) (*http.Client, error)
	logger     *zap.SugaredLogger
}

func New(cfg config.GeminiTTSConfig, logger *zap.SugaredLogger) *Client {
	return &Client{
		cfg: cfg,
		// OAuth2 HTTP‑клиент только через ADC/metadata. API Key не используется.
		httpClient: func(ctx context.Context) (*http.Client, error) {
			return google.DefaultClient(ctx, cloudScope)
		},
		logger: logger,
	}
}

func (c *Client) Name() string { return name }

// requestPayload покрывает input.prompt и voice.model_name.
type requestPayload struct {
	Input struct {
		Prompt string `json:"prompt,omitempty"`
		Text   string `json:"text,omitempty"`
		Ssml   string `json:"ssml,omitempty"`
	} `json:"input"`
	Voice struct {
		ModelName    string `json:"modelName,omitempty"`
		LanguageCode string `json:"languageCode,omitempty"`
		VoiceName    string `json:"name,omitempty"`
	} `json:"voice"`
	AudioConfig struct {
		AudioEncoding string  `json:"audioEncoding,omitempty"`
		SpeakingRate  float64 `json:"speakingRate,omitempty"`
		Pitch         float64 `json:"pitch,omitempty"`
		VolumeGainDb  float64 `json:"volumeGainDb,omitempty"`
	} `json:"audioConfig"`
}

type audioResponse struct {
	AudioContent string `json:"audioContent"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Synthesize выполняет запрос к Gemini‑TTS и возвращает MP3.
func (c *Client) Synthesize(ctx context.Context, req tts.Request) ([]byte, error) {
	var rp requestPayload
	if tts.IsSSML(req.Text) {
		rp.Input.Ssml = req.Text
	} else {
		rp.Input.Text = req.Text
	}
	// Промпт из конфигурации. Пустым не отправляем.
	if p := strings.TrimSpace(c.cfg.Prompt); p != "" {
		rp.Input.Prompt = p
	}
	rp.Voice.ModelName = strings.TrimSpace(c.cfg.ModelName)
	rp.Voice.LanguageCode = strings.TrimSpace(c.cfg.Language)
	rp.Voice.VoiceName = strings.TrimSpace(req.Voice)
	rp.AudioConfig.AudioEncoding = "MP3"
	rp.AudioConfig.SpeakingRate = c.cfg.SpeakingRate
	rp.AudioConfig.Pitch = c.cfg.Pitch
	rp.AudioConfig.VolumeGainDb = c.cfg.VolumeGainDb

	body, err := json.Marshal(&rp)
	if err != nil {
		return nil, err
	}

	endpoint := strings.TrimSpace(c.cfg.Endpoint)
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	hc, err := c.httpClient(ctx)
	if err != nil {
		return nil, tts.NewSynthesisError(name, "", "ADC credentials not found; set GOOGLE_APPLICATION_CREDENTIALS or run with default credentials", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := hc.Do(httpReq)
	if err != nil {
		return nil, tts.NewSynthesisError(name, "", "send request", err)
	}
	defer resp.Body.Close()

	if c.logger != nil {
		c.logger.Debugw("Gemini TTS request completed", "status", resp.StatusCode, "took", time.Since(started).String())
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, rejection(resp)
	}

	// JSON с base64 полем audioContent, до 5 МБ
	var ar audioResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 5<<20)).Decode(&ar); err != nil {
		return nil, tts.NewSynthesisError(name, "", "decode json response", err)
	}
	if strings.TrimSpace(ar.AudioContent) == "" {
		return nil, tts.NewSynthesisError(name, "", "empty audioContent in response", nil)
	}
	data, err := base64.StdEncoding.DecodeString(ar.AudioContent)
	if err != nil {
		return nil, tts.NewSynthesisError(name, "", "base64 decode", err)
	}
	return data, nil
}

func rejection(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := strings.TrimSpace(string(b))
	var er errorResponse
	if json.Unmarshal(b, &er) == nil && er.Error.Message != "" {
		msg = er.Error.Message
	}
	if msg == "" {
		msg = resp.Status
	}
	if resp.StatusCode == http.StatusBadRequest {
		if cat := tts.ClassifyRejection(msg); cat != nil {
			return cat
		}
	}
	return tts.NewSynthesisError(name, strconv.Itoa(resp.StatusCode), fmt.Sprintf("status=%d, body=%s", resp.StatusCode, msg), nil)
}

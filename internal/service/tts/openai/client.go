package openai

import (
	"TTSAnnouncer/internal/config"
	"TTSAnnouncer/internal/service/tts"
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
)

const name = "openai"

// Client реализует синтез речи через OpenAI audio/speech.
type Client struct {
	api    openai.Client
	cfg    config.OpenAITTSConfig
	logger *zap.SugaredLogger
}

// New создаёт клиента. Ключ SDK читает из OPENAI_API_KEY; повторы отключены.
func New(cfg config.OpenAITTSConfig, logger *zap.SugaredLogger, opts ...option.RequestOption) *Client {
	base := []option.RequestOption{option.WithMaxRetries(0)}
	if u := strings.TrimSpace(cfg.BaseURL); u != "" {
		base = append(base, option.WithBaseURL(u))
	}
	return &Client{
		api:    openai.NewClient(append(base, opts...)...),
		cfg:    cfg,
		logger: logger,
	}
}

func (c *Client) Name() string { return name }

// Synthesize запрашивает MP3 и вычитывает тело ответа целиком.
func (c *Client) Synthesize(ctx context.Context, req tts.Request) ([]byte, error) {
	params := openai.AudioSpeechNewParams{
		Model:          openai.SpeechModel(c.cfg.Model),
		Input:          req.Text,
		Voice:          openai.AudioSpeechNewParamsVoice(req.Voice),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	}
	if c.cfg.Speed > 0 && c.cfg.Speed != 1.0 {
		params.Speed = openai.Float(c.cfg.Speed)
	}
	if in := strings.TrimSpace(c.cfg.Instructions); in != "" {
		params.Instructions = openai.String(in)
	}

	started := time.Now()
	resp, err := c.api.Audio.Speech.New(ctx, params)
	if err != nil {
		return nil, classify(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, tts.NewSynthesisError(name, "", "read audio", err)
	}
	if len(data) == 0 {
		return nil, tts.NewSynthesisError(name, "", "empty audio", nil)
	}
	if c.logger != nil {
		c.logger.Debugw("OpenAI TTS synthesize completed", "model", c.cfg.Model, "bytes", len(data), "took", time.Since(started).String())
	}
	return data, nil
}

func classify(err error) error {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return tts.NewSynthesisError(name, "", "send request", err)
	}
	if apiErr.StatusCode == http.StatusBadRequest {
		if cat := tts.ClassifyRejection(apiErr.Code + " " + apiErr.Message); cat != nil {
			return cat
		}
	}
	code := apiErr.Code
	if code == "" {
		code = strconv.Itoa(apiErr.StatusCode)
	}
	return tts.NewSynthesisError(name, code, "synthesize speech", err)
}

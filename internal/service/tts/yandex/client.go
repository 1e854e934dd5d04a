package yandex

import (
	"TTSAnnouncer/internal/config"
	"TTSAnnouncer/internal/service/tts"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	name            = "yandex"
	defaultEndpoint = "https://tts.api.cloud.yandex.net/speech/v1/tts:synthesize"
)

// Client реализует синтез речи через Yandex SpeechKit.
type Client struct {
	http *http.Client
	cfg  config.YandexTTSConfig
}

func New(cfg config.YandexTTSConfig) *Client {
	return &Client{http: http.DefaultClient, cfg: cfg}
}

func (c *Client) Name() string { return name }

type errorResponse struct {
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

// Synthesize выполняет запрос к Yandex TTS и возвращает MP3.
func (c *Client) Synthesize(ctx context.Context, req tts.Request) ([]byte, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return nil, errors.New("yandex tts: empty API key (set YC_TTS_API_KEY in .env/ENV or pass via flag)")
	}

	form := url.Values{}
	form.Set("text", req.Text)
	form.Set("voice", req.Voice)
	form.Set("format", tts.FormatMP3)
	if s := strings.TrimSpace(c.cfg.Speed); s != "" {
		form.Set("speed", s)
	}
	if e := strings.ToLower(strings.TrimSpace(c.cfg.Emotion)); e != "" {
		form.Set("emotion", e)
	}

	endpoint := strings.TrimSpace(c.cfg.Endpoint)
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Authorization", "Api-Key "+c.cfg.APIKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, tts.NewSynthesisError(name, "", "send request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		msg := string(bytes.TrimSpace(b))
		var er errorResponse
		if json.Unmarshal(b, &er) == nil && er.ErrorMessage != "" {
			msg = er.ErrorMessage
		}
		if msg == "" {
			msg = resp.Status
		}
		if resp.StatusCode == http.StatusBadRequest {
			if cat := tts.ClassifyRejection(msg); cat != nil {
				return nil, cat
			}
		}
		return nil, tts.NewSynthesisError(name, strconv.Itoa(resp.StatusCode), fmt.Sprintf("status=%d, body=%s", resp.StatusCode, msg), nil)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, tts.NewSynthesisError(name, "", "read audio", err)
	}
	return data, nil
}

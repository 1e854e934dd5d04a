package google

import (
	"TTSAnnouncer/internal/config"
	"TTSAnnouncer/internal/service/tts"
	"context"
	"strings"
	"time"

	gctts "cloud.google.com/go/texttospeech/apiv1"
	ttspb "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/googleapis/gax-go/v2"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const name = "google"

// noRetry отключает повторы из CallOptions SDK по умолчанию: ошибка сразу становится итогом.
var noRetry = gax.WithRetry(func() gax.Retryer { return nil })

// speechAPI — методы *gctts.Client, которыми мы пользуемся.
type speechAPI interface {
	SynthesizeSpeech(ctx context.Context, req *ttspb.SynthesizeSpeechRequest, opts ...gax.CallOption) (*ttspb.SynthesizeSpeechResponse, error)
	ListVoices(ctx context.Context, req *ttspb.ListVoicesRequest, opts ...gax.CallOption) (*ttspb.ListVoicesResponse, error)
	Close() error
}

// Client реализует синтез речи через Google Cloud Text-to-Speech.
type Client struct {
	cfg    config.GoogleTTSConfig
	dial   func(ctx context.Context) (speechAPI, error)
	logger *zap.SugaredLogger
}

func New(cfg config.GoogleTTSConfig, logger *zap.SugaredLogger) *Client {
	return &Client{
		cfg: cfg,
		dial: func(ctx context.Context) (speechAPI, error) {
			cl, err := gctts.NewClient(ctx)
			if err != nil {
				return nil, err
			}
			return cl, nil
		},
		logger: logger,
	}
}

func (c *Client) Name() string { return name }

// Synthesize выполняет запрос к Google TTS и возвращает MP3.
func (c *Client) Synthesize(ctx context.Context, req tts.Request) ([]byte, error) {
	// Клиент SDK создаётся на каждый вызов: процесс живёт долго, а вызовы редкие
	api, err := c.dial(ctx)
	if err != nil {
		return nil, tts.NewSynthesisError(name, "", "create client", err)
	}
	defer api.Close()

	// Определяем тип входа (text|ssml)
	var input *ttspb.SynthesisInput
	if tts.IsSSML(req.Text) {
		input = &ttspb.SynthesisInput{InputSource: &ttspb.SynthesisInput_Ssml{Ssml: req.Text}}
	} else {
		input = &ttspb.SynthesisInput{InputSource: &ttspb.SynthesisInput_Text{Text: req.Text}}
	}

	voice := &ttspb.VoiceSelectionParams{
		LanguageCode: c.cfg.Language,
		Name:         req.Voice,
	}

	// Только MP3
	audio := &ttspb.AudioConfig{
		AudioEncoding: ttspb.AudioEncoding_MP3,
		SpeakingRate:  c.cfg.SpeakingRate,
		Pitch:         c.cfg.Pitch,
		VolumeGainDb:  c.cfg.VolumeGainDb,
	}
	if ep := strings.TrimSpace(c.cfg.EffectsProfileID); ep != "" {
		audio.EffectsProfileId = []string{ep}
	}

	started := time.Now()
	resp, err := api.SynthesizeSpeech(ctx, &ttspb.SynthesizeSpeechRequest{Input: input, Voice: voice, AudioConfig: audio}, noRetry)
	if err != nil {
		return nil, classify(err)
	}
	if c.logger != nil {
		c.logger.Debugw("Google TTS synthesize completed", "took", time.Since(started).String())
	}
	data := resp.GetAudioContent()
	if len(data) == 0 {
		return nil, tts.NewSynthesisError(name, "", "empty audio content", nil)
	}
	return data, nil
}

// Voices возвращает голоса для языка (пустой язык — все).
func (c *Client) Voices(ctx context.Context, language string) ([]tts.Voice, error) {
	api, err := c.dial(ctx)
	if err != nil {
		return nil, tts.NewSynthesisError(name, "", "create client", err)
	}
	defer api.Close()

	resp, err := api.ListVoices(ctx, &ttspb.ListVoicesRequest{LanguageCode: language})
	if err != nil {
		return nil, tts.NewSynthesisError(name, status.Code(err).String(), "list voices", err)
	}
	voices := make([]tts.Voice, 0, len(resp.GetVoices()))
	for _, v := range resp.GetVoices() {
		voices = append(voices, tts.Voice{
			ID:       v.GetName(),
			Name:     v.GetName(),
			Language: strings.Join(v.GetLanguageCodes(), ","),
			Gender:   v.GetSsmlGender().String(),
		})
	}
	return voices, nil
}

// classify: Google отвечает InvalidArgument и на длинный текст, и на битую SSML, различаем по тексту.
func classify(err error) error {
	st, ok := status.FromError(err)
	if ok && st.Code() == codes.InvalidArgument {
		if cat := tts.ClassifyRejection(st.Message()); cat != nil {
			return cat
		}
	}
	return tts.NewSynthesisError(name, status.Code(err).String(), "synthesize speech", err)
}

package polly

import (
	"TTSAnnouncer/internal/config"
	"TTSAnnouncer/internal/service/tts"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
)

const name = "polly"

// speechAPI — подмножество клиента Polly, которое нам нужно.
type speechAPI interface {
	SynthesizeSpeech(ctx context.Context, params *polly.SynthesizeSpeechInput, optFns ...func(*polly.Options)) (*polly.SynthesizeSpeechOutput, error)
	DescribeVoices(ctx context.Context, params *polly.DescribeVoicesInput, optFns ...func(*polly.Options)) (*polly.DescribeVoicesOutput, error)
}

// Client реализует синтез речи через Amazon Polly.
type Client struct {
	api    speechAPI
	cfg    config.PollyConfig
	logger *zap.SugaredLogger
}

// New создаёт клиента по стандартной цепочке учётных данных AWS (ENV, профиль, IRSA, instance profile).
// Повторы SDK отключены: каждая ошибка сразу становится итогом вызова.
func New(ctx context.Context, cfg config.PollyConfig, logger *zap.SugaredLogger) (*Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if r := strings.TrimSpace(cfg.Region); r != "" {
		opts = append(opts, awsconfig.WithRegion(r))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("polly: load aws config: %w", err)
	}
	api := polly.NewFromConfig(awsCfg, func(o *polly.Options) {
		o.Retryer = aws.NopRetryer{}
	})
	return newWithAPI(api, cfg, logger), nil
}

func newWithAPI(api speechAPI, cfg config.PollyConfig, logger *zap.SugaredLogger) *Client {
	return &Client{api: api, cfg: cfg, logger: logger}
}

func (c *Client) Name() string { return name }

// Synthesize запрашивает mp3 и вычитывает AudioStream целиком.
func (c *Client) Synthesize(ctx context.Context, req tts.Request) ([]byte, error) {
	in := &polly.SynthesizeSpeechInput{
		Text:         aws.String(req.Text),
		VoiceId:      types.VoiceId(req.Voice),
		OutputFormat: types.OutputFormatMp3,
		TextType:     types.TextTypeText,
	}
	if tts.IsSSML(req.Text) {
		in.TextType = types.TextTypeSsml
	}
	if e := strings.TrimSpace(c.cfg.Engine); e != "" {
		in.Engine = types.Engine(e)
	}
	if lc := strings.TrimSpace(c.cfg.LanguageCode); lc != "" {
		in.LanguageCode = types.LanguageCode(lc)
	}
	if sr := strings.TrimSpace(c.cfg.SampleRate); sr != "" {
		in.SampleRate = aws.String(sr)
	}

	started := time.Now()
	out, err := c.api.SynthesizeSpeech(ctx, in)
	if err != nil {
		return nil, classify(err)
	}
	defer out.AudioStream.Close()

	data, err := io.ReadAll(out.AudioStream)
	if err != nil {
		return nil, tts.NewSynthesisError(name, "", "read audio stream", err)
	}
	if len(data) == 0 {
		return nil, tts.NewSynthesisError(name, "", "empty audio stream", nil)
	}
	if c.logger != nil {
		c.logger.Debugw("Polly synthesize completed",
			"voice", req.Voice, "engine", c.cfg.Engine, "bytes", len(data), "took", time.Since(started).String())
	}
	return data, nil
}

// Voices возвращает голоса, доступные для настроенного движка.
func (c *Client) Voices(ctx context.Context, language string) ([]tts.Voice, error) {
	in := &polly.DescribeVoicesInput{}
	if e := strings.TrimSpace(c.cfg.Engine); e != "" {
		in.Engine = types.Engine(e)
	}
	if l := strings.TrimSpace(language); l != "" {
		in.LanguageCode = types.LanguageCode(l)
	}

	var voices []tts.Voice
	for {
		out, err := c.api.DescribeVoices(ctx, in)
		if err != nil {
			return nil, tts.NewSynthesisError(name, apiCode(err), "describe voices", err)
		}
		for _, v := range out.Voices {
			voices = append(voices, tts.Voice{
				ID:       string(v.Id),
				Name:     aws.ToString(v.Name),
				Language: string(v.LanguageCode),
				Gender:   string(v.Gender),
			})
		}
		if aws.ToString(out.NextToken) == "" {
			return voices, nil
		}
		in.NextToken = out.NextToken
	}
}

// classify переводит исключения Polly в категории tts.
func classify(err error) error {
	var tooLong *types.TextLengthExceededException
	if errors.As(err, &tooLong) {
		return tts.ErrTextTooLong
	}
	var badSSML *types.InvalidSsmlException
	if errors.As(err, &badSSML) {
		return tts.ErrInvalidInput
	}
	var marks *types.SsmlMarksNotSupportedForTextTypeException
	if errors.As(err, &marks) {
		return tts.ErrInvalidInput
	}
	return tts.NewSynthesisError(name, apiCode(err), "synthesize speech", err)
}

func apiCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

package polly

import (
	"TTSAnnouncer/internal/config"
	"TTSAnnouncer/internal/service/tts"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAPI struct {
	synthIn   *polly.SynthesizeSpeechInput
	audio     string
	synthErr  error
	voicePage []*polly.DescribeVoicesOutput
	voiceIns  []polly.DescribeVoicesInput
}

func (f *fakeAPI) SynthesizeSpeech(_ context.Context, in *polly.SynthesizeSpeechInput, _ ...func(*polly.Options)) (*polly.SynthesizeSpeechOutput, error) {
	f.synthIn = in
	if f.synthErr != nil {
		return nil, f.synthErr
	}
	return &polly.SynthesizeSpeechOutput{AudioStream: io.NopCloser(strings.NewReader(f.audio))}, nil
}

func (f *fakeAPI) DescribeVoices(_ context.Context, in *polly.DescribeVoicesInput, _ ...func(*polly.Options)) (*polly.DescribeVoicesOutput, error) {
	f.voiceIns = append(f.voiceIns, *in)
	page := f.voicePage[0]
	f.voicePage = f.voicePage[1:]
	return page, nil
}

func TestSynthesize(t *testing.T) {
	api := &fakeAPI{audio: "ID3-mp3-bytes"}
	c := newWithAPI(api, config.PollyConfig{Engine: "neural", SampleRate: "22050"}, zap.NewNop().Sugar())

	data, err := c.Synthesize(context.Background(), tts.Request{Text: "Build complete", Voice: "Joanna", Format: tts.FormatMP3})
	require.NoError(t, err)
	assert.Equal(t, []byte("ID3-mp3-bytes"), data)

	in := api.synthIn
	require.NotNil(t, in)
	assert.Equal(t, "Build complete", aws.ToString(in.Text))
	assert.Equal(t, types.VoiceId("Joanna"), in.VoiceId)
	assert.Equal(t, types.OutputFormatMp3, in.OutputFormat)
	assert.Equal(t, types.EngineNeural, in.Engine)
	assert.Equal(t, types.TextTypeText, in.TextType)
	assert.Equal(t, "22050", aws.ToString(in.SampleRate))
	assert.Equal(t, "polly", c.Name())
}

func TestSynthesizeSSML(t *testing.T) {
	api := &fakeAPI{audio: "x"}
	c := newWithAPI(api, config.PollyConfig{}, nil)

	_, err := c.Synthesize(context.Background(), tts.Request{Text: "<speak>Hi</speak>", Voice: "Matthew"})
	require.NoError(t, err)
	assert.Equal(t, types.TextTypeSsml, api.synthIn.TextType)
	assert.Empty(t, api.synthIn.Engine)
}

func TestSynthesizeEmptyStream(t *testing.T) {
	c := newWithAPI(&fakeAPI{}, config.PollyConfig{}, nil)

	_, err := c.Synthesize(context.Background(), tts.Request{Text: "x", Voice: "Joanna"})
	var se *tts.SynthesisError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "empty audio stream", se.Message)
}

func TestSynthesizeErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		want     error
		wantCode string
	}{
		{
			name: "text too long",
			err:  &types.TextLengthExceededException{Message: aws.String("Maximum text length has been exceeded")},
			want: tts.ErrTextTooLong,
		},
		{
			name: "invalid ssml",
			err:  &types.InvalidSsmlException{Message: aws.String("Invalid SSML request")},
			want: tts.ErrInvalidInput,
		},
		{
			name: "marks not supported",
			err:  &types.SsmlMarksNotSupportedForTextTypeException{Message: aws.String("marks")},
			want: tts.ErrInvalidInput,
		},
		{
			name:     "throttled",
			err:      &smithy.GenericAPIError{Code: "ThrottlingException", Message: "Rate exceeded"},
			wantCode: "ThrottlingException",
		},
		{
			name: "transport",
			err:  errors.New("dial tcp: lookup polly.us-east-1.amazonaws.com: no such host"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newWithAPI(&fakeAPI{synthErr: tt.err}, config.PollyConfig{}, nil)
			_, err := c.Synthesize(context.Background(), tts.Request{Text: "x", Voice: "Joanna"})
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
				return
			}
			var se *tts.SynthesisError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, "polly", se.Provider)
			assert.Equal(t, tt.wantCode, se.Code)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestVoicesPaginates(t *testing.T) {
	api := &fakeAPI{voicePage: []*polly.DescribeVoicesOutput{
		{
			Voices:    []types.Voice{{Id: types.VoiceIdJoanna, Name: aws.String("Joanna"), LanguageCode: types.LanguageCodeEnUs, Gender: types.GenderFemale}},
			NextToken: aws.String("page-2"),
		},
		{
			Voices: []types.Voice{{Id: types.VoiceIdMatthew, Name: aws.String("Matthew"), LanguageCode: types.LanguageCodeEnUs, Gender: types.GenderMale}},
		},
	}}
	c := newWithAPI(api, config.PollyConfig{Engine: "neural"}, nil)

	voices, err := c.Voices(context.Background(), "en-US")
	require.NoError(t, err)
	require.Len(t, voices, 2)
	assert.Equal(t, tts.Voice{ID: "Joanna", Name: "Joanna", Language: "en-US", Gender: "Female"}, voices[0])
	assert.Equal(t, "Matthew", voices[1].ID)

	require.Len(t, api.voiceIns, 2)
	assert.Equal(t, types.EngineNeural, api.voiceIns[0].Engine)
	assert.Equal(t, types.LanguageCodeEnUs, api.voiceIns[0].LanguageCode)
	assert.Equal(t, "page-2", aws.ToString(api.voiceIns[1].NextToken))
}

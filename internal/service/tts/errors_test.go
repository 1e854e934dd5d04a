package tts

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSynthesisError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewSynthesisError("polly", "RequestError", "send request failed", cause)

	assert.Equal(t, "polly: send request failed: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := NewSynthesisError("yandex", "401", "unauthorized", nil)
	assert.Equal(t, "yandex: unauthorized", bare.Error())
	assert.Nil(t, bare.Unwrap())
}

func TestClassifyRejection(t *testing.T) {
	tests := []struct {
		msg  string
		want error
	}{
		{"Either `input.text` or `input.ssml` is longer than the limit of 5000 bytes.", ErrTextTooLong},
		{"Too long text", ErrTextTooLong},
		{"string_above_max_length", ErrTextTooLong},
		{"Invalid SSML: unexpected end tag", ErrInvalidInput},
		{"malformed request text", ErrInvalidInput},
		{"Requested voice does not exist", nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyRejection(tt.msg))
		})
	}
}

func TestIsSSML(t *testing.T) {
	assert.True(t, IsSSML("<speak>Hello</speak>"))
	assert.True(t, IsSSML("  <speak version=\"1.1\">Hi</speak>"))
	assert.False(t, IsSSML("Build complete"))
	assert.False(t, IsSSML("say <speak>"))
}

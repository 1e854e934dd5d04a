package tts

import (
	"errors"
	"strings"
)

// Категории отказа провайдера, которые вызывающий может исправить сам.
var (
	// ErrInvalidInput — провайдер отверг текст как некорректный (например, битая SSML-разметка).
	ErrInvalidInput = errors.New("invalid message format")

	// ErrTextTooLong — текст превышает лимит провайдера.
	ErrTextTooLong = errors.New("message too long")
)

// SynthesisError подробности прочих ошибок провайдера: сеть, авторизация, троттлинг.
type SynthesisError struct {
	Provider string
	Code     string
	Message  string
	Cause    error
}

func (e *SynthesisError) Error() string {
	if e.Cause != nil {
		return e.Provider + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Provider + ": " + e.Message
}

func (e *SynthesisError) Unwrap() error { return e.Cause }

// NewSynthesisError создаёт SynthesisError.
func NewSynthesisError(provider, code, message string, cause error) *SynthesisError {
	return &SynthesisError{Provider: provider, Code: code, Message: message, Cause: cause}
}

var (
	tooLongMarkers = []string{"too long", "longer than", "exceeds the limit", "above_max_length", "maximum length"}
	invalidMarkers = []string{"ssml", "malformed", "invalid text"}
)

// ClassifyRejection сопоставляет текст ответа «400 Bad Request» с категорией ошибки.
// Возвращает nil, если текст не похож ни на одну из известных категорий.
func ClassifyRejection(message string) error {
	lower := strings.ToLower(message)
	for _, m := range tooLongMarkers {
		if strings.Contains(lower, m) {
			return ErrTextTooLong
		}
	}
	for _, m := range invalidMarkers {
		if strings.Contains(lower, m) {
			return ErrInvalidInput
		}
	}
	return nil
}

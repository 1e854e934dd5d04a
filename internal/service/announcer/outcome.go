package announcer

import "fmt"

// Kind — итог одного объявления.
type Kind int

const (
	Announced Kind = iota
	Disabled
	InvalidInput
	TooLong
	ProviderError
	PlaybackError
)

func (k Kind) String() string {
	switch k {
	case Announced:
		return "announced"
	case Disabled:
		return "disabled"
	case InvalidInput:
		return "invalid_input"
	case TooLong:
		return "too_long"
	case ProviderError:
		return "provider_error"
	case PlaybackError:
		return "playback_error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Outcome — типизированный результат. В строку превращается только на границе (String).
type Outcome struct {
	Kind    Kind
	Message string
	Err     error
	// AudioPath заполнен, если файл сохранён, потому что проиграть его было нечем.
	AudioPath string
}

// Префиксы статусов, на которые завязаны существующие вызывающие.
const (
	statusAnnounced = "✓ Announced: "
	statusDisabled  = "TTS disabled: "
	statusError     = "TTS Error: "
	statusInvalid   = statusError + "Invalid message format"
	statusTooLong   = statusError + "Message too long"
)

func (o Outcome) String() string {
	switch o.Kind {
	case Announced:
		return statusAnnounced + o.Message
	case Disabled:
		return statusDisabled + o.Message
	case InvalidInput:
		return statusInvalid
	case TooLong:
		return statusTooLong
	default:
		return statusError + o.description()
	}
}

func (o Outcome) description() string {
	desc := "unknown error"
	if o.Err != nil {
		desc = o.Err.Error()
	}
	if o.AudioPath != "" {
		desc += "; audio saved to " + o.AudioPath
	}
	return desc
}

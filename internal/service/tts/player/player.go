package player

import (
	"TTSAnnouncer/internal/config"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Mode описывает, что значит «успех» для конкретного способа воспроизведения.
type Mode int

const (
	// Blocking — команда возвращается после окончания звука.
	Blocking Mode = iota
	// Launch — команда только передаёт файл системному обработчику и возвращается сразу.
	Launch
	// None — воспроизведение на платформе недоступно.
	None
)

func (m Mode) String() string {
	switch m {
	case Blocking:
		return "blocking"
	case Launch:
		return "launch"
	default:
		return "none"
	}
}

// Player воспроизводит аудиофайл по пути.
type Player interface {
	Name() string
	Mode() Mode
	Play(ctx context.Context, path string) error
}

// ErrUnsupportedPlatform — на платформе нет известного способа воспроизведения.
var ErrUnsupportedPlatform = errors.New("no audio player available")

// UnsupportedError несёт платформу и путь к несыгранному файлу.
type UnsupportedError struct {
	GOOS string
	Path string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s on %s", ErrUnsupportedPlatform, e.GOOS)
}

func (e *UnsupportedError) Is(target error) bool { return target == ErrUnsupportedPlatform }

// Unsupported — явная стратегия по умолчанию для неизвестных платформ.
type Unsupported struct{ GOOS string }

func (u Unsupported) Name() string { return "unsupported" }
func (u Unsupported) Mode() Mode   { return None }

func (u Unsupported) Play(_ context.Context, path string) error {
	return &UnsupportedError{GOOS: u.GOOS, Path: path}
}

// platforms — таблица нативных проигрывателей по runtime.GOOS.
// afplay играет до конца; start и xdg-open отдают файл ассоциированному приложению и выходят.
var platforms = map[string]Player{
	"darwin":  Command{Path: "afplay", RunMode: Blocking},
	"windows": Command{Path: "cmd", Args: []string{"/c", "start", ""}, RunMode: Launch},
	"linux":   Command{Path: "xdg-open", RunMode: Launch},
}

// blockingCandidates — консольные проигрыватели, которые играют MP3 до конца.
// Если один из них есть в PATH, он предпочтительнее launch-стратегии таблицы:
// файл гарантированно дочитан до удаления.
var blockingCandidates = map[string][]Command{
	"linux": {
		{Path: "mpg123", Args: []string{"-q"}, RunMode: Blocking},
		{Path: "ffplay", Args: []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}, RunMode: Blocking},
		{Path: "mpv", Args: []string{"--no-video", "--really-quiet"}, RunMode: Blocking},
	},
}

var lookPath = exec.LookPath

// ForPlatform возвращает проигрыватель платформы: блокирующий из PATH, иначе из таблицы, иначе Unsupported.
func ForPlatform(goos string) Player {
	for _, c := range blockingCandidates[goos] {
		if _, err := lookPath(c.Path); err == nil {
			return c
		}
	}
	if p, ok := platforms[goos]; ok {
		return p
	}
	return Unsupported{GOOS: goos}
}

// New выбирает проигрыватель по конфигурации: beep, явная команда, иначе таблица платформ.
func New(cfg config.PlayerConfig, goos string) Player {
	if strings.EqualFold(cfg.Backend, config.PlayerBeep) {
		return NewBeep(cfg.VolumeDB)
	}
	if fields := strings.Fields(cfg.Command); len(fields) > 0 {
		return Command{Path: fields[0], Args: fields[1:], RunMode: Blocking}
	}
	return ForPlatform(goos)
}

package player

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"slices"
)

// Command запускает внешний проигрыватель; путь к файлу добавляется последним аргументом.
type Command struct {
	Path    string
	Args    []string
	RunMode Mode
}

func (c Command) Name() string { return filepath.Base(c.Path) }
func (c Command) Mode() Mode   { return c.RunMode }

func (c Command) Play(ctx context.Context, path string) error {
	args := append(slices.Clone(c.Args), path)
	cmd := exec.CommandContext(ctx, c.Path, args...)

	// Launch: вывод не перехватываем, иначе Wait ждёт закрытия пайпов
	// запущенным приложением. Stdout процесса занят протоколом, в него не пишем.
	if c.RunMode == Launch {
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("%s: %w", c.Name(), err)
		}
		return nil
	}

	out, err := cmd.CombinedOutput()
	if err != nil {
		if msg := bytes.TrimSpace(out); len(msg) > 0 {
			return fmt.Errorf("%s: %w: %s", c.Name(), err, msg)
		}
		return fmt.Errorf("%s: %w", c.Name(), err)
	}
	return nil
}

package audiofile

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Cleaner удаляет забытые аудиофайлы старше TTL: сохранённые на платформах без проигрывателя
// и оставшиеся после аварийного завершения процесса.
type Cleaner struct {
	logger *zap.SugaredLogger
}

func NewCleaner(logger *zap.SugaredLogger) *Cleaner { return &Cleaner{logger: logger} }

// Clean удаляет файлы по шаблону Pattern старше ttl из dir (пусто — системный temp).
// Возвращает число удалённых файлов.
func (c *Cleaner) Clean(dir string, ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	if dir == "" {
		dir = os.TempDir()
	}

	matches, err := filepath.Glob(filepath.Join(dir, Pattern))
	if err != nil {
		c.logger.Warnw("Не удалось просмотреть каталог аудиофайлов", "dir", dir, "error", err)
		return 0
	}

	deadline := time.Now().Add(-ttl)
	removed := 0
	for _, path := range matches {
		fi, statErr := os.Stat(path)
		if statErr != nil {
			if !errors.Is(statErr, os.ErrNotExist) {
				c.logger.Warnw("Не удалось получить информацию о файле при очистке", "path", path, "error", statErr)
			}
			continue
		}
		if fi.IsDir() || !fi.ModTime().Before(deadline) {
			continue
		}
		if err := os.Remove(path); err != nil {
			c.logger.Warnw("Не удалось удалить старый аудиофайл", "path", path, "error", err)
			continue
		}
		removed++
	}
	if removed > 0 {
		c.logger.Infow("Очистка старых аудиофайлов выполнена", "dir", dir, "removed", removed, "before", deadline.Format(time.RFC3339))
	}
	return removed
}

package audiofile

import (
	"fmt"
	"os"
)

// Pattern — шаблон имён временных аудиофайлов; по нему же работает Cleaner.
const Pattern = "announce-*.mp3"

// File — временный аудиофайл одного вызова.
type File struct {
	path string
}

// Write создаёт уникальный файл в dir (пусто — системный temp) и записывает в него data.
// Уникальность имён обеспечивает os.CreateTemp.
func Write(dir string, data []byte) (*File, error) {
	f, err := os.CreateTemp(dir, Pattern)
	if err != nil {
		return nil, fmt.Errorf("create temp audio: %w", err)
	}
	path := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("write temp audio: %w", err)
	}
	// Закрываем до воспроизведения: на Windows открытый файл не отдать другому процессу
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("close temp audio: %w", err)
	}
	return &File{path: path}, nil
}

func (f *File) Path() string { return f.path }

// Remove удаляет файл. Отсутствие файла ошибкой не считается.
func (f *File) Remove() error {
	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

package player

import (
	"context"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

// speakerSlot сериализует доступ к глобальному speaker: speaker.Init пересоздаёт микшер,
// и поток параллельного вызова вместе с его Callback теряется.
var speakerSlot = make(chan struct{}, 1)

func acquireSpeaker(ctx context.Context) (release func(), err error) {
	select {
	case speakerSlot <- struct{}{}:
		return func() { <-speakerSlot }, nil
	case <-ctx.Done():
		return nil, context.Cause(ctx)
	}
}

// Beep декодирует MP3 внутри процесса и играет через системный звуковой вывод до конца.
// Одновременно играет только один вызов, остальные ждут своей очереди или отмены ctx.
type Beep struct{ volumeDB float64 }

// NewBeep создаёт плеер с громкостью в dB (0 — без изменений, отрицательные — тише).
func NewBeep(db float64) *Beep { return &Beep{volumeDB: db} }

func (b *Beep) Name() string { return "beep" }
func (b *Beep) Mode() Mode   { return Blocking }

func (b *Beep) Play(ctx context.Context, path string) error {
	release, err := acquireSpeaker(ctx)
	if err != nil {
		return err
	}
	defer release()

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	// mp3.Decode забирает владение файлом: streamer.Close закрывает и его
	streamer, format, err := mp3.Decode(f)
	if err != nil {
		_ = f.Close()
		return err
	}
	defer streamer.Close()

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		return err
	}
	vol := &effects.Volume{
		Streamer: streamer,
		Base:     2,
		Volume:   b.volumeDB,
		Silent:   false,
	}
	done := make(chan struct{})
	speaker.Play(beep.Seq(vol, beep.Callback(func() { close(done) })))

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		speaker.Clear()
		return context.Cause(ctx)
	}
}

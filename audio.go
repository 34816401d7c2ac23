package emul8

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/go-audio/audio"
	"github.com/go-audio/generator"
	"github.com/gordonklaus/portaudio"
	"golang.org/x/sync/errgroup"
)

const (
	bufferSize int = 512
	sampleRate int = 44100
)

var (
	format = audio.FormatMono44100
)

// Speaker sounds the buzzer. Start and Stop may be called repeatedly; only
// state changes have an effect.
type Speaker interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewSpeaker returns the backend called name: "portaudio", "oto" or "none".
func NewSpeaker(name string, tone, volume float64) (Speaker, error) {
	switch name {
	case "portaudio":
		return &Beep{tone: tone, volume: volume}, nil
	case "oto":
		return NewOtoTone(tone, volume)
	case "none":
		return Silent{}, nil
	}
	return nil, fmt.Errorf("%w '%v'", ErrAudioBackend, name)
}

// Silent is a Speaker that makes no sound.
type Silent struct{}

func (Silent) Start(context.Context) error { return nil }
func (Silent) Stop() error                 { return nil }

// Beep plays a sine tone through the default PortAudio output device.
type Beep struct {
	tone    float64
	volume  float64
	g       errgroup.Group
	beeping atomic.Bool
}

func (b *Beep) Start(ctx context.Context) error {
	if b.beeping.Swap(true) {
		return nil
	}

	err := portaudio.Initialize()
	if err != nil {
		b.beeping.Store(false)
		return err
	}

	buffer := &audio.FloatBuffer{
		Data:   make([]float64, bufferSize),
		Format: format,
	}

	osc := newOsc(b.tone, b.volume)

	b.g.Go(func() error {
		defer func() {
			_ = portaudio.Terminate()
		}()

		out := make([]float32, bufferSize)

		stream, err := portaudio.OpenDefaultStream(0, 1, float64(sampleRate), len(out), &out)
		if err != nil {
			return err
		}
		defer func() {
			_ = stream.Close()
		}()

		if err := stream.Start(); err != nil {
			return err
		}
		defer func() {
			_ = stream.Stop()
		}()

		for b.beeping.Load() && ctx.Err() == nil {
			if err := osc.Fill(buffer); err != nil {
				return err
			}

			f64Tof32(out, buffer.Data)

			if err := stream.Write(); err != nil {
				return err
			}
		}

		return nil
	})

	return nil
}

func (b *Beep) Stop() error {
	if !b.beeping.Swap(false) {
		return nil
	}
	return b.g.Wait()
}

func newOsc(tone, volume float64) *generator.Osc {
	osc := generator.NewOsc(generator.WaveSine, tone, sampleRate)
	osc.Amplitude = volume
	return osc
}

func f64Tof32(dst []float32, src []float64) {
	for i := range src {
		dst[i] = float32(src[i])
	}
}

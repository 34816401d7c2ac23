package emul8

import (
	"context"
	"encoding/binary"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/go-audio/audio"
	"github.com/go-audio/generator"
)

// OtoTone plays a sine tone through an oto context. The player is paused
// rather than closed between beeps.
type OtoTone struct {
	ctx    *oto.Context
	player *oto.Player

	osc    *generator.Osc
	buffer *audio.FloatBuffer

	mu      sync.Mutex
	playing bool
}

// NewOtoTone opens the oto context. Only one context may exist per process.
func NewOtoTone(tone, volume float64) (*OtoTone, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	t := &OtoTone{
		ctx: ctx,
		osc: newOsc(tone, volume),
		buffer: &audio.FloatBuffer{
			Data:   make([]float64, bufferSize),
			Format: format,
		},
	}
	t.player = ctx.NewPlayer(t)

	return t, nil
}

// Read feeds the player with little endian float32 samples.
func (t *OtoTone) Read(p []byte) (int, error) {
	n := len(p) / 4
	if cap(t.buffer.Data) < n {
		t.buffer.Data = make([]float64, n)
	}
	t.buffer.Data = t.buffer.Data[:n]

	if err := t.osc.Fill(t.buffer); err != nil {
		return 0, err
	}

	for i, v := range t.buffer.Data {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(float32(v)))
	}

	return n * 4, nil
}

func (t *OtoTone) Start(context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.playing {
		t.player.Play()
		t.playing = true
	}
	return t.player.Err()
}

func (t *OtoTone) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.playing {
		t.player.Pause()
		t.playing = false
	}
	return t.player.Err()
}

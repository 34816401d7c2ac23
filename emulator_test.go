package emul8

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emul8/chip8"
	"emul8/config"
)

type fakeSpeaker struct {
	mu     sync.Mutex
	starts int
	stops  int
	err    error
}

func (s *fakeSpeaker) Start(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.starts++
	return s.err
}

func (s *fakeSpeaker) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stops++
	return s.err
}

func newTestEmulator(t *testing.T, speaker Speaker) *Emulator {
	t.Helper()
	conf := config.Default()
	conf.Audio = "none"
	e, err := NewWithSpeaker(conf, speaker)
	require.NoError(t, err)
	return e
}

func TestNewSpeaker(t *testing.T) {
	s, err := NewSpeaker("none", 440, 1)
	require.NoError(t, err)
	assert.Equal(t, Silent{}, s)

	s, err = NewSpeaker("portaudio", 440, 0.5)
	require.NoError(t, err)
	assert.IsType(t, &Beep{}, s)

	_, err = NewSpeaker("alsa", 440, 1)
	assert.ErrorIs(t, err, ErrAudioBackend)
}

func TestNewInvalidConfig(t *testing.T) {
	conf := config.Default()
	conf.Scale = 0
	_, err := NewWithSpeaker(conf, Silent{})
	assert.ErrorIs(t, err, config.ErrScale)
}

func TestNewAllowFlagOperand(t *testing.T) {
	conf := config.Default()
	conf.AllowFlagOperand = true
	e, err := NewWithSpeaker(conf, Silent{})
	require.NoError(t, err)

	require.NoError(t, e.Load([]byte{0x6F, 0x07}))
	_, err = e.Machine().Processor().Step()
	require.NoError(t, err)
	assert.Equal(t, byte(0x07), e.Machine().Processor().Registers().V(0xF))
}

func TestNewRejectsConfigBeforeAudio(t *testing.T) {
	conf := config.Default()
	conf.Audio = "alsa"
	_, err := New(conf)
	assert.ErrorIs(t, err, config.ErrAudio)
	assert.NotErrorIs(t, err, ErrAudioBackend)

	conf = config.Default()
	conf.Audio = "none"
	e, err := New(conf)
	require.NoError(t, err)
	assert.Equal(t, Silent{}, e.speaker)
}

func TestRunUnknownFrontend(t *testing.T) {
	e := newTestEmulator(t, Silent{})
	e.conf.Frontend = "web"
	assert.ErrorIs(t, e.Run(context.Background()), ErrFrontend)
}

func TestLoad(t *testing.T) {
	e := newTestEmulator(t, Silent{})
	mem := e.Machine().Processor().Memory()

	require.NoError(t, e.Load([]byte{0x12, 0x34}))
	b, err := mem.Read(chip8.ProgramStartAddress)
	require.NoError(t, err)
	assert.Equal(t, byte(0x12), b)

	require.NoError(t, e.Load([]byte("0200 A2\n0201 F0\n0300 07\n")))
	b, err = mem.Read(chip8.ProgramStartAddress)
	require.NoError(t, err)
	assert.Equal(t, byte(0xA2), b)
	b, err = mem.Read(0x300)
	require.NoError(t, err)
	assert.Equal(t, byte(0x07), b)

	err = e.Load([]byte("0100 A2\n"))
	assert.ErrorIs(t, err, chip8.ErrAddressTooLow)

	err = e.Load([]byte("0200 1FF\n"))
	var syntax *chip8.SyntaxError
	require.ErrorAs(t, err, &syntax)
	assert.Equal(t, 1, syntax.LineNo)
	assert.ErrorIs(t, err, chip8.ErrInvalidData)
}

func TestPress(t *testing.T) {
	e := newTestEmulator(t, Silent{})
	keys := e.Machine().Keys()

	assert.True(t, e.press("Q", true))
	assert.True(t, keys.IsKeyDown(0x4))

	assert.True(t, e.press("Q", false))
	assert.False(t, keys.IsKeyDown(0x4))

	assert.False(t, e.press("P", true))
	for k := range uint8(chip8.KeyCount) {
		assert.False(t, keys.IsKeyDown(k))
	}
}

func TestTone(t *testing.T) {
	s := &fakeSpeaker{}
	e := newTestEmulator(t, s)
	tone := e.tone(context.Background())

	tone(true)
	tone(true)
	tone(false)

	assert.Equal(t, 2, s.starts)
	assert.Equal(t, 1, s.stops)
	assert.False(t, e.muted.Load())
}

func TestToneMutedAfterError(t *testing.T) {
	s := &fakeSpeaker{err: errors.New("no device")}
	e := newTestEmulator(t, s)
	tone := e.tone(context.Background())

	tone(true)
	tone(true)
	tone(false)

	assert.Equal(t, 1, s.starts)
	assert.Equal(t, 0, s.stops)
	assert.True(t, e.muted.Load())
}

func TestPaint(t *testing.T) {
	var g chip8.Grid
	g[0][0] = true
	g[31][63] = true

	filled := color.RGBA{R: 0x33, G: 0xFF, B: 0x66, A: 0xFF}
	empty := color.RGBA{A: 0xFF}

	buffer := image.NewRGBA(image.Rect(0, 0, chip8.Width, chip8.Height))
	paint(buffer, &g, filled, empty)

	assert.Equal(t, filled, buffer.RGBAAt(0, 0))
	assert.Equal(t, filled, buffer.RGBAAt(63, 31))
	assert.Equal(t, empty, buffer.RGBAAt(1, 0))
	assert.Equal(t, empty, buffer.RGBAAt(0, 1))
}

func TestHalfBlocks(t *testing.T) {
	var g chip8.Grid
	g[0][0], g[1][0] = true, true
	g[0][1] = true
	g[1][2] = true

	var buf bytes.Buffer
	halfBlocks(&buf, &g)

	lines := strings.Split(buf.String(), "\r\n")
	require.Len(t, lines, chip8.Height/2)
	assert.True(t, strings.HasPrefix(lines[0], "█▀▄ "))
	for _, line := range lines {
		assert.Equal(t, chip8.Width, len([]rune(line)))
	}
	assert.Equal(t, strings.Repeat(" ", chip8.Width), lines[1])
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestTerminalSession(t *testing.T) {
	e := newTestEmulator(t, Silent{})
	require.NoError(t, e.Load([]byte{
		0xF3, 0x0A, // LD V3, K
		0xF3, 0x29, // LD F, V3
		0xD0, 0x05, // DRW V0, V0, 5
		0x12, 0x06, // JP 206
	}))

	in, keys := io.Pipe()
	var out syncBuffer

	done := make(chan error, 1)
	go func() {
		done <- e.terminal(context.Background(), in, &out)
	}()

	assert.Eventually(t, e.Machine().Waiting, time.Second, time.Millisecond)

	_, err := keys.Write([]byte("q"))
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "█")
	}, 2*time.Second, 10*time.Millisecond)

	_, err = keys.Write([]byte{keyEsc})
	require.NoError(t, err)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("session did not end")
	}

	assert.Equal(t, byte(0x4), e.Machine().Processor().Registers().V(3))
	assert.True(t, strings.HasSuffix(out.String(), "\x1b[?25h\r\n"))
}

func TestTerminalInputClosed(t *testing.T) {
	e := newTestEmulator(t, Silent{})
	require.NoError(t, e.Load([]byte{0x12, 0x00}))

	done := make(chan error, 1)
	go func() {
		done <- e.terminal(context.Background(), strings.NewReader(""), io.Discard)
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("session did not end")
	}
}

func TestTerminalFault(t *testing.T) {
	e := newTestEmulator(t, Silent{})
	require.NoError(t, e.Load([]byte{0xFF, 0xFF}))

	in, _ := io.Pipe()
	err := e.terminal(context.Background(), in, io.Discard)
	assert.ErrorIs(t, err, chip8.ErrUnrecognizedOpcode)
}

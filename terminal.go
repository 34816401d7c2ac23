/*
 * Copyright 2026 Joshua Jones <joshua.jones.software@gmail.com>
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      www.apache.org
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package emul8

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"emul8/chip8"
)

const (
	keyCtrlC byte = 0x03
	keyEsc   byte = 0x1B

	// Terminals report no key releases; a key stays down this long after
	// its last repeat.
	keyHold = 150 * time.Millisecond
)

func (e *Emulator) runTerminal(ctx context.Context) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return ErrNotTerminal
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	defer func() {
		_ = term.Restore(fd, state)
	}()

	return e.terminal(ctx, os.Stdin, os.Stdout)
}

// terminal runs the machine reading keys from in and drawing to out. It
// returns when Ctrl-C or Esc is read, in ends, ctx is cancelled or the
// program faults. The reader goroutine is left blocked in Read if in never
// returns.
func (e *Emulator) terminal(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fb := &frameBuffer{dirty: true}

	go e.readKeys(in, cancel)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return e.machine.Run(ctx, chip8.Hooks{
			Frame: fb.set,
			Tone:  e.tone(ctx),
		})
	})

	g.Go(func() error {
		return e.render(ctx, fb, out)
	})

	return g.Wait()
}

func (e *Emulator) readKeys(in io.Reader, quit context.CancelFunc) {
	defer quit()

	var releases [chip8.KeyCount]*time.Timer

	buf := make([]byte, 32)
	for {
		n, err := in.Read(buf)
		for _, b := range buf[:n] {
			if b == keyCtrlC || b == keyEsc {
				return
			}

			hex, ok := e.keys[strings.ToUpper(string(rune(b)))]
			if !ok {
				continue
			}

			e.machine.Keys().SetKey(hex, true)

			if t := releases[hex]; t != nil {
				t.Reset(keyHold)
				continue
			}
			releases[hex] = time.AfterFunc(keyHold, func() {
				e.machine.Keys().SetKey(hex, false)
			})
		}
		if err != nil {
			return
		}
	}
}

func (e *Emulator) render(ctx context.Context, fb *frameBuffer, out io.Writer) error {
	var buf bytes.Buffer

	fmt.Fprint(out, "\x1b[2J\x1b[?25l")
	defer fmt.Fprint(out, "\x1b[0m\x1b[?25h\r\n")

	ticker := time.NewTicker(chip8.TimerRate)
	defer ticker.Stop()

	for {
		if g, ok := fb.take(); ok {
			buf.Reset()
			buf.WriteString("\x1b[H")
			writeColors(&buf, e.filled, e.empty)
			halfBlocks(&buf, &g)
			if _, err := out.Write(buf.Bytes()); err != nil {
				return err
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// frameBuffer hands the latest frame from the CPU goroutine to the
// render loop.
type frameBuffer struct {
	mu    sync.Mutex
	grid  chip8.Grid
	dirty bool
}

func (fb *frameBuffer) set(g chip8.Grid) {
	fb.mu.Lock()
	fb.grid = g
	fb.dirty = true
	fb.mu.Unlock()
}

func (fb *frameBuffer) take() (chip8.Grid, bool) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	dirty := fb.dirty
	fb.dirty = false
	return fb.grid, dirty
}

func writeColors(buf *bytes.Buffer, fg, bg color.RGBA) {
	fmt.Fprintf(buf, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm", fg.R, fg.G, fg.B, bg.R, bg.G, bg.B)
}

// halfBlocks draws two grid rows per line of text.
func halfBlocks(buf *bytes.Buffer, g *chip8.Grid) {
	for y := 0; y < chip8.Height; y += 2 {
		if y > 0 {
			buf.WriteString("\r\n")
		}
		for x := range chip8.Width {
			top, bottom := g[y][x], g[y+1][x]
			switch {
			case top && bottom:
				buf.WriteRune('█')
			case top:
				buf.WriteRune('▀')
			case bottom:
				buf.WriteRune('▄')
			default:
				buf.WriteByte(' ')
			}
		}
	}
}

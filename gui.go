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
	"context"
	"image"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"

	"emul8/chip8"
)

func (e *Emulator) onKeyDown(k *fyne.KeyEvent) {
	e.press(string(k.Name), true)
}

func (e *Emulator) onKeyUp(k *fyne.KeyEvent) {
	e.press(string(k.Name), false)
}

func (e *Emulator) runGUI(ctx context.Context) error {
	a := app.New()
	w := a.NewWindow(f("Chip-8 Emulator"))
	w.SetMaster()

	// Create a back-buffer for the pixel data
	buffer := image.NewRGBA(image.Rect(0, 0, chip8.Width, chip8.Height))
	paint(buffer, &chip8.Grid{}, e.filled, e.empty)

	img := canvas.NewImageFromImage(buffer)
	img.FillMode = canvas.ImageFillStretch  // Scales the grid to window size
	img.ScaleMode = canvas.ImageScalePixels // Maintains "pixelated" retro look

	canv, ok := w.Canvas().(desktop.Canvas) // Extension that exposes OnKeyUp event
	if !ok {
		return ErrNoKeyboard
	}
	canv.SetOnKeyDown(e.onKeyDown)
	canv.SetOnKeyUp(e.onKeyUp)

	scale := float32(e.conf.Scale)
	size := fyne.NewSize(float32(chip8.Width)*scale, float32(chip8.Height)*scale)

	w.SetContent(container.New(layout.NewGridWrapLayout(size), img))
	w.Resize(size)
	w.SetFixedSize(true)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg     sync.WaitGroup
		runErr error
	)

	wg.Go(func() {
		runErr = e.machine.Run(ctx, chip8.Hooks{
			Frame: func(g chip8.Grid) {
				fyne.Do(func() {
					paint(buffer, &g, e.filled, e.empty)
					img.Refresh()
				})
			},
			Tone: e.tone(ctx),
		})

		// Closing the master window ends ShowAndRun.
		fyne.Do(w.Close)
	})

	w.ShowAndRun()
	cancel()
	wg.Wait()

	return runErr
}

// paint copies g into the back-buffer, one image pixel per grid cell.
func paint(buffer *image.RGBA, g *chip8.Grid, filled, empty color.RGBA) {
	for y := range chip8.Height {
		for x := range chip8.Width {
			c := empty
			if g[y][x] {
				c = filled
			}
			buffer.SetRGBA(x, y, c)
		}
	}
}

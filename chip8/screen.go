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

package chip8

const (
	Width  int = 64
	Height int = 32
)

// Grid is a snapshot of the screen, indexed [y][x].
type Grid [Height][Width]bool

// Screen is the monochrome pixel grid. Origin is the top-left corner and
// both axes wrap.
type Screen struct {
	grid Grid
}

func (s *Screen) Clear() {
	s.grid = Grid{}
}

func (s *Screen) Pixel(x, y int) bool {
	return s.grid[mod(y, Height)][mod(x, Width)]
}

// Grid returns a copy of the pixels.
func (s *Screen) Grid() Grid {
	return s.grid
}

// Draw XORs sprite rows onto the grid at (x, y), most significant bit
// leftmost, and reports whether any lit pixel was turned off.
func (s *Screen) Draw(x, y int, sprite []byte) bool {
	var collision bool

	for row, bits := range sprite {
		py := mod(y+row, Height)

		for col := range 8 {
			if bits&(0x80>>col) == 0 {
				continue
			}

			px := mod(x+col, Width)

			if s.grid[py][px] {
				// Pixel was already on. This indicates a graphical object collision.
				collision = true
			}
			s.grid[py][px] = !s.grid[py][px]
		}
	}
	return collision
}

func mod(v, m int) int {
	v %= m
	if v < 0 {
		v += m
	}
	return v
}

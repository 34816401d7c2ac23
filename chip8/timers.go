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

import (
	"context"
	"sync/atomic"
	"time"
)

const TimerRate time.Duration = time.Second / 60 // 60hz

// Timers holds the delay and sound counters. Each counter is an independent
// atomic, so the CPU and the timer loop never take a lock.
type Timers struct {
	delay atomic.Uint32
	sound atomic.Uint32
}

func (t *Timers) Delay() uint8 {
	return uint8(t.delay.Load())
}

func (t *Timers) SetDelay(v uint8) {
	t.delay.Store(uint32(v))
}

func (t *Timers) Sound() uint8 {
	return uint8(t.sound.Load())
}

func (t *Timers) SetSound(v uint8) {
	t.sound.Store(uint32(v))
}

// SoundOn reports whether the tone should be playing.
func (t *Timers) SoundOn() bool {
	return t.sound.Load() > 0
}

// Reset stops both counters.
func (t *Timers) Reset() {
	t.delay.Store(0)
	t.sound.Store(0)
}

// Tick decrements each nonzero counter by one.
func (t *Timers) Tick() {
	decrement(&t.delay)
	decrement(&t.sound)
}

func decrement(c *atomic.Uint32) {
	for {
		v := c.Load()
		if v == 0 || c.CompareAndSwap(v, v-1) {
			return
		}
	}
}

// Run ticks the counters at TimerRate until ctx is done. After every tick
// observe, if set, receives whether the sound timer is still running.
func (t *Timers) Run(ctx context.Context, observe func(soundOn bool)) error {
	ticker := time.NewTicker(TimerRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			t.Tick()
			if observe != nil {
				observe(t.SoundOn())
			}
		}
	}
}

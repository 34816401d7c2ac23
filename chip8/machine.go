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

	"golang.org/x/sync/errgroup"
)

// Hooks connect a running Machine to the host. Both are optional.
type Hooks struct {
	// Frame receives the screen after every instruction that changed it.
	// It is called from the CPU goroutine.
	Frame func(Grid)

	// Tone is called at every timer tick with whether the sound timer is
	// running, and once with false when the machine stops.
	Tone func(on bool)
}

// Machine couples a Processor with its timers and key state and runs the
// CPU loop and the timer loop concurrently.
type Machine struct {
	cpu     *Processor
	timers  *Timers
	keys    *KeyState
	clock   time.Duration
	waiting atomic.Bool
}

// NewMachine builds a Machine. Options apply to the Processor; the timers
// and key state are always the Machine's own.
func NewMachine(opts ...Option) *Machine {
	m := &Machine{
		timers: &Timers{},
		keys:   &KeyState{},
		clock:  ClockRate,
	}
	opts = append(opts, WithTimers(m.timers), WithKeypad(m.keys))
	m.cpu = NewProcessor(opts...)
	return m
}

func (m *Machine) Processor() *Processor {
	return m.cpu
}

// Keys is where frontends report key events.
func (m *Machine) Keys() *KeyState {
	return m.keys
}

func (m *Machine) Timers() *Timers {
	return m.timers
}

// Waiting reports whether the running program is blocked on a key press.
func (m *Machine) Waiting() bool {
	return m.waiting.Load()
}

// Run executes the loaded program until ctx is cancelled or an instruction
// fails. Cancellation is a normal stop and returns nil. Both loops have
// exited when Run returns.
func (m *Machine) Run(ctx context.Context, hooks Hooks) error {
	tone := hooks.Tone
	if tone == nil {
		tone = func(bool) {}
	}
	defer tone(false)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return m.timers.Run(ctx, tone)
	})

	g.Go(func() error {
		return m.loop(ctx, hooks.Frame)
	})

	return g.Wait()
}

func (m *Machine) loop(ctx context.Context, frame func(Grid)) error {
	cpuTicker := time.NewTicker(m.clock)
	defer cpuTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-cpuTicker.C:
		}

		info, err := m.cpu.Step()
		if err != nil {
			return err
		}
		m.waiting.Store(info&Waiting != 0)

		if info&Redraw != 0 && frame != nil {
			frame(m.cpu.Screen().Grid())
		}
	}
}

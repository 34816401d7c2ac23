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
	"errors"
	"fmt"
	"image/color"
	"log"
	"sync/atomic"

	"emul8/chip8"
	"emul8/config"
	"emul8/translate"
)

var f = translate.From

var (
	ErrAudioBackend = errors.New(f("unknown audio backend"))
	ErrFrontend     = errors.New(f("unknown frontend"))
	ErrNoKeyboard   = errors.New(f("emulator cannot be run without a keyboard"))
	ErrNotTerminal  = errors.New(f("standard input is not a terminal"))
)

// Emulator runs a chip8.Machine behind the frontend and speaker named in
// its configuration.
type Emulator struct {
	conf    config.Config
	machine *chip8.Machine
	speaker Speaker
	keys    map[string]uint8
	filled  color.RGBA
	empty   color.RGBA
	muted   atomic.Bool
}

// New validates conf and opens its audio backend.
func New(conf config.Config) (*Emulator, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	speaker, err := NewSpeaker(conf.Audio, conf.Tone, conf.Volume)
	if err != nil {
		return nil, err
	}
	return newEmulator(conf, speaker)
}

// NewWithSpeaker is New with the given speaker in place of the configured
// audio backend.
func NewWithSpeaker(conf config.Config, speaker Speaker) (*Emulator, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return newEmulator(conf, speaker)
}

// newEmulator expects a validated conf.
func newEmulator(conf config.Config, speaker Speaker) (*Emulator, error) {
	keys, err := conf.Keymap()
	if err != nil {
		return nil, err
	}

	filled, err := config.ParseColor(conf.Colors.Filled)
	if err != nil {
		return nil, err
	}

	empty, err := config.ParseColor(conf.Colors.Empty)
	if err != nil {
		return nil, err
	}

	var opts []chip8.Option
	if conf.AllowFlagOperand {
		opts = append(opts, chip8.AllowFlagOperand())
	}

	return &Emulator{
		conf:    conf,
		machine: chip8.NewMachine(opts...),
		speaker: speaker,
		keys:    keys,
		filled:  filled,
		empty:   empty,
	}, nil
}

func (e *Emulator) Machine() *chip8.Machine {
	return e.machine
}

// Load resets the machine and loads b, either a raw program image or a
// text listing.
func (e *Emulator) Load(b []byte) error {
	cpu := e.machine.Processor()

	if !chip8.IsListing(b) {
		return cpu.Load(b)
	}

	l, err := chip8.ParseListing(bytes.NewReader(b))
	if err != nil {
		return err
	}
	return cpu.LoadListing(l)
}

// Run shows the configured frontend and blocks until the user quits, ctx
// is cancelled or the program faults.
func (e *Emulator) Run(ctx context.Context) error {
	switch e.conf.Frontend {
	case "gui":
		return e.runGUI(ctx)
	case "term":
		return e.runTerminal(ctx)
	}
	return fmt.Errorf("%w '%v'", ErrFrontend, e.conf.Frontend)
}

// press reports a key event by physical key name. Unbound names are
// ignored.
func (e *Emulator) press(name string, down bool) bool {
	hex, ok := e.keys[name]
	if ok {
		e.machine.Keys().SetKey(hex, down)
	}
	return ok
}

// tone drives the speaker from the sound timer. The first audio failure
// is logged and silences the rest of the session.
func (e *Emulator) tone(ctx context.Context) func(bool) {
	return func(on bool) {
		if e.muted.Load() {
			return
		}

		var err error
		if on {
			err = e.speaker.Start(ctx)
		} else {
			err = e.speaker.Stop()
		}

		if err != nil && !e.muted.Swap(true) {
			log.Print(f("audio disabled: %v", err))
		}
	}
}

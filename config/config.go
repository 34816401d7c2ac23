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

// Package config holds the emulator settings and reads them from TOML.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"emul8/translate"
)

var f = translate.From

var (
	ErrUnknownKey   = errors.New(f("unknown setting"))
	ErrFrontend     = errors.New(f("unknown frontend"))
	ErrAudio        = errors.New(f("unknown audio backend"))
	ErrScale        = errors.New(f("scale out of range"))
	ErrTone         = errors.New(f("tone out of range"))
	ErrVolume       = errors.New(f("volume out of range"))
	ErrColor        = errors.New(f("invalid color"))
	ErrKeypadDigit  = errors.New(f("invalid keypad digit"))
	ErrDuplicateKey = errors.New(f("key bound twice"))
	ErrEmptyKeyName = errors.New(f("empty key name"))
)

var (
	Frontends = []string{"gui", "term"}
	Backends  = []string{"portaudio", "oto", "none"}
)

const (
	MinScale = 1
	MaxScale = 64
	MaxTone  = 20000.0
)

type Colors struct {
	Filled string `toml:"filled"`
	Empty  string `toml:"empty"`
}

type Config struct {
	Frontend         string            `toml:"frontend"`
	Scale            int               `toml:"scale"`
	Audio            string            `toml:"audio"`
	Tone             float64           `toml:"tone"`
	Volume           float64           `toml:"volume"`
	AllowFlagOperand bool              `toml:"allow_flag_operand"`
	Colors           Colors            `toml:"colors"`
	Keys             map[string]string `toml:"keys"`
}

// Default returns the built-in settings: the usual 1234/QWER/ASDF/ZXCV
// keypad layout, white on black, a 440 Hz tone.
func Default() Config {
	return Config{
		Frontend: "gui",
		Scale:    10,
		Audio:    "portaudio",
		Tone:     440.0,
		Volume:   1,
		Colors: Colors{
			Filled: "#FFFFFF",
			Empty:  "#000000",
		},
		Keys: map[string]string{
			"1": "1", "2": "2", "3": "3", "C": "4",
			"4": "Q", "5": "W", "6": "E", "D": "R",
			"7": "A", "8": "S", "9": "D", "E": "F",
			"A": "Z", "0": "X", "B": "C", "F": "V",
		},
	}
}

// Load reads path over the defaults. A keypad binding in the file replaces
// the default binding of its digit, and a physical key it takes is removed
// from whichever digit held it, leaving that digit unbound. Two digits bound
// to one key within the file is an error.
func Load(path string) (Config, error) {
	c := Default()
	defaults := c.Keys
	c.Keys = nil

	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return c, err
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return c, fmt.Errorf("%v: %w: %v", path, ErrUnknownKey, undecoded[0])
	}

	file := Config{Keys: c.Keys}
	if _, err := file.Keymap(); err != nil {
		return c, err
	}

	c.Keys = defaults
	for digit, name := range file.Keys {
		c.Bind(digit, name)
	}

	return c, c.Validate()
}

// Bind maps digit to the physical key name, unbinding any other digit that
// used name.
func (c *Config) Bind(digit, name string) {
	if c.Keys == nil {
		c.Keys = make(map[string]string)
	}

	digit = strings.ToUpper(digit)

	for other, bound := range c.Keys {
		if strings.EqualFold(other, digit) || strings.EqualFold(strings.TrimSpace(bound), strings.TrimSpace(name)) {
			delete(c.Keys, other)
		}
	}
	c.Keys[digit] = name
}

func (c *Config) Validate() error {
	if !slices.Contains(Frontends, c.Frontend) {
		return fmt.Errorf("%w '%v'", ErrFrontend, c.Frontend)
	}

	if !slices.Contains(Backends, c.Audio) {
		return fmt.Errorf("%w '%v'", ErrAudio, c.Audio)
	}

	if c.Scale < MinScale || c.Scale > MaxScale {
		return fmt.Errorf("%w: %d", ErrScale, c.Scale)
	}

	if c.Tone <= 0 || c.Tone > MaxTone {
		return fmt.Errorf("%w: %v", ErrTone, c.Tone)
	}

	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("%w: %v", ErrVolume, c.Volume)
	}

	if _, err := ParseColor(c.Colors.Filled); err != nil {
		return err
	}

	if _, err := ParseColor(c.Colors.Empty); err != nil {
		return err
	}

	_, err := c.Keymap()
	return err
}

// Keymap inverts Keys into physical key name to keypad digit. Names are
// upper case.
func (c *Config) Keymap() (map[string]uint8, error) {
	m := make(map[string]uint8, len(c.Keys))

	for digit, name := range c.Keys {
		d, err := strconv.ParseUint(digit, 16, 8)
		if err != nil || len(digit) != 1 {
			return nil, fmt.Errorf("%w '%v'", ErrKeypadDigit, digit)
		}

		name = strings.ToUpper(strings.TrimSpace(name))
		if name == "" {
			return nil, fmt.Errorf("%w: %v", ErrEmptyKeyName, digit)
		}

		if prev, ok := m[name]; ok {
			return nil, fmt.Errorf("%w: %v (%X, %X)", ErrDuplicateKey, name, prev, d)
		}
		m[name] = uint8(d)
	}

	return m, nil
}

// ParseColor reads a "#RRGGBB" string.
func ParseColor(s string) (color.RGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("%w '%v'", ErrColor, s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w '%v'", ErrColor, s)
	}

	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}

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
	"math/rand/v2"
	"time"
)

const ClockRate time.Duration = time.Second / 700 // 700hz

// Info flags returned by Step.
type Info uint8

const (
	Redraw Info = 1 << iota
	Waiting
)

// State is the execution state of the Processor.
type State uint8

const (
	Running     State = iota
	AwaitingKey       // blocked on WaitKey until a key press arrives
)

func (s State) String() string {
	if s == AwaitingKey {
		return "awaiting key"
	}
	return "running"
}

type Option func(*Processor)

// WithTimers shares t with the processor instead of a private pair.
func WithTimers(t *Timers) Option {
	return func(p *Processor) { p.timers = t }
}

func WithKeypad(k Keypad) Option {
	return func(p *Processor) { p.keys = k }
}

// WithSeed makes RandomByte deterministic.
func WithSeed(seed uint64) Option {
	return func(p *Processor) { p.rng = rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)) }
}

// AllowFlagOperand lets programs name VF as an ordinary operand.
func AllowFlagOperand() Option {
	return func(p *Processor) { p.allowFlag = true }
}

// Processor is the CHIP-8 CPU together with the state it exclusively owns.
// Only the timers and the keypad are shared with other goroutines.
type Processor struct {
	memory    Memory
	reg       Registers
	screen    Screen
	timers    *Timers
	keys      Keypad
	rng       *rand.Rand
	state     State
	waitX     uint8
	allowFlag bool
}

func NewProcessor(opts ...Option) *Processor {
	p := &Processor{}
	for _, opt := range opts {
		opt(p)
	}

	if p.timers == nil {
		p.timers = &Timers{}
	}
	if p.keys == nil {
		p.keys = &KeyState{}
	}
	if p.rng == nil {
		p.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	p.Reset()
	return p
}

// Reset returns the machine to power-on state: font installed, registers
// zeroed, PC at 0x200, screen and timers cleared.
func (p *Processor) Reset() {
	p.memory.Reset()
	p.reg.Reset()
	p.screen.Clear()
	p.timers.Reset()
	p.state = Running
	p.waitX = 0
}

// Load resets the processor and installs a raw program image.
func (p *Processor) Load(b []byte) error {
	p.Reset()
	return p.memory.Load(b)
}

// LoadListing resets the processor and installs a text listing.
func (p *Processor) LoadListing(l Listing) error {
	p.Reset()
	return p.memory.LoadListing(l)
}

func (p *Processor) Memory() *Memory {
	return &p.memory
}

func (p *Processor) Registers() *Registers {
	return &p.reg
}

func (p *Processor) Screen() *Screen {
	return &p.screen
}

func (p *Processor) Timers() *Timers {
	return p.timers
}

func (p *Processor) State() State {
	return p.state
}

// Step runs one cycle: fetch the word at PC, advance PC, decode and apply.
// While awaiting a key it only polls the keypad. Every error is fatal and
// is returned as a *StepError.
func (p *Processor) Step() (Info, error) {
	var info Info

	if p.state == AwaitingKey {
		key, ok := p.keys.PressedKey()
		if !ok {
			return Waiting, nil
		}
		p.reg.SetV(p.waitX, key)
		p.state = Running
		return 0, nil
	}

	pc := p.reg.PC()

	opcode, err := p.memory.Fetch(pc)
	if err != nil {
		return 0, &StepError{PC: pc, Err: err}
	}

	p.reg.SetPC(pc + 2)

	ins, err := Decode(opcode)
	if err == nil {
		err = p.checkOperands(ins)
	}
	if err == nil {
		err = p.execute(ins, &info)
	}
	if err != nil {
		return 0, &StepError{PC: pc, Opcode: opcode, Err: err}
	}

	return info, nil
}

const (
	usesX uint8 = 1 << iota
	usesY
)

var operands = map[Op]uint8{
	SkipEqualByte:     usesX,
	SkipNotEqualByte:  usesX,
	SkipEqualReg:      usesX | usesY,
	LoadByte:          usesX,
	AddByte:           usesX,
	LoadReg:           usesX | usesY,
	OrReg:             usesX | usesY,
	AndReg:            usesX | usesY,
	XorReg:            usesX | usesY,
	AddReg:            usesX | usesY,
	SubReg:            usesX | usesY,
	ShiftRight:        usesX,
	SubNot:            usesX | usesY,
	ShiftLeft:         usesX,
	SkipNotEqualReg:   usesX | usesY,
	RandomByte:        usesX,
	Draw:              usesX | usesY,
	SkipKeyPressed:    usesX,
	SkipKeyNotPressed: usesX,
	LoadDelay:         usesX,
	WaitKey:           usesX,
	SetDelay:          usesX,
	SetSound:          usesX,
	AddToIndex:        usesX,
	LoadFont:          usesX,
	LoadBCD:           usesX,
}

// checkOperands rejects VF as an explicit operand unless allowed. The
// register counts of StoreRegs and LoadRegs are ranges, not operands.
func (p *Processor) checkOperands(ins Instruction) error {
	if p.allowFlag {
		return nil
	}
	uses := operands[ins.Op]
	if uses&usesX != 0 && ins.X == FlagRegister {
		return ErrReservedRegister
	}
	if uses&usesY != 0 && ins.Y == FlagRegister {
		return ErrReservedRegister
	}
	return nil
}

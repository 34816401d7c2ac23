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
	RegisterCount int    = 16
	StackDepth    int    = 16
	FlagRegister  uint8  = 0xF
	AddressMask   uint16 = 0x0FFF
)

// Registers is the register file: V0-VF, the index register, the program
// counter and the call stack.
type Registers struct {
	v     [RegisterCount]byte
	i     uint16
	pc    uint16
	sp    uint8
	stack [StackDepth]uint16
}

// Reset zeroes every register and points PC at the program start.
func (r *Registers) Reset() {
	*r = Registers{pc: ProgramStartAddress}
}

func (r *Registers) V(x uint8) byte {
	return r.v[x&0xF]
}

func (r *Registers) SetV(x uint8, b byte) {
	r.v[x&0xF] = b
}

// Flag is VF read as a boolean.
func (r *Registers) Flag() bool {
	return r.v[FlagRegister] != 0
}

func (r *Registers) SetFlag(set bool) {
	r.v[FlagRegister] = 0
	if set {
		r.v[FlagRegister] = 1
	}
}

func (r *Registers) Index() uint16 {
	return r.i
}

// SetIndex loads I, keeping the low 12 bits.
func (r *Registers) SetIndex(addr uint16) {
	r.i = addr & AddressMask
}

// AddIndex adds b to I, wrapping at 12 bits.
func (r *Registers) AddIndex(b uint16) {
	r.i = (r.i + b) & AddressMask
}

func (r *Registers) PC() uint16 {
	return r.pc
}

func (r *Registers) SetPC(addr uint16) {
	r.pc = addr
}

// Skip advances PC past the next instruction.
func (r *Registers) Skip() {
	r.pc += 2
}

// StackDepth is the number of return addresses on the stack.
func (r *Registers) StackDepth() int {
	return int(r.sp)
}

func (r *Registers) Push(addr uint16) error {
	if int(r.sp) >= StackDepth {
		return ErrStackOverflow
	}
	r.stack[r.sp] = addr
	r.sp++
	return nil
}

func (r *Registers) Pop() (uint16, error) {
	if r.sp == 0 {
		return 0, ErrStackUnderflow
	}
	r.sp--
	return r.stack[r.sp], nil
}

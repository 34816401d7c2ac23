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
	MemorySize          int    = 4096
	FontStartAddress    uint16 = 0x000
	ProgramStartAddress uint16 = 0x200
	GlyphSize           uint16 = 5

	// MaxProgramSize is the room left for a program image above 0x200.
	MaxProgramSize = MemorySize - int(ProgramStartAddress)
)

var fontSet = [...]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the flat byte addressable store of the machine. The zero value
// has no font; use NewMemory or Reset.
type Memory struct {
	data [MemorySize]byte
}

func NewMemory() *Memory {
	m := &Memory{}
	m.Reset()
	return m
}

// Reset zeroes memory and reinstalls the font glyphs.
func (m *Memory) Reset() {
	m.data = [MemorySize]byte{}
	copy(m.data[FontStartAddress:], fontSet[:])
}

// FontAddress is the address of the glyph for a hex digit.
func FontAddress(digit uint8) uint16 {
	return FontStartAddress + uint16(digit)*GlyphSize
}

func checkRange(addr uint16, n int) error {
	if int(addr)+n > MemorySize {
		last := int(addr) + n - 1
		if int(addr) >= MemorySize {
			last = int(addr)
		}
		return &AddressError{Addr: last}
	}
	return nil
}

func (m *Memory) Read(addr uint16) (byte, error) {
	if err := checkRange(addr, 1); err != nil {
		return 0, err
	}
	return m.data[addr], nil
}

func (m *Memory) Write(addr uint16, b byte) error {
	if err := checkRange(addr, 1); err != nil {
		return err
	}
	m.data[addr] = b
	return nil
}

// Slice copies n bytes starting at addr.
func (m *Memory) Slice(addr uint16, n int) ([]byte, error) {
	if err := checkRange(addr, n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, m.data[addr:])
	return out, nil
}

// Fetch reads the big endian instruction word at addr.
func (m *Memory) Fetch(addr uint16) (Opcode, error) {
	if err := checkRange(addr, 2); err != nil {
		return 0, err
	}

	high := uint16(m.data[addr])  // high-order bits of opcode
	low := uint16(m.data[addr+1]) // low-order bits of opcode
	return Opcode((high << 8) | low), nil
}

// Load copies a program image to ProgramStartAddress. Nothing is written
// when the image does not fit.
func (m *Memory) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return ErrProgramTooLarge
	}
	copy(m.data[ProgramStartAddress:], program)
	return nil
}

// LoadListing writes every entry of a parsed listing.
func (m *Memory) LoadListing(l Listing) error {
	for _, e := range l {
		if e.Address < ProgramStartAddress {
			return ErrAddressTooLow
		}
		if err := m.Write(e.Address, e.Data); err != nil {
			return err
		}
	}
	return nil
}

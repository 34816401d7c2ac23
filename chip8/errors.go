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
	"errors"

	"emul8/byteconv"
	"emul8/translate"
)

var f = translate.From

var (
	ErrAddressOutOfRange  = errors.New(f("address out of range"))
	ErrAddressTooLow      = errors.New(f("address below program start"))
	ErrProgramTooLarge    = errors.New(f("program too large"))
	ErrUnrecognizedOpcode = errors.New(f("unrecognized opcode"))
	ErrReservedRegister   = errors.New(f("flag register used as operand"))
	ErrStackOverflow      = errors.New(f("stack overflow"))
	ErrStackUnderflow     = errors.New(f("stack underflow"))

	// Listing syntax errors
	ErrInvalidAddress = errors.New(f("invalid address"))
	ErrMissingData    = errors.New(f("missing data"))
	ErrInvalidData    = errors.New(f("invalid data"))
)

// AddressError reports a memory access outside of the address space.
type AddressError struct {
	Addr int
}

func (err *AddressError) Error() string {
	return f("address 0x%X out of range, memory size is 0x%X", err.Addr, MemorySize)
}

func (err *AddressError) Is(target error) bool {
	return target == ErrAddressOutOfRange
}

// OpcodeError reports a word that does not decode to any instruction.
type OpcodeError struct {
	Code Opcode
}

func (err *OpcodeError) Error() string {
	return f("unrecognized opcode 0x%v", byteconv.U16toh(uint16(err.Code), 4))
}

func (err *OpcodeError) Is(target error) bool {
	return target == ErrUnrecognizedOpcode
}

// StepError locates a fatal error raised while executing an instruction.
type StepError struct {
	PC     uint16
	Opcode Opcode
	Err    error
}

func (err *StepError) Error() string {
	return f("pc 0x%v opcode %v: %v",
		byteconv.U16toh(err.PC, 3), byteconv.U16toh(uint16(err.Opcode), 4), err.Err)
}

func (err *StepError) Unwrap() error {
	return err.Err
}

// SyntaxError locates an error in a program listing.
type SyntaxError struct {
	LineNo int
	Line   string
	Err    error
}

func (err *SyntaxError) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *SyntaxError) Unwrap() error {
	return err.Err
}

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
	"emul8/byteconv"
)

// Opcode is a raw 16 bit instruction word.
type Opcode uint16

func (o Opcode) kind() uint8 {
	return uint8((uint16(o) & 0xF000) >> 12)
}

func (o Opcode) x() uint8 {
	return uint8((uint16(o) & 0x0F00) >> 8)
}

func (o Opcode) y() uint8 {
	return uint8((uint16(o) & 0x00F0) >> 4)
}

func (o Opcode) n() uint8 {
	return uint8(uint16(o) & 0x000F)
}

func (o Opcode) kk() uint8 {
	return uint8(uint16(o) & 0x00FF)
}

func (o Opcode) nnn() uint16 {
	return uint16(o) & 0x0FFF
}

// String disassembles the word, or renders it as data when it does not
// decode.
func (o Opcode) String() string {
	ins, err := Decode(o)
	if err != nil {
		return "DW " + byteconv.U16toh(uint16(o), 4)
	}
	return ins.String()
}

func vreg(r uint8) string {
	return "V" + byteconv.U8toh(r, 1)
}

func (ins Instruction) String() string {
	x, y := vreg(ins.X), vreg(ins.Y)
	kk := byteconv.U8toh(ins.KK, 2)
	addr := byteconv.U16toh(ins.Addr, 3)

	switch ins.Op {
	case NoOp:
		return "NOP"
	case ClearScreen:
		return "CLS"
	case Return:
		return "RET"
	case Jump:
		return "JP " + addr
	case Call:
		return "CALL " + addr
	case SkipEqualByte:
		return "SE " + x + ", " + kk
	case SkipNotEqualByte:
		return "SNE " + x + ", " + kk
	case SkipEqualReg:
		return "SE " + x + ", " + y
	case LoadByte:
		return "LD " + x + ", " + kk
	case AddByte:
		return "ADD " + x + ", " + kk
	case LoadReg:
		return "LD " + x + ", " + y
	case OrReg:
		return "OR " + x + ", " + y
	case AndReg:
		return "AND " + x + ", " + y
	case XorReg:
		return "XOR " + x + ", " + y
	case AddReg:
		return "ADD " + x + ", " + y
	case SubReg:
		return "SUB " + x + ", " + y
	case ShiftRight:
		return "SHR " + x
	case SubNot:
		return "SUBN " + x + ", " + y
	case ShiftLeft:
		return "SHL " + x
	case SkipNotEqualReg:
		return "SNE " + x + ", " + y
	case LoadIndex:
		return "LD I, " + addr
	case JumpV0:
		return "JP V0, " + addr
	case RandomByte:
		return "RND " + x + ", " + kk
	case Draw:
		return "DRW " + x + ", " + y + ", " + byteconv.U8toh(ins.N, 1)
	case SkipKeyPressed:
		return "SKP " + x
	case SkipKeyNotPressed:
		return "SKNP " + x
	case LoadDelay:
		return "LD " + x + ", DT"
	case WaitKey:
		return "LD " + x + ", K"
	case SetDelay:
		return "LD DT, " + x
	case SetSound:
		return "LD ST, " + x
	case AddToIndex:
		return "ADD I, " + x
	case LoadFont:
		return "LD F, " + x
	case LoadBCD:
		return "LD B, " + x
	case StoreRegs:
		return "LD [I], " + x
	case LoadRegs:
		return "LD " + x + ", [I]"
	}
	return "DW " + byteconv.U16toh(uint16(ins.Code), 4)
}

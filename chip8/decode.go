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

// Op identifies one of the CHIP-8 operations.
type Op uint8

const (
	NoOp              Op = iota // 0000
	ClearScreen                 // 00E0 CLS
	Return                      // 00EE RET
	Jump                        // 1nnn JP addr
	Call                        // 2nnn CALL addr
	SkipEqualByte               // 3xkk SE Vx, byte
	SkipNotEqualByte            // 4xkk SNE Vx, byte
	SkipEqualReg                // 5xy0 SE Vx, Vy
	LoadByte                    // 6xkk LD Vx, byte
	AddByte                     // 7xkk ADD Vx, byte
	LoadReg                     // 8xy0 LD Vx, Vy
	OrReg                       // 8xy1 OR Vx, Vy
	AndReg                      // 8xy2 AND Vx, Vy
	XorReg                      // 8xy3 XOR Vx, Vy
	AddReg                      // 8xy4 ADD Vx, Vy
	SubReg                      // 8xy5 SUB Vx, Vy
	ShiftRight                  // 8xy6 SHR Vx
	SubNot                      // 8xy7 SUBN Vx, Vy
	ShiftLeft                   // 8xyE SHL Vx
	SkipNotEqualReg             // 9xy0 SNE Vx, Vy
	LoadIndex                   // Annn LD I, addr
	JumpV0                      // Bnnn JP V0, addr
	RandomByte                  // Cxkk RND Vx, byte
	Draw                        // Dxyn DRW Vx, Vy, n
	SkipKeyPressed              // Ex9E SKP Vx
	SkipKeyNotPressed           // ExA1 SKNP Vx
	LoadDelay                   // Fx07 LD Vx, DT
	WaitKey                     // Fx0A LD Vx, K
	SetDelay                    // Fx15 LD DT, Vx
	SetSound                    // Fx18 LD ST, Vx
	AddToIndex                  // Fx1E ADD I, Vx
	LoadFont                    // Fx29 LD F, Vx
	LoadBCD                     // Fx33 LD B, Vx
	StoreRegs                   // Fx55 LD [I], Vx
	LoadRegs                    // Fx65 LD Vx, [I]

	OpCount int = iota
)

// Instruction is a decoded opcode. Only the operand fields meaningful for
// Op are set.
type Instruction struct {
	Op   Op
	Code Opcode
	X    uint8
	Y    uint8
	N    uint8
	KK   uint8
	Addr uint16
}

var aluOps = map[uint8]Op{
	0x0: LoadReg, 0x1: OrReg, 0x2: AndReg, 0x3: XorReg,
	0x4: AddReg, 0x5: SubReg, 0x6: ShiftRight, 0x7: SubNot,
	0xE: ShiftLeft,
}

var timerOps = map[uint8]Op{
	0x07: LoadDelay,
	0x0A: WaitKey,
	0x15: SetDelay,
	0x18: SetSound,
	0x1E: AddToIndex,
	0x29: LoadFont,
	0x33: LoadBCD,
	0x55: StoreRegs,
	0x65: LoadRegs,
}

// Decode turns an instruction word into an Instruction. It has no side
// effects; undefined patterns fail with an *OpcodeError.
func Decode(op Opcode) (Instruction, error) {
	unknown := func() (Instruction, error) {
		return Instruction{}, &OpcodeError{Code: op}
	}

	xy := func(o Op) (Instruction, error) {
		return Instruction{Op: o, Code: op, X: op.x(), Y: op.y()}, nil
	}
	xkk := func(o Op) (Instruction, error) {
		return Instruction{Op: o, Code: op, X: op.x(), KK: op.kk()}, nil
	}
	x := func(o Op) (Instruction, error) {
		return Instruction{Op: o, Code: op, X: op.x()}, nil
	}
	nnn := func(o Op) (Instruction, error) {
		return Instruction{Op: o, Code: op, Addr: op.nnn()}, nil
	}

	switch op.kind() {
	case 0x0:
		switch uint16(op) {
		case 0x0000:
			return Instruction{Op: NoOp, Code: op}, nil
		case 0x00E0:
			return Instruction{Op: ClearScreen, Code: op}, nil
		case 0x00EE:
			return Instruction{Op: Return, Code: op}, nil
		}
		return unknown()
	case 0x1:
		return nnn(Jump)
	case 0x2:
		return nnn(Call)
	case 0x3:
		return xkk(SkipEqualByte)
	case 0x4:
		return xkk(SkipNotEqualByte)
	case 0x5:
		if op.n() != 0 {
			return unknown()
		}
		return xy(SkipEqualReg)
	case 0x6:
		return xkk(LoadByte)
	case 0x7:
		return xkk(AddByte)
	case 0x8:
		o, ok := aluOps[op.n()]
		if !ok {
			return unknown()
		}
		return xy(o)
	case 0x9:
		if op.n() != 0 {
			return unknown()
		}
		return xy(SkipNotEqualReg)
	case 0xA:
		return nnn(LoadIndex)
	case 0xB:
		return nnn(JumpV0)
	case 0xC:
		return xkk(RandomByte)
	case 0xD:
		return Instruction{Op: Draw, Code: op, X: op.x(), Y: op.y(), N: op.n()}, nil
	case 0xE:
		switch op.kk() {
		case 0x9E:
			return x(SkipKeyPressed)
		case 0xA1:
			return x(SkipKeyNotPressed)
		}
		return unknown()
	case 0xF:
		if o, ok := timerOps[op.kk()]; ok {
			return x(o)
		}
		return unknown()
	}
	return unknown()
}

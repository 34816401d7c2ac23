package chip8

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		code Opcode
		want Instruction
		text string
	}{
		{0x0000, Instruction{Op: NoOp}, "NOP"},
		{0x00E0, Instruction{Op: ClearScreen}, "CLS"},
		{0x00EE, Instruction{Op: Return}, "RET"},
		{0x1234, Instruction{Op: Jump, Addr: 0x234}, "JP 234"},
		{0x2ABC, Instruction{Op: Call, Addr: 0xABC}, "CALL ABC"},
		{0x3A12, Instruction{Op: SkipEqualByte, X: 0xA, KK: 0x12}, "SE VA, 12"},
		{0x4B34, Instruction{Op: SkipNotEqualByte, X: 0xB, KK: 0x34}, "SNE VB, 34"},
		{0x5120, Instruction{Op: SkipEqualReg, X: 1, Y: 2}, "SE V1, V2"},
		{0x6305, Instruction{Op: LoadByte, X: 3, KK: 0x05}, "LD V3, 05"},
		{0x7401, Instruction{Op: AddByte, X: 4, KK: 0x01}, "ADD V4, 01"},
		{0x8120, Instruction{Op: LoadReg, X: 1, Y: 2}, "LD V1, V2"},
		{0x8121, Instruction{Op: OrReg, X: 1, Y: 2}, "OR V1, V2"},
		{0x8122, Instruction{Op: AndReg, X: 1, Y: 2}, "AND V1, V2"},
		{0x8123, Instruction{Op: XorReg, X: 1, Y: 2}, "XOR V1, V2"},
		{0x8124, Instruction{Op: AddReg, X: 1, Y: 2}, "ADD V1, V2"},
		{0x8125, Instruction{Op: SubReg, X: 1, Y: 2}, "SUB V1, V2"},
		{0x8126, Instruction{Op: ShiftRight, X: 1, Y: 2}, "SHR V1"},
		{0x8127, Instruction{Op: SubNot, X: 1, Y: 2}, "SUBN V1, V2"},
		{0x812E, Instruction{Op: ShiftLeft, X: 1, Y: 2}, "SHL V1"},
		{0x9120, Instruction{Op: SkipNotEqualReg, X: 1, Y: 2}, "SNE V1, V2"},
		{0xA123, Instruction{Op: LoadIndex, Addr: 0x123}, "LD I, 123"},
		{0xB200, Instruction{Op: JumpV0, Addr: 0x200}, "JP V0, 200"},
		{0xC3FF, Instruction{Op: RandomByte, X: 3, KK: 0xFF}, "RND V3, FF"},
		{0xD125, Instruction{Op: Draw, X: 1, Y: 2, N: 5}, "DRW V1, V2, 5"},
		{0xE19E, Instruction{Op: SkipKeyPressed, X: 1}, "SKP V1"},
		{0xE2A1, Instruction{Op: SkipKeyNotPressed, X: 2}, "SKNP V2"},
		{0xF307, Instruction{Op: LoadDelay, X: 3}, "LD V3, DT"},
		{0xF40A, Instruction{Op: WaitKey, X: 4}, "LD V4, K"},
		{0xF515, Instruction{Op: SetDelay, X: 5}, "LD DT, V5"},
		{0xF618, Instruction{Op: SetSound, X: 6}, "LD ST, V6"},
		{0xF71E, Instruction{Op: AddToIndex, X: 7}, "ADD I, V7"},
		{0xF829, Instruction{Op: LoadFont, X: 8}, "LD F, V8"},
		{0xF933, Instruction{Op: LoadBCD, X: 9}, "LD B, V9"},
		{0xFA55, Instruction{Op: StoreRegs, X: 0xA}, "LD [I], VA"},
		{0xFB65, Instruction{Op: LoadRegs, X: 0xB}, "LD VB, [I]"},
	}

	seen := map[Op]bool{}
	for _, entry := range table {
		ins, err := Decode(entry.code)
		if !assert.NoError(err, entry.text) {
			continue
		}
		entry.want.Code = entry.code
		assert.Equal(entry.want, ins, entry.text)
		assert.Equal(entry.text, ins.String())
		assert.Equal(entry.text, entry.code.String())
		seen[ins.Op] = true
	}
	assert.Len(seen, OpCount)
}

func TestDecodeUnrecognized(t *testing.T) {
	assert := assert.New(t)

	table := []Opcode{
		0x5001, // SE Vx, Vy with a nonzero trailing nibble
		0x512F,
		0x9121,
		0x0123, // SYS addr
		0x00E1,
		0x8128, 0x8129, 0x812A, 0x812B, 0x812C, 0x812D, 0x812F,
		0xE100, 0xE19F,
		0xF100, 0xF1FF, 0xF130,
	}

	for _, code := range table {
		ins, err := Decode(code)
		assert.ErrorIs(err, ErrUnrecognizedOpcode, code.String())
		assert.Equal(Instruction{}, ins)

		var opErr *OpcodeError
		if assert.ErrorAs(err, &opErr) {
			assert.Equal(code, opErr.Code)
		}
	}

	assert.Equal("DW 5001", Opcode(0x5001).String())
}

func TestDecodePure(t *testing.T) {
	for code := range 0x10000 {
		a, errA := Decode(Opcode(code))
		b, errB := Decode(Opcode(code))
		assert.Equal(t, a, b)
		assert.Equal(t, errA == nil, errB == nil)
	}
}

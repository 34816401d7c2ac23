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

func (p *Processor) execute(ins Instruction, info *Info) error {
	x, y := ins.X, ins.Y

	switch ins.Op {
	case NoOp:
	case ClearScreen:
		p.clearScreen(info)
	case Return:
		return p.returnFromSubroutine()
	case Jump:
		p.reg.SetPC(ins.Addr)
	case Call:
		return p.callSubroutine(ins.Addr)
	case SkipEqualByte:
		p.skipIf(p.reg.V(x) == ins.KK)
	case SkipNotEqualByte:
		p.skipIf(p.reg.V(x) != ins.KK)
	case SkipEqualReg:
		p.skipIf(p.reg.V(x) == p.reg.V(y))
	case SkipNotEqualReg:
		p.skipIf(p.reg.V(x) != p.reg.V(y))
	case LoadByte:
		p.reg.SetV(x, ins.KK)
	case AddByte:
		p.reg.SetV(x, p.reg.V(x)+ins.KK)
	case LoadReg:
		p.reg.SetV(x, p.reg.V(y))
	case OrReg:
		p.reg.SetV(x, p.reg.V(x)|p.reg.V(y))
	case AndReg:
		p.reg.SetV(x, p.reg.V(x)&p.reg.V(y))
	case XorReg:
		p.reg.SetV(x, p.reg.V(x)^p.reg.V(y))
	case AddReg:
		p.addXY(x, y)
	case SubReg:
		p.subtractYFromX(x, y)
	case SubNot:
		p.subtractXFromY(x, y)
	case ShiftRight:
		p.shiftRightX(x)
	case ShiftLeft:
		p.shiftLeftX(x)
	case LoadIndex:
		p.reg.SetIndex(ins.Addr)
	case JumpV0:
		p.reg.SetPC(ins.Addr + uint16(p.reg.V(0x0)))
	case RandomByte:
		p.setXToRandom(x, ins.KK)
	case Draw:
		return p.drawSprite(x, y, ins.N, info)
	case SkipKeyPressed:
		p.skipIf(p.keys.IsKeyDown(p.reg.V(x)))
	case SkipKeyNotPressed:
		p.skipIf(!p.keys.IsKeyDown(p.reg.V(x)))
	case LoadDelay:
		p.reg.SetV(x, p.timers.Delay())
	case WaitKey:
		p.pauseUntilKeyPressed(x)
	case SetDelay:
		p.timers.SetDelay(p.reg.V(x))
	case SetSound:
		p.timers.SetSound(p.reg.V(x))
	case AddToIndex:
		p.reg.AddIndex(uint16(p.reg.V(x)))
	case LoadFont:
		p.reg.SetIndex(uint16(p.reg.V(x)) * GlyphSize)
	case LoadBCD:
		return p.binaryCodedDecimal(x)
	case StoreRegs:
		return p.setRegistersToMemory(x)
	case LoadRegs:
		return p.setMemoryToRegisters(x)
	default:
		return &OpcodeError{Code: ins.Code}
	}
	return nil
}

func (p *Processor) skipIf(cond bool) {
	if cond {
		p.reg.Skip()
	}
}

func (p *Processor) clearScreen(info *Info) {
	p.screen.Clear()
	*info |= Redraw
}

func (p *Processor) callSubroutine(nnn uint16) error {
	if err := p.reg.Push(p.reg.PC()); err != nil {
		return err
	}
	p.reg.SetPC(nnn)
	return nil
}

func (p *Processor) returnFromSubroutine() error {
	pc, err := p.reg.Pop()
	if err != nil {
		return err
	}
	p.reg.SetPC(pc)
	return nil
}

func (p *Processor) addXY(x, y uint8) {
	sum := uint16(p.reg.V(x)) + uint16(p.reg.V(y))
	p.reg.SetV(x, byte(sum))
	p.reg.SetFlag(sum > 0xFF)
}

func (p *Processor) subtractYFromX(x, y uint8) {
	vx, vy := p.reg.V(x), p.reg.V(y)
	p.reg.SetV(x, vx-vy)
	p.reg.SetFlag(vx >= vy)
}

func (p *Processor) subtractXFromY(x, y uint8) {
	vx, vy := p.reg.V(x), p.reg.V(y)
	p.reg.SetV(x, vy-vx)
	p.reg.SetFlag(vy >= vx)
}

func (p *Processor) shiftRightX(x uint8) {
	vx := p.reg.V(x)
	p.reg.SetV(x, vx>>1)
	p.reg.SetFlag(vx&0x01 != 0)
}

func (p *Processor) shiftLeftX(x uint8) {
	vx := p.reg.V(x)
	p.reg.SetV(x, vx<<1)
	p.reg.SetFlag(vx&0x80 != 0)
}

func (p *Processor) setXToRandom(x, kk uint8) {
	randomByte := byte(p.rng.Uint32N(256))
	p.reg.SetV(x, randomByte&kk)
}

func (p *Processor) drawSprite(x, y, n uint8, info *Info) error {
	// Coordinates are read before VF is cleared, since either may be VF.
	vx, vy := int(p.reg.V(x)), int(p.reg.V(y))

	// VF reads 0 unless this draw collides.
	p.reg.SetFlag(false)

	sprite, err := p.memory.Slice(p.reg.Index(), int(n))
	if err != nil {
		return err
	}

	collision := p.screen.Draw(vx, vy, sprite)
	p.reg.SetFlag(collision)
	*info |= Redraw
	return nil
}

// pauseUntilKeyPressed enters the AwaitingKey state. Presses that happened
// before the wait began are discarded.
func (p *Processor) pauseUntilKeyPressed(x uint8) {
	for {
		if _, ok := p.keys.PressedKey(); !ok {
			break
		}
	}
	p.state = AwaitingKey
	p.waitX = x
}

// binaryCodedDecimal stores the hundreds, tens and ones digits of Vx at I,
// I+1 and I+2 using the double dabble shift-and-add-3 conversion.
func (p *Processor) binaryCodedDecimal(x uint8) error {
	var bcd uint32

	val := uint32(p.reg.V(x))

	for i := range 8 {
		// Any BCD nibble of 5 or more gets 3 added so the shift carries it.
		if (bcd & 0x00F) >= 0x005 {
			bcd += 0x003
		}
		if (bcd & 0x0F0) >= 0x050 {
			bcd += 0x030
		}
		if (bcd & 0xF00) >= 0x500 {
			bcd += 0x300
		}

		bcd = (bcd << 1) | ((val >> (7 - i)) & 1)
	}

	digits := [3]byte{
		byte((bcd >> 8) & 0xF), // hundreds
		byte((bcd >> 4) & 0xF), // tens
		byte(bcd & 0xF),        // ones
	}

	for k, d := range digits {
		if err := p.memory.Write(p.reg.Index()+uint16(k), d); err != nil {
			return err
		}
	}
	return nil
}

func (p *Processor) setRegistersToMemory(x uint8) error {
	for r := uint8(0); r <= x; r++ {
		if err := p.memory.Write(p.reg.Index()+uint16(r), p.reg.V(r)); err != nil {
			return err
		}
	}
	p.reg.AddIndex(uint16(x) + 1)
	return nil
}

func (p *Processor) setMemoryToRegisters(x uint8) error {
	for r := uint8(0); r <= x; r++ {
		b, err := p.memory.Read(p.reg.Index() + uint16(r))
		if err != nil {
			return err
		}
		p.reg.SetV(r, b)
	}
	p.reg.AddIndex(uint16(x) + 1)
	return nil
}

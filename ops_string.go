// ops_string.go - MOVS/CMPS/SCAS/LODS/STOS and the REP/REPE/REPNE repeat
// state machine
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package i8086

// strSrcAddr resolves the string source operand: DS:SI, or the active
// segment override in place of DS.
func (c *CPU) strSrcAddr() uint32 {
	slot := c.insn.segmentOverride
	if slot == segNone {
		slot = segDS
	}
	return linear(c.seg[slot].base, c.SI)
}

// strDstAddr resolves the string destination operand: always ES:DI, not
// subject to a segment override.
func (c *CPU) strDstAddr() uint32 {
	return linear(c.seg[segES].base, c.DI)
}

func (c *CPU) advanceSI() {
	d := uint16(1)
	if c.insn.width16 {
		d = 2
	}
	if c.Flags.D {
		c.SI -= d
	} else {
		c.SI += d
	}
}

func (c *CPU) advanceDI() {
	d := uint16(1)
	if c.insn.width16 {
		d = 2
	}
	if c.Flags.D {
		c.DI -= d
	} else {
		c.DI += d
	}
}

func (c *CPU) elementMovs() {
	src, dst := c.strSrcAddr(), c.strDstAddr()
	if c.insn.width16 {
		c.Mem.Write16(dst, c.Mem.Read16(src))
	} else {
		c.Mem.Write8(dst, c.Mem.Read8(src))
	}
	c.advanceSI()
	c.advanceDI()
}

func (c *CPU) elementCmps() {
	src, dst := c.strSrcAddr(), c.strDstAddr()
	var a, b uint32
	if c.insn.width16 {
		a, b = uint32(c.Mem.Read16(src)), uint32(c.Mem.Read16(dst))
	} else {
		a, b = uint32(c.Mem.Read8(src)), uint32(c.Mem.Read8(dst))
	}
	c.aluArith(aluCMP, c.insn.width16, a, b, 0)
	c.advanceSI()
	c.advanceDI()
}

func (c *CPU) elementScas() {
	dst := c.strDstAddr()
	var a, b uint32
	if c.insn.width16 {
		a, b = uint32(c.AX), uint32(c.Mem.Read16(dst))
	} else {
		a, b = uint32(c.AL()), uint32(c.Mem.Read8(dst))
	}
	c.aluArith(aluCMP, c.insn.width16, a, b, 0)
	c.advanceDI()
}

func (c *CPU) elementLods() {
	src := c.strSrcAddr()
	if c.insn.width16 {
		c.AX = c.Mem.Read16(src)
	} else {
		c.SetAL(c.Mem.Read8(src))
	}
	c.advanceSI()
}

func (c *CPU) elementStos() {
	dst := c.strDstAddr()
	if c.insn.width16 {
		c.Mem.Write16(dst, c.AX)
	} else {
		c.Mem.Write8(dst, c.AL())
	}
	c.advanceDI()
}

// execStringOp runs one element of a string instruction and implements
// the REP/REPE/REPNE repeat state machine: with no repeat prefix active
// it performs exactly one element and retires normally; under a repeat
// prefix, CX==0 retires without touching memory (the vacuous-repeat
// case), otherwise it performs one element, decrements CX, and -- unless
// the loop is now done -- rewinds IP by the one byte just fetched and
// marks the instruction a non-retiring "prefix" so the next Tick sees
// the same opcode again with the repeat latch still armed. This is what
// makes string instructions interruptible between elements: the check at
// the top of Tick runs before every such re-fetch. hasCompare selects
// whether the repeat condition also tests the zero flag (CMPS/SCAS) or
// only CX (MOVS/STOS/LODS).
func (c *CPU) execStringOp(element func(), hasCompare bool) {
	repeating := c.insn.repeatEQ || c.insn.repeatNE
	if !repeating {
		element()
		return
	}
	if c.CX == 0 {
		return
	}
	element()
	c.CX--
	cont := c.CX != 0
	if hasCompare {
		if c.insn.repeatEQ {
			cont = cont && c.Flags.Z
		} else {
			cont = cont && !c.Flags.Z
		}
	}
	if cont {
		c.IP--
		c.insn.isPrefix = true
	}
}

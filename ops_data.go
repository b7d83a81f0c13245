// ops_data.go - MOV/PUSH/POP/XCHG/LEA/LDS/LES/XLAT and the segment-register
// transfer forms
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package i8086

// execMovRM implements the four ModR/M MOV forms (Eb,Gb / Ev,Gv / Gb,Eb /
// Gv,Ev): a plain copy, no flags touched.
func (c *CPU) execMovRM(dstIsReg0 bool) {
	if dstIsReg0 {
		c.writeRegOperand0(c.readOperand1())
	} else {
		c.writeOperand1(c.readRegOperand0())
	}
}

// execMovSegToRM implements MOV Ew,Sw (0x8C): the destination is the
// ModR/M rm operand, the source is the segment register named by reg.
func (c *CPU) execMovSegToRM() {
	c.writeOperand1(c.readRegOperand0())
}

// execMovRMToSeg implements MOV Sw,Ew (0x8E).
func (c *CPU) execMovRMToSeg() {
	c.writeRegOperand0(c.readOperand1())
}

// execLea implements LEA Gv,M (0x8D): the 16-bit effective address
// itself, not the memory it names, is loaded into the destination
// register.
func (c *CPU) execLea() {
	c.writeRegOperand0(uint32(c.effectiveAddr16()))
}

// execLds and execLes implement the far-pointer loads (0xC5, 0xC4): the
// destination register takes the offset word, DS or ES takes the
// segment word that follows it in memory.
func (c *CPU) execLds() { c.execFarLoad(segDS) }
func (c *CPU) execLes() { c.execFarLoad(segES) }

func (c *CPU) execFarLoad(slot int) {
	offset := c.readOperand1()
	segWord := c.Mem.Read16(c.insn.addr + 2)
	c.writeRegOperand0(offset)
	c.setSeg(slot, segWord)
}

// execXchgRM implements XCHG Eb,Gb / Ev,Gv (0x86/0x87).
func (c *CPU) execXchgRM() {
	a := c.readOperand1()
	b := c.readRegOperand0()
	c.writeOperand1(b)
	c.writeRegOperand0(a)
}

// execXchgAXReg implements XCHG AX,r16 (0x91-0x97); 0x90 (XCHG AX,AX) is
// wired to this too and is a true no-op.
func (c *CPU) execXchgAXReg() {
	r := c.insn.regField
	v := c.reg16(r)
	c.setReg16(r, c.AX)
	c.AX = v
}

// execPopEv implements POP Ev (0x8F). It is wired directly rather than as
// a group page: its ModR/M reg field is architecturally always zero and
// is not decoded as a sub-opcode.
func (c *CPU) execPopEv() {
	c.writeOperand1(uint32(c.pop16()))
}

// execMovRMImm implements MOV Eb,Ib / Ev,Iv (0xC6/0xC7).
func (c *CPU) execMovRMImm() {
	c.writeOperand1(uint32(uint16(c.insn.imm0)) & mask16(c.insn.width16))
}

// execMovRegImm implements MOV r8,imm8 / r16,imm16 (0xB0-0xBF).
func (c *CPU) execMovRegImm() {
	r := c.insn.regField
	if c.insn.width16 {
		c.setReg16(r, uint16(c.insn.imm0))
	} else {
		c.setReg8(r, byte(c.insn.imm0))
	}
}

// execPushReg16 and execPopReg16 implement the one-byte PUSH/POP r16
// family (0x50-0x5F).
func (c *CPU) execPushReg16() { c.push16(c.reg16(c.insn.regField)) }
func (c *CPU) execPopReg16()  { c.setReg16(c.insn.regField, c.pop16()) }

// pushSeg/popSeg back the seven explicit segment-register PUSH/POP
// opcodes (0x06/0x07, 0x0E, 0x16/0x17, 0x1E/0x1F); 0x0F (POP CS) is not
// wired in, matching every documented 8086 reference, which leaves it
// reserved.
func pushSeg(slot int) OpHandler { return func(c *CPU) { c.push16(c.seg[slot].selector) } }
func popSeg(slot int) OpHandler {
	return func(c *CPU) {
		v := c.pop16()
		c.setRegSeg(byte(slot), v)
	}
}

// execCbw sign-extends AL into AH (0x98).
func (c *CPU) execCbw() {
	if c.AL()&0x80 != 0 {
		c.SetAH(0xFF)
	} else {
		c.SetAH(0)
	}
}

// execCwd sign-extends AX into DX (0x99).
func (c *CPU) execCwd() {
	if c.AX&0x8000 != 0 {
		c.DX = 0xFFFF
	} else {
		c.DX = 0
	}
}

// execXlat implements XLAT (0xD7): AL = [DS:BX+AL] (or the active
// segment override).
func (c *CPU) execXlat() {
	slot := c.insn.segmentOverride
	if slot == segNone {
		slot = segDS
	}
	addr := linear(c.seg[slot].base, c.BX+uint16(c.AL()))
	c.SetAL(c.Mem.Read8(addr))
}

// execMovMoffs implements the four direct-address MOV forms (0xA0-0xA3):
// AL/AX to or from a 16-bit offset in DS (or the segment override).
func (c *CPU) execMovMoffs(toAcc bool, width16 bool) {
	slot := c.insn.segmentOverride
	if slot == segNone {
		slot = segDS
	}
	addr := linear(c.seg[slot].base, uint16(c.insn.imm0))
	if toAcc {
		if width16 {
			c.AX = c.Mem.Read16(addr)
		} else {
			c.SetAL(c.Mem.Read8(addr))
		}
		return
	}
	if width16 {
		c.Mem.Write16(addr, c.AX)
	} else {
		c.Mem.Write8(addr, c.AL())
	}
}

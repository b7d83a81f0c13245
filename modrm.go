// modrm.go - ModR/M addressing-byte decode and effective-address resolution
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package i8086

// decodeModRM consumes the already-fetched ModR/M byte (insn.modrm) and
// resolves operand-1: either a register (mod==3) or a memory effective
// address built from the fixed 8-entry base/index table. It mirrors the
// source's fetch_modrm stage, including the mod=0,rm=6 displacement-only
// special case and the "SS whenever BP participates, DS otherwise"
// default-segment rule.
//
// Returns whether a displacement must still be fetched (disp8 or disp16)
// before the address is final, and if so, whether it is sign-extended.
func (c *CPU) decodeModRM() (needDisp bool, dispSigned bool) {
	b := c.insn.modrm
	mod := b >> 6 & 3
	reg := b >> 3 & 7
	rm := b & 7

	c.insn.mod = mod
	c.insn.regField = reg
	c.insn.rm = rm

	if mod == 3 {
		c.insn.isMemory = false
		return false, false
	}

	c.insn.isMemory = true

	var addr uint16
	usesBP := false

	switch rm {
	case 0:
		addr = c.BX + c.SI
	case 1:
		addr = c.BX + c.DI
	case 2:
		addr = c.BP + c.SI
		usesBP = true
	case 3:
		addr = c.BP + c.DI
		usesBP = true
	case 4:
		addr = c.SI
	case 5:
		addr = c.DI
	case 6:
		if mod == 0 {
			addr = 0 // displacement-only; DS-based per spec §4.2
		} else {
			addr = c.BP
			usesBP = true
		}
	case 7:
		addr = c.BX
	}

	c.insn.addr = uint32(addr)
	c.insn.ea16 = addr

	if c.insn.segmentOverride == segNone {
		if usesBP {
			c.insn.segmentOverride = segSS
		} else {
			c.insn.segmentOverride = segDS
		}
	}

	switch {
	case mod == 1:
		return true, true
	case mod == 2:
		return true, false
	case mod == 0 && rm == 6:
		return true, false // disp16, unsigned per the displacement-only form
	default:
		return false, false
	}
}

// applyDisplacement adds a fetched displacement to the partial effective
// address and wraps to 16 bits, matching the 8086's 16-bit offset
// arithmetic (no segment applied yet).
func (c *CPU) applyDisplacement(disp int32) {
	c.insn.ea16 = uint16(int32(c.insn.ea16) + disp)
	c.insn.addr = uint32(c.insn.ea16)
}

// resolveSegment turns the 16-bit effective address plus the active
// segment override into a final 20-bit linear address.
func (c *CPU) resolveSegment() {
	slot := c.insn.segmentOverride
	if slot == segNone {
		slot = segDS
	}
	c.insn.addr = linear(c.seg[slot].base, c.insn.ea16)
}

// readRegOperand0 reads the ModR/M reg-field operand (general, byte, or
// segment register depending on the decoded instruction shape).
func (c *CPU) readRegOperand0() uint32 {
	if c.insn.reg0IsSeg {
		return uint32(c.regSeg(c.insn.regField))
	}
	if c.insn.width16 {
		return uint32(c.reg16(c.insn.regField))
	}
	return uint32(c.reg8(c.insn.regField))
}

func (c *CPU) writeRegOperand0(v uint32) {
	if c.insn.reg0IsSeg {
		c.setRegSeg(c.insn.regField, uint16(v))
		return
	}
	if c.insn.width16 {
		c.setReg16(c.insn.regField, uint16(v))
		return
	}
	c.setReg8(c.insn.regField, byte(v))
}

// readOperand1 reads the ModR/M rm-field operand: memory if mod!=3,
// otherwise a register selected by rm.
func (c *CPU) readOperand1() uint32 {
	if c.insn.isMemory {
		if c.insn.width16 {
			return uint32(c.Mem.Read16(c.insn.addr))
		}
		return uint32(c.Mem.Read8(c.insn.addr))
	}
	if c.insn.width16 {
		return uint32(c.reg16(c.insn.rm))
	}
	return uint32(c.reg8(c.insn.rm))
}

func (c *CPU) writeOperand1(v uint32) {
	if c.insn.isMemory {
		if c.insn.width16 {
			c.Mem.Write16(c.insn.addr, uint16(v))
		} else {
			c.Mem.Write8(c.insn.addr, byte(v))
		}
		return
	}
	if c.insn.width16 {
		c.setReg16(c.insn.rm, uint16(v))
	} else {
		c.setReg8(c.insn.rm, byte(v))
	}
}

// effectiveAddr16 returns the current 16-bit (pre-segment) effective
// address of a memory operand, used by LEA.
func (c *CPU) effectiveAddr16() uint16 {
	return c.insn.ea16
}

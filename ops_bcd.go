// ops_bcd.go - the six BCD/ASCII adjust instructions: AAA, AAS, DAA, DAS,
// AAM, AAD.
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package i8086

// execAaa implements AAA (0x37): ASCII-adjust AL after addition.
func (c *CPU) execAaa() {
	if c.AL()&0x0F > 9 || c.Flags.A {
		c.SetAL(c.AL() + 6)
		c.SetAH(c.AH() + 1)
		c.Flags.A = true
		c.Flags.C = true
	} else {
		c.Flags.A = false
		c.Flags.C = false
	}
	c.SetAL(c.AL() & 0x0F)
}

// execAas implements AAS (0x3F): ASCII-adjust AL after subtraction.
func (c *CPU) execAas() {
	if c.AL()&0x0F > 9 || c.Flags.A {
		c.SetAL(c.AL() - 6)
		c.SetAH(c.AH() - 1)
		c.Flags.A = true
		c.Flags.C = true
	} else {
		c.Flags.A = false
		c.Flags.C = false
	}
	c.SetAL(c.AL() & 0x0F)
}

// execDaa implements DAA (0x27): decimal-adjust AL after addition.
func (c *CPU) execDaa() {
	oldAL := c.AL()
	oldCF := c.Flags.C
	c.Flags.C = false

	if oldAL&0x0F > 9 || c.Flags.A {
		sum := uint16(oldAL) + 6
		c.SetAL(byte(sum))
		c.Flags.C = oldCF || sum > 0xFF
		c.Flags.A = true
	} else {
		c.Flags.A = false
	}

	if oldAL > 0x99 || oldCF {
		c.SetAL(c.AL() + 0x60)
		c.Flags.C = true
	}

	c.Flags.Z = zeroFlag(uint32(c.AL()), signBitFor(false))
	c.Flags.S = signFlag(uint32(c.AL()), signBitFor(false))
	c.Flags.P = parityFlag(uint32(c.AL()))
}

// execDas implements DAS (0x2F): decimal-adjust AL after subtraction.
func (c *CPU) execDas() {
	oldAL := c.AL()
	oldCF := c.Flags.C
	c.Flags.C = false

	if oldAL&0x0F > 9 || c.Flags.A {
		diff := int16(oldAL) - 6
		c.SetAL(byte(diff))
		c.Flags.C = oldCF || diff < 0
		c.Flags.A = true
	} else {
		c.Flags.A = false
	}

	if oldAL > 0x99 || oldCF {
		c.SetAL(byte(int16(c.AL()) - 0x60))
		c.Flags.C = true
	}

	c.Flags.Z = zeroFlag(uint32(c.AL()), signBitFor(false))
	c.Flags.S = signFlag(uint32(c.AL()), signBitFor(false))
	c.Flags.P = parityFlag(uint32(c.AL()))
}

// execAam implements AAM (0xD4 0x0A): AH,AL = AL/base, AL%base. A zero
// base is a divide-error fault exactly like DIV/IDIV with a zero
// divisor.
func (c *CPU) execAam() {
	base := byte(c.insn.imm0)
	if base == 0 {
		c.faultRestart(VectorDivideError)
		return
	}
	al := c.AL()
	c.SetAH(al / base)
	c.SetAL(al % base)
	c.Flags.Z = zeroFlag(uint32(c.AL()), signBitFor(false))
	c.Flags.S = signFlag(uint32(c.AL()), signBitFor(false))
	c.Flags.P = parityFlag(uint32(c.AL()))
}

// execAad implements AAD (0xD5 0x0A): AL = AH*base+AL, AH = 0.
func (c *CPU) execAad() {
	base := byte(c.insn.imm0)
	result := uint16(c.AH())*uint16(base) + uint16(c.AL())
	c.SetAL(byte(result))
	c.SetAH(0)
	c.Flags.Z = zeroFlag(uint32(c.AL()), signBitFor(false))
	c.Flags.S = signFlag(uint32(c.AL()), signBitFor(false))
	c.Flags.P = parityFlag(uint32(c.AL()))
}

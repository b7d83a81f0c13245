// ops_muldiv.go - GRP3 MUL/IMUL/DIV/IDIV
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package i8086

// execMulDiv dispatches GRP3 reg field 4-7 (MUL/IMUL/DIV/IDIV); reg 0/1
// (TEST) and reg 2/3 (NOT/NEG) are handled by execTestGroup3/execNotNeg.
func (c *CPU) execMulDiv() {
	width16 := c.insn.width16
	src := c.readOperand1()
	switch c.insn.regField {
	case 4:
		c.execMul(width16, src)
	case 5:
		c.execImul(width16, src)
	case 6:
		c.execDiv(width16, src)
	case 7:
		c.execIdiv(width16, src)
	}
}

// execMul implements unsigned multiply; CF and OF are set when the
// high half of the result is non-zero, Z/S/P/A are left unaffected
// (undefined per the instruction's own documentation).
func (c *CPU) execMul(width16 bool, src uint32) {
	if width16 {
		result := uint32(c.AX) * (src & 0xFFFF)
		c.AX = uint16(result)
		c.DX = uint16(result >> 16)
		of := c.DX != 0
		c.Flags.C, c.Flags.V = of, of
		return
	}
	result := uint32(c.AL()) * (src & 0xFF)
	c.AX = uint16(result)
	of := c.AH() != 0
	c.Flags.C, c.Flags.V = of, of
}

// execImul implements signed multiply; CF and OF are set when the
// result does not fit back into the lower half as a sign-extended
// value.
func (c *CPU) execImul(width16 bool, src uint32) {
	if width16 {
		result := int32(int16(c.AX)) * int32(int16(uint16(src)))
		lower := int16(result)
		of := int32(lower) != result
		c.AX = uint16(result)
		c.DX = uint16(result >> 16)
		c.Flags.C, c.Flags.V = of, of
		return
	}
	al := int16(int8(c.AL()))
	s := int16(int8(byte(src)))
	result := al * s
	lower := int8(result)
	of := int16(lower) != result
	c.AX = uint16(uint16(result))
	c.Flags.C, c.Flags.V = of, of
}

// execDiv implements unsigned divide. A zero divisor or a quotient that
// overflows the destination raises the divide-error fault, restarting
// at this instruction's own address rather than the next one.
func (c *CPU) execDiv(width16 bool, src uint32) {
	if width16 {
		divisor := src & 0xFFFF
		if divisor == 0 {
			c.faultRestart(VectorDivideError)
			return
		}
		dividend := uint32(c.DX)<<16 | uint32(c.AX)
		quotient := dividend / divisor
		if quotient > 0xFFFF {
			c.faultRestart(VectorDivideError)
			return
		}
		remainder := dividend % divisor
		c.AX = uint16(quotient)
		c.DX = uint16(remainder)
		return
	}
	divisor := src & 0xFF
	if divisor == 0 {
		c.faultRestart(VectorDivideError)
		return
	}
	dividend := uint32(c.AX)
	quotient := dividend / divisor
	if quotient > 0xFF {
		c.faultRestart(VectorDivideError)
		return
	}
	remainder := dividend % divisor
	c.SetAL(byte(quotient))
	c.SetAH(byte(remainder))
}

// execIdiv implements signed divide with the same fault behavior as
// execDiv.
func (c *CPU) execIdiv(width16 bool, src uint32) {
	if width16 {
		divisor := int32(int16(uint16(src)))
		if divisor == 0 {
			c.faultRestart(VectorDivideError)
			return
		}
		dividend := int32(uint32(c.DX)<<16 | uint32(c.AX))
		quotient := dividend / divisor
		if quotient > 32767 || quotient < -32768 {
			c.faultRestart(VectorDivideError)
			return
		}
		remainder := dividend % divisor
		c.AX = uint16(int16(quotient))
		c.DX = uint16(int16(remainder))
		return
	}
	divisor := int16(int8(byte(src)))
	if divisor == 0 {
		c.faultRestart(VectorDivideError)
		return
	}
	dividend := int16(c.AX)
	quotient := dividend / divisor
	if quotient > 127 || quotient < -128 {
		c.faultRestart(VectorDivideError)
		return
	}
	remainder := dividend % divisor
	c.SetAL(byte(int8(quotient)))
	c.SetAH(byte(int8(remainder)))
}

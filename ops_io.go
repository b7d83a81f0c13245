// ops_io.go - IN/OUT, fixed (Ib) and variable (DX) port forms
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package i8086

func (c *CPU) execInImm(width16 bool) {
	port := uint16(byte(c.insn.imm0))
	if width16 {
		c.AX = c.Ports.In16(port)
	} else {
		c.SetAL(c.Ports.In8(port))
	}
}

func (c *CPU) execOutImm(width16 bool) {
	port := uint16(byte(c.insn.imm0))
	if width16 {
		c.Ports.Out16(port, c.AX)
	} else {
		c.Ports.Out8(port, c.AL())
	}
}

func (c *CPU) execInDX(width16 bool) {
	if width16 {
		c.AX = c.Ports.In16(c.DX)
	} else {
		c.SetAL(c.Ports.In8(c.DX))
	}
}

func (c *CPU) execOutDX(width16 bool) {
	if width16 {
		c.Ports.Out16(c.DX, c.AX)
	} else {
		c.Ports.Out8(c.DX, c.AL())
	}
}

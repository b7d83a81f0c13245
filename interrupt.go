// interrupt.go - interrupt/NMI/trap delivery and the vector table walk
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package i8086

// Fixed vector numbers for the sources the core itself raises, as
// opposed to software INT n or an environment-supplied IRQ vector.
const (
	VectorDivideError = 0
	VectorSingleStep  = 1
	VectorNMI         = 2
	VectorBreakpoint  = 3
	VectorOverflow    = 4
)

// deliverInterrupt implements spec §4.3's interrupt-entry sequence: push
// FLAGS, then CS, then IP, clear I and T, load CS:IP from the
// four-byte vector table entry at linear address vector*4 (IP first,
// then CS), and arm the one-tick delay latch so the very next Tick
// cannot be interrupted again before the handler's first instruction
// runs.
func (c *CPU) deliverInterrupt(vector byte) {
	c.push16(c.Flags.Pack())
	c.push16(c.CS())
	c.push16(c.IP)

	c.Flags.I = false
	c.Flags.T = false

	table := uint32(vector) * 4
	newIP := c.Mem.Read16(table)
	newCS := c.Mem.Read16(table + 2)

	c.setSeg(segCS, newCS)
	c.IP = newIP
	c.delayLatch = true
}

// faultRestart delivers a fault (the divide error raised by DIV/IDIV and
// by AAM with a zero base) using the shadow CS:IP rather than the current one, so the faulting
// instruction's own address -- not whatever the fetch stage has already
// advanced past -- is what gets pushed and what a restarted instruction
// stream would resume at.
func (c *CPU) faultRestart(vector byte) {
	c.setSeg(segCS, c.ShadowCS)
	c.IP = c.ShadowIP
	c.deliverInterrupt(vector)
}

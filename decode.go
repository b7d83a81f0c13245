// decode.go - opcode descriptor tables and the fetch/decode/execute/retire
// pipeline (Tick).
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package i8086

// OpHandler is a pure function of CPU state: every opcode, after decode,
// resolves to exactly one of these. Handlers that are prefixes set
// insn.isPrefix so the retire stage leaves the segment-override and
// repeat latches alone.
type OpHandler func(*CPU)

// immKind selects how (and whether) an operand immediate is fetched
// after any ModR/M displacement. Declared once and reused across both
// the non-ModR/M accumulator-immediate forms (ADD AL,Ib) and the
// ModR/M forms that carry a trailing immediate (GRP1, MOV r/m,imm,
// GRP3's TEST r/m,imm).
type immKind int

const (
	immNone immKind = iota
	immU8           // zero-extended byte
	immS8           // sign-extended byte
	immU16          // raw 16-bit word
)

// opDesc describes everything the fetch stage needs to know about one
// opcode before a handler can run: whether it carries a ModR/M byte, the
// operand width, where its operand-0 register comes from, its immediate
// shape, and (for the twelve group opcodes) which 8-slot group page to
// rewrite into.
type opDesc struct {
	modrm         bool
	width16       bool
	widthFromBit0 bool // width16 = (opcode & 1) == 1; overrides the fixed width16 above
	imm           immKind
	regFromOpcode bool // operand-0 register is the low 3 bits of the opcode byte
	segReg        bool // operand-0 register field (ModR/M reg) names a segment register
	group         int  // >=0: this opcode's reg field selects groupTable[group*8+reg]; -1 otherwise
	prefix        bool
	handler       OpHandler
}

var opTable [256]opDesc
var groupTable [96]opDesc

const (
	grpALUib  = 0 // 0x80: Eb,Ib
	grpALUiv  = 1 // 0x81: Ev,Iv
	grpALUib2 = 2 // 0x82: Eb,Ib (undocumented alias of 0x80)
	grpALUibS = 3 // 0x83: Ev,Ib sign-extended
	grpShiftB1 = 4 // 0xD0: Eb,1
	grpShiftW1 = 5 // 0xD1: Ev,1
	grpShiftBC = 6 // 0xD2: Eb,CL
	grpShiftWC = 7 // 0xD3: Ev,CL
	grp3b      = 8 // 0xF6
	grp3w      = 9 // 0xF7
	grp4       = 10 // 0xFE
	grp5       = 11 // 0xFF
)

// fetchByte reads one byte at CS:IP and advances IP.
func (c *CPU) fetchByte() byte {
	addr := linear(c.seg[segCS].base, c.IP)
	v := c.Mem.Read8(addr)
	c.IP++
	return v
}

// fetchWord reads a 16-bit value at CS:IP and advances IP by 2.
func (c *CPU) fetchWord() uint16 {
	addr := linear(c.seg[segCS].base, c.IP)
	v := c.Mem.Read16(addr)
	c.IP += 2
	return v
}

// fetchImm reads the operand immediate named by kind into imm0 (sign- or
// zero-extended as appropriate); immNone is a no-op.
func (c *CPU) fetchImm(kind immKind) {
	switch kind {
	case immU8:
		c.insn.imm0 = int32(c.fetchByte())
	case immS8:
		c.insn.imm0 = int32(int8(c.fetchByte()))
	case immU16:
		c.insn.imm0 = int32(c.fetchWord())
	}
}

// checkInterrupt implements spec §4.3 step 1. While the one-tick delay
// latch is armed, every interrupt check (including NMI and the trap
// flag) is skipped for this tick, and the latch is consumed.
func (c *CPU) checkInterrupt() {
	if c.delayLatch {
		c.delayLatch = false
		return
	}
	switch {
	case c.nmiPending:
		c.nmiPending = false
		c.deliverInterrupt(VectorNMI)
	case c.irqPending && c.Flags.I:
		c.irqPending = false
		c.deliverInterrupt(c.irqVector)
	case c.Flags.T:
		c.deliverInterrupt(VectorSingleStep)
	}
}

// Tick advances the processor by one instruction (spec §4.3: "advance
// one instruction; may deliver a pending interrupt before fetching"). A
// repeated string instruction that has not exhausted its count performs
// exactly one element per Tick and rewinds IP so the same opcode byte is
// refetched on the next call, leaving room for an interrupt to be
// serviced between elements.
func (c *CPU) Tick() {
	if c.Halted {
		if c.nmiPending || (c.irqPending && c.Flags.I) {
			c.Halted = false
			c.checkInterrupt()
		}
		return
	}

	c.checkInterrupt()

	op := int(c.fetchByte())
	desc := opTable[op]

	c.insn = insnState{segmentOverride: c.insn.segmentOverride, repeatEQ: c.insn.repeatEQ, repeatNE: c.insn.repeatNE}
	c.insn.opcode = op
	c.insn.width16 = desc.width16
	if desc.widthFromBit0 {
		c.insn.width16 = op&1 == 1
	}
	c.insn.reg0IsSeg = desc.segReg
	c.insn.isPrefix = desc.prefix
	if desc.regFromOpcode {
		c.insn.regField = byte(op & 7)
	}

	if desc.modrm {
		c.insn.modrm = c.fetchByte()
		needDisp, dispSigned := c.decodeModRM()

		if desc.group >= 0 {
			c.insn.opcode = 256 + desc.group*8 + int(c.insn.regField)
		}

		if needDisp {
			if dispSigned {
				c.applyDisplacement(int32(int8(c.fetchByte())))
			} else {
				c.applyDisplacement(int32(c.fetchWord()))
			}
		}
	}

	immKindToFetch := desc.imm
	var finalHandler OpHandler
	if desc.group >= 0 {
		g := groupTable[c.insn.opcode-256]
		immKindToFetch = g.imm
		finalHandler = g.handler
	} else {
		finalHandler = desc.handler
	}

	c.fetchImm(immKindToFetch)

	if c.insn.isMemory {
		c.resolveSegment()
	}

	if finalHandler == nil {
		finalHandler = func(cpu *CPU) { cpu.Undef(cpu, cpu.insn.opcode) }
	}
	finalHandler(c)

	if !c.insn.isPrefix {
		c.ShadowCS = c.CS()
		c.ShadowIP = c.IP
		c.insn.repeatEQ = false
		c.insn.repeatNE = false
		c.insn.segmentOverride = segNone
	}
}

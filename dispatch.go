// dispatch.go - populates opTable and groupTable: every opcode's shape
// (ModR/M? width? immediate? group page?) and its handler.
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package i8086

func init() {
	// Every opcode defaults to group=-1 (not a group page); wireGroups
	// below overwrites the twelve that are. Left unset, the zero value
	// (group 0) would make every undefined opcode alias GRP1.
	for i := range opTable {
		opTable[i].group = -1
	}

	wireALUFamily()
	wireIncDecPushPop()
	wireJcc()
	wireModRMForms()
	wireAccumulatorAndMisc()
	wireStringOps()
	wireImmediateMOV()
	wireControlFlow()
	wireBCDAndIO()
	wirePrefixesAndFlags()
	wireGroups()
}

// wireALUFamily wires the eight ALU-family opcode blocks (ADD, OR, ADC,
// SBB, AND, SUB, XOR, CMP) and their per-family extra pair of opcodes
// (segment PUSH/POP for ADD/OR/ADC/SBB; segment-override prefix and a
// BCD adjust for AND/SUB/XOR/CMP).
func wireALUFamily() {
	type family struct {
		base        int
		id          aluID
		extra6      OpHandler
		extra6IsPfx bool
		extra7      OpHandler
	}
	families := []family{
		{0x00, aluADD, pushSeg(segES), false, popSeg(segES)},
		{0x08, aluOR, pushSeg(segCS), false, nil}, // 0x0F (POP CS) intentionally unwired
		{0x10, aluADC, pushSeg(segSS), false, popSeg(segSS)},
		{0x18, aluSBB, pushSeg(segDS), false, popSeg(segDS)},
		{0x20, aluAND, segOverride(segES), true, (*CPU).execDaa},
		{0x28, aluSUB, segOverride(segCS), true, (*CPU).execDas},
		{0x30, aluXOR, segOverride(segSS), true, (*CPU).execAaa},
		{0x38, aluCMP, segOverride(segDS), true, (*CPU).execAas},
	}
	for _, f := range families {
		id := f.id
		opTable[f.base+0] = opDesc{modrm: true, width16: false, group: -1, handler: func(c *CPU) { c.execAluRM(id, false) }}
		opTable[f.base+1] = opDesc{modrm: true, width16: true, group: -1, handler: func(c *CPU) { c.execAluRM(id, false) }}
		opTable[f.base+2] = opDesc{modrm: true, width16: false, group: -1, handler: func(c *CPU) { c.execAluRM(id, true) }}
		opTable[f.base+3] = opDesc{modrm: true, width16: true, group: -1, handler: func(c *CPU) { c.execAluRM(id, true) }}
		opTable[f.base+4] = opDesc{width16: false, imm: immU8, group: -1, handler: func(c *CPU) { c.execAluAccImm(id) }}
		opTable[f.base+5] = opDesc{width16: true, imm: immU16, group: -1, handler: func(c *CPU) { c.execAluAccImm(id) }}
		if f.extra6 != nil {
			opTable[f.base+6] = opDesc{group: -1, prefix: f.extra6IsPfx, handler: f.extra6}
		}
		if f.extra7 != nil {
			opTable[f.base+7] = opDesc{group: -1, handler: f.extra7}
		}
	}
}

func wireIncDecPushPop() {
	for r := 0; r < 8; r++ {
		opTable[0x40+r] = opDesc{width16: true, regFromOpcode: true, group: -1, handler: func(c *CPU) { c.execIncDecReg16(false) }}
		opTable[0x48+r] = opDesc{width16: true, regFromOpcode: true, group: -1, handler: func(c *CPU) { c.execIncDecReg16(true) }}
		opTable[0x50+r] = opDesc{width16: true, regFromOpcode: true, group: -1, handler: (*CPU).execPushReg16}
		opTable[0x58+r] = opDesc{width16: true, regFromOpcode: true, group: -1, handler: (*CPU).execPopReg16}
		opTable[0x90+r] = opDesc{width16: true, regFromOpcode: true, group: -1, handler: (*CPU).execXchgAXReg}
	}
	// 0x60-0x6F: undefined (80186+ PUSHA/POPA/BOUND/ARPL and the 0x60-6F
	// immediate-form block); left as the zero opDesc, which falls through
	// to the Undef callback.
}

func wireJcc() {
	for cc := 0; cc < 16; cc++ {
		opTable[0x70+cc] = opDesc{imm: immS8, group: -1, handler: (*CPU).execJcc}
	}
}

// wireModRMForms wires the ModR/M-bearing data/test opcodes that are not
// part of the ALU family or a group page: TEST, XCHG, MOV (register
// forms), LEA, MOV Sw<->Ew, POP Ev, LDS/LES.
func wireModRMForms() {
	opTable[0x84] = opDesc{modrm: true, width16: false, group: -1, handler: func(c *CPU) { c.execAluRM(aluTEST, false) }}
	opTable[0x85] = opDesc{modrm: true, width16: true, group: -1, handler: func(c *CPU) { c.execAluRM(aluTEST, false) }}
	opTable[0x86] = opDesc{modrm: true, width16: false, group: -1, handler: (*CPU).execXchgRM}
	opTable[0x87] = opDesc{modrm: true, width16: true, group: -1, handler: (*CPU).execXchgRM}
	opTable[0x88] = opDesc{modrm: true, width16: false, group: -1, handler: func(c *CPU) { c.execMovRM(false) }}
	opTable[0x89] = opDesc{modrm: true, width16: true, group: -1, handler: func(c *CPU) { c.execMovRM(false) }}
	opTable[0x8A] = opDesc{modrm: true, width16: false, group: -1, handler: func(c *CPU) { c.execMovRM(true) }}
	opTable[0x8B] = opDesc{modrm: true, width16: true, group: -1, handler: func(c *CPU) { c.execMovRM(true) }}
	opTable[0x8C] = opDesc{modrm: true, width16: true, segReg: true, group: -1, handler: (*CPU).execMovSegToRM}
	opTable[0x8D] = opDesc{modrm: true, width16: true, group: -1, handler: (*CPU).execLea}
	opTable[0x8E] = opDesc{modrm: true, width16: true, segReg: true, group: -1, handler: (*CPU).execMovRMToSeg}
	opTable[0x8F] = opDesc{modrm: true, width16: true, group: -1, handler: (*CPU).execPopEv}
	opTable[0xC4] = opDesc{modrm: true, width16: true, group: -1, handler: (*CPU).execLes}
	opTable[0xC5] = opDesc{modrm: true, width16: true, group: -1, handler: (*CPU).execLds}
	opTable[0xC6] = opDesc{modrm: true, width16: false, imm: immU8, group: -1, handler: (*CPU).execMovRMImm}
	opTable[0xC7] = opDesc{modrm: true, width16: true, imm: immU16, group: -1, handler: (*CPU).execMovRMImm}
}

func wireAccumulatorAndMisc() {
	opTable[0x98] = opDesc{group: -1, handler: (*CPU).execCbw}
	opTable[0x99] = opDesc{group: -1, handler: (*CPU).execCwd}
	opTable[0x9A] = opDesc{group: -1, handler: (*CPU).execCallFarDirect}
	opTable[0x9B] = opDesc{group: -1, handler: execWait}
	opTable[0x9C] = opDesc{group: -1, handler: (*CPU).execPushf}
	opTable[0x9D] = opDesc{group: -1, handler: (*CPU).execPopf}
	opTable[0x9E] = opDesc{group: -1, handler: (*CPU).execSahf}
	opTable[0x9F] = opDesc{group: -1, handler: (*CPU).execLahf}

	opTable[0xA0] = opDesc{imm: immU16, group: -1, handler: func(c *CPU) { c.execMovMoffs(true, false) }}
	opTable[0xA1] = opDesc{imm: immU16, group: -1, handler: func(c *CPU) { c.execMovMoffs(true, true) }}
	opTable[0xA2] = opDesc{imm: immU16, group: -1, handler: func(c *CPU) { c.execMovMoffs(false, false) }}
	opTable[0xA3] = opDesc{imm: immU16, group: -1, handler: func(c *CPU) { c.execMovMoffs(false, true) }}

	opTable[0xA8] = opDesc{width16: false, imm: immU8, group: -1, handler: func(c *CPU) { c.execAluAccImm(aluTEST) }}
	opTable[0xA9] = opDesc{width16: true, imm: immU16, group: -1, handler: func(c *CPU) { c.execAluAccImm(aluTEST) }}

	opTable[0xD7] = opDesc{group: -1, handler: (*CPU).execXlat}
}

func wireStringOps() {
	type pair struct {
		base    int
		element func(*CPU)
		compare bool
	}
	pairs := []pair{
		{0xA4, (*CPU).elementMovs, false},
		{0xA6, (*CPU).elementCmps, true},
		{0xAA, (*CPU).elementStos, false},
		{0xAC, (*CPU).elementLods, false},
		{0xAE, (*CPU).elementScas, true},
	}
	for _, p := range pairs {
		element, compare := p.element, p.compare
		opTable[p.base] = opDesc{widthFromBit0: true, group: -1, handler: func(c *CPU) { c.execStringOp(func() { element(c) }, compare) }}
		opTable[p.base+1] = opTable[p.base]
	}
}

func wireImmediateMOV() {
	for r := 0; r < 8; r++ {
		opTable[0xB0+r] = opDesc{width16: false, imm: immU8, regFromOpcode: true, group: -1, handler: (*CPU).execMovRegImm}
		opTable[0xB8+r] = opDesc{width16: true, imm: immU16, regFromOpcode: true, group: -1, handler: (*CPU).execMovRegImm}
	}
}

func wireControlFlow() {
	opTable[0xC2] = opDesc{imm: immU16, group: -1, handler: func(c *CPU) { c.execRet(true) }}
	opTable[0xC3] = opDesc{group: -1, handler: func(c *CPU) { c.execRet(false) }}
	opTable[0xCA] = opDesc{imm: immU16, group: -1, handler: func(c *CPU) { c.execRetf(true) }}
	opTable[0xCB] = opDesc{group: -1, handler: func(c *CPU) { c.execRetf(false) }}
	opTable[0xCC] = opDesc{group: -1, handler: (*CPU).execInt3}
	opTable[0xCD] = opDesc{imm: immU8, group: -1, handler: (*CPU).execIntImm}
	opTable[0xCE] = opDesc{group: -1, handler: (*CPU).execInto}
	opTable[0xCF] = opDesc{group: -1, handler: (*CPU).execIret}

	opTable[0xE0] = opDesc{imm: immS8, group: -1, handler: func(c *CPU) { c.execLoop(0) }}
	opTable[0xE1] = opDesc{imm: immS8, group: -1, handler: func(c *CPU) { c.execLoop(1) }}
	opTable[0xE2] = opDesc{imm: immS8, group: -1, handler: func(c *CPU) { c.execLoop(2) }}
	opTable[0xE3] = opDesc{imm: immS8, group: -1, handler: func(c *CPU) { c.execLoop(3) }}

	opTable[0xE8] = opDesc{imm: immU16, group: -1, handler: (*CPU).execCallRel16}
	opTable[0xE9] = opDesc{imm: immU16, group: -1, handler: (*CPU).execJmpRel16}
	opTable[0xEA] = opDesc{group: -1, handler: (*CPU).execJmpFarDirect}
	opTable[0xEB] = opDesc{imm: immS8, group: -1, handler: (*CPU).execJmpRel8}
}

func wireBCDAndIO() {
	opTable[0xD4] = opDesc{imm: immU8, group: -1, handler: (*CPU).execAam}
	opTable[0xD5] = opDesc{imm: immU8, group: -1, handler: (*CPU).execAad}

	opTable[0xE4] = opDesc{imm: immU8, group: -1, handler: func(c *CPU) { c.execInImm(false) }}
	opTable[0xE5] = opDesc{imm: immU8, group: -1, handler: func(c *CPU) { c.execInImm(true) }}
	opTable[0xE6] = opDesc{imm: immU8, group: -1, handler: func(c *CPU) { c.execOutImm(false) }}
	opTable[0xE7] = opDesc{imm: immU8, group: -1, handler: func(c *CPU) { c.execOutImm(true) }}
	opTable[0xEC] = opDesc{group: -1, handler: func(c *CPU) { c.execInDX(false) }}
	opTable[0xED] = opDesc{group: -1, handler: func(c *CPU) { c.execInDX(true) }}
	opTable[0xEE] = opDesc{group: -1, handler: func(c *CPU) { c.execOutDX(false) }}
	opTable[0xEF] = opDesc{group: -1, handler: func(c *CPU) { c.execOutDX(true) }}
}

func wirePrefixesAndFlags() {
	// 0x26/0x2E/0x36/0x3E (the ES/CS/SS/DS segment-override prefixes) are
	// wired in wireALUFamily as the AND/SUB/XOR/CMP family's extra6 slot.

	opTable[0xF0] = opDesc{group: -1, prefix: true, handler: execLock}
	opTable[0xF2] = opDesc{group: -1, prefix: true, handler: execRepne}
	opTable[0xF3] = opDesc{group: -1, prefix: true, handler: execRep}

	opTable[0xF4] = opDesc{group: -1, handler: func(c *CPU) { c.Halted = true }}
	opTable[0xF5] = opDesc{group: -1, handler: (*CPU).execCmc}
	opTable[0xF8] = opDesc{group: -1, handler: (*CPU).execClc}
	opTable[0xF9] = opDesc{group: -1, handler: (*CPU).execStc}
	opTable[0xFA] = opDesc{group: -1, handler: (*CPU).execCli}
	opTable[0xFB] = opDesc{group: -1, handler: (*CPU).execSti}
	opTable[0xFC] = opDesc{group: -1, handler: (*CPU).execCld}
	opTable[0xFD] = opDesc{group: -1, handler: (*CPU).execStd}
}

// wireGroups wires the twelve group opcodes (0x80-0x83, 0xD0-0xD3,
// 0xF6-0xF7, 0xFE-0xFF) and their 96-slot groupTable entries.
func wireGroups() {
	opTable[0x80] = opDesc{modrm: true, width16: false, imm: immU8, group: grpALUib}
	opTable[0x81] = opDesc{modrm: true, width16: true, imm: immU16, group: grpALUiv}
	opTable[0x82] = opDesc{modrm: true, width16: false, imm: immU8, group: grpALUib2}
	opTable[0x83] = opDesc{modrm: true, width16: true, imm: immS8, group: grpALUibS}
	for _, g := range []int{grpALUib, grpALUiv, grpALUib2, grpALUibS} {
		imm := opTable[0x80+grpOpcodeOffset(g)].imm
		for reg := 0; reg < 8; reg++ {
			groupTable[g*8+reg] = opDesc{imm: imm, handler: (*CPU).execGroup1}
		}
	}

	opTable[0xD0] = opDesc{modrm: true, width16: false, group: grpShiftB1}
	opTable[0xD1] = opDesc{modrm: true, width16: true, group: grpShiftW1}
	opTable[0xD2] = opDesc{modrm: true, width16: false, group: grpShiftBC}
	opTable[0xD3] = opDesc{modrm: true, width16: true, group: grpShiftWC}
	for reg := 0; reg < 8; reg++ {
		groupTable[grpShiftB1*8+reg] = opDesc{handler: func(c *CPU) { c.execShiftRotate(1) }}
		groupTable[grpShiftW1*8+reg] = opDesc{handler: func(c *CPU) { c.execShiftRotate(1) }}
		groupTable[grpShiftBC*8+reg] = opDesc{handler: func(c *CPU) { c.execShiftRotate(c.CL()) }}
		groupTable[grpShiftWC*8+reg] = opDesc{handler: func(c *CPU) { c.execShiftRotate(c.CL()) }}
	}

	opTable[0xF6] = opDesc{modrm: true, width16: false, group: grp3b}
	opTable[0xF7] = opDesc{modrm: true, width16: true, group: grp3w}
	wireGroup3(grp3b, immU8)
	wireGroup3(grp3w, immU16)

	opTable[0xFE] = opDesc{modrm: true, width16: false, group: grp4}
	groupTable[grp4*8+0] = opDesc{handler: (*CPU).execIncDecRM}
	groupTable[grp4*8+1] = opDesc{handler: (*CPU).execIncDecRM}

	opTable[0xFF] = opDesc{modrm: true, width16: true, group: grp5}
	groupTable[grp5*8+0] = opDesc{handler: (*CPU).execIncDecRM}
	groupTable[grp5*8+1] = opDesc{handler: (*CPU).execIncDecRM}
	groupTable[grp5*8+2] = opDesc{handler: (*CPU).execCallNearIndirect}
	groupTable[grp5*8+3] = opDesc{handler: (*CPU).execCallFarIndirect}
	groupTable[grp5*8+4] = opDesc{handler: (*CPU).execJmpNearIndirect}
	groupTable[grp5*8+5] = opDesc{handler: (*CPU).execJmpFarIndirect}
	groupTable[grp5*8+6] = opDesc{handler: (*CPU).execPushEv}
}

func wireGroup3(group int, wordImm immKind) {
	groupTable[group*8+0] = opDesc{imm: wordImm, handler: (*CPU).execTestGroup3}
	groupTable[group*8+1] = opDesc{imm: wordImm, handler: (*CPU).execTestGroup3}
	groupTable[group*8+2] = opDesc{handler: (*CPU).execNotNeg}
	groupTable[group*8+3] = opDesc{handler: (*CPU).execNotNeg}
	groupTable[group*8+4] = opDesc{handler: (*CPU).execMulDiv}
	groupTable[group*8+5] = opDesc{handler: (*CPU).execMulDiv}
	groupTable[group*8+6] = opDesc{handler: (*CPU).execMulDiv}
	groupTable[group*8+7] = opDesc{handler: (*CPU).execMulDiv}
}

func grpOpcodeOffset(g int) int {
	switch g {
	case grpALUib:
		return 0
	case grpALUiv:
		return 1
	case grpALUib2:
		return 2
	default:
		return 3
	}
}

// modrm_test.go - ModR/M effective-address decode tests
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package i8086

import "testing"

func TestDecodeModRMRegisterMode(t *testing.T) {
	cpu, _ := newTestCPU()

	// mod=11 reg=3 rm=5
	cpu.insn.modrm = 0xDD
	needDisp, _ := cpu.decodeModRM()

	if needDisp {
		t.Fatal("register-mode ModR/M must never need a displacement")
	}
	if cpu.insn.isMemory {
		t.Fatal("mod=3 must decode as a register operand, not memory")
	}
	if cpu.insn.regField != 3 || cpu.insn.rm != 5 {
		t.Fatalf("regField=%d rm=%d, want 3,5", cpu.insn.regField, cpu.insn.rm)
	}
}

func TestDecodeModRMBaseIndexTable(t *testing.T) {
	cpu, _ := newTestCPU()
	cpu.BX, cpu.SI, cpu.DI, cpu.BP = 0x1000, 0x0010, 0x0020, 0x2000

	cases := []struct {
		rm   byte
		want uint16
	}{
		{0, cpu.BX + cpu.SI},
		{1, cpu.BX + cpu.DI},
		{2, cpu.BP + cpu.SI},
		{3, cpu.BP + cpu.DI},
		{4, cpu.SI},
		{5, cpu.DI},
		{7, cpu.BX},
	}
	for _, tc := range cases {
		cpu.insn = insnState{segmentOverride: segNone}
		cpu.insn.modrm = tc.rm // mod=00, reg=0, rm=tc.rm
		cpu.decodeModRM()
		if cpu.insn.ea16 != tc.want {
			t.Errorf("rm=%d: ea16 = 0x%04X, want 0x%04X", tc.rm, cpu.insn.ea16, tc.want)
		}
	}
}

func TestDecodeModRMDirectAddressSpecialCase(t *testing.T) {
	cpu, _ := newTestCPU()

	// mod=00, reg=0, rm=6: displacement-only direct address
	cpu.insn = insnState{segmentOverride: segNone}
	cpu.insn.modrm = 0x06
	needDisp, dispSigned := cpu.decodeModRM()

	if !needDisp || dispSigned {
		t.Fatal("mod=0,rm=6 must fetch an unsigned disp16")
	}
	if cpu.insn.ea16 != 0 {
		t.Fatalf("ea16 = 0x%04X before the displacement is applied, want 0", cpu.insn.ea16)
	}
	if cpu.insn.segmentOverride != segDS {
		t.Fatalf("direct address must default to DS, got %d", cpu.insn.segmentOverride)
	}
}

func TestDecodeModRMDefaultSegmentPicksSSForBP(t *testing.T) {
	cpu, _ := newTestCPU()

	// mod=00, rm=2: [BP+SI], a BP-based mode defaults to SS
	cpu.insn = insnState{segmentOverride: segNone}
	cpu.insn.modrm = 0x02
	cpu.decodeModRM()
	if cpu.insn.segmentOverride != segSS {
		t.Fatalf("[BP+SI] must default to SS, got %d", cpu.insn.segmentOverride)
	}

	// mod=00, rm=0: [BX+SI], not BP-based, defaults to DS
	cpu.insn = insnState{segmentOverride: segNone}
	cpu.insn.modrm = 0x00
	cpu.decodeModRM()
	if cpu.insn.segmentOverride != segDS {
		t.Fatalf("[BX+SI] must default to DS, got %d", cpu.insn.segmentOverride)
	}
}

func TestDecodeModRMHonorsExistingSegmentOverride(t *testing.T) {
	cpu, _ := newTestCPU()

	// An ES: prefix already set segmentOverride before the ModR/M byte is
	// decoded; decodeModRM must not clobber it even for a BP-based mode.
	cpu.insn = insnState{segmentOverride: segES}
	cpu.insn.modrm = 0x02 // [BP+SI]
	cpu.decodeModRM()
	if cpu.insn.segmentOverride != segES {
		t.Fatalf("segment override ES was clobbered, got %d", cpu.insn.segmentOverride)
	}
}

func TestDecodeModRMDisplacementKinds(t *testing.T) {
	cpu, _ := newTestCPU()

	// mod=01: disp8, sign-extended
	cpu.insn = insnState{segmentOverride: segNone}
	cpu.insn.modrm = 0x40 // mod=01 reg=0 rm=0 ([BX+SI]+disp8)
	needDisp, dispSigned := cpu.decodeModRM()
	if !needDisp || !dispSigned {
		t.Fatal("mod=1 must need a signed disp8")
	}

	// mod=10: disp16, unsigned
	cpu.insn = insnState{segmentOverride: segNone}
	cpu.insn.modrm = 0x80 // mod=10 reg=0 rm=0
	needDisp, dispSigned = cpu.decodeModRM()
	if !needDisp || dispSigned {
		t.Fatal("mod=2 must need an unsigned disp16")
	}
}

func TestApplyDisplacementWrapsTo16Bits(t *testing.T) {
	cpu, _ := newTestCPU()

	cpu.insn.ea16 = 0x0002
	cpu.applyDisplacement(int32(int8(-4)))
	if cpu.insn.ea16 != 0xFFFE {
		t.Fatalf("ea16 = 0x%04X, want 0xFFFE (2 + (-4) wraps)", cpu.insn.ea16)
	}
	if cpu.insn.addr != 0xFFFE {
		t.Fatalf("addr must track ea16 before segment resolution, got 0x%X", cpu.insn.addr)
	}
}

func TestResolveSegmentUsesOverrideOrDefaultsToDS(t *testing.T) {
	cpu, _ := newTestCPU()
	cpu.setSeg(segDS, 0x1000)
	cpu.setSeg(segES, 0x2000)

	cpu.insn = insnState{segmentOverride: segNone}
	cpu.insn.ea16 = 0x0010
	cpu.resolveSegment()
	if want := linear(cpu.seg[segDS].base, 0x0010); cpu.insn.addr != want {
		t.Fatalf("addr = 0x%X, want 0x%X (DS default)", cpu.insn.addr, want)
	}

	cpu.insn.segmentOverride = segES
	cpu.resolveSegment()
	if want := linear(cpu.seg[segES].base, 0x0010); cpu.insn.addr != want {
		t.Fatalf("addr = 0x%X, want 0x%X (ES override)", cpu.insn.addr, want)
	}
}

func TestEffectiveAddr16SurvivesSegmentResolution(t *testing.T) {
	cpu, _ := newTestCPU()
	cpu.setSeg(segDS, 0x1000)

	cpu.insn = insnState{segmentOverride: segNone}
	cpu.insn.ea16 = 0x0234
	cpu.resolveSegment()

	// LEA must read back the raw 16-bit offset, not the resolved linear
	// address the segment produced.
	if got := cpu.effectiveAddr16(); got != 0x0234 {
		t.Fatalf("effectiveAddr16() = 0x%04X, want 0x0234", got)
	}
	if cpu.insn.addr == uint32(cpu.insn.ea16) && cpu.seg[segDS].base != 0 {
		t.Fatal("resolveSegment did not fold in the segment base")
	}
}

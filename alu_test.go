// alu_test.go - ALU primitive and flag-formula tests
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package i8086

import "testing"

func TestAddFlags(t *testing.T) {
	cpu, bus := newTestCPU()

	// ADD AL,imm8: 0x04 ib
	cpu.load(bus, 0, 0x04, 0x01)
	cpu.SetAL(0xFF)
	cpu.step()

	if cpu.AL() != 0x00 {
		t.Fatalf("AL = 0x%02X, want 0x00", cpu.AL())
	}
	if !cpu.Flags.C {
		t.Error("expected carry set on 0xFF+1 overflow")
	}
	if !cpu.Flags.Z {
		t.Error("expected zero flag set")
	}
	if !cpu.Flags.A {
		t.Error("expected aux-carry set (0xF+0x1 carries out of low nibble)")
	}
}

func TestSubBorrow(t *testing.T) {
	cpu, bus := newTestCPU()

	// SUB AL,imm8: 0x2C ib
	cpu.load(bus, 0, 0x2C, 0x01)
	cpu.SetAL(0x00)
	cpu.step()

	if cpu.AL() != 0xFF {
		t.Fatalf("AL = 0x%02X, want 0xFF", cpu.AL())
	}
	if !cpu.Flags.C {
		t.Error("expected borrow (carry) set on 0-1")
	}
	if !cpu.Flags.S {
		t.Error("expected sign flag set")
	}
}

func TestIncDoesNotTouchCarry(t *testing.T) {
	cpu, bus := newTestCPU()

	cpu.Flags.C = true
	// INC AX: 0x40
	cpu.load(bus, 0, 0x40)
	cpu.AX = 0xFFFF
	cpu.step()

	if cpu.AX != 0x0000 {
		t.Fatalf("AX = 0x%04X, want 0x0000", cpu.AX)
	}
	if !cpu.Flags.C {
		t.Error("INC must not clear Carry (spec: INC/DEC do not update Carry)")
	}
}

func TestLogicClearsCarryAndOverflow(t *testing.T) {
	cpu, bus := newTestCPU()

	cpu.Flags.C = true
	cpu.Flags.V = true
	// OR AL,imm8: 0x0C
	cpu.load(bus, 0, 0x0C, 0x0F)
	cpu.SetAL(0xF0)
	cpu.step()

	if cpu.AL() != 0xFF {
		t.Fatalf("AL = 0x%02X, want 0xFF", cpu.AL())
	}
	if cpu.Flags.C || cpu.Flags.V {
		t.Error("OR must clear both Carry and Overflow")
	}
	if !cpu.Flags.P {
		t.Error("0xFF has even parity, expected P set")
	}
}

func TestCmpDoesNotWriteBack(t *testing.T) {
	cpu, bus := newTestCPU()

	// CMP AL,imm8: 0x3C
	cpu.load(bus, 0, 0x3C, 0x05)
	cpu.SetAL(0x05)
	cpu.step()

	if cpu.AL() != 0x05 {
		t.Fatalf("CMP must not modify its destination, AL = 0x%02X", cpu.AL())
	}
	if !cpu.Flags.Z {
		t.Error("expected zero flag set for CMP 5,5")
	}
}

func TestGroup1ImmediateSignExtend(t *testing.T) {
	cpu, bus := newTestCPU()

	// ADD AX, -1 (0x83 /0 ib, sign-extended)
	modrm := byte(0xC0) // mod=11, reg=0 (ADD), rm=0 (AX)
	cpu.load(bus, 0, 0x83, modrm, 0xFF)
	cpu.AX = 1
	cpu.step()

	if cpu.AX != 0 {
		t.Fatalf("AX = 0x%04X, want 0x0000 (1 + sign-extended -1)", cpu.AX)
	}
	if !cpu.Flags.Z {
		t.Error("expected zero flag")
	}
}

func TestNotNoFlagChange(t *testing.T) {
	cpu, bus := newTestCPU()

	cpu.Flags.Z = true
	// NOT AX: GRP3 0xF7 /2, mod=11 rm=0
	cpu.load(bus, 0, 0xF7, 0xD0)
	cpu.AX = 0x0000
	cpu.step()

	if cpu.AX != 0xFFFF {
		t.Fatalf("AX = 0x%04X, want 0xFFFF", cpu.AX)
	}
	if !cpu.Flags.Z {
		t.Error("NOT must not touch flags")
	}
}

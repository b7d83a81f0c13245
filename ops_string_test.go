// ops_string_test.go - string-op repeat and interruptibility tests
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package i8086

import "testing"

func TestRepMovsbCopiesCxBytes(t *testing.T) {
	cpu, bus := newTestCPU()

	// REP MOVSB: 0xF3 0xA4
	cpu.load(bus, 0, 0xF3, 0xA4)
	for i := 0; i < 4; i++ {
		bus.mem[0x2000+i] = byte(0xA0 + i)
	}
	cpu.SI, cpu.DI = 0x2000, 0x3000
	cpu.CX = 4
	cpu.step()

	for i := 0; i < 4; i++ {
		if got := bus.mem[0x3000+i]; got != byte(0xA0+i) {
			t.Fatalf("dst[%d] = 0x%02X, want 0x%02X", i, got, 0xA0+i)
		}
	}
	if cpu.CX != 0 {
		t.Fatalf("CX = %d, want 0", cpu.CX)
	}
	if cpu.SI != 0x2004 || cpu.DI != 0x3004 {
		t.Fatalf("SI:DI = %04X:%04X, want 2004:3004", cpu.SI, cpu.DI)
	}
}

func TestRepMovsbVacuousWhenCxZero(t *testing.T) {
	cpu, bus := newTestCPU()

	cpu.load(bus, 0, 0xF3, 0xA4)
	bus.mem[0x2000] = 0xFF
	cpu.SI, cpu.DI = 0x2000, 0x3000
	cpu.CX = 0
	cpu.step()

	if bus.mem[0x3000] != 0 {
		t.Fatal("REP MOVSB with CX=0 must not touch memory")
	}
	if cpu.SI != 0x2000 || cpu.DI != 0x3000 {
		t.Fatal("REP MOVSB with CX=0 must not advance SI/DI")
	}
}

func TestRepMovsbInterruptibleBetweenElements(t *testing.T) {
	cpu, bus := newTestCPU()

	cpu.load(bus, 0, 0xF3, 0xA4)
	cpu.SI, cpu.DI = 0x2000, 0x3000
	cpu.CX = 3

	cpu.Tick() // consumes the 0xF3 REP prefix byte, arming the repeat latch
	if cpu.IP != 1 {
		t.Fatalf("IP = %d after the prefix tick, want 1", cpu.IP)
	}

	cpu.Tick() // one MOVSB element
	if cpu.AtInstructionBoundary() {
		t.Fatal("mid-repeat Tick must not report an instruction boundary")
	}
	if cpu.CX != 2 {
		t.Fatalf("CX = %d after one element, want 2", cpu.CX)
	}
	if cpu.IP != 1 {
		t.Fatalf("IP = %d, want 1 (rewound to the opcode byte, not past it)", cpu.IP)
	}

	// An interrupt becomes deliverable right here because the pipeline
	// re-enters checkInterrupt() before the opcode byte is refetched.
	// The handler is a single HLT so the same Tick that delivers the
	// interrupt also executes exactly one instruction of it.
	cpu.Nmi()
	bus.Write16(2*4, 0x0400)
	bus.Write16(2*4+2, 0x0000)
	bus.mem[0x0400] = 0xF4 // HLT
	cpu.SP = 0x1000
	cpu.Tick()

	if !cpu.Halted {
		t.Fatal("expected the NMI handler's HLT to have run")
	}
	if cpu.IP != 0x0401 {
		t.Fatalf("IP = 0x%04X, want 0x0401 (one past the NMI handler's HLT)", cpu.IP)
	}
}

func TestRepeScasStopsOnMismatch(t *testing.T) {
	cpu, bus := newTestCPU()

	// REPE SCASB: 0xF3 0xAE
	cpu.load(bus, 0, 0xF3, 0xAE)
	bus.mem[0x3000] = 0x41
	bus.mem[0x3001] = 0x41
	bus.mem[0x3002] = 0x42
	cpu.DI = 0x3000
	cpu.SetAL(0x41)
	cpu.CX = 5
	cpu.step() // runs the whole repeat chain: step() stops only at a real instruction boundary

	if cpu.CX != 2 {
		t.Fatalf("CX = %d, want 2 (stopped after the third compare mismatched)", cpu.CX)
	}
	if cpu.DI != 0x3003 {
		t.Fatalf("DI = 0x%04X, want 0x3003", cpu.DI)
	}
}

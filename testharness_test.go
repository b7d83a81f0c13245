// testharness_test.go - shared test memory/port bus for package i8086 tests
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package i8086

// testBus is a flat 1 MiB RAM plus a port space that reads back the last
// value written to each port (0 if never written), the minimum
// environment Tick needs to run. Kept local to the test package rather
// than importing the machine package, which this package cannot depend on.
type testBus struct {
	mem  [1 << 20]byte
	outs map[uint16]uint16
}

func newTestBus() *testBus {
	return &testBus{outs: make(map[uint16]uint16)}
}

func (b *testBus) Read8(addr uint32) byte    { return b.mem[addr&0xFFFFF] }
func (b *testBus) Write8(addr uint32, v byte) { b.mem[addr&0xFFFFF] = v }

func (b *testBus) Read16(addr uint32) uint16 {
	lo := b.mem[addr&0xFFFFF]
	hi := b.mem[(addr+1)&0xFFFFF]
	return uint16(lo) | uint16(hi)<<8
}

func (b *testBus) Write16(addr uint32, v uint16) {
	b.mem[addr&0xFFFFF] = byte(v)
	b.mem[(addr+1)&0xFFFFF] = byte(v >> 8)
}

func (b *testBus) In8(port uint16) byte     { return byte(b.outs[port]) }
func (b *testBus) Out8(port uint16, v byte) { b.outs[port] = uint16(v) }
func (b *testBus) In16(port uint16) uint16  { return b.outs[port] }
func (b *testBus) Out16(port uint16, v uint16) { b.outs[port] = v }

// newTestCPU returns a CPU wired to a fresh testBus, with CS:IP pointed at
// linear 0 (rather than the 0xFFFF:0 reset vector) so tests can load code
// at address 0 without the caller having to think about segment wraparound.
func newTestCPU() (*CPU, *testBus) {
	bus := newTestBus()
	cpu := NewCPU()
	cpu.Mem = bus
	cpu.Ports = bus
	cpu.SetCS(0)
	cpu.IP = 0
	cpu.ShadowCS = cpu.CS()
	cpu.ShadowIP = cpu.IP
	return cpu, bus
}

// load writes code starting at linear address addr; it executes nothing.
func (c *CPU) load(bus *testBus, addr uint16, code ...byte) {
	for i, b := range code {
		bus.mem[addr+uint16(i)] = b
	}
}

// step runs exactly one instruction, ticking through any prefix bytes and
// string-op elements until the next real boundary.
func (c *CPU) step() {
	for {
		c.Tick()
		if c.AtInstructionBoundary() {
			return
		}
	}
}

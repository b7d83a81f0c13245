// bus.go - a minimal flat-memory, flat-port environment for the i8086 core
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

// Package machine provides the simplest backing environment the i8086 core
// can run against: a flat byte-addressable RAM with an A20 gate mask, and
// two flat port address spaces (8-bit and 16-bit) that return all-ones for
// any port nothing has been wired to. It implements i8086.MemoryBus and
// i8086.PortBus directly, mirroring ram.c/iomux.c's behavior rather than
// modeling any real chipset.
package machine

// RAM is a flat byte-addressable memory region with a power-of-two length.
// Reads and writes past the end wrap via the mask, the way ram.c's
// ram_peek/ram_poke index "addr & mask" instead of bounds-checking.
type RAM struct {
	bytes []byte
	mask  uint32
	a20   bool // true: A20 gate enabled (address bit 20 passes through); false: bit 20 is forced low
}

// NewRAM allocates a RAM region of the given length, which must be a power
// of two (the default, 1 MiB, matches test.c's "ram_alloc(&ram, 1*1024*1024)").
func NewRAM(length uint32) *RAM {
	if length == 0 || length&(length-1) != 0 {
		panic("machine: RAM length must be a power of two")
	}
	return &RAM{bytes: make([]byte, length), mask: length - 1, a20: true}
}

// SetA20Gate enables or disables the A20 gate (test.c: "memory_a20gate(&cpu.memory.mem, false)").
// With the gate disabled, address bit 20 is forced to zero, wrapping any
// access at or above 1 MiB back into the first megabyte.
func (r *RAM) SetA20Gate(enabled bool) { r.a20 = enabled }

func (r *RAM) mangle(addr uint32) uint32 {
	if !r.a20 {
		addr &= 0xFFFFF
	}
	return addr & r.mask
}

func (r *RAM) Read8(addr uint32) byte {
	return r.bytes[r.mangle(addr)]
}

func (r *RAM) Write8(addr uint32, v byte) {
	r.bytes[r.mangle(addr)] = v
}

func (r *RAM) Read16(addr uint32) uint16 {
	lo := r.bytes[r.mangle(addr)]
	hi := r.bytes[r.mangle(addr+1)]
	return uint16(lo) | uint16(hi)<<8
}

func (r *RAM) Write16(addr uint32, v uint16) {
	r.bytes[r.mangle(addr)] = byte(v)
	r.bytes[r.mangle(addr+1)] = byte(v >> 8)
}

// At returns the backing slice position for addr, honoring the A20 gate and
// wrap mask, for callers that need to peek/poke raw bytes directly rather
// than going through Read8/Write8.
func (r *RAM) At(addr uint32) uint32 { return r.mangle(addr) }

// Bytes exposes the backing slice for direct inspection, e.g. a test
// fixture loader placing an image at a fixed address.
func (r *RAM) Bytes() []byte { return r.bytes }

// portCount sizes the two flat port-handler arrays in Ports; an unmapped
// port (a nil entry) silently returns all-ones, matching test.c's ioport_rdwr stub
// ("*v = 0xffffffffu") used any time nothing more specific is wired in.
const portCount = 65536

type portHandler8 struct {
	read  func(port uint16) byte
	write func(port uint16, v byte)
}

type portHandler16 struct {
	read  func(port uint16) uint16
	write func(port uint16, v uint16)
}

// Ports is the two 16-bit-addressed port spaces (byte-wide and word-wide)
// the core's PortBus selects between by instruction width.
type Ports struct {
	b [portCount]*portHandler8
	w [portCount]*portHandler16
}

// NewPorts returns a Ports with every port unmapped.
func NewPorts() *Ports { return &Ports{} }

// Connect8 wires a byte-wide port handler at the given port.
func (p *Ports) Connect8(port uint16, read func(uint16) byte, write func(uint16, byte)) {
	p.b[port] = &portHandler8{read: read, write: write}
}

// Connect16 wires a word-wide port handler at the given port.
func (p *Ports) Connect16(port uint16, read func(uint16) uint16, write func(uint16, uint16)) {
	p.w[port] = &portHandler16{read: read, write: write}
}

func (p *Ports) In8(port uint16) byte {
	if h := p.b[port]; h != nil {
		return h.read(port)
	}
	return 0xFF
}

func (p *Ports) Out8(port uint16, v byte) {
	if h := p.b[port]; h != nil {
		h.write(port, v)
	}
}

func (p *Ports) In16(port uint16) uint16 {
	if h := p.w[port]; h != nil {
		return h.read(port)
	}
	return 0xFFFF
}

func (p *Ports) Out16(port uint16, v uint16) {
	if h := p.w[port]; h != nil {
		h.write(port, v)
	}
}

// Machine bundles a RAM and a Ports into the pair the i8086 core's Mem and
// Ports fields expect, the way test.c's main() assembles "cpu.memory.mem"
// and "cpu.iob"/"cpu.iow" before the first tick.
type Machine struct {
	RAM   *RAM
	Ports *Ports
}

// NewMachine returns a Machine with a 1 MiB RAM (A20 gate enabled) and an
// empty port space, ready to be assigned to a CPU's Mem/Ports fields.
func NewMachine() *Machine {
	return &Machine{RAM: NewRAM(1 << 20), Ports: NewPorts()}
}

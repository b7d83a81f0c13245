// disasm.go - a minimal 8086 disassembler for test-driver diagnostics
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

// Package disasm renders raw 8086 machine code into one-line mnemonics for
// diagnostic output. It is not exhaustive -- it exists so a failing test
// case can be reported as "CMP AX,[BX+SI]" instead of a hex dump -- and
// falls back to a byte-literal form for anything it does not recognize.
package disasm

import (
	"fmt"
	"strings"
)

var reg16 = [8]string{"AX", "CX", "DX", "BX", "SP", "BP", "SI", "DI"}
var reg8 = [8]string{"AL", "CL", "DL", "BL", "AH", "CH", "DH", "BH"}
var segRegs = [4]string{"ES", "CS", "SS", "DS"}
var cond = [16]string{
	"O", "NO", "B", "NB", "Z", "NZ", "BE", "A",
	"S", "NS", "P", "NP", "L", "GE", "LE", "G",
}

// rm16Table is the 8086's 16-bit addressing-mode base+index expression for
// ModR/M.rm values 0..6 (rm==6 at mod==0 is the direct-address special case,
// handled separately); unlike 386-and-later ModR/M there is no SIB byte and
// no 32-bit base register set.
var rm16Table = [8]string{"BX+SI", "BX+DI", "BP+SI", "BP+DI", "SI", "DI", "BP", "BX"}

type decoder struct {
	code []byte
	pos  int
}

func (d *decoder) u8() (byte, bool) {
	if d.pos >= len(d.code) {
		return 0, false
	}
	v := d.code[d.pos]
	d.pos++
	return v, true
}

func (d *decoder) u16() (uint16, bool) {
	if d.pos+1 >= len(d.code) {
		return 0, false
	}
	v := uint16(d.code[d.pos]) | uint16(d.code[d.pos+1])<<8
	d.pos += 2
	return v, true
}

// modrm decodes a ModR/M byte into (reg field text, rm operand text). wide
// selects the 16- vs 8-bit register name for both the reg field and a
// register-direct rm.
func (d *decoder) modrm(wide bool) (string, string, bool) {
	b, ok := d.u8()
	if !ok {
		return "", "", false
	}
	mod := b >> 6
	regF := (b >> 3) & 7
	rm := b & 7

	regNames := reg8
	if wide {
		regNames = reg16
	}
	regText := regNames[regF]

	if mod == 3 {
		return regText, regNames[rm], true
	}

	var base string
	if mod == 0 && rm == 6 {
		disp, ok := d.u16()
		if !ok {
			return regText, "[?]", false
		}
		base = fmt.Sprintf("0x%04X", disp)
	} else {
		base = rm16Table[rm]
		switch mod {
		case 1:
			disp, ok := d.u8()
			if !ok {
				return regText, "[?]", false
			}
			if disp != 0 {
				base = fmt.Sprintf("%s+0x%02X", base, disp)
			}
		case 2:
			disp, ok := d.u16()
			if !ok {
				return regText, "[?]", false
			}
			if disp != 0 {
				base = fmt.Sprintf("%s+0x%04X", base, disp)
			}
		}
	}
	return regText, "[" + base + "]", true
}

// Decode disassembles one instruction starting at code[0], returning its
// mnemonic text and the number of bytes it consumed. addr is used only to
// render the target of relative jumps/calls. Truncated input yields a
// "DB 0xXX" fallback consuming exactly one byte; an opcode this
// disassembler does not know is rendered as "(opcode 0xXX)", also
// consuming exactly one byte.
func Decode(code []byte, addr uint32) (string, int) {
	d := &decoder{code: code}
	text, ok := decodeOne(d, addr)
	if !ok || d.pos == 0 {
		if len(code) == 0 {
			return "", 0
		}
		return fmt.Sprintf("DB 0x%02X", code[0]), 1
	}
	return text, d.pos
}

func decodeOne(d *decoder, addr uint32) (string, bool) {
	op, ok := d.u8()
	if !ok {
		return "", false
	}

	// ALU family: 8 groups of 6 opcodes (Eb,Gb / Ev,Gv / Gb,Eb / Gv,Ev / AL,Ib / AX,Iv).
	aluNames := [8]string{"ADD", "OR", "ADC", "SBB", "AND", "SUB", "XOR", "CMP"}
	if op < 0x40 && op&7 <= 5 {
		name := aluNames[op>>3]
		switch op & 7 {
		case 0:
			reg, rm, ok := d.modrm(false)
			return name + " " + rm + "," + reg, ok
		case 1:
			reg, rm, ok := d.modrm(true)
			return name + " " + rm + "," + reg, ok
		case 2:
			reg, rm, ok := d.modrm(false)
			return name + " " + reg + "," + rm, ok
		case 3:
			reg, rm, ok := d.modrm(true)
			return name + " " + reg + "," + rm, ok
		case 4:
			imm, ok := d.u8()
			return fmt.Sprintf("%s AL,0x%02X", name, imm), ok
		case 5:
			imm, ok := d.u16()
			return fmt.Sprintf("%s AX,0x%04X", name, imm), ok
		}
	}

	// Segment-register PUSH/POP interleaved through the ALU block (0x06, 0x07, ...).
	if op < 0x20 && (op&7) == 6 {
		return "PUSH " + segRegs[op>>3], true
	}
	if op < 0x20 && (op&7) == 7 && op>>3 != 1 {
		return "POP " + segRegs[op>>3], true
	}

	switch {
	case op >= 0x40 && op <= 0x47:
		return "INC " + reg16[op-0x40], true
	case op >= 0x48 && op <= 0x4F:
		return "DEC " + reg16[op-0x48], true
	case op >= 0x50 && op <= 0x57:
		return "PUSH " + reg16[op-0x50], true
	case op >= 0x58 && op <= 0x5F:
		return "POP " + reg16[op-0x58], true
	case op >= 0x70 && op <= 0x7F:
		rel, ok := d.u8()
		target := addr + uint32(d.pos) + uint32(int32(int8(rel)))
		return fmt.Sprintf("J%s 0x%04X", cond[op-0x70], target&0xFFFF), ok
	case op >= 0x91 && op <= 0x97:
		return "XCHG AX," + reg16[op-0x90], true
	case op >= 0xB0 && op <= 0xB7:
		imm, ok := d.u8()
		return fmt.Sprintf("MOV %s,0x%02X", reg8[op-0xB0], imm), ok
	case op >= 0xB8 && op <= 0xBF:
		imm, ok := d.u16()
		return fmt.Sprintf("MOV %s,0x%04X", reg16[op-0xB8], imm), ok
	}

	switch op {
	case 0x90:
		return "NOP", true
	case 0x98:
		return "CBW", true
	case 0x99:
		return "CWD", true
	case 0x9C:
		return "PUSHF", true
	case 0x9D:
		return "POPF", true
	case 0x9E:
		return "SAHF", true
	case 0x9F:
		return "LAHF", true
	case 0xC3:
		return "RET", true
	case 0xCB:
		return "RETF", true
	case 0xCC:
		return "INT3", true
	case 0xCF:
		return "IRET", true
	case 0xF4:
		return "HLT", true
	case 0xF5:
		return "CMC", true
	case 0xF8:
		return "CLC", true
	case 0xF9:
		return "STC", true
	case 0xFA:
		return "CLI", true
	case 0xFB:
		return "STI", true
	case 0xFC:
		return "CLD", true
	case 0xFD:
		return "STD", true
	case 0x88:
		reg, rm, ok := d.modrm(false)
		return "MOV " + rm + "," + reg, ok
	case 0x89:
		reg, rm, ok := d.modrm(true)
		return "MOV " + rm + "," + reg, ok
	case 0x8A:
		reg, rm, ok := d.modrm(false)
		return "MOV " + reg + "," + rm, ok
	case 0x8B:
		reg, rm, ok := d.modrm(true)
		return "MOV " + reg + "," + rm, ok
	case 0x8D:
		_, rm, ok := d.modrm(true)
		return "LEA ..., " + rm, ok
	case 0xE8:
		rel, ok := d.u16()
		target := addr + uint32(d.pos) + uint32(int32(int16(rel)))
		return fmt.Sprintf("CALL 0x%04X", target&0xFFFF), ok
	case 0xE9:
		rel, ok := d.u16()
		target := addr + uint32(d.pos) + uint32(int32(int16(rel)))
		return fmt.Sprintf("JMP 0x%04X", target&0xFFFF), ok
	case 0xEB:
		rel, ok := d.u8()
		target := addr + uint32(d.pos) + uint32(int32(int8(rel)))
		return fmt.Sprintf("JMP 0x%04X", target&0xFFFF), ok
	case 0xCD:
		imm, ok := d.u8()
		return fmt.Sprintf("INT 0x%02X", imm), ok
	}

	return strings.TrimSpace(fmt.Sprintf("(opcode 0x%02X)", op)), true
}

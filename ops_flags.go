// ops_flags.go - the single-flag set/clear instructions plus the FLAGS
// word transfer instructions (LAHF/SAHF/PUSHF/POPF)
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package i8086

func (c *CPU) execClc() { c.Flags.C = false }
func (c *CPU) execStc() { c.Flags.C = true }
func (c *CPU) execCmc() { c.Flags.C = !c.Flags.C }
func (c *CPU) execCli() { c.Flags.I = false }
func (c *CPU) execSti() { c.Flags.I = true }
func (c *CPU) execCld() { c.Flags.D = false }
func (c *CPU) execStd() { c.Flags.D = true }

// execLahf implements LAHF (0x9F): AH takes C,P,A,Z,S.
func (c *CPU) execLahf() { c.SetAH(c.Flags.ahByte()) }

// execSahf implements SAHF (0x9E): C,P,A,Z,S take AH, the rest of the
// flags are untouched.
func (c *CPU) execSahf() { c.Flags.setFromAHWord(c.AH()) }

// execPushf implements PUSHF (0x9C).
func (c *CPU) execPushf() { c.push16(c.Flags.Pack()) }

// execPopf implements POPF (0x9D).
func (c *CPU) execPopf() {
	c.Flags.SetFromWord(c.pop16())
}

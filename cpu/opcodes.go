package cpu

// instruction associates an opcode with its mnemonic, addressing mode
// and handler. A nil handler marks an undefined opcode.
type instruction struct {
	name string
	mode AddressMode
	fn   func(*CPU, target)
}

// ops is the dispatch table for the 151 documented opcodes, indexed by
// opcode byte.
var ops = [256]instruction{
	0x00: {"BRK", Implicit, brk},
	0x01: {"ORA", IndirectX, ora},
	0x05: {"ORA", ZeroPage, ora},
	0x06: {"ASL", ZeroPage, asl},
	0x08: {"PHP", Implicit, php},
	0x09: {"ORA", Immediate, ora},
	0x0A: {"ASL", Accumulator, asl},
	0x0D: {"ORA", Absolute, ora},
	0x0E: {"ASL", Absolute, asl},
	0x10: {"BPL", Relative, bpl},
	0x11: {"ORA", IndirectY, ora},
	0x15: {"ORA", ZeroPageX, ora},
	0x16: {"ASL", ZeroPageX, asl},
	0x18: {"CLC", Implicit, clc},
	0x19: {"ORA", AbsoluteY, ora},
	0x1D: {"ORA", AbsoluteX, ora},
	0x1E: {"ASL", AbsoluteX, asl},
	0x20: {"JSR", Absolute, jsr},
	0x21: {"AND", IndirectX, and},
	0x24: {"BIT", ZeroPage, bit},
	0x25: {"AND", ZeroPage, and},
	0x26: {"ROL", ZeroPage, rol},
	0x28: {"PLP", Implicit, plp},
	0x29: {"AND", Immediate, and},
	0x2A: {"ROL", Accumulator, rol},
	0x2C: {"BIT", Absolute, bit},
	0x2D: {"AND", Absolute, and},
	0x2E: {"ROL", Absolute, rol},
	0x30: {"BMI", Relative, bmi},
	0x31: {"AND", IndirectY, and},
	0x35: {"AND", ZeroPageX, and},
	0x36: {"ROL", ZeroPageX, rol},
	0x38: {"SEC", Implicit, sec},
	0x39: {"AND", AbsoluteY, and},
	0x3D: {"AND", AbsoluteX, and},
	0x3E: {"ROL", AbsoluteX, rol},
	0x40: {"RTI", Implicit, rti},
	0x41: {"EOR", IndirectX, eor},
	0x45: {"EOR", ZeroPage, eor},
	0x46: {"LSR", ZeroPage, lsr},
	0x48: {"PHA", Implicit, pha},
	0x49: {"EOR", Immediate, eor},
	0x4A: {"LSR", Accumulator, lsr},
	0x4C: {"JMP", Absolute, jmp},
	0x4D: {"EOR", Absolute, eor},
	0x4E: {"LSR", Absolute, lsr},
	0x50: {"BVC", Relative, bvc},
	0x51: {"EOR", IndirectY, eor},
	0x55: {"EOR", ZeroPageX, eor},
	0x56: {"LSR", ZeroPageX, lsr},
	0x58: {"CLI", Implicit, cli},
	0x59: {"EOR", AbsoluteY, eor},
	0x5D: {"EOR", AbsoluteX, eor},
	0x5E: {"LSR", AbsoluteX, lsr},
	0x60: {"RTS", Implicit, rts},
	0x61: {"ADC", IndirectX, adc},
	0x65: {"ADC", ZeroPage, adc},
	0x66: {"ROR", ZeroPage, ror},
	0x68: {"PLA", Implicit, pla},
	0x69: {"ADC", Immediate, adc},
	0x6A: {"ROR", Accumulator, ror},
	0x6C: {"JMP", Indirect, jmp},
	0x6D: {"ADC", Absolute, adc},
	0x6E: {"ROR", Absolute, ror},
	0x70: {"BVS", Relative, bvs},
	0x71: {"ADC", IndirectY, adc},
	0x75: {"ADC", ZeroPageX, adc},
	0x76: {"ROR", ZeroPageX, ror},
	0x78: {"SEI", Implicit, sei},
	0x79: {"ADC", AbsoluteY, adc},
	0x7D: {"ADC", AbsoluteX, adc},
	0x7E: {"ROR", AbsoluteX, ror},
	0x81: {"STA", IndirectX, sta},
	0x84: {"STY", ZeroPage, sty},
	0x85: {"STA", ZeroPage, sta},
	0x86: {"STX", ZeroPage, stx},
	0x88: {"DEY", Implicit, dey},
	0x8A: {"TXA", Implicit, txa},
	0x8C: {"STY", Absolute, sty},
	0x8D: {"STA", Absolute, sta},
	0x8E: {"STX", Absolute, stx},
	0x90: {"BCC", Relative, bcc},
	0x91: {"STA", IndirectY, sta},
	0x94: {"STY", ZeroPageX, sty},
	0x95: {"STA", ZeroPageX, sta},
	0x96: {"STX", ZeroPageY, stx},
	0x98: {"TYA", Implicit, tya},
	0x99: {"STA", AbsoluteY, sta},
	0x9A: {"TXS", Implicit, txs},
	0x9D: {"STA", AbsoluteX, sta},
	0xA0: {"LDY", Immediate, ldy},
	0xA1: {"LDA", IndirectX, lda},
	0xA2: {"LDX", Immediate, ldx},
	0xA4: {"LDY", ZeroPage, ldy},
	0xA5: {"LDA", ZeroPage, lda},
	0xA6: {"LDX", ZeroPage, ldx},
	0xA8: {"TAY", Implicit, tay},
	0xA9: {"LDA", Immediate, lda},
	0xAA: {"TAX", Implicit, tax},
	0xAC: {"LDY", Absolute, ldy},
	0xAD: {"LDA", Absolute, lda},
	0xAE: {"LDX", Absolute, ldx},
	0xB0: {"BCS", Relative, bcs},
	0xB1: {"LDA", IndirectY, lda},
	0xB4: {"LDY", ZeroPageX, ldy},
	0xB5: {"LDA", ZeroPageX, lda},
	0xB6: {"LDX", ZeroPageY, ldx},
	0xB8: {"CLV", Implicit, clv},
	0xB9: {"LDA", AbsoluteY, lda},
	0xBA: {"TSX", Implicit, tsx},
	0xBC: {"LDY", AbsoluteX, ldy},
	0xBD: {"LDA", AbsoluteX, lda},
	0xBE: {"LDX", AbsoluteY, ldx},
	0xC0: {"CPY", Immediate, cpy},
	0xC1: {"CMP", IndirectX, cmp},
	0xC4: {"CPY", ZeroPage, cpy},
	0xC5: {"CMP", ZeroPage, cmp},
	0xC6: {"DEC", ZeroPage, dec},
	0xC8: {"INY", Implicit, iny},
	0xC9: {"CMP", Immediate, cmp},
	0xCA: {"DEX", Implicit, dex},
	0xCC: {"CPY", Absolute, cpy},
	0xCD: {"CMP", Absolute, cmp},
	0xCE: {"DEC", Absolute, dec},
	0xD0: {"BNE", Relative, bne},
	0xD1: {"CMP", IndirectY, cmp},
	0xD5: {"CMP", ZeroPageX, cmp},
	0xD6: {"DEC", ZeroPageX, dec},
	0xD8: {"CLD", Implicit, cld},
	0xD9: {"CMP", AbsoluteY, cmp},
	0xDD: {"CMP", AbsoluteX, cmp},
	0xDE: {"DEC", AbsoluteX, dec},
	0xE0: {"CPX", Immediate, cpx},
	0xE1: {"SBC", IndirectX, sbc},
	0xE4: {"CPX", ZeroPage, cpx},
	0xE5: {"SBC", ZeroPage, sbc},
	0xE6: {"INC", ZeroPage, inc},
	0xE8: {"INX", Implicit, inx},
	0xE9: {"SBC", Immediate, sbc},
	0xEA: {"NOP", Implicit, nop},
	0xEC: {"CPX", Absolute, cpx},
	0xED: {"SBC", Absolute, sbc},
	0xEE: {"INC", Absolute, inc},
	0xF0: {"BEQ", Relative, beq},
	0xF1: {"SBC", IndirectY, sbc},
	0xF5: {"SBC", ZeroPageX, sbc},
	0xF6: {"INC", ZeroPageX, inc},
	0xF8: {"SED", Implicit, sed},
	0xF9: {"SBC", AbsoluteY, sbc},
	0xFD: {"SBC", AbsoluteX, sbc},
	0xFE: {"INC", AbsoluteX, inc},
}

// Loads and stores.

func lda(c *CPU, t target) {
	c.A = t.load(c)
	c.P.checkNZ(c.A)
}

func ldx(c *CPU, t target) {
	c.X = t.load(c)
	c.P.checkNZ(c.X)
}

func ldy(c *CPU, t target) {
	c.Y = t.load(c)
	c.P.checkNZ(c.Y)
}

func sta(c *CPU, t target) { t.store(c, c.A) }
func stx(c *CPU, t target) { t.store(c, c.X) }
func sty(c *CPU, t target) { t.store(c, c.Y) }

// Register transfers. TXS is the only one that leaves the flags alone.

func tax(c *CPU, _ target) {
	c.X = c.A
	c.P.checkNZ(c.X)
}

func tay(c *CPU, _ target) {
	c.Y = c.A
	c.P.checkNZ(c.Y)
}

func txa(c *CPU, _ target) {
	c.A = c.X
	c.P.checkNZ(c.A)
}

func tya(c *CPU, _ target) {
	c.A = c.Y
	c.P.checkNZ(c.A)
}

func tsx(c *CPU, _ target) {
	c.X = c.SP
	c.P.checkNZ(c.X)
}

func txs(c *CPU, _ target) {
	c.SP = c.X
}

// Stack operations.

func pha(c *CPU, _ target) { c.push8(c.A) }

// php pushes P with the Break bit set, as the real chip does for any
// push caused by an instruction.
func php(c *CPU, _ target) {
	c.push8(uint8(c.P) | 1<<pbitB)
}

func pla(c *CPU, _ target) {
	c.A = c.pull8()
	c.P.checkNZ(c.A)
}

func plp(c *CPU, _ target) { c.pullP() }

// Bitwise operations.

func and(c *CPU, t target) {
	c.A &= t.load(c)
	c.P.checkNZ(c.A)
}

func eor(c *CPU, t target) {
	c.A ^= t.load(c)
	c.P.checkNZ(c.A)
}

func ora(c *CPU, t target) {
	c.A |= t.load(c)
	c.P.checkNZ(c.A)
}

func bit(c *CPU, t target) {
	m := t.load(c)
	c.P.checkZ(c.A & m)
	c.P.writeBit(pbitV, m&(1<<6) != 0)
	c.P.writeBit(pbitN, m&(1<<7) != 0)
}

// Arithmetic.

// addc adds m and the carry into A. Decimal mode is not implemented,
// the flag is storage only.
func addc(c *CPU, m uint8) {
	sum := uint16(c.A) + uint16(m) + uint16(b2i(c.P.C()))
	c.P.checkCV(c.A, m, sum)
	c.A = uint8(sum)
	c.P.checkNZ(c.A)
}

func adc(c *CPU, t target) { addc(c, t.load(c)) }

// sbc is adc with the operand inverted, borrow being the complement of
// carry.
func sbc(c *CPU, t target) { addc(c, ^t.load(c)) }

func compare(c *CPU, r, m uint8) {
	c.P.writeBit(pbitC, r >= m)
	c.P.checkNZ(r - m)
}

func cmp(c *CPU, t target) { compare(c, c.A, t.load(c)) }
func cpx(c *CPU, t target) { compare(c, c.X, t.load(c)) }
func cpy(c *CPU, t target) { compare(c, c.Y, t.load(c)) }

// Increments and decrements.

func inc(c *CPU, t target) {
	v := t.load(c) + 1
	t.store(c, v)
	c.P.checkNZ(v)
}

func inx(c *CPU, _ target) {
	c.X++
	c.P.checkNZ(c.X)
}

func iny(c *CPU, _ target) {
	c.Y++
	c.P.checkNZ(c.Y)
}

func dec(c *CPU, t target) {
	v := t.load(c) - 1
	t.store(c, v)
	c.P.checkNZ(v)
}

func dex(c *CPU, _ target) {
	c.X--
	c.P.checkNZ(c.X)
}

func dey(c *CPU, _ target) {
	c.Y--
	c.P.checkNZ(c.Y)
}

// Shifts and rotates. Carry receives the bit shifted out.

func asl(c *CPU, t target) {
	v := t.load(c)
	c.P.writeBit(pbitC, v&0x80 != 0)
	v <<= 1
	t.store(c, v)
	c.P.checkNZ(v)
}

func lsr(c *CPU, t target) {
	v := t.load(c)
	c.P.writeBit(pbitC, v&0x01 != 0)
	v >>= 1
	t.store(c, v)
	c.P.checkNZ(v)
}

func rol(c *CPU, t target) {
	v := t.load(c)
	carry := b2i(c.P.C())
	c.P.writeBit(pbitC, v&0x80 != 0)
	v = v<<1 | carry
	t.store(c, v)
	c.P.checkNZ(v)
}

func ror(c *CPU, t target) {
	v := t.load(c)
	carry := b2i(c.P.C())
	c.P.writeBit(pbitC, v&0x01 != 0)
	v = v>>1 | carry<<7
	t.store(c, v)
	c.P.checkNZ(v)
}

// Jumps and subroutines.

func jmp(c *CPU, t target) { c.PC = t.addr }

// jsr pushes the address of its own last byte, RTS pops it and adds
// one.
func jsr(c *CPU, t target) {
	c.push16(c.PC - 1)
	c.PC = t.addr
}

func rts(c *CPU, _ target) { c.PC = c.pull16() + 1 }

// Branches. The resolver has already computed the destination address.

func bcc(c *CPU, t target) {
	if !c.P.C() {
		c.PC = t.addr
	}
}

func bcs(c *CPU, t target) {
	if c.P.C() {
		c.PC = t.addr
	}
}

func beq(c *CPU, t target) {
	if c.P.Z() {
		c.PC = t.addr
	}
}

func bne(c *CPU, t target) {
	if !c.P.Z() {
		c.PC = t.addr
	}
}

func bmi(c *CPU, t target) {
	if c.P.N() {
		c.PC = t.addr
	}
}

func bpl(c *CPU, t target) {
	if !c.P.N() {
		c.PC = t.addr
	}
}

func bvc(c *CPU, t target) {
	if !c.P.V() {
		c.PC = t.addr
	}
}

func bvs(c *CPU, t target) {
	if c.P.V() {
		c.PC = t.addr
	}
}

// Flag operations.

func clc(c *CPU, _ target) { c.P.clearBit(pbitC) }
func cld(c *CPU, _ target) { c.P.clearBit(pbitD) }
func cli(c *CPU, _ target) { c.P.clearBit(pbitI) }
func clv(c *CPU, _ target) { c.P.clearBit(pbitV) }
func sec(c *CPU, _ target) { c.P.setBit(pbitC) }
func sed(c *CPU, _ target) { c.P.setBit(pbitD) }
func sei(c *CPU, _ target) { c.P.setBit(pbitI) }

// Interrupts and the rest.

// brk sets the interrupt disable flag and pushes PC then P, with the
// Break bit set in the pushed copy. With a flat address space there is
// no vector to fetch, execution continues at the next instruction.
func brk(c *CPU, _ target) {
	c.P.setBit(pbitI)
	c.push16(c.PC)
	c.push8(uint8(c.P) | 1<<pbitB)
}

func rti(c *CPU, _ target) {
	c.pullP()
	c.PC = c.pull16()
}

func nop(c *CPU, _ target) {}

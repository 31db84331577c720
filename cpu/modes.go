package cpu

// AddressMode is one of the 13 documented 6502 addressing modes.
type AddressMode uint8

const (
	Implicit AddressMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndirectX
	IndirectY
)

// opsize returns the number of bytes an instruction with the given
// addressing mode occupies, opcode included.
func opsize(mode AddressMode) int {
	switch mode {
	case Implicit, Accumulator:
		return 1
	case Immediate, ZeroPage, ZeroPageX, ZeroPageY, Relative, IndirectX, IndirectY:
		return 2
	case Absolute, AbsoluteX, AbsoluteY, Indirect:
		return 3
	}
	panic("unknown addressing mode")
}

// resolve consumes the operand bytes at PC and turns them into a
// target. PC ends up on the next instruction.
func (c *CPU) resolve(mode AddressMode) target {
	switch mode {
	case Implicit:
		return implicitTarget()

	case Accumulator:
		return accTarget()

	case Immediate:
		v := c.Read8(c.PC)
		c.PC++
		return valTarget(v)

	case ZeroPage:
		addr := c.Read8(c.PC)
		c.PC++
		return memTarget(uint16(addr))

	case ZeroPageX:
		addr := c.Read8(c.PC) + c.X
		c.PC++
		return memTarget(uint16(addr))

	case ZeroPageY:
		addr := c.Read8(c.PC) + c.Y
		c.PC++
		return memTarget(uint16(addr))

	case Relative:
		// Signed offset from the address of the next instruction.
		off := int8(c.Read8(c.PC))
		c.PC++
		return addrTarget(c.PC + uint16(int16(off)))

	case Absolute:
		addr := c.Read16(c.PC)
		c.PC += 2
		return memTarget(addr)

	case AbsoluteX:
		addr := c.Read16(c.PC) + uint16(c.X)
		c.PC += 2
		return memTarget(addr)

	case AbsoluteY:
		addr := c.Read16(c.PC) + uint16(c.Y)
		c.PC += 2
		return memTarget(addr)

	case Indirect:
		// Replicates the 6502 indirect jump bug: a pointer at the last
		// byte of a page reads its high byte from the first byte of the
		// same page, not the next one.
		ptr := c.Read16(c.PC)
		c.PC += 2
		lo := c.Read8(ptr)
		hi := c.Read8(ptr&0xFF00 | uint16(uint8(ptr)+1))
		return memTarget(uint16(hi)<<8 | uint16(lo))

	case IndirectX:
		zp := c.Read8(c.PC) + c.X
		c.PC++
		return memTarget(c.read16zp(zp))

	case IndirectY:
		zp := c.Read8(c.PC)
		c.PC++
		return memTarget(c.read16zp(zp) + uint16(c.Y))
	}
	panic("unknown addressing mode")
}

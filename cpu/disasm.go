package cpu

import (
	"bytes"
	"fmt"
	"io"
)

// Disasm formats the instruction at pc and returns it along with the
// instruction size in bytes. Operand annotations show the effective
// address and the value it holds, resolved against the current
// register and memory state, in the nestest log style. Undefined
// opcodes disassemble to "???".
func (c *CPU) Disasm(pc uint16) (string, int) {
	ins := &ops[c.Read8(pc)]
	if ins.fn == nil {
		return fmt.Sprintf("% 4s", "???"), 1
	}
	return c.operand(pc, ins), opsize(ins.mode)
}

// DisasmBlock writes a static listing of the [start, end) address
// range to w, one instruction per line.
func (c *CPU) DisasmBlock(w io.Writer, start, end uint16) {
	pc := start
	for pc < end {
		opstr, nbytes := c.Disasm(pc)

		var raw []byte
		for i := uint16(0); i < uint16(nbytes); i++ {
			raw = append(raw, fmt.Sprintf("%02X ", c.Read8(pc+i))...)
		}
		fmt.Fprintf(w, "%04X  %-9s%s\n", pc, raw, opstr)
		pc += uint16(nbytes)
	}
}

// writeTrace emits one nestest-style trace line for the instruction at
// pc, before it executes.
func (c *CPU) writeTrace(pc uint16) {
	opstr, nbytes := c.Disasm(pc)

	var raw []byte
	for i := uint16(0); i < uint16(nbytes); i++ {
		raw = append(raw, fmt.Sprintf("%02X ", c.Read8(pc+i))...)
	}

	var bb bytes.Buffer
	fmt.Fprintf(&bb, "%04X  %-9s%-33sA:%02X X:%02X Y:%02X P:%02X SP:%02X\n",
		pc, raw, opstr, c.A, c.X, c.Y, byte(c.P), c.SP)
	c.trace.Write(bb.Bytes())
}

// operand readers
//
// These mirror the addressing mode resolver but read at an arbitrary
// address and never move PC.

func (c *CPU) dimm(pc uint16) uint8  { return c.Read8(pc + 1) }
func (c *CPU) dzp(pc uint16) uint8   { return c.Read8(pc + 1) }
func (c *CPU) dzpx(pc uint16) uint8  { return c.dzp(pc) + c.X }
func (c *CPU) dzpy(pc uint16) uint8  { return c.dzp(pc) + c.Y }
func (c *CPU) dabs(pc uint16) uint16 { return c.Read16(pc + 1) }
func (c *CPU) dabx(pc uint16) uint16 { return c.dabs(pc) + uint16(c.X) }
func (c *CPU) daby(pc uint16) uint16 { return c.dabs(pc) + uint16(c.Y) }

func (c *CPU) drel(pc uint16) uint16 {
	off := int16(int8(c.Read8(pc + 1)))
	return uint16(int16(pc+2) + off)
}

func (c *CPU) dind(pc uint16) uint16 {
	oper := c.Read16(pc + 1)
	lo := c.Read8(oper)
	hi := c.Read8((0xff00 & oper) | (0x00ff & (oper + 1)))
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) operand(pc uint16, ins *instruction) string {
	op := ins.name

	switch ins.mode {
	case Implicit:
		return fmt.Sprintf("% 4s", op)

	case Accumulator:
		return fmt.Sprintf("% 4s A", op)

	case Immediate:
		return fmt.Sprintf("% 4s #$%02X", op, c.dimm(pc))

	case ZeroPage:
		addr := c.dzp(pc)
		return fmt.Sprintf("% 4s $%02X = %02X", op, addr, c.Read8(uint16(addr)))

	case ZeroPageX:
		addr := c.dzp(pc)
		addr2 := c.dzpx(pc)
		return fmt.Sprintf("% 4s $%02X,X @ %02X = %02X", op, addr, addr2, c.Read8(uint16(addr2)))

	case ZeroPageY:
		addr := c.dzp(pc)
		addr2 := c.dzpy(pc)
		return fmt.Sprintf("% 4s $%02X,Y @ %02X = %02X", op, addr, addr2, c.Read8(uint16(addr2)))

	case Relative:
		return fmt.Sprintf("% 4s $%04X", op, c.drel(pc))

	case Absolute:
		addr := c.dabs(pc)
		switch op {
		case "JMP", "JSR":
			return fmt.Sprintf("% 4s $%04X", op, addr)
		default:
			return fmt.Sprintf("% 4s $%04X = %02X", op, addr, c.Read8(addr))
		}

	case AbsoluteX:
		oper := c.dabs(pc)
		addr := c.dabx(pc)
		return fmt.Sprintf("% 4s $%04X,X @ %04X = %02X", op, oper, addr, c.Read8(addr))

	case AbsoluteY:
		oper := c.dabs(pc)
		addr := c.daby(pc)
		return fmt.Sprintf("% 4s $%04X,Y @ %04X = %02X", op, oper, addr, c.Read8(addr))

	case Indirect:
		oper := c.Read16(pc + 1)
		return fmt.Sprintf("% 4s ($%04X) = %04X", op, oper, c.dind(pc))

	case IndirectX:
		oper := c.Read8(pc + 1)
		zp := oper + c.X
		addr := c.read16zp(zp)
		return fmt.Sprintf("% 4s ($%02X,X) @ %02X = %04X = %02X", op, oper, zp, addr, c.Read8(addr))

	case IndirectY:
		oper := c.Read8(pc + 1)
		base := c.read16zp(oper)
		dst := base + uint16(c.Y)
		return fmt.Sprintf("% 4s ($%02X),Y = %04X @ %04X = %02X", op, oper, base, dst, c.Read8(dst))
	}
	panic("unknown addressing mode")
}

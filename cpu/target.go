package cpu

type targetKind uint8

const (
	targetImplicit targetKind = iota
	targetAccumulator
	targetMemory
	targetValue
	targetAddress
)

// target is the operand reference an addressing mode resolves to. It is
// either nothing (implicit), the accumulator, a memory location, a bare
// value (immediate operands), or a bare address (resolved branch
// destinations, which are neither loaded nor stored through).
type target struct {
	kind targetKind
	addr uint16
	val  uint8
}

func implicitTarget() target        { return target{kind: targetImplicit} }
func accTarget() target             { return target{kind: targetAccumulator} }
func memTarget(addr uint16) target  { return target{kind: targetMemory, addr: addr} }
func valTarget(v uint8) target      { return target{kind: targetValue, val: v} }
func addrTarget(addr uint16) target { return target{kind: targetAddress, addr: addr} }

// load reads the operand value. Loading an implicit or address target
// is a dispatch table bug, not something an emulated program can cause.
func (t target) load(c *CPU) uint8 {
	switch t.kind {
	case targetAccumulator:
		return c.A
	case targetMemory:
		return c.Read8(t.addr)
	case targetValue:
		return t.val
	}
	panic("load from non-readable target")
}

// store writes the operand value back. Storing to an implicit, value or
// address target is a dispatch table bug, not something an emulated
// program can cause.
func (t target) store(c *CPU, v uint8) {
	switch t.kind {
	case targetAccumulator:
		c.A = v
	case targetMemory:
		c.Write8(t.addr, v)
	default:
		panic("store to non-writable target")
	}
}

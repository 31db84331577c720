package emu

import (
	"fmt"

	"github.com/go-faster/jx"

	"microlator/cpu"
)

// State is a snapshot of the observable CPU register file.
type State struct {
	A  uint8
	X  uint8
	Y  uint8
	SP uint8
	PC uint16
	P  uint8
}

// Snapshot captures the current register file of c.
func Snapshot(c *cpu.CPU) State {
	return State{
		A:  c.A,
		X:  c.X,
		Y:  c.Y,
		SP: c.SP,
		PC: c.PC,
		P:  uint8(c.P),
	}
}

// Restore writes the register file of s back into c. Memory is left
// untouched.
func (s State) Restore(c *cpu.CPU) {
	c.A = s.A
	c.X = s.X
	c.Y = s.Y
	c.SP = s.SP
	c.PC = s.PC
	c.P = cpu.P(s.P)
}

// Encode appends the JSON form of s to e.
func (s State) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("pc")
	e.UInt16(s.PC)
	e.FieldStart("s")
	e.UInt8(s.SP)
	e.FieldStart("a")
	e.UInt8(s.A)
	e.FieldStart("x")
	e.UInt8(s.X)
	e.FieldStart("y")
	e.UInt8(s.Y)
	e.FieldStart("p")
	e.UInt8(s.P)
	e.ObjEnd()
}

// EncodeState returns the JSON form of s.
func EncodeState(s State) []byte {
	var e jx.Encoder
	s.Encode(&e)
	return e.Bytes()
}

// Decode reads a state object from d into s.
func (s *State) Decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "pc":
			v, err := d.UInt16()
			s.PC = v
			return err
		case "s":
			v, err := d.UInt8()
			s.SP = v
			return err
		case "a":
			v, err := d.UInt8()
			s.A = v
			return err
		case "x":
			v, err := d.UInt8()
			s.X = v
			return err
		case "y":
			v, err := d.UInt8()
			s.Y = v
			return err
		case "p":
			v, err := d.UInt8()
			s.P = v
			return err
		default:
			return fmt.Errorf("unknown state field %q", key)
		}
	})
}

// DecodeState parses the JSON form of a state snapshot.
func DecodeState(data []byte) (State, error) {
	var s State
	d := jx.DecodeBytes(data)
	if err := s.Decode(d); err != nil {
		return State{}, err
	}
	return s, nil
}

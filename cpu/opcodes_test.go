package cpu

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-faster/jx"
)

func TestOpcodeCoverage(t *testing.T) {
	ndefined := 0
	for opcode, op := range ops {
		if op.fn == nil {
			continue
		}
		ndefined++
		if op.name == "" {
			t.Errorf("opcode %02x has a handler but no mnemonic", opcode)
		}
	}

	// 151 documented opcodes, the rest halts.
	if ndefined != 151 {
		t.Errorf("got %d defined opcodes, want 151", ndefined)
	}
}

func TestUndefinedOpcodeHalts(t *testing.T) {
	for opcode, op := range ops {
		if op.fn != nil {
			continue
		}
		cpu := New()
		if err := cpu.Load([]byte{uint8(opcode)}); err != nil {
			t.Fatal(err)
		}
		if cpu.Step() {
			t.Errorf("step on undefined opcode %02x returned true", opcode)
		}
		// The fetch completes before the halt.
		if cpu.PC != 0x0601 {
			t.Errorf("PC = %04x after undefined opcode %02x, want 0601", cpu.PC, opcode)
		}
	}
}

func TestLoadStore(t *testing.T) {
	t.Run("lda sta roundtrip", func(t *testing.T) {
		// LDA #$42
		// STA $10
		// LDA $10
		cpu := loadCPUWith(t, `0600: a9 42 85 10 a5 10`)
		runAndCheckState(t, cpu, 3,
			"A", uint8(0x42),
			"PC", uint16(0x0606),
			"Pzn", uint8(0),
			"mem", `0010: 42`,
		)
	})
	t.Run("ldx ldy stx sty", func(t *testing.T) {
		// LDX #$0F
		// LDY #$F0
		// STX $20
		// STY $21
		cpu := loadCPUWith(t, `0600: a2 0f a0 f0 86 20 84 21`)
		runAndCheckState(t, cpu, 4,
			"X", uint8(0x0f),
			"Y", uint8(0xf0),
			"Pn", uint8(1),
			"mem", `0020: 0f f0`,
		)
	})
	t.Run("lda zero sets Z", func(t *testing.T) {
		cpu := loadCPUWith(t, `0600: a9 00`)
		runAndCheckState(t, cpu, 1, "A", uint8(0), "Pz", uint8(1), "Pn", uint8(0))
	})
	t.Run("lda indexed indirect", func(t *testing.T) {
		// LDX #$04
		// LDA ($20,X)   pointer at $24 -> $0300
		cpu := loadCPUWith(t, `
0600: a2 04 a1 20
0024: 00 03
0300: 99
`)
		runAndCheckState(t, cpu, 2, "A", uint8(0x99))
	})
	t.Run("lda indirect indexed", func(t *testing.T) {
		// LDY #$10
		// LDA ($20),Y   pointer at $20 -> $0300, + Y -> $0310
		cpu := loadCPUWith(t, `
0600: a0 10 b1 20
0020: 00 03
0310: 77
`)
		runAndCheckState(t, cpu, 2, "A", uint8(0x77))
	})
}

func TestTransfers(t *testing.T) {
	t.Run("tax tay", func(t *testing.T) {
		// LDA #$80 ; TAX ; TAY
		cpu := loadCPUWith(t, `0600: a9 80 aa a8`)
		runAndCheckState(t, cpu, 3,
			"X", uint8(0x80),
			"Y", uint8(0x80),
			"Pn", uint8(1),
		)
	})
	t.Run("txs leaves flags", func(t *testing.T) {
		// LDX #$00 ; TXS
		cpu := loadCPUWith(t, `0600: a2 00 9a`)
		runAndCheckState(t, cpu, 2,
			"SP", uint8(0x00),
			"Pz", uint8(1), // from LDX, TXS must not touch it
		)
	})
	t.Run("tsx", func(t *testing.T) {
		cpu := loadCPUWith(t, `0600: ba`)
		runAndCheckState(t, cpu, 1, "X", uint8(0xfd), "Pn", uint8(1))
	})
}

func TestArithmetic(t *testing.T) {
	t.Run("adc carry and overflow", func(t *testing.T) {
		// LDA #$50 ; ADC #$50
		cpu := loadCPUWith(t, `0600: a9 50 69 50`)
		runAndCheckState(t, cpu, 2,
			"A", uint8(0xa0),
			"Pc", uint8(0),
			"Pv", uint8(1),
			"Pn", uint8(1),
			"Pz", uint8(0),
		)
	})
	t.Run("adc carry out", func(t *testing.T) {
		// LDA #$FF ; SEC ; ADC #$00
		cpu := loadCPUWith(t, `0600: a9 ff 38 69 00`)
		runAndCheckState(t, cpu, 3,
			"A", uint8(0x00),
			"Pc", uint8(1),
			"Pz", uint8(1),
		)
	})
	t.Run("sbc borrow", func(t *testing.T) {
		// SEC ; LDA #$05 ; SBC #$03
		cpu := loadCPUWith(t, `0600: 38 a9 05 e9 03`)
		runAndCheckState(t, cpu, 3,
			"A", uint8(0x02),
			"Pc", uint8(1),
			"Pv", uint8(0),
			"Pz", uint8(0),
			"Pn", uint8(0),
		)
	})
	t.Run("sbc underflow clears carry", func(t *testing.T) {
		// SEC ; LDA #$03 ; SBC #$05
		cpu := loadCPUWith(t, `0600: 38 a9 03 e9 05`)
		runAndCheckState(t, cpu, 3,
			"A", uint8(0xfe),
			"Pc", uint8(0),
			"Pn", uint8(1),
		)
	})
	t.Run("decimal flag is storage only", func(t *testing.T) {
		// SED ; SEC ; LDA #$09 ; ADC #$01
		cpu := loadCPUWith(t, `0600: f8 38 a9 09 69 01`)
		runAndCheckState(t, cpu, 4,
			"A", uint8(0x0b), // binary sum, not BCD 0x11
			"Pd", uint8(1),
		)
	})
}

// adc then sbc of the same operand with explicit carry management gets
// the accumulator back, for any starting point.
func TestAddSubRoundtrip(t *testing.T) {
	for _, tc := range []struct{ a, m uint8 }{
		{0x00, 0x00}, {0x00, 0xff}, {0x42, 0x42}, {0x80, 0x7f},
		{0xff, 0x01}, {0x10, 0xf0}, {0x7f, 0x80}, {0xff, 0xff},
	} {
		t.Run(fmt.Sprintf("%02x %02x", tc.a, tc.m), func(t *testing.T) {
			// LDA #a ; CLC ; ADC #m ; SEC ; SBC #m
			cpu := loadCPUWith(t, fmt.Sprintf(`0600: a9 %02x 18 69 %02x 38 e9 %02x`, tc.a, tc.m, tc.m))
			runAndCheckState(t, cpu, 5, "A", tc.a)
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name    string
		dump    string
		nsteps  int
		z, c, n uint8
	}{
		// LDA #$40 ; CMP #$41
		{"cmp less", `0600: a9 40 c9 41`, 2, 0, 0, 1},
		// LDA #$40 ; CMP #$40
		{"cmp equal", `0600: a9 40 c9 40`, 2, 1, 1, 0},
		// LDA #$41 ; CMP #$40
		{"cmp greater", `0600: a9 41 c9 40`, 2, 0, 1, 0},
		// LDX #$40 ; CPX #$41
		{"cpx less", `0600: a2 40 e0 41`, 2, 0, 0, 1},
		// LDY #$30 ; CPY $10 ($10 holds $30)
		{"cpy equal", "0600: a0 30 cc 10 00\n0010: 30", 2, 1, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cpu := loadCPUWith(t, tt.dump)
			runAndCheckState(t, cpu, tt.nsteps,
				"Pz", tt.z,
				"Pc", tt.c,
				"Pn", tt.n,
			)
		})
	}
}

func TestBitwise(t *testing.T) {
	t.Run("and or eor", func(t *testing.T) {
		// LDA #$F0 ; AND #$3C ; ORA #$03 ; EOR #$FF
		cpu := loadCPUWith(t, `0600: a9 f0 29 3c 09 03 49 ff`)
		runAndCheckState(t, cpu, 4,
			"A", uint8(^uint8(0x33)),
			"Pn", uint8(1),
		)
	})
	t.Run("bit", func(t *testing.T) {
		// LDA #$01 ; BIT $10  with $10 = $C0
		cpu := loadCPUWith(t, "0600: a9 01 24 10\n0010: c0")
		runAndCheckState(t, cpu, 2,
			"A", uint8(0x01), // A untouched
			"Pz", uint8(1),   // A & m == 0
			"Pv", uint8(1),   // bit 6 of m
			"Pn", uint8(1),   // bit 7 of m
		)
	})
}

func TestIncDec(t *testing.T) {
	t.Run("inx wraps", func(t *testing.T) {
		// LDX #$FF ; INX
		cpu := loadCPUWith(t, `0600: a2 ff e8`)
		runAndCheckState(t, cpu, 2, "X", uint8(0x00), "Pz", uint8(1))
	})
	t.Run("iny", func(t *testing.T) {
		// LDY #$7F ; INY
		cpu := loadCPUWith(t, `0600: a0 7f c8`)
		runAndCheckState(t, cpu, 2, "Y", uint8(0x80), "Pn", uint8(1))
	})
	t.Run("dex dey", func(t *testing.T) {
		// DEX ; DEY
		cpu := loadCPUWith(t, `0600: ca 88`)
		runAndCheckState(t, cpu, 2,
			"X", uint8(0xff),
			"Y", uint8(0xff),
			"Pn", uint8(1),
		)
	})
	t.Run("inc dec memory", func(t *testing.T) {
		// INC $10 ; INC $10 ; DEC $10
		cpu := loadCPUWith(t, "0600: e6 10 e6 10 c6 10\n0010: 41")
		runAndCheckState(t, cpu, 3, "mem", `0010: 42`)
	})
}

func TestShifts(t *testing.T) {
	t.Run("asl accumulator", func(t *testing.T) {
		// LDA #$81 ; ASL A
		cpu := loadCPUWith(t, `0600: a9 81 0a`)
		runAndCheckState(t, cpu, 2,
			"A", uint8(0x02),
			"Pc", uint8(1),
			"Pn", uint8(0),
		)
	})
	t.Run("lsr clears N", func(t *testing.T) {
		// LDA #$01 ; LSR A
		cpu := loadCPUWith(t, `0600: a9 01 4a`)
		runAndCheckState(t, cpu, 2,
			"A", uint8(0x00),
			"Pc", uint8(1),
			"Pz", uint8(1),
			"Pn", uint8(0),
		)
	})
	t.Run("rol carries in and out", func(t *testing.T) {
		// SEC ; LDA #$80 ; ROL A
		cpu := loadCPUWith(t, `0600: 38 a9 80 2a`)
		runAndCheckState(t, cpu, 3,
			"A", uint8(0x01),
			"Pc", uint8(1),
		)
	})
	t.Run("ror memory", func(t *testing.T) {
		// SEC ; ROR $10  with $10 = $02
		cpu := loadCPUWith(t, "0600: 38 66 10\n0010: 02")
		runAndCheckState(t, cpu, 2,
			"Pc", uint8(0),
			"Pn", uint8(1),
			"mem", `0010: 81`,
		)
	})
}

func TestBranches(t *testing.T) {
	t.Run("beq taken", func(t *testing.T) {
		// LDA #$00 ; BEQ +2 ; LDA #$FF ; BRK
		cpu := loadCPUWith(t, `0600: a9 00 f0 02 a9 ff 00`)
		runAndCheckState(t, cpu, 3, "A", uint8(0x00))
	})
	t.Run("bne not taken", func(t *testing.T) {
		// LDA #$00 ; BNE +2 ; LDA #$FF
		cpu := loadCPUWith(t, `0600: a9 00 d0 02 a9 ff`)
		runAndCheckState(t, cpu, 3, "A", uint8(0xff))
	})
	t.Run("backward offset 0x80", func(t *testing.T) {
		// at $0680: BCC -128 -> lands at $0682 - 128 = $0602
		cpu := loadCPUWith(t, `0680: 90 80`)
		cpu.PC = 0x0680
		runAndCheckState(t, cpu, 1, "PC", uint16(0x0602))
	})
	t.Run("forward offset 0x7f", func(t *testing.T) {
		// at $0600: BCC +127 -> lands at $0602 + 127 = $0681
		cpu := loadCPUWith(t, `0600: 90 7f`)
		runAndCheckState(t, cpu, 1, "PC", uint16(0x0681))
	})
	t.Run("flag branches", func(t *testing.T) {
		// SEC ; BCS +1 ; BRK ; CLV(b8) ; BVC +1 ; BRK ; LDA #$01
		cpu := loadCPUWith(t, `0600: 38 b0 01 00 b8 50 01 00 a9 01`)
		runAndCheckState(t, cpu, 5, "A", uint8(0x01))
	})
}

func TestJumps(t *testing.T) {
	t.Run("jmp absolute", func(t *testing.T) {
		cpu := loadCPUWith(t, `0600: 4c 00 07`)
		runAndCheckState(t, cpu, 1, "PC", uint16(0x0700))
	})
	t.Run("jmp indirect page wrap", func(t *testing.T) {
		// JMP ($30FF) with the pointer split across the page: low byte
		// at $30FF, high byte at $3000 (not $3100).
		cpu := loadCPUWith(t, `
0600: 6c ff 30
30ff: 40
3000: 80
3100: aa
`)
		runAndCheckState(t, cpu, 1, "PC", uint16(0x8040))
	})
	t.Run("jsr rts pairing", func(t *testing.T) {
		// $0600: JSR $0609 ; LDA #$11  /  $0609: LDA #$22 ; RTS
		cpu := loadCPUWith(t, `
0600: 20 09 06 a9 11
0609: a9 22 60
`)
		runAndCheckState(t, cpu, 4,
			"A", uint8(0x11),
			"SP", uint8(0xfd),
			"PC", uint16(0x0605),
		)
	})
}

func TestStackOps(t *testing.T) {
	t.Run("pha pla", func(t *testing.T) {
		// LDA #$42 ; PHA ; LDA #$00 ; PLA
		cpu := loadCPUWith(t, `0600: a9 42 48 a9 00 68`)
		runAndCheckState(t, cpu, 4,
			"A", uint8(0x42),
			"SP", uint8(0xfd),
		)
	})
	t.Run("php sets B in pushed copy", func(t *testing.T) {
		// PHP ; PLA
		cpu := loadCPUWith(t, `0600: 08 68`)
		runAndCheckState(t, cpu, 2,
			"A", uint8(0x34), // 0x24 | Break
		)
	})
	t.Run("plp drops B keeps unused", func(t *testing.T) {
		// LDA #$FF ; PHA ; PLP
		cpu := loadCPUWith(t, `0600: a9 ff 48 28`)
		runAndCheckState(t, cpu, 3,
			"P", uint8(0xef), // all bits except Break
		)
	})
}

func TestInterrupts(t *testing.T) {
	t.Run("brk pushes state", func(t *testing.T) {
		// BRK at $0600: pushes $0601 then P|0x10.
		cpu := loadCPUWith(t, `0600: 00`)
		runAndCheckState(t, cpu, 1,
			"SP", uint8(0xfa),
			"Pi", uint8(1),
			"mem", `01fb: 34 01 06`,
		)
	})
	t.Run("rti restores state", func(t *testing.T) {
		// SEC ; BRK ; then RTI from $0700 lands back after BRK.
		cpu := loadCPUWith(t, `
0600: 38 00
0700: 40
`)
		cpu.Run(2)
		cpu.PC = 0x0700
		runAndCheckState(t, cpu, 1,
			"PC", uint16(0x0602),
			"SP", uint8(0xfd),
			"Pc", uint8(1),
			"Pb", uint8(0),
		)
	})
}

// TestVectors runs the register-level test vectors in
// testdata/vectors/<op>.json when present. These follow the layout of
// github.com/TomHarte/ProcessorTests/blob/main/nes6502.
func TestVectors(t *testing.T) {
	dir := filepath.Join("testdata", "vectors")
	if _, err := os.Stat(dir); err != nil {
		t.Skipf("%s not present, skipping", dir)
	}

	for opcode, op := range ops {
		if op.fn == nil || opcode == 0x00 {
			// BRK vectors assume an interrupt vector fetch.
			continue
		}
		opstr := fmt.Sprintf("%02x", opcode)
		path := filepath.Join(dir, opstr+".json")
		buf, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		t.Run(opstr, testVectorFile(buf))
	}
}

type vectorState struct {
	PC  uint16
	SP  uint8
	A   uint8
	X   uint8
	Y   uint8
	P   uint8
	RAM [][2]uint16
}

func (vs *vectorState) decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "pc":
			vs.PC, err = d.UInt16()
		case "s":
			vs.SP, err = d.UInt8()
		case "a":
			vs.A, err = d.UInt8()
		case "x":
			vs.X, err = d.UInt8()
		case "y":
			vs.Y, err = d.UInt8()
		case "p":
			vs.P, err = d.UInt8()
		case "ram":
			err = d.Arr(func(d *jx.Decoder) error {
				var row [2]uint16
				i := 0
				if err := d.Arr(func(d *jx.Decoder) error {
					v, err := d.UInt16()
					if i < 2 {
						row[i] = v
					}
					i++
					return err
				}); err != nil {
					return err
				}
				vs.RAM = append(vs.RAM, row)
				return nil
			})
		default:
			err = d.Skip()
		}
		return err
	})
}

func testVectorFile(buf []byte) func(t *testing.T) {
	return func(t *testing.T) {
		t.Parallel()

		type vector struct {
			name           string
			initial, final vectorState
		}

		var vectors []vector
		d := jx.DecodeBytes(buf)
		err := d.Arr(func(d *jx.Decoder) error {
			var v vector
			if err := d.Obj(func(d *jx.Decoder, key string) error {
				var err error
				switch key {
				case "name":
					v.name, err = d.Str()
				case "initial":
					err = v.initial.decode(d)
				case "final":
					err = v.final.decode(d)
				default:
					err = d.Skip()
				}
				return err
			}); err != nil {
				return err
			}
			vectors = append(vectors, v)
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}

		for _, tt := range vectors {
			t.Run(tt.name, func(t *testing.T) {
				cpu := New()
				cpu.A = tt.initial.A
				cpu.X = tt.initial.X
				cpu.Y = tt.initial.Y
				cpu.P = P(tt.initial.P)
				cpu.SP = tt.initial.SP
				cpu.PC = tt.initial.PC
				for _, row := range tt.initial.RAM {
					cpu.Write8(row[0], uint8(row[1]))
				}

				runAndCheckState(t, cpu, 1,
					"PC", tt.final.PC,
					"SP", tt.final.SP,
					"A", tt.final.A,
					"X", tt.final.X,
					"Y", tt.final.Y,
					"P", tt.final.P,
				)

				for _, row := range tt.final.RAM {
					wantMem8(t, cpu, row[0], uint8(row[1]))
				}
			})
		}
	}
}

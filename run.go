package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"

	"golang.org/x/sync/errgroup"

	"microlator/cpu"
	"microlator/emu"
)

// stepChunk is how many instructions run between two cancellation
// checks.
const stepChunk = 4096

// runMain executes a raw program image until the CPU halts, the step
// bound is reached or the process gets interrupted.
func runMain(args Run, cfg emu.Config) {
	program, err := os.ReadFile(args.ProgramPath)
	checkf(err, "failed to read program image")

	addr := cfg.Run.LoadAddr
	if args.Addr != nil {
		addr = *args.Addr
	}

	c := cpu.New()
	checkf(c.LoadAt(program, addr), "failed to load program image")

	trace := args.Trace
	if trace == nil && cfg.Run.Trace != "" {
		trace = &outfile{}
		checkf(trace.open(cfg.Run.Trace), "failed to open trace sink")
	}
	if trace != nil {
		defer trace.Close()
		c.SetTrace(trace)
	}

	if args.CPUProfile != "" {
		f, err := os.Create(args.CPUProfile)
		checkf(err, "failed to create cpu profile file")
		checkf(pprof.StartCPUProfile(f), "failed to start cpu profile")
		defer func() {
			pprof.StopCPUProfile()
			f.Close()
			fmt.Println("CPU profile written to", args.CPUProfile)
		}()
	}

	maxSteps := args.MaxSteps
	if maxSteps == 0 {
		maxSteps = cfg.Run.MaxSteps
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		steps := 0
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			chunk := stepChunk
			if maxSteps > 0 {
				if left := maxSteps - steps; left < chunk {
					chunk = left
				}
				if chunk == 0 {
					return nil
				}
			}

			n := c.Run(chunk)
			steps += n
			if n < chunk {
				// CPU halted.
				return nil
			}
		}
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		fatalf("emulation error: %v", err)
	}

	fmt.Printf("%s\n", emu.EncodeState(emu.Snapshot(c)))
}

// disasmMain prints a static listing of a program image.
func disasmMain(args Disasm, cfg emu.Config) {
	program, err := os.ReadFile(args.ProgramPath)
	checkf(err, "failed to read program image")

	addr := cfg.Run.LoadAddr
	if args.Addr != nil {
		addr = *args.Addr
	}

	c := cpu.New()
	checkf(c.LoadAt(program, addr), "failed to load program image")

	end := addr + uint16(len(program))
	c.DisasmBlock(os.Stdout, addr, end)
}

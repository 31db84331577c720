package main

import (
	"fmt"
	"os"

	"microlator/emu"
	"microlator/emu/log"
)

var version = "devel"

func main() {
	cli := parseArgs(os.Args[1:])
	cfg := emu.LoadConfigOrDefault()

	for _, name := range cfg.General.LogModules {
		mod, ok := log.ModuleByName(name)
		if !ok {
			fatalf("unknown log module %q in config", name)
		}
		log.EnableDebugModules(mod.Mask())
	}

	switch cli.mode {
	case runMode:
		runMain(cli.Run, cfg)
	case disasmMode:
		disasmMain(cli.Disasm, cfg)
	case versionMode:
		fmt.Println("microlator", version)
	}
}

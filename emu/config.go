// Package emu holds the pieces surrounding the CPU core: runner
// configuration and state snapshots.
package emu

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/kirsle/configdir"

	"microlator/emu/log"
)

type Config struct {
	Run     RunConfig     `toml:"run"`
	General GeneralConfig `toml:"general"`
}

type RunConfig struct {
	// LoadAddr is the default load address for program images, used
	// when the command line does not give one.
	LoadAddr uint16 `toml:"load_addr"`

	// MaxSteps bounds a run. 0 means no bound.
	MaxSteps int `toml:"max_steps"`

	// Trace is the default trace sink, same values as the --trace
	// flag. Empty means no tracing.
	Trace string `toml:"trace"`
}

type GeneralConfig struct {
	// LogModules are enabled at startup, same values as the --log flag.
	LogModules []string `toml:"log_modules"`
}

var ConfigDir string = sync.OnceValue(func() string {
	dir := configdir.LocalConfig("microlator")
	if err := configdir.MakePath(dir); err != nil {
		log.ModEmu.Fatalf("failed to create directory %s: %v", dir, err)
	}
	return dir
})()

const cfgFilename = "config.toml"

// LoadConfigOrDefault loads the configuration from the microlator
// config directory, or provide a default one.
func LoadConfigOrDefault() Config {
	var cfg Config
	_, err := toml.DecodeFile(filepath.Join(ConfigDir, cfgFilename), &cfg)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// DefaultConfig is the configuration used in the absence of a config
// file.
func DefaultConfig() Config {
	return Config{
		Run: RunConfig{
			LoadAddr: 0x0600,
		},
	}
}

// SaveConfig into microlator config directory.
func SaveConfig(cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(ConfigDir, cfgFilename), buf, 0644)
}

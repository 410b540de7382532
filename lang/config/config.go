// Package config defines the environment-variable configuration for the
// cimple CLI, parsed with caarlos0/env. Every field has a default matching
// the hardcoded constant it replaces in the source.
package config

import "github.com/caarlos0/env/v6"

// Config holds the handful of tunables the source hardcodes: the runtime
// stack's reserved size, the directory compiled artifacts are written to,
// and which RISC-V register the emitted inp/out code uses to take
// read_int's result and to pass print_int its argument (the source always
// uses a0, the default here).
type Config struct {
	StackSize       int    `env:"CIMPLE_STACK_SIZE" envDefault:"1024"`
	OutDir          string `env:"CIMPLE_OUT_DIR" envDefault:"."`
	RuntimeRegister string `env:"CIMPLE_RUNTIME_REGISTER" envDefault:"a0"`
}

// Load reads Config from the process environment, applying defaults for
// anything unset.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Package config reads MTI's runtime knobs from the environment.
package config

import "github.com/caarlos0/env/v6"

// Runtime holds environment-driven settings consumed by the VM and
// CLI. Defaults match a fresh MTI install: no tracing, and generous
// stack/frame limits.
type Runtime struct {
	Trace     bool `env:"MTI_TRACE" envDefault:"false"`
	StackMax  int  `env:"MTI_STACK_MAX" envDefault:"16384"`
	FramesMax int  `env:"MTI_FRAMES_MAX" envDefault:"64"`
}

// Load parses Runtime from the process environment.
func Load() (Runtime, error) {
	var rt Runtime
	if err := env.Parse(&rt); err != nil {
		return Runtime{}, err
	}
	return rt, nil
}

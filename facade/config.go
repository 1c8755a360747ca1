// File: facade/config.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Facade configuration: YAML-loadable parameters for the timer backend
// and the control plane. All values are immutable per run.

package facade

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/momentics/hioload-timer/api"
)

// Config holds parameters immutable per run.
type Config struct {
	TickRate        int  `yaml:"tick_rate"`         // logical ticks per second
	Slots           int  `yaml:"slots"`             // callback slot capacity
	SleepIntervalMs int  `yaml:"sleep_interval_ms"` // driver sleep between tick batches
	EnableMetrics   bool `yaml:"enable_metrics"`    // collect runtime counters
	EnableDebug     bool `yaml:"enable_debug"`      // expose debug probes
}

// DefaultConfig returns default configuration values.
func DefaultConfig() *Config {
	return &Config{
		TickRate:        api.DefaultTickRate,
		Slots:           api.DefaultSlots,
		SleepIntervalMs: int(api.DefaultSleepInterval / time.Millisecond),
		EnableMetrics:   true,
		EnableDebug:     true,
	}
}

// LoadConfig reads a YAML file over the defaults, so partial files are
// valid: omitted keys keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// SleepInterval converts the configured sleep to a duration.
func (c *Config) SleepInterval() time.Duration {
	return time.Duration(c.SleepIntervalMs) * time.Millisecond
}

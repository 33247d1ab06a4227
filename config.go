package perfapi

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml"
)

type Config struct {
	History  HistoryConfig  `toml:"history"`
	Profiler ProfilerConfig `toml:"profiler"`
}

type HistoryConfig struct {
	MaxSamples      int     `toml:"max_samples"`
	IntervalSeconds float64 `toml:"interval_seconds"`
}

// Interval returns the sampling interval, zero when unset.
func (c HistoryConfig) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds * float64(time.Second))
}

type ProfilerConfig struct {
	DisableExamples      bool `toml:"disable_examples"`
	DisableResourceProbe bool `toml:"disable_resource_probe"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	tree, err := toml.Load(string(data))
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	var cfg Config
	if err := tree.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	switch {
	case cfg.History.MaxSamples < 0:
		return nil, fmt.Errorf("invalid config: history.max_samples must not be negative")
	case cfg.History.IntervalSeconds < 0:
		return nil, fmt.Errorf("invalid config: history.interval_seconds must not be negative")
	}

	return &cfg, nil
}

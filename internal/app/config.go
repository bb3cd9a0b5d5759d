package app

import "errors"

// Config holds everything an App instance needs to run.
type Config struct {
	BenchPath string // .hcl file or directory of .hcl files
	Ticks     int    // 0 runs as many ticks as the longest script
	TraceOut  string // optional YAML trace destination

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.BenchPath == "" {
		return nil, errors.New("BenchPath is a required configuration field and cannot be empty")
	}
	if cfg.Ticks < 0 {
		return nil, errors.New("Ticks cannot be negative")
	}
	return &cfg, nil
}

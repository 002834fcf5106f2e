package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds CLI defaults resolvable from WETEX_* environment variables,
// layered under explicit flags.
type Config struct {
	OutputDir string `mapstructure:"output_dir"`
	Jobs      int    `mapstructure:"jobs"`
	Quality   int    `mapstructure:"quality"`
	LogLevel  string `mapstructure:"log_level"`
}

// loadConfig resolves defaults from environment variables prefixed WETEX_,
// e.g. WETEX_JOBS, WETEX_OUTPUT_DIR, WETEX_QUALITY, WETEX_LOG_LEVEL.
func loadConfig() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("wetex")
	v.AutomaticEnv()

	v.SetDefault("output_dir", ".")
	v.SetDefault("jobs", runtime.NumCPU())
	v.SetDefault("quality", 90)
	v.SetDefault("log_level", "info")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return &cfg, nil
}

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	World      WorldConfig   `toml:"world"`
	Run        RunConfig     `toml:"run"`
	Logging    LoggingConfig `toml:"logging"`
	GenomeFile string        `toml:"genome_file"` // empty = built-in genomes
}

type WorldConfig struct {
	Width            int   `toml:"width"`
	Height           int   `toml:"height"`
	Seed             int64 `toml:"seed"`
	InitialOrganisms int   `toml:"initial_organisms"`
	MaxPopulation    int   `toml:"max_population"` // 0 = unlimited
}

type RunConfig struct {
	Ticks       int           `toml:"ticks"`
	TPS         int           `toml:"tps"` // 0 = run as fast as possible
	ReportEvery int           `toml:"report_every"`
	Timeout     time.Duration `toml:"timeout"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads a TOML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML bytes over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Defaults returns the configuration used when no file is given.
func Defaults() *Config {
	return &Config{
		World: WorldConfig{
			Width:            128,
			Height:           128,
			Seed:             1337,
			InitialOrganisms: 32,
			MaxPopulation:    4096,
		},
		Run: RunConfig{
			Ticks:       2000,
			ReportEvery: 100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func (c *Config) validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("world size must be positive, got %dx%d", c.World.Width, c.World.Height)
	}
	if c.World.InitialOrganisms < 0 {
		return fmt.Errorf("initial_organisms must not be negative")
	}
	if c.World.MaxPopulation < 0 {
		return fmt.Errorf("max_population must not be negative")
	}
	if c.Run.Ticks < 0 || c.Run.TPS < 0 || c.Run.ReportEvery < 0 {
		return fmt.Errorf("run settings must not be negative")
	}
	return nil
}

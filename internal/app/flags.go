package app

import (
	"flag"
	"strings"
)

// Overrides collects repeatable key=value flags.
type Overrides []string

func (o *Overrides) String() string {
	return strings.Join(*o, ",")
}

func (o *Overrides) Set(value string) error {
	*o = append(*o, value)
	return nil
}

// Map splits the collected pairs. Entries without '=' are ignored.
func (o Overrides) Map() map[string]string {
	out := make(map[string]string, len(o))
	for _, kv := range o {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		out[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return out
}

// Config represents the command-line parameters for the application. Zero
// values leave the file configuration untouched.
type Config struct {
	ConfigPath string
	GenomeFile string
	Sim        string
	Ticks      int
	TPS        int
	Seed       int64
	LogLevel   string
	Set        Overrides
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "squarelife", TPS: -1, Ticks: -1}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "TOML run configuration")
	fs.StringVar(&c.GenomeFile, "genomes", c.GenomeFile, "YAML genome library (overrides genome_file)")
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Ticks, "ticks", c.Ticks, "ticks to simulate (-1 keeps the config value)")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second, 0 for unpaced (-1 keeps the config value)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset (0 keeps the config value)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level override")
	fs.Var(&c.Set, "set", "world parameter override in key=value form (repeatable)")
}

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings keys recognized by the parser.
const (
	KeyAccount = "account" // overrides the statement account id
	KeyBank    = "bank"    // overrides the statement bank id
	KeyCharset = "charset" // selects the decoder for the export file
)

// Settings is the key/value configuration of one bank.
type Settings map[string]string

// Get returns the value for key, or def when it is unset or empty.
func (s Settings) Get(key, def string) string {
	if v := strings.TrimSpace(s[key]); v != "" {
		return v
	}
	return def
}

// Merge returns a copy of s with every non-empty value of o applied on top.
func (s Settings) Merge(o Settings) Settings {
	out := make(Settings, len(s)+len(o))
	for k, v := range s {
		out[k] = v
	}
	for k, v := range o {
		if strings.TrimSpace(v) != "" {
			out[k] = v
		}
	}
	return out
}

// Config represents the bankcsv.yaml configuration file.
type Config struct {
	Banks  map[string]Settings `yaml:"banks,omitempty"`
	Import ImportConfig        `yaml:"import"`
}

// ImportConfig controls the import command.
type ImportConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // csv or json
}

// Settings returns the settings of the named bank. It never returns nil.
func (c *Config) Settings(bank string) Settings {
	if s, ok := c.Banks[strings.ToLower(bank)]; ok && s != nil {
		return s
	}
	return Settings{}
}

// Load reads a bankcsv.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Import: ImportConfig{
			Dir:    "import",
			Format: "csv",
		},
	}
}

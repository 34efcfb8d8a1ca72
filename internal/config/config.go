// Package config loads run configuration from defaults, an optional YAML
// file, LINTWARDEN_ environment variables, and CLI flags, in ascending
// precedence.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config is the configuration surface the CLI exposes to the engine.
type Config struct {
	Only          string `koanf:"only"`
	Skip          string `koanf:"skip"`
	FailOnWarning bool   `koanf:"fail_on_warning"`
	SampleLimit   int    `koanf:"sample_limit"`
	Output        string `koanf:"output"`
	Catalog       string `koanf:"catalog"`
	Debug         bool   `koanf:"debug"`
}

const (
	DefaultSampleLimit = 10
	DefaultOutput      = "markdown"
)

// findConfigFile returns the config file to use: explicit path, else the
// first of lintwarden.yaml / lintwarden.yml in the working directory.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"lintwarden.yaml", "lintwarden.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load builds the effective configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"only":            "",
		"skip":            "",
		"fail_on_warning": false,
		"sample_limit":    DefaultSampleLimit,
		"output":          DefaultOutput,
		"catalog":         "",
		"debug":           false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if path := findConfigFile(cfgFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	// 3. Environment (LINTWARDEN_FAIL_ON_WARNING -> fail_on_warning)
	if err := k.Load(env.Provider("LINTWARDEN_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "LINTWARDEN_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags, only those explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if cfg.SampleLimit < 0 {
		cfg.SampleLimit = 0
	}
	return &cfg, nil
}

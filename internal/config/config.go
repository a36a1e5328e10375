package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/TheEpicBlock/quilt-loader/internal/mod"
)

// Config is the host's loader configuration, loaded from a TOML file.
type Config struct {
	ModsDir string `toml:"mods_dir"`
	Side    string `toml:"side"`

	// Development enables classpath scanning of the entries below.
	Development bool     `toml:"development"`
	Classpath   []string `toml:"classpath"`
}

func Default() Config {
	return Config{
		ModsDir: "mods",
		Side:    "client",
	}
}

func Load(path string) (Config, error) {
	cfg := Default()
	var raw Config
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	if meta.IsDefined("mods_dir") && strings.TrimSpace(raw.ModsDir) != "" {
		cfg.ModsDir = strings.TrimSpace(raw.ModsDir)
	}
	if meta.IsDefined("side") && strings.TrimSpace(raw.Side) != "" {
		cfg.Side = strings.TrimSpace(raw.Side)
	}
	if meta.IsDefined("development") {
		cfg.Development = raw.Development
	}
	if meta.IsDefined("classpath") {
		cfg.Classpath = normalizePaths(raw.Classpath)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.ModsDir) == "" {
		return fmt.Errorf("config missing mods_dir")
	}
	if _, err := mod.ParseSide(cfg.Side); err != nil {
		return fmt.Errorf("config side invalid: %w", err)
	}
	return nil
}

// HostSide returns the configured host role. Validate guarantees the
// string parses.
func (c Config) HostSide() mod.Side {
	side, _ := mod.ParseSide(c.Side)
	return side
}

func normalizePaths(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		v := strings.TrimSpace(p)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

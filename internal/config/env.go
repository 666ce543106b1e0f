package config

import (
	"fmt"

	"github.com/amterp/swatch/internal/model"
	"github.com/caarlos0/env/v11"
)

// EnvOverrides holds settings that take precedence over config.toml.
type EnvOverrides struct {
	DataDir string `env:"SWATCH_DATA_DIR"`
	Storage string `env:"SWATCH_STORAGE"`
}

// ParseEnv loads overrides from environment variables.
func ParseEnv() (EnvOverrides, error) {
	var o EnvOverrides
	if err := env.Parse(&o); err != nil {
		return EnvOverrides{}, fmt.Errorf("parse env: %w", err)
	}
	return o, nil
}

// Apply returns a copy of cfg with non-empty overrides applied.
// A nil cfg is treated as an empty config.
func (o EnvOverrides) Apply(cfg *model.GlobalConfig) *model.GlobalConfig {
	out := model.GlobalConfig{}
	if cfg != nil {
		out = *cfg
	}
	if o.DataDir != "" {
		out.DataDir = o.DataDir
	}
	if o.Storage != "" {
		out.Storage = o.Storage
	}
	return &out
}

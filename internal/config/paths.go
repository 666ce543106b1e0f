package config

import (
	"os"
	"path/filepath"
)

const (
	GlobalConfigDir = ".config/swatch"
	ConfigFileName  = "config.toml"
)

// Paths provides path resolution for swatch data files.
type Paths struct {
	configDir string
	dataDir   string // Custom location from config or env, empty for default
}

// NewPaths creates a Paths resolver. An empty dataDir stores data alongside the config.
func NewPaths(configDir, dataDir string) *Paths {
	return &Paths{
		configDir: configDir,
		dataDir:   dataDir,
	}
}

// ConfigDir returns the directory holding config.toml.
func (p *Paths) ConfigDir() string {
	return p.configDir
}

// ConfigPath returns the global config file path.
func (p *Paths) ConfigPath() string {
	if p.configDir == "" {
		return ""
	}
	return filepath.Join(p.configDir, ConfigFileName)
}

// DataDir returns the directory the key-value store lives in.
// Relative custom locations resolve against the config directory.
func (p *Paths) DataDir() string {
	if p.dataDir == "" {
		return p.configDir
	}
	if filepath.IsAbs(p.dataDir) {
		return p.dataDir
	}
	return filepath.Join(p.configDir, p.dataDir)
}

// WithDataDir returns a copy of p using dataDir for data files.
func (p *Paths) WithDataDir(dataDir string) *Paths {
	return &Paths{configDir: p.configDir, dataDir: dataDir}
}

// GlobalConfigDirPath returns the directory for global config, or "" if home is unknown.
func GlobalConfigDirPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, GlobalConfigDir)
}

// DefaultPaths returns paths rooted at the user's global config directory.
func DefaultPaths() *Paths {
	return NewPaths(GlobalConfigDirPath(), "")
}

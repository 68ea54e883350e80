package config

import (
	"flag"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/nibzard/taskpad/internal/appdir"
	"github.com/nibzard/taskpad/internal/kv"
)

// LoadWithSources loads configuration and tracks the source of each value.
// Sources apply in priority order:
// 1. Defaults
// 2. User config file (~/.taskpad/taskpad.toml or OS-specific config dir)
// 3. Project config file (taskpad.toml or .taskpad.toml in current directory)
// 4. Environment variables
// 5. CLI flags
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	sources := make(map[string]ConfigSource)
	cfg := &Config{}

	// 1. Set defaults
	setDefaults(cfg)
	for _, field := range configFields() {
		sources[field] = SourceDefault
	}

	// 2. Try to load from user config file
	if userConfigFile := findUserConfigFile(); userConfigFile != "" {
		if err := loadConfigFile(cfg, userConfigFile, sources, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
	}

	// 3. Try to load from project config file (overrides user config)
	if projectConfigFile := findProjectConfigFile(); projectConfigFile != "" {
		if err := loadConfigFile(cfg, projectConfigFile, sources, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
	}

	// 4. Override from environment
	loadFromEnv(cfg, sources)

	// 5. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args, sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return &ConfigWithSources{
		Config:  cfg,
		Sources: sources,
	}, nil
}

// loadConfigFile decodes a TOML file over cfg and records which keys it set.
func loadConfigFile(cfg *Config, path string, sources map[string]ConfigSource, source ConfigSource) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	for _, field := range configFields() {
		if md.IsDefined(field) && sources != nil {
			sources[field] = source
		}
	}
	cfg.Files = append(cfg.Files, path)
	return nil
}

// finalizeConfig computes derived values and validates the result.
func finalizeConfig(cfg *Config) error {
	cfg.StoreBackend = kv.NormalizeBackend(cfg.StoreBackend)
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Expand ~ in paths
	cfg.LogDir = expandPath(cfg.LogDir)
	if cfg.StorePath == "" {
		cfg.StorePath = appdir.StorePath(appdir.Home(), cfg.StoreBackend)
	} else {
		cfg.StorePath = expandPath(cfg.StorePath)
	}
	return nil
}

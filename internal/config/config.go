// Package config provides Viper-based configuration loading for the armory host.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// LoadoutConfig describes the weapons an entity is created with.
type LoadoutConfig struct {
	// WeaponsDir is the directory holding weapon definition YAML files.
	WeaponsDir string `mapstructure:"weapons_dir"`
	// Weapons lists weapon definition IDs in slot order. May be empty.
	Weapons []string `mapstructure:"weapons"`
	// StartSingleFire overrides each weapon's single_fire flag when set.
	StartSingleFire *bool `mapstructure:"start_single_fire"`
}

// FrameConfig holds host update loop settings.
type FrameConfig struct {
	// Interval is the duration of one frame.
	Interval time.Duration `mapstructure:"interval"`
	// InputBuffer is the number of queued input actions accepted between frames.
	InputBuffer int `mapstructure:"input_buffer"`
}

// ScriptingConfig holds Lua hook settings.
type ScriptingConfig struct {
	// Dir is the directory of *.lua hook scripts. Empty disables scripting.
	Dir string `mapstructure:"dir"`
	// InstructionLimit caps the Lua opcodes per hook call; 0 uses the default.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Loadout   LoadoutConfig   `mapstructure:"loadout"`
	Frame     FrameConfig     `mapstructure:"frame"`
	Scripting ScriptingConfig `mapstructure:"scripting"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLoadout(c.Loadout); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateFrame(c.Frame); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Scripting.InstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("scripting.instruction_limit must be >= 0, got %d", c.Scripting.InstructionLimit))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateLoadout(l LoadoutConfig) error {
	var errs []string
	if len(l.Weapons) > 0 && l.WeaponsDir == "" {
		errs = append(errs, "loadout.weapons_dir must not be empty when loadout.weapons is set")
	}
	for i, id := range l.Weapons {
		if strings.TrimSpace(id) == "" {
			errs = append(errs, fmt.Sprintf("loadout.weapons[%d] must not be empty", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateFrame(f FrameConfig) error {
	var errs []string
	if f.Interval <= 0 {
		errs = append(errs, fmt.Sprintf("frame.interval must be > 0, got %s", f.Interval))
	}
	if f.InputBuffer < 1 {
		errs = append(errs, fmt.Sprintf("frame.input_buffer must be >= 1, got %d", f.InputBuffer))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with ARMORY_ prefix
	v.SetEnvPrefix("ARMORY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Viper instance holding only the default values.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("loadout.weapons_dir", "content/weapons")
	v.SetDefault("loadout.weapons", []string{})

	v.SetDefault("frame.interval", "16ms")
	v.SetDefault("frame.input_buffer", 64)

	v.SetDefault("scripting.dir", "")
	v.SetDefault("scripting.instruction_limit", 0)
}

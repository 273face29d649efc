package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Loadout: LoadoutConfig{
			WeaponsDir: "content/weapons",
			Weapons:    []string{"combat_knife", "service_pistol"},
		},
		Frame: FrameConfig{
			Interval:    16 * time.Millisecond,
			InputBuffer: 64,
		},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
logging:
  level: debug
  format: console
loadout:
  weapons_dir: /tmp/weapons
  weapons: [combat_knife, service_pistol, carbine]
  start_single_fire: true
frame:
  interval: 20ms
scripting:
  dir: /tmp/scripts
  instruction_limit: 5000
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/tmp/weapons", cfg.Loadout.WeaponsDir)
	assert.Equal(t, []string{"combat_knife", "service_pistol", "carbine"}, cfg.Loadout.Weapons)
	require.NotNil(t, cfg.Loadout.StartSingleFire)
	assert.True(t, *cfg.Loadout.StartSingleFire)
	assert.Equal(t, 20*time.Millisecond, cfg.Frame.Interval)
	assert.Equal(t, 64, cfg.Frame.InputBuffer, "input_buffer falls back to its default")
	assert.Equal(t, 5000, cfg.Scripting.InstructionLimit)
}

func TestLoadEmptyLoadout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: warn\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.Loadout.Weapons)
	assert.Nil(t, cfg.Loadout.StartSingleFire)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "env.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: info\n"), 0644))
	t.Setenv("ARMORY_LOGGING_LEVEL", "error")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestDefaultsAreValid(t *testing.T) {
	cfg, err := LoadFromViper(Defaults())
	require.NoError(t, err)
	assert.Equal(t, 16*time.Millisecond, cfg.Frame.Interval)
}

func TestValidateLoggingLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := validConfig()
		cfg.Logging.Level = level
		assert.NoError(t, cfg.Validate(), "level %q should be valid", level)
	}
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingFormat(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		cfg := validConfig()
		cfg.Logging.Format = format
		assert.NoError(t, cfg.Validate(), "format %q should be valid", format)
	}
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoadoutRequiresDir(t *testing.T) {
	cfg := validConfig()
	cfg.Loadout.WeaponsDir = ""
	assert.Error(t, cfg.Validate())

	cfg.Loadout.Weapons = nil
	assert.NoError(t, cfg.Validate(), "an empty loadout needs no weapons_dir")
}

func TestValidateLoadoutBlankID(t *testing.T) {
	cfg := validConfig()
	cfg.Loadout.Weapons = []string{"combat_knife", "  "}
	assert.ErrorContains(t, cfg.Validate(), "loadout.weapons[1]")
}

func TestValidateFrame(t *testing.T) {
	cfg := validConfig()
	cfg.Frame.Interval = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Frame.InputBuffer = 0
	assert.Error(t, cfg.Validate())
}

func TestValidateReportsAllViolations(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	cfg.Frame.Interval = 0
	cfg.Scripting.InstructionLimit = -1
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "frame.interval")
	assert.Contains(t, err.Error(), "scripting.instruction_limit")
}

// Property-based tests

func TestPropertyPositiveIntervalAccepted(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ms := rapid.IntRange(1, 10_000).Draw(t, "interval_ms")
		cfg := validConfig()
		cfg.Frame.Interval = time.Duration(ms) * time.Millisecond
		if err := cfg.Validate(); err != nil {
			t.Fatalf("valid interval %dms rejected: %v", ms, err)
		}
	})
}

func TestPropertyNegativeInstructionLimitRejected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		limit := rapid.IntRange(-100_000, -1).Draw(t, "limit")
		cfg := validConfig()
		cfg.Scripting.InstructionLimit = limit
		if err := cfg.Validate(); err == nil {
			t.Fatalf("instruction_limit %d accepted", limit)
		}
	})
}

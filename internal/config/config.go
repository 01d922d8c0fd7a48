package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	UI       UIConfig
	Motion   MotionConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	// CellWidth and CellHeight are the fixed card footprint including
	// margins; the grid layout derives everything from them.
	CellWidth  int
	CellHeight int
	// FPS is the frame rate the timeline is ticked at while animating.
	FPS int
}

// MotionConfig holds choreography settings.
type MotionConfig struct {
	// Transform pins a specific motion strategy by key; empty means random
	// selection among the enabled ones.
	Transform string
}

// Load reads configuration from file and env. Env var overrides use prefix
// CARDWALL_. A missing config file is fine; defaults apply.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "cardwall", "cardwall.db"))
	v.SetDefault("ui.cellwidth", 22)
	v.SetDefault("ui.cellheight", 7)
	v.SetDefault("ui.fps", 30)
	v.SetDefault("motion.transform", "")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("CARDWALL_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "cardwall"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("CARDWALL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return normalize(c), nil
}

// normalize clamps nonsense values back to usable defaults rather than
// letting a bad config produce a degenerate layout on every frame.
func normalize(c Config) Config {
	if c.UI.CellWidth < 8 || c.UI.CellWidth > 80 {
		c.UI.CellWidth = 22
	}
	if c.UI.CellHeight < 3 || c.UI.CellHeight > 24 {
		c.UI.CellHeight = 7
	}
	if c.UI.FPS < 10 || c.UI.FPS > 120 {
		c.UI.FPS = 30
	}
	return c
}

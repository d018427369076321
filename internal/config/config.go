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
	Log      LogConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path     string
	SeedDemo bool `mapstructure:"seed_demo"`
}

// UIConfig holds presentation and orchestration timing settings.
type UIConfig struct {
	// LatencyMS is the simulated round-trip delay applied to login,
	// registration and profile updates.
	LatencyMS int `mapstructure:"latency_ms"`
	// NoticeTTLMS is how long a notification stays on screen.
	NoticeTTLMS    int    `mapstructure:"notice_ttl_ms"`
	CurrencySymbol string `mapstructure:"currency_symbol"`
}

// LogConfig holds zap settings. Logs go to a file because stdout belongs to
// the terminal UI.
type LogConfig struct {
	Path  string
	Level string
}

// Load reads configuration from file and env. Env var overrides use prefix CONTACASA_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "contacasa", "contacasa.db"))
	v.SetDefault("database.seed_demo", true)
	v.SetDefault("ui.latency_ms", 500)
	v.SetDefault("ui.notice_ttl_ms", 3000)
	v.SetDefault("ui.currency_symbol", "R$")
	v.SetDefault("log.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "contacasa", "contacasa.log"))
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("CONTACASA_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "contacasa"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("CONTACASA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

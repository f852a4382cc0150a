package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Log      LogConfig
	User     UserConfig
	UI       UIConfig
	Store    StoreConfig
}

// DatabaseConfig holds sqlite settings. Migrations is empty unless the
// embedded migrations should be replaced by a directory on disk.
type DatabaseConfig struct {
	Path       string
	Migrations string
}

// LogConfig holds zap settings.
type LogConfig struct {
	Env   string
	Level string
	Path  string
}

// UserConfig describes the signed-in user. Roles drive the assign view.
type UserConfig struct {
	Email string
	Roles []string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	PageSize    int    `mapstructure:"page_size"`
	StartAuthor string `mapstructure:"start_author"`
}

// StoreConfig bounds the async work the store runs at once.
type StoreConfig struct {
	MaxInflight int64 `mapstructure:"max_inflight"`
}

const envPrefix = "AUTHORPUBS"

// DefaultPath is where Load and Save look when AUTHORPUBS_CONFIG is unset.
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "authorpubs", "config.toml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "authorpubs", "authorpubs.db"))
	v.SetDefault("database.migrations", "")
	v.SetDefault("log.env", "dev")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", filepath.Join(os.Getenv("HOME"), ".local", "state", "authorpubs", "authorpubs.log"))
	v.SetDefault("user.email", "")
	v.SetDefault("user.roles", []string{})
	v.SetDefault("ui.page_size", 10)
	v.SetDefault("ui.start_author", "/authors/1")
	v.SetDefault("store.max_inflight", 4)
}

// Load reads configuration from file and env. Env var overrides use prefix AUTHORPUBS_.
// An explicit path wins over AUTHORPUBS_CONFIG.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv(envPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Dir(DefaultPath()))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.UI.PageSize <= 0 {
		c.UI.PageSize = 10
	}
	if c.Store.MaxInflight <= 0 {
		c.Store.MaxInflight = 1
	}
	return c, nil
}

// Save writes the provided config to path (DefaultPath when empty),
// creating the config directory if needed.
func Save(path string, cfg Config) error {
	if path == "" {
		path = os.Getenv(envPrefix + "_CONFIG")
	}
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("database.migrations", cfg.Database.Migrations)
	v.Set("log.env", cfg.Log.Env)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.path", cfg.Log.Path)
	v.Set("user.email", cfg.User.Email)
	v.Set("user.roles", cfg.User.Roles)
	v.Set("ui.page_size", cfg.UI.PageSize)
	v.Set("ui.start_author", cfg.UI.StartAuthor)
	v.Set("store.max_inflight", cfg.Store.MaxInflight)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

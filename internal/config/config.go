package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/pbaille/notecat/internal/domain"
)

// Config holds the settings a session starts with
type Config struct {
	DB        string        `mapstructure:"db"`
	Addr      string        `mapstructure:"addr"`
	Provider  string        `mapstructure:"provider"`
	Author    Author        `mapstructure:"author"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RateLimit float64       `mapstructure:"rate_limit"`
	Admin     bool          `mapstructure:"admin"`
	Verbose   bool          `mapstructure:"verbose"`
}

// Author is the identity stamped on notes created by this session
type Author struct {
	Name   string `mapstructure:"name"`
	Avatar string `mapstructure:"avatar"`
}

// Dir returns the notecat home directory
func Dir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolve home: %w", err)
	}
	return filepath.Join(home, ".notecat"), nil
}

// New returns a viper instance with defaults, env binding and the config file
// at path. An empty path looks for config.yaml in the notecat home directory.
func New(path string) (*viper.Viper, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault("db", filepath.Join(dir, "settings.db"))
	v.SetDefault("addr", ":8080")
	v.SetDefault("provider", "")
	v.SetDefault("author.name", "User Name")
	v.SetDefault("author.avatar", "/placeholder.svg")
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("rate_limit", 0)
	v.SetDefault("admin", true)
	v.SetDefault("verbose", false)

	v.SetEnvPrefix("notecat")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return nil, fmt.Errorf("expand config path: %w", err)
		}
		v.SetConfigFile(expanded)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return v, nil
}

// Decode unmarshals v into a Config and validates it
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	db, err := homedir.Expand(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("expand db path: %w", err)
	}
	cfg.DB = db

	if cfg.Provider != "" && !domain.Provider(cfg.Provider).Valid() {
		return nil, &domain.ConfigurationError{
			Provider: domain.Provider(cfg.Provider),
			Message:  "invalid AI model selected",
		}
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}
	if cfg.RateLimit < 0 {
		return nil, fmt.Errorf("rate_limit must not be negative, got %v", cfg.RateLimit)
	}

	return &cfg, nil
}

// Load reads the config file at path, if any, and decodes it
func Load(path string) (*Config, error) {
	v, err := New(path)
	if err != nil {
		return nil, err
	}
	return Decode(v)
}

// Package config reads the catalog settings from the environment.
//
// Variables use the CATALOG_ prefix and a double underscore for nesting,
// so CATALOG_SERVER__PORT ends up in Config.Server.Port. Values missing from
// the environment keep the defaults from Default.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "CATALOG_"

type Config struct {
	Env      string         `koanf:"env" validate:"required,oneof=development test production"`
	Server   ServerConfig   `koanf:"server" validate:"required"`
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Storage  StorageConfig  `koanf:"storage" validate:"required"`
	Session  SessionConfig  `koanf:"session" validate:"required"`
	Admin    AdminConfig    `koanf:"admin"`
	Log      LogConfig      `koanf:"log"`
}

type ServerConfig struct {
	Port         string        `koanf:"port" validate:"required,numeric"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"gte=0"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"gte=0"`
}

type DatabaseConfig struct {
	DSN          string `koanf:"dsn" validate:"required"`
	MaxOpenConns int    `koanf:"max_open_conns" validate:"gte=0"`
	MaxIdleConns int    `koanf:"max_idle_conns" validate:"gte=0"`
}

// StorageConfig points at the directory uploaded product images live in.
type StorageConfig struct {
	ImageDir string `koanf:"image_dir" validate:"required"`
}

type SessionConfig struct {
	Name   string `koanf:"name" validate:"required"`
	Secret string `koanf:"secret" validate:"required,min=16"`
}

// AdminConfig seeds the admin account on startup. Both fields empty means
// no account is seeded.
type AdminConfig struct {
	Username string `koanf:"username" validate:"required_with=Password"`
	Password string `koanf:"password" validate:"omitempty,min=8"`
}

type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=trace debug info warn error"`
}

// Default returns the configuration used for every key the environment
// leaves unset.
func Default() Config {
	return Config{
		Env: "development",
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			MaxOpenConns: 10,
			MaxIdleConns: 5,
		},
		Storage: StorageConfig{ImageDir: "public/images"},
		Session: SessionConfig{Name: "catalog_session"},
		Log:     LogConfig{Level: "info"},
	}
}

// IsDevelopment reports whether the app runs locally.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// LoadDotEnv loads the given .env files into the process environment.
// Missing files are skipped and variables already set win.
func LoadDotEnv(paths ...string) []string {
	var loaded []string
	for _, p := range paths {
		if err := godotenv.Load(p); err == nil {
			loaded = append(loaded, p)
		}
	}
	return loaded
}

// Load builds the configuration from CATALOG_* variables and validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

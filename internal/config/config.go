package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the server settings. Values come from, in order of precedence:
// process environment, .env files, built-in defaults.
type Config struct {
	HTTPAddr        string        `mapstructure:"HTTP_ADDR"`
	Port            string        `mapstructure:"PORT"`
	AllowedOrigin   string        `mapstructure:"ALLOWED_ORIGIN"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	LogFormat       string        `mapstructure:"LOG_FORMAT"`
	RoomCodeLength  int           `mapstructure:"ROOM_CODE_LENGTH"`
	SendBuffer      int           `mapstructure:"SEND_BUFFER"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

var defaults = map[string]interface{}{
	"HTTP_ADDR":        "",
	"PORT":             "3000",
	"ALLOWED_ORIGIN":   "*",
	"LOG_LEVEL":        "info",
	"LOG_FORMAT":       "text",
	"ROOM_CODE_LENGTH": 5,
	"SEND_BUFFER":      256,
	"SHUTDOWN_TIMEOUT": "5s",
}

// Load reads the given .env files (missing ones are skipped) and the environment.
func Load(envFiles ...string) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	for _, path := range envFiles {
		values, err := godotenv.Read(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		for k, val := range values {
			v.SetDefault(k, val)
		}
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.RoomCodeLength <= 0 {
		return nil, fmt.Errorf("ROOM_CODE_LENGTH must be positive, got %d", cfg.RoomCodeLength)
	}
	return &cfg, nil
}

// Addr is HTTP_ADDR when set, otherwise every interface on PORT.
func (c *Config) Addr() string {
	if c.HTTPAddr != "" {
		return c.HTTPAddr
	}
	return ":" + c.Port
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings holds the runtime configuration for the server. Values come
// from defaults, an optional config file, and ARMADA_* environment
// variables, in increasing precedence. CLI flags may override fields
// after loading.
type Settings struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	BoardSize      int           `mapstructure:"board_size"`
	ScriptedDelay  time.Duration `mapstructure:"scripted_delay"`
	ScriptedNation string        `mapstructure:"scripted_nation"`
	LogLevel       string        `mapstructure:"log_level"`
}

// Load reads settings from the environment and, when path is non-empty,
// the named config file.
func Load(path string) (*Settings, error) {
	v := viper.New()

	v.SetDefault("host", "localhost")
	v.SetDefault("port", 8080)
	v.SetDefault("board_size", 10)
	v.SetDefault("scripted_delay", 1500*time.Millisecond)
	v.SetDefault("scripted_nation", "Russia")
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("ARMADA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks settings ranges. Board size is bounded by the
// single-letter column form of the coordinate codec.
func (s *Settings) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("invalid port: %d", s.Port)
	}
	if s.BoardSize < 5 || s.BoardSize > 26 {
		return fmt.Errorf("invalid board size: %d (want 5-26)", s.BoardSize)
	}
	if s.ScriptedDelay < 0 {
		return fmt.Errorf("invalid scripted delay: %s", s.ScriptedDelay)
	}
	return nil
}

// Addr returns the host:port listen address.
func (s *Settings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

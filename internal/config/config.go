package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	URL     string
	Timeout time.Duration
}

type SessionConfig struct {
	Path string
}

type AppConfig struct {
	Server  ServerConfig
	Session SessionConfig
	Verbose bool
}

func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "shelfctl"))
	}

	v.SetEnvPrefix("SHELFCTL")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.StringToTimeDurationHookFunc()
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.url", "http://127.0.0.1:5000")
	v.SetDefault("server.timeout", "30s")
	v.SetDefault("session.path", defaultSessionPath())
	v.SetDefault("verbose", false)
}

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".shelfctl-session.json"
	}
	return filepath.Join(dir, "shelfctl", "session.json")
}

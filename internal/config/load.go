package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from path when it is non-empty, then applies
// environment overrides. PORT is honoured when no address was configured.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("http.addr", cfg.HTTP.Addr)
	v.SetDefault("http.mode", cfg.HTTP.Mode)
	v.SetDefault("http.static_dir", cfg.HTTP.StaticDir)
	v.SetDefault("terminal.char_interval", cfg.Terminal.CharInterval)
	v.SetDefault("terminal.script", cfg.Terminal.Script)
	v.SetDefault("admin.token", cfg.Admin.Token)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" && cfg.HTTP.Addr == DefaultAddr {
		cfg.HTTP.Addr = ":" + port
	}
	cfg.Terminal.Script = os.ExpandEnv(cfg.Terminal.Script)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

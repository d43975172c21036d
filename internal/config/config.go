package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Data      DataConfig      `mapstructure:"data"`
	Breach    BreachConfig    `mapstructure:"breach"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
}

// DataConfig selects where the dictionary and blacklist sets come from.
// When RedisURL is set, the blacklist is read from the Redis set named by
// BlacklistKey instead of the blacklist file.
type DataConfig struct {
	WordlistFile  string `mapstructure:"wordlist_file"`
	BlacklistFile string `mapstructure:"blacklist_file"`
	RedisURL      string `mapstructure:"redis_url"`
	BlacklistKey  string `mapstructure:"blacklist_key"`
}

type BreachConfig struct {
	HIBPEnabled bool          `mapstructure:"hibp_enabled"`
	HIBPBaseURL string        `mapstructure:"hibp_base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads config.yaml from the working directory or ./config, applies
// PASSGUARD_* environment overrides, and falls back to defaults when no
// file is present.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("PASSGUARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.max_body_bytes", 1<<20)

	v.SetDefault("data.wordlist_file", "data/common_words.txt")
	v.SetDefault("data.blacklist_file", "data/top_10k_passwords.txt")
	v.SetDefault("data.redis_url", "")
	v.SetDefault("data.blacklist_key", "passguard:blacklist")

	v.SetDefault("breach.hibp_enabled", false)
	v.SetDefault("breach.hibp_base_url", "https://api.pwnedpasswords.com/range")
	v.SetDefault("breach.timeout", 5*time.Second)
	v.SetDefault("breach.cache_ttl", 10*time.Minute)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 20.0)
	v.SetDefault("rate_limit.burst", 40)

	v.SetDefault("log.level", "info")
}

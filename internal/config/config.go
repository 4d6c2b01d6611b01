package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Cache     CacheConfig     `mapstructure:"cache"`
	CoinGecko CoinGeckoConfig `mapstructure:"coingecko"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	App       AppConfig       `mapstructure:"app"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Backend string `mapstructure:"backend"`
	// TTL applies to the redis backend only. Zero keeps entries forever,
	// which matches the immutability of historical price windows.
	TTL time.Duration `mapstructure:"ttl"`
}

// CoinGeckoConfig holds upstream API configuration
type CoinGeckoConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	PingAttempts uint          `mapstructure:"ping_attempts"`
	PingDelay    time.Duration `mapstructure:"ping_delay"`
}

// RedisConfig holds Redis-related configuration
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RateLimitConfig holds inbound rate limiting configuration
type RateLimitConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Capacity     int64         `mapstructure:"capacity"`
	RefillRate   int64         `mapstructure:"refill_rate"`
	RefillPeriod time.Duration `mapstructure:"refill_period"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	SupportedCoins   []string `mapstructure:"supported_coins"`
	DefaultCoin      string   `mapstructure:"default_coin"`
	DefaultRangeDays int      `mapstructure:"default_range_days"`
	PrefsBackend     string   `mapstructure:"prefs_backend"`
	LogLevel         string   `mapstructure:"log_level"`
}

// Load loads configuration from environment variables and defaults
func Load() (*Config, error) {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.shutdown_timeout", "30s")

	viper.SetDefault("cache.backend", "memory")
	viper.SetDefault("cache.ttl", "0")

	viper.SetDefault("coingecko.base_url", "https://api.coingecko.com/api/v3")
	viper.SetDefault("coingecko.timeout", "10s")
	viper.SetDefault("coingecko.ping_attempts", 3)
	viper.SetDefault("coingecko.ping_delay", "500ms")

	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("ratelimit.enabled", false)
	viper.SetDefault("ratelimit.capacity", 20)
	viper.SetDefault("ratelimit.refill_rate", 10)
	viper.SetDefault("ratelimit.refill_period", "1s")

	viper.SetDefault("app.supported_coins", []string{"bitcoin", "ethereum", "litecoin", "dogecoin"})
	viper.SetDefault("app.default_coin", "bitcoin")
	viper.SetDefault("app.default_range_days", 7)
	viper.SetDefault("app.prefs_backend", "memory")
	viper.SetDefault("app.log_level", "info")

	// Bind environment variables
	viper.BindEnv("server.port", "PORT")
	viper.BindEnv("cache.backend", "CACHE_BACKEND")
	viper.BindEnv("cache.ttl", "CACHE_TTL")
	viper.BindEnv("coingecko.base_url", "COINGECKO_BASE_URL")
	viper.BindEnv("coingecko.timeout", "COINGECKO_TIMEOUT")
	viper.BindEnv("coingecko.ping_attempts", "COINGECKO_PING_ATTEMPTS")
	viper.BindEnv("coingecko.ping_delay", "COINGECKO_PING_DELAY")
	viper.BindEnv("redis.addr", "REDIS_ADDR")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")
	viper.BindEnv("ratelimit.enabled", "RATELIMIT_ENABLED")
	viper.BindEnv("ratelimit.capacity", "RATELIMIT_CAPACITY")
	viper.BindEnv("ratelimit.refill_rate", "RATELIMIT_REFILL_RATE")
	viper.BindEnv("ratelimit.refill_period", "RATELIMIT_REFILL_PERIOD")
	viper.BindEnv("app.supported_coins", "SUPPORTED_COINS")
	viper.BindEnv("app.default_coin", "DEFAULT_COIN")
	viper.BindEnv("app.default_range_days", "DEFAULT_RANGE_DAYS")
	viper.BindEnv("app.prefs_backend", "PREFS_BACKEND")
	viper.BindEnv("app.log_level", "LOG_LEVEL")

	// Try to read from config file (optional)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Error reading config file: %v", err)
		}
		// Continue with environment variables and defaults
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

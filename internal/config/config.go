package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Allocation AllocationConfig `mapstructure:"allocation"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Mail       MailConfig       `mapstructure:"mail"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	MaxHeaderBytes int           `mapstructure:"max_header_bytes"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host" envconfig:"DB_HOST"`
	Port     int    `mapstructure:"port" envconfig:"DB_PORT"`
	User     string `mapstructure:"user" envconfig:"DB_USER"`
	Password string `mapstructure:"password" envconfig:"DB_PASSWORD"`
	Name     string `mapstructure:"name" envconfig:"DB_NAME"`
	SSLMode  string `mapstructure:"sslmode" envconfig:"DB_SSLMODE"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret" envconfig:"JWT_SECRET"`
	ExpiryHours int    `mapstructure:"expiry_hours"`
}

type RedisConfig struct {
	URL string `mapstructure:"url" envconfig:"REDIS_URL"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// AllocationConfig locates the rules file and sets the cache horizons.
type AllocationConfig struct {
	RulesPath    string        `mapstructure:"rules_path"`
	RulesTTL     time.Duration `mapstructure:"rules_ttl"`
	DirectoryTTL time.Duration `mapstructure:"directory_ttl"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// MailConfig drives the reminder worker's SMTP sender.
type MailConfig struct {
	Host     string `mapstructure:"host" envconfig:"MAIL_HOST"`
	Port     int    `mapstructure:"port" envconfig:"MAIL_PORT"`
	User     string `mapstructure:"user" envconfig:"MAIL_USER"`
	Password string `mapstructure:"password" envconfig:"MAIL_PASSWORD"`
	From     string `mapstructure:"from"`
	To       string `mapstructure:"to"`
}

// Load reads config.yml and then lets environment variables override the
// secrets, so deployments never need credentials in the file.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 15*time.Second)
	viper.SetDefault("server.write_timeout", 15*time.Second)
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("jwt.expiry_hours", 12)
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("allocation.rules_path", "config/allocation_rules.json")
	viper.SetDefault("allocation.rules_ttl", time.Minute)
	viper.SetDefault("allocation.directory_ttl", 2*time.Minute)
	viper.SetDefault("rate_limit.requests_per_second", 50)
	viper.SetDefault("rate_limit.burst", 100)

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process("", &cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to read database environment: %w", err)
	}
	if err := envconfig.Process("", &cfg.JWT); err != nil {
		return nil, fmt.Errorf("failed to read jwt environment: %w", err)
	}
	if err := envconfig.Process("", &cfg.Redis); err != nil {
		return nil, fmt.Errorf("failed to read redis environment: %w", err)
	}
	if err := envconfig.Process("", &cfg.Mail); err != nil {
		return nil, fmt.Errorf("failed to read mail environment: %w", err)
	}

	return &cfg, nil
}

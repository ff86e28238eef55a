package config

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Analysis AnalysisConfig
	Chat     ChatConfig
	Email    EmailConfig
	Limits   LimitsConfig
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	URL            string
	MaxConnections int
	MaxIdleConns   int
	MigrationsPath string
}

type RedisConfig struct {
	URL string
}

// AnalysisConfig points at the external contract analysis service.
type AnalysisConfig struct {
	BaseURL   string
	CSRFToken string
	Timeout   time.Duration
}

type ChatConfig struct {
	BaseURL string
	Timeout time.Duration
}

type EmailConfig struct {
	Enabled     bool
	Region      string
	FromAddress string
}

type LimitsConfig struct {
	// Per-IP request rate for the public form endpoints.
	RequestsPerMinute int
	// Daily cap on proxied contract analyses per client IP. Mirrors the
	// upstream service's quota so obvious over-use is rejected locally.
	ContractsPerDay int
	MaxFileSize     int64
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.SetEnvPrefix("CHAINSIGHT")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.maxconnections", 25)
	viper.SetDefault("database.maxidleconns", 5)
	viper.SetDefault("database.migrationspath", "migrations")
	viper.SetDefault("analysis.timeout", "60s")
	viper.SetDefault("chat.timeout", "30s")
	viper.SetDefault("email.region", "us-east-1")
	viper.SetDefault("email.fromaddress", "ChainSight <onboarding@chainsight.ai>")
	viper.SetDefault("limits.requestsperminute", 30)
	viper.SetDefault("limits.contractsperday", 5)
	viper.SetDefault("limits.maxfilesize", 10*1024*1024)

	var cfg Config
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Override with environment variables
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.Database.URL = url
	}
	if url := os.Getenv("REDIS_URL"); url != "" {
		cfg.Redis.URL = url
	}
	if url := os.Getenv("ANALYSIS_API_URL"); url != "" {
		cfg.Analysis.BaseURL = url
	}
	if token := os.Getenv("ANALYSIS_CSRF_TOKEN"); token != "" {
		cfg.Analysis.CSRFToken = token
	}
	if url := os.Getenv("CHAT_API_URL"); url != "" {
		cfg.Chat.BaseURL = url
	}

	return &cfg, nil
}

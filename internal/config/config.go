package config

import (
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/cybercell/domainintel/internal/risk"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	AI       AIConfig
	Risk     RiskConfig
	Intel    IntelConfig
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
	URL      string
	CacheTTL time.Duration
}

type AuthConfig struct {
	JWTSecret string
}

// AIConfig controls the optional explanation enhancement. An empty APIKey
// disables generation for the process lifetime.
type AIConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// RiskConfig carries the configurable rule sets. Empty slices fall back
// to the stock sets.
type RiskConfig struct {
	HighRiskCountries []string
	SuspiciousTLDs    []string
	FraudKeywords     []string
}

type IntelConfig struct {
	Timeout       time.Duration
	GeoIPEndpoint string
	FeedURL       string
	FeedInterval  time.Duration
	FeedLimit     int
	AnalyzeRPM    int
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.SetEnvPrefix("DOMAININTEL")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.maxconnections", 25)
	viper.SetDefault("database.maxidleconns", 5)
	viper.SetDefault("database.migrationspath", "./migrations")
	viper.SetDefault("redis.cachettl", "10m")
	viper.SetDefault("ai.model", "gpt-4o-mini")
	viper.SetDefault("ai.maxtokens", 500)
	viper.SetDefault("ai.timeout", "10s")
	viper.SetDefault("intel.timeout", "10s")
	viper.SetDefault("intel.geoipendpoint", "https://ipwho.is")
	viper.SetDefault("intel.feedurl", "https://openphish.com/feed.txt")
	viper.SetDefault("intel.feedinterval", "1h")
	viper.SetDefault("intel.feedlimit", 500)
	viper.SetDefault("intel.analyzerpm", 5)

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
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.AI.APIKey = key
	}

	return &cfg, nil
}

// RuleConfig materializes the configured rule sets, falling back to the
// stock sets wherever the deployment left one empty.
func (c *Config) RuleConfig() risk.RuleConfig {
	rc := risk.DefaultRuleConfig()
	if len(c.Risk.HighRiskCountries) > 0 {
		rc.HighRiskCountries = c.Risk.HighRiskCountries
	}
	if len(c.Risk.SuspiciousTLDs) > 0 {
		rc.SuspiciousTLDs = c.Risk.SuspiciousTLDs
	}
	if len(c.Risk.FraudKeywords) > 0 {
		rc.FraudKeywords = c.Risk.FraudKeywords
	}
	return rc
}

// AIEnabled reports whether a generation credential is configured.
// The flag is fixed at startup; there is no runtime toggle.
func (c *Config) AIEnabled() bool {
	return c.AI.APIKey != ""
}

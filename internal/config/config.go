package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"

	"github.com/platformbuilds/loan-approval/internal/engine"
	"github.com/platformbuilds/loan-approval/internal/models"
)

// EnvPrefix prefixes every environment override, e.g. LOAN_APPROVAL_SERVER_GRPC_ADDRESS.
const EnvPrefix = "LOAN_APPROVAL"

// Config captures the settings required to boot the loan approval service.
type Config struct {
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Models     ModelsConfig     `yaml:"models" mapstructure:"models"`
	Prediction PredictionConfig `yaml:"prediction" mapstructure:"prediction"`
	Cache      CacheConfig      `yaml:"cache" mapstructure:"cache"`
	Logging    LoggingConfig    `yaml:"logging" mapstructure:"logging"`
}

// ServerConfig controls the gRPC, REST and metrics listeners.
type ServerConfig struct {
	GRPCAddress     string        `yaml:"grpc_address" mapstructure:"grpc_address"`
	HTTPAddress     string        `yaml:"http_address" mapstructure:"http_address"`
	MetricsAddress  string        `yaml:"metrics_address" mapstructure:"metrics_address"`
	GracefulTimeout time.Duration `yaml:"graceful_timeout" mapstructure:"graceful_timeout"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	RateLimitBurst  int           `yaml:"rate_limit_burst" mapstructure:"rate_limit_burst"`
	CORSOrigins     []string      `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// ModelsConfig locates the two persisted classifiers.
type ModelsConfig struct {
	WithCreditHistory    string `yaml:"with_credit_history" mapstructure:"with_credit_history"`
	WithoutCreditHistory string `yaml:"without_credit_history" mapstructure:"without_credit_history"`
	EagerLoad            bool   `yaml:"eager_load" mapstructure:"eager_load"`
}

// Paths converts the configured locations for the engine.
func (m ModelsConfig) Paths() engine.ArtifactPaths {
	return engine.ArtifactPaths{
		WithCreditHistory:    m.WithCreditHistory,
		WithoutCreditHistory: m.WithoutCreditHistory,
	}
}

// PredictionConfig selects the mode used when neither the request nor the shared
// store names one.
type PredictionConfig struct {
	DefaultMode string `yaml:"default_mode" mapstructure:"default_mode"`
}

// CacheConfig controls the shared store holding the active prediction mode.
type CacheConfig struct {
	Enabled      bool          `yaml:"enabled" mapstructure:"enabled"`
	Addr         string        `yaml:"addr" mapstructure:"addr"`
	Username     string        `yaml:"username" mapstructure:"username"`
	Password     string        `yaml:"password" mapstructure:"password"`
	DB           int           `yaml:"db" mapstructure:"db"`
	DialTimeout  time.Duration `yaml:"dial_timeout" mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	MaxRetries   int           `yaml:"max_retries" mapstructure:"max_retries"`
	TLS          bool          `yaml:"tls" mapstructure:"tls"`
	KeyPrefix    string        `yaml:"key_prefix" mapstructure:"key_prefix"`
}

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load initialises Config from defaults, an optional YAML file and LOAN_APPROVAL_*
// environment overrides. An explicit path (argument or LOAN_APPROVAL_CONFIG) must
// exist; otherwise config.yaml is looked up in . and ./configs.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.grpc_address", ":50051")
	v.SetDefault("server.http_address", ":8080")
	v.SetDefault("server.metrics_address", ":2112")
	v.SetDefault("server.graceful_timeout", 10*time.Second)
	v.SetDefault("server.rate_limit_rps", 50)
	v.SetDefault("server.rate_limit_burst", 100)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("models.with_credit_history", "configs/models/best_model_with_credit_history.yaml")
	v.SetDefault("models.without_credit_history", "configs/models/best_model_without_credit_history.yaml")
	v.SetDefault("models.eager_load", false)
	v.SetDefault("prediction.default_mode", string(models.ModeWithCreditHistory))
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.addr", "")
	v.SetDefault("cache.username", "")
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.dial_timeout", 2*time.Second)
	v.SetDefault("cache.read_timeout", 500*time.Millisecond)
	v.SetDefault("cache.write_timeout", 500*time.Millisecond)
	v.SetDefault("cache.max_retries", 2)
	v.SetDefault("cache.tls", false)
	v.SetDefault("cache.key_prefix", "loan-approval")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// DefaultMode parses the configured default prediction mode.
func (c *Config) DefaultMode() (models.Mode, error) {
	return models.ParseMode(c.Prediction.DefaultMode)
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	if _, err := c.DefaultMode(); err != nil {
		return fmt.Errorf("config: prediction.default_mode: %w", err)
	}
	if strings.TrimSpace(c.Models.WithCreditHistory) == "" {
		return errors.New("config: models.with_credit_history is required")
	}
	if strings.TrimSpace(c.Models.WithoutCreditHistory) == "" {
		return errors.New("config: models.without_credit_history is required")
	}
	if c.Server.RateLimitRPS < 0 || c.Server.RateLimitBurst < 0 {
		return errors.New("config: server rate limits must not be negative")
	}
	if c.Cache.Enabled && strings.TrimSpace(c.Cache.Addr) == "" {
		return errors.New("config: cache.addr is required when cache.enabled is true")
	}
	return nil
}

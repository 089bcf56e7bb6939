// Package config provides configuration management for the flamegraph
// analysis tool.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/viper"

	apperrors "github.com/flamegraph-analysis/pkg/errors"
)

// Config holds all configuration for the application.
type Config struct {
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Mail     MailConfig     `mapstructure:"mail"`
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Log      LogConfig      `mapstructure:"log"`
}

// AnalysisConfig holds hotspot report configuration.
type AnalysisConfig struct {
	// Relevance holds the substrings that mark a frame as domain-relevant.
	Relevance    []string `mapstructure:"relevance"`
	TopN         int      `mapstructure:"top_n"`
	FallbackTopN int      `mapstructure:"fallback_top_n"`
	CategoryTopN int      `mapstructure:"category_top_n"`
	DisplayWidth int      `mapstructure:"display_width"`
}

// MailConfig holds the delivery verification endpoints.
type MailConfig struct {
	IMAP IMAPConfig `mapstructure:"imap"`
	SMTP SMTPConfig `mapstructure:"smtp"`
}

// IMAPConfig holds mailbox verification defaults.
type IMAPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Folder   string `mapstructure:"folder"`
}

// SMTPConfig holds send-test defaults.
type SMTPConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	From           string `mapstructure:"from"`
	To             string `mapstructure:"to"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// DatabaseConfig holds run-history database configuration.
type DatabaseConfig struct {
	Type     string `mapstructure:"type"` // sqlite, mysql or postgres
	Path     string `mapstructure:"path"` // sqlite database file
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	MaxConns int    `mapstructure:"max_conns"`
}

// StorageConfig holds report archive storage configuration.
type StorageConfig struct {
	Type      string `mapstructure:"type"` // cos or local
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	SecretID  string `mapstructure:"secret_id"`
	SecretKey string `mapstructure:"secret_key"`
	Domain    string `mapstructure:"domain"`     // e.g., "myqcloud.com"
	Scheme    string `mapstructure:"scheme"`     // e.g., "https" or "http"
	LocalPath string `mapstructure:"local_path"` // for local storage
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
}

// Load reads configuration from the specified file path.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/flamegraph-analysis")
	}

	if err := v.ReadInConfig(); err != nil {
		// Missing config files fall back to defaults; everything else is
		// a real error.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// defaults only
		} else if os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Config file %s not found, using defaults\n", configPath)
		} else {
			return nil, apperrors.Wrap(apperrors.CodeConfigError, "failed to read config file", err)
		}
	}

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeConfigError, "failed to unmarshal config", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromReader loads configuration from raw bytes (useful for testing).
func LoadFromReader(configType string, content []byte) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeConfigError, "failed to read config", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeConfigError, "failed to unmarshal config", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Analysis defaults
	v.SetDefault("analysis.relevance", []string{"mimecast/robin", "EmailDelivery", "EmailReceipt"})
	v.SetDefault("analysis.top_n", 30)
	v.SetDefault("analysis.fallback_top_n", 20)
	v.SetDefault("analysis.category_top_n", 5)
	v.SetDefault("analysis.display_width", 70)

	// Mail defaults, pointing at a local test server
	v.SetDefault("mail.imap.host", "localhost")
	v.SetDefault("mail.imap.port", 993)
	v.SetDefault("mail.imap.folder", "INBOX")
	v.SetDefault("mail.smtp.host", "localhost")
	v.SetDefault("mail.smtp.port", 2525)
	v.SetDefault("mail.smtp.from", "tony@example.com")
	v.SetDefault("mail.smtp.to", "pepper@example.com")
	v.SetDefault("mail.smtp.timeout_seconds", 10)

	// Database defaults
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.path", "./flamegraph-analysis.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.max_conns", 10)

	// Storage defaults
	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.local_path", "./archive")

	// Log defaults
	v.SetDefault("log.level", "info")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Database.Type {
	case "sqlite", "mysql", "postgres":
	default:
		return apperrors.New(apperrors.CodeConfigError,
			fmt.Sprintf("unsupported database type: %s", c.Database.Type))
	}

	if c.Analysis.TopN < 1 || c.Analysis.FallbackTopN < 1 || c.Analysis.CategoryTopN < 1 {
		return apperrors.New(apperrors.CodeConfigError, "report sizes must be at least 1")
	}

	// Storage config validation is delegated to the storage package.

	return nil
}

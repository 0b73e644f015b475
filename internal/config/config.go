// Package config provides hierarchical configuration for the dashboard
// engine: defaults, an optional YAML config file and COMPRAS_-prefixed
// environment variables, with .env support for local development.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var (
	once sync.Once
	// Logger is the shared logger instance used across the application.
	Logger = logrus.New()
)

// Config is the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Source struct {
		// Endpoint is the deployed web-app URL serving record batches and
		// accepting write payloads.
		Endpoint       string `mapstructure:"endpoint" yaml:"endpoint"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		// WriteEncoding is "json" or "form"; form bodies spare browser
		// deployments a CORS preflight.
		WriteEncoding string `mapstructure:"write_encoding" yaml:"write_encoding"`
	} `mapstructure:"source" yaml:"source"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Report struct {
		OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
	} `mapstructure:"report" yaml:"report"`

	// SynonymsFile points to the YAML keyword table overriding the built-in
	// status/payment synonyms.
	SynonymsFile string `mapstructure:"synonyms_file" yaml:"synonyms_file"`
}

// InitializeConfig loads the configuration: defaults first, then an optional
// config.yaml (current directory or ~/.compras), then COMPRAS_* environment
// variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.compras")
	v.AddConfigPath(".compras")
	v.AddConfigPath(".")

	v.SetEnvPrefix("COMPRAS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			Logger.Warnf("Error reading config file %s: %v", v.ConfigFileUsed(), err)
		}
		// Missing config file is fine; defaults and env vars carry it.
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("source.endpoint", "")
	v.SetDefault("source.timeout_seconds", 30)
	v.SetDefault("source.write_encoding", "json")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("report.output_dir", "reports")

	v.SetDefault("synonyms_file", "")
}

// Delimiter returns the configured CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	if c.CSV.Delimiter == "" {
		return ','
	}
	return []rune(c.CSV.Delimiter)[0]
}

// ConfigureLogging sets up logging based on environment variables and
// returns the configured logger.
func ConfigureLogging() *logrus.Logger {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		Logger.Warnf("Invalid log level '%s', using 'info'", logLevelStr)
		logLevel = logrus.InfoLevel
	}
	Logger.SetLevel(logLevel)

	logFormat := os.Getenv("LOG_FORMAT")
	if strings.ToLower(logFormat) == "json" {
		Logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return Logger
}

// LoadEnv loads environment variables from a .env file if one exists.
func LoadEnv() {
	once.Do(func() {
		envFile := ".env"
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			envFile = filepath.Join("..", ".env")
			if _, err := os.Stat(envFile); os.IsNotExist(err) {
				Logger.Debug("No .env file found, using environment variables")
				return
			}
		}

		if err := godotenv.Load(envFile); err != nil {
			Logger.Warnf("Error loading .env file: %v", err)
			return
		}
		Logger.Infof("Loaded environment variables from %s", envFile)

		ConfigureLogging()
	})
}

// GetEnv retrieves an environment variable with a fallback value if not set.
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/gradus-nz/gradus/internal/catalog"
)

const (
	appName               = "gradus"
	DefaultTranscriptPath = "frost_chat.txt"
)

type Config struct {
	Logging LoggingConfig  `mapstructure:"logging" yaml:"logging"`
	Chat    ChatConfig     `mapstructure:"chat" yaml:"chat"`
	Tables  catalog.Tables `mapstructure:"tables" yaml:"tables"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

type ChatConfig struct {
	TranscriptPath  string `mapstructure:"transcript_path" yaml:"transcript_path"`
	MetricsEnabled  bool   `mapstructure:"metrics_enabled" yaml:"metrics_enabled"`
	MetricsPath     string `mapstructure:"metrics_path" yaml:"metrics_path"`
	MetricsTextfile string `mapstructure:"metrics_textfile" yaml:"metrics_textfile"`
}

// Dir is ~/.config/gradus.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Default is the configuration used when no file or environment overrides
// are present.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "warn", Format: "console"},
		Chat: ChatConfig{
			TranscriptPath: DefaultTranscriptPath,
			MetricsEnabled: true,
		},
		Tables: catalog.Default(),
	}
}

// Load reads configuration from path, or from ~/.config/gradus/config.yaml
// when path is empty. A missing default file is fine; a missing explicit
// file is an error. GRADUS_* environment variables (and a .env file in the
// working directory) override file values.
func Load(path string) (*Config, error) {
	if err := loadEnvFile(".env"); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(appName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("chat.transcript_path", def.Chat.TranscriptPath)
	v.SetDefault("chat.metrics_enabled", def.Chat.MetricsEnabled)
	v.SetDefault("chat.metrics_path", "")
	v.SetDefault("chat.metrics_textfile", "")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.SetConfigName("config")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyTableDefaults(&cfg.Tables)
	if err := cfg.Tables.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tables: %w", err)
	}

	return &cfg, nil
}

// applyTableDefaults fills sections left out of the file. Courses and
// careers are replaced together so the two stay in step.
func applyTableDefaults(t *catalog.Tables) {
	def := catalog.Default()
	if len(t.Courses) == 0 && len(t.Careers) == 0 {
		t.Courses = def.Courses
		t.Careers = def.Careers
	}
	if len(t.FAQ) == 0 {
		t.FAQ = def.FAQ
	}
}

// loadEnvFile loads path into the environment if it exists.
func loadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

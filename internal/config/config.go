package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Data      DataConfig      `yaml:"data" mapstructure:"data"`
	Search    SearchConfig    `yaml:"search" mapstructure:"search"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Results   ResultsConfig   `yaml:"results" mapstructure:"results"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// DataConfig locates the spreadsheet sources. The master file is
// required; contact files are best-effort.
type DataConfig struct {
	MasterFile   string   `yaml:"master_file" mapstructure:"master_file"`
	ContactFiles []string `yaml:"contact_files" mapstructure:"contact_files"`
}

// SearchConfig configures ranking and context sizes. MaxResults bounds
// both keyword search output and the investors sent to Claude.
type SearchConfig struct {
	MaxResults int `yaml:"max_results" mapstructure:"max_results"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key       string  `yaml:"key" mapstructure:"key"`
	Model     string  `yaml:"model" mapstructure:"model"`
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// StoreConfig configures the profile index database.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ResultsConfig configures where query transcripts are written.
type ResultsConfig struct {
	JSONPath    string `yaml:"json_path" mapstructure:"json_path"`
	MarkdownDir string `yaml:"markdown_dir" mapstructure:"markdown_dir"`
}

// ServerConfig configures the API server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("INVESTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.master_file", "DATA/Investor DATA - Airtable (DFD).xlsx")
	v.SetDefault("data.contact_files", []string{
		"DATA/Investor DATA - Contacts (DFD).xlsx",
		"DATA/Investor DATA - Pitchbook Contacts.xlsx",
	})
	v.SetDefault("search.max_results", 10)
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.rate_limit", 1.0)
	v.SetDefault("store.path", "investor_index.db")
	v.SetDefault("results.json_path", "results/query_results.json")
	v.SetDefault("results.markdown_dir", "results/markdown")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

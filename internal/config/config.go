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
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Engine EngineConfig `yaml:"engine" mapstructure:"engine"`
	Report ReportConfig `yaml:"report" mapstructure:"report"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures run persistence.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// EngineConfig configures reconciliation behavior.
type EngineConfig struct {
	AttachmentPolicy     string `yaml:"attachment_policy" mapstructure:"attachment_policy"`
	AttributePolicy      string `yaml:"attribute_policy" mapstructure:"attribute_policy"`
	MidspanPointFallback bool   `yaml:"midspan_point_fallback" mapstructure:"midspan_point_fallback"`
	RulesPath            string `yaml:"rules_path" mapstructure:"rules_path"`
	Concurrency          int    `yaml:"concurrency" mapstructure:"concurrency"`
}

// ReportConfig configures report output.
type ReportConfig struct {
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
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
	v.SetConfigName("makeready")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("MAKEREADY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.path", "makeready.db")
	v.SetDefault("engine.attachment_policy", "prefer_analysis")
	v.SetDefault("engine.attribute_policy", "prefer_analysis")
	v.SetDefault("engine.midspan_point_fallback", false)
	v.SetDefault("engine.concurrency", 4)
	v.SetDefault("report.output_dir", ".")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)

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

// Validate checks the configuration for the given mode ("process" or
// "serve"). Errors are collected so a misconfigured run reports everything
// wrong at once.
func (c *Config) Validate(mode string) error {
	var problems []string

	if c.Engine.Concurrency < 1 || c.Engine.Concurrency > 64 {
		problems = append(problems, "engine.concurrency must be between 1 and 64")
	}
	switch c.Engine.AttachmentPolicy {
	case "prefer_survey", "prefer_analysis", "highlight_differences":
	default:
		problems = append(problems, "engine.attachment_policy must be prefer_survey, prefer_analysis, or highlight_differences")
	}
	switch c.Engine.AttributePolicy {
	case "prefer_survey", "prefer_analysis", "highlight_differences":
	default:
		problems = append(problems, "engine.attribute_policy must be prefer_survey, prefer_analysis, or highlight_differences")
	}

	switch mode {
	case "process":
	case "serve":
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
		if c.Store.Path == "" {
			problems = append(problems, "store.path is required")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
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

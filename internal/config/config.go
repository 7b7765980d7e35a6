// Package config loads autopop configuration and sets up the process-wide
// logger and tracer provider.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/opensource-finance/hurricane-autopop/internal/domain"
	"github.com/opensource-finance/hurricane-autopop/internal/tables"
)

// EnvPrefix prefixes every environment override, e.g. AUTOPOP_RULES_SEED.
const EnvPrefix = "AUTOPOP"

// Load reads configuration from an optional autopop.yaml in the working
// directory, or from configFile when set, then from the environment.
// A zero reference year resolves to the current year.
func Load(configFile string) (*domain.Config, error) {
	v := viper.New()

	// Config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("autopop")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Environment
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	def := domain.DefaultConfig()
	v.SetDefault("rules.reference_year", def.Rules.ReferenceYear)
	v.SetDefault("rules.seed", def.Rules.Seed)
	v.SetDefault("rules.tables_file", def.Rules.TablesFile)
	v.SetDefault("batch.workers", def.Batch.Workers)
	v.SetDefault("output.dir", def.Output.Dir)
	v.SetDefault("output.pretty", def.Output.Pretty)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("tracing.enabled", def.Tracing.Enabled)
	v.SetDefault("tracing.service_name", def.Tracing.ServiceName)

	// Read config file (optional unless named explicitly)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg domain.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if cfg.Rules.ReferenceYear == 0 {
		cfg.Rules.ReferenceYear = time.Now().Year()
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *domain.Config) error {
	if cfg.Rules.ReferenceYear < 0 {
		return eris.Errorf("config: rules.reference_year %d is negative", cfg.Rules.ReferenceYear)
	}
	if cfg.Batch.Workers < 1 {
		return eris.Errorf("config: batch.workers must be at least 1, got %d", cfg.Batch.Workers)
	}
	switch cfg.Log.Format {
	case "json", "console", "auto":
	default:
		return eris.Errorf("config: unknown log.format %q", cfg.Log.Format)
	}
	return nil
}

// LoadTables returns the lookup tables named by the configuration, or the
// embedded set.
func LoadTables(cfg *domain.Config) (*tables.Tables, error) {
	if cfg.Rules.TablesFile == "" {
		return tables.Default()
	}
	return tables.Load(cfg.Rules.TablesFile)
}

// InitLogger initializes the global zap logger. The auto format picks the
// console encoder when stderr is a terminal.
func InitLogger(cfg domain.LogConfig) error {
	format := cfg.Format
	if format == "auto" {
		format = "json"
		if term.IsTerminal(int(os.Stderr.Fd())) {
			format = "console"
		}
	}

	var zapCfg zap.Config
	if format == "console" {
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

// InitTracing installs a no-op tracer provider when tracing is disabled.
// When enabled, spans go to whatever provider the host process registered.
func InitTracing(cfg domain.TracingConfig) {
	if !cfg.Enabled {
		otel.SetTracerProvider(noop.NewTracerProvider())
		return
	}
	zap.L().Info("tracing enabled", zap.String("service", cfg.ServiceName))
}

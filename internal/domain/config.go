package domain

// Config holds the complete autopop configuration.
type Config struct {
	Rules   RulesConfig   `json:"rules" yaml:"rules" mapstructure:"rules"`
	Batch   BatchConfig   `json:"batch" yaml:"batch" mapstructure:"batch"`
	Output  OutputConfig  `json:"output" yaml:"output" mapstructure:"output"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
	Tracing TracingConfig `json:"tracing" yaml:"tracing" mapstructure:"tracing"`
}

// RulesConfig holds rule evaluation settings.
type RulesConfig struct {
	// ReferenceYear is the "current" year used by building age rules.
	// Zero means the year the process started.
	ReferenceYear int `json:"referenceYear" yaml:"reference_year" mapstructure:"reference_year"`

	// Seed drives the tie-breaking draws. Record i of a batch draws from
	// the stream (Seed, i).
	Seed uint64 `json:"seed" yaml:"seed" mapstructure:"seed"`

	// TablesFile replaces the embedded lookup tables when set.
	TablesFile string `json:"tablesFile" yaml:"tables_file" mapstructure:"tables_file"`
}

// BatchConfig holds batch runner settings.
type BatchConfig struct {
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`
}

// OutputConfig controls how results are written.
type OutputConfig struct {
	Dir    string `json:"dir" yaml:"dir" mapstructure:"dir"`
	Pretty bool   `json:"pretty" yaml:"pretty" mapstructure:"pretty"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `json:"level" yaml:"level" mapstructure:"level"`    // debug, info, warn, error
	Format string `json:"format" yaml:"format" mapstructure:"format"` // json, console, auto
}

// TracingConfig holds OpenTelemetry settings.
type TracingConfig struct {
	Enabled     bool   `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	ServiceName string `json:"serviceName" yaml:"service_name" mapstructure:"service_name"`
}

// DefaultConfig returns the configuration used when no file or environment
// override is present.
func DefaultConfig() *Config {
	return &Config{
		Rules: RulesConfig{
			ReferenceYear: 0,
			Seed:          1,
		},
		Batch: BatchConfig{
			Workers: 8,
		},
		Output: OutputConfig{
			Dir:    "./out",
			Pretty: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
		Tracing: TracingConfig{
			Enabled:     false,
			ServiceName: "autopop",
		},
	}
}

// Package config loads and validates wikiref configuration via Viper.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Mode selects which runners execute during a run.
type Mode string

// Recognized run modes.
const (
	ModeSequential Mode = "sequential"
	ModeConcurrent Mode = "concurrent"
	ModeBoth       Mode = "both"
)

// RunsSequential reports whether the sequential runner executes.
func (m Mode) RunsSequential() bool {
	return m == ModeSequential || m == ModeBoth
}

// RunsConcurrent reports whether the concurrent runner executes.
func (m Mode) RunsConcurrent() bool {
	return m == ModeConcurrent || m == ModeBoth
}

// Config captures every knob that influences a fetch run. All values
// originate from Viper so the pipeline can be configured via file, env vars,
// or CLI flags.
type Config struct {
	Query       string
	OutputDir   string
	Mode        Mode
	MaxWorkers  int
	SearchLimit int
	Wikipedia   WikipediaConfig
	HTTP        HTTPConfig
	Logging     LoggingConfig
	Metrics     MetricsConfig
}

// WikipediaConfig selects the API endpoint and the identifying user agent.
type WikipediaConfig struct {
	APIURL    string
	UserAgent string
}

// HTTPConfig controls the HTTP client.
type HTTPConfig struct {
	Timeout time.Duration
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool
}

// MetricsConfig enables the optional diagnostics listener when a non-empty
// address is configured.
type MetricsConfig struct {
	ListenAddr string
}

const defaultUserAgent = "wikiref/1.0 (+https://github.com/wikigrab/wikiref)"

// SetDefaults registers default values for every configuration key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("query", "generative artificial intelligence")
	v.SetDefault("output_dir", "wikipedia_references")
	v.SetDefault("mode", "both")
	v.SetDefault("max_workers", 5)
	v.SetDefault("search.limit", 10)
	v.SetDefault("wikipedia.api_url", "https://en.wikipedia.org/w/api.php")
	v.SetDefault("wikipedia.user_agent", defaultUserAgent)
	v.SetDefault("http.timeout", "15s")
	v.SetDefault("logging.development", false)
	v.SetDefault("metrics.listen_addr", "")
}

// Load constructs a Config by reading from Viper and validates it.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Query:       v.GetString("query"),
		OutputDir:   v.GetString("output_dir"),
		Mode:        Mode(v.GetString("mode")),
		MaxWorkers:  v.GetInt("max_workers"),
		SearchLimit: v.GetInt("search.limit"),
		Wikipedia: WikipediaConfig{
			APIURL:    v.GetString("wikipedia.api_url"),
			UserAgent: v.GetString("wikipedia.user_agent"),
		},
		HTTP:    HTTPConfig{Timeout: v.GetDuration("http.timeout")},
		Logging: LoggingConfig{Development: v.GetBool("logging.development")},
		Metrics: MetricsConfig{ListenAddr: v.GetString("metrics.listen_addr")},
	}
	return cfg, cfg.Validate()
}

// Validate checks for obviously bad configuration combinations.
func (c Config) Validate() error {
	if c.Query == "" {
		return fmt.Errorf("query must be set")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must be set")
	}
	switch c.Mode {
	case ModeSequential, ModeConcurrent, ModeBoth:
	default:
		return fmt.Errorf("mode must be one of sequential, concurrent, both (got %q)", c.Mode)
	}
	if c.MaxWorkers < 1 {
		return fmt.Errorf("max_workers must be >= 1")
	}
	if c.SearchLimit < 1 {
		return fmt.Errorf("search.limit must be >= 1")
	}
	if c.Wikipedia.APIURL == "" {
		return fmt.Errorf("wikipedia.api_url must be set")
	}
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be > 0")
	}
	return nil
}

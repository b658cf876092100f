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
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Data      DataConfig      `yaml:"data" mapstructure:"data"`
	Explore   ExploreConfig   `yaml:"explore" mapstructure:"explore"`
	Clean     CleanConfig     `yaml:"clean" mapstructure:"clean"`
	Cluster   ClusterConfig   `yaml:"cluster" mapstructure:"cluster"`
	Visualize VisualizeConfig `yaml:"visualize" mapstructure:"visualize"`
	Policy    PolicyConfig    `yaml:"policy" mapstructure:"policy"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the run-history database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// DataConfig configures input/output locations.
type DataConfig struct {
	Input     string `yaml:"input" mapstructure:"input"`
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`
}

// ExploreConfig configures the exploration stage.
type ExploreConfig struct {
	TopMissing int `yaml:"top_missing" mapstructure:"top_missing"`
}

// CleanConfig configures the cleaning rules.
type CleanConfig struct {
	LatMin float64 `yaml:"lat_min" mapstructure:"lat_min"`
	LatMax float64 `yaml:"lat_max" mapstructure:"lat_max"`
	LngMin float64 `yaml:"lng_min" mapstructure:"lng_min"`
	LngMax float64 `yaml:"lng_max" mapstructure:"lng_max"`
}

// ClusterConfig configures hotspot identification.
type ClusterConfig struct {
	K              int     `yaml:"k" mapstructure:"k"`
	DeltaThreshold float64 `yaml:"delta_threshold" mapstructure:"delta_threshold"`
}

// VisualizeConfig configures map and chart rendering.
type VisualizeConfig struct {
	Bins            int   `yaml:"bins" mapstructure:"bins"`
	StaticSampleCap int   `yaml:"static_sample_cap" mapstructure:"static_sample_cap"`
	HeatSampleCap   int   `yaml:"heat_sample_cap" mapstructure:"heat_sample_cap"`
	MarkerSampleCap int   `yaml:"marker_sample_cap" mapstructure:"marker_sample_cap"`
	SampleSeed      int64 `yaml:"sample_seed" mapstructure:"sample_seed"`
}

// PolicyConfig configures the recommendation stage.
type PolicyConfig struct {
	RulesPath string `yaml:"rules_path" mapstructure:"rules_path"`
	SampleCap int    `yaml:"sample_cap" mapstructure:"sample_cap"`
}

// ServerConfig configures the artifact server.
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
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("HOTSPOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "hotspots.db")
	v.SetDefault("data.output_dir", "out")
	v.SetDefault("explore.top_missing", 10)
	v.SetDefault("clean.lat_min", 24.0)
	v.SetDefault("clean.lat_max", 50.0)
	v.SetDefault("clean.lng_min", -125.0)
	v.SetDefault("clean.lng_max", -66.0)
	v.SetDefault("cluster.k", 50)
	v.SetDefault("cluster.delta_threshold", 0.01)
	v.SetDefault("visualize.bins", 100)
	v.SetDefault("visualize.static_sample_cap", 500000)
	v.SetDefault("visualize.heat_sample_cap", 100000)
	v.SetDefault("visualize.marker_sample_cap", 50000)
	v.SetDefault("visualize.sample_seed", 42)
	v.SetDefault("policy.sample_cap", 1000000)
	v.SetDefault("server.port", 8080)
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

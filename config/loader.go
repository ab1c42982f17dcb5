package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Default returns the production configuration.
func Default() AppConfig {
	return AppConfig{
		Matcher: MatcherConfig{
			EpsilonMeters:  800,
			FuzzyThreshold: 70,
		},
		Consolidator: ConsolidatorConfig{
			ThresholdMeters: 800,
			ExactNameMeters: 300,
		},
		OneMap: OneMapConfig{
			BaseURL:           "https://www.onemap.gov.sg",
			RequestsPerSecond: 4,
			MaxRetries:        3,
			TimeoutMS:         15000,
		},
		DataGov: DataGovConfig{
			BaseURL:   "https://api-open.data.gov.sg",
			DatasetID: "d_b39d3a0871985372d7e1637193335da5",
			TimeoutMS: 30000,
		},
		Output: OutputConfig{
			Dir:            "output",
			RegistryFile:   "mrt_transit_graph.json",
			CheckpointFile: "stage1_checkpoint.json",
		},
		Server: ServerConfig{Port: 16181},
	}
}

// Load reads and validates the application configuration, trying each path
// in order. Missing or zero-valued fields fall back to Default values, so a
// partial config file only overrides what it names.
func Load(paths ...string) (AppConfig, error) {
	if len(paths) == 0 {
		paths = []string{"config.yml"}
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return AppConfig{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(&cfg)

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return AppConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	def := Default()
	if cfg.Matcher.EpsilonMeters == 0 {
		cfg.Matcher.EpsilonMeters = def.Matcher.EpsilonMeters
	}
	if cfg.Consolidator.ThresholdMeters == 0 {
		cfg.Consolidator.ThresholdMeters = def.Consolidator.ThresholdMeters
	}
	if cfg.Consolidator.ExactNameMeters == 0 {
		cfg.Consolidator.ExactNameMeters = def.Consolidator.ExactNameMeters
	}
	if cfg.OneMap.BaseURL == "" {
		cfg.OneMap.BaseURL = def.OneMap.BaseURL
	}
	if cfg.DataGov.BaseURL == "" {
		cfg.DataGov.BaseURL = def.DataGov.BaseURL
	}
	if cfg.DataGov.DatasetID == "" {
		cfg.DataGov.DatasetID = def.DataGov.DatasetID
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = def.Output.Dir
	}
	if cfg.Output.RegistryFile == "" {
		cfg.Output.RegistryFile = def.Output.RegistryFile
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = def.Server.Port
	}
}

package config

// MatcherConfig contains identity-matcher thresholds.
type MatcherConfig struct {
	// EpsilonMeters is the search-candidate proximity threshold.
	EpsilonMeters float64 `yaml:"epsilonMeters" validate:"gte=0"`
	// FuzzyThreshold ranks candidate names; it does not gate acceptance.
	FuzzyThreshold int `yaml:"fuzzyThreshold" validate:"gte=0,lte=100"`
	// CodePrefixes are the line prefixes recognized as station codes.
	CodePrefixes []string `yaml:"codePrefixes"`
}

// ConsolidatorConfig contains the merge distance thresholds.
type ConsolidatorConfig struct {
	ThresholdMeters float64 `yaml:"thresholdMeters" validate:"gte=0"`
	ExactNameMeters float64 `yaml:"exactNameMeters" validate:"gte=0"`
}

// OneMapConfig contains the OneMap API client configuration.
type OneMapConfig struct {
	BaseURL           string  `yaml:"baseURL" validate:"omitempty,url"`
	RequestsPerSecond float64 `yaml:"requestsPerSecond" validate:"gte=0"`
	MaxRetries        int     `yaml:"maxRetries" validate:"gte=0"`
	TimeoutMS         int     `yaml:"timeoutMS" validate:"gte=0"`
}

// DataGovConfig contains the data.gov.sg exits dataset configuration.
type DataGovConfig struct {
	BaseURL   string `yaml:"baseURL" validate:"omitempty,url"`
	DatasetID string `yaml:"datasetID"`
	TimeoutMS int    `yaml:"timeoutMS" validate:"gte=0"`
}

// OutputConfig contains artifact and checkpoint locations.
type OutputConfig struct {
	Dir            string `yaml:"dir"`
	RegistryFile   string `yaml:"registryFile"`
	CheckpointFile string `yaml:"checkpointFile"`
}

// ServerConfig contains the registry HTTP server configuration.
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	Matcher      MatcherConfig      `yaml:"matcher"`
	Consolidator ConsolidatorConfig `yaml:"consolidator"`
	OneMap       OneMapConfig       `yaml:"onemap"`
	DataGov      DataGovConfig      `yaml:"datagov"`
	Output       OutputConfig       `yaml:"output"`
	Server       ServerConfig       `yaml:"server"`
}

package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
)

const (
	// StorageNone disables the exchange log.
	StorageNone = "none"
	// StorageStdout writes exchanges as JSON lines to stdout.
	StorageStdout = "stdout"
	// StorageElastic indexes exchanges into Elasticsearch.
	StorageElastic = "elastic"
)

var (
	// HTTP is the config for Proksi HTTP
	HTTP *HTTPConfig
)

var defaultHTTP = HTTPConfig{
	Bind: "0.0.0.0:9090",
	Logging: logging{
		Level: "info",
	},
	Metrics: metric{
		Enabled: true,
		Bind:    "0.0.0.0:9001",
	},
	Cloudbeds: Cloudbeds{
		APIBase: "https://hotels.cloudbeds.com/api/v1.3",
	},
	Storage: Storage{
		Type:        StorageNone,
		IndexPrefix: "proksi-cloudbeds",
	},
	Elasticsearch: Elasticsearch{
		Addresses: []string{"http://127.0.0.1:9200"},
	},
	RecordProbability: 100,
}

// HTTPConfig represent config of the Proksi HTTP.
type HTTPConfig struct {
	Bind              string        `koanf:"bind"`
	Logging           logging       `koanf:"logging"`
	Metrics           metric        `koanf:"metrics"`
	Cloudbeds         Cloudbeds     `koanf:"cloudbeds"`
	Storage           Storage       `koanf:"storage"`
	Elasticsearch     Elasticsearch `koanf:"elasticsearch"`
	RecordProbability uint64        `koanf:"record_probability"`
}

// cloudbedsEnv maps CLOUDBEDS_API_KEY to cloudbeds.api_key.
func cloudbedsEnv(s string) string {
	return "cloudbeds." + strings.ToLower(strings.TrimPrefix(s, "CLOUDBEDS_"))
}

// proksiEnv maps PROKSI_METRICS__BIND to metrics.bind.
func proksiEnv(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "PROKSI_")), "__", ".")
}

// LoadHTTP loads the defaults, then the YAML file located in path (skipped when
// path is empty), then the environment, and returns the parsed config.
func LoadHTTP(path string) (*HTTPConfig, error) {
	// k uses "." as the key path delimiter.
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultHTTP, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("error in loading the default config: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error in loading the config file: %w", err)
		}
	}

	if err := k.Load(env.Provider("CLOUDBEDS_", ".", cloudbedsEnv), nil); err != nil {
		return nil, fmt.Errorf("error in loading the cloudbeds environment: %w", err)
	}

	if err := k.Load(env.Provider("PROKSI_", ".", proksiEnv), nil); err != nil {
		return nil, fmt.Errorf("error in loading the proksi environment: %w", err)
	}

	var c HTTPConfig
	if err := k.Unmarshal("", &c); err != nil {
		return nil, fmt.Errorf("error in unmarshalling the config file: %w", err)
	}

	if c.Cloudbeds.APIBase == "" {
		c.Cloudbeds.APIBase = defaultHTTP.Cloudbeds.APIBase
	}
	if c.RecordProbability > 100 {
		return nil, fmt.Errorf("record_probability must be between 0 and 100, got %d", c.RecordProbability)
	}

	switch c.Storage.Type {
	case StorageNone, StorageStdout, StorageElastic:
	default:
		return nil, fmt.Errorf("unknown storage type %q", c.Storage.Type)
	}

	HTTP = &c
	return &c, nil
}

// Package config loads the reconvoy runtime configuration from YAML,
// overlaying values on top of built-in defaults.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level runtime configuration.
type Config struct {
	OutputsRoot    string  `yaml:"outputs_root"`
	WordlistsDir   string  `yaml:"wordlists_dir"`
	TargetListsDir string  `yaml:"target_lists_dir"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
	ReconNG        ReconNG `yaml:"recon_ng"`
	GCS            GCS     `yaml:"gcs"`
	PubSub         PubSub  `yaml:"pubsub"`
	Broker         Broker  `yaml:"broker"`
	Mongo          Mongo   `yaml:"mongo"`
	API            API     `yaml:"api"`
}

// ReconNG holds recon-ng specific paths. The tool only resolves its modules
// correctly when run from its own install directory.
type ReconNG struct {
	Template string `yaml:"template"`
	Home     string `yaml:"home"`
}

// GCS holds object storage settings. An empty bucket disables GCS uploads.
type GCS struct {
	Bucket string `yaml:"bucket"`
}

// PubSub holds next-stage notification settings.
type PubSub struct {
	Project string `yaml:"project"`
	Topic   string `yaml:"topic"`
}

// Broker holds work queue settings.
type Broker struct {
	URL           string `yaml:"url"`            // redis://localhost:6379
	ResultBackend string `yaml:"result_backend"` // defaults to URL
	Queue         string `yaml:"queue"`
	ResultsTTL    int    `yaml:"results_ttl"`
}

// Mongo holds scan result store settings. An empty URL disables it.
type Mongo struct {
	URL                    string `yaml:"url"`
	Database               string `yaml:"database"`
	ServerSelectionTimeout int    `yaml:"server_selection_timeout_ms"`
	MaxPoolSize            int    `yaml:"max_pool_size"`
}

// API holds the gateway callback settings. An empty URL disables the
// HTTP result store.
type API struct {
	URL        string `yaml:"url"`
	Key        string `yaml:"key"`
	HeaderName string `yaml:"header_name"`
	ForceSSL   bool   `yaml:"force_ssl"`
	ScanUpdate string `yaml:"scan_update"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		OutputsRoot:    "/app/outputs",
		WordlistsDir:   "/app/wordlists",
		TargetListsDir: "/app/target_lists",
		TimeoutSeconds: 3600,
		ReconNG: ReconNG{
			Template: "/app/scripts/templates/recon_ng_template.rc",
			Home:     "/opt/recon-ng",
		},
		Broker: Broker{
			URL:        "redis://localhost:6379",
			Queue:      "reconvoy",
			ResultsTTL: 3600,
		},
		Mongo: Mongo{
			Database:               "reconvoy",
			ServerSelectionTimeout: 5000,
			MaxPoolSize:            10,
		},
		API: API{
			HeaderName: "X-API-Key",
			ScanUpdate: "/v1/scans/{scan_id}/results",
		},
	}
}

// Load reads a YAML config file on top of the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Broker.ResultBackend == "" {
		cfg.Broker.ResultBackend = cfg.Broker.URL
	}
	return cfg, nil
}

// Timeout returns the wall-clock limit for a single tool execution.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return time.Hour
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

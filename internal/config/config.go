package config

import "time"

// Elasticsearch is the config of Elasticsearch
type Elasticsearch struct {
	Addresses []string `koanf:"addresses"` // A list of Elasticsearch nodes to use.
	Username  string   `koanf:"username"`  // Username for HTTP Basic Authentication.
	Password  string   `koanf:"password"`  // Password for HTTP Basic Authentication.

	CloudID                string `koanf:"cloud_id"`                // Endpoint for the Elastic Service (https://elastic.co/cloud).
	APIKey                 string `koanf:"api_key"`                 // Base64-encoded token for authorization; if set, overrides username/password and service token.
	ServiceToken           string `koanf:"service_token"`           // Service token for authorization; if set, overrides username/password.
	CertificateFingerprint string `koanf:"certificate_fingerprint"` // SHA256 hex fingerprint given by Elasticsearch on first launch.
}

// Cloudbeds is the config of the upstream Cloudbeds API
type Cloudbeds struct {
	APIKey      string        `koanf:"api_key"`      // Bearer token, preferred over AccessToken.
	AccessToken string        `koanf:"access_token"` // Bearer token used when APIKey is empty.
	APIBase     string        `koanf:"api_base"`     // Base URL prepended to relative paths.
	Timeout     time.Duration `koanf:"timeout"`      // Upstream client timeout; zero means none.
}

// Storage selects where forwarded exchanges are recorded.
type Storage struct {
	Type        string `koanf:"type"`         // One of none, stdout, elastic.
	IndexPrefix string `koanf:"index_prefix"` // Prefix of the daily Elasticsearch index.
}

type metric struct {
	Enabled bool   `koanf:"enabled"` // Enablement of the metric exposure
	Bind    string `koanf:"bind"`    // Address of the http server
}

type logging struct {
	Level string `koanf:"level"`
}

package storage

import (
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/snapp-incubator/proksi-cloudbeds/internal/config"
)

// New builds the Storage selected by c.Storage.Type.
func New(c *config.HTTPConfig) (Storage, error) {
	switch c.Storage.Type {
	case config.StorageStdout:
		return NewStdoutStorage(nil), nil
	case config.StorageElastic:
		es, err := elasticsearch.NewClient(elasticsearch.Config{
			Addresses:              c.Elasticsearch.Addresses,
			Username:               c.Elasticsearch.Username,
			Password:               c.Elasticsearch.Password,
			CloudID:                c.Elasticsearch.CloudID,
			APIKey:                 c.Elasticsearch.APIKey,
			ServiceToken:           c.Elasticsearch.ServiceToken,
			CertificateFingerprint: c.Elasticsearch.CertificateFingerprint,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create the elasticsearch client: %w", err)
		}
		return ElasticStorage{ES: es, IndexPrefix: c.Storage.IndexPrefix}, nil
	case config.StorageNone, "":
		return NopStorage{}, nil
	default:
		return nil, fmt.Errorf("unknown storage type %q", c.Storage.Type)
	}
}

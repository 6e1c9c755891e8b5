package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// ElasticStorage is the backend Storage interface that works with Elasticsearch
type ElasticStorage struct {
	ES          *elasticsearch.Client
	IndexPrefix string
}

// Index returns the daily index an exchange is written to, e.g. proksi-cloudbeds-2025.12.20.
func (s ElasticStorage) Index(e Exchange) string {
	return fmt.Sprintf("%s-%s", s.IndexPrefix, e.Time.UTC().Format("2006.01.02"))
}

// Store is the action of storing
func (s ElasticStorage) Store(ctx context.Context, e Exchange) error {
	b, err := json.Marshal(&e)
	if err != nil {
		return fmt.Errorf("failed to marshal exchange to JSON: %w", err)
	}

	r := esapi.IndexRequest{
		Index:      s.Index(e),
		DocumentID: e.ID,
		Body:       bytes.NewReader(b),
	}

	res, err := r.Do(ctx, s.ES)
	if err != nil {
		return fmt.Errorf("failed to index exchange: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return fmt.Errorf("failed to index exchange: %s", res.Status())
	}

	return nil
}

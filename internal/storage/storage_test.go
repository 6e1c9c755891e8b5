package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapp-incubator/proksi-cloudbeds/internal/config"
)

func exchange() Exchange {
	return Exchange{
		ID:             "4f1c2a8e-6f0e-4a53-9d0f-1d8c2e7b5a10",
		Time:           time.Date(2025, 12, 20, 10, 30, 0, 0, time.UTC),
		Route:          "availability",
		Method:         http.MethodPost,
		Path:           "/getAvailability",
		RequestPayload: json.RawMessage(`{"start_date":"2025-12-20"}`),
		Status:         http.StatusOK,
		OK:             true,
		Outcome:        "success",
		ResponseBody:   json.RawMessage(`{"success":true}`),
		DurationMS:     12,
	}
}

func TestStdoutStorage(t *testing.T) {
	var buf bytes.Buffer
	s := NewStdoutStorage(&buf)

	require.NoError(t, s.Store(context.Background(), exchange()))
	require.NoError(t, s.Store(context.Background(), exchange()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &got))
	assert.Equal(t, "/getAvailability", got["path"])
	assert.Equal(t, map[string]any{"start_date": "2025-12-20"}, got["request_payload"])
	assert.NotContains(t, got, "message")
}

func TestElasticStorage(t *testing.T) {
	var (
		gotPath string
		gotBody []byte
	)
	es := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	}))
	defer es.Close()

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{es.URL}})
	require.NoError(t, err)

	s := ElasticStorage{ES: client, IndexPrefix: "proksi-cloudbeds"}
	e := exchange()

	assert.Equal(t, "proksi-cloudbeds-2025.12.20", s.Index(e))
	require.NoError(t, s.Store(context.Background(), e))
	assert.Equal(t, "/proksi-cloudbeds-2025.12.20/_doc/"+e.ID, gotPath)
	assert.Contains(t, string(gotBody), `"route":"availability"`)
}

func TestElasticStorageError(t *testing.T) {
	es := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"mapper_parsing_exception"}`))
	}))
	defer es.Close()

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{es.URL}})
	require.NoError(t, err)

	err = ElasticStorage{ES: client, IndexPrefix: "x"}.Store(context.Background(), exchange())
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	tests := []struct {
		kind    string
		want    Storage
		wantErr bool
	}{
		{kind: config.StorageNone, want: NopStorage{}},
		{kind: config.StorageStdout, want: &StdoutStorage{}},
		{kind: config.StorageElastic, want: ElasticStorage{}},
		{kind: "s3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			c := &config.HTTPConfig{
				Storage:       config.Storage{Type: tt.kind, IndexPrefix: "p"},
				Elasticsearch: config.Elasticsearch{Addresses: []string{"http://127.0.0.1:9200"}},
			}
			s, err := New(c)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, s)
		})
	}
}

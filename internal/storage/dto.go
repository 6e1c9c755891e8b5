package storage

import (
	"encoding/json"
	"time"
)

// Exchange defines the structure of records storing in Storage as log of forwarded calls
type Exchange struct {
	ID             string          `json:"id"`
	Time           time.Time       `json:"time"`
	Route          string          `json:"route"`
	Method         string          `json:"method"`
	Path           string          `json:"path"`
	RequestPayload json.RawMessage `json:"request_payload,omitempty"`
	Status         int             `json:"status"`
	OK             bool            `json:"ok"`
	Outcome        string          `json:"outcome"`
	ResponseBody   json.RawMessage `json:"response_body,omitempty"`
	Message        string          `json:"message,omitempty"`
	DurationMS     int64           `json:"duration_ms"`
}

package handler

import (
	"bytes"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/snapp-incubator/proksi-cloudbeds/internal/cloudbeds"
	"github.com/snapp-incubator/proksi-cloudbeds/internal/logging"
)

const (
	msgInvalidJSON = "Invalid JSON body"
	msgUnexpected  = "Unexpected error"
)

// envelope is the uniform response of every caller endpoint.
type envelope struct {
	OK      bool            `json:"ok"`
	Path    string          `json:"path,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Status  int             `json:"status,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   json.RawMessage `json:"error,omitempty"`
}

func jsonString(s string) json.RawMessage {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
}

func invalid(message string) envelope {
	return envelope{OK: false, Error: jsonString(message)}
}

func unexpected(path string) envelope {
	return envelope{OK: false, Path: path, Error: jsonString(msgUnexpected)}
}

// fromOutcome maps a forwarder Outcome to the envelope and HTTP status sent to the caller.
func fromOutcome(path string, payload json.RawMessage, out cloudbeds.Outcome) (envelope, int) {
	switch o := out.(type) {
	case cloudbeds.Success:
		return envelope{OK: true, Path: path, Payload: payload, Data: o.Body.Raw}, http.StatusOK
	case cloudbeds.Failure:
		return envelope{OK: false, Path: path, Payload: payload, Status: o.Status, Error: failureError(o)}, o.Status
	default:
		return unexpected(path), http.StatusInternalServerError
	}
}

// failureError prefers the upstream body and falls back to the message when the body is
// absent or null. With neither, the error key is left out.
func failureError(f cloudbeds.Failure) json.RawMessage {
	if f.Body.Present() && string(f.Body.Raw) != "null" {
		return f.Body.Raw
	}
	if f.Message == "" {
		return nil
	}
	return jsonString(f.Message)
}

func encode(e envelope) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(&e); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func write(w http.ResponseWriter, status int, e envelope) {
	b, err := encode(e)
	if err != nil {
		logging.L.Error("error in encoding the response envelope", zap.Error(err))
		status = http.StatusInternalServerError
		b, _ = encode(unexpected(e.Path))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(b); err != nil {
		logging.L.Warn("error in writing the response", zap.Error(err))
	}
}

package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/tidwall/gjson"
)

var errInvalidJSON = errors.New(msgInvalidJSON)

// readJSON reads the request body and checks it is a single JSON value.
func readJSON(r *http.Request) (gjson.Result, []byte, error) {
	b, err := io.ReadAll(r.Body)
	if err != nil {
		return gjson.Result{}, nil, errInvalidJSON
	}
	if !gjson.ValidBytes(b) {
		return gjson.Result{}, nil, errInvalidJSON
	}
	return gjson.ParseBytes(b), b, nil
}

// truthy reports whether v would pass a presence check: not missing, null, false, 0 or "".
func truthy(v gjson.Result) bool {
	switch v.Type {
	case gjson.String:
		return v.Str != ""
	case gjson.Number:
		return v.Num != 0
	case gjson.True, gjson.JSON:
		return true
	default:
		return false
	}
}

// endpoint returns the caller-chosen upstream path in body, or def.
func endpoint(body gjson.Result, def string) string {
	if ep := body.Get("endpoint"); ep.Type == gjson.String && ep.Str != "" {
		return ep.Str
	}
	return def
}

// objectBuilder collects top-level members in insertion order; setting an existing
// key replaces its value in place. Any key is accepted, including "".
type objectBuilder struct {
	keys   []string
	values map[string]string
}

func newObjectBuilder() *objectBuilder {
	return &objectBuilder{values: make(map[string]string)}
}

func (b *objectBuilder) set(key string, raw string) {
	if _, ok := b.values[key]; !ok {
		b.keys = append(b.keys, key)
	}
	b.values[key] = raw
}

// bytes renders the object and compacts it; invalid raw values surface as an error.
func (b *objectBuilder) bytes() (json.RawMessage, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range b.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(jsonString(key))
		buf.WriteByte(':')
		buf.WriteString(b.values[key])
	}
	buf.WriteByte('}')
	return compact(buf.Bytes())
}

func compact(b []byte) (json.RawMessage, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

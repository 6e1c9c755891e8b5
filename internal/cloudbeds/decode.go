package cloudbeds

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

const jsonContentType = "application/json"

// isJSON follows the upstream declared content type only; the body is not sniffed.
func isJSON(h http.Header) bool {
	return strings.Contains(h.Get("Content-Type"), jsonContentType)
}

// decodeBody reads r as JSON when asJSON is set, otherwise as text. It never fails:
// a read or parse error yields an absent Body.
func decodeBody(r io.Reader, asJSON bool) Body {
	b, err := io.ReadAll(r)
	if err != nil {
		return Body{}
	}

	var buf bytes.Buffer
	if !asJSON {
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(string(b)); err != nil {
			return Body{}
		}
		return Body{Raw: bytes.TrimSuffix(buf.Bytes(), []byte("\n"))}
	}

	if err := json.Compact(&buf, b); err != nil {
		return Body{}
	}
	if buf.Len() == 0 {
		return Body{}
	}

	return Body{Raw: buf.Bytes()}
}

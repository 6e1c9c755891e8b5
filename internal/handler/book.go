package handler

import (
	"net/http"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	// DefaultBookPath is forwarded when the body has no endpoint.
	DefaultBookPath = "/createReservation"

	msgPayloadRequired = "payload is required"
)

// routingFields are stripped when the whole body is forwarded as the payload.
var routingFields = []string{"endpoint", "payload"}

// Book forwards body.payload, or the whole body minus routing fields, with POST.
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	body, raw, err := readJSON(r)
	if err != nil {
		h.reject(w, RouteBook, msgInvalidJSON)
		return
	}
	if !body.IsObject() {
		h.reject(w, RouteBook, msgPayloadRequired)
		return
	}

	path := endpoint(body, DefaultBookPath)

	var payload []byte
	if p := body.Get("payload"); p.Exists() && p.Type != gjson.Null {
		if !p.IsObject() {
			h.reject(w, RouteBook, msgPayloadRequired)
			return
		}
		payload = []byte(p.Raw)
	} else {
		payload = raw
		for _, field := range routingFields {
			if payload, err = sjson.DeleteBytes(payload, field); err != nil {
				h.internalError(w, RouteBook, path, err)
				return
			}
		}
	}

	compacted, err := compact(payload)
	if err != nil {
		h.internalError(w, RouteBook, path, err)
		return
	}

	h.forward(w, r, RouteBook, path, compacted)
}

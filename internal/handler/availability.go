package handler

import (
	"net/http"

	"github.com/tidwall/gjson"
)

const (
	// DefaultAvailabilityPath is forwarded when the body has no endpoint.
	DefaultAvailabilityPath = "/getAvailability"

	msgDatesRequired = "startDate and endDate are required (YYYY-MM-DD)"

	defaultAdults   = "2"
	defaultChildren = "0"
)

// Availability translates {startDate, endDate, adults, children, propertyId, endpoint, extra}
// into an availability search and forwards it with POST.
func (h *Handler) Availability(w http.ResponseWriter, r *http.Request) {
	body, _, err := readJSON(r)
	if err != nil {
		h.reject(w, RouteAvailability, msgInvalidJSON)
		return
	}

	startDate, endDate := body.Get("startDate"), body.Get("endDate")
	if !truthy(startDate) || !truthy(endDate) {
		h.reject(w, RouteAvailability, msgDatesRequired)
		return
	}

	path := endpoint(body, DefaultAvailabilityPath)

	b := newObjectBuilder()
	b.set("start_date", startDate.Raw)
	b.set("end_date", endDate.Raw)
	b.set("number_of_adults", rawOr(body.Get("adults"), defaultAdults))
	b.set("number_of_children", rawOr(body.Get("children"), defaultChildren))
	b.set("property_id", rawOr(body.Get("propertyId"), "null"))

	if extra := body.Get("extra"); extra.IsObject() {
		extra.ForEach(func(key, value gjson.Result) bool {
			b.set(key.String(), value.Raw)
			return true
		})
	}

	payload, err := b.bytes()
	if err != nil {
		h.internalError(w, RouteAvailability, path, err)
		return
	}

	h.forward(w, r, RouteAvailability, path, payload)
}

// rawOr returns the raw JSON of v, or def when v is missing.
func rawOr(v gjson.Result, def string) string {
	if !v.Exists() {
		return def
	}
	return v.Raw
}

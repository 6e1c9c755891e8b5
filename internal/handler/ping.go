package handler

import "net/http"

// DefaultPingPath is forwarded when the path query parameter is empty.
const DefaultPingPath = "/getProperties"

// Ping forwards GET ?path= upstream, defaulting to DefaultPingPath.
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		path = DefaultPingPath
	}

	h.forward(w, r, RoutePing, path, nil)
}

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/snapp-incubator/proksi-cloudbeds/internal/cloudbeds"
	"github.com/snapp-incubator/proksi-cloudbeds/internal/logging"
	"github.com/snapp-incubator/proksi-cloudbeds/internal/metrics"
	"github.com/snapp-incubator/proksi-cloudbeds/internal/sampling"
	"github.com/snapp-incubator/proksi-cloudbeds/internal/storage"
)

// Route names used in logs, metrics and stored exchanges.
const (
	RoutePing         = "ping"
	RouteAvailability = "availability"
	RouteBook         = "book"
)

// Forwarder relays one request upstream.
type Forwarder interface {
	Forward(ctx context.Context, r cloudbeds.Request) (cloudbeds.Outcome, error)
}

// Handler serves the caller endpoints on top of a Forwarder.
type Handler struct {
	fwd     Forwarder
	store   storage.Storage
	sampler sampling.Sampler
	now     func() time.Time
}

// New creates a Handler. A nil store or sampler disables exchange recording.
func New(fwd Forwarder, store storage.Storage, sampler sampling.Sampler) *Handler {
	if store == nil {
		store = storage.NopStorage{}
	}
	if sampler == nil {
		sampler, _ = sampling.NewBucket(0)
	}

	return &Handler{fwd: fwd, store: store, sampler: sampler, now: time.Now}
}

// Register mounts the endpoints on r, both at the root and under /api.
func (h *Handler) Register(r *mux.Router) {
	for _, sub := range []*mux.Router{r, r.PathPrefix("/api").Subrouter()} {
		sub.HandleFunc("/ping", h.Ping).Methods(http.MethodGet)
		sub.HandleFunc("/availability", h.Availability).Methods(http.MethodPost)
		sub.HandleFunc("/book", h.Book).Methods(http.MethodPost)
	}
}

// reject answers a caller input error without calling upstream.
func (h *Handler) reject(w http.ResponseWriter, route, message string) {
	logging.L.Info("rejected caller input", zap.String("route", route), zap.String("reason", message))
	metrics.Observe(route, http.StatusBadRequest, metrics.OutcomeInvalid, 0)
	write(w, http.StatusBadRequest, invalid(message))
}

// internalError answers 500 for a request that failed before reaching the forwarder.
func (h *Handler) internalError(w http.ResponseWriter, route, path string, err error) {
	logging.L.Error("error in building the upstream request",
		zap.String("route", route),
		zap.String("path", path),
		zap.Error(err),
	)
	metrics.Observe(route, http.StatusInternalServerError, metrics.OutcomeError, 0)
	write(w, http.StatusInternalServerError, unexpected(path))
}

// forward sends payload (nil for GET) to path and writes the resulting envelope.
func (h *Handler) forward(w http.ResponseWriter, r *http.Request, route, path string, payload json.RawMessage) {
	req := cloudbeds.Request{Path: path, Method: http.MethodGet}
	if payload != nil {
		req.Method = http.MethodPost
		req.Header = http.Header{"Content-Type": {"application/json"}}
		req.Body = payload
	}

	start := h.now()
	out, err := h.fwd.Forward(r.Context(), req)
	elapsed := h.now().Sub(start)

	loggingFields := []zap.Field{
		zap.String("route", route),
		zap.String("method", req.Method),
		zap.String("path", path),
		zap.Duration("duration", elapsed),
	}

	var (
		env      envelope
		status   int
		outcome  string
		message  string
		observed = elapsed
	)
	if err != nil {
		env, status, outcome = unexpected(path), http.StatusInternalServerError, metrics.OutcomeError
		message = err.Error()
		logging.L.Error("error in forwarding the request", append(loggingFields, zap.Error(err))...)
	} else {
		env, status = fromOutcome(path, payload, out)
		outcome = metrics.OutcomeSuccess
		if f, ok := out.(cloudbeds.Failure); ok {
			outcome, message = metrics.OutcomeFailure, f.Message
			if !f.Reached {
				observed = 0
			}
			logging.L.Warn("upstream call failed", append(loggingFields, zap.Int("status", status))...)
		} else {
			logging.L.Info("upstream call succeeded", append(loggingFields, zap.Int("status", status))...)
		}
	}

	write(w, status, env)
	metrics.Observe(route, status, outcome, observed)

	if !h.sampler.Sample() {
		return
	}

	e := storage.Exchange{
		ID:             uuid.NewString(),
		Time:           start,
		Route:          route,
		Method:         req.Method,
		Path:           path,
		RequestPayload: payload,
		Status:         status,
		OK:             env.OK,
		Outcome:        outcome,
		ResponseBody:   responseBody(out),
		Message:        message,
		DurationMS:     elapsed.Milliseconds(),
	}
	if err := h.store.Store(r.Context(), e); err != nil {
		logging.L.Error("error in storing the exchange", append(loggingFields, zap.Error(err))...)
	}
}

func responseBody(out cloudbeds.Outcome) json.RawMessage {
	switch o := out.(type) {
	case cloudbeds.Success:
		return o.Body.Raw
	case cloudbeds.Failure:
		return o.Body.Raw
	}
	return nil
}

package main

import (
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/snapp-incubator/proksi-cloudbeds/internal/logging"
)

// A fake Cloudbeds upstream for trying proksi-cloudbeds by hand:
//
//	go run ./server -bind localhost:8080 -token test-token
//	CLOUDBEDS_API_KEY=test-token CLOUDBEDS_API_BASE=http://localhost:8080/api/v1.3 go run ./http
var (
	bind  = flag.String("bind", "localhost:8080", "address of the fake upstream")
	token = flag.String("token", "test-token", "bearer token the fake upstream accepts")
)

func main() {
	flag.Parse()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	s := server(*bind, func(r *mux.Router) { initRoutes(r, *token) })
	logging.L.Info("fake cloudbeds upstream is running", zap.String("bind", *bind))

	<-c
	shutdown(s)
	logging.L.Debug("fake cloudbeds upstream is down")
}

// server is HTTP server creator.
func server(address string, initRoutes func(r *mux.Router)) *http.Server {
	r := mux.NewRouter()

	initRoutes(r)

	srv := &http.Server{
		Addr:         address,
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.L.Fatal("error in fake upstream ListenAndServe", zap.Error(err))
		}
	}()

	return srv
}

func shutdown(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(2)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.L.Warn("error in shutting down the fake upstream", zap.Error(err))
	}
}

func initRoutes(r *mux.Router, token string) {
	api := r.PathPrefix("/api/v1.3").Subrouter()
	api.Use(bearer(token))

	api.HandleFunc("/getProperties", propertiesHandler()).Methods(http.MethodGet)
	api.HandleFunc("/getAvailability", availabilityHandler()).Methods(http.MethodPost)
	api.HandleFunc("/createReservation", reservationHandler()).Methods(http.MethodPost)
}

// bearer rejects requests whose Authorization header does not carry token.
func bearer(token string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer "+token {
				writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
					"success": false,
					"message": "Invalid access token",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type property struct {
	PropertyID       string `json:"propertyID"`
	PropertyName     string `json:"propertyName"`
	PropertyTimezone string `json:"propertyTimezone"`
}

type availabilityRequest struct {
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	NumberOfAdults   int    `json:"number_of_adults"`
	NumberOfChildren int    `json:"number_of_children"`
	PropertyID       string `json:"property_id"`
}

type roomType struct {
	RoomTypeID   string  `json:"roomTypeID"`
	RoomTypeName string  `json:"roomTypeName"`
	MaxGuests    int     `json:"maxGuests"`
	RoomRate     float64 `json:"roomRate"`
}

func propertiesHandler() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data": []property{
				{PropertyID: "1001", PropertyName: "Seaside Inn", PropertyTimezone: "America/Sao_Paulo"},
			},
		})
	}
}

func availabilityHandler() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var rq availabilityRequest
		if err := json.NewDecoder(r.Body).Decode(&rq); err != nil {
			logging.L.Warn("error in decode request body", zap.Error(err))
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Invalid request body"})
			return
		}

		start, errStart := time.Parse("2006-01-02", rq.StartDate)
		end, errEnd := time.Parse("2006-01-02", rq.EndDate)
		if errStart != nil || errEnd != nil || !end.After(start) {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Invalid dates"})
			return
		}

		guests := rq.NumberOfAdults + rq.NumberOfChildren
		rooms := make([]roomType, 0, 2)
		for _, rt := range []roomType{
			{RoomTypeID: "std", RoomTypeName: "Standard", MaxGuests: 2, RoomRate: 120},
			{RoomTypeID: "fam", RoomTypeName: "Family", MaxGuests: 4, RoomRate: 210},
		} {
			if rt.MaxGuests >= guests {
				rooms = append(rooms, rt)
			}
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"nights":  int(end.Sub(start).Hours() / 24),
			"data":    rooms,
		})
	}
}

func reservationHandler() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var rq map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&rq); err != nil {
			logging.L.Warn("error in decode request body", zap.Error(err))
			w.Header().Set("Content-Type", "text/plain")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("malformed reservation"))
			return
		}

		name, _ := rq["guestFirstName"].(string)
		if strings.TrimSpace(name) == "" {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{"success": false, "message": "guestFirstName is required"})
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":       true,
			"reservationID": "FAKE-" + strings.ToUpper(name),
			"status":        "confirmed",
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.L.Warn("error in encode response body", zap.Error(err))
	}
}

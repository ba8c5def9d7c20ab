// Package api exposes the running energy report over HTTP.
package api

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/statewatt/statewatt/pkg/energy"
)

// ReportProvider is the read surface the server needs from the accountant.
// Implementations must be safe for concurrent use; the integrator itself has
// a single-writer contract, so callers wrap it with their own snapshotting.
type ReportProvider interface {
	Report() energy.Report
	Validate(referenceJ, tolerance float64) (energy.Validation, error)
}

// NewRouter builds the API routes over a provider.
func NewRouter(p ReportProvider) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", healthHandler).Methods("GET")
	r.HandleFunc("/report", reportHandler(p)).Methods("GET")
	r.HandleFunc("/validation", validationHandler(p)).Methods("GET")
	return r
}

// ListenAndServe runs the API with access logging on addr. Blocks.
func ListenAndServe(addr string, p ReportProvider) error {
	logged := handlers.LoggingHandler(os.Stdout, NewRouter(p))
	return http.ListenAndServe(addr, logged)
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func reportHandler(p ReportProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(p.Report())
	}
}

// validationHandler compares the running total against ?ref=<J>, with an
// optional ?tol=<fraction> (default 0.01). Degenerate references come back as
// 422 rather than a computed result.
func validationHandler(p ReportProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		ref, err := strconv.ParseFloat(r.URL.Query().Get("ref"), 64)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "ref must be a number")
			return
		}
		tol := 0.01
		if q := r.URL.Query().Get("tol"); q != "" {
			tol, err = strconv.ParseFloat(q, 64)
			if err != nil {
				writeError(w, http.StatusUnprocessableEntity, "tol must be a number")
				return
			}
		}

		v, err := p.Validate(ref, tol)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

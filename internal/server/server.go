// Package server exposes the import pipeline and the transaction store over
// HTTP/JSON. The pipeline itself stays transport-agnostic; everything here
// is routing, auth and serialization.
package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/fleetops/fuelimport/internal/importer"
	"github.com/fleetops/fuelimport/internal/store"
)

// Uploads beyond this size are rejected before parsing.
const maxImportBody = 10 << 20

var log = logrus.New()

// SetLogger sets a custom logger for this package.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Server wires the importer and store behind an HTTP router.
type Server struct {
	importer *importer.Importer
	store    store.TransactionStore
	token    string
}

// New builds a server. The token guards every /api route.
func New(imp *importer.Importer, s store.TransactionStore, token string) *Server {
	return &Server{importer: imp, store: s, token: token}
}

// Router builds the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(s.requireToken)
		r.Post("/api/transactions/import", s.handleImport)
		r.Get("/api/transactions", s.handleList)
	})
	return r
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBody))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	report := s.importer.ImportFromCSV(string(body))
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	vehicleNr := r.URL.Query().Get("vehicle")
	if vehicleNr == "" {
		writeError(w, http.StatusBadRequest, "missing 'vehicle' query parameter")
		return
	}
	transactions, err := s.store.FindByVehicleNr(vehicleNr)
	if err != nil {
		log.WithError(err).Error("Failed to query transactions")
		writeError(w, http.StatusInternalServerError, "failed to query transactions")
		return
	}
	writeJSON(w, http.StatusOK, transactions)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithError(err).Warn("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Package api - Thin, deterministic API layer
// The API is ONLY responsible for input ingestion, engine orchestration
// and output serialization. It NEVER performs cost or extraction logic.
package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"cloudpool/adapters/storage"
	"cloudpool/core/extract"
	"cloudpool/core/identity"
	"cloudpool/core/invoice"
	"cloudpool/core/pool"
	"cloudpool/internal/errors"
	"cloudpool/internal/logging"
)

// Server is the API server
type Server struct {
	mux       *http.ServeMux
	store     storage.Store
	extractor *extract.Extractor
	allocator *pool.Allocator
	ids       identity.Generator
	clock     identity.Clock
	version   string
}

// Options are the collaborators the server is wired with
type Options struct {
	Store     storage.Store
	Extractor *extract.Extractor
	Allocator *pool.Allocator
	IDs       identity.Generator
	Clock     identity.Clock
	Version   string
}

// NewServer creates an API server
func NewServer(opts Options) *Server {
	if opts.IDs == nil {
		opts.IDs = identity.UUID{}
	}
	if opts.Clock == nil {
		opts.Clock = identity.SystemClock{}
	}

	s := &Server{
		mux:       http.NewServeMux(),
		store:     opts.Store,
		extractor: opts.Extractor,
		allocator: opts.Allocator,
		ids:       opts.IDs,
		clock:     opts.Clock,
		version:   opts.Version,
	}
	s.registerRoutes()
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /invoices", s.handleUpload)
	s.mux.HandleFunc("GET /invoices", s.handleListInvoices)
	s.mux.HandleFunc("GET /invoices/{id}/savings", s.handleSavings)
	s.mux.HandleFunc("DELETE /invoices/{id}", s.handleDelete)
	s.mux.HandleFunc("GET /pool", s.handlePool)
	s.mux.HandleFunc("GET /health", s.handleHealth)
}

// handleUpload handles POST /invoices: extract records from raw text,
// assemble an immutable invoice, persist it.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req UploadInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}
	if req.CustomerName == "" {
		s.writeError(w, string(errors.TypeInput), "customer_name is required", http.StatusBadRequest)
		return
	}
	if req.RawText == "" {
		s.writeError(w, string(errors.TypeInput), "raw_text is required", http.StatusBadRequest)
		return
	}

	records, err := s.extractor.ExtractPositioned(req.RawText, req.Fragments)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	inv, err := invoice.Build(req.CustomerName, req.SourceFileName, records, s.ids, s.clock)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	if err := s.store.Append(ctx, inv); err != nil {
		s.writeDomainError(w, err)
		return
	}

	logging.Info("invoice uploaded",
		zap.String("invoice_id", inv.ID),
		zap.String("customer", inv.CustomerName),
		zap.Int("records", len(inv.Records)))

	s.writeJSON(w, http.StatusCreated, InvoiceResponse{Invoice: inv})
}

// handleListInvoices handles GET /invoices
func (s *Server) handleListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := s.store.List(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, InvoiceListResponse{Invoices: invoices, Count: len(invoices)})
}

// handleSavings handles GET /invoices/{id}/savings. The pool is re-read
// from the repository on every request; nothing is cached.
func (s *Server) handleSavings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	inv, err := s.store.Get(ctx, id)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	invoices, err := s.store.List(ctx)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	savings := s.allocator.CustomerSavings(inv, invoices)
	s.writeJSON(w, http.StatusOK, SavingsResponse{
		InvoiceID:    inv.ID,
		CustomerName: inv.CustomerName,
		Savings:      savings,
	})
}

// handleDelete handles DELETE /invoices/{id}
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.Remove(r.Context(), id); err != nil {
		s.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handlePool handles GET /pool
func (s *Server) handlePool(w http.ResponseWriter, r *http.Request) {
	invoices, err := s.store.List(r.Context())
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, PoolResponse{Pool: s.allocator.PoolStats(invoices)})
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: s.version})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *Server) writeError(w http.ResponseWriter, code, message string, status int) {
	s.writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// writeDomainError maps the error taxonomy onto HTTP statuses. Only
// parse failures and input errors are client faults; everything else
// is the service's problem.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	var e *errors.Error
	if de, ok := err.(*errors.Error); ok {
		e = de
	} else {
		e = errors.Internal("unexpected error", err)
	}

	status := http.StatusInternalServerError
	switch e.Type {
	case errors.TypeParsing:
		status = http.StatusUnprocessableEntity
	case errors.TypeInput:
		status = http.StatusBadRequest
	case errors.TypeNotFound:
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		logging.Error("request failed", zap.Error(err))
	}
	s.writeError(w, string(e.Type), e.Message, status)
}

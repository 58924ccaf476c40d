// Package server exposes the quote engine over HTTP for the dealership app.
// It imposes no semantics of its own: requests are decoded, handed to the
// engine, and the result structures are returned as JSON.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/Lianag2018/calcauto-final-sub001/internal/calculation"
	"github.com/Lianag2018/calcauto-final-sub001/internal/domain"
	"github.com/Lianag2018/calcauto-final-sub001/internal/quotecache"
	"go.uber.org/zap"
)

// FinanceRequest is the body of POST /api/v1/quote/finance.
type FinanceRequest struct {
	Program domain.Program       `json:"program"`
	Inputs  domain.FinanceInputs `json:"inputs"`
}

// LeaseRequest is the body of POST /api/v1/quote/lease.
type LeaseRequest struct {
	Program domain.Program     `json:"program"`
	Inputs  domain.LeaseInputs `json:"inputs"`
}

// Server wires the engine, the lease reference tables, and an optional
// response cache behind HTTP handlers.
type Server struct {
	engine *calculation.QuoteEngine
	ref    *domain.LeaseReference
	cache  quotecache.Cache
	logger *zap.Logger
}

// New creates a Server. cache may be nil to disable memoization; logger may
// be nil for silent operation.
func New(engine *calculation.QuoteEngine, ref *domain.LeaseReference, cache quotecache.Cache, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		engine: engine,
		ref:    ref,
		cache:  cache,
		logger: logger,
	}
}

// Routes returns the HTTP mux for the quote API.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/quote/finance", s.handleFinanceQuote)
	mux.HandleFunc("/api/v1/quote/lease", s.handleLeaseQuote)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

func (s *Server) handleFinanceQuote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req FinanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	key := quotecache.RequestDigest(struct {
		Kind string `json:"kind"`
		FinanceRequest
	}{Kind: "finance", FinanceRequest: req})
	if s.serveCached(w, key) {
		return
	}

	result := s.engine.QuoteFinance(&req.Program, req.Inputs)
	if result == nil {
		// No program/price is normal partial input, not a server error.
		http.Error(w, "no result: program and positive vehicle price required", http.StatusUnprocessableEntity)
		return
	}

	s.logger.Info("finance quote computed",
		zap.String("brand", req.Program.Brand),
		zap.String("model", req.Program.Model),
		zap.Int("term", req.Inputs.Term),
	)
	s.writeJSON(w, key, result)
}

func (s *Server) handleLeaseQuote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req LeaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	key := quotecache.RequestDigest(struct {
		Kind string `json:"kind"`
		LeaseRequest
	}{Kind: "lease", LeaseRequest: req})
	if s.serveCached(w, key) {
		return
	}

	result := s.engine.QuoteLease(&req.Program, req.Inputs, s.ref)
	if result == nil {
		http.Error(w, "no result: vehicle has no lease program", http.StatusUnprocessableEntity)
		return
	}

	s.logger.Info("lease quote computed",
		zap.String("brand", req.Program.Brand),
		zap.String("model", req.Program.Model),
		zap.Int("term", req.Inputs.Term),
		zap.Int("km_per_year", req.Inputs.KMPerYear),
		zap.Int("grid_cells", len(result.Grid)),
	)
	s.writeJSON(w, key, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// serveCached writes a cached response when one exists for the key.
func (s *Server) serveCached(w http.ResponseWriter, key string) bool {
	if s.cache == nil || key == "" {
		return false
	}
	cached, ok := s.cache.Get(key)
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Quote-Cache", "hit")
	_, _ = w.Write([]byte(cached))
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("encoding response failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if s.cache != nil && key != "" {
		if err := s.cache.Set(key, string(data)); err != nil {
			s.logger.Warn("quote cache write failed", zap.Error(err))
		}
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

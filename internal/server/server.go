package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/ivlev/telop/internal/director"
	"github.com/ivlev/telop/internal/telop"
)

// Server answers caption queries for a player that reports its own
// playback position.
type Server struct {
	mu        sync.RWMutex
	set       telop.Set
	effectSec float64
	clock     *telop.ManualClock
	log       zerolog.Logger
}

func New(set telop.Set, effectSec float64, log zerolog.Logger) *Server {
	return &Server{
		set:       set,
		effectSec: effectSec,
		clock:     &telop.ManualClock{},
		log:       log,
	}
}

// Handler returns the routed API with CORS and request logging.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.loggingMiddleware)

	r.HandleFunc("/api/telop", s.handleFrame).Methods("GET")
	r.HandleFunc("/api/telop/now", s.handleNow).Methods("GET")
	r.HandleFunc("/api/clock", s.handleSetClock).Methods("POST")
	r.HandleFunc("/api/script", s.handleGetScript).Methods("GET")
	r.HandleFunc("/api/script", s.handlePutScript).Methods("PUT")

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})
	return corsHandler.Handler(r)
}

func (s *Server) snapshot() (telop.Set, float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set, s.effectSec
}

// handleFrame evaluates ?t= with an optional ?effect= override.
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	set, effectSec := s.snapshot()

	t, err := parseSeconds(r.URL.Query().Get("t"))
	if err != nil {
		http.Error(w, "query parameter t must be a finite number", http.StatusBadRequest)
		return
	}
	if v := r.URL.Query().Get("effect"); v != "" {
		effectSec, err = parseSeconds(v)
		if err != nil {
			http.Error(w, "query parameter effect must be a finite number", http.StatusBadRequest)
			return
		}
	}

	s.writeJSON(w, http.StatusOK, set.At(effectSec, t))
}

// parseSeconds rejects NaN and infinities, which JSON cannot carry back.
func parseSeconds(v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite value %q", v)
	}
	return f, nil
}

func (s *Server) handleNow(w http.ResponseWriter, r *http.Request) {
	set, effectSec := s.snapshot()
	layer := &telop.Layer{Set: set, Clock: s.clock, EffectSec: effectSec}
	s.writeJSON(w, http.StatusOK, layer.Frame())
}

type clockRequest struct {
	Time *float64 `json:"time"`
}

func (s *Server) handleSetClock(w http.ResponseWriter, r *http.Request) {
	var req clockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Time == nil {
		http.Error(w, "body must be {\"time\": seconds}", http.StatusBadRequest)
		return
	}
	s.clock.Set(*req.Time)
	s.writeJSON(w, http.StatusOK, map[string]float64{"time": s.clock.Now()})
}

func (s *Server) handleGetScript(w http.ResponseWriter, r *http.Request) {
	set, effectSec := s.snapshot()
	s.writeJSON(w, http.StatusOK, director.NewScript(set, effectSec))
}

// handlePutScript replaces the served caption set.
func (s *Server) handlePutScript(w http.ResponseWriter, r *http.Request) {
	var script director.Script
	if err := json.NewDecoder(r.Body).Decode(&script); err != nil {
		http.Error(w, "invalid script: "+err.Error(), http.StatusBadRequest)
		return
	}

	set := script.Set()
	for _, issue := range director.Validate(set) {
		s.log.Warn().Str("issue", issue.Kind).Msg(issue.String())
	}

	s.mu.Lock()
	s.set = set
	s.effectSec = script.Effect(s.effectSec)
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, map[string]int{"telops": len(set)})
}

// writeJSON encodes before writing the header so a failed encode becomes a 500.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("[!] encode response")
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.log.Debug().Err(err).Msg("write response")
	}
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		s.log.Debug().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapped.statusCode).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

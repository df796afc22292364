// Package api serves the game state over HTTP.
// GET endpoints are public (read-only observation).
// POST endpoints require a bearer token (admin control plane).
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/keldine/worldtycoon/internal/engine"
	"github.com/keldine/worldtycoon/internal/persistence"
)

// Server exposes the world over HTTP.
type Server struct {
	World    *engine.World
	Eng      *engine.Engine
	DB       *persistence.DB
	Addr     string
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.

	hub *streamHub
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	s.hub = newStreamHub()
	saveLimiter := NewRateLimiter(10, time.Minute)

	mux := http.NewServeMux()

	// Public read surface.
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/companies", s.handleCompanies)
	mux.HandleFunc("/api/v1/company/", s.handleCompanyDetail)
	mux.HandleFunc("/api/v1/economy", s.handleEconomy)
	mux.HandleFunc("/api/v1/news", s.handleNews)
	mux.HandleFunc("/api/v1/news/log", s.handleNewsLog)
	mux.HandleFunc("/api/v1/costs", s.handleCosts)
	mux.HandleFunc("/api/v1/market/", s.handleMarket)
	mux.HandleFunc("/api/v1/countries", s.handleCountries)

	// Live day-advanced stream.
	mux.HandleFunc("/api/v1/stream", s.handleStream)

	// Admin control plane.
	mux.HandleFunc("/api/v1/speed", s.adminOnly(s.handleSpeed))
	mux.HandleFunc("/api/v1/save", s.adminOnly(RateLimitMiddleware(saveLimiter, s.handleSave)))
	s.registerActions(mux)

	slog.Info("HTTP API starting", "addr", s.Addr, "admin_auth", s.AdminKey != "")

	go func() {
		handler := corsMiddleware(mux)
		if err := http.ListenAndServe(s.Addr, handler); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// NotifyDay pushes a day-advanced event to stream subscribers. Wire it to
// the engine's OnDay callback.
func (s *Server) NotifyDay(day int) {
	if s.hub == nil {
		return
	}
	s.World.Lock()
	payload := map[string]any{
		"day":  day,
		"date": s.World.Date.Format("2006-01-02"),
	}
	s.World.Unlock()
	s.hub.broadcast(payload)
}

// corsMiddleware adds CORS headers for allowed frontend origins. Set
// CORS_ORIGINS to a comma-separated list; localhost dev servers are
// always allowed.
func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

// adminOnly requires bearer token auth on POST requests. GET passes
// through for endpoints that support both.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if s.AdminKey == "" {
				http.Error(w, "admin endpoints disabled", http.StatusForbidden)
				return
			}
			if !s.checkBearerToken(r) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.World.Lock()
	status := map[string]any{
		"date":        s.World.Date.Format("2006-01-02"),
		"day":         s.World.Day,
		"cycle":       s.World.Indicators.Cycle,
		"inflation":   s.World.Indicators.InflationRate,
		"interest":    s.World.Indicators.InterestRate,
		"companies":   len(s.World.Companies),
		"unread_news": s.World.UnreadNews(),
		"speed":       s.Eng.Speed(),
		"running":     s.Eng.Running(),
	}
	s.World.Unlock()
	writeJSON(w, status)
}

func (s *Server) handleCompanies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.World.CompanySummaries())
}

func (s *Server) handleCompanyDetail(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(r.URL.Path, "/")
	if len(parts) < 5 || parts[4] == "" {
		http.Error(w, "missing company id", http.StatusBadRequest)
		return
	}
	s.World.Lock()
	c := s.World.CompanyByID(parts[4])
	s.World.Unlock()
	if c == nil {
		http.Error(w, "company not found", http.StatusNotFound)
		return
	}
	writeJSON(w, c)
}

func (s *Server) handleEconomy(w http.ResponseWriter, r *http.Request) {
	s.World.Lock()
	result := map[string]any{
		"indicators": s.World.Indicators,
		"averages":   s.World.Averages,
	}
	s.World.Unlock()
	writeJSON(w, result)
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	limit := engine.MaxNewsItems
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= engine.MaxNewsItems {
			limit = n
		}
	}
	s.World.Lock()
	news := s.World.News
	if len(news) > limit {
		news = news[len(news)-limit:]
	}
	out := make([]engine.NewsItem, len(news))
	copy(out, news)
	if r.URL.Query().Get("mark_read") == "true" {
		s.World.MarkNewsRead()
	}
	s.World.Unlock()
	writeJSON(w, out)
}

func (s *Server) handleNewsLog(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "database not available", http.StatusServiceUnavailable)
		return
	}
	limit := 100
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}
	records, err := s.DB.RecentNews(limit)
	if err != nil {
		slog.Error("news log query failed", "error", err)
		writeJSON(w, []persistence.NewsRecord{})
		return
	}
	if records == nil {
		records = []persistence.NewsRecord{}
	}
	writeJSON(w, records)
}

func (s *Server) handleCosts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.World.CostTable())
}

func (s *Server) handleMarket(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(r.URL.Path, "/")
	if len(parts) < 5 || parts[4] == "" {
		http.Error(w, "usage: /api/v1/market/:country", http.StatusBadRequest)
		return
	}
	writeJSON(w, s.World.MarketReport(strings.ToUpper(parts[4])))
}

func (s *Server) handleCountries(w http.ResponseWriter, r *http.Request) {
	s.World.Lock()
	result := map[string]any{
		"countries": s.World.Countries,
		"cities":    s.World.Cities,
	}
	s.World.Unlock()
	writeJSON(w, result)
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		var req struct {
			Speed float64 `json:"speed"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.Speed < 0 || req.Speed > 100 {
			http.Error(w, "speed must be 0-100", http.StatusBadRequest)
			return
		}
		s.Eng.SetSpeed(req.Speed)
	}
	writeJSON(w, map[string]float64{"speed": s.Eng.Speed()})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.DB == nil {
		http.Error(w, "database not available", http.StatusServiceUnavailable)
		return
	}
	snapshot, err := s.World.Snapshot()
	if err != nil {
		slog.Error("snapshot failed", "error", err)
		http.Error(w, "snapshot failed", http.StatusInternalServerError)
		return
	}
	if err := s.DB.SaveSlot(persistence.DefaultSlot, snapshot); err != nil {
		slog.Error("save failed", "error", err)
		http.Error(w, "save failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"saved": true, "bytes": len(snapshot)})
}

// writeError maps action rejections to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, engine.ErrInsufficientFunds):
		status = http.StatusPaymentRequired
	case errors.Is(err, engine.ErrInvalidTarget),
		errors.Is(err, engine.ErrMissingTechnology),
		errors.Is(err, engine.ErrNotOperating),
		errors.Is(err, engine.ErrLimitReached),
		errors.Is(err, engine.ErrAlreadyPublic):
		status = http.StatusUnprocessableEntity
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

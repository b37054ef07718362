// Package httpapi exposes the registry, checker, and history over HTTP
// for dashboards and scripts. It binds to loopback by default; there is
// no auth layer.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"statuswatch/internal/domain"
	"statuswatch/internal/probe"
	"statuswatch/internal/registry"
	"statuswatch/internal/scheduler"
	"statuswatch/internal/store"
)

type Server struct {
	Logger    *zap.Logger
	Registry  *registry.Registry
	Results   store.ResultStore
	Scheduler *scheduler.Scheduler
	Checker   probe.Checker
}

func NewServer(l *zap.Logger, reg *registry.Registry, rs store.ResultStore, sched *scheduler.Scheduler, c probe.Checker) *Server {
	return &Server{Logger: l, Registry: reg, Results: rs, Scheduler: sched, Checker: c}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/api/urls", s.handleListURLs)
	r.Post("/api/urls", s.handleAddURL)
	r.Delete("/api/urls", s.handleRemoveURL)
	r.Post("/api/check", s.handleCheck)
	r.Get("/api/history", s.handleHistory)

	return r
}

type addPayload struct {
	URL string `json:"url"`
}

func (s *Server) handleAddURL(w http.ResponseWriter, r *http.Request) {
	var p addPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.URL == "" {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}

	url := domain.NormalizeURL(p.URL)
	if err := domain.ValidateURL(url); err != nil {
		http.Error(w, "invalid url: "+err.Error(), http.StatusBadRequest)
		return
	}

	added, err := s.Registry.Add(url)
	if err != nil {
		http.Error(w, "could not add", http.StatusInternalServerError)
		return
	}
	if !added {
		http.Error(w, "url already registered", http.StatusConflict)
		return
	}

	// Run a single check synchronously for immediate feedback
	res := s.Checker.Check(r.Context(), url)
	if err := s.Results.Record(r.Context(), &res); err != nil {
		s.Logger.Warn("record_error", zap.String("url", url), zap.Error(err))
	}

	// If the probe couldn't connect, a DNS lookup tells the caller whether
	// the name even resolves
	dnsClass := ""
	if res.Status == domain.StatusConnectionError {
		dns := probe.LookupDNS(probe.HostOf(url))
		dnsClass = string(dns.Class)
		s.Logger.Info("dns_check",
			zap.String("host", dns.Host),
			zap.String("class", dnsClass),
			zap.Strings("nameservers", dns.Nameservers),
			zap.String("cname", dns.CNAME),
			zap.String("resolver_error", dns.ResolverError),
		)
	}

	s.Logger.Info("url_added",
		zap.String("url", url),
		zap.String("status", string(res.Status)),
	)

	resp := map[string]any{"url": url, "result": res}
	if dnsClass != "" {
		resp["dns"] = dnsClass
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleListURLs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Registry.List())
}

func (s *Server) handleRemoveURL(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		http.Error(w, "missing url parameter", http.StatusBadRequest)
		return
	}

	removed, err := s.Registry.Remove(url)
	if err != nil {
		http.Error(w, "could not remove", http.StatusInternalServerError)
		return
	}
	if !removed {
		http.Error(w, "url not found", http.StatusNotFound)
		return
	}

	s.Logger.Info("url_removed", zap.String("url", domain.NormalizeURL(url)))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"removed": domain.NormalizeURL(url)})
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	out := s.Scheduler.CheckOnce(r.Context())
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := store.HistoryFilter{}
	if u := q.Get("url"); u != "" {
		f.URL = domain.NormalizeURL(u)
	}
	if l := q.Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 0 {
			http.Error(w, "bad limit", http.StatusBadRequest)
			return
		}
		f.Limit = n
	}

	results, err := s.Results.History(r.Context(), f)
	if err != nil {
		s.Logger.Warn("history_error", zap.Error(err))
		http.Error(w, "history error", http.StatusInternalServerError)
		return
	}
	if results == nil {
		results = []domain.CheckResult{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mkrause/gitcoupling/internal/analysis"
	"github.com/mkrause/gitcoupling/internal/config"
	gcerrors "github.com/mkrause/gitcoupling/internal/errors"
)

// Server is the thin HTTP boundary consumed by the visualization layer.
// It owns no state beyond its collaborators: every request triggers a full
// recomputation, and the request context reaches down into the git
// subprocesses so a closed connection kills them.
type Server struct {
	svc *analysis.Service
	cfg *config.Config
	log *logrus.Logger
}

// New creates a server around an analysis service.
func New(svc *analysis.Service, cfg *config.Config, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.New()
	}
	return &Server{svc: svc, cfg: cfg, log: log}
}

// Handler returns the route tree with request-ID logging applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/repo-stats", s.handleRepoStats)
	mux.HandleFunc("GET /api/repo-url", s.handleRepoURL)
	mux.HandleFunc("POST /api/open", s.handleOpen)
	return s.withRequestLog(mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	s.log.WithField("addr", s.cfg.Server.Addr).Info("listening")
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		start := time.Now()
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r)
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
			"duration":   time.Since(start).String(),
		}).Info("request handled")
	})
}

func (s *Server) handleRepoStats(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.RepoStats(r.Context(), s.cfg)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res.Structure)
}

func (s *Server) handleRepoURL(w http.ResponseWriter, r *http.Request) {
	url, err := s.svc.RepoURL(r.Context(), s.cfg.RepoPath)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"repoUrl": url})
}

type openRequest struct {
	Path string `json:"path"`
}

func (s *Server) handleOpen(w http.ResponseWriter, r *http.Request) {
	var req openRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
		http.Error(w, "body must be JSON with a non-empty path", http.StatusBadRequest)
		return
	}
	if err := s.svc.OpenInEditor(s.cfg, req.Path); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.WithError(err).Error("encoding response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case gcerrors.IsRepository(err):
		status = http.StatusBadRequest
	case gcerrors.IsCommand(err):
		status = http.StatusBadGateway
	}
	s.log.WithError(err).Warn("request failed")
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

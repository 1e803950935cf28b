package app

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/hearth-home/hearth/common/version"
	"github.com/hearth-home/hearth/internal/hearth/store"
)

// Server exposes the HTTP transport: the command endpoint plus health,
// status, and transcript views.
type Server struct {
	addr      string
	app       *App
	mux       *http.ServeMux
	server    *http.Server
	startedAt time.Time
}

// NewServer creates an HTTP server bound to addr, serving commands against app.
func NewServer(addr string, app *App) *Server {
	s := &Server{
		addr: addr,
		app:  app,
		mux:  http.NewServeMux(),
	}

	s.mux.HandleFunc("/command", s.handleCommand)
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/status", s.handleStatus)
	s.mux.HandleFunc("/transcript", s.handleTranscript)

	return s
}

// ServeHTTP implements http.Handler by delegating to the route mux.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Start begins listening in the background. It returns an error immediately
// if the address cannot be bound; serve errors after that are logged.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	s.startedAt = time.Now()
	s.server = &http.Server{
		Handler:      s.mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", listener.Addr().String())
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "err", err)
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() {
	if s.server == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		slog.Warn("HTTP server shutdown", "err", err)
	}
	s.server = nil
}

// commandRequest is the body of POST /command.
type commandRequest struct {
	Command string `json:"command"`
}

// errorResponse is the body of any non-200 JSON response.
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	resp := s.app.Execute(r.Context(), "http", r.RemoteAddr, req.Command)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Version,
		"commit":  version.GitCommit,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	count, err := s.app.store.CommandCount(r.Context())
	if err != nil {
		slog.Warn("status: command count query failed", "err", err)
	}

	s.app.mu.Lock()
	snapshot := s.app.engine.Snapshot()
	s.app.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"version":        version.Version,
		"commit":         version.GitCommit,
		"uptime_seconds": int(time.Since(s.startedAt).Seconds()),
		"commands":       count,
		"state":          snapshot,
	})
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = n
	}

	entries, err := s.app.store.GetTranscript(r.Context(), limit)
	if err != nil {
		slog.Error("transcript query failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load transcript"})
		return
	}
	if entries == nil {
		entries = []*store.TranscriptEntry{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON response", "err", err)
	}
}

// Package http exposes the editor over a JSON HTTP API: story CRUD, a
// newline-delimited generation progress stream, the Mermaid graph export and
// the operational endpoints (/healthz, /metrics).
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fabulark/fabula"
	"github.com/fabulark/fabula/internal/presentation/graph"
	"github.com/fabulark/fabula/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server wires the editor to the router.
type Server struct {
	editor  *fabula.Editor
	logger  *slog.Logger
	metrics http.Handler
}

type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsHandler mounts a /metrics endpoint.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewHandler creates the HTTP handler for the editor.
func NewHandler(editor *fabula.Editor, opts ...Option) http.Handler {
	s := &Server{
		editor: editor,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.getHealth)
	r.Get("/info", s.getInfo)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/stories", func(r chi.Router) {
		r.Get("/", s.listStories)
		r.Post("/", s.createStory)
		r.Route("/{storyID}", func(r chi.Router) {
			r.Get("/", s.getStory)
			r.Put("/", s.putStory)
			r.Delete("/", s.deleteStory)
			r.Get("/graph", s.getGraph)
			r.Post("/generate", s.generate)
		})
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) getInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"app":     "fabula-http",
		"version": strings.TrimSpace(fabula.Version),
	})
}

// storySummary is the list representation of a story.
type storySummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func (s *Server) listStories(w http.ResponseWriter, r *http.Request) {
	ids := s.editor.StoryIDs()
	summaries := make([]storySummary, 0, len(ids))
	for _, id := range ids {
		story, err := s.editor.Story(id)
		if err != nil {
			// deleted between listing and lookup
			continue
		}
		summaries = append(summaries, storySummary{ID: id, Title: story.Title})
	}
	writeJSON(w, summaries)
}

func (s *Server) createStory(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var id string
	if len(body) > 0 {
		// import a serialized document
		id, _, err = s.editor.ImportStory(body)
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid story document: %v", err), http.StatusBadRequest)
			s.logger.Warn("create story: invalid document", "err", err)
			return
		}
	} else {
		id, _ = s.editor.CreateStory()
	}

	w.WriteHeader(http.StatusCreated)
	writeJSON(w, map[string]string{"id": id})
}

func (s *Server) getStory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "storyID")
	data, err := s.editor.ExportStory(id)
	if err != nil {
		s.writeStoryError(w, id, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (s *Server) putStory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "storyID")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	replacement, err := domain.Decode(body)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid story document: %v", err), http.StatusBadRequest)
		s.logger.Warn("put story: invalid document", "story_id", id, "err", err)
		return
	}

	if _, err := s.editor.Update(id, func(*domain.Story) *domain.Story { return replacement }); err != nil {
		s.writeStoryError(w, id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteStory(w http.ResponseWriter, r *http.Request) {
	s.editor.DeleteStory(chi.URLParam(r, "storyID"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getGraph(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "storyID")
	story, err := s.editor.Story(id)
	if err != nil {
		s.writeStoryError(w, id, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, graph.GenerateMermaid(story.Flow))
}

// generateRequest is the body of POST /stories/{id}/generate.
type generateRequest struct {
	StartNode string `json:"start_node,omitempty"`
}

// progressEvent is one NDJSON line of the generation stream.
type progressEvent struct {
	Current int    `json:"current"`
	Total   int    `json:"total"`
	NodeID  string `json:"node_id,omitempty"`
	Label   string `json:"label,omitempty"`
	Done    bool   `json:"done,omitempty"`
	Error   string `json:"error,omitempty"`
}

// generate streams one progress line per generated node and commits the
// story at the end. A failed step ends the stream with an error line; the
// story is left untouched.
func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "storyID")

	var req generateRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	var opts []fabula.RunOption
	if req.StartNode != "" {
		opts = append(opts, fabula.FromNode(req.StartNode))
	}

	run, err := s.editor.Generate(id, opts...)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrStoryNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, fabula.ErrNoGenerator):
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
		default:
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		}
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Cache-Control", "no-cache")
	flusher, canFlush := w.(http.Flusher)

	writeEvent := func(evt progressEvent) {
		line, _ := json.Marshal(evt)
		_, _ = w.Write(append(line, '\n'))
		if canFlush {
			flusher.Flush()
		}
	}

	for !run.Done() {
		p, err := run.Step(r.Context())
		if err != nil {
			s.logger.Error("generation step failed", "story_id", id, "err", err)
			writeEvent(progressEvent{Current: p.Current, Total: p.Total, Label: p.Label, Error: err.Error()})
			return
		}
		writeEvent(progressEvent{Current: p.Current, Total: p.Total, NodeID: p.NodeID, Label: p.Label})
	}

	if _, err := run.Commit(); err != nil {
		s.logger.Error("generation commit failed", "story_id", id, "err", err)
		writeEvent(progressEvent{Current: run.Total(), Total: run.Total(), Error: err.Error()})
		return
	}
	writeEvent(progressEvent{Current: run.Total(), Total: run.Total(), Done: true})
}

func (s *Server) writeStoryError(w http.ResponseWriter, id string, err error) {
	if errors.Is(err, domain.ErrStoryNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	s.logger.Error("story request failed", "story_id", id, "err", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}

package visualization

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nvandessel/cooccur/internal/cooccur"
	"github.com/nvandessel/cooccur/internal/ranking"
)

// Server serves the interactive graph page and re-selects the subgraph per
// request. The graph is read-only, so handlers share it without locking.
type Server struct {
	graph    *cooccur.Graph
	criteria cooccur.Criteria
	opts     Options
	log      *slog.Logger
	router   chi.Router

	httpServer *http.Server
	listener   net.Listener
	mu         sync.Mutex
	addr       string
}

// NewServer creates a graph server. criteria is used when a request carries
// no selection parameters.
func NewServer(g *cooccur.Graph, criteria cooccur.Criteria, opts Options, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		graph:    g,
		criteria: criteria,
		opts:     opts,
		log:      log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleIndex)
	r.Get("/api/graph", s.handleGraphJSON)
	r.Get("/graph.{format}", s.handleGraphFile)

	s.router = r
}

// Addr returns the address the server is listening on (e.g., "localhost:PORT").
// Returns empty string if the server hasn't started yet.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// ListenAndServe listens on addr ("localhost:0" lets the OS pick a port) and
// blocks until ctx is cancelled. A clean shutdown returns nil.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = "localhost:0"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	s.mu.Lock()
	s.listener = ln
	s.addr = ln.Addr().String()
	s.httpServer = &http.Server{Handler: s, ReadHeaderTimeout: 10 * time.Second}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.httpServer.Shutdown(shutdownCtx)
	}()

	err = s.httpServer.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// criteriaFrom reads zoom and names query parameters, falling back to the
// server defaults.
func (s *Server) criteriaFrom(r *http.Request) (cooccur.Criteria, error) {
	c := s.criteria
	q := r.URL.Query()
	if z := q.Get("zoom"); z != "" {
		zoom, err := strconv.Atoi(z)
		if err != nil || zoom < 0 {
			return c, fmt.Errorf("invalid zoom %q", z)
		}
		c.Zoom = zoom
		c.Names = nil
	}
	if q.Has("names") {
		c.Names = SplitNames(q.Get("names"))
	}
	return c, nil
}

// selection runs the request's criteria and returns the options to render it with.
func (s *Server) selection(r *http.Request) (cooccur.Selection, Options, error) {
	c, err := s.criteriaFrom(r)
	if err != nil {
		return cooccur.Selection{}, Options{}, err
	}
	sel := cooccur.Select(s.graph, c)
	if len(sel.Missing) > 0 {
		s.log.Debug("names not in graph", "missing", sel.Missing)
	}

	opts := s.opts
	pr, err := ranking.ComputePageRank(r.Context(), sel.Subgraph, ranking.DefaultPageRankConfig())
	if err != nil {
		return cooccur.Selection{}, Options{}, err
	}
	opts.Enrichment = &EnrichmentData{PageRank: pr}
	return sel, opts, nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sel, opts, err := s.selection(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	form := &FormState{Zoom: s.criteria.Zoom, Missing: sel.Missing}
	if c, err := s.criteriaFrom(r); err == nil {
		form.Zoom = c.Zoom
		form.Names = strings.Join(c.Names, ",")
	}
	html, err := RenderHTML(BuildView(sel.Subgraph, opts), form)
	if err != nil {
		http.Error(w, "render error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

func (s *Server) handleGraphJSON(w http.ResponseWriter, r *http.Request) {
	sel, opts, err := s.selection(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := Render(w, FormatJSON, sel.Subgraph, opts); err != nil {
		s.log.Error("render json", "error", err)
	}
}

var contentTypes = map[Format]string{
	FormatDOT:     "text/vnd.graphviz; charset=utf-8",
	FormatPNG:     "image/png",
	FormatAdjList: "text/plain; charset=utf-8",
	FormatJSON:    "application/json",
	FormatHTML:    "text/html; charset=utf-8",
}

func (s *Server) handleGraphFile(w http.ResponseWriter, r *http.Request) {
	format, err := ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	sel, opts, err := s.selection(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	if err := Render(w, format, sel.Subgraph, opts); err != nil {
		s.log.Error("render", "format", format, "error", err)
	}
}

// SplitNames parses a comma-separated word list, dropping blanks.
func SplitNames(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			log.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"request_id", middleware.GetReqID(r.Context()),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

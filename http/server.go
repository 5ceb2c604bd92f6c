package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/medialinks"
	mlslog "github.com/fwojciec/medialinks/slog"
	"github.com/google/uuid"
)

// Server defaults.
const (
	DefaultAddr     = ":8080"
	ShutdownTimeout = 5 * time.Second
)

// Renderer renders HTML fragments and pages for the server.
type Renderer interface {
	RenderLinks(w io.Writer, result *medialinks.ScrapeResult) error
	RenderError(w io.Writer, message string) error
	RenderIndex(w io.Writer) error
}

// Server serves the scrape endpoint and its front-end.
type Server struct {
	ln     net.Listener
	server *http.Server
	mux    *http.ServeMux

	scraper     medialinks.Scraper
	renderer    Renderer
	logger      *slog.Logger
	addr        string
	allowOrigin string
	static      fs.FS
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithAddr sets the listen address. Defaults to DefaultAddr.
func WithAddr(addr string) ServerOption {
	return func(s *Server) {
		s.addr = addr
	}
}

// WithAllowOrigin sets the Access-Control-Allow-Origin value sent on
// scrape responses. An empty origin omits the header.
func WithAllowOrigin(origin string) ServerOption {
	return func(s *Server) {
		s.allowOrigin = origin
	}
}

// WithStatic serves fsys under /static/.
func WithStatic(fsys fs.FS) ServerOption {
	return func(s *Server) {
		s.static = fsys
	}
}

// NewServer creates a Server. Call Open to start listening.
func NewServer(scraper medialinks.Scraper, renderer Renderer, logger *slog.Logger, opts ...ServerOption) *Server {
	s := &Server{
		mux:      http.NewServeMux(),
		scraper:  scraper,
		renderer: renderer,
		logger:   logger,
		addr:     DefaultAddr,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.Handle("POST /scrape/media", s.cors(http.HandlerFunc(s.handleScrape)))
	s.mux.Handle("OPTIONS /scrape/media", s.cors(http.HandlerFunc(s.handlePreflight)))
	if s.static != nil {
		s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(s.static)))
	}

	var handler http.Handler = s.mux
	handler = s.recovery(handler)
	handler = s.requestLogger(handler)

	s.server = &http.Server{
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

// ServeHTTP runs the full middleware chain.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.server.Handler.ServeHTTP(w, r)
}

// Open begins listening on the configured address and serves in the background.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.addr); err != nil {
		return err
	}
	go func() {
		if err := s.server.Serve(s.ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("serve", "err", err)
		}
	}()
	s.logger.Info("http server listening", "addr", s.ln.Addr().String())
	return nil
}

// Close gracefully shuts down the server, waiting up to ShutdownTimeout
// for in-flight requests.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the local base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.renderer.RenderIndex(&buf); err != nil {
		s.Error(w, r, err)
		return
	}
	writeHTML(w, http.StatusOK, buf.Bytes())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

func (s *Server) handlePreflight(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	pageURL := r.PostFormValue("url")
	if pageURL == "" {
		s.Error(w, r, medialinks.Errorf(medialinks.EINVALID, "Missing url field"))
		return
	}

	result, err := s.scraper.Scrape(r.Context(), pageURL)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	if prefersJSON(r) {
		writeJSON(w, http.StatusOK, result)
		return
	}

	var buf bytes.Buffer
	if err := s.renderer.RenderLinks(&buf, result); err != nil {
		s.Error(w, r, err)
		return
	}
	writeHTML(w, http.StatusOK, buf.Bytes())
}

// Error writes err to the response as an error card or JSON object.
// Internal errors are logged and their details hidden.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	code, message := medialinks.ErrorCode(err), medialinks.ErrorMessage(err)
	status := ErrorStatusCode(code)

	if code == medialinks.EINTERNAL {
		mlslog.FromContext(r.Context(), s.logger).Error("internal error", "err", err)
	}

	if prefersJSON(r) {
		writeJSON(w, status, struct {
			Error string `json:"error"`
		}{message})
		return
	}

	var buf bytes.Buffer
	if rerr := s.renderer.RenderError(&buf, message); rerr != nil {
		http.Error(w, message, status)
		return
	}
	writeHTML(w, status, buf.Bytes())
}

var codes = map[string]int{
	medialinks.EINVALID:     http.StatusBadRequest,
	medialinks.ENOTFOUND:    http.StatusNotFound,
	medialinks.EUNAVAILABLE: http.StatusBadGateway,
	medialinks.EINTERNAL:    http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// prefersJSON reports whether the first of application/json and text/html
// listed in the Accept header is application/json.
func prefersJSON(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, _, _ := strings.Cut(strings.TrimSpace(part), ";")
		switch strings.TrimSpace(mediaType) {
		case "application/json":
			return true
		case "text/html":
			return false
		}
	}
	return false
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.allowOrigin != "" {
			w.Header().Set("Access-Control-Allow-Origin", s.allowOrigin)
		}
		next.ServeHTTP(w, r)
	})
}

// responseRecorder captures status and bytes written.
type responseRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (rw *responseRecorder) WriteHeader(code int) {
	if rw.status == 0 {
		rw.status = code
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseRecorder) Write(b []byte) (int, error) {
	if rw.status == 0 {
		rw.status = http.StatusOK
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", reqID)

		logger := s.logger.With(
			"request_id", reqID,
			"http.method", r.Method,
			"http.path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)
		ctx := mlslog.WithLogger(r.Context(), logger)
		r = r.WithContext(ctx)

		rec := &responseRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		lvl := slog.LevelInfo
		if rec.status >= 500 {
			lvl = slog.LevelError
		} else if rec.status >= 400 {
			lvl = slog.LevelWarn
		}
		logger.Log(ctx, lvl, "request",
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"bytes", rec.bytes,
		)
	})
}

func (s *Server) recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				mlslog.FromContext(r.Context(), s.logger).Error("panic recovered", "error", v)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

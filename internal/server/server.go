// Package server exposes chart synchronization over HTTP.
//
// Documents live in a [document.Store]; each sync or unlink request loads the
// document, runs the pipeline against it with the chart type and data from
// the request body, and stores the result. Requests for the same document are
// serialized. Domain failures (wrong selection, broken link, render error)
// are answered with 200 and the notice the user would have seen, because the
// request itself was valid; only malformed requests and missing documents
// produce 4xx responses.
//
// # Routes
//
//	GET  /healthz
//	GET  /v1/chart-types
//	GET  /v1/documents/{id}
//	PUT  /v1/documents/{id}
//	POST /v1/documents/{id}/sync
//	POST /v1/documents/{id}/unlink
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/suechart/pkg/document"
	"github.com/matzehuels/suechart/pkg/pipeline"
)

// maxBodyBytes limits request bodies. Documents carry imported artwork, so
// this is generous.
const maxBodyBytes = 16 << 20

// Server handles the HTTP API.
type Server struct {
	store    document.Store
	renderer pipeline.Renderer
	logger   *log.Logger
	locks    *keyedMutex
}

// New creates a server. A nil logger means log.Default().
func New(store document.Store, renderer pipeline.Renderer, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		store:    store,
		renderer: renderer,
		logger:   logger,
		locks:    newKeyedMutex(),
	}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/chart-types", s.handleChartTypes)
		r.Route("/documents/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetDocument)
			r.Put("/", s.handlePutDocument)
			r.Post("/sync", s.handleSync)
			r.Post("/unlink", s.handleUnlink)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// logRequests logs one line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Millisecond),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

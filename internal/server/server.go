// Package server serves a record set over HTTP with filter, sort and paging
// controls taken from the query string.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/vegasq/qsift/output"
	"github.com/vegasq/qsift/policy"
	"github.com/vegasq/qsift/query"
)

type Server struct {
	records []map[string]any
	policy  *policy.Policy[map[string]any]
	cors    *cors.Cors
	log     *zap.SugaredLogger
}

// New serves records under the resolved policy p. Browsers from origins may
// read the responses; "*" allows any origin.
func New(records []map[string]any, p *policy.Policy[map[string]any], origins []string, log *zap.SugaredLogger) *Server {
	return &Server{
		records: records,
		policy:  p,
		cors: cors.New(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"*"},
		}),
		log: log,
	}
}

// Handler returns the routes wrapped in CORS and request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /records", s.handleRecords)
	mux.HandleFunc("GET /properties", s.handleProperties)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return s.cors.Handler(s.logging(mux))
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Infow("serving records", "addr", addr, "entity", s.policy.Entity(), "records", len(s.records))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "server failed")
	case <-ctx.Done():
	}

	s.log.Infow("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown failed")
	}
	return nil
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	req, err := query.ParseRequest(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	plan, err := query.Prepare(req, s.policy)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := plan.Apply(slices.Values(s.records)).CollectPage()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := output.NewJSONFormatter(w).FormatPage(result); err != nil {
		s.log.Warnw("failed to write response", "error", err)
	}
}

type propertyResponse struct {
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	Filterable bool   `json:"filterable"`
	Sortable   bool   `json:"sortable"`
}

type propertiesResponse struct {
	Entity          string             `json:"entity"`
	Filtering       bool               `json:"filtering"`
	Sorting         bool               `json:"sorting"`
	Paging          bool               `json:"paging"`
	DefaultPageSize int                `json:"defaultPageSize"`
	MaximumPageSize int                `json:"maximumPageSize"`
	Properties      []propertyResponse `json:"properties"`
}

func (s *Server) handleProperties(w http.ResponseWriter, r *http.Request) {
	resp := propertiesResponse{
		Entity:          s.policy.Entity(),
		Filtering:       s.policy.FilteringEnabled(),
		Sorting:         s.policy.SortingEnabled(),
		Paging:          s.policy.PagingEnabled(),
		DefaultPageSize: s.policy.DefaultPageSize(),
		MaximumPageSize: s.policy.MaximumPageSize(),
		Properties:      []propertyResponse{},
	}
	for _, prop := range s.policy.Properties() {
		resp.Properties = append(resp.Properties, propertyResponse{
			Name:       prop.Name,
			Kind:       prop.Kind.String(),
			Filterable: prop.Filterable,
			Sortable:   prop.Sortable,
		})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

type errorResponse struct {
	Error string   `json:"error"`
	Hints []string `json:"hints,omitempty"`
}

// writeError answers client errors with 400 and their hints. Anything else
// is logged and hidden behind a 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if !query.IsClientError(err) {
		s.log.Errorw("request failed", "path", r.URL.Path, "query", r.URL.RawQuery, "error", err)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	s.log.Debugw("rejected request", "query", r.URL.RawQuery, "error", err)
	s.writeJSON(w, http.StatusBadRequest, errorResponse{
		Error: err.Error(),
		Hints: errors.GetAllHints(err),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Warnw("failed to write response", "error", err)
	}
}

// statusWriter captures the status code for the request log.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

func (s *Server) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.log.Infow("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(start),
			"remote", r.RemoteAddr)
	})
}

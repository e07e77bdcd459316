package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	Sc "github.com/austencloud/tka-scribe-sub004/classifier"
	So "github.com/austencloud/tka-scribe-sub004/obvy"
	Sp "github.com/austencloud/tka-scribe-sub004/plugin"
	St "github.com/austencloud/tka-scribe-sub004/types"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var Version = "dev"

// maxDocumentBytes bounds a posted sequence document
const maxDocumentBytes = 1 << 20

// Server answers classification requests and serves stored results.
// Results are read-only here, the batch runner writes them.
type Server struct {
	Results Sp.ResultOutput
	Stats   *So.StatsInternal // nil records nothing and serves no /metrics
}

// SetupMux handles all data serving:
// - Prometheus metric endpoint
// - Version for programmatic use
// - On demand classification
// - Stored results for review
func (s *Server) SetupMux() *mux.Router {
	r := mux.NewRouter()

	r.Handle("/metrics", s.Stats.Handler())

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.StatsMiddleware)
	api.HandleFunc("/version", s.VersionHandler).Methods(http.MethodGet)
	api.HandleFunc("/classify", s.ClassifyHandler).Methods(http.MethodPost)
	api.HandleFunc("/results", s.ResultsHandler).Methods(http.MethodGet)
	api.HandleFunc("/results/{id}", s.ResultHandler).Methods(http.MethodGet)

	return r
}

// Handler is the instrumented root handler
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(s.SetupMux(), "scribe")
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Serving", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		slog.Info("Shutting down server")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) VersionHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": Version})
}

// ClassifyHandler classifies a posted sequence document without storing it.
// The optional ?id= names the sequence, otherwise the document's word is used.
func (s *Server) ClassifyHandler(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	}

	seq, err := Sp.DecodeSequence(r.URL.Query().Get("id"), data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res := Sc.Classify(seq)
	res.ClassifiedAt = time.Now().UTC()
	s.Stats.RecClassified(res.LoopType)

	writeJSON(w, http.StatusOK, res)
}

// ResultsHandler lists stored results, optionally filtered with ?loopType=
func (s *Server) ResultsHandler(w http.ResponseWriter, r *http.Request) {
	results, err := s.Results.Results(r.Context())
	if err != nil {
		slog.Error("Could not list results", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if lt := r.URL.Query().Get("loopType"); lt != "" {
		filtered := results[:0]
		for _, res := range results {
			if res.LoopType == lt {
				filtered = append(filtered, res)
			}
		}
		results = filtered
	}
	if results == nil {
		results = []*St.ClassificationResult{}
	}

	writeJSON(w, http.StatusOK, results)
}

func (s *Server) ResultHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	res, err := s.Results.Result(r.Context(), id)
	switch {
	case errors.Is(err, Sp.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case err != nil:
		slog.Error("Could not read result", slog.String("sequence", id), slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, err)
	default:
		writeJSON(w, http.StatusOK, res)
	}
}

// RespWriter is a wrapper with StatsMiddleware, used for Prometheus
type RespWriter struct {
	http.ResponseWriter
	Status int
}

// WriteHeader is a helper for StatsMiddleware, used for Prometheus
func (w *RespWriter) WriteHeader(status int) {
	w.Status = status
	w.ResponseWriter.WriteHeader(status)
}

// Write is a helper for StatsMiddleware, used for Prometheus
func (w *RespWriter) Write(b []byte) (int, error) {
	return w.ResponseWriter.Write(b)
}

func (s *Server) StatsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wrapped := &RespWriter{
			ResponseWriter: w,
			Status:         200,
		}
		next.ServeHTTP(wrapped, r)

		s.Stats.RecWWW(strconv.Itoa(wrapped.Status), r.Method)
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Could not encode response", slog.Any("error", err))
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

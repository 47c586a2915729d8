// ABOUTME: HTTP sync server for sharing the outreach state between devices
// ABOUTME: Serves the raw state blob plus filtered contact lists and CSV import previews
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/harperreed/outreach/importer"
	"github.com/harperreed/outreach/models"
	"github.com/harperreed/outreach/store"
	"github.com/harperreed/outreach/views"
	"github.com/rs/zerolog"
)

// MaxBodyBytes bounds uploaded state blobs and CSV files.
const MaxBodyBytes = 10 << 20

// StateKey is the key clients use for the shared state blob.
const StateKey = "state"

type Server struct {
	kv       KVStore
	log      zerolog.Logger
	importer *importer.Importer
	origins  []string
}

func NewServer(kv KVStore, log zerolog.Logger, allowedOrigins []string) *Server {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return &Server{
		kv:       kv,
		log:      log,
		importer: importer.New(),
		origins:  allowedOrigins,
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/kv", func(r chi.Router) {
		r.Get("/{key}", s.handleGetKey)
		r.Put("/{key}", s.handlePutKey)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/contacts", s.handleContacts)
		r.Post("/import/preview", s.handleImportPreview)
	})

	return r
}

// ListenAndServe runs the server until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("sync server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetKey(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	value, err := s.kv.Get(r.Context(), key)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "key not found")
		return
	}
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("kv read failed")
		writeError(w, http.StatusInternalServerError, "failed to read key")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(value)
}

func (s *Server) handlePutKey(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	if err := s.kv.Put(r.Context(), key, body); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("kv write failed")
		writeError(w, http.StatusInternalServerError, "failed to write key")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ContactsResponse is the body of GET /api/contacts.
type ContactsResponse struct {
	Contacts []models.Contact `json:"contacts"`
	Total    int              `json:"total"`
}

func (s *Server) handleContacts(w http.ResponseWriter, r *http.Request) {
	state, ok := s.loadState(w, r)
	if !ok {
		return
	}

	filter, sortState := parseListQuery(r)
	contacts := views.View(state.Contacts, filter, sortState)
	if contacts == nil {
		contacts = []models.Contact{}
	}

	writeJSON(w, http.StatusOK, ContactsResponse{Contacts: contacts, Total: len(state.Contacts)})
}

func (s *Server) handleImportPreview(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	state, ok := s.loadState(w, r)
	if !ok {
		return
	}

	// The only failure is importer.ErrTooFewLines.
	preview, err := s.importer.Preview(string(body), state.Contacts)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if preview.Candidates == nil {
		preview.Candidates = []models.Contact{}
	}
	writeJSON(w, http.StatusOK, preview)
}

// loadState reads the shared state. A missing key is an empty state.
func (s *Server) loadState(w http.ResponseWriter, r *http.Request) (models.State, bool) {
	data, err := s.kv.Get(r.Context(), StateKey)
	if errors.Is(err, store.ErrNotFound) {
		return models.State{}, true
	}
	if err != nil {
		s.log.Error().Err(err).Msg("state read failed")
		writeError(w, http.StatusInternalServerError, "failed to read state")
		return models.State{}, false
	}

	state, err := store.DecodeState(data, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("stored state is not decodable")
		writeError(w, http.StatusInternalServerError, "stored state is corrupt")
		return models.State{}, false
	}
	return state, true
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("body exceeds %d bytes", MaxBodyBytes))
			return nil, false
		}
		writeError(w, http.StatusBadRequest, "failed to read body")
		return nil, false
	}
	return body, true
}

func parseListQuery(r *http.Request) (views.Filter, views.SortState) {
	q := r.URL.Query()
	filter := views.Filter{
		Search:   q.Get("q"),
		Status:   q.Get("status"),
		Category: q.Get("category"),
		Segment:  q.Get("segment"),
		Project:  q.Get("project"),
		Advanced: views.Advanced{
			Statuses:   splitList(q.Get("statuses")),
			Categories: splitList(q.Get("categories")),
			Segments:   splitList(q.Get("segments")),
			TagIDs:     splitList(q.Get("tags")),
		},
	}

	sortState := views.SortState{}
	if column := q.Get("sort"); views.IsSortable(column) {
		sortState.Column = column
		sortState.Direction = views.Asc
		if strings.EqualFold(q.Get("dir"), views.Desc) {
			sortState.Direction = views.Desc
		}
	}
	return filter, sortState
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

package notes

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"example.com/notes-web/internal/apperr"
	"example.com/notes-web/internal/stringsx"
)

// Store is an abstraction over the notes service.
// It allows unit-testing handlers without a real database.
type Store interface {
	Create(ctx context.Context, content string) (Note, error)
	Update(ctx context.Context, id int64, content string) (Note, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]Note, error)
	Count(ctx context.Context) (int64, error)
}

type Handlers struct {
	store Store
	log   *zap.Logger
}

func NewHandlers(store Store, log *zap.Logger) *Handlers {
	return &Handlers{store: store, log: log}
}

func (h *Handlers) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(accessLog(h.log))
	r.Use(middleware.Recoverer)

	r.Get("/", h.index)
	r.Get("/healthz", h.healthz)

	r.Post("/notes", h.create)
	r.Post("/notes/{id}/update", h.update)
	r.Post("/notes/{id}/delete", h.delete)

	return r
}

// healthz is a liveness probe: it reports the process is up and must not
// touch the database.
func (h *Handlers) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handlers) index(w http.ResponseWriter, r *http.Request) {
	kind, msg := popFlash(w, r)
	data := indexData{Flash: msg, FlashKind: kind}

	items, err := h.store.List(r.Context())
	if err != nil {
		h.log.Error("list notes", zap.Error(err))
		data.Flash, data.FlashKind = "Error loading notes", flashError
		h.render(w, http.StatusInternalServerError, data)
		return
	}
	total, err := h.store.Count(r.Context())
	if err != nil {
		h.log.Error("count notes", zap.Error(err))
		data.Flash, data.FlashKind = "Error loading notes", flashError
		h.render(w, http.StatusInternalServerError, data)
		return
	}

	data.Notes = items
	data.Total = total
	h.render(w, http.StatusOK, data)
}

func (h *Handlers) create(w http.ResponseWriter, r *http.Request) {
	content := r.PostFormValue("content")

	n, err := h.store.Create(r.Context(), content)
	switch {
	case errors.Is(err, apperr.ErrEmptyContent):
		http.Error(w, "note content cannot be empty", http.StatusBadRequest)
		return
	case errors.Is(err, apperr.ErrContentTooLong):
		http.Error(w, "note content too long", http.StatusBadRequest)
		return
	case err != nil:
		h.log.Error("create note", zap.String("content", stringsx.Clip(content, 50)), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.log.Info("note created", zap.Int64("id", n.ID))
	setFlash(w, flashSuccess, "Note added")
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handlers) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	content := r.PostFormValue("content")

	n, err := h.store.Update(r.Context(), id, content)
	switch {
	case errors.Is(err, apperr.ErrEmptyContent):
		http.Error(w, "note content cannot be empty", http.StatusBadRequest)
		return
	case errors.Is(err, apperr.ErrContentTooLong):
		http.Error(w, "note content too long", http.StatusBadRequest)
		return
	case errors.Is(err, apperr.ErrNotFound):
		http.Error(w, "note not found", http.StatusNotFound)
		return
	case err != nil:
		h.log.Error("update note", zap.Int64("id", id), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.log.Info("note updated", zap.Int64("id", n.ID))
	setFlash(w, flashSuccess, "Note updated")
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handlers) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	err = h.store.Delete(r.Context(), id)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		http.Error(w, "note not found", http.StatusNotFound)
		return
	case err != nil:
		h.log.Error("delete note", zap.Int64("id", id), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.log.Info("note deleted", zap.Int64("id", id))
	setFlash(w, flashSuccess, "Note deleted")
	http.Redirect(w, r, "/", http.StatusFound)
}

// render buffers the template so a late execution error cannot produce a
// half-written page with a 200 status.
func (h *Handlers) render(w http.ResponseWriter, status int, data indexData) {
	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, data); err != nil {
		h.log.Error("render index", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func accessLog(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("took", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hosfind_admin/internal/app"
	"hosfind_admin/internal/domain"
	"hosfind_admin/internal/forms"
)

const maxBody = 1 << 20

// Notices is the toast feed shown next to the tables.
type Notices interface {
	Active() []domain.Notice
	Dismiss(id string) bool
}

type Handlers struct {
	Console *app.Console
	Session *app.Session
	Notices Notices
	Audit   domain.AuditLog // nil when no database is configured
}

type problem struct {
	Type   string            `json:"type"`
	Title  string            `json:"title"`
	Status int               `json:"status"`
	Detail string            `json:"detail,omitempty"`
	Errors forms.FieldErrors `json:"errors,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1", func(r chi.Router) {
		r.Get("/console", h.getConsole)
		r.Post("/console/refresh", h.refresh)

		r.Get("/notifications", h.listNotices)
		r.Delete("/notifications/{id}", h.dismissNotice)

		r.Get("/audit", h.listAudit)

		r.Post("/session", h.login)
		r.Delete("/session", h.logout)

		r.Post("/deletions/{token}/confirm", h.confirmDelete)
		r.Delete("/deletions/{token}", h.cancelDelete)

		r.Get("/{kind}/new", h.newForm)
		r.Post("/{kind}", h.create)
		r.Get("/{kind}/{id}/edit", h.editForm)
		r.Put("/{kind}/{id}", h.update)
		r.Post("/{kind}/{id}/delete", h.requestDelete)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeProblem(w http.ResponseWriter, status int, title, detail string, fields forms.FieldErrors) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	p := problem{Type: "about:blank", Title: title, Status: status, Detail: detail, Errors: fields}
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps console errors onto problem responses. Form-facing
// errors carry the per-field messages in the errors extension.
func writeError(w http.ResponseWriter, err error) {
	var ve *forms.ValidationError
	var ae *domain.APIError
	switch {
	case errors.As(err, &ve):
		writeProblem(w, http.StatusUnprocessableEntity, "Validation Failed", err.Error(), ve.Fields)
	case errors.As(err, &ae):
		status := ae.Status
		if status < 400 {
			// 2xx envelope with success=false
			status = http.StatusBadGateway
		}
		writeProblem(w, status, http.StatusText(status), ae.Message, forms.ErrorsFrom(ae))
	case errors.Is(err, domain.ErrDeleteInProgress):
		writeProblem(w, http.StatusConflict, "Conflict", err.Error(), nil)
	case errors.Is(err, domain.ErrUnknownKind),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrNoConfirmation):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error(), nil)
	case errors.Is(err, app.ErrMissingCredentials):
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error(), nil)
	default:
		log.Error().Err(err).Msg("console request failed")
		writeProblem(w, http.StatusBadGateway, "Bad Gateway", err.Error(), forms.ErrorsFrom(err))
	}
}

func kindParam(w http.ResponseWriter, r *http.Request) (domain.Kind, bool) {
	k, err := domain.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, err)
		return "", false
	}
	return k, true
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "request body could not be read", nil)
		return nil, false
	}
	return b, true
}

func decodeForm(w http.ResponseWriter, r *http.Request, kind domain.Kind) (forms.Form, bool) {
	body, ok := readBody(w, r)
	if !ok {
		return nil, false
	}
	f, err := forms.Decode(kind, body)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error(), nil)
		return nil, false
	}
	return f, true
}

func (h *Handlers) getConsole(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Console.Snapshot())
}

// refresh always answers with the resulting state; a failed fetch shows up
// in its error field rather than as an error status.
func (h *Handlers) refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.Console.Refresh(r.Context()); err != nil {
		log.Warn().Err(err).Msg("console refresh failed")
	}
	writeJSON(w, http.StatusOK, h.Console.Snapshot())
}

func (h *Handlers) newForm(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(w, r)
	if !ok {
		return
	}
	f, err := forms.New(kind)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app.Edit{Kind: kind, Form: f})
}

func (h *Handlers) create(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(w, r)
	if !ok {
		return
	}
	f, ok := decodeForm(w, r, kind)
	if !ok {
		return
	}
	out, err := h.Console.Create(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"data": out})
}

func (h *Handlers) editForm(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(w, r)
	if !ok {
		return
	}
	e, err := h.Console.EditForm(kind, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *Handlers) update(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(w, r)
	if !ok {
		return
	}
	f, ok := decodeForm(w, r, kind)
	if !ok {
		return
	}
	out, err := h.Console.Update(r.Context(), app.Edit{Kind: kind, ID: chi.URLParam(r, "id"), Form: f})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": out})
}

func (h *Handlers) requestDelete(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(w, r)
	if !ok {
		return
	}
	p, err := h.Console.RequestDelete(kind, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handlers) confirmDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Console.ConfirmDelete(r.Context(), chi.URLParam(r, "token")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) cancelDelete(w http.ResponseWriter, r *http.Request) {
	if !h.Console.CancelDelete(chi.URLParam(r, "token")) {
		writeError(w, domain.ErrNoConfirmation)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) listNotices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"notifications": h.Notices.Active()})
}

func (h *Handlers) dismissNotice(w http.ResponseWriter, r *http.Request) {
	if !h.Notices.Dismiss(chi.URLParam(r, "id")) {
		writeProblem(w, http.StatusNotFound, "Not Found", "notification not found", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) listAudit(w http.ResponseWriter, r *http.Request) {
	if h.Audit == nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "audit trail is not configured", nil)
		return
	}
	limit := 50
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200", nil)
			return
		}
		limit = l
	}
	out, err := h.Audit.Recent(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("read audit trail failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "audit trail unavailable", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	var c credentials
	if err := json.Unmarshal(body, &c); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid credentials payload", nil)
		return
	}
	if err := h.Session.Login(r.Context(), c.Email, c.Password); err != nil {
		writeError(w, err)
		return
	}
	// a new token may unlock collections the last fetch could not read
	if err := h.Console.Refresh(r.Context()); err != nil {
		log.Warn().Err(err).Msg("refresh after login failed")
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Session.Logout(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/artpar/japi"
	"github.com/artpar/japi/domain/note"
	"github.com/artpar/japi/httperr"
	"github.com/artpar/japi/ports"
)

// home returns a raw string; the normalizer synthesizes the resource.
func (h *Handler) home(*http.Request) any {
	return "japid is up"
}

// teapot returns a bare status code.
func (h *Handler) teapot(*http.Request) any {
	return http.StatusTeapot
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(r *http.Request) any {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return httperr.New(http.StatusBadRequest, "request body must be JSON")
	}

	if req.Email != h.adminEmail || !h.hasher.Compare(h.adminHash, req.Password) {
		return httperr.Unauthorized
	}

	token, expiresAt, err := h.tokens.GenerateToken(req.Email, req.Email)
	if err != nil {
		h.logger.Error().Err(err).Msg("token generation failed")
		return httperr.InternalServerError
	}

	return map[string]any{
		"token":      token,
		"expires_at": expiresAt.UTC().Format(time.RFC3339),
	}
}

func (h *Handler) listNotes(r *http.Request) any {
	notes, err := h.notes.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("list notes failed")
		return httperr.InternalServerError
	}

	resources := make([]map[string]any, len(notes))
	for i, n := range notes {
		resources[i] = japi.ToResource(n)
	}

	return japi.With(http.StatusOK, map[string]any{
		"data": resources,
		"meta": map[string]any{"count": len(resources)},
	})
}

func (h *Handler) getNote(r *http.Request) any {
	n, err := h.notes.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, ports.ErrNoteNotFound) {
		return httperr.NotFound
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("get note failed")
		return httperr.InternalServerError
	}
	// Entities with the attributes-mapping capability can be returned
	// directly; classification converts them to a resource object.
	return n
}

// publicNote is the redaction view: attribute keys without values.
func (h *Handler) publicNote(r *http.Request) any {
	n, err := h.notes.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, ports.ErrNoteNotFound) {
		return httperr.NotFound
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("get note failed")
		return httperr.InternalServerError
	}

	revealID := r.URL.Query().Get("reveal_id") == "true"
	return japi.ToLimitedResource(n, revealID)
}

type createNoteRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (h *Handler) createNote(r *http.Request) any {
	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return httperr.New(http.StatusBadRequest, "request body must be JSON")
	}
	if req.Title == "" {
		return httperr.New(http.StatusUnprocessableEntity, "title is required")
	}

	n := note.Note{
		ID:        h.ids.New(),
		Title:     req.Title,
		Body:      req.Body,
		CreatedAt: h.clock.Now().UTC(),
	}
	if err := h.notes.Create(r.Context(), n); err != nil {
		h.logger.Error().Err(err).Msg("create note failed")
		return httperr.InternalServerError
	}

	return japi.With(http.StatusCreated, map[string]any{
		"data":  japi.ToResource(n),
		"links": map[string]any{"self": "/notes/" + n.ID},
	})
}

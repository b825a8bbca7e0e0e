package web

import (
	"net/http"
	"strings"

	"github.com/artpar/japi/httperr"
)

// requireToken guards a route group with bearer-token auth. Validation
// errors are routed through the normalizer, so a rejected token produces
// the same envelope shape as any handler-returned error.
func (h *Handler) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			h.wrapper.RespondError(w, r, httperr.Unauthorized)
			return
		}

		if _, err := h.tokens.ValidateToken(token); err != nil {
			h.wrapper.RespondError(w, r, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}

package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/contactbook/internal/common"
)

// Authenticate resolves the bearer token from the Authorization header into
// a user and stores it in the request context. The token is opaque and sent
// raw, without a scheme prefix. Requests that fail to resolve are rejected
// with 401 before any handler runs.
func (h *Handler) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(common.AuthorizationHeaderName)

		user, err := h.users.Resolve(r.Context(), token)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

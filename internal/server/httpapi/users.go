package httpapi

import (
	"encoding/json"
	"net/http"
)

func decodeJSON(r *http.Request, dst any) bool {
	return json.NewDecoder(r.Body).Decode(dst) == nil
}

// Register handles POST /api/users.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeJSON(r, &req) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, err)
		return
	}

	user, err := h.users.Register(r.Context(), req.Username, req.Password, req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.logger.Info(r.Context(), "user registered", "username", user.Username)
	writeData(w, http.StatusOK, toUserResponse(user))
}

// Login handles POST /api/users/login. The response carries the fresh
// session token; subsequent requests send it raw in the Authorization
// header.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(r, &req) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, err)
		return
	}

	user, token, err := h.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := toUserResponse(user)
	resp.Token = token
	writeData(w, http.StatusOK, resp)
}

// CurrentUser handles GET /api/users/current.
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	writeData(w, http.StatusOK, toUserResponse(user))
}

// UpdateProfile handles PATCH /api/users/current.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req UpdateUserRequest
	if !decodeJSON(r, &req) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, err)
		return
	}

	updated, err := h.users.UpdateProfile(r.Context(), user, req.Name, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, toUserResponse(updated))
}

// Logout handles DELETE /api/users/current. The stored token is cleared and
// stops resolving immediately.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.users.Logout(r.Context(), user); err != nil {
		writeServiceError(w, err)
		return
	}

	h.logger.Info(r.Context(), "user logged out", "username", user.Username)
	writeData(w, http.StatusOK, true)
}

package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/contactbook/internal/server/repositories/contacts"
)

// pathID parses a positive integer path parameter. Garbage in the path is a
// client error, not an internal one.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// CreateContact handles POST /api/contacts.
func (h *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req ContactRequest
	if !decodeJSON(r, &req) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, err)
		return
	}

	contact, err := h.contacts.Create(r.Context(), user, req.fields())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, toContactResponse(contact))
}

// GetContact handles GET /api/contacts/{contactId}.
func (h *Handler) GetContact(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, ok := pathID(r, "contactId")
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	contact, err := h.contacts.Get(r.Context(), user, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, toContactResponse(contact))
}

// UpdateContact handles PUT /api/contacts/{contactId}. The update replaces
// all fields; omitted optional fields become null.
func (h *Handler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, ok := pathID(r, "contactId")
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	var req ContactRequest
	if !decodeJSON(r, &req) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, err)
		return
	}

	contact, err := h.contacts.Update(r.Context(), user, id, req.fields())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, toContactResponse(contact))
}

// DeleteContact handles DELETE /api/contacts/{contactId}.
func (h *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, ok := pathID(r, "contactId")
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	if err := h.contacts.Delete(r.Context(), user, id); err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, true)
}

// SearchContacts handles GET /api/contacts. Filters arrive as optional
// query parameters; absent ones do not constrain the result.
func (h *Handler) SearchContacts(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	filter := contacts.SearchFilter{}
	q := r.URL.Query()
	if v := q.Get("name"); v != "" {
		filter.Name = &v
	}
	if v := q.Get("email"); v != "" {
		filter.Email = &v
	}
	if v := q.Get("phone"); v != "" {
		filter.Phone = &v
	}

	page, ok := queryInt(q.Get("page"))
	if !ok {
		writeError(w, http.StatusBadRequest, "page must be a positive integer")
		return
	}
	size, ok := queryInt(q.Get("size"))
	if !ok {
		writeError(w, http.StatusBadRequest, "size must be a positive integer")
		return
	}

	items, paging, err := h.contacts.Search(r.Context(), user, filter, page, size)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]*ContactResponse, 0, len(items))
	for _, c := range items {
		resp = append(resp, toContactResponse(c))
	}
	writePage(w, resp, paging)
}

// queryInt parses an optional positive integer query parameter. Empty means
// "use the default" and comes back as zero.
func queryInt(s string) (int, bool) {
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

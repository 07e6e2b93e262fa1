package httpapi

import (
	"net/http"
)

// CreateAddress handles POST /api/contacts/{contactId}/addresses.
func (h *Handler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	contactID, ok := pathID(r, "contactId")
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	var req AddressRequest
	if !decodeJSON(r, &req) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, err)
		return
	}

	address, err := h.addresses.Create(r.Context(), user, contactID, req.fields())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, toAddressResponse(address))
}

// GetAddress handles GET /api/contacts/{contactId}/addresses/{addressId}.
func (h *Handler) GetAddress(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	contactID, ok := pathID(r, "contactId")
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	addressID, ok := pathID(r, "addressId")
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	address, err := h.addresses.Get(r.Context(), user, contactID, addressID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, toAddressResponse(address))
}

// UpdateAddress handles PUT /api/contacts/{contactId}/addresses/{addressId}.
func (h *Handler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	contactID, ok := pathID(r, "contactId")
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	addressID, ok := pathID(r, "addressId")
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	var req AddressRequest
	if !decodeJSON(r, &req) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, err)
		return
	}

	address, err := h.addresses.Update(r.Context(), user, contactID, addressID, req.fields())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, toAddressResponse(address))
}

// DeleteAddress handles DELETE /api/contacts/{contactId}/addresses/{addressId}.
func (h *Handler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	contactID, ok := pathID(r, "contactId")
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	addressID, ok := pathID(r, "addressId")
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	if err := h.addresses.Delete(r.Context(), user, contactID, addressID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, true)
}

// ListAddresses handles GET /api/contacts/{contactId}/addresses.
func (h *Handler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	contactID, ok := pathID(r, "contactId")
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	items, err := h.addresses.List(r.Context(), user, contactID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]*AddressResponse, 0, len(items))
	for _, a := range items {
		resp = append(resp, toAddressResponse(a))
	}
	writeData(w, http.StatusOK, resp)
}

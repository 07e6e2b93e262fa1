package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/server/services"
)

// WebResponse is the envelope every endpoint answers with. Exactly one of
// Data and Errors is set; Paging accompanies search results only.
type WebResponse struct {
	Data   any         `json:"data,omitempty"`
	Errors string      `json:"errors,omitempty"`
	Paging *PagingInfo `json:"paging,omitempty"`
}

// PagingInfo mirrors services.Paging on the wire.
type PagingInfo struct {
	CurrentPage int `json:"current_page"`
	Size        int `json:"size"`
	TotalPage   int `json:"total_page"`
}

func writeJSON(w http.ResponseWriter, status int, body *WebResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, &WebResponse{Data: data})
}

func writePage(w http.ResponseWriter, data any, paging *services.Paging) {
	writeJSON(w, http.StatusOK, &WebResponse{
		Data: data,
		Paging: &PagingInfo{
			CurrentPage: paging.CurrentPage,
			Size:        paging.Size,
			TotalPage:   paging.TotalPage,
		},
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, &WebResponse{Errors: msg})
}

// writeServiceError maps a service error to a status code and message.
// Internal details never leak to the client.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorUnauthorized):
		writeError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, common.ErrorAlreadyExists):
		writeError(w, http.StatusConflict, "Already exists")
	default:
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

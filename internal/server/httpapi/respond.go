package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/lifeboard/internal/common"
	"github.com/dmitrijs2005/lifeboard/internal/logging"
	"github.com/go-chi/chi/v5/middleware"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeList never encodes a nil slice as null.
func writeList[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, items)
}

// writeFound writes the record, or a bare 200 when it does not exist.
func writeFound[T any](w http.ResponseWriter, r *http.Request, log logging.Logger, item *T, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		w.WriteHeader(http.StatusOK)
	case err != nil:
		writeInternal(w, r, log, err)
	default:
		writeJSON(w, http.StatusOK, item)
	}
}

func writeValidation(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: err.Error()}
	var ve *validationError
	if errors.As(err, &ve) {
		resp.Fields = ve.fields
	}
	writeJSON(w, http.StatusBadRequest, resp)
}

func writeInternal(w http.ResponseWriter, r *http.Request, log logging.Logger, err error) {
	log.Error(r.Context(), "request failed",
		"error", err,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
	)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
}

// writeServiceError maps service errors onto status codes. noun names the
// resource in the plain-text 404 body, e.g. "Todo was not found".
func writeServiceError(w http.ResponseWriter, r *http.Request, log logging.Logger, noun string, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		http.Error(w, noun+" was not found", http.StatusNotFound)
	case errors.Is(err, common.ErrorValidation):
		writeValidation(w, err)
	default:
		writeInternal(w, r, log, err)
	}
}

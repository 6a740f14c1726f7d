package handler

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/cs-Nikhil/msdproject/internal/booking"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeMessage emits the {"message": ...} envelope used for every error
// and confirmation response.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeDomainError maps the booking taxonomy onto HTTP statuses.
// Unclassified errors surface as 500 with the underlying text.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, booking.ErrNotFound):
		writeMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, booking.ErrNotAuthorized):
		writeMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, booking.ErrInvalidState), errors.Is(err, booking.ErrInvalidInput):
		writeMessage(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error("internal error", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, err.Error())
	}
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

func readJSON(body io.Reader, dest any) error {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

// writeRejection reports a refused intent back to the caller only; nothing
// is broadcast and the room is untouched.
func writeRejection(w http.ResponseWriter, err error) {
	status := http.StatusConflict
	switch {
	case errors.Is(err, ErrRoomNotFound), errors.Is(err, ErrPlayerNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrInvalidWord):
		status = http.StatusBadRequest
	case errors.Is(err, ErrNotHost):
		status = http.StatusForbidden
	}
	writeJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  errorCode(err),
	})
}

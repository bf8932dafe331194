package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"trip-planner-service/internal/domain"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// decodeBody parses a single JSON object into v, rejecting unknown fields and
// trailing content.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return errors.New("invalid json body")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain only one JSON object")
	}
	return nil
}

// writeEngineError maps the planner's typed errors onto HTTP statuses.
// Validation and illegal mutations are the caller's fault; anything else is
// logged and reported as a server error.
func writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	var validation *domain.ValidationError
	var invalidDate *domain.InvalidDateError
	var insufficient *domain.InsufficientDaysError
	var invalidOp *domain.InvalidOperationError

	switch {
	case errors.As(err, &validation), errors.As(err, &invalidDate):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.As(err, &insufficient), errors.As(err, &invalidOp):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Printf("engine operation failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

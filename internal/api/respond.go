package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/Simplici0/costsheet/internal/costsheet"
	"github.com/Simplici0/costsheet/internal/store"
)

const maxBodyBytes = 1 << 20

// Error codes.
const (
	CodeInvalidBody     = "INVALID_BODY"
	CodeValidationError = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeInternalError   = "INTERNAL_ERROR"
)

type fieldDetail struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type errorResponse struct {
	Error   string        `json:"error"`
	Code    string        `json:"code"`
	Details []fieldDetail `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write json response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// fail maps err to a response: field errors become 422, missing rows 404, anything else 500.
func fail(w http.ResponseWriter, err error) {
	if fields := costsheet.FieldErrors(err); len(fields) > 0 {
		details := make([]fieldDetail, 0, len(fields))
		for _, f := range fields {
			details = append(details, fieldDetail{Field: f.Field, Reason: f.Reason})
		}
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation failed",
			Code:    CodeValidationError,
			Details: details,
		})
		return
	}
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, CodeNotFound, "not found")
		return
	}

	log.Printf("request failed: %v", err)
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}

package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"restaurant-ordering/internal/model"

	"github.com/rs/zerolog"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// internalErrorMessage is the only message clients see for unexpected failures.
const internalErrorMessage = "Internal server error"

// StatusFor maps a domain error code to its HTTP status.
func StatusFor(code string) int {
	switch code {
	case model.ErrCodeUnauthenticated:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	case model.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case model.ErrCodeMenuItemNotFound, model.ErrCodeOrderNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already sent, so encoding failures cannot be reported.
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes err as an {"error": ...} body. Domain errors keep their
// message; anything else is logged and reported as an internal error.
func WriteError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var de *model.DomainError
	if !errors.As(err, &de) {
		logger.Error().Err(err).Msg("request failed")
		WriteJSON(w, http.StatusInternalServerError, model.ErrorResponse{Error: internalErrorMessage})
		return
	}

	status := StatusFor(de.Code)
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).Msg("request failed")
		WriteJSON(w, status, model.ErrorResponse{Error: internalErrorMessage})
		return
	}

	logger.Debug().Str("code", de.Code).Int("status", status).Str("error", de.Message).Msg("request rejected")
	WriteJSON(w, status, model.ErrorResponse{Error: de.Message})
}

// decodeJSON reads a JSON request body into dst. Unknown fields are ignored.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return model.NewInvalidInput("request body is required")
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return model.NewInvalidInput("request body is too large")
		}
		return model.NewInvalidInput("invalid request body")
	}
	return nil
}

// requestLogger returns the request-scoped logger when one is attached, and
// fallback otherwise.
func requestLogger(r *http.Request, fallback zerolog.Logger) zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return *l
	}
	return fallback
}

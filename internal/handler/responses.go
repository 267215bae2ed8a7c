package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/kestrelgames/emberrealm/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Encode to a pooled buffer first so a marshal failure never produces
	// a half-written body.
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps a service error to an HTTP response
func respondServiceError(w http.ResponseWriter, err error) {
	status, message := mapServiceError(err)
	respondError(w, status, message)
}

// mapServiceError maps domain errors to user-facing HTTP status codes and
// messages.
func mapServiceError(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughFunds
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, ErrMsgInvalidAmount
	case errors.Is(err, domain.ErrSameAccount):
		return http.StatusBadRequest, ErrMsgSameAccount
	case errors.Is(err, domain.ErrUnknownCurrency):
		return http.StatusBadRequest, ErrMsgUnknownCurrency
	case errors.Is(err, domain.ErrUnknownItem):
		return http.StatusBadRequest, ErrMsgItemNotFound
	case errors.Is(err, domain.ErrNotOwned):
		return http.StatusBadRequest, ErrMsgNotOwned
	case errors.Is(err, domain.ErrInsufficientQuantity):
		return http.StatusBadRequest, ErrMsgInsufficientItems
	case errors.Is(err, domain.ErrNoEquipSlot):
		return http.StatusBadRequest, ErrMsgNoEquipSlot
	case errors.Is(err, domain.ErrNotEquipped):
		return http.StatusBadRequest, ErrMsgNotEquipped
	case errors.Is(err, domain.ErrItemEquipped):
		return http.StatusBadRequest, ErrMsgItemEquipped
	case errors.Is(err, domain.ErrPlayerNotFound):
		return http.StatusNotFound, ErrMsgPlayerNotFound
	case errors.Is(err, domain.ErrCharacterNotFound):
		return http.StatusNotFound, ErrMsgCharacterNotFound
	case errors.Is(err, domain.ErrUnknownBoss):
		return http.StatusNotFound, ErrMsgBossNotFound
	case errors.Is(err, domain.ErrInvalidCombatant):
		return http.StatusBadRequest, ErrMsgInvalidCombatant
	case errors.Is(err, domain.ErrPersistenceUnavailable):
		return http.StatusServiceUnavailable, ErrMsgUnavailable
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kestrelgames/emberrealm/internal/character"
	"github.com/kestrelgames/emberrealm/internal/logger"
)

// RegisterRequest represents a player registration request
type RegisterRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
	Username string `json:"username" validate:"required,min=2,max=32"`
}

// AwardExperienceRequest represents an experience grant request
type AwardExperienceRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
	Amount   int    `json:"amount" validate:"required,gt=0"`
}

// HandleRegister registers a new player with a fresh character
func HandleRegister(characterService character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode register request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}
		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
			return
		}

		c, err := characterService.Register(r.Context(), req.PlayerID, req.Username)
		if err != nil {
			log.Error("Failed to register player", "player_id", req.PlayerID, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusCreated, DataResponse{Message: MsgRegisteredSuccess, Data: c})
	}
}

// HandleGetCharacter returns a player's character
func HandleGetCharacter(characterService character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		playerID := r.URL.Query().Get("player_id")
		if playerID == "" {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, "player_id"))
			return
		}

		c, err := characterService.Get(r.Context(), playerID)
		if err != nil {
			log.Warn("Failed to get character", "player_id", playerID, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, c)
	}
}

// HandleGetEffectiveStats returns a player's combat stats with equipment
// bonuses folded in
func HandleGetEffectiveStats(characterService character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		playerID := r.URL.Query().Get("player_id")
		if playerID == "" {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, "player_id"))
			return
		}

		stats, err := characterService.EffectiveStats(r.Context(), playerID)
		if err != nil {
			log.Warn("Failed to get effective stats", "player_id", playerID, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, stats)
	}
}

// HandleAwardExperience grants experience to a player's character
func HandleAwardExperience(characterService character.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req AwardExperienceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode award experience request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}
		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
			return
		}

		c, err := characterService.AwardExperience(r.Context(), req.PlayerID, req.Amount)
		if err != nil {
			log.Warn("Failed to award experience", "player_id", req.PlayerID, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, c)
	}
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/kestrelgames/emberrealm/internal/battle"
	"github.com/kestrelgames/emberrealm/internal/logger"
)

// StartPvPRequest represents a player-versus-player battle request
type StartPvPRequest struct {
	ChallengerID string `json:"challenger_id" validate:"required"`
	OpponentID   string `json:"opponent_id" validate:"required"`
}

// StartBossRequest represents a boss battle request
type StartBossRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
	BossCode string `json:"boss_code" validate:"required"`
}

// HandleStartPvP starts a battle between two players
func HandleStartPvP(battleService battle.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req StartPvPRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode pvp request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}
		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
			return
		}

		result, err := battleService.StartPvP(r.Context(), req.ChallengerID, req.OpponentID)
		if err != nil {
			log.Warn("PvP battle failed", "challenger_id", req.ChallengerID, "opponent_id", req.OpponentID, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// HandleStartBoss starts a battle between a player and a boss
func HandleStartBoss(battleService battle.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req StartBossRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode boss request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}
		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
			return
		}

		result, err := battleService.StartBoss(r.Context(), req.PlayerID, req.BossCode)
		if err != nil {
			log.Warn("Boss battle failed", "player_id", req.PlayerID, "boss_code", req.BossCode, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kestrelgames/emberrealm/internal/domain"
	"github.com/kestrelgames/emberrealm/internal/ledger"
	"github.com/kestrelgames/emberrealm/internal/logger"
)

// MutateBalanceRequest represents a credit or debit request
type MutateBalanceRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
	Currency string `json:"currency" validate:"required,currency"`
	Amount   int    `json:"amount" validate:"required,gt=0"`
}

// TransferRequest represents a transfer between two players
type TransferRequest struct {
	FromID   string `json:"from_id" validate:"required"`
	ToID     string `json:"to_id" validate:"required"`
	Currency string `json:"currency" validate:"required,currency"`
	Amount   int    `json:"amount" validate:"required,gt=0"`
}

// BalanceResponse represents the result of a balance mutation
type BalanceResponse struct {
	PlayerID string `json:"player_id"`
	Currency string `json:"currency"`
	Balance  int    `json:"balance"`
}

// HandleGetBalances returns the three balances for a player
func HandleGetBalances(ledgerService ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		playerID := r.URL.Query().Get("player_id")
		if playerID == "" {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, "player_id"))
			return
		}

		balances, err := ledgerService.Balances(r.Context(), playerID)
		if err != nil {
			log.Error("Failed to get balances", "player_id", playerID, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, balances)
	}
}

// HandleCredit credits a player's balance
func HandleCredit(ledgerService ledger.Service) http.HandlerFunc {
	return handleBalanceMutation(ledgerService.Credit)
}

// HandleDebit debits a player's balance
func HandleDebit(ledgerService ledger.Service) http.HandlerFunc {
	return handleBalanceMutation(ledgerService.Debit)
}

// handleBalanceMutation shares the decode/validate/respond path between
// credit and debit.
func handleBalanceMutation(apply func(ctx context.Context, playerID string, kind domain.CurrencyKind, amount int) (int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req MutateBalanceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode balance request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}
		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
			return
		}

		kind, err := domain.ParseCurrencyKind(req.Currency)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		balance, err := apply(r.Context(), req.PlayerID, kind, req.Amount)
		if err != nil {
			log.Warn("Balance mutation failed", "player_id", req.PlayerID, "currency", req.Currency, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, BalanceResponse{
			PlayerID: req.PlayerID,
			Currency: req.Currency,
			Balance:  balance,
		})
	}
}

// HandleTransfer moves funds between two players
func HandleTransfer(ledgerService ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req TransferRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode transfer request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}
		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
			return
		}

		kind, err := domain.ParseCurrencyKind(req.Currency)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		if err := ledgerService.Transfer(r.Context(), req.FromID, req.ToID, kind, req.Amount); err != nil {
			log.Warn("Transfer failed", "from", req.FromID, "to", req.ToID, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgTransferSuccess})
	}
}

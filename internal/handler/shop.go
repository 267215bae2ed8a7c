package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kestrelgames/emberrealm/internal/item"
	"github.com/kestrelgames/emberrealm/internal/logger"
	"github.com/kestrelgames/emberrealm/internal/shop"
)

// BuyRequest represents a shop purchase request
type BuyRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
	ItemCode string `json:"item_code" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// HandleGetListings returns the purchasable catalog
func HandleGetListings(shopService shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, DataResponse{Data: shopService.Listings(r.Context())})
	}
}

// HandleGetItem returns a single catalog item definition
func HandleGetItem(catalog item.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("item_code")
		if code == "" {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, "item_code"))
			return
		}

		it, err := catalog.Get(code)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, it)
	}
}

// HandleBuyItem purchases an item at its catalog price
func HandleBuyItem(shopService shop.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req BuyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode buy request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}
		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
			return
		}

		receipt, err := shopService.Buy(r.Context(), req.PlayerID, req.ItemCode, req.Quantity)
		if err != nil {
			log.Warn("Purchase failed", "player_id", req.PlayerID, "item", req.ItemCode, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Message: MsgPurchaseSuccess, Data: receipt})
	}
}

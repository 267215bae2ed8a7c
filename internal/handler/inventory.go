package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kestrelgames/emberrealm/internal/inventory"
	"github.com/kestrelgames/emberrealm/internal/logger"
)

// ItemQuantityRequest represents an add or remove item request
type ItemQuantityRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
	ItemCode string `json:"item_code" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// EquipRequest represents an equip or unequip request
type EquipRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
	ItemCode string `json:"item_code" validate:"required"`
}

// HandleGetInventory returns all stacks owned by a player
func HandleGetInventory(inventoryService inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		playerID := r.URL.Query().Get("player_id")
		if playerID == "" {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, "player_id"))
			return
		}

		inv, err := inventoryService.ListInventory(r.Context(), playerID)
		if err != nil {
			log.Error("Failed to get inventory", "player_id", playerID, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, inv)
	}
}

// HandleGetEquipped returns only the equipped stacks for a player
func HandleGetEquipped(inventoryService inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		playerID := r.URL.Query().Get("player_id")
		if playerID == "" {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, "player_id"))
			return
		}

		equipped, err := inventoryService.EquippedItems(r.Context(), playerID)
		if err != nil {
			log.Error("Failed to get equipped items", "player_id", playerID, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: equipped})
	}
}

// HandleAddItem adds items to a player's inventory
func HandleAddItem(inventoryService inventory.Service) http.HandlerFunc {
	return handleItemQuantity(inventoryService.AddItem, MsgItemAddedSuccess)
}

// HandleRemoveItem removes items from a player's inventory
func HandleRemoveItem(inventoryService inventory.Service) http.HandlerFunc {
	return handleItemQuantity(inventoryService.RemoveItem, MsgItemRemovedSuccess)
}

func handleItemQuantity(apply func(ctx context.Context, playerID, itemCode string, quantity int) error, successMsg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ItemQuantityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode item request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}
		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
			return
		}

		if err := apply(r.Context(), req.PlayerID, req.ItemCode, req.Quantity); err != nil {
			log.Warn("Item mutation failed", "player_id", req.PlayerID, "item", req.ItemCode, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: successMsg})
	}
}

// HandleEquip equips an item
func HandleEquip(inventoryService inventory.Service) http.HandlerFunc {
	return handleEquipToggle(inventoryService.Equip, MsgItemEquippedSuccess)
}

// HandleUnequip unequips an item
func HandleUnequip(inventoryService inventory.Service) http.HandlerFunc {
	return handleEquipToggle(inventoryService.Unequip, MsgItemUnequippedSucc)
}

func handleEquipToggle(apply func(ctx context.Context, playerID, itemCode string) error, successMsg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req EquipRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode equip request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}
		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
			return
		}

		if err := apply(r.Context(), req.PlayerID, req.ItemCode); err != nil {
			log.Warn("Equip toggle failed", "player_id", req.PlayerID, "item", req.ItemCode, "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: successMsg})
	}
}

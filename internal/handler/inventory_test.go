package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/kestrelgames/emberrealm/internal/domain"
)

// mockInventoryService mocks the inventory.Service interface
type mockInventoryService struct {
	mock.Mock
}

func (m *mockInventoryService) AddItem(ctx context.Context, playerID, itemCode string, quantity int) error {
	args := m.Called(ctx, playerID, itemCode, quantity)
	return args.Error(0)
}

func (m *mockInventoryService) RemoveItem(ctx context.Context, playerID, itemCode string, quantity int) error {
	args := m.Called(ctx, playerID, itemCode, quantity)
	return args.Error(0)
}

func (m *mockInventoryService) Equip(ctx context.Context, playerID, itemCode string) error {
	args := m.Called(ctx, playerID, itemCode)
	return args.Error(0)
}

func (m *mockInventoryService) Unequip(ctx context.Context, playerID, itemCode string) error {
	args := m.Called(ctx, playerID, itemCode)
	return args.Error(0)
}

func (m *mockInventoryService) EquippedItems(ctx context.Context, playerID string) ([]domain.InventoryStack, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryStack), args.Error(1)
}

func (m *mockInventoryService) ListInventory(ctx context.Context, playerID string) (*domain.Inventory, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inventory), args.Error(1)
}

func TestHandleGetInventory(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockInv := &mockInventoryService{}
		mockInv.On("ListInventory", mock.Anything, "player-1").Return(&domain.Inventory{
			PlayerID: "player-1",
			Stacks: []domain.InventoryStack{
				{ItemCode: "sword_basic", Quantity: 1, Equipped: true},
				{ItemCode: "potion_health", Quantity: 3},
			},
		}, nil)

		req := httptest.NewRequest("GET", "/inventory?player_id=player-1", nil)
		w := httptest.NewRecorder()

		HandleGetInventory(mockInv).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"item_code":"sword_basic"`)
		assert.Contains(t, w.Body.String(), `"equipped":true`)
		mockInv.AssertExpectations(t)
	})

	t.Run("Missing Player ID", func(t *testing.T) {
		mockInv := &mockInventoryService{}

		req := httptest.NewRequest("GET", "/inventory", nil)
		w := httptest.NewRecorder()

		HandleGetInventory(mockInv).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockInv.AssertNotCalled(t, "ListInventory")
	})
}

func TestHandleAddItem(t *testing.T) {
	tests := []struct {
		name           string
		reqBody        interface{}
		setupMock      func(*mockInventoryService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "Success",
			reqBody: ItemQuantityRequest{PlayerID: "player-1", ItemCode: "potion_health", Quantity: 2},
			setupMock: func(m *mockInventoryService) {
				m.On("AddItem", mock.Anything, "player-1", "potion_health", 2).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   MsgItemAddedSuccess,
		},
		{
			name:    "Unknown Item",
			reqBody: ItemQuantityRequest{PlayerID: "player-1", ItemCode: "nonexistent", Quantity: 1},
			setupMock: func(m *mockInventoryService) {
				m.On("AddItem", mock.Anything, "player-1", "nonexistent", 1).Return(domain.ErrUnknownItem)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgItemNotFound,
		},
		{
			name:           "Invalid JSON",
			reqBody:        "invalid json",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name:           "Zero Quantity",
			reqBody:        map[string]interface{}{"player_id": "player-1", "item_code": "potion_health", "quantity": 0},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockInv := &mockInventoryService{}
			if tt.setupMock != nil {
				tt.setupMock(mockInv)
			}

			var body []byte
			if s, ok := tt.reqBody.(string); ok {
				body = []byte(s)
			} else {
				body, _ = json.Marshal(tt.reqBody)
			}

			req := httptest.NewRequest("POST", "/inventory/item/add", bytes.NewBuffer(body))
			w := httptest.NewRecorder()

			HandleAddItem(mockInv).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}
			mockInv.AssertExpectations(t)
		})
	}
}

func TestHandleRemoveItem(t *testing.T) {
	t.Run("Equipped Item Refused", func(t *testing.T) {
		mockInv := &mockInventoryService{}
		mockInv.On("RemoveItem", mock.Anything, "player-1", "sword_basic", 1).
			Return(domain.ErrItemEquipped)

		body, _ := json.Marshal(ItemQuantityRequest{PlayerID: "player-1", ItemCode: "sword_basic", Quantity: 1})
		req := httptest.NewRequest("POST", "/inventory/item/remove", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		HandleRemoveItem(mockInv).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgItemEquipped)
	})

	t.Run("Insufficient Quantity", func(t *testing.T) {
		mockInv := &mockInventoryService{}
		mockInv.On("RemoveItem", mock.Anything, "player-1", "potion_health", 10).
			Return(domain.ErrInsufficientQuantity)

		body, _ := json.Marshal(ItemQuantityRequest{PlayerID: "player-1", ItemCode: "potion_health", Quantity: 10})
		req := httptest.NewRequest("POST", "/inventory/item/remove", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		HandleRemoveItem(mockInv).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInsufficientItems)
	})
}

func TestHandleEquip(t *testing.T) {
	tests := []struct {
		name           string
		serviceErr     error
		expectedStatus int
		expectedBody   string
	}{
		{name: "Success", serviceErr: nil, expectedStatus: http.StatusOK, expectedBody: MsgItemEquippedSuccess},
		{name: "Not Owned", serviceErr: domain.ErrNotOwned, expectedStatus: http.StatusBadRequest, expectedBody: ErrMsgNotOwned},
		{name: "Not Equippable", serviceErr: domain.ErrNoEquipSlot, expectedStatus: http.StatusBadRequest, expectedBody: ErrMsgNoEquipSlot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockInv := &mockInventoryService{}
			mockInv.On("Equip", mock.Anything, "player-1", "sword_basic").Return(tt.serviceErr)

			body, _ := json.Marshal(EquipRequest{PlayerID: "player-1", ItemCode: "sword_basic"})
			req := httptest.NewRequest("POST", "/inventory/item/equip", bytes.NewBuffer(body))
			w := httptest.NewRecorder()

			HandleEquip(mockInv).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockInv.AssertExpectations(t)
		})
	}
}

func TestHandleUnequip(t *testing.T) {
	t.Run("Not Equipped", func(t *testing.T) {
		mockInv := &mockInventoryService{}
		mockInv.On("Unequip", mock.Anything, "player-1", "sword_basic").Return(domain.ErrNotEquipped)

		body, _ := json.Marshal(EquipRequest{PlayerID: "player-1", ItemCode: "sword_basic"})
		req := httptest.NewRequest("POST", "/inventory/item/unequip", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		HandleUnequip(mockInv).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgNotEquipped)
	})
}

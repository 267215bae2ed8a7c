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

// mockLedgerService mocks the ledger.Service interface
type mockLedgerService struct {
	mock.Mock
}

func (m *mockLedgerService) Credit(ctx context.Context, playerID string, kind domain.CurrencyKind, amount int) (int, error) {
	args := m.Called(ctx, playerID, kind, amount)
	return args.Int(0), args.Error(1)
}

func (m *mockLedgerService) Debit(ctx context.Context, playerID string, kind domain.CurrencyKind, amount int) (int, error) {
	args := m.Called(ctx, playerID, kind, amount)
	return args.Int(0), args.Error(1)
}

func (m *mockLedgerService) Transfer(ctx context.Context, fromID, toID string, kind domain.CurrencyKind, amount int) error {
	args := m.Called(ctx, fromID, toID, kind, amount)
	return args.Error(0)
}

func (m *mockLedgerService) Balances(ctx context.Context, playerID string) (*domain.Balances, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balances), args.Error(1)
}

func TestHandleGetBalances(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockLedger := &mockLedgerService{}
		mockLedger.On("Balances", mock.Anything, "player-1").
			Return(&domain.Balances{Soft: 150, Hard: 10, Upgrade: 3}, nil)

		req := httptest.NewRequest("GET", "/ledger/balances?player_id=player-1", nil)
		w := httptest.NewRecorder()

		HandleGetBalances(mockLedger).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"soft":150`)
		assert.Contains(t, w.Body.String(), `"hard":10`)
		mockLedger.AssertExpectations(t)
	})

	t.Run("Missing Player ID", func(t *testing.T) {
		mockLedger := &mockLedgerService{}

		req := httptest.NewRequest("GET", "/ledger/balances", nil)
		w := httptest.NewRecorder()

		HandleGetBalances(mockLedger).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockLedger.AssertNotCalled(t, "Balances")
	})

	t.Run("Player Not Found", func(t *testing.T) {
		mockLedger := &mockLedgerService{}
		mockLedger.On("Balances", mock.Anything, "ghost").
			Return(nil, domain.ErrPlayerNotFound)

		req := httptest.NewRequest("GET", "/ledger/balances?player_id=ghost", nil)
		w := httptest.NewRecorder()

		HandleGetBalances(mockLedger).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgPlayerNotFound)
	})
}

func TestHandleCredit(t *testing.T) {
	tests := []struct {
		name           string
		reqBody        interface{}
		setupMock      func(*mockLedgerService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "Success",
			reqBody: MutateBalanceRequest{PlayerID: "player-1", Currency: "soft", Amount: 50},
			setupMock: func(m *mockLedgerService) {
				m.On("Credit", mock.Anything, "player-1", domain.CurrencySoft, 50).Return(150, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"balance":150`,
		},
		{
			name:           "Invalid JSON",
			reqBody:        "invalid json",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name:           "Unknown Currency",
			reqBody:        MutateBalanceRequest{PlayerID: "player-1", Currency: "gems", Amount: 50},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid currency kind",
		},
		{
			name:           "Non Positive Amount",
			reqBody:        map[string]interface{}{"player_id": "player-1", "currency": "soft", "amount": -5},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockLedger := &mockLedgerService{}
			if tt.setupMock != nil {
				tt.setupMock(mockLedger)
			}

			var body []byte
			if s, ok := tt.reqBody.(string); ok {
				body = []byte(s)
			} else {
				body, _ = json.Marshal(tt.reqBody)
			}

			req := httptest.NewRequest("POST", "/ledger/credit", bytes.NewBuffer(body))
			w := httptest.NewRecorder()

			HandleCredit(mockLedger).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}
			mockLedger.AssertExpectations(t)
		})
	}
}

func TestHandleDebit(t *testing.T) {
	t.Run("Insufficient Funds", func(t *testing.T) {
		mockLedger := &mockLedgerService{}
		mockLedger.On("Debit", mock.Anything, "player-1", domain.CurrencyHard, 500).
			Return(0, domain.ErrInsufficientFunds)

		body, _ := json.Marshal(MutateBalanceRequest{PlayerID: "player-1", Currency: "hard", Amount: 500})
		req := httptest.NewRequest("POST", "/ledger/debit", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		HandleDebit(mockLedger).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgNotEnoughFunds)
	})

	t.Run("Success", func(t *testing.T) {
		mockLedger := &mockLedgerService{}
		mockLedger.On("Debit", mock.Anything, "player-1", domain.CurrencySoft, 30).Return(70, nil)

		body, _ := json.Marshal(MutateBalanceRequest{PlayerID: "player-1", Currency: "soft", Amount: 30})
		req := httptest.NewRequest("POST", "/ledger/debit", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		HandleDebit(mockLedger).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"balance":70`)
		mockLedger.AssertExpectations(t)
	})
}

func TestHandleTransfer(t *testing.T) {
	tests := []struct {
		name           string
		reqBody        interface{}
		setupMock      func(*mockLedgerService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "Success",
			reqBody: TransferRequest{FromID: "player-1", ToID: "player-2", Currency: "soft", Amount: 25},
			setupMock: func(m *mockLedgerService) {
				m.On("Transfer", mock.Anything, "player-1", "player-2", domain.CurrencySoft, 25).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   MsgTransferSuccess,
		},
		{
			name:    "Same Account",
			reqBody: TransferRequest{FromID: "player-1", ToID: "player-1", Currency: "soft", Amount: 25},
			setupMock: func(m *mockLedgerService) {
				m.On("Transfer", mock.Anything, "player-1", "player-1", domain.CurrencySoft, 25).
					Return(domain.ErrSameAccount)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgSameAccount,
		},
		{
			name:    "Insufficient Funds",
			reqBody: TransferRequest{FromID: "player-1", ToID: "player-2", Currency: "hard", Amount: 999},
			setupMock: func(m *mockLedgerService) {
				m.On("Transfer", mock.Anything, "player-1", "player-2", domain.CurrencyHard, 999).
					Return(domain.ErrInsufficientFunds)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgNotEnoughFunds,
		},
		{
			name:           "Missing Recipient",
			reqBody:        map[string]interface{}{"from_id": "player-1", "currency": "soft", "amount": 25},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockLedger := &mockLedgerService{}
			if tt.setupMock != nil {
				tt.setupMock(mockLedger)
			}

			body, _ := json.Marshal(tt.reqBody)
			req := httptest.NewRequest("POST", "/ledger/transfer", bytes.NewBuffer(body))
			w := httptest.NewRecorder()

			HandleTransfer(mockLedger).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}
			mockLedger.AssertExpectations(t)
		})
	}
}

package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sarrafi-backoffice/internal/domain/account"
	"github.com/sarrafi-backoffice/internal/domain/shared"
	"github.com/sarrafi-backoffice/internal/engine/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testAccount() *account.Account {
	now := time.Now()
	return &account.Account{
		ID:        uuid.New(),
		Name:      "Office Cashbox",
		OwnerKind: shared.OwnerKindNone,
		Namespace: shared.NamespaceMain,
		Currency:  shared.CurrencyUSD,
		Status:    account.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestAccountHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockAccountService)
		h := NewAccountHandler(testLogger(), mockService)
		router := setupTestRouter()
		router.POST("/accounts", h.Create)

		acc := testAccount()
		mockService.On("CreateAccount", mock.Anything, "Office Cashbox", shared.OwnerKindNone, uuid.Nil, shared.NamespaceMain, shared.CurrencyUSD).Return(acc, nil)

		body, _ := json.Marshal(CreateAccountRequest{
			Name:      "Office Cashbox",
			OwnerKind: "NONE",
			Currency:  "USD",
		})
		req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp Response
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data, _ := json.Marshal(resp.Data)
		var accResp AccountResponse
		assert.NoError(t, json.Unmarshal(data, &accResp))
		assert.Equal(t, acc.ID.String(), accResp.ID)
		assert.Equal(t, "ACTIVE", accResp.Status)
		mockService.AssertExpectations(t)
	})

	t.Run("MissingName", func(t *testing.T) {
		mockService := new(MockAccountService)
		h := NewAccountHandler(testLogger(), mockService)
		router := setupTestRouter()
		router.POST("/accounts", h.Create)

		body, _ := json.Marshal(CreateAccountRequest{OwnerKind: "NONE", Currency: "USD"})
		req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "CreateAccount")
	})

	t.Run("InvalidOwnerID", func(t *testing.T) {
		mockService := new(MockAccountService)
		h := NewAccountHandler(testLogger(), mockService)
		router := setupTestRouter()
		router.POST("/accounts", h.Create)

		body, _ := json.Marshal(CreateAccountRequest{
			Name:      "Akbari USD",
			OwnerKind: "CUSTOMER",
			OwnerID:   "not-a-uuid",
			Currency:  "USD",
		})
		req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "CreateAccount")
	})

	t.Run("OwnerRequired", func(t *testing.T) {
		mockService := new(MockAccountService)
		h := NewAccountHandler(testLogger(), mockService)
		router := setupTestRouter()
		router.POST("/accounts", h.Create)

		mockService.On("CreateAccount", mock.Anything, "Akbari USD", shared.OwnerKindCustomer, uuid.Nil, shared.NamespaceMain, shared.CurrencyUSD).
			Return(nil, account.ErrOwnerRequired)

		body, _ := json.Marshal(CreateAccountRequest{
			Name:      "Akbari USD",
			OwnerKind: "CUSTOMER",
			Currency:  "USD",
		})
		req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertExpectations(t)
	})
}

func TestAccountHandler_GetByID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockAccountService)
		h := NewAccountHandler(testLogger(), mockService)
		router := setupTestRouter()
		router.GET("/accounts/:id", h.GetByID)

		acc := testAccount()
		mockService.On("GetAccountByID", mock.Anything, acc.ID).Return(acc, nil)

		req := httptest.NewRequest(http.MethodGet, "/accounts/"+acc.ID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockService := new(MockAccountService)
		h := NewAccountHandler(testLogger(), mockService)
		router := setupTestRouter()
		router.GET("/accounts/:id", h.GetByID)

		id := uuid.New()
		mockService.On("GetAccountByID", mock.Anything, id).Return(nil, account.ErrAccountNotFound{AccountID: id})

		req := httptest.NewRequest(http.MethodGet, "/accounts/"+id.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("InvalidID", func(t *testing.T) {
		mockService := new(MockAccountService)
		h := NewAccountHandler(testLogger(), mockService)
		router := setupTestRouter()
		router.GET("/accounts/:id", h.GetByID)

		req := httptest.NewRequest(http.MethodGet, "/accounts/not-a-uuid", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "GetAccountByID")
	})
}

func TestAccountHandler_Deactivate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockAccountService)
		h := NewAccountHandler(testLogger(), mockService)
		router := setupTestRouter()
		router.POST("/accounts/:id/deactivate", h.Deactivate)

		acc := testAccount()
		acc.Status = account.StatusInactive
		mockService.On("DeactivateAccount", mock.Anything, acc.ID).Return(acc, nil)

		req := httptest.NewRequest(http.MethodPost, "/accounts/"+acc.ID.String()+"/deactivate", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("AlreadyInactive", func(t *testing.T) {
		mockService := new(MockAccountService)
		h := NewAccountHandler(testLogger(), mockService)
		router := setupTestRouter()
		router.POST("/accounts/:id/deactivate", h.Deactivate)

		id := uuid.New()
		mockService.On("DeactivateAccount", mock.Anything, id).Return(nil, account.ErrAlreadyInactive)

		req := httptest.NewRequest(http.MethodPost, "/accounts/"+id.String()+"/deactivate", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestAccountHandler_GetStatement(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockAccountService)
		h := NewAccountHandler(testLogger(), mockService)
		router := setupTestRouter()
		router.GET("/accounts/:id/statement", h.GetStatement)

		id := uuid.New()
		table := &report.Table{Title: "Account Statement - Office Cashbox"}
		mockService.On("GetStatement", mock.Anything, id).Return(table, nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/accounts/"+id.String()+"/statement", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp Response
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data, ok := resp.Data.(map[string]interface{})
		assert.True(t, ok)
		assert.Contains(t, data, "statement")
		mockService.AssertExpectations(t)
	})

	t.Run("AccountNotFound", func(t *testing.T) {
		mockService := new(MockAccountService)
		h := NewAccountHandler(testLogger(), mockService)
		router := setupTestRouter()
		router.GET("/accounts/:id/statement", h.GetStatement)

		id := uuid.New()
		mockService.On("GetStatement", mock.Anything, id).Return(nil, nil, account.ErrAccountNotFound{AccountID: id})

		req := httptest.NewRequest(http.MethodGet, "/accounts/"+id.String()+"/statement", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/govalues/decimal"
	"github.com/kohai/gamecredit/internal/adapter/config"
	"github.com/kohai/gamecredit/internal/core/domain"
	"github.com/kohai/gamecredit/internal/core/port"
	"github.com/kohai/gamecredit/internal/core/port/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testCallbackKey = "cb-secret"
	testAdminKey    = "admin-secret"
	testToken       = "v4.local.test"
	testWallet      = "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"
)

type prepareMocks func(svc *mock.MockService, tokens *mock.MockTokenService)

func newTestRouter(t *testing.T) (*Router, *mock.MockService, *mock.MockTokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mockCtrl := gomock.NewController(t)
	svc := mock.NewMockService(mockCtrl)
	tokens := mock.NewMockTokenService(mockCtrl)
	log := zap.NewNop()

	orderHandler, err := NewOrderHandler(svc, log)
	require.NoError(t, err)
	catalogHandler, err := NewCatalogHandler(svc, log)
	require.NoError(t, err)
	callbackHandler, err := NewCallbackHandler(svc, testCallbackKey, log)
	require.NoError(t, err)
	adminHandler, err := NewAdminHandler(svc, tokens, log)
	require.NoError(t, err)

	r, err := NewRouter(&config.Auth{AdminKey: testAdminKey}, tokens,
		orderHandler, catalogHandler, callbackHandler, adminHandler, log)
	require.NoError(t, err)
	return r, svc, tokens
}

func authorized(tokens *mock.MockTokenService) {
	tokens.EXPECT().VerifyToken(testToken).Return(&port.TokenPayload{UserID: 1, Wallet: testWallet}, nil)
}

func testOrder() *domain.Order {
	return &domain.Order{
		ID:             7,
		Number:         "KMYA1B2C3D4E5F6",
		UserID:         1,
		Wallet:         testWallet,
		Amount:         decimal.MustParse("3.50"),
		OriginalAmount: decimal.MustParse("3.50"),
		Currency:       "USD",
		CryptoAmount:   decimal.MustParse("0.02"),
		CryptoCurrency: "SOL",
		Status:         domain.OrderStatusPending,
		OrderType:      domain.OrderTypeGameCredit,
		CryptoTransaction: &domain.CryptoTransaction{
			Signature: "sig",
			State:     domain.CryptoTransactionPending,
		},
	}
}

type routeTest struct {
	name      string
	method    string
	path      string
	body      string
	headers   map[string]string
	mock      prepareMocks
	expStatus int
	expBody   string
}

func runRouteTests(t *testing.T, tests []routeTest) {
	t.Helper()
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r, svc, tokens := newTestRouter(t)
			test.mock(svc, tokens)

			req := httptest.NewRequest(test.method, test.path, strings.NewReader(test.body))
			req.Header.Set("Content-Type", "application/json")
			for k, v := range test.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, test.expStatus, w.Code, w.Body.String())
			if test.expBody != "" {
				assert.JSONEq(t, test.expBody, w.Body.String())
			}
		})
	}
}

func TestNewCallbackHandler_EmptyKey(t *testing.T) {
	_, err := NewCallbackHandler(mock.NewMockService(gomock.NewController(t)), "", zap.NewNop())
	assert.ErrorIs(t, err, domain.ErrInvalidCallbackKey)
}

func TestCallbackHandler(t *testing.T) {
	keyHeader := map[string]string{callbackKeyHeader: testCallbackKey}
	body := `{"reference":"KMYA1B2C3D4E5F6","status":"succeeded","invoiceId":"INV-1","trxDate":"2024-01-01","sn":"SN"}`

	runRouteTests(t, []routeTest{
		{
			name:      "Wrong key",
			method:    http.MethodPost,
			path:      "/api/vendor/callback",
			body:      body,
			headers:   map[string]string{callbackKeyHeader: "nope"},
			mock:      func(svc *mock.MockService, tokens *mock.MockTokenService) {},
			expStatus: http.StatusUnauthorized,
			expBody:   `{"success":false,"error":"Unauthorized"}`,
		},
		{
			name:      "Missing key",
			method:    http.MethodPost,
			path:      "/api/vendor/callback",
			body:      body,
			mock:      func(svc *mock.MockService, tokens *mock.MockTokenService) {},
			expStatus: http.StatusUnauthorized,
			expBody:   `{"success":false,"error":"Unauthorized"}`,
		},
		{
			name:    "Order updated",
			method:  http.MethodPost,
			path:    "/api/vendor/callback",
			body:    body,
			headers: keyHeader,
			mock: func(svc *mock.MockService, tokens *mock.MockTokenService) {
				svc.EXPECT().HandleVendorCallback(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, cb *domain.VendorCallback) (domain.CallbackOutcome, error) {
						assert.Equal(t, domain.OrderNumber("KMYA1B2C3D4E5F6"), cb.Reference)
						assert.Equal(t, "INV-1", cb.InvoiceID)
						assert.JSONEq(t, body, string(cb.Raw))
						return domain.CallbackApplied, nil
					})
			},
			expStatus: http.StatusOK,
			expBody:   `{"success":true,"message":"Order updated"}`,
		},
		{
			name:    "Already final",
			method:  http.MethodPost,
			path:    "/api/vendor/callback",
			body:    body,
			headers: keyHeader,
			mock: func(svc *mock.MockService, tokens *mock.MockTokenService) {
				svc.EXPECT().HandleVendorCallback(gomock.Any(), gomock.Any()).Return(domain.CallbackAlreadyFinal, nil)
			},
			expStatus: http.StatusOK,
			expBody:   `{"success":true,"message":"Order already in final state"}`,
		},
		{
			name:    "Unknown order",
			method:  http.MethodPost,
			path:    "/api/vendor/callback",
			body:    body,
			headers: keyHeader,
			mock: func(svc *mock.MockService, tokens *mock.MockTokenService) {
				svc.EXPECT().HandleVendorCallback(gomock.Any(), gomock.Any()).Return(domain.CallbackOutcome(""), domain.ErrDataNotFound)
			},
			expStatus: http.StatusNotFound,
			expBody:   `{"success":false,"error":"Order not found"}`,
		},
		{
			name:      "Missing reference",
			method:    http.MethodPost,
			path:      "/api/vendor/callback",
			body:      `{"status":"succeeded"}`,
			headers:   keyHeader,
			mock:      func(svc *mock.MockService, tokens *mock.MockTokenService) {},
			expStatus: http.StatusNotFound,
		},
		{
			name:    "Update error",
			method:  http.MethodPost,
			path:    "/api/vendor/callback",
			body:    body,
			headers: keyHeader,
			mock: func(svc *mock.MockService, tokens *mock.MockTokenService) {
				svc.EXPECT().HandleVendorCallback(gomock.Any(), gomock.Any()).Return(domain.CallbackOutcome(""), errors.New("db down"))
			},
			expStatus: http.StatusUnprocessableEntity,
			expBody:   `{"success":false,"error":"db down"}`,
		},
		{
			name:      "Broken body",
			method:    http.MethodPost,
			path:      "/api/vendor/callback",
			body:      `{"reference":`,
			headers:   keyHeader,
			mock:      func(svc *mock.MockService, tokens *mock.MockTokenService) {},
			expStatus: http.StatusUnprocessableEntity,
		},
	})
}

func TestOrderHandler(t *testing.T) {
	auth := map[string]string{authHeaderKey: "Bearer " + testToken}
	createBody := `{"amount":"3.50","crypto_amount":0.02,"product_id":"ML","item_id":"86",
		"user_data":{"userId":"1"},"transaction_signature":"sig"}`

	runRouteTests(t, []routeTest{
		{
			name:      "No token",
			method:    http.MethodGet,
			path:      "/api/user/orders",
			mock:      func(svc *mock.MockService, tokens *mock.MockTokenService) {},
			expStatus: http.StatusUnauthorized,
		},
		{
			name:    "Bad token",
			method:  http.MethodGet,
			path:    "/api/user/orders",
			headers: auth,
			mock: func(svc *mock.MockService, tokens *mock.MockTokenService) {
				tokens.EXPECT().VerifyToken(testToken).Return(nil, domain.ErrInvalidToken)
			},
			expStatus: http.StatusUnauthorized,
		},
		{
			name:    "Create order",
			method:  http.MethodPost,
			path:    "/api/user/orders",
			body:    createBody,
			headers: auth,
			mock: func(svc *mock.MockService, tokens *mock.MockTokenService) {
				authorized(tokens)
				svc.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, in *domain.CreateOrderInput) (*domain.Order, error) {
						assert.Equal(t, uint64(1), in.UserID)
						assert.Equal(t, testWallet, in.Wallet)
						assert.Equal(t, domain.OrderTypeGameCredit, in.OrderType)
						assert.Zero(t, in.CryptoAmount.Cmp(decimal.MustParse("0.02")))
						assert.Zero(t, in.OriginalAmount.Cmp(decimal.MustParse("3.5")))
						return testOrder(), nil
					})
			},
			expStatus: http.StatusAccepted,
		},
		{
			name:    "Create order with bad amount",
			method:  http.MethodPost,
			path:    "/api/user/orders",
			body:    `{"amount":"abc","crypto_amount":"0.02","transaction_signature":"sig"}`,
			headers: auth,
			mock: func(svc *mock.MockService, tokens *mock.MockTokenService) {
				authorized(tokens)
			},
			expStatus: http.StatusBadRequest,
		},
		{
			name:    "Second active order",
			method:  http.MethodPost,
			path:    "/api/user/orders",
			body:    createBody,
			headers: auth,
			mock: func(svc *mock.MockService, tokens *mock.MockTokenService) {
				authorized(tokens)
				svc.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(nil, domain.ErrActiveOrderExists)
			},
			expStatus: http.StatusConflict,
			expBody:   `{"error":"user already has an active order"}`,
		},
		{
			name:    "Wrapped validation error",
			method:  http.MethodPost,
			path:    "/api/user/orders",
			body:    createBody,
			headers: auth,
			mock: func(svc *mock.MockService, tokens *mock.MockTokenService) {
				authorized(tokens)
				svc.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
					Return(nil, errors.Join(domain.ErrBadRequest, errors.New("unsupported token")))
			},
			expStatus: http.StatusBadRequest,
		},
		{
			name:    "Get order of another user",
			method:  http.MethodGet,
			path:    "/api/user/orders/KMY1",
			headers: auth,
			mock: func(svc *mock.MockService, tokens *mock.MockTokenService) {
				authorized(tokens)
				svc.EXPECT().GetOrder(gomock.Any(), uint64(1), domain.OrderNumber("KMY1")).Return(nil, domain.ErrDataNotFound)
			},
			expStatus: http.StatusNotFound,
		},
		{
			name:    "Cancel processing order",
			method:  http.MethodPost,
			path:    "/api/user/orders/KMY1/cancel",
			headers: auth,
			mock: func(svc *mock.MockService, tokens *mock.MockTokenService) {
				authorized(tokens)
				svc.EXPECT().CancelOrder(gomock.Any(), uint64(1), domain.OrderNumber("KMY1")).
					Return(nil, domain.ErrOrderNotCancellable)
			},
			expStatus: http.StatusConflict,
		},
		{
			name:    "Validate account in maintenance",
			method:  http.MethodPost,
			path:    "/api/user/game-accounts/validate",
			body:    `{"product_id":"ML","user_data":{"userId":"1"}}`,
			headers: auth,
			mock: func(svc *mock.MockService, tokens *mock.MockTokenService) {
				authorized(tokens)
				svc.EXPECT().ValidateGameAccount(gomock.Any(), "ML", map[string]string{"userId": "1"}).
					Return(nil, domain.ErrVendorMaintenance)
			},
			expStatus: http.StatusServiceUnavailable,
			expBody:   `{"error":"product temporarily unavailable"}`,
		},
		{
			name:   "Internal errors are not exposed",
			method: http.MethodGet,
			path:   "/api/products",
			mock: func(svc *mock.MockService, tokens *mock.MockTokenService) {
				svc.EXPECT().ListProducts(gomock.Any()).Return(nil, errors.New("secret dsn in message"))
			},
			expStatus: http.StatusInternalServerError,
			expBody:   `{"error":"Internal Server Error"}`,
		},
	})
}

func TestOrderHandler_ListOrders(t *testing.T) {
	r, svc, tokens := newTestRouter(t)
	authorized(tokens)
	svc.EXPECT().ListOrders(gomock.Any(), uint64(1)).Return([]*domain.Order{testOrder()}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/user/orders", http.NoBody)
	req.Header.Set(authHeaderKey, "Bearer "+testToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "KMYA1B2C3D4E5F6", list[0]["order_number"])
	assert.Equal(t, "pending", list[0]["status"])
	payment, ok := list[0]["payment"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "sig", payment["transaction_signature"])
}

func TestAdminHandler(t *testing.T) {
	admin := map[string]string{adminHeaderKey: testAdminKey}

	runRouteTests(t, []routeTest{
		{
			name:      "No admin key",
			method:    http.MethodPost,
			path:      "/api/admin/reconcile",
			mock:      func(svc *mock.MockService, tokens *mock.MockTokenService) {},
			expStatus: http.StatusForbidden,
		},
		{
			name:    "Reconcile",
			method:  http.MethodPost,
			path:    "/api/admin/reconcile",
			headers: admin,
			mock: func(svc *mock.MockService, tokens *mock.MockTokenService) {
				svc.EXPECT().ReconcileProcessingOrders(gomock.Any()).
					Return(&domain.ReconcileReport{Checked: 2, Succeeded: 1, Pending: 1}, nil)
			},
			expStatus: http.StatusOK,
			expBody:   `{"checked":2,"succeeded":1,"failed":0,"pending":1,"requeued":0,"errors":0}`,
		},
		{
			name:    "Complete order",
			method:  http.MethodPost,
			path:    "/api/admin/orders/KMY1/complete",
			headers: admin,
			mock: func(svc *mock.MockService, tokens *mock.MockTokenService) {
				o := testOrder()
				o.Status = domain.OrderStatusCompleted
				svc.EXPECT().CompleteOrder(gomock.Any(), domain.OrderNumber("KMY1")).Return(o, nil)
			},
			expStatus: http.StatusOK,
		},
		{
			name:    "Complete order from wrong state",
			method:  http.MethodPost,
			path:    "/api/admin/orders/KMY1/complete",
			headers: admin,
			mock: func(svc *mock.MockService, tokens *mock.MockTokenService) {
				svc.EXPECT().CompleteOrder(gomock.Any(), domain.OrderNumber("KMY1")).
					Return(nil, domain.ErrInvalidTransition)
			},
			expStatus: http.StatusConflict,
		},
		{
			name:    "Issue token",
			method:  http.MethodPost,
			path:    "/api/admin/tokens",
			body:    `{"user_id":5,"wallet":"` + testWallet + `"}`,
			headers: admin,
			mock: func(svc *mock.MockService, tokens *mock.MockTokenService) {
				tokens.EXPECT().CreateToken(&port.TokenPayload{UserID: 5, Wallet: testWallet}).Return(testToken, nil)
			},
			expStatus: http.StatusOK,
			expBody:   `{"token":"` + testToken + `"}`,
		},
		{
			name:      "Issue token without user",
			method:    http.MethodPost,
			path:      "/api/admin/tokens",
			body:      `{"wallet":"x"}`,
			headers:   admin,
			mock:      func(svc *mock.MockService, tokens *mock.MockTokenService) {},
			expStatus: http.StatusBadRequest,
		},
	})
}

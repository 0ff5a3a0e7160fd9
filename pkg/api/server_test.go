package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/silverbars/orderboard/params"
	"github.com/silverbars/orderboard/pkg/board"
	"github.com/silverbars/orderboard/pkg/util"
)

func newTestServer() *Server {
	ledger := board.NewLedger(util.RealClock{})
	return NewServer(ledger, params.Default(), zap.NewNop().Sugar())
}

func doJSON(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestRegisterOrder(t *testing.T) {
	s := newTestServer()

	rec := doJSON(t, s, "POST", "/api/v1/orders",
		`{"user":"Alice","quantity":"1.6","price":"305","side":"BUY"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got OrderInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "Alice", got.User)
	assert.Equal(t, "BUY", got.Side)
	assert.Equal(t, "ACTIVE", got.Status)
	assert.True(t, got.Quantity.Equal(decimal.RequireFromString("1.6")))
	assert.True(t, got.Price.Equal(decimal.RequireFromString("305")))
	require.Len(t, got.Audit, 1)
	assert.Equal(t, "Alice", got.Audit[0].Actor)
}

func TestRegisterOrderAcceptsNumericBody(t *testing.T) {
	s := newTestServer()

	// Decimal fields accept plain JSON numbers as well as strings
	rec := doJSON(t, s, "POST", "/api/v1/orders",
		`{"user":"Alice","quantity":3.5,"price":306,"side":"SELL"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestRegisterOrderDefaultsUser(t *testing.T) {
	s := newTestServer()

	rec := doJSON(t, s, "POST", "/api/v1/orders",
		`{"quantity":"1","price":"100","side":"BUY"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got OrderInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Test User", got.User)
}

func TestRegisterOrderValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"user":`},
		{"missing quantity", `{"user":"Alice","price":"305","side":"BUY"}`},
		{"zero quantity", `{"user":"Alice","quantity":"0","price":"305","side":"BUY"}`},
		{"negative quantity", `{"user":"Alice","quantity":"-1","price":"305","side":"BUY"}`},
		{"negative price", `{"user":"Alice","quantity":"1","price":"-305","side":"BUY"}`},
		{"bad side", `{"user":"Alice","quantity":"1","price":"305","side":"HOLD"}`},
		{"missing side", `{"user":"Alice","quantity":"1","price":"305"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer()
			rec := doJSON(t, s, "POST", "/api/v1/orders", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRegisterOrderZeroPriceAllowed(t *testing.T) {
	s := newTestServer()

	rec := doJSON(t, s, "POST", "/api/v1/orders",
		`{"user":"Alice","quantity":"1","price":"0","side":"SELL"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCancelOrder(t *testing.T) {
	s := newTestServer()
	doJSON(t, s, "POST", "/api/v1/orders",
		`{"user":"Alice","quantity":"1.6","price":"305","side":"BUY"}`)

	rec := doJSON(t, s, "DELETE", "/api/v1/orders/1?user=Bob", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got OrderInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "CANCELLED", got.Status)
	require.Len(t, got.Audit, 2)
	assert.Equal(t, "Bob", got.Audit[1].Actor)
}

func TestCancelOrderStatusMapping(t *testing.T) {
	s := newTestServer()
	doJSON(t, s, "POST", "/api/v1/orders",
		`{"user":"Alice","quantity":"1.6","price":"305","side":"BUY"}`)
	doJSON(t, s, "DELETE", "/api/v1/orders/1?user=Bob", "")

	// Repeat cancellation: conflict, naming the prior canceller
	rec := doJSON(t, s, "DELETE", "/api/v1/orders/1?user=Carol", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	var er ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &er))
	assert.Contains(t, er.Message, "Bob")
	assert.NotContains(t, er.Message, "Alice")

	// Unknown order: not found
	rec = doJSON(t, s, "DELETE", "/api/v1/orders/999?user=Alice", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &er))
	assert.Contains(t, er.Message, "999")

	// Non-numeric id: bad request
	rec = doJSON(t, s, "DELETE", "/api/v1/orders/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrder(t *testing.T) {
	s := newTestServer()
	doJSON(t, s, "POST", "/api/v1/orders",
		`{"user":"Alice","quantity":"1.6","price":"305","side":"BUY"}`)

	rec := doJSON(t, s, "GET", "/api/v1/orders/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got OrderInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(1), got.ID)

	rec = doJSON(t, s, "GET", "/api/v1/orders/42", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetBoardEmpty(t *testing.T) {
	s := newTestServer()

	rec := doJSON(t, s, "GET", "/api/v1/orders/summary", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetBoard(t *testing.T) {
	s := newTestServer()
	for _, body := range []string{
		`{"user":"Alice","quantity":"1.6","price":"305","side":"BUY"}`,
		`{"user":"Alice","quantity":"3.5","price":"306","side":"BUY"}`,
		`{"user":"Bob","quantity":"2.0","price":"308","side":"BUY"}`,
		`{"user":"Carol","quantity":"4.3","price":"305","side":"BUY"}`,
		`{"user":"Dave","quantity":"1.2","price":"310","side":"SELL"}`,
		`{"user":"Dave","quantity":"1.5","price":"307","side":"SELL"}`,
	} {
		rec := doJSON(t, s, "POST", "/api/v1/orders", body)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, s, "GET", "/api/v1/orders/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got BoardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	require.Len(t, got.Buy, 3)
	assert.True(t, got.Buy[0].Price.Equal(decimal.RequireFromString("308")))
	assert.True(t, got.Buy[2].Price.Equal(decimal.RequireFromString("305")))
	assert.True(t, got.Buy[2].Quantity.Equal(decimal.RequireFromString("5.9")))

	require.Len(t, got.Sell, 2)
	assert.True(t, got.Sell[0].Price.Equal(decimal.RequireFromString("307")))
	assert.True(t, got.Sell[1].Price.Equal(decimal.RequireFromString("310")))
}

func TestGetBoardExcludesCancelled(t *testing.T) {
	s := newTestServer()
	doJSON(t, s, "POST", "/api/v1/orders",
		`{"user":"Alice","quantity":"1.6","price":"305","side":"BUY"}`)
	doJSON(t, s, "DELETE", "/api/v1/orders/1?user=Alice", "")

	rec := doJSON(t, s, "GET", "/api/v1/orders/summary", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer()

	rec := doJSON(t, s, "GET", "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

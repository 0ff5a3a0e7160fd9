package api

import "github.com/shopspring/decimal"

// API request/response types for REST endpoints and WebSocket messages.
// Decimal fields serialize as JSON strings so prices and quantities survive
// the wire without binary floating-point rounding.

// RegisterOrderRequest is the payload for POST /api/v1/orders.
type RegisterOrderRequest struct {
	User     string          `json:"user"`     // falls back to the configured default actor
	Quantity decimal.Decimal `json:"quantity"` // KG, must be > 0
	Price    decimal.Decimal `json:"price"`    // per KG, must be >= 0
	Side     string          `json:"side"`     // "BUY" or "SELL"
}

// AuditEntryInfo is one entry of an order's audit trail.
type AuditEntryInfo struct {
	OrderID   int64  `json:"orderId"`
	Actor     string `json:"actor"`
	Timestamp string `json:"timestamp"` // RFC3339 UTC
}

// OrderInfo represents a registered order, including its audit trail.
type OrderInfo struct {
	ID       int64            `json:"id"`
	User     string           `json:"user"`
	Quantity decimal.Decimal  `json:"quantity"`
	Price    decimal.Decimal  `json:"price"`
	Side     string           `json:"side"`   // "BUY" or "SELL"
	Status   string           `json:"status"` // "ACTIVE" or "CANCELLED"
	Audit    []AuditEntryInfo `json:"audit"`
}

// SummaryInfo is one aggregated price level.
type SummaryInfo struct {
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
}

// BoardResponse is the live board: buy levels high to low, sell levels low to
// high.
type BoardResponse struct {
	Buy  []SummaryInfo `json:"buy"`
	Sell []SummaryInfo `json:"sell"`
}

// BoardUpdate is pushed to WebSocket clients after every successful
// registration or cancellation.
type BoardUpdate struct {
	Type      string        `json:"type"` // always "board"
	Buy       []SummaryInfo `json:"buy"`
	Sell      []SummaryInfo `json:"sell"`
	Timestamp int64         `json:"timestamp"` // Unix milliseconds
}

// ErrorResponse is returned for all errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

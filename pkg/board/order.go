package board

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Side classifies an order as a bid or an offer.
type Side int8

const (
	Buy  Side = 1
	Sell Side = -1
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "Unknown"
	}
}

// ParseSide accepts the two wire tokens "BUY" and "SELL" (case-insensitive).
func ParseSide(s string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY":
		return Buy, nil
	case "SELL":
		return Sell, nil
	default:
		return 0, fmt.Errorf("invalid side %q: must be BUY or SELL", s)
	}
}

// Status is the lifecycle state of an order. Orders start Active and move to
// Cancelled exactly once; the transition never reverses.
type Status int8

const (
	Active Status = iota
	Cancelled
)

func (st Status) String() string {
	switch st {
	case Active:
		return "ACTIVE"
	case Cancelled:
		return "CANCELLED"
	default:
		return "Unknown"
	}
}

// AuditEntry is an immutable fact: who touched an order and when.
type AuditEntry struct {
	OrderID int64
	Actor   string
	At      time.Time // UTC
}

// Order is one registered order. Records handed out by the ledger are never
// mutated afterward; cancellation publishes a fresh copy. Audit is append-only
// and chronological: entry 0 is registration, entry 1 (if present) cancellation.
type Order struct {
	ID       int64
	Owner    string
	Quantity decimal.Decimal // mass in KG
	Price    decimal.Decimal // per KG
	Side     Side
	Status   Status
	Audit    []AuditEntry
}

// Summary is one price level of the live board: the aggregate quantity of all
// active orders on one side sharing an exactly-equal price. Recomputed on every
// read, never stored.
type Summary struct {
	Price    decimal.Decimal
	Side     Side
	Quantity decimal.Decimal
}

// Board is the two-sided live view. Buys are sorted by price descending (best
// bid first), Sells ascending (best ask first).
type Board struct {
	Buys  []Summary
	Sells []Summary
}

package board

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/silverbars/orderboard/pkg/util"
)

// Ledger is the authoritative store of every order ever registered. Cancelled
// orders stay in the map forever as audit history; live views filter them out.
//
// Concurrency: the map is guarded by mu for inserts/lookups, IDs come from an
// atomic sequence, and cancelMu serializes the read-check-flip-append sequence
// of Cancel. Registration never takes cancelMu, so a cancellation in flight
// does not block new orders. Order records are copy-on-write: once a *Order is
// published it is never mutated, which keeps Snapshot readers race-free.
type Ledger struct {
	mu     sync.RWMutex
	orders map[int64]*Order

	// seq imitates a database sequence: fetch-and-increment, first ID is 1,
	// never reused even after cancellation.
	seq atomic.Int64

	cancelMu sync.Mutex

	clock util.Clock
}

func NewLedger(clock util.Clock) *Ledger {
	return &Ledger{
		orders: make(map[int64]*Order),
		clock:  clock,
	}
}

// Register adds a new order to the board and returns the stored record. A
// well-formed input always succeeds; validation belongs to the transport layer.
func (l *Ledger) Register(owner string, quantity, price decimal.Decimal, side Side) *Order {
	id := l.seq.Add(1)

	o := &Order{
		ID:       id,
		Owner:    owner,
		Quantity: quantity,
		Price:    price,
		Side:     side,
		Status:   Active,
		Audit: []AuditEntry{
			{OrderID: id, Actor: owner, At: l.now()},
		},
	}

	l.mu.Lock()
	l.orders[id] = o
	l.mu.Unlock()

	return o
}

// Cancel flips the order to Cancelled and appends an audit entry naming actor.
// Exactly one of two concurrent cancellations of the same order wins; the
// other gets a CancelError naming the winner. Unknown IDs get CancelNotFound.
func (l *Ledger) Cancel(id int64, actor string) (*Order, error) {
	l.cancelMu.Lock()
	defer l.cancelMu.Unlock()

	l.mu.RLock()
	o, ok := l.orders[id]
	l.mu.RUnlock()

	if !ok {
		return nil, &CancelError{Kind: CancelNotFound, OrderID: id}
	}
	if o.Status == Cancelled {
		return nil, &CancelError{
			Kind:        CancelAlreadyCancelled,
			OrderID:     id,
			CancelledBy: lastActor(o),
		}
	}

	// Publish a fresh record instead of mutating the shared one, so readers
	// holding the old pointer keep seeing a consistent order.
	upd := &Order{
		ID:       o.ID,
		Owner:    o.Owner,
		Quantity: o.Quantity,
		Price:    o.Price,
		Side:     o.Side,
		Status:   Cancelled,
		Audit:    make([]AuditEntry, 0, len(o.Audit)+1),
	}
	upd.Audit = append(upd.Audit, o.Audit...)
	upd.Audit = append(upd.Audit, AuditEntry{OrderID: id, Actor: actor, At: l.now()})

	l.mu.Lock()
	l.orders[id] = upd
	l.mu.Unlock()

	return upd, nil
}

// Get returns the current record for id, if one was ever registered.
func (l *Ledger) Get(id int64) (*Order, bool) {
	l.mu.RLock()
	o, ok := l.orders[id]
	l.mu.RUnlock()
	return o, ok
}

// Snapshot returns a point-in-time view of every order, active and cancelled.
// The returned records are immutable; the slice is owned by the caller.
func (l *Ledger) Snapshot() []*Order {
	l.mu.RLock()
	out := make([]*Order, 0, len(l.orders))
	for _, o := range l.orders {
		out = append(out, o)
	}
	l.mu.RUnlock()
	return out
}

// LiveBoard aggregates the current snapshot into the two-sided summary view.
func (l *Ledger) LiveBoard() Board {
	return Summarize(l.Snapshot())
}

func (l *Ledger) now() time.Time {
	return l.clock.Now().UTC()
}

// lastActor is the actor of the most recent audit entry. The trail is never
// empty (registration writes entry 0), but do not index blindly.
func lastActor(o *Order) string {
	if len(o.Audit) == 0 {
		return ""
	}
	return o.Audit[len(o.Audit)-1].Actor
}

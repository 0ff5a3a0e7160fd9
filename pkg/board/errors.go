package board

import (
	"errors"
	"fmt"
)

// CancelErrorKind distinguishes the two ways a cancellation can be rejected.
type CancelErrorKind int8

const (
	// CancelNotFound: no order with the supplied ID was ever registered.
	CancelNotFound CancelErrorKind = iota
	// CancelAlreadyCancelled: a prior cancellation already completed.
	CancelAlreadyCancelled
)

// CancelError carries the rejection as structured data so callers can render
// their own messages. Both kinds are non-retryable.
type CancelError struct {
	Kind    CancelErrorKind
	OrderID int64
	// CancelledBy names the actor of the original cancellation. Set only for
	// CancelAlreadyCancelled.
	CancelledBy string
}

func (e *CancelError) Error() string {
	switch e.Kind {
	case CancelAlreadyCancelled:
		return fmt.Sprintf("order id %d is already cancelled by user %q", e.OrderID, e.CancelledBy)
	default:
		return fmt.Sprintf("unable to find order id %d in the system: supply a valid order id for cancellation", e.OrderID)
	}
}

// IsNotFound reports whether err is a cancellation of an unknown order.
func IsNotFound(err error) bool {
	var ce *CancelError
	return errors.As(err, &ce) && ce.Kind == CancelNotFound
}

// IsAlreadyCancelled reports whether err is a repeat cancellation.
func IsAlreadyCancelled(err error) bool {
	var ce *CancelError
	return errors.As(err, &ce) && ce.Kind == CancelAlreadyCancelled
}

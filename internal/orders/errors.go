package orders

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound: the identifier resolves to no stored order.
	ErrNotFound = errors.New("order not found")
	// ErrUnavailable: the storage layer failed during a lookup. Kept
	// distinct from ErrNotFound so the HTTP layer can answer 503 vs 404.
	ErrUnavailable = errors.New("order storage unavailable")
	// ErrVersionConflict: a concurrent mutation won the version check.
	ErrVersionConflict = errors.New("order version conflict")
	// ErrDuplicateOrder: an order with the same system id already exists.
	ErrDuplicateOrder = errors.New("order id already exists")
)

// InvalidStatusError reports a requested status outside the enumerated set.
// The valid set is carried so responses can echo it, as the original API did.
type InvalidStatusError struct {
	Requested string
	Valid     []string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid status %q (valid: %s)", e.Requested, strings.Join(e.Valid, ", "))
}

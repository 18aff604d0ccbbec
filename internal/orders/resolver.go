package orders

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// systemIDPattern matches the fixed-length hex form of system identifiers.
var systemIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// Resolver maps an arbitrary caller-supplied string to exactly one stored
// order, tolerating both historical identifier generations.
type Resolver struct {
	store *Store
}

// NewResolver returns a Resolver over the given store.
func NewResolver(store *Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve locates the order the identifier refers to.
//
// Precedence: a syntactically valid system id is looked up directly first and
// a hit wins over every other interpretation (a human code that happens to
// look like hex cannot shadow it). Otherwise the identifier is tried as a
// human code, bare and with the ORD- prefix prepended.
//
// Malformed identifiers never error; they fall through to ErrNotFound.
// Storage failures surface as ErrUnavailable, not as not-found.
func (r *Resolver) Resolve(ctx context.Context, identifier string) (*Order, error) {
	if systemIDPattern.MatchString(identifier) {
		o, err := r.store.GetByID(ctx, identifier)
		if err != nil {
			return nil, fmt.Errorf("lookup by id %q: %w: %w", identifier, ErrUnavailable, err)
		}
		if o != nil {
			return o, nil
		}
	}

	candidates := []string{identifier}
	if !strings.HasPrefix(identifier, OrderCodePrefix) {
		candidates = append(candidates, OrderCodePrefix+identifier)
	}

	for _, code := range candidates {
		o, err := r.store.GetByCode(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("lookup by code %q: %w: %w", code, ErrUnavailable, err)
		}
		if o != nil {
			return o, nil
		}
	}

	return nil, fmt.Errorf("order %q: %w", identifier, ErrNotFound)
}

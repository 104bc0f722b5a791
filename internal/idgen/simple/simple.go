package simple

import (
	"context"
	"errors"
	"fmt"
	"math"
)

var ErrExhausted = errors.New("id space exhausted")

// Generator hands out strictly increasing ids starting at a base. It is not
// safe for concurrent use; the ledger calls it inside a storage transaction.
type Generator struct {
	next int
}

func New(base int) *Generator {
	return &Generator{next: base}
}

func (g *Generator) GetID(_ context.Context) (int, error) {
	if g.next == math.MaxInt {
		return 0, fmt.Errorf("next id after %d: %w", g.next, ErrExhausted)
	}

	id := g.next
	g.next++

	return id, nil
}

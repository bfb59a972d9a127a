// Package names allocates unique synthetic rule names. One allocator
// owns the whole generation run; nothing is shared across runs.
package names

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrCollision means a synthetic name matched a reserved rule name.
var ErrCollision = errors.New("name collision")

// Gen hands out fresh names of the form prefix_<n> with a single
// counter across all prefixes, so every name is unique for the
// allocator's lifetime.
type Gen struct {
	next     int
	reserved map[string]struct{}
}

func NewGen() *Gen {
	return &Gen{reserved: make(map[string]struct{})}
}

// Reserve registers user-supplied rule names. A later Fresh call that
// would produce a reserved name fails instead of silently shadowing it.
func (g *Gen) Reserve(names ...string) {
	for _, n := range names {
		g.reserved[n] = struct{}{}
	}
}

// Fresh returns the next synthetic name for prefix. The counter
// advances even on collision; the run is aborted anyway.
func (g *Gen) Fresh(prefix string) (string, error) {
	name := prefix + "_" + strconv.Itoa(g.next)
	g.next++
	if _, taken := g.reserved[name]; taken {
		return "", fmt.Errorf("%w: synthetic rule %q shadows an existing rule", ErrCollision, name)
	}
	return name, nil
}

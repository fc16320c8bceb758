// Package ids hands out unique element identifiers for one conversion run.
// Identifiers are fixed-width numeric strings drawn without replacement
// from a pre-generated pool, so both output builders can share one
// allocator without coordination beyond the run itself.
package ids

import (
	"fmt"
	"math/rand/v2"
)

// Width is the digit count of every identifier.
const Width = 10

const idBound = 10_000_000_000 // 10^Width

// Allocator owns a run-scoped pool of unique identifiers. It is not safe
// for concurrent use; a conversion run is single-threaded by design and
// independent runs each create their own allocator.
type Allocator struct {
	pool []string
	used map[string]struct{}
}

// NewAllocator pre-generates a pool of n unique identifiers. Size n to the
// worst-case element count of the run; the pool extends itself if the
// estimate turns out short.
func NewAllocator(n int) *Allocator {
	if n < 1 {
		n = 1
	}
	a := &Allocator{
		pool: make([]string, 0, n),
		used: make(map[string]struct{}, n),
	}
	a.extend(n)
	return a
}

// Next returns the next identifier, never repeating within the run.
func (a *Allocator) Next() string {
	if len(a.pool) == 0 {
		a.extend(64)
	}
	id := a.pool[len(a.pool)-1]
	a.pool = a.pool[:len(a.pool)-1]
	return id
}

// Remaining reports how many pre-generated identifiers are left.
func (a *Allocator) Remaining() int {
	return len(a.pool)
}

func (a *Allocator) extend(n int) {
	for added := 0; added < n; {
		id := fmt.Sprintf("%0*d", Width, rand.Int64N(idBound))
		if _, dup := a.used[id]; dup {
			continue
		}
		a.used[id] = struct{}{}
		a.pool = append(a.pool, id)
		added++
	}
}

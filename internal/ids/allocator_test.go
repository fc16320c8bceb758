package ids_test

import (
	"testing"

	"github.com/RobbStarkAustria/mensural-to-mei/internal/ids"
)

func TestAllocatorUniqueFixedWidth(t *testing.T) {
	alloc := ids.NewAllocator(500)
	seen := make(map[string]struct{}, 500)
	for i := 0; i < 500; i++ {
		id := alloc.Next()
		if len(id) != ids.Width {
			t.Fatalf("id %q has width %d, want %d", id, len(id), ids.Width)
		}
		for _, r := range id {
			if r < '0' || r > '9' {
				t.Fatalf("id %q contains non-digit %q", id, r)
			}
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q at draw %d", id, i)
		}
		seen[id] = struct{}{}
	}
}

func TestAllocatorExtendsPastEstimate(t *testing.T) {
	alloc := ids.NewAllocator(2)
	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		id := alloc.Next()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q after pool extension", id)
		}
		seen[id] = struct{}{}
	}
}

func TestAllocatorRemaining(t *testing.T) {
	alloc := ids.NewAllocator(10)
	if alloc.Remaining() != 10 {
		t.Fatalf("Remaining = %d, want 10", alloc.Remaining())
	}
	alloc.Next()
	if alloc.Remaining() != 9 {
		t.Fatalf("Remaining = %d, want 9", alloc.Remaining())
	}
}

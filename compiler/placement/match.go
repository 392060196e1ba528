package placement

import (
	"cmp"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
)

// match assigns each left vertex k a distinct host from allowed[k].
// Vertices are taken in order of increasing degree and given their
// lowest free host.  A vertex with no free host may take the host of an
// earlier vertex that can move to another free host.  This is a
// heuristic and may fail when a complete matching exists.
func match(allowed []*roaring.Bitmap) ([]int, bool) {
	order := make([]int, len(allowed))
	for k := range order {
		order[k] = k
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(allowed[a].GetCardinality(), allowed[b].GetCardinality())
	})
	owner := make(map[uint32]int)
	out := make([]int, len(allowed))
	free := func(k int) (uint32, bool) {
		it := allowed[k].Iterator()
		for it.HasNext() {
			if h := it.Next(); !isOwned(owner, h) {
				return h, true
			}
		}
		return 0, false
	}
	take := func(k int, h uint32) {
		owner[h] = k
		out[k] = int(h)
	}
	for _, k := range order {
		if h, ok := free(k); ok {
			take(k, h)
			continue
		}
		moved := false
		it := allowed[k].Iterator()
		for it.HasNext() && !moved {
			h := it.Next()
			other := owner[h]
			if alt, ok := free(other); ok {
				take(other, alt)
				take(k, h)
				moved = true
			}
		}
		if !moved {
			return nil, false
		}
	}
	return out, true
}

func isOwned(owner map[uint32]int, h uint32) bool {
	_, ok := owner[h]
	return ok
}

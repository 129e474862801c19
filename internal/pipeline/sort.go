package pipeline

import (
	"math"
	"sort"
)

const (
	// Newest and oldest order by the view-count metric; the markup carries no
	// dates, so popularity stands in for recency.
	SortNewest = "newest"
	SortOldest = "oldest"
)

func ValidSort(criterion string) bool {
	return criterion == SortNewest || criterion == SortOldest
}

// ApplySort returns a new display order computed from prior. Ties keep their
// relative position in prior, so repeated sorts are idempotent. Cards without
// a metric rank lowest. Unknown criteria return prior unchanged.
func ApplySort(c Collection, prior []int, criterion string) []int {
	order := append([]int(nil), prior...)
	if !ValidSort(criterion) {
		return order
	}
	key := func(idx int) int64 {
		v, ok := c.Metric(idx)
		if !ok {
			return math.MinInt64
		}
		return v
	}
	sort.SliceStable(order, func(i, j int) bool {
		ki, kj := key(order[i]), key(order[j])
		if criterion == SortNewest {
			return ki > kj
		}
		return ki < kj
	})
	return order
}

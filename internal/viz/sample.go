// Package viz renders static and interactive maps of accident records
// and their hotspot labels.
package viz

import (
	"math/rand"

	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/model"
)

// Sample returns up to n records drawn without replacement. The draw
// is deterministic for a given seed. When n is zero, negative, or not
// below len(records), the input slice is returned unchanged.
func Sample(records []model.Accident, n int, seed int64) []model.Accident {
	if n <= 0 || n >= len(records) {
		return records
	}

	rng := rand.New(rand.NewSource(seed))
	idx := make([]int, len(records))
	for i := range idx {
		idx[i] = i
	}

	// Partial Fisher-Yates: only the first n positions are needed.
	out := make([]model.Accident, n)
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		out[i] = records[idx[i]]
	}
	return out
}
